package meshcurvature

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func TestAdjacentFaces(t *testing.T) {
	faces := []Face{{0, 1, 2}, {2, 1, 3}, {3, 4, 2}}
	adj := AdjacentFaces(6, faces)

	want := [][]int{{0}, {0, 1}, {0, 1, 2}, {1, 2}, {2}, nil}
	for v := range want {
		if len(adj[v]) != len(want[v]) {
			t.Errorf("vertex %d: adjacent faces %v, want %v", v, adj[v], want[v])
			continue
		}
		for k := range want[v] {
			if adj[v][k] != want[v][k] {
				t.Errorf("vertex %d: adjacent faces %v, want %v", v, adj[v], want[v])
				break
			}
		}
	}
}

func TestFaceCountGrid(t *testing.T) {
	adj := make([][]int, 300)
	adj[0] = []int{0, 1, 2}
	adj[257] = []int{4}
	adj[299] = make([]int, 400)

	img, err := FaceCountGrid(adj)
	if err != nil {
		t.Fatalf("FaceCountGrid: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 256 || b.Dy() != 256 {
		t.Fatalf("grid bounds %v, want 256×256", b)
	}
	if got := img.GrayAt(0, 0).Y; got != 3 {
		t.Errorf("vertex 0 count = %d, want 3", got)
	}
	if got := img.GrayAt(1, 1).Y; got != 1 {
		t.Errorf("vertex 257 count = %d, want 1", got)
	}
	if got := img.GrayAt(299-256, 1).Y; got != 255 {
		t.Errorf("vertex 299 count = %d, want clamped 255", got)
	}
	if got := img.GrayAt(255, 255).Y; got != 0 {
		t.Errorf("padding = %d, want 0", got)
	}

	if _, err := FaceCountGrid(make([][]int, 256*256+1)); !errors.Is(err, ErrTooManyVertices) {
		t.Errorf("oversized grid error = %v, want ErrTooManyVertices", err)
	}
}

func TestAttributeBuffer(t *testing.T) {
	m := generateCylinder(t, 2, 1, 8, 1)
	if _, err := NewEstimator(inlineConfig(), nil).Estimate(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	buf := AttributeBuffer(m)
	if len(buf) != len(m.Vertices)*AttributeStride {
		t.Fatalf("buffer length %d, want %d", len(buf), len(m.Vertices)*AttributeStride)
	}

	i := 5
	v := m.Vertices[i]
	base := i * AttributeStride
	checks := []struct {
		name string
		off  int
		want float64
	}{
		{"position.x", AttrPosition, v.Position.X},
		{"normal.y", AttrNormal + 1, v.Normal.Y},
		{"pdir1.z", AttrPdir1 + 2, v.Pdir1.Z},
		{"pdir2.x", AttrPdir2, v.Pdir2.X},
		{"curv1", AttrCurv1, v.Curv1},
		{"curv2", AttrCurv2, v.Curv2},
		{"dcurv[3]", AttrDCurv + 3, v.DCurv[3]},
	}
	for _, c := range checks {
		if got := buf[base+c.off]; got != float32(c.want) {
			t.Errorf("%s = %v, want %v", c.name, got, float32(c.want))
		}
	}

	idx := IndexBuffer(m)
	if len(idx) != 3*len(m.Faces) {
		t.Fatalf("index buffer length %d, want %d", len(idx), 3*len(m.Faces))
	}
	if f := m.Faces[3]; idx[9] != uint32(f[0]) || idx[10] != uint32(f[1]) || idx[11] != uint32(f[2]) {
		t.Errorf("face 3 indices %v, want %v", idx[9:12], f)
	}
}

func TestFieldValue(t *testing.T) {
	v := Vertex{Curv1: -3, Curv2: 1}
	tests := []struct {
		field CurvatureField
		want  float64
	}{
		{FieldMean, -1},
		{FieldGaussian, -3},
		{FieldK1, -3},
		{FieldK2, 1},
	}
	for _, tt := range tests {
		got, err := FieldValue(v, tt.field)
		if err != nil {
			t.Errorf("%s: %v", tt.field, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s = %v, want %v", tt.field, got, tt.want)
		}
	}
	if _, err := FieldValue(v, "torsion"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("unknown field error = %v, want ErrUnknownField", err)
	}
}

func TestPointCloud(t *testing.T) {
	// The two vertices at x=0 are one seam-split corner.
	m := &Mesh{Vertices: []Vertex{
		{Position: r3.Vector{X: 0}, Curv1: 4, Curv2: 4},
		{Position: r3.Vector{X: 1}, Curv1: 0, Curv2: 0},
		{Position: r3.Vector{X: 2}, Curv1: -4, Curv2: 0},
		{Position: r3.Vector{X: 0}, Curv1: 0, Curv2: 0},
		{Position: r3.Vector{X: 1}, Curv1: math.NaN(), Curv2: 0},
	}}

	cloud, err := PointCloud(m, ExportConfig{Field: FieldMean})
	if err != nil {
		t.Fatalf("PointCloud: %v", err)
	}
	if cloud.Size() != 3 {
		t.Fatalf("cloud size %d, want 3 distinct positions", cloud.Size())
	}

	wantRGB := map[float64][3]uint8{
		0: {255, 0, 0},     // mean of 4 and 0, the largest magnitude
		1: {255, 255, 255}, // zero
		2: {0, 0, 255},     // -2
	}
	for x, want := range wantRGB {
		d, ok := cloud.At(x, 0, 0)
		if !ok || d == nil || !d.HasColor() {
			t.Errorf("point at x=%v missing or uncolored", x)
			continue
		}
		r, g, b := d.RGB255()
		if [3]uint8{r, g, b} != want {
			t.Errorf("point at x=%v color (%d, %d, %d), want %v", x, r, g, b, want)
		}
	}

	if _, err := PointCloud(m, ExportConfig{Field: "bogus"}); !errors.Is(err, ErrUnknownField) {
		t.Errorf("bad field error = %v, want ErrUnknownField", err)
	}
}

func TestRampColor(t *testing.T) {
	if c := rampColor(0.5, 1); c.R != 255 || c.G != 128 || c.B != 128 {
		t.Errorf("rampColor(0.5) = %+v", c)
	}
	if c := rampColor(-10, 1); c.R != 0 || c.B != 255 {
		t.Errorf("rampColor(-10) = %+v, want saturated blue", c)
	}
	if c := rampColor(math.NaN(), 1); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("rampColor(NaN) = %+v, want white", c)
	}
}

package meshcurvature

import (
	"math"
	"sort"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/mat"
)

var worldXY = Frame{U: r3.Vector{X: 1}, V: r3.Vector{Y: 1}}

// rotateAbout rotates v by angle radians about the unit axis (Rodrigues).
func rotateAbout(v, axis r3.Vector, angle float64) r3.Vector {
	c, s := math.Cos(angle), math.Sin(angle)
	return v.Mul(c).Add(axis.Cross(v).Mul(s)).Add(axis.Mul(axis.Dot(v) * (1 - c)))
}

func rotateFrame(f Frame, axis r3.Vector, angle float64) Frame {
	axis = axis.Normalize()
	return Frame{U: rotateAbout(f.U, axis, angle), V: rotateAbout(f.V, axis, angle)}
}

func TestFrame_RotateTo(t *testing.T) {
	tilted := r3.Vector{X: 0.3, Y: -0.2, Z: 1}.Normalize()
	r := worldXY.RotateTo(tilted)

	if d := r.Normal().Sub(tilted).Norm(); d > 1e-12 {
		t.Errorf("rotated normal off by %v", d)
	}
	if math.Abs(r.U.Norm()-1) > 1e-12 || math.Abs(r.V.Norm()-1) > 1e-12 || math.Abs(r.U.Dot(r.V)) > 1e-12 {
		t.Errorf("rotated frame is not orthonormal: %+v", r)
	}

	same := worldXY.RotateTo(r3.Vector{Z: 1})
	if same != worldXY {
		t.Errorf("RotateTo own normal = %+v, want unchanged", same)
	}

	flipped := worldXY.RotateTo(r3.Vector{Z: -1})
	want := Frame{U: r3.Vector{X: -1}, V: r3.Vector{Y: -1}}
	if flipped != want {
		t.Errorf("RotateTo opposite normal = %+v, want %+v", flipped, want)
	}
}

func TestCurvTensor_ProjectRoundTrip(t *testing.T) {
	a := CurvTensor{Frame: worldXY, KU: 0.7, KUV: -0.2, KV: 1.3}
	frames := map[string]Frame{
		"in-plane": rotateFrame(worldXY, r3.Vector{Z: 1}, 0.52),
		"tilted":   rotateFrame(worldXY, r3.Vector{X: 1, Y: 2}, 0.3),
	}
	for name, b := range frames {
		t.Run(name, func(t *testing.T) {
			back := a.Project(b).Project(worldXY)
			got := []float64{back.KU, back.KUV, back.KV}
			want := []float64{a.KU, a.KUV, a.KV}
			if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
			if back.Frame != worldXY {
				t.Errorf("projected tensor carries frame %+v", back.Frame)
			}
		})
	}
}

func TestCurvTensor_ProjectPreservesForm(t *testing.T) {
	// Same normal: the quadratic form evaluated on a fixed direction must agree.
	a := CurvTensor{Frame: worldXY, KU: 2, KUV: 0.5, KV: -1}
	b := a.Project(rotateFrame(worldXY, r3.Vector{Z: 1}, 1.1))

	dir := r3.Vector{X: 0.6, Y: 0.8}
	form := func(c CurvTensor) float64 {
		x, y := dir.Dot(c.U), dir.Dot(c.V)
		return c.KU*x*x + 2*c.KUV*x*y + c.KV*y*y
	}
	if math.Abs(form(a)-form(b)) > 1e-12 {
		t.Errorf("II(dir) = %v in A, %v in B", form(a), form(b))
	}
}

func TestCurvTensor_DiagonalizeMatchesEigen(t *testing.T) {
	tests := []CurvTensor{
		{Frame: worldXY, KU: 1, KUV: 0.4, KV: -2},
		{Frame: worldXY, KU: 3, KUV: -1, KV: 3},
		{Frame: worldXY, KU: -0.5, KUV: 0, KV: 0.2},
		{Frame: worldXY, KU: 0.1, KUV: 2, KV: 0.1},
	}
	normal := r3.Vector{Z: 1}
	for _, c := range tests {
		p := c.Diagonalize(normal)

		if math.Abs(p.K1) < math.Abs(p.K2) {
			t.Errorf("%+v: |K1| = %v < |K2| = %v", c, math.Abs(p.K1), math.Abs(p.K2))
		}

		var eig mat.EigenSym
		if !eig.Factorize(mat.NewSymDense(2, []float64{c.KU, c.KUV, c.KUV, c.KV}), false) {
			t.Fatal("eigen factorization failed")
		}
		want := eig.Values(nil)
		got := []float64{p.K1, p.K2}
		sort.Float64s(want)
		sort.Float64s(got)
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("%+v: eigenvalues mismatch (-want +got):\n%s", c, diff)
		}

		// Dir1 is an eigenvector for K1.
		x, y := p.Dir1.X, p.Dir1.Y
		mx := c.KU*x + c.KUV*y
		my := c.KUV*x + c.KV*y
		if math.Abs(mx-p.K1*x) > 1e-12 || math.Abs(my-p.K1*y) > 1e-12 {
			t.Errorf("%+v: Dir1 %v is not an eigenvector for %v", c, p.Dir1, p.K1)
		}
		if d := p.Dir2.Sub(normal.Cross(p.Dir1)).Norm(); d != 0 {
			t.Errorf("%+v: Dir2 != normal × Dir1", c)
		}
	}
}

func TestDCurvTensor_ProjectRoundTrip(t *testing.T) {
	a := DCurvTensor{Frame: worldXY, Coeffs: [4]float64{0.3, -1.2, 0.8, 2.1}}
	b := a.Project(rotateFrame(worldXY, r3.Vector{Z: 1}, 0.9))
	back := b.Project(worldXY)
	if diff := cmp.Diff(a.Coeffs[:], back.Coeffs[:], cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	// The cubic form evaluated on a fixed direction is basis independent.
	dir := r3.Vector{X: -0.28, Y: 0.96}
	cubic := func(d DCurvTensor) float64 {
		x, y := dir.Dot(d.U), dir.Dot(d.V)
		c := d.Coeffs
		return c[0]*x*x*x + 3*c[1]*x*x*y + 3*c[2]*x*y*y + c[3]*y*y*y
	}
	if math.Abs(cubic(a)-cubic(b)) > 1e-12 {
		t.Errorf("C(dir) = %v in A, %v in B", cubic(a), cubic(b))
	}
}

package meshcurvature

import (
	"fmt"
	"image/color"
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/rdk/pointcloud"
)

// AttributeStride is the number of float32 values per vertex in an
// attribute buffer: position, normal, pdir1, pdir2 (3 each), curv1, curv2,
// and the four dcurv coefficients.
const AttributeStride = 18

// Offsets of each attribute within a vertex's stride.
const (
	AttrPosition = 0
	AttrNormal   = 3
	AttrPdir1    = 6
	AttrPdir2    = 9
	AttrCurv1    = 12
	AttrCurv2    = 13
	AttrDCurv    = 14
)

// AttributeBuffer interleaves the per-vertex attributes a renderer consumes.
func AttributeBuffer(m *Mesh) []float32 {
	buf := make([]float32, 0, len(m.Vertices)*AttributeStride)
	putVec := func(v r3.Vector) {
		buf = append(buf, float32(v.X), float32(v.Y), float32(v.Z))
	}
	for _, v := range m.Vertices {
		putVec(v.Position)
		putVec(v.Normal)
		putVec(v.Pdir1)
		putVec(v.Pdir2)
		buf = append(buf, float32(v.Curv1), float32(v.Curv2))
		for _, d := range v.DCurv {
			buf = append(buf, float32(d))
		}
	}
	return buf
}

// IndexBuffer flattens the faces into a triangle index list.
func IndexBuffer(m *Mesh) []uint32 {
	idx := make([]uint32, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		idx = append(idx, uint32(f[0]), uint32(f[1]), uint32(f[2]))
	}
	return idx
}

// FieldValue evaluates a curvature field at a vertex.
func FieldValue(v Vertex, field CurvatureField) (float64, error) {
	switch field {
	case FieldMean, "":
		return 0.5 * (v.Curv1 + v.Curv2), nil
	case FieldGaussian:
		return v.Curv1 * v.Curv2, nil
	case FieldK1:
		return v.Curv1, nil
	case FieldK2:
		return v.Curv2, nil
	default:
		return 0, fmt.Errorf("%q: %w", field, ErrUnknownField)
	}
}

// PointCloud returns one colored point per distinct vertex position. The
// configured field is mapped onto a blue-white-red ramp that saturates at
// ±ColorScale; a zero scale uses the largest magnitude in the cloud.
// Vertices split at normal seams share a position, and their point carries
// the mean of their finite field values.
func PointCloud(m *Mesh, cfg ExportConfig) (pointcloud.PointCloud, error) {
	type point struct {
		pos r3.Vector
		sum float64
		n   int
	}
	var points []point
	slot := make(map[r3.Vector]int, len(m.Vertices))
	for _, v := range m.Vertices {
		x, err := FieldValue(v, cfg.Field)
		if err != nil {
			return nil, err
		}
		i, ok := slot[v.Position]
		if !ok {
			i = len(points)
			slot[v.Position] = i
			points = append(points, point{pos: v.Position})
		}
		if isFinite(x) {
			points[i].sum += x
			points[i].n++
		}
	}

	values := make([]float64, len(points))
	maxAbs := 0.0
	for i, p := range points {
		values[i] = math.NaN()
		if p.n > 0 {
			values[i] = p.sum / float64(p.n)
			maxAbs = math.Max(maxAbs, math.Abs(values[i]))
		}
	}
	scale := cfg.ColorScale
	if scale <= 0 {
		scale = maxAbs
	}

	cloud := pointcloud.NewBasicPointCloud(len(points))
	for i, p := range points {
		if err := cloud.Set(p.pos, pointcloud.NewColoredData(rampColor(values[i], scale))); err != nil {
			return nil, fmt.Errorf("point %v: %w", p.pos, err)
		}
	}
	return cloud, nil
}

// rampColor maps x/scale in [-1, 1] to blue, white and red.
func rampColor(x, scale float64) color.NRGBA {
	t := 0.0
	if scale > 0 && isFinite(x) {
		t = math.Max(-1, math.Min(1, x/scale))
	}
	fade := uint8(math.Round(255 * (1 - math.Abs(t))))
	if t >= 0 {
		return color.NRGBA{R: 255, G: fade, B: fade, A: 255}
	}
	return color.NRGBA{R: fade, G: fade, B: 255, A: 255}
}

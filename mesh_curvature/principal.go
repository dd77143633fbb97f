package meshcurvature

import (
	"github.com/golang/geo/r3"

	"github.com/biotinker/curvview/internal/ldlt"
)

// seedFrames gives every vertex an arbitrary orthonormal tangent frame. Each
// face points its corners' frames along the edge to the next corner; the last
// face to touch a vertex wins.
func seedFrames(m *Mesh) {
	seeds := make([]r3.Vector, len(m.Vertices))
	for _, f := range m.Faces {
		p0 := m.Vertices[f[0]].Position
		p1 := m.Vertices[f[1]].Position
		p2 := m.Vertices[f[2]].Position
		seeds[f[0]] = p1.Sub(p0)
		seeds[f[1]] = p2.Sub(p1)
		seeds[f[2]] = p0.Sub(p2)
	}

	for i := range m.Vertices {
		v := &m.Vertices[i]
		pdir1 := seeds[i].Cross(v.Normal).Normalize()
		if pdir1.Norm2() == 0 || !allFinite(pdir1.X, pdir1.Y, pdir1.Z) {
			// Isolated vertex, or a seed edge parallel to the normal.
			pdir1 = v.Normal.Ortho()
		}
		v.Pdir1 = pdir1
		v.Pdir2 = v.Normal.Cross(pdir1)
	}
}

// faceFrame builds the face's tangent frame: U along edge 0, V in the face
// plane, U × V along the face normal.
func faceFrame(e [3]r3.Vector) Frame {
	t := e[0].Normalize()
	n := e[0].Cross(e[1])
	b := n.Cross(t).Normalize()
	return Frame{U: t, V: b}
}

// faceCurvature fits a curvature tensor to the variation of vertex normals
// along the edges of face i and returns it already weighted and projected
// into each corner vertex's frame as (ku, kuv, kv).
func faceCurvature(m *Mesh, i int) ([3][3]float64, bool) {
	f := m.Faces[i]
	e := m.edges(f)
	frame := faceFrame(e)

	var w [3][3]float64
	var rhs [3]float64
	for j := 0; j < 3; j++ {
		u := e[j].Dot(frame.U)
		v := e[j].Dot(frame.V)
		w[0][0] += u * u
		w[0][1] += u * v
		w[2][2] += v * v

		// Normal change between the endpoints of edge j.
		dn := m.Vertices[f[(j+2)%3]].Normal.Sub(m.Vertices[f[(j+1)%3]].Normal)
		dnu := dn.Dot(frame.U)
		dnv := dn.Dot(frame.V)
		rhs[0] += dnu * u
		rhs[1] += dnu*v + dnv*u
		rhs[2] += dnv * v
	}
	w[1][1] = w[0][0] + w[2][2]
	w[1][2] = w[0][1]

	x, ok := ldlt.Solve3(w, rhs)
	if !ok || !allFinite(x[:]...) {
		return [3][3]float64{}, false
	}
	faceTensor := CurvTensor{Frame: frame, KU: x[0], KUV: x[1], KV: x[2]}

	var out [3][3]float64
	for j := 0; j < 3; j++ {
		wt := m.cornerWeight(i, j)
		if wt == 0 {
			continue
		}
		p := faceTensor.Project(m.Vertices[f[j]].Frame())
		if !p.finite() {
			return [3][3]float64{}, false
		}
		out[j] = [3]float64{wt * p.KU, wt * p.KUV, wt * p.KV}
	}
	return out, true
}

// diagonalizeVertices turns the accumulated tensors, expressed in each
// vertex's seeded frame, into principal curvatures and directions.
func diagonalizeVertices(m *Mesh, acc [][3]float64) {
	for i := range m.Vertices {
		v := &m.Vertices[i]
		t := CurvTensor{Frame: v.Frame(), KU: acc[i][0], KUV: acc[i][1], KV: acc[i][2]}
		p := t.Diagonalize(v.Normal)
		v.Pdir1, v.Pdir2 = p.Dir1, p.Dir2
		v.Curv1, v.Curv2 = p.K1, p.K2
	}
}

package meshcurvature

import "github.com/biotinker/curvview/internal/ldlt"

// faceDerivative fits the curvature derivative of face i from the change of
// the vertices' principal curvature tensors along its edges, and returns it
// weighted and projected into each corner vertex's frame.
func faceDerivative(m *Mesh, i int) ([3][4]float64, bool) {
	f := m.Faces[i]
	e := m.edges(f)
	frame := faceFrame(e)

	// Vertex tensors in the face frame; the principal frame has no
	// off-diagonal term.
	var fcurv [3][3]float64
	for j := 0; j < 3; j++ {
		v := m.Vertices[f[j]]
		p := CurvTensor{Frame: v.Frame(), KU: v.Curv1, KV: v.Curv2}.Project(frame)
		fcurv[j] = [3]float64{p.KU, p.KUV, p.KV}
	}

	var w [4][4]float64
	var rhs [4]float64
	for j := 0; j < 3; j++ {
		a, b := fcurv[(j+2)%3], fcurv[(j+1)%3]
		dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]

		u := e[j].Dot(frame.U)
		v := e[j].Dot(frame.V)
		w[0][0] += u * u
		w[0][1] += u * v
		w[3][3] += v * v
		rhs[0] += u * dx
		rhs[1] += v*dx + 2*u*dy
		rhs[2] += 2*v*dy + u*dz
		rhs[3] += v * dz
	}
	w[1][1] = 2*w[0][0] + w[3][3]
	w[1][2] = 2 * w[0][1]
	w[2][2] = w[0][0] + 2*w[3][3]
	w[2][3] = w[0][1]

	x, ok := ldlt.Solve4(w, rhs)
	if !ok || !allFinite(x[:]...) {
		return [3][4]float64{}, false
	}
	faceTensor := DCurvTensor{Frame: frame, Coeffs: x}

	var out [3][4]float64
	for j := 0; j < 3; j++ {
		wt := m.cornerWeight(i, j)
		if wt == 0 {
			continue
		}
		p := faceTensor.Project(m.Vertices[f[j]].Frame())
		if !allFinite(p.Coeffs[:]...) {
			return [3][4]float64{}, false
		}
		for k := range out[j] {
			out[j][k] = wt * p.Coeffs[k]
		}
	}
	return out, true
}

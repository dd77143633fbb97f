package meshcurvature

import "github.com/golang/geo/r3"

// Frame is an orthonormal tangent basis. Its normal is U × V.
type Frame struct {
	U, V r3.Vector
}

// Normal returns U × V.
func (f Frame) Normal() r3.Vector {
	return f.U.Cross(f.V)
}

// RotateTo transports the frame to the tangent plane of newNormal by the
// smallest rotation that takes the frame's normal onto newNormal. Exactly
// opposite normals are handled by negating both vectors.
func (f Frame) RotateTo(newNormal r3.Vector) Frame {
	oldNormal := f.Normal()
	ndot := oldNormal.Dot(newNormal)
	if ndot <= -1 {
		return Frame{U: f.U.Mul(-1), V: f.V.Mul(-1)}
	}

	// perpOld is orthogonal to oldNormal in the plane of both normals. dperp
	// folds the difference between the old and new in-plane perpendiculars
	// together with their normalization.
	perpOld := newNormal.Sub(oldNormal.Mul(ndot))
	dperp := oldNormal.Add(newNormal).Mul(1 / (1 + ndot))

	return Frame{
		U: f.U.Sub(dperp.Mul(f.U.Dot(perpOld))),
		V: f.V.Sub(dperp.Mul(f.V.Dot(perpOld))),
	}
}

// coefficients returns the components of to's vectors, after transport onto
// this frame's tangent plane, along this frame's U and V.
func (f Frame) coefficients(to Frame) (u1, v1, u2, v2 float64) {
	r := to.RotateTo(f.Normal())
	return r.U.Dot(f.U), r.U.Dot(f.V), r.V.Dot(f.U), r.V.Dot(f.V)
}

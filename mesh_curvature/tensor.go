package meshcurvature

import (
	"math"

	"github.com/golang/geo/r3"
)

// CurvTensor is a second fundamental form together with the basis it is
// expressed in.
type CurvTensor struct {
	Frame
	KU, KUV, KV float64
}

// Project re-expresses the tensor in the frame to.
func (c CurvTensor) Project(to Frame) CurvTensor {
	u1, v1, u2, v2 := c.Frame.coefficients(to)
	return CurvTensor{
		Frame: to,
		KU:    c.KU*u1*u1 + c.KUV*(2*u1*v1) + c.KV*v1*v1,
		KUV:   c.KU*u1*u2 + c.KUV*(u1*v2+u2*v1) + c.KV*v1*v2,
		KV:    c.KU*u2*u2 + c.KUV*(2*u2*v2) + c.KV*v2*v2,
	}
}

// Diagonalize transports the tensor onto the tangent plane of normal and
// returns its principal curvatures and directions, ordered so that
// |K1| >= |K2|. Dir2 is always normal × Dir1.
func (c CurvTensor) Diagonalize(normal r3.Vector) Principal {
	r := c.Frame.RotateTo(normal)

	// One Jacobi rotation zeroes the single off-diagonal term.
	cs, sn, tt := 1.0, 0.0, 0.0
	if c.KUV != 0 {
		h := 0.5 * (c.KV - c.KU) / c.KUV
		if h < 0 {
			tt = 1 / (h - math.Sqrt(1+h*h))
		} else {
			tt = 1 / (h + math.Sqrt(1+h*h))
		}
		cs = 1 / math.Sqrt(1+tt*tt)
		sn = tt * cs
	}

	k1 := c.KU - tt*c.KUV
	k2 := c.KV + tt*c.KUV

	var dir1 r3.Vector
	if math.Abs(k1) >= math.Abs(k2) {
		dir1 = r.U.Mul(cs).Sub(r.V.Mul(sn))
	} else {
		k1, k2 = k2, k1
		dir1 = r.U.Mul(sn).Add(r.V.Mul(cs))
	}
	return Principal{
		Dir1: dir1,
		Dir2: normal.Cross(dir1),
		K1:   k1,
		K2:   k2,
	}
}

func (c CurvTensor) finite() bool {
	return isFinite(c.KU) && isFinite(c.KUV) && isFinite(c.KV)
}

// DCurvTensor is a symmetric third-order tensor (the derivative of the
// curvature) with the basis it is expressed in. Coeffs are the u³, u²v, uv²
// and v³ components.
type DCurvTensor struct {
	Frame
	Coeffs [4]float64
}

// Project re-expresses the tensor in the frame to.
func (d DCurvTensor) Project(to Frame) DCurvTensor {
	u1, v1, u2, v2 := d.Frame.coefficients(to)
	a, b, c, e := d.Coeffs[0], d.Coeffs[1], d.Coeffs[2], d.Coeffs[3]
	return DCurvTensor{
		Frame: to,
		Coeffs: [4]float64{
			a*u1*u1*u1 + b*3*u1*u1*v1 + c*3*u1*v1*v1 + e*v1*v1*v1,
			a*u1*u1*u2 + b*(u1*u1*v2+2*u2*u1*v1) + c*(u2*v1*v1+2*u1*v1*v2) + e*v1*v1*v2,
			a*u1*u2*u2 + b*(u2*u2*v1+2*u1*u2*v2) + c*(u1*v2*v2+2*u2*v2*v1) + e*v1*v2*v2,
			a*u2*u2*u2 + b*3*u2*u2*v2 + c*3*u2*v2*v2 + e*v2*v2*v2,
		},
	}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func allFinite(xs ...float64) bool {
	for _, x := range xs {
		if !isFinite(x) {
			return false
		}
	}
	return true
}

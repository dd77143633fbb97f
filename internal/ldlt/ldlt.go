// Package ldlt factors and solves small symmetric linear systems with an
// LDLᵀ decomposition that uses no square roots and no pivoting.
//
// Matrices are passed as slices of rows. Only the diagonal and the upper
// triangle are read on input. Decompose overwrites the strict lower triangle
// with L·D and stores the reciprocal pivots in rdiag; Solve consumes that
// representation without refactoring.
package ldlt

// Decompose factors the n×n symmetric matrix a in place, where n = len(rdiag).
// Sizes 1 through 3 use a closed form; larger sizes use the Golub–van Loan
// recursion. It reports false if any pivot is exactly zero, in which case the
// contents of a and rdiag are unspecified.
func Decompose(a [][]float64, rdiag []float64) bool {
	n := len(rdiag)
	switch {
	case n < 1:
		return false
	case n <= 3:
		return decomposeSmall(a, rdiag)
	}

	v := make([]float64, n-1)
	for i := 0; i < n; i++ {
		for k := 0; k < i; k++ {
			v[k] = a[i][k] * rdiag[k]
		}
		for j := i; j < n; j++ {
			sum := a[i][j]
			for k := 0; k < i; k++ {
				sum -= v[k] * a[j][k]
			}
			if i == j {
				if sum == 0 {
					return false
				}
				rdiag[i] = 1 / sum
			} else {
				a[j][i] = sum
			}
		}
	}
	return true
}

func decomposeSmall(a [][]float64, rdiag []float64) bool {
	n := len(rdiag)

	d0 := a[0][0]
	if d0 == 0 {
		return false
	}
	rdiag[0] = 1 / d0
	if n == 1 {
		return true
	}

	a[1][0] = a[0][1]
	l10 := rdiag[0] * a[1][0]
	d1 := a[1][1] - l10*a[1][0]
	if d1 == 0 {
		return false
	}
	rdiag[1] = 1 / d1
	if n == 2 {
		return true
	}

	// The third row of L·D must be in place before the last pivot is formed.
	a[2][0] = a[0][2]
	a[2][1] = a[1][2] - l10*a[2][0]
	d2 := a[2][2] - rdiag[0]*a[2][0]*a[2][0] - rdiag[1]*a[2][1]*a[2][1]
	if d2 == 0 {
		return false
	}
	rdiag[2] = 1 / d2
	return true
}

// Solve computes x from a factorization produced by Decompose and the
// right-hand side b. x may alias b.
func Solve(a [][]float64, rdiag, b, x []float64) {
	n := len(rdiag)
	for i := 0; i < n; i++ {
		sum := b[i]
		for k := 0; k < i; k++ {
			sum -= a[i][k] * x[k]
		}
		x[i] = sum * rdiag[i]
	}
	for i := n - 1; i >= 0; i-- {
		var sum float64
		for k := i + 1; k < n; k++ {
			sum += a[k][i] * x[k]
		}
		x[i] -= sum * rdiag[i]
	}
}

// Solve3 factors and solves a 3×3 system held in fixed-size arrays. The
// matrix and right-hand side are not modified.
func Solve3(w [3][3]float64, m [3]float64) ([3]float64, bool) {
	a := [][]float64{w[0][:], w[1][:], w[2][:]}
	var rdiag [3]float64
	if !Decompose(a, rdiag[:]) {
		return [3]float64{}, false
	}
	Solve(a, rdiag[:], m[:], m[:])
	return m, true
}

// Solve4 is Solve3 for 4×4 systems.
func Solve4(w [4][4]float64, m [4]float64) ([4]float64, bool) {
	a := [][]float64{w[0][:], w[1][:], w[2][:], w[3][:]}
	var rdiag [4]float64
	if !Decompose(a, rdiag[:]) {
		return [4]float64{}, false
	}
	Solve(a, rdiag[:], m[:], m[:])
	return m, true
}

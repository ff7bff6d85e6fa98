package keyshare

import "github.com/wbrc/gf65536"

// evalPoly evaluates coeff[0] + coeff[1]x + coeff[2]x^2 + ... at x.
func evalPoly(f gf65536.Field, coeff []uint16, x uint16) uint16 {
	var r uint16
	for i := len(coeff) - 1; i >= 0; i-- {
		r = f.Add(f.Mul(r, x), coeff[i])
	}
	return r
}

// lagrangeBasis returns the Lagrange basis polynomials for xs evaluated at 0.
// In characteristic 2, 0 - x_j = x_j and x_i - x_j = x_i + x_j. xs must be
// distinct and non-zero.
func lagrangeBasis(f gf65536.Field, xs []uint16) []uint16 {
	basis := make([]uint16, len(xs))
	for i, xi := range xs {
		var l uint16 = 1
		for j, xj := range xs {
			if i == j {
				continue
			}
			l = f.Mul(l, f.Mul(xj, f.Inv(f.Add(xi, xj))))
		}
		basis[i] = l
	}
	return basis
}

// interpolate returns p(0) for the polynomial through (xs[i], ys[i]).
func interpolate(f gf65536.Field, basis, ys []uint16) uint16 {
	var r uint16
	for i := range ys {
		r = f.Add(r, f.Mul(ys[i], basis[i]))
	}
	return r
}

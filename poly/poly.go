// Package poly implements dense polynomial arithmetic over a prime field.
//
// A [Poly] is a trimmed coefficient vector: the leading coefficient is
// non-zero, and the zero polynomial has no coefficients. All operations are
// methods on a [Ring], which carries the coefficient field and scratch
// buffers.
package poly

import (
	"math/big"
)

// Poly is a dense polynomial over F_p.
// Coeffs[i] is the coefficient of x^i; trailing zeros are trimmed.
type Poly struct {
	Coeffs []*big.Int
}

// New creates a zero Poly.
func New() Poly {
	return Poly{Coeffs: []*big.Int{}}
}

// Degree returns the degree of the Poly.
// The zero polynomial has degree -1.
func (p Poly) Degree() int {
	return len(p.Coeffs) - 1
}

// IsZero returns whether p is the zero polynomial.
func (p Poly) IsZero() bool {
	return len(p.Coeffs) == 0
}

// Coeff returns the coefficient of x^i.
// Coefficients beyond the degree are zero.
// The returned value must not be mutated.
func (p Poly) Coeff(i int) *big.Int {
	if i < 0 || i >= len(p.Coeffs) {
		return big.NewInt(0)
	}
	return p.Coeffs[i]
}

// LeadCoeff returns the leading coefficient of p,
// or zero for the zero polynomial.
// The returned value must not be mutated.
func (p Poly) LeadCoeff() *big.Int {
	if len(p.Coeffs) == 0 {
		return big.NewInt(0)
	}
	return p.Coeffs[len(p.Coeffs)-1]
}

// IsMonic returns whether the leading coefficient of p is one.
func (p Poly) IsMonic() bool {
	return len(p.Coeffs) > 0 && p.Coeffs[len(p.Coeffs)-1].Cmp(big.NewInt(1)) == 0
}

// Copy returns a deep copy of p.
func (p Poly) Copy() Poly {
	coeffs := make([]*big.Int, len(p.Coeffs))
	for i := range p.Coeffs {
		coeffs[i] = big.NewInt(0).Set(p.Coeffs[i])
	}
	return Poly{Coeffs: coeffs}
}

// Equal returns whether p and q have identical coefficients.
func (p Poly) Equal(q Poly) bool {
	if len(p.Coeffs) != len(q.Coeffs) {
		return false
	}
	for i := range p.Coeffs {
		if p.Coeffs[i].Cmp(q.Coeffs[i]) != 0 {
			return false
		}
	}
	return true
}

// trim removes trailing zero coefficients.
func trim(coeffs []*big.Int) []*big.Int {
	i := len(coeffs)
	for i > 0 && coeffs[i-1].Sign() == 0 {
		i--
	}
	return coeffs[:i]
}

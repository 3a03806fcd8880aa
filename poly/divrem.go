package poly

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrDivisionByZero is returned when dividing by the zero polynomial.
	ErrDivisionByZero = errors.New("division by zero polynomial")
	// ErrNonInvertibleLead is returned when the divisor's leading coefficient
	// has no inverse. Impossible over a prime field; kept to match the
	// general-field contract.
	ErrNonInvertibleLead = errors.New("leading coefficient is not invertible")
)

// DivRem returns q, rem such that a = q*b + rem and deg(rem) < deg(b).
func (r *Ring) DivRem(a, b Poly) (Poly, Poly, error) {
	if b.IsZero() {
		return Poly{}, Poly{}, ErrDivisionByZero
	}

	leadInv, err := r.fld.Inv(b.LeadCoeff())
	if err != nil {
		return Poly{}, Poly{}, fmt.Errorf("divrem: %w", ErrNonInvertibleLead)
	}

	n, m := a.Degree(), b.Degree()
	if n < m {
		return New(), a.Copy(), nil
	}

	rem := make([]*big.Int, n+1)
	for i := range rem {
		rem[i] = big.NewInt(0).Set(a.Coeffs[i])
	}

	q := make([]*big.Int, n-m+1)
	for i := range q {
		q[i] = big.NewInt(0)
	}

	qc := big.NewInt(0)
	for i := n - m; i >= 0; i-- {
		if rem[m+i].Sign() == 0 {
			continue
		}
		r.fld.MulAssign(rem[m+i], leadInv, qc)
		q[i].Set(qc)

		for j := 0; j <= m; j++ {
			r.buffer.t.Mul(qc, b.Coeffs[j])
			r.fld.Reduce(r.buffer.t)
			r.fld.SubAssign(rem[i+j], r.buffer.t, rem[i+j])
		}
	}

	return Poly{Coeffs: trim(q)}, Poly{Coeffs: trim(rem)}, nil
}

// Monic returns p scaled so its leading coefficient is one.
// Returns the zero polynomial unchanged.
func (r *Ring) Monic(p Poly) Poly {
	if p.IsZero() || p.IsMonic() {
		return p.Copy()
	}

	leadInv, err := r.fld.Inv(p.LeadCoeff())
	if err != nil {
		// Trimmed polynomials have a non-zero lead.
		panic(err)
	}
	return r.ScalarMul(p, leadInv)
}

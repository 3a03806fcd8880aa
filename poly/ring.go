package poly

import (
	"math/big"

	"github.com/initc3/powermix/field"
)

// Ring is a polynomial ring F_p[x].
// A Ring is not safe for concurrent use; use [Ring.ShallowCopy] to obtain
// a thread-safe handle.
type Ring struct {
	fld *field.Field

	buffer ringBuffer
}

type ringBuffer struct {
	t *big.Int
}

// NewRing creates a new Ring over fld.
func NewRing(fld *field.Field) *Ring {
	return &Ring{
		fld: fld,

		buffer: ringBuffer{
			t: big.NewInt(0),
		},
	}
}

// ShallowCopy creates a shallow copy of Ring that is thread-safe.
func (r *Ring) ShallowCopy() *Ring {
	return &Ring{
		fld: r.fld.ShallowCopy(),

		buffer: ringBuffer{
			t: big.NewInt(0),
		},
	}
}

// Field returns the coefficient field of the Ring.
func (r *Ring) Field() *field.Field {
	return r.fld
}

// FromCoeffs creates a Poly with the given coefficients,
// reducing each to its canonical residue.
func (r *Ring) FromCoeffs(coeffs []*big.Int) Poly {
	out := make([]*big.Int, len(coeffs))
	for i := range coeffs {
		out[i] = r.fld.Mod(coeffs[i])
	}
	return Poly{Coeffs: trim(out)}
}

// FromInt64s creates a Poly with the given int64 coefficients.
func (r *Ring) FromInt64s(coeffs ...int64) Poly {
	out := make([]*big.Int, len(coeffs))
	for i := range coeffs {
		out[i] = r.fld.Mod(big.NewInt(coeffs[i]))
	}
	return Poly{Coeffs: trim(out)}
}

// Constant creates the constant Poly c.
func (r *Ring) Constant(c *big.Int) Poly {
	return Poly{Coeffs: trim([]*big.Int{r.fld.Mod(c)})}
}

// SetCoeff returns a copy of p with the coefficient of x^i set to c.
func (r *Ring) SetCoeff(p Poly, i int, c *big.Int) Poly {
	n := len(p.Coeffs)
	if i+1 > n {
		n = i + 1
	}
	coeffs := make([]*big.Int, n)
	for j := range coeffs {
		if j < len(p.Coeffs) {
			coeffs[j] = big.NewInt(0).Set(p.Coeffs[j])
		} else {
			coeffs[j] = big.NewInt(0)
		}
	}
	coeffs[i] = r.fld.Mod(c)
	return Poly{Coeffs: trim(coeffs)}
}

// Add returns p0 + p1.
func (r *Ring) Add(p0, p1 Poly) Poly {
	n := len(p0.Coeffs)
	if len(p1.Coeffs) > n {
		n = len(p1.Coeffs)
	}

	coeffs := make([]*big.Int, n)
	for i := range coeffs {
		coeffs[i] = big.NewInt(0)
		r.fld.AddAssign(p0.Coeff(i), p1.Coeff(i), coeffs[i])
	}
	return Poly{Coeffs: trim(coeffs)}
}

// Sub returns p0 - p1.
func (r *Ring) Sub(p0, p1 Poly) Poly {
	n := len(p0.Coeffs)
	if len(p1.Coeffs) > n {
		n = len(p1.Coeffs)
	}

	coeffs := make([]*big.Int, n)
	for i := range coeffs {
		coeffs[i] = big.NewInt(0)
		r.fld.SubAssign(p0.Coeff(i), p1.Coeff(i), coeffs[i])
	}
	return Poly{Coeffs: trim(coeffs)}
}

// Neg returns -p.
func (r *Ring) Neg(p Poly) Poly {
	coeffs := make([]*big.Int, len(p.Coeffs))
	for i := range coeffs {
		coeffs[i] = big.NewInt(0)
		r.fld.NegAssign(p.Coeffs[i], coeffs[i])
	}
	return Poly{Coeffs: coeffs}
}

// ScalarMul returns p * c.
func (r *Ring) ScalarMul(p Poly, c *big.Int) Poly {
	coeffs := make([]*big.Int, len(p.Coeffs))
	for i := range coeffs {
		coeffs[i] = big.NewInt(0)
		r.fld.MulAssign(p.Coeffs[i], c, coeffs[i])
	}
	return Poly{Coeffs: trim(coeffs)}
}

// Mul returns p0 * p1 by schoolbook convolution.
func (r *Ring) Mul(p0, p1 Poly) Poly {
	if p0.IsZero() || p1.IsZero() {
		return New()
	}
	return r.mulTrunc(p0, p1, len(p0.Coeffs)+len(p1.Coeffs)-1)
}

// MulTrunc returns the coefficients below m of p0 * p1.
func (r *Ring) MulTrunc(p0, p1 Poly, m int) Poly {
	if m <= 0 || p0.IsZero() || p1.IsZero() {
		return New()
	}
	if n := len(p0.Coeffs) + len(p1.Coeffs) - 1; m > n {
		m = n
	}
	return r.mulTrunc(p0, p1, m)
}

func (r *Ring) mulTrunc(p0, p1 Poly, m int) Poly {
	coeffs := make([]*big.Int, m)
	for i := range coeffs {
		coeffs[i] = big.NewInt(0)
	}

	for i := range p0.Coeffs {
		if i >= m {
			break
		}
		if p0.Coeffs[i].Sign() == 0 {
			continue
		}
		for j := range p1.Coeffs {
			if i+j >= m {
				break
			}
			r.fld.MulAddAssign(p0.Coeffs[i], p1.Coeffs[j], coeffs[i+j])
		}
	}
	return Poly{Coeffs: trim(coeffs)}
}

// Eval returns p(x) by Horner's rule.
func (r *Ring) Eval(p Poly, x *big.Int) *big.Int {
	res := big.NewInt(0)
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		r.buffer.t.Mul(res, x)
		res.Add(r.buffer.t, p.Coeffs[i])
		r.fld.Reduce(res)
	}
	return res
}

// BuildFromRoots returns the monic polynomial (x - xs[0]) ... (x - xs[n-1]).
func (r *Ring) BuildFromRoots(xs []*big.Int) Poly {
	n := len(xs)
	coeffs := make([]*big.Int, n+1)
	for i := range coeffs {
		coeffs[i] = big.NewInt(0)
	}
	coeffs[0].SetInt64(1)

	neg := big.NewInt(0)
	deg := 0
	for _, root := range xs {
		r.fld.NegAssign(r.fld.Mod(root), neg)
		for j := deg; j >= 0; j-- {
			r.fld.AddAssign(coeffs[j+1], coeffs[j], coeffs[j+1])
			r.fld.MulAssign(coeffs[j], neg, coeffs[j])
		}
		deg++
	}
	return Poly{Coeffs: coeffs}
}

// Derivative returns the formal derivative of p.
func (r *Ring) Derivative(p Poly) Poly {
	if p.Degree() < 1 {
		return New()
	}

	coeffs := make([]*big.Int, p.Degree())
	for i := range coeffs {
		coeffs[i] = big.NewInt(0)
		r.buffer.t.SetInt64(int64(i + 1))
		r.fld.MulAssign(r.fld.Mod(r.buffer.t), p.Coeffs[i+1], coeffs[i])
	}
	return Poly{Coeffs: trim(coeffs)}
}

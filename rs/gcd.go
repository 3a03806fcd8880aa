package rs

import (
	"github.com/initc3/powermix/poly"
)

// PartialGCD runs the extended Euclidean remainder sequence on (p0, p1),
// halting at the first remainder of degree < threshold. It returns
// (g, u, v) with g = u*p0 + v*p1.
//
// If either input already has degree below the threshold, the sequence
// does not advance.
func PartialGCD(r *poly.Ring, p0, p1 poly.Poly, threshold int) (poly.Poly, poly.Poly, poly.Poly, error) {
	r0, r1 := p0.Copy(), p1.Copy()
	s0, s1 := r.FromInt64s(1), poly.New()
	t0, t1 := poly.New(), r.FromInt64s(1)

	if r0.Degree() < threshold {
		return r0, s0, t0, nil
	}
	if r1.Degree() < threshold {
		return r1, s1, t1, nil
	}

	for {
		q, r2, err := r.DivRem(r0, r1)
		if err != nil {
			return poly.Poly{}, poly.Poly{}, poly.Poly{}, err
		}
		s2 := r.Sub(s0, r.Mul(q, s1))
		t2 := r.Sub(t0, r.Mul(q, t1))

		if r2.Degree() < threshold {
			return r2, s2, t2, nil
		}

		r0, r1 = r1, r2
		s0, s1 = s1, s2
		t0, t1 = t1, t2
	}
}

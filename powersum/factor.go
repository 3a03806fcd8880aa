package powersum

import (
	"math/big"

	"github.com/initc3/powermix/csprng"
	"github.com/initc3/powermix/poly"
)

type rootFactor struct {
	root         *big.Int
	multiplicity int
}

// rootsWithMultiplicity finds the roots of the monic polynomial f over F_p
// together with their multiplicities, and the total degree contributed by
// linear factors. It never constructs the non-linear part of the
// factorisation: the product of all distinct linear factors is split off
// as gcd(f, x^p - x) and its roots are extracted by equal-degree splitting.
func rootsWithMultiplicity(r *poly.Ring, f poly.Poly) ([]rootFactor, int, error) {
	fld := r.Field()
	p := fld.Modulus()

	x := r.FromInt64s(0, 1)

	// gcd(f, x^p - x) is the product of (x - root) over distinct roots.
	xp, err := polyExpMod(r, x, p, f)
	if err != nil {
		return nil, 0, err
	}
	g, err := polyGCD(r, f, r.Sub(xp, x))
	if err != nil {
		return nil, 0, err
	}

	var roots []*big.Int
	sampler := csprng.NewStreamSampler()
	if err := splitRoots(r, g, sampler, &roots); err != nil {
		return nil, 0, err
	}

	factors := make([]rootFactor, 0, len(roots))
	total := 0
	rem := f
	for _, root := range roots {
		lin := r.BuildFromRoots([]*big.Int{root})

		mult := 0
		for {
			q, rr, err := r.DivRem(rem, lin)
			if err != nil {
				return nil, 0, err
			}
			if !rr.IsZero() {
				break
			}
			rem = q
			mult++
		}

		factors = append(factors, rootFactor{root: root, multiplicity: mult})
		total += mult
	}

	return factors, total, nil
}

// splitRoots extracts the roots of g, a monic product of distinct linear
// factors, by Cantor-Zassenhaus equal-degree splitting: gcd with
// (x + a)^((p-1)/2) - 1 for random a separates the roots into quadratic
// residues and non-residues of the shifted domain.
func splitRoots(r *poly.Ring, g poly.Poly, sampler *csprng.StreamSampler, roots *[]*big.Int) error {
	fld := r.Field()

	switch g.Degree() {
	case -1, 0:
		return nil
	case 1:
		*roots = append(*roots, fld.Neg(g.Coeff(0)))
		return nil
	}

	p := fld.Modulus()
	expHalf := big.NewInt(0).Sub(p, big.NewInt(1))
	expHalf.Rsh(expHalf, 1)

	one := r.FromInt64s(1)
	a := big.NewInt(0)
	for {
		sampler.SampleModAssign(p, a)
		shifted := r.FromCoeffs([]*big.Int{a, big.NewInt(1)})

		h, err := polyExpMod(r, shifted, expHalf, g)
		if err != nil {
			return err
		}

		d, err := polyGCD(r, g, r.Sub(h, one))
		if err != nil {
			return err
		}
		if d.Degree() <= 0 || d.Degree() >= g.Degree() {
			continue
		}

		q, _, err := r.DivRem(g, d)
		if err != nil {
			return err
		}
		if err := splitRoots(r, d, sampler, roots); err != nil {
			return err
		}
		return splitRoots(r, q, sampler, roots)
	}
}

// polyExpMod returns base^e mod m by square and multiply.
func polyExpMod(r *poly.Ring, base poly.Poly, e *big.Int, m poly.Poly) (poly.Poly, error) {
	_, b, err := r.DivRem(base, m)
	if err != nil {
		return poly.Poly{}, err
	}

	res := r.FromInt64s(1)
	for i := e.BitLen() - 1; i >= 0; i-- {
		if res, err = mulMod(r, res, res, m); err != nil {
			return poly.Poly{}, err
		}
		if e.Bit(i) == 1 {
			if res, err = mulMod(r, res, b, m); err != nil {
				return poly.Poly{}, err
			}
		}
	}
	return res, nil
}

func mulMod(r *poly.Ring, a, b, m poly.Poly) (poly.Poly, error) {
	_, rem, err := r.DivRem(r.Mul(a, b), m)
	return rem, err
}

// polyGCD returns the monic greatest common divisor of a and b.
func polyGCD(r *poly.Ring, a, b poly.Poly) (poly.Poly, error) {
	a, b = a.Copy(), b.Copy()
	for !b.IsZero() {
		_, rem, err := r.DivRem(a, b)
		if err != nil {
			return poly.Poly{}, err
		}
		a, b = b, rem
	}
	return r.Monic(a), nil
}

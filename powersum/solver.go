package powersum

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/initc3/powermix/field"
	"github.com/initc3/powermix/poly"
)

const (
	// MinParties is the smallest solvable party count.
	MinParties = 2
	// MaxParties is a soft guard against accidental misuse.
	MaxParties = 4097
)

// Solve recovers the unordered multiset of n secrets from their power sums:
// sums[i-1] = sum_j m_j^i mod p for i = 1..n. The result is sorted in
// ascending residue order.
//
// Newton's identities rebuild the elementary symmetric polynomial
// P(x) = (x - m_1)...(x - m_n); factoring P over F_p yields the secrets.
// Returns ErrInvalidPowerSums when P does not split into linear factors
// with multiplicities summing to n.
func Solve(p *big.Int, sums []*big.Int) ([]*big.Int, error) {
	n := len(sums)
	if n < MinParties || n > MaxParties {
		return nil, ErrMalformedInput
	}
	if p == nil || p.Cmp(big.NewInt(int64(n))) <= 0 {
		return nil, ErrMalformedInput
	}

	fld, err := field.New(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	r := poly.NewRing(fld)

	s := make([]*big.Int, n)
	for i := range sums {
		s[i] = fld.Mod(sums[i])
	}

	// Newton: i*e_i = sum_{j=1..i} (-1)^(j-1) e_{i-j} s_j, with the signs
	// folded into a single multiply by inv(-(i+1)) per step.
	pCoeffs := make([]*big.Int, n+1)
	pCoeffs[n] = big.NewInt(1)

	coeff := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		c := big.NewInt(0).Set(s[i])
		k := 0
		for j := i - 1; j >= 0; j-- {
			fld.MulAddAssign(coeff[k], s[j], c)
			k++
		}

		inv, err := fld.Inv(fld.Neg(big.NewInt(int64(i + 1))))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		fld.MulAssign(c, inv, c)

		coeff[i] = c
		pCoeffs[n-i-1] = big.NewInt(0).Set(c)
	}

	roots, total, err := rootsWithMultiplicity(r, poly.Poly{Coeffs: pCoeffs})
	if err != nil {
		return nil, err
	}
	if total != n {
		return nil, ErrInvalidPowerSums
	}

	sort.Slice(roots, func(i, j int) bool {
		return roots[i].root.Cmp(roots[j].root) < 0
	})

	messages := make([]*big.Int, 0, n)
	for _, rf := range roots {
		for m := 0; m < rf.multiplicity; m++ {
			messages = append(messages, big.NewInt(0).Set(rf.root))
		}
	}
	return messages, nil
}

package powersum

import (
	"math/big"

	"github.com/initc3/powermix/field"
)

// Powers computes (a^1, ..., a^k) from the opened difference a-b and the
// precomputed powers bPows = (b^1, ..., b^k) of a peer-chosen random b.
//
// The diagonal recurrence applies a^m = b^m + (a-b) * sum_j a^j * b^(m-1-j)
// so that only the opened value multiplies secret-dependent data; the party
// never holds b itself. When aMinusB is nil it is computed as a - bPows[0].
func Powers(fld *field.Field, a *big.Int, k int, bPows []*big.Int, aMinusB *big.Int) ([]*big.Int, error) {
	if len(bPows) != k {
		return nil, ErrLengthMismatch
	}
	if k == 0 {
		return []*big.Int{}, nil
	}

	if aMinusB == nil {
		aMinusB = fld.Sub(fld.Mod(a), bPows[0])
	} else {
		aMinusB = fld.Mod(aMinusB)
	}

	aPows := make([]*big.Int, k)

	prev := []*big.Int{big.NewInt(1)}
	sigma := big.NewInt(0)
	for m := 1; m <= k; m++ {
		diag := make([]*big.Int, m+1)
		diag[0] = big.NewInt(0).Set(bPows[m-1])

		sigma.SetInt64(0)
		for i := 1; i <= m; i++ {
			fld.AddAssign(sigma, prev[i-1], sigma)
			diag[i] = fld.Mul(aMinusB, sigma)
			fld.AddAssign(diag[i], bPows[m-1], diag[i])
		}

		aPows[m-1] = diag[m]
		prev = diag
	}

	return aPows, nil
}

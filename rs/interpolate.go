// Package rs implements Reed-Solomon style polynomial reconstruction:
// classical and FFT-backed interpolation, and Gao list decoding of
// corrupted evaluations.
package rs

import (
	"errors"
	"math/big"

	"github.com/bits-and-blooms/bitset"
	"github.com/initc3/powermix/fft"
	"github.com/initc3/powermix/poly"
)

var (
	// ErrMalformedInput is returned on length mismatches, thresholds out of
	// range, or repeated evaluation points.
	ErrMalformedInput = errors.New("malformed decoder input")
	// ErrDuplicatePoint is returned when evaluation positions repeat.
	ErrDuplicatePoint = errors.New("duplicate evaluation point")
	// ErrDecodeFailed is returned when decoding does not converge to a valid
	// codeword. The caller may retry with more shares.
	ErrDecodeFailed = errors.New("decoding failed")
)

// Interpolate returns the unique polynomial of degree < len(xs) passing
// through the points (xs[i], ys[i]).
//
// Runs in O(n^2) using the master polynomial M = prod (x - x_i):
// each Lagrange basis numerator is M / (x - x_i), obtained by synthetic
// division, and its scale factor is 1 / M'(x_i).
func Interpolate(r *poly.Ring, xs, ys []*big.Int) (poly.Poly, error) {
	if len(xs) != len(ys) {
		return poly.Poly{}, ErrMalformedInput
	}
	n := len(xs)
	if n == 0 {
		return poly.New(), nil
	}

	fld := r.Field()
	m := r.BuildFromRoots(xs)

	acc := make([]*big.Int, n)
	for i := range acc {
		acc[i] = big.NewInt(0)
	}

	q := make([]*big.Int, n)
	for i := range q {
		q[i] = big.NewInt(0)
	}
	denom := big.NewInt(0)
	scale := big.NewInt(0)

	t := big.NewInt(0)
	for i := 0; i < n; i++ {
		xi := fld.Mod(xs[i])

		// Synthetic division: q = m / (x - xi).
		q[n-1].SetInt64(1)
		for j := n - 1; j > 0; j-- {
			fld.MulAssign(q[j], xi, t)
			fld.AddAssign(t, m.Coeff(j), q[j-1])
		}

		// q(xi) = m'(xi); zero iff xi repeats among the roots.
		denom.SetInt64(0)
		for j := n - 1; j >= 0; j-- {
			fld.MulAssign(denom, xi, denom)
			fld.AddAssign(denom, q[j], denom)
		}

		inv, err := fld.Inv(denom)
		if err != nil {
			return poly.Poly{}, ErrDuplicatePoint
		}
		fld.MulAssign(ys[i], inv, scale)

		for j := 0; j < n; j++ {
			fld.MulAddAssign(q[j], scale, acc[j])
		}
	}

	return r.FromCoeffs(acc), nil
}

// StepState is the reusable output of [FNTDecodeStep1]. It depends only on
// the evaluation positions, so batched interpolation over many value
// vectors amortises step 1.
type StepState struct {
	// A is the locator polynomial prod (x - omega^z).
	A poly.Poly
	// AdInv[i] is A'(omega^zs[i])^-1.
	AdInv []*big.Int

	Zs    []int
	Omega *big.Int
	N     int
}

// FNTDecodeStep1 prepares interpolation over the positions
// {omega^z : z in zs} of the size-n roots-of-unity domain.
func FNTDecodeStep1(r *poly.Ring, ev *fft.Evaluator, zs []int, omega *big.Int, n int) (*StepState, error) {
	k := len(zs)
	if k == 0 || k > n {
		return nil, ErrMalformedInput
	}

	seen := bitset.New(uint(n))
	for _, z := range zs {
		if z < 0 || z >= n {
			return nil, ErrMalformedInput
		}
		if seen.Test(uint(z)) {
			return nil, ErrDuplicatePoint
		}
		seen.Set(uint(z))
	}

	fld := r.Field()
	xs := make([]*big.Int, k)
	for i, z := range zs {
		xs[i] = fld.Exp(omega, big.NewInt(int64(z)))
	}

	a := r.BuildFromRoots(xs)
	ad := r.Derivative(a)

	adEvals, err := ev.FFT(ad.Coeffs, omega, n)
	if err != nil {
		return nil, err
	}

	adInv := make([]*big.Int, k)
	for i, z := range zs {
		inv, err := fld.Inv(adEvals[z])
		if err != nil {
			return nil, ErrDuplicatePoint
		}
		adInv[i] = inv
	}

	return &StepState{
		A:     a,
		AdInv: adInv,

		Zs:    append([]int{}, zs...),
		Omega: big.NewInt(0).Set(omega),
		N:     n,
	}, nil
}

// FNTDecodeStep2 interpolates the unique polynomial P of degree < len(zs)
// with P(omega^zs[i]) = ys[i], reusing the position-dependent state.
func FNTDecodeStep2(r *poly.Ring, ev *fft.Evaluator, st *StepState, ys []*big.Int) (poly.Poly, error) {
	k := len(st.Zs)
	if len(ys) != k {
		return poly.Poly{}, ErrMalformedInput
	}

	fld := r.Field()

	// N(x) = sum_i (ys[i] * A'(omega^zs[i])^-1) * x^zs[i]
	nCoeffs := make([]*big.Int, st.N)
	for i := range nCoeffs {
		nCoeffs[i] = big.NewInt(0)
	}
	for i, z := range st.Zs {
		fld.MulAssign(ys[i], st.AdInv[i], nCoeffs[z])
	}

	omegaInv, err := fld.Inv(st.Omega)
	if err != nil {
		return poly.Poly{}, ErrMalformedInput
	}

	outLen := k + 1
	if outLen > st.N {
		outLen = st.N
	}
	nRevEvals, err := ev.FFTTrunc(nCoeffs, omegaInv, st.N, outLen)
	if err != nil {
		return poly.Poly{}, err
	}

	// Q(x) = sum_{i<k} -N_rev_evals[(i+1) mod n] * x^i, and P = Q*A mod x^k.
	qCoeffs := make([]*big.Int, k)
	for i := 0; i < k; i++ {
		qCoeffs[i] = fld.Neg(nRevEvals[(i+1)%st.N])
	}

	return r.MulTrunc(r.FromCoeffs(qCoeffs), st.A, k), nil
}

// FNTDecode runs steps 1 and 2 in sequence. Batched callers should run
// step 1 once and step 2 per value vector instead.
func FNTDecode(r *poly.Ring, ev *fft.Evaluator, zs []int, ys []*big.Int, omega *big.Int, n int) (poly.Poly, error) {
	st, err := FNTDecodeStep1(r, ev, zs, omega, n)
	if err != nil {
		return poly.Poly{}, err
	}
	return FNTDecodeStep2(r, ev, st, ys)
}

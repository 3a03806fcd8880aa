package rs_test

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/initc3/powermix/fft"
	"github.com/initc3/powermix/field"
	"github.com/initc3/powermix/poly"
	"github.com/initc3/powermix/rs"
)

// 786433 = 3 * 2^18 + 1, NTT-friendly.
var testPrime = big.NewInt(786433)

func randomPoly(r *poly.Ring, us *field.UniformSampler, degree int) poly.Poly {
	coeffs := make([]*big.Int, degree+1)
	for i := range coeffs {
		coeffs[i] = us.SampleElement()
	}
	return r.FromCoeffs(coeffs)
}

func distinctElements(us *field.UniformSampler, n int) []*big.Int {
	seen := make(map[string]struct{}, n)
	out := make([]*big.Int, 0, n)
	for len(out) < n {
		x := us.SampleElement()
		key := x.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, x)
	}
	return out
}

func TestInterpolate(t *testing.T) {
	fld := field.MustNew(testPrime)
	r := poly.NewRing(fld)

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := rs.Interpolate(r, []*big.Int{big.NewInt(1)}, nil)
		assert.ErrorIs(t, err, rs.ErrMalformedInput)
	})

	t.Run("DuplicatePoint", func(t *testing.T) {
		xs := []*big.Int{big.NewInt(1), big.NewInt(1)}
		ys := []*big.Int{big.NewInt(2), big.NewInt(3)}
		_, err := rs.Interpolate(r, xs, ys)
		assert.ErrorIs(t, err, rs.ErrDuplicatePoint)
	})

	t.Run("Property", func(t *testing.T) {
		us := field.NewUniformSamplerWithSeed(fld, []byte("interpolate"))

		parameters := gopter.DefaultTestParameters()
		parameters.MinSuccessfulTests = 30
		properties := gopter.NewProperties(parameters)

		properties.Property("interpolant passes through all points", prop.ForAll(
			func(n int) bool {
				xs := distinctElements(us, n)
				ys := make([]*big.Int, n)
				for i := range ys {
					ys[i] = us.SampleElement()
				}

				f, err := rs.Interpolate(r, xs, ys)
				if err != nil || f.Degree() >= n {
					return false
				}
				for i := range xs {
					if r.Eval(f, xs[i]).Cmp(ys[i]) != 0 {
						return false
					}
				}
				return true
			},
			gen.IntRange(1, 48),
		))

		properties.TestingRun(t)
	})
}

func TestFNTDecode(t *testing.T) {
	fld := field.MustNew(testPrime)
	r := poly.NewRing(fld)
	ev := fft.NewEvaluator(fld)
	us := field.NewUniformSamplerWithSeed(fld, []byte("fnt"))

	n := 16
	omega, err := us.RootOfUnity(n)
	require.NoError(t, err)

	t.Run("MatchesClassical", func(t *testing.T) {
		zs := []int{0, 3, 5, 6, 9, 14}
		k := len(zs)

		f := randomPoly(r, us, k-1)
		xs := make([]*big.Int, k)
		ys := make([]*big.Int, k)
		for i, z := range zs {
			xs[i] = fld.Exp(omega, big.NewInt(int64(z)))
			ys[i] = r.Eval(f, xs[i])
		}

		got, err := rs.FNTDecode(r, ev, zs, ys, omega, n)
		require.NoError(t, err)

		want, err := rs.Interpolate(r, xs, ys)
		require.NoError(t, err)

		assert.True(t, got.Equal(want))
		assert.True(t, got.Equal(f))
	})

	t.Run("FullDomain", func(t *testing.T) {
		zs := make([]int, n)
		for i := range zs {
			zs[i] = i
		}

		f := randomPoly(r, us, n-1)
		ys := make([]*big.Int, n)
		for i, z := range zs {
			ys[i] = r.Eval(f, fld.Exp(omega, big.NewInt(int64(z))))
		}

		got, err := rs.FNTDecode(r, ev, zs, ys, omega, n)
		require.NoError(t, err)
		assert.True(t, got.Equal(f))
	})

	t.Run("Step1Reuse", func(t *testing.T) {
		zs := []int{1, 2, 4, 8}
		st, err := rs.FNTDecodeStep1(r, ev, zs, omega, n)
		require.NoError(t, err)

		for trial := 0; trial < 4; trial++ {
			f := randomPoly(r, us, len(zs)-1)
			ys := make([]*big.Int, len(zs))
			for i, z := range zs {
				ys[i] = r.Eval(f, fld.Exp(omega, big.NewInt(int64(z))))
			}

			got, err := rs.FNTDecodeStep2(r, ev, st, ys)
			require.NoError(t, err)
			assert.True(t, got.Equal(f))
		}
	})

	t.Run("DuplicatePositions", func(t *testing.T) {
		_, err := rs.FNTDecodeStep1(r, ev, []int{1, 1}, omega, n)
		assert.ErrorIs(t, err, rs.ErrDuplicatePoint)
	})

	t.Run("PositionOutOfRange", func(t *testing.T) {
		_, err := rs.FNTDecodeStep1(r, ev, []int{0, n}, omega, n)
		assert.ErrorIs(t, err, rs.ErrMalformedInput)
	})
}

// TestFNTStep2IndexReflection checks the identity behind the truncated
// step 2: reading the inverse-order transform at (i+1) mod n equals
// reading the forward transform at n-i-1, since omega^(n-i-1) is
// omega^-(i+1).
func TestFNTStep2IndexReflection(t *testing.T) {
	fld := field.MustNew(testPrime)
	r := poly.NewRing(fld)
	ev := fft.NewEvaluator(fld)
	us := field.NewUniformSamplerWithSeed(fld, []byte("reflection"))

	n := 32
	omega, err := us.RootOfUnity(n)
	require.NoError(t, err)

	zs := []int{0, 2, 7, 11, 13, 17, 23, 29}
	k := len(zs)

	st, err := rs.FNTDecodeStep1(r, ev, zs, omega, n)
	require.NoError(t, err)

	ys := make([]*big.Int, k)
	for i := range ys {
		ys[i] = us.SampleElement()
	}

	got, err := rs.FNTDecodeStep2(r, ev, st, ys)
	require.NoError(t, err)

	// The untruncated form: evaluate N with the forward transform over the
	// whole domain and build Q from the reflected indices.
	nCoeffs := make([]*big.Int, n)
	for i := range nCoeffs {
		nCoeffs[i] = big.NewInt(0)
	}
	for i, z := range zs {
		nCoeffs[z] = fld.Mul(ys[i], st.AdInv[i])
	}
	nEvals, err := ev.FFT(nCoeffs, omega, n)
	require.NoError(t, err)

	qCoeffs := make([]*big.Int, k)
	for i := 0; i < k; i++ {
		qCoeffs[i] = fld.Neg(nEvals[n-i-1])
	}
	want := r.MulTrunc(r.FromCoeffs(qCoeffs), st.A, k)

	assert.True(t, got.Equal(want))
}

func TestPartialGCD(t *testing.T) {
	fld := field.MustNew(testPrime)
	r := poly.NewRing(fld)
	us := field.NewUniformSamplerWithSeed(fld, []byte("partial-gcd"))

	t.Run("BezoutInvariant", func(t *testing.T) {
		parameters := gopter.DefaultTestParameters()
		parameters.MinSuccessfulTests = 30
		properties := gopter.NewProperties(parameters)

		properties.Property("g = u*p0 + v*p1 and deg(g) < threshold", prop.ForAll(
			func(degA, degB, threshold int) bool {
				p0 := randomPoly(r, us, degA)
				p1 := randomPoly(r, us, degB)

				g, u, v, err := rs.PartialGCD(r, p0, p1, threshold)
				if err != nil {
					return false
				}

				lhs := r.Add(r.Mul(u, p0), r.Mul(v, p1))
				return lhs.Equal(g) && g.Degree() < threshold
			},
			gen.IntRange(8, 32),
			gen.IntRange(1, 24),
			gen.IntRange(1, 8),
		))

		properties.TestingRun(t)
	})

	t.Run("BelowThresholdInputs", func(t *testing.T) {
		p0 := r.FromInt64s(1, 2)
		p1 := r.FromInt64s(3)
		g, u, v, err := rs.PartialGCD(r, p0, p1, 5)
		require.NoError(t, err)
		assert.True(t, g.Equal(p0))
		assert.True(t, u.Equal(r.FromInt64s(1)))
		assert.True(t, v.IsZero())
	})
}

func TestGaoDecode(t *testing.T) {
	fld := field.MustNew(big.NewInt(101))
	r := poly.NewRing(fld)
	d := rs.NewDecoder(r, nil)

	t.Run("SingleCorruption", func(t *testing.T) {
		// f(x) = 2 + 3x evaluated at 1..5, position 3 corrupted.
		xs := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3), big.NewInt(4), big.NewInt(5)}
		ys := []*big.Int{big.NewInt(5), big.NewInt(8), big.NewInt(11), big.NewInt(99), big.NewInt(17)}

		res, err := d.Decode(xs, ys, 2)
		require.NoError(t, err)

		assert.True(t, res.F.Equal(r.FromInt64s(2, 3)))

		assert.Equal(t, int64(0), r.Eval(res.Locator, big.NewInt(4)).Int64())
		assert.Equal(t, 1, res.Locator.Degree())

		positions := d.ErrorPositions(res, xs)
		assert.Equal(t, uint(1), positions.Count())
		assert.True(t, positions.Test(3))
	})

	t.Run("NoCorruption", func(t *testing.T) {
		xs := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3), big.NewInt(4)}
		ys := make([]*big.Int, 4)
		f := r.FromInt64s(7, 9)
		for i := range xs {
			ys[i] = r.Eval(f, xs[i])
		}

		res, err := d.Decode(xs, ys, 2)
		require.NoError(t, err)
		assert.True(t, res.F.Equal(f))
		assert.Equal(t, uint(0), d.ErrorPositions(res, xs).Count())
	})

	t.Run("TooManyCorruptions", func(t *testing.T) {
		xs := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3), big.NewInt(4), big.NewInt(5)}
		ys := []*big.Int{big.NewInt(50), big.NewInt(60), big.NewInt(70), big.NewInt(99), big.NewInt(17)}

		_, err := d.Decode(xs, ys, 2)
		assert.ErrorIs(t, err, rs.ErrDecodeFailed)
	})

	t.Run("MalformedInput", func(t *testing.T) {
		xs := []*big.Int{big.NewInt(1), big.NewInt(2)}
		ys := []*big.Int{big.NewInt(1), big.NewInt(2)}

		_, err := d.Decode(xs, ys, 2)
		assert.ErrorIs(t, err, rs.ErrMalformedInput)

		dup := []*big.Int{big.NewInt(1), big.NewInt(1), big.NewInt(2)}
		_, err = d.Decode(dup, []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}, 1)
		assert.ErrorIs(t, err, rs.ErrMalformedInput)
	})
}

func TestGaoDecodeProperty(t *testing.T) {
	fld := field.MustNew(testPrime)
	r := poly.NewRing(fld)
	d := rs.NewDecoder(r, nil)
	us := field.NewUniformSamplerWithSeed(fld, []byte("gao"))

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("recovers f under (n-k)/2 corruptions", prop.ForAll(
		func(k, extra int) bool {
			n := k + extra
			f := randomPoly(r, us, k-1)

			xs := distinctElements(us, n)
			ys := make([]*big.Int, n)
			for i := range xs {
				ys[i] = r.Eval(f, xs[i])
			}

			corrupted := map[int]struct{}{}
			for len(corrupted) < (n-k)/2 {
				idx := int(us.SampleN(uint64(n)))
				if _, ok := corrupted[idx]; ok {
					continue
				}
				corrupted[idx] = struct{}{}
				ys[idx] = fld.Add(ys[idx], us.SampleNonZero())
			}

			res, err := d.Decode(xs, ys, k)
			if err != nil {
				return false
			}
			if !res.F.Equal(f) {
				return false
			}

			positions := d.ErrorPositions(res, xs)
			if positions.Count() != uint(len(corrupted)) {
				return false
			}
			for idx := range corrupted {
				if !positions.Test(uint(idx)) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 16),
		gen.IntRange(1, 16),
	))

	properties.TestingRun(t)
}

func TestGaoDecodeFFT(t *testing.T) {
	fld := field.MustNew(testPrime)
	r := poly.NewRing(fld)
	ev := fft.NewEvaluator(fld)
	d := rs.NewDecoder(r, ev)
	us := field.NewUniformSamplerWithSeed(fld, []byte("gao-fft"))

	order := 16
	omega, err := us.RootOfUnity(order)
	require.NoError(t, err)

	k := 3
	zs := []int{0, 2, 3, 5, 8, 11, 13}
	n := len(zs)

	f := randomPoly(r, us, k-1)
	ys := make([]*big.Int, n)
	for i, z := range zs {
		ys[i] = r.Eval(f, fld.Exp(omega, big.NewInt(int64(z))))
	}

	// Corrupt up to (n-k)/2 = 2 positions.
	ys[1] = fld.Add(ys[1], big.NewInt(77))
	ys[4] = fld.Add(ys[4], big.NewInt(13))

	res, err := d.DecodeFFT(zs, ys, omega, k, order)
	require.NoError(t, err)
	assert.True(t, res.F.Equal(f))

	xs := make([]*big.Int, n)
	for i, z := range zs {
		xs[i] = fld.Exp(omega, big.NewInt(int64(z)))
	}
	positions := d.ErrorPositions(res, xs)
	assert.Equal(t, uint(2), positions.Count())
	assert.True(t, positions.Test(1))
	assert.True(t, positions.Test(4))
}

// TestPartialGCDThresholdParity pins the integer-division threshold
// (n+k)/2 against small decoding instances where the ceiling variant
// would differ.
func TestPartialGCDThresholdParity(t *testing.T) {
	fld := field.MustNew(big.NewInt(101))
	r := poly.NewRing(fld)
	d := rs.NewDecoder(r, nil)
	us := field.NewUniformSamplerWithSeed(fld, []byte("threshold"))

	// Odd n+k: floor and ceil thresholds differ.
	for _, tc := range []struct{ n, k int }{{5, 2}, {7, 2}, {9, 4}} {
		f := randomPoly(r, us, tc.k-1)
		xs := distinctElements(us, tc.n)
		ys := make([]*big.Int, tc.n)
		for i := range xs {
			ys[i] = r.Eval(f, xs[i])
		}
		for c := 0; c < (tc.n-tc.k)/2; c++ {
			ys[c] = fld.Add(ys[c], big.NewInt(1))
		}

		res, err := d.Decode(xs, ys, tc.k)
		require.NoError(t, err)
		assert.True(t, res.F.Equal(f), "n=%d k=%d", tc.n, tc.k)
	}
}

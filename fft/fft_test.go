package fft_test

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/lattigo/v6/core/rlwe"

	"github.com/initc3/powermix/field"
	"github.com/initc3/powermix/fft"
)

const maxLogN = 10

// nttPrime returns an NTT-friendly prime with 2^(maxLogN+1) | p-1.
func nttPrime(t *testing.T, bits int) *big.Int {
	q, _, err := rlwe.GenModuli(maxLogN+1, []int{bits}, nil)
	require.NoError(t, err)
	return big.NewInt(0).SetUint64(q[0])
}

// wideNTTPrime searches for a prime of roughly the given bit size with
// 2^(maxLogN+1) | p-1, to exercise the multi-word big.Int paths.
func wideNTTPrime(bits int) *big.Int {
	c := big.NewInt(0).Lsh(big.NewInt(1), uint(bits-maxLogN-1))
	c.Add(c, big.NewInt(5))
	p := big.NewInt(0)
	for {
		p.Lsh(c, maxLogN+1)
		p.Add(p, big.NewInt(1))
		if p.ProbablyPrime(20) {
			return p
		}
		c.Add(c, big.NewInt(1))
	}
}

// naiveTransform computes values[j] = sum_i coeffs[i] * omega^(i*j).
func naiveTransform(fld *field.Field, coeffs []*big.Int, omega *big.Int, n int) []*big.Int {
	values := make([]*big.Int, n)
	for j := 0; j < n; j++ {
		values[j] = big.NewInt(0)
		wj := fld.Exp(omega, big.NewInt(int64(j)))
		x := big.NewInt(1)
		for i := 0; i < len(coeffs); i++ {
			values[j].Add(values[j], fld.Mul(coeffs[i], x))
			values[j].Mod(values[j], fld.Modulus())
			x = fld.Mul(x, wj)
		}
	}
	return values
}

func bigs(vs ...int64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i := range vs {
		out[i] = big.NewInt(vs[i])
	}
	return out
}

func TestFFTSmall(t *testing.T) {
	// 4 is a primitive 4th root of unity mod 17: 4^2 = -1, 4^4 = 1.
	fld := field.MustNew(big.NewInt(17))
	ev := fft.NewEvaluator(fld)

	v := bigs(1, 2, 3, 4)
	omega := big.NewInt(4)

	values, err := ev.FFT(v, omega, 4)
	require.NoError(t, err)
	assert.Equal(t, naiveTransform(fld, v, omega, 4), values)

	omegaInv, err := fld.Inv(omega)
	require.NoError(t, err)
	back, err := ev.FFT(values, omegaInv, 4)
	require.NoError(t, err)
	ev.Normalize(back, 4)
	assert.Equal(t, v, back)
}

func TestFFTErrors(t *testing.T) {
	fld := field.MustNew(big.NewInt(17))

	t.Run("BadLength", func(t *testing.T) {
		ev := fft.NewEvaluator(fld)
		_, err := ev.FFT(bigs(1, 2, 3), big.NewInt(4), 3)
		assert.ErrorIs(t, err, fft.ErrBadLength)

		_, err = ev.FFT(bigs(1, 2, 3), big.NewInt(4), 2)
		assert.ErrorIs(t, err, fft.ErrBadLength)
	})

	t.Run("UncheckedByDefault", func(t *testing.T) {
		ev := fft.NewEvaluator(fld)
		_, err := ev.FFT(bigs(1, 2), big.NewInt(3), 2)
		assert.NoError(t, err)
	})

	t.Run("CheckedRoots", func(t *testing.T) {
		ev := fft.NewEvaluator(fld, fft.WithCheckedRoots())
		_, err := ev.FFT(bigs(1, 2), big.NewInt(3), 2)
		assert.ErrorIs(t, err, fft.ErrNotRootOfUnity)

		_, err = ev.FFT(bigs(1, 2), big.NewInt(16), 2)
		assert.NoError(t, err)
	})
}

func TestFFTRoundTrip(t *testing.T) {
	primes := []*big.Int{
		nttPrime(t, 24),
		nttPrime(t, 55),
		wideNTTPrime(220),
	}

	for _, p := range primes {
		fld := field.MustNew(p)
		ev := fft.NewEvaluator(fld)
		us := field.NewUniformSamplerWithSeed(fld, []byte("fft-round-trip"))

		for logN := 1; logN <= maxLogN; logN++ {
			n := 1 << logN
			omega, err := us.RootOfUnity(n)
			require.NoError(t, err)
			omegaInv, err := fld.Inv(omega)
			require.NoError(t, err)

			v := make([]*big.Int, n)
			for i := range v {
				v[i] = us.SampleElement()
			}

			values, err := ev.FFT(v, omega, n)
			require.NoError(t, err)
			back, err := ev.FFT(values, omegaInv, n)
			require.NoError(t, err)
			ev.Normalize(back, n)

			assert.Equal(t, v, back, "size %d, modulus %s", n, p.String())
		}
	}
}

func TestFFTMatchesNaive(t *testing.T) {
	fld := field.MustNew(nttPrime(t, 40))
	ev := fft.NewEvaluator(fld)
	us := field.NewUniformSamplerWithSeed(fld, []byte("fft-naive"))

	for _, n := range []int{1, 2, 8, 32, 64} {
		omega, err := us.RootOfUnity(n)
		require.NoError(t, err)

		coeffs := make([]*big.Int, n/2+1)
		for i := range coeffs {
			coeffs[i] = us.SampleElement()
		}

		values, err := ev.FFT(coeffs, omega, n)
		require.NoError(t, err)
		assert.Equal(t, naiveTransform(fld, coeffs, omega, n), values)
	}
}

func TestFFTTruncation(t *testing.T) {
	fld := field.MustNew(nttPrime(t, 40))
	ev := fft.NewEvaluator(fld)
	us := field.NewUniformSamplerWithSeed(fld, []byte("fft-trunc"))

	n := 64
	omega, err := us.RootOfUnity(n)
	require.NoError(t, err)

	v := make([]*big.Int, n)
	for i := range v {
		v[i] = us.SampleElement()
	}

	full, err := ev.FFT(v, omega, n)
	require.NoError(t, err)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("truncated outputs match the full transform", prop.ForAll(
		func(k int) bool {
			truncated, err := ev.FFTTrunc(v, omega, n, k)
			if err != nil || len(truncated) != k {
				return false
			}
			for i := 0; i < k; i++ {
				if truncated[i].Cmp(full[i]) != 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, n),
	))

	properties.TestingRun(t)
}

func TestFFTVandermondeBaseCase(t *testing.T) {
	fld := field.MustNew(nttPrime(t, 40))
	us := field.NewUniformSamplerWithSeed(fld, []byte("fft-van"))

	n := 256
	omega, err := us.RootOfUnity(n)
	require.NoError(t, err)

	v := make([]*big.Int, n)
	for i := range v {
		v[i] = us.SampleElement()
	}

	// Threshold 1 disables the base case entirely.
	plain := fft.NewEvaluator(fld, fft.WithVandermondeThreshold(1))
	want, err := plain.FFT(v, omega, n)
	require.NoError(t, err)

	for _, threshold := range []int{4, 16, 64} {
		ev := fft.NewEvaluator(fld, fft.WithVandermondeThreshold(threshold))

		// Run twice so the second pass hits the cache.
		for run := 0; run < 2; run++ {
			got, err := ev.FFT(v, omega, n)
			require.NoError(t, err)
			assert.Equal(t, want, got, "threshold %d run %d", threshold, run)
		}
	}
}

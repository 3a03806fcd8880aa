// Package fft implements the radix-2 FFT over a prime field.
//
// The transform evaluates a coefficient vector at consecutive powers of a
// principal root of unity. Small sub-transforms are dispatched to a cached
// Vandermonde matrix multiply, and callers that need only a prefix of the
// outputs can truncate the butterfly network.
package fft

import (
	"errors"
	"math/big"
	"sync"

	"github.com/initc3/powermix/field"
	"github.com/initc3/powermix/num"
)

var (
	// ErrBadLength is returned when the transform length is not a power of two,
	// or the coefficient or output count does not fit it.
	ErrBadLength = errors.New("transform length must be a power of two")
	// ErrNotRootOfUnity is returned in checked mode when omega^n != 1.
	ErrNotRootOfUnity = errors.New("omega is not an n-th root of unity")
)

// VandermondeThreshold is the default sub-transform size dispatched to the
// cached Vandermonde matrix multiply.
const VandermondeThreshold = 16

// Evaluator computes FFTs over a fixed prime field.
//
// An Evaluator is not safe for concurrent use; use [Evaluator.ShallowCopy]
// to obtain a thread-safe handle. Handles share the Vandermonde cache,
// which is internally guarded.
type Evaluator struct {
	fld *field.Field

	vanThreshold int
	checked      bool

	cache *vanCache
}

// vanCache maps (n, omega residue) to the n-by-n Vandermonde matrix
// V[i][j] = omega^(i*j). All access happens under mu.
type vanCache struct {
	mu      sync.Mutex
	entries map[vanKey][][]*big.Int
}

type vanKey struct {
	n     int
	omega string
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithVandermondeThreshold sets the sub-transform size handled by the
// Vandermonde base case. t must be a power of two; t = 1 disables the
// base case.
func WithVandermondeThreshold(t int) Option {
	return func(e *Evaluator) {
		e.vanThreshold = t
	}
}

// WithCheckedRoots enables verification that omega^n = 1 on every transform.
func WithCheckedRoots() Option {
	return func(e *Evaluator) {
		e.checked = true
	}
}

// NewEvaluator creates a new Evaluator over fld.
func NewEvaluator(fld *field.Field, opts ...Option) *Evaluator {
	e := &Evaluator{
		fld: fld,

		vanThreshold: VandermondeThreshold,

		cache: &vanCache{
			entries: make(map[vanKey][][]*big.Int),
		},
	}
	for _, opt := range opts {
		opt(e)
	}

	if !num.IsPowerOfTwo(e.vanThreshold) {
		panic("vandermonde threshold must be a power of two")
	}

	return e
}

// ShallowCopy creates a shallow copy of Evaluator that is thread-safe.
// The copy shares the Vandermonde cache.
func (e *Evaluator) ShallowCopy() *Evaluator {
	return &Evaluator{
		fld: e.fld.ShallowCopy(),

		vanThreshold: e.vanThreshold,
		checked:      e.checked,

		cache: e.cache,
	}
}

// FFT evaluates coeffs at omega^0, ..., omega^(n-1):
// values[j] = sum_i coeffs[i] * omega^(i*j).
//
// omega must be a principal n-th root of unity and n a power of two.
// len(coeffs) may be at most n; missing high coefficients are treated
// as zero.
func (e *Evaluator) FFT(coeffs []*big.Int, omega *big.Int, n int) ([]*big.Int, error) {
	return e.FFTTrunc(coeffs, omega, n, n)
}

// FFTTrunc is FFT truncated to the first k outputs.
// Butterflies that only feed skipped outputs are not computed.
func (e *Evaluator) FFTTrunc(coeffs []*big.Int, omega *big.Int, n, k int) ([]*big.Int, error) {
	if !num.IsPowerOfTwo(n) || len(coeffs) > n || k < 1 || k > n {
		return nil, ErrBadLength
	}

	if e.checked {
		pow := big.NewInt(0).Exp(omega, big.NewInt(int64(n)), e.fld.Modulus())
		if pow.Cmp(big.NewInt(1)) != 0 {
			return nil, ErrNotRootOfUnity
		}
	}

	a := make([]*big.Int, n)
	for i := range a {
		if i < len(coeffs) {
			a[i] = e.fld.Mod(coeffs[i])
		} else {
			a[i] = big.NewInt(0)
		}
	}

	var van [][]*big.Int
	if n >= e.vanThreshold && e.vanThreshold > 1 {
		omegaSub := big.NewInt(0).Exp(omega, big.NewInt(int64(n/e.vanThreshold)), e.fld.Modulus())
		van = e.vandermonde(e.vanThreshold, omegaSub)
	}

	e.fft(a, big.NewInt(0).Set(omega), k, van)

	return a[:k], nil
}

// Normalize scales each value by n^-1, turning an inverse-order FFT into
// a true inverse transform.
func (e *Evaluator) Normalize(values []*big.Int, n int) {
	nInv := big.NewInt(0).ModInverse(big.NewInt(int64(n)), e.fld.Modulus())
	if nInv == nil {
		panic("transform length shares a factor with the modulus")
	}
	for i := range values {
		e.fld.MulAssign(values[i], nInv, values[i])
	}
}

// fft is the recursive radix-2 butterfly. Outputs at index >= m are skipped.
func (e *Evaluator) fft(a []*big.Int, omega *big.Int, m int, van [][]*big.Int) {
	n := len(a)
	if n == 1 {
		return
	}

	if van != nil && n == len(van) {
		e.applyVandermonde(van, a)
		return
	}

	half := n / 2
	a0 := make([]*big.Int, half)
	a1 := make([]*big.Int, half)
	for j := 0; j < half; j++ {
		a0[j] = big.NewInt(0).Set(a[2*j])
		a1[j] = big.NewInt(0).Set(a[2*j+1])
	}

	omega2 := e.fld.Mul(omega, omega)
	e.fft(a0, omega2, m, van)
	e.fft(a1, omega2, m, van)

	w := big.NewInt(1)
	t := big.NewInt(0)
	for j := 0; j < half; j++ {
		e.fld.MulAssign(w, a1[j], t)
		if j < m {
			e.fld.AddAssign(a0[j], t, a[j])
		}
		if j+half < m {
			e.fld.SubAssign(a0[j], t, a[j+half])
		}
		e.fld.MulAssign(w, omega, w)
	}
}

// vandermonde returns the cached n-by-n matrix V[i][j] = omega^(i*j),
// building it on first miss.
func (e *Evaluator) vandermonde(n int, omega *big.Int) [][]*big.Int {
	key := vanKey{n: n, omega: string(omega.Bytes())}

	e.cache.mu.Lock()
	defer e.cache.mu.Unlock()

	if m, ok := e.cache.entries[key]; ok {
		return m
	}

	x := make([]*big.Int, n)
	x[0] = big.NewInt(1)
	for i := 1; i < n; i++ {
		x[i] = e.fld.Mul(x[i-1], omega)
	}

	m := make([][]*big.Int, n)
	for i := range m {
		m[i] = make([]*big.Int, n)
		m[i][0] = big.NewInt(1)
		for j := 1; j < n; j++ {
			m[i][j] = e.fld.Mul(m[i][j-1], x[i])
		}
	}

	e.cache.entries[key] = m
	return m
}

// applyVandermonde assigns a = van * a.
func (e *Evaluator) applyVandermonde(van [][]*big.Int, a []*big.Int) {
	n := len(a)
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		out[i] = big.NewInt(0)
		for j := 0; j < n; j++ {
			e.fld.MulAddAssign(van[i][j], a[j], out[i])
		}
	}
	for i := 0; i < n; i++ {
		a[i].Set(out[i])
	}
}

package rs

import (
	"math/big"

	"github.com/bits-and-blooms/bitset"
	"github.com/initc3/powermix/fft"
	"github.com/initc3/powermix/poly"
)

// Decoder recovers polynomials of degree < k from n > k evaluations with
// up to (n-k)/2 corrupted values, by Gao's extended-Euclidean algorithm.
type Decoder struct {
	ring *poly.Ring
	ev   *fft.Evaluator
}

// Result is a successful decoding.
type Result struct {
	// F is the recovered polynomial, of degree < k.
	F poly.Poly
	// Locator is the error locator; its roots are the evaluation points
	// whose values were corrupted.
	Locator poly.Poly
}

// NewDecoder creates a new Decoder.
// ev may be nil when only [Decoder.Decode] is used.
func NewDecoder(r *poly.Ring, ev *fft.Evaluator) *Decoder {
	return &Decoder{
		ring: r,
		ev:   ev,
	}
}

// Decode recovers the degree < k polynomial behind the evaluations
// (xs[i], ys[i]), interpolating classically.
//
// Returns ErrDecodeFailed when more than (n-k)/2 values are corrupted;
// the caller may retry with more shares.
func (d *Decoder) Decode(xs, ys []*big.Int, k int) (*Result, error) {
	n := len(xs)
	if len(ys) != n || k < 1 || k >= n {
		return nil, ErrMalformedInput
	}
	if !distinct(d.ring, xs) {
		return nil, ErrMalformedInput
	}

	g1, err := Interpolate(d.ring, xs, ys)
	if err != nil {
		return nil, err
	}

	return d.decode(xs, g1, k, n)
}

// DecodeFFT is Decode over evaluation points drawn from the roots-of-unity
// domain: the i-th point is omega^zs[i] in the size-order domain. The
// interpolation step runs through the FNT fast path.
func (d *Decoder) DecodeFFT(zs []int, ys []*big.Int, omega *big.Int, k, order int) (*Result, error) {
	n := len(zs)
	if len(ys) != n || k < 1 || k >= n {
		return nil, ErrMalformedInput
	}

	g1, err := FNTDecode(d.ring, d.ev, zs, ys, omega, order)
	if err != nil {
		return nil, err
	}

	fld := d.ring.Field()
	xs := make([]*big.Int, n)
	for i, z := range zs {
		xs[i] = fld.Exp(omega, big.NewInt(int64(z)))
	}

	return d.decode(xs, g1, k, n)
}

func (d *Decoder) decode(xs []*big.Int, g1 poly.Poly, k, n int) (*Result, error) {
	g0 := d.ring.BuildFromRoots(xs)

	g, _, v, err := PartialGCD(d.ring, g0, g1, (n+k)/2)
	if err != nil {
		return nil, err
	}

	f, rem, err := d.ring.DivRem(g, v)
	if err != nil {
		return nil, err
	}

	if !rem.IsZero() || f.Degree() >= k {
		return nil, ErrDecodeFailed
	}

	return &Result{
		F:       f,
		Locator: v,
	}, nil
}

// ErrorPositions returns the set of indices i for which ys[i] was
// corrupted: the positions where the locator vanishes on xs.
func (d *Decoder) ErrorPositions(res *Result, xs []*big.Int) *bitset.BitSet {
	positions := bitset.New(uint(len(xs)))
	for i, x := range xs {
		if d.ring.Eval(res.Locator, x).Sign() == 0 {
			positions.Set(uint(i))
		}
	}
	return positions
}

func distinct(r *poly.Ring, xs []*big.Int) bool {
	fld := r.Field()
	seen := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		key := string(fld.Mod(x).Bytes())
		if _, ok := seen[key]; ok {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}

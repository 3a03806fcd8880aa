package field

import (
	"math/big"

	"github.com/initc3/powermix/csprng"
	"github.com/initc3/powermix/num"
)

// UniformSampler samples uniformly random field elements.
type UniformSampler struct {
	fld *Field

	*csprng.UniformSampler
}

// NewUniformSampler creates a new UniformSampler over fld.
func NewUniformSampler(fld *Field) *UniformSampler {
	return &UniformSampler{
		fld: fld,

		UniformSampler: csprng.NewUniformSampler(),
	}
}

// NewUniformSamplerWithSeed creates a new UniformSampler over fld with user supplied seed.
func NewUniformSamplerWithSeed(fld *Field, seed []byte) *UniformSampler {
	return &UniformSampler{
		fld: fld,

		UniformSampler: csprng.NewUniformSamplerWithSeed(seed),
	}
}

// SampleElement samples a uniformly random residue in [0, p).
func (s *UniformSampler) SampleElement() *big.Int {
	return s.SampleMod(s.fld.Modulus())
}

// SampleElementAssign samples a uniformly random residue in [0, p)
// and assigns it to xOut.
func (s *UniformSampler) SampleElementAssign(xOut *big.Int) {
	s.SampleModAssign(s.fld.Modulus(), xOut)
}

// SampleNonZero samples a uniformly random residue in [1, p).
func (s *UniformSampler) SampleNonZero() *big.Int {
	x := big.NewInt(0)
	for x.Sign() == 0 {
		s.SampleElementAssign(x)
	}
	return x
}

// RootOfUnity searches for a primitive n-th root of unity in F_p,
// where n is a power of two dividing p-1.
//
// The same sampler seed yields the same root on every run.
func (s *UniformSampler) RootOfUnity(n int) (*big.Int, error) {
	if !num.IsPowerOfTwo(n) {
		return nil, ErrBadLength
	}

	p := s.fld.Modulus()
	pSubOne := big.NewInt(0).Sub(p, big.NewInt(1))
	exp := big.NewInt(0)
	if exp.Mod(pSubOne, big.NewInt(int64(n))).Sign() != 0 {
		return nil, ErrBadLength
	}
	exp.Div(pSubOne, big.NewInt(int64(n)))

	if n == 1 {
		return big.NewInt(1), nil
	}

	nHalf := big.NewInt(int64(n / 2))
	one := big.NewInt(1)
	y := big.NewInt(0)
	yPow := big.NewInt(0)
	for {
		x := s.SampleNonZero()
		y.Exp(x, exp, p)
		yPow.Exp(y, nHalf, p)
		if y.Cmp(one) == 0 || yPow.Cmp(one) == 0 {
			continue
		}
		return big.NewInt(0).Set(y), nil
	}
}

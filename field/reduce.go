package field

import (
	"math/big"
)

// Reducer computes the barrett reduction.
// It assumes that the inputs are between -2p^2 and 2p^2.
type Reducer struct {
	P *big.Int

	rBound   *big.Int
	pBitLen  uint
	barConst *big.Int

	quo  *big.Int
	quoP *big.Int
}

// NewReducer creates a new Reducer for the given modulus p.
func NewReducer(p *big.Int) *Reducer {
	if p.Sign() <= 0 {
		panic("modulus must be positive")
	}

	pBitLen := uint(p.BitLen())
	exp := big.NewInt(0).Lsh(big.NewInt(1), (pBitLen<<1)+1)
	barConst := big.NewInt(0).Div(exp, p)

	rBound := big.NewInt(0).Mul(p, p)
	rBound.Lsh(rBound, 1)

	return &Reducer{
		P: p,

		rBound:   rBound,
		pBitLen:  pBitLen,
		barConst: barConst,

		quo:  big.NewInt(0),
		quoP: big.NewInt(0),
	}
}

// ShallowCopy creates a copy of Reducer that is thread-safe.
func (r *Reducer) ShallowCopy() *Reducer {
	return &Reducer{
		P: r.P,

		rBound:   r.rBound,
		pBitLen:  r.pBitLen,
		barConst: r.barConst,

		quo:  big.NewInt(0),
		quoP: big.NewInt(0),
	}
}

// Reduce performs the Barrett reduction on the input x.
func (r *Reducer) Reduce(x *big.Int) {
	if x.Sign() < 0 {
		x.Add(x, r.rBound)
	}

	if x.Sign() < 0 || x.Cmp(r.rBound) >= 0 {
		panic("input must be in the range [0, 2p^2)")
	}

	r.quo.Mul(x, r.barConst)
	r.quo.Rsh(r.quo, (r.pBitLen<<1)+1)
	r.quoP.Mul(r.quo, r.P)
	x.Sub(x, r.quoP)
	if x.Cmp(r.P) >= 0 {
		x.Sub(x, r.P)
	}
}

// Package field implements arithmetic over a prime field F_p.
//
// A [Field] is an explicit context value: it carries the modulus together
// with precomputed reduction constants and scratch buffers.
// Elements are canonical residues in [0, p), represented as *big.Int.
// A Field is not safe for concurrent use; use [Field.ShallowCopy] to obtain
// a thread-safe handle sharing the same precomputed state.
package field

import (
	"errors"
	"math/big"
)

var (
	// ErrFieldUninitialized is returned when a Field is created without a valid modulus.
	ErrFieldUninitialized = errors.New("field modulus not set")
	// ErrNonInvertible is returned when inverting the zero element.
	ErrNonInvertible = errors.New("element is not invertible")
	// ErrBadLength is returned when a root-of-unity order is not a power of two
	// dividing p-1.
	ErrBadLength = errors.New("order must be a power of two dividing p-1")
)

// Field is a prime field F_p.
type Field struct {
	*Reducer

	modulus *big.Int

	mul *big.Int
}

// New creates a new Field with the given modulus p.
// p is assumed to be prime; primality is the caller's contract.
func New(p *big.Int) (*Field, error) {
	if p == nil || p.Cmp(big.NewInt(1)) <= 0 {
		return nil, ErrFieldUninitialized
	}

	return &Field{
		Reducer: NewReducer(p),

		modulus: big.NewInt(0).Set(p),

		mul: big.NewInt(0),
	}, nil
}

// MustNew creates a new Field with the given modulus p.
// Panics on an invalid modulus.
func MustNew(p *big.Int) *Field {
	f, err := New(p)
	if err != nil {
		panic(err)
	}
	return f
}

// ShallowCopy creates a shallow copy of Field that is thread-safe.
func (f *Field) ShallowCopy() *Field {
	return &Field{
		Reducer: f.Reducer.ShallowCopy(),

		modulus: f.modulus,

		mul: big.NewInt(0),
	}
}

// Modulus returns the modulus of the Field.
func (f *Field) Modulus() *big.Int {
	return f.modulus
}

// Mod returns the canonical residue of x.
func (f *Field) Mod(x *big.Int) *big.Int {
	return big.NewInt(0).Mod(x, f.modulus)
}

// Add returns x + y.
func (f *Field) Add(x, y *big.Int) *big.Int {
	z := big.NewInt(0)
	f.AddAssign(x, y, z)
	return z
}

// AddAssign assigns z = x + y.
func (f *Field) AddAssign(x, y, z *big.Int) {
	z.Add(x, y)
	if z.Cmp(f.modulus) >= 0 {
		z.Sub(z, f.modulus)
	}
}

// Sub returns x - y.
func (f *Field) Sub(x, y *big.Int) *big.Int {
	z := big.NewInt(0)
	f.SubAssign(x, y, z)
	return z
}

// SubAssign assigns z = x - y.
func (f *Field) SubAssign(x, y, z *big.Int) {
	z.Sub(x, y)
	if z.Sign() < 0 {
		z.Add(z, f.modulus)
	}
}

// Neg returns -x.
func (f *Field) Neg(x *big.Int) *big.Int {
	z := big.NewInt(0)
	f.NegAssign(x, z)
	return z
}

// NegAssign assigns z = -x.
func (f *Field) NegAssign(x, z *big.Int) {
	if x.Sign() == 0 {
		z.SetInt64(0)
		return
	}
	z.Sub(f.modulus, x)
}

// Mul returns x * y.
func (f *Field) Mul(x, y *big.Int) *big.Int {
	z := big.NewInt(0)
	f.MulAssign(x, y, z)
	return z
}

// MulAssign assigns z = x * y.
func (f *Field) MulAssign(x, y, z *big.Int) {
	z.Mul(x, y)
	f.Reduce(z)
}

// MulAddAssign assigns z += x * y.
func (f *Field) MulAddAssign(x, y, z *big.Int) {
	f.mul.Mul(x, y)
	z.Add(z, f.mul)
	f.Reduce(z)
}

// Exp returns x^e for a non-negative exponent e.
func (f *Field) Exp(x, e *big.Int) *big.Int {
	return big.NewInt(0).Exp(x, e, f.modulus)
}

// ExpAssign assigns z = x^e for a non-negative exponent e.
func (f *Field) ExpAssign(x, e, z *big.Int) {
	z.Exp(x, e, f.modulus)
}

// Inv returns x^-1.
// Returns ErrNonInvertible iff x = 0.
func (f *Field) Inv(x *big.Int) (*big.Int, error) {
	z := big.NewInt(0)
	if z.ModInverse(x, f.modulus) == nil {
		return nil, ErrNonInvertible
	}
	return z, nil
}

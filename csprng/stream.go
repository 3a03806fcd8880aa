package csprng

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"
	"math/big"
)

// StreamSampler samples values from uniform distribution.
// This uses AES-256 as a underlying prng.
// Unlike [UniformSampler], it is always seeded from crypto/rand.
type StreamSampler struct {
	prng cipher.Stream

	buf [bufSize]byte
	ptr int
}

// NewStreamSampler creates a new StreamSampler.
//
// Panics when read from crypto/rand or AES initialization fails.
func NewStreamSampler() *StreamSampler {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic(err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		panic(err)
	}

	iv := make([]byte, block.BlockSize())
	if _, err := rand.Read(iv); err != nil {
		panic(err)
	}

	prng := cipher.NewCTR(block, iv)

	return &StreamSampler{
		prng: prng,

		buf: [bufSize]byte{},
		ptr: bufSize,
	}
}

// Read implements the [io.Reader] interface.
func (s *StreamSampler) Read(p []byte) (n int, err error) {
	for i := range p {
		p[i] = 0
	}
	s.prng.XORKeyStream(p, p)
	return len(p), nil
}

// SampleModAssign uniformly samples a random value in [0, bound)
// using rejection sampling, and assigns it to xOut.
//
// Panics when bound is not positive.
func (s *StreamSampler) SampleModAssign(bound, xOut *big.Int) {
	if bound.Sign() <= 0 {
		panic("bound must be positive")
	}

	k := (bound.BitLen() + 7) / 8
	b := uint(bound.BitLen() % 8)
	if b == 0 {
		b = 8
	}
	msbMask := byte((1 << b) - 1)

	buf := make([]byte, k)
	for {
		if _, err := io.ReadFull(s, buf); err != nil {
			panic(err)
		}

		buf[0] &= msbMask

		xOut.SetBytes(buf)
		if xOut.Cmp(bound) < 0 {
			return
		}
	}
}

// SampleMod uniformly samples a random value in [0, bound).
func (s *StreamSampler) SampleMod(bound *big.Int) *big.Int {
	r := big.NewInt(0)
	s.SampleModAssign(bound, r)
	return r
}

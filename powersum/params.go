package powersum

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// DefaultModulus returns the order of the BLS12-381 G1 subgroup, the prime
// field the shuffle protocol runs in by default.
func DefaultModulus() *big.Int {
	return fr.Modulus()
}

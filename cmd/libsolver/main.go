// Command libsolver builds as a C shared library exposing the solver over
// a plain C ABI, for embedding in non-Go hosts:
//
//	go build -buildmode=c-shared -o libsolver.so ./cmd/libsolver
//
// All scalars cross the boundary as null-terminated lower-case hex strings
// without a 0x prefix. No panic unwinds across the boundary.
package main

/*
#include <stddef.h>
*/
import "C"

import (
	"errors"
	"math/big"
	"unsafe"

	"github.com/initc3/powermix/powersum"
)

const (
	retOK       = 0
	retInvalid  = 1
	retInternal = 100
	retInput    = 101
)

// solve recovers the sorted messages from n hex power sums over the prime
// field. out_messages must hold n caller-allocated buffers of at least
// strlen(prime)+1 bytes each; on success each receives one hex residue,
// in ascending numeric order.
//
//export solve
func solve(outMessages **C.char, prime *C.char, sums **C.char, n C.size_t) (ret C.int) {
	defer func() {
		if recover() != nil {
			ret = retInternal
		}
	}()

	if outMessages == nil || prime == nil || sums == nil {
		return retInput
	}

	primeHex := C.GoString(prime)
	p, ok := big.NewInt(0).SetString(primeHex, 16)
	if !ok {
		return retInput
	}

	count := int(n)
	sumPtrs := unsafe.Slice(sums, count)
	outPtrs := unsafe.Slice(outMessages, count)

	sumInts := make([]*big.Int, count)
	for i := 0; i < count; i++ {
		if sumPtrs[i] == nil || outPtrs[i] == nil {
			return retInput
		}
		if sumInts[i], ok = big.NewInt(0).SetString(C.GoString(sumPtrs[i]), 16); !ok {
			return retInput
		}
	}

	messages, err := powersum.Solve(p, sumInts)
	switch {
	case errors.Is(err, powersum.ErrInvalidPowerSums):
		return retInvalid
	case errors.Is(err, powersum.ErrMalformedInput):
		return retInput
	case err != nil:
		return retInternal
	}

	for i, m := range messages {
		hex := m.Text(16)
		if len(hex) > len(primeHex) {
			return retInternal
		}
		dst := unsafe.Slice((*byte)(unsafe.Pointer(outPtrs[i])), len(hex)+1)
		copy(dst, hex)
		dst[len(hex)] = 0
	}

	return retOK
}

func main() {}

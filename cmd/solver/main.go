// Command solver recovers the shuffled messages from summed power vectors.
//
// Input on stdin: the prime modulus in decimal (unless -bls12-381 is set),
// the party count n, then n power sums as lower-case hex, whitespace
// separated. On success the sorted messages are printed as
// "Messages: [m1, m2, ..., ]".
//
// Exit codes mirror the C ABI: 0 success, 1 invalid power sums,
// 100 internal error, 101 input error.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/initc3/powermix/powersum"
)

const (
	exitOK       = 0
	exitInvalid  = 1
	exitInternal = 100
	exitInput    = 101
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("solver", flag.ContinueOnError)
	useBLS := fs.Bool("bls12-381", false, "Use the BLS12-381 subgroup order instead of reading the prime from stdin")
	if err := fs.Parse(args); err != nil {
		return exitInput
	}

	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 1<<20), 1<<24)
	sc.Split(bufio.ScanWords)

	var p *big.Int
	if *useBLS {
		p = powersum.DefaultModulus()
	} else {
		word, ok := scanWord(sc)
		if !ok {
			return exitInput
		}
		if p, ok = big.NewInt(0).SetString(word, 10); !ok {
			return exitInput
		}
	}

	word, ok := scanWord(sc)
	if !ok {
		return exitInput
	}
	n, err := strconv.Atoi(word)
	if err != nil || n < 0 {
		return exitInput
	}

	sums := make([]*big.Int, n)
	for i := range sums {
		word, ok := scanWord(sc)
		if !ok {
			return exitInput
		}
		if sums[i], ok = big.NewInt(0).SetString(word, 16); !ok {
			return exitInput
		}
	}

	messages, err := powersum.Solve(p, sums)
	switch {
	case errors.Is(err, powersum.ErrInvalidPowerSums):
		return exitInvalid
	case errors.Is(err, powersum.ErrMalformedInput):
		return exitInput
	case err != nil:
		return exitInternal
	}

	out := bufio.NewWriter(os.Stdout)
	fmt.Fprint(out, "Messages: [")
	for _, m := range messages {
		fmt.Fprintf(out, "%s, ", m.Text(10))
	}
	fmt.Fprintln(out, "]")
	out.Flush()

	return exitOK
}

func scanWord(sc *bufio.Scanner) (string, bool) {
	if !sc.Scan() {
		return "", false
	}
	return sc.Text(), true
}

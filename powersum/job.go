package powersum

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"os"
)

// PowersJob is the party-side input to the power computation: the field
// modulus, the local secret a, the opened difference a-b, and the k
// precomputed powers of the peer-chosen random b.
//
// On disk it is a plain-text record, one decimal value per line:
// modulus, a, a-b, k, then b^1 ... b^k.
type PowersJob struct {
	Modulus *big.Int
	A       *big.Int
	AMinusB *big.Int
	K       int
	BPows   []*big.Int
}

// ReadPowersJob parses a job record.
func ReadPowersJob(rd io.Reader) (*PowersJob, error) {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 1<<20), 1<<24)

	job := &PowersJob{}
	var err error

	if job.Modulus, err = scanBig(sc); err != nil {
		return nil, fmt.Errorf("job modulus: %w", err)
	}
	if job.A, err = scanBig(sc); err != nil {
		return nil, fmt.Errorf("job secret: %w", err)
	}
	if job.AMinusB, err = scanBig(sc); err != nil {
		return nil, fmt.Errorf("job opened difference: %w", err)
	}
	if job.K, err = scanInt(sc); err != nil {
		return nil, fmt.Errorf("job power count: %w", err)
	}
	if job.K < 0 {
		return nil, fmt.Errorf("job power count %d: %w", job.K, ErrMalformedInput)
	}

	job.BPows = make([]*big.Int, job.K)
	for i := range job.BPows {
		if job.BPows[i], err = scanBig(sc); err != nil {
			return nil, fmt.Errorf("job power %d: %w", i+1, err)
		}
	}

	return job, nil
}

// ReadPowersJobFile parses the job record at path.
func ReadPowersJobFile(path string) (*PowersJob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPowersJob(f)
}

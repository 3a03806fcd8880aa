// Command powersums computes a party's power vector from a job file and
// folds it into the shared accumulator under the barrier lock.
//
// Usage: powersums [flags] <input_file> <accumulator_file>
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/initc3/powermix/field"
	"github.com/initc3/powermix/powersum"
)

const (
	exitOK       = 0
	exitInternal = 100
	exitInput    = 101
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("powersums", flag.ContinueOnError)
	lockPath := fs.String("lock", "lock.file", "Barrier lock file guarding the accumulator")
	verbose := fs.Bool("v", false, "Debug logging")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: powersums [flags] <input_file> <accumulator_file>\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitInput
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return exitInput
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	job, err := powersum.ReadPowersJobFile(fs.Arg(0))
	if err != nil {
		log.Error("reading job", "path", fs.Arg(0), "err", err)
		return exitInput
	}

	fld, err := field.New(job.Modulus)
	if err != nil {
		log.Error("invalid modulus", "err", err)
		return exitInput
	}

	start := time.Now()
	pows, err := powersum.Powers(fld, job.A, job.K, job.BPows, job.AMinusB)
	if err != nil {
		log.Error("computing powers", "err", err)
		return exitInput
	}
	log.Info("powers computed", "k", job.K, "elapsed", time.Since(start))

	acc := powersum.NewAccumulator(
		powersum.NewFileStore(fs.Arg(1)),
		powersum.NewFlockBarrier(*lockPath),
		log,
	)

	start = time.Now()
	if _, err := acc.Fold(job.Modulus, pows); err != nil {
		if errors.Is(err, powersum.ErrAccumulatorMismatch) {
			log.Error("accumulator mismatch", "err", err)
			return exitInput
		}
		log.Error("folding powers", "err", err)
		return exitInternal
	}
	log.Info("fold complete", "accumulator", fs.Arg(1), "elapsed", time.Since(start))

	return exitOK
}

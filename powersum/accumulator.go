package powersum

import (
	"fmt"
	"log/slog"
	"math/big"
)

// State is the accumulator contents: the modulus, the vector length, and
// the running sums S_1 ... S_k.
type State struct {
	Modulus *big.Int
	K       int
	Sums    []*big.Int
}

// Copy returns a deep copy of the State.
func (s *State) Copy() *State {
	sums := make([]*big.Int, len(s.Sums))
	for i := range sums {
		sums[i] = big.NewInt(0).Set(s.Sums[i])
	}
	return &State{
		Modulus: big.NewInt(0).Set(s.Modulus),
		K:       s.K,
		Sums:    sums,
	}
}

// Store persists accumulator state.
// Read reports (nil, nil) when no state has been recorded yet.
type Store interface {
	Read() (*State, error)
	Write(*State) error
}

// Barrier is the cross-party serialisation token guarding the store.
// Acquire blocks until the token is held; Release must be called on all
// exit paths. The token resource is distinct from the state itself.
type Barrier interface {
	Acquire() error
	Release() error
}

// Accumulator folds power vectors from concurrent parties into a durable
// running sum. Every fold runs under the barrier token; fold order is
// irrelevant since addition mod p commutes.
type Accumulator struct {
	store   Store
	barrier Barrier

	log *slog.Logger
}

// NewAccumulator creates a new Accumulator over the given store and barrier.
// A nil logger disables logging.
func NewAccumulator(store Store, barrier Barrier, log *slog.Logger) *Accumulator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Accumulator{
		store:   store,
		barrier: barrier,

		log: log,
	}
}

// Fold adds v into the running sums under modulus p, creating the state on
// first use. Returns the updated state.
//
// A fold whose modulus or length disagrees with the recorded state fails
// with ErrAccumulatorMismatch and leaves the store untouched.
func (a *Accumulator) Fold(p *big.Int, v []*big.Int) (st *State, err error) {
	if err := a.barrier.Acquire(); err != nil {
		return nil, fmt.Errorf("acquire barrier: %w", err)
	}
	defer func() {
		if rerr := a.barrier.Release(); rerr != nil && err == nil {
			err = fmt.Errorf("release barrier: %w", rerr)
		}
	}()

	st, err = a.store.Read()
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}

	if st == nil {
		sums := make([]*big.Int, len(v))
		for i := range v {
			sums[i] = big.NewInt(0).Mod(v[i], p)
		}
		st = &State{
			Modulus: big.NewInt(0).Set(p),
			K:       len(v),
			Sums:    sums,
		}
		a.log.Debug("recording first fold", "k", st.K)
	} else {
		if st.Modulus.Cmp(p) != 0 || st.K != len(v) {
			return nil, ErrAccumulatorMismatch
		}
		for i := range v {
			st.Sums[i].Add(st.Sums[i], v[i])
			st.Sums[i].Mod(st.Sums[i], p)
		}
	}

	if err := a.store.Write(st); err != nil {
		return nil, fmt.Errorf("write state: %w", err)
	}

	return st, nil
}

// Load reads the current state under the barrier token.
// Reports (nil, nil) when the accumulator is empty.
func (a *Accumulator) Load() (st *State, err error) {
	if err := a.barrier.Acquire(); err != nil {
		return nil, fmt.Errorf("acquire barrier: %w", err)
	}
	defer func() {
		if rerr := a.barrier.Release(); rerr != nil && err == nil {
			err = fmt.Errorf("release barrier: %w", rerr)
		}
	}()

	return a.store.Read()
}

// SPDX-License-Identifier: MIT

// Package neighborhood provides tunable options and error definitions
// for the epsilon-bounded similarity walk.
package neighborhood

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/spectral/fault"
)

// ErrOptionViolation is returned when an invalid Option is supplied.
// It also matches fault.ErrInvalidArgument.
var ErrOptionViolation = errors.New("neighborhood: invalid option supplied")

// Symmetrize selects how Build reconciles S[i][j] and S[j][i].
type Symmetrize int

const (
	// SymmetrizeNone keeps the literal per-source result (default).
	SymmetrizeNone Symmetrize = iota

	// SymmetrizeUnion marks i~j when either walk reached the other node,
	// then recounts the diagonal so row sums stay zero.
	SymmetrizeUnion

	// SymmetrizeIntersection marks i~j only when both walks reached each
	// other (element-wise max of S and Sᵀ), then recounts the diagonal.
	SymmetrizeIntersection

	// SymmetrizeMean replaces S with (S + Sᵀ)/2. Off-diagonal entries may
	// become -0.5; the diagonal is rebalanced to minus the off-diagonal row sum.
	SymmetrizeMean
)

var symmetrizeNames = map[Symmetrize]string{
	SymmetrizeNone:         "none",
	SymmetrizeUnion:        "union",
	SymmetrizeIntersection: "intersection",
	SymmetrizeMean:         "mean",
}

// String implements fmt.Stringer.
func (s Symmetrize) String() string {
	if name, ok := symmetrizeNames[s]; ok {
		return name
	}

	return fmt.Sprintf("Symmetrize(%d)", int(s))
}

// ParseSymmetrize maps a configuration string onto a Symmetrize mode.
// Matching is case-insensitive; "" selects SymmetrizeNone.
func ParseSymmetrize(s string) (Symmetrize, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return SymmetrizeNone, nil
	}
	for mode, name := range symmetrizeNames {
		if name == key {
			return mode, nil
		}
	}

	return SymmetrizeNone, fault.Invalidf("neighborhood: unknown symmetrize mode %q", s)
}

// Option configures Build via functional arguments.
// If an Option is invalid (e.g. zero workers), it is recorded internally
// and surfaced as ErrOptionViolation when Build is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize Build.
type Options struct {
	// Workers bounds the number of concurrent per-node walks.
	Workers int

	// Symmetrize selects the post-processing policy.
	Symmetrize Symmetrize

	// OnVisit is called each time a node is reached for the first time in the
	// walk started at source, with the budget left on arrival. It runs on
	// worker goroutines and must be safe for concurrent use when Workers > 1.
	OnVisit func(source, node int, budget float64)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - Workers = runtime.GOMAXPROCS(0)
//   - SymmetrizeNone
//   - no-op OnVisit.
func DefaultOptions() Options {
	return Options{
		Workers:    runtime.GOMAXPROCS(0),
		Symmetrize: SymmetrizeNone,
		OnVisit:    func(int, int, float64) {},
	}
}

// WithWorkers bounds the number of concurrent walks.
//
//	n >= 1: use n goroutines (1 = serial)
//	n < 1:  invalid option → ErrOptionViolation
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fault.Mark(ErrOptionViolation, fault.ErrInvalidArgument, "workers must be >= 1, got %d", n)
			return
		}
		o.Workers = n
	}
}

// WithSymmetrize selects the symmetrization policy.
func WithSymmetrize(mode Symmetrize) Option {
	return func(o *Options) {
		if _, ok := symmetrizeNames[mode]; !ok {
			o.err = fault.Mark(ErrOptionViolation, fault.ErrInvalidArgument, "unknown symmetrize mode %d", int(mode))
			return
		}
		o.Symmetrize = mode
	}
}

// WithOnVisit registers a callback invoked on every first-time visit.
func WithOnVisit(fn func(source, node int, budget float64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

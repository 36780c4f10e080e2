// SPDX-License-Identifier: MIT

package kmeans

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/spectral/fault"
)

// ErrOptionViolation is returned when an invalid Option is supplied.
// It also matches fault.ErrInvalidArgument.
var ErrOptionViolation = errors.New("kmeans: invalid option supplied")

// Defaults.
const (
	// DefaultMaxIterations caps Lloyd iterations per restart.
	DefaultMaxIterations = 300

	// DefaultRestarts is the number of independent initializations; the run
	// with the lowest inertia wins.
	DefaultRestarts = 10
)

// Init selects how initial centroids are chosen.
type Init int

const (
	// InitPlusPlus is k-means++ seeding: each next centroid is drawn with
	// probability proportional to its squared distance from the nearest
	// centroid chosen so far.
	InitPlusPlus Init = iota

	// InitBoundingBox draws each centroid uniformly inside the per-dimension
	// [min, max] box of the points.
	InitBoundingBox
)

var initNames = map[Init]string{
	InitPlusPlus:    "plusplus",
	InitBoundingBox: "boundingbox",
}

// String implements fmt.Stringer.
func (i Init) String() string {
	if name, ok := initNames[i]; ok {
		return name
	}

	return fmt.Sprintf("Init(%d)", int(i))
}

// ParseInit maps a configuration string onto an Init ("" → InitPlusPlus).
func ParseInit(s string) (Init, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return InitPlusPlus, nil
	}
	for v, name := range initNames {
		if name == key {
			return v, nil
		}
	}

	return InitPlusPlus, fault.Invalidf("kmeans: unknown init %q", s)
}

// Result is the outcome of Assign.
type Result struct {
	// Labels holds one cluster index in [0, k) per point, canonicalized so
	// that labels appear in first-seen order (point 0 is always label 0).
	Labels []int

	// Centroids[c] is the mean of the points labelled c.
	Centroids [][]float64

	// Iterations is the number of Lloyd iterations of the winning restart.
	Iterations int

	// Inertia is the sum of squared distances to the assigned centroids.
	Inertia float64
}

// Option configures Assign via functional arguments.
type Option func(*Options)

// Options holds the parameters of Assign.
type Options struct {
	Init          Init
	Seed          int64
	Rand          *rand.Rand
	MaxIterations int
	Restarts      int

	err error
}

// DefaultOptions returns InitPlusPlus, seed 0, DefaultMaxIterations and
// DefaultRestarts.
func DefaultOptions() Options {
	return Options{
		Init:          InitPlusPlus,
		MaxIterations: DefaultMaxIterations,
		Restarts:      DefaultRestarts,
	}
}

// WithInit selects the initialization strategy.
func WithInit(init Init) Option {
	return func(o *Options) {
		if _, ok := initNames[init]; !ok {
			o.err = fault.Mark(ErrOptionViolation, fault.ErrInvalidArgument, "unknown init %d", int(init))
			return
		}
		o.Init = init
	}
}

// WithSeed seeds the internal RNG (0 maps to a fixed default seed).
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithRand supplies the base RNG; it takes precedence over WithSeed.
// The generator is advanced by Assign and must not be shared concurrently.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// WithMaxIterations caps Lloyd iterations per restart (n >= 1).
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fault.Mark(ErrOptionViolation, fault.ErrInvalidArgument, "max iterations must be >= 1, got %d", n)
			return
		}
		o.MaxIterations = n
	}
}

// WithRestarts sets the number of independent initializations (n >= 1).
func WithRestarts(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fault.Mark(ErrOptionViolation, fault.ErrInvalidArgument, "restarts must be >= 1, got %d", n)
			return
		}
		o.Restarts = n
	}
}

// SPDX-License-Identifier: MIT

package builder

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/spectral/fault"
)

var (
	// ErrTooFewVertices indicates a size or count parameter below its minimum.
	ErrTooFewVertices = errors.New("builder: parameter too small")

	// ErrInvalidProbability indicates a probability outside [0,1].
	ErrInvalidProbability = errors.New("builder: probability out of range")

	// ErrNeedRandSource indicates a stochastic constructor ran without WithSeed/WithRand.
	ErrNeedRandSource = errors.New("builder: rng is required")

	// ErrInvalidEdge indicates an explicit edge with an out-of-range endpoint
	// or a negative/non-finite weight.
	ErrInvalidEdge = errors.New("builder: invalid edge")

	// ErrConstructFailed indicates a nil constructor passed to Build.
	ErrConstructFailed = errors.New("builder: construction failed")
)

// builderErrorf tags sentinel with method context and the InvalidArgument kind.
func builderErrorf(method string, sentinel error, format string, args ...interface{}) error {
	return fault.Mark(sentinel, fault.ErrInvalidArgument, method+": "+format, args...)
}

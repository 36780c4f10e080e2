// SPDX-License-Identifier: MIT

package neighborhood

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/matrix"
)

// Build computes the N×N similarity matrix of graph under budget epsilon.
// MAIN DESCRIPTION:
//   - Row i holds -1 for every node reached from i, 0 elsewhere, and the
//     count of reached nodes (excluding i) on the diagonal.
//
// Implementation:
//   - Stage 1: Validate options, graph (square, finite, non-negative,
//     symmetric) and epsilon (finite, >= 0).
//   - Stage 2: Run one walker per node on an errgroup limited to Workers;
//     each goroutine writes only its own row.
//   - Stage 3: Apply the Symmetrize policy.
//
// Errors:
//   - fault.ErrEmptyInput for a zero-node graph.
//   - fault.ErrInvalidArgument (and the matrix sentinel in the chain) for
//     bad graphs, bad epsilon, or ErrOptionViolation.
//   - ctx.Err() when ctx is cancelled before all walks started.
//
// Complexity: Time O(N * walk), Space O(N^2).
func Build(ctx context.Context, graph matrix.Matrix, epsilon float64, opts ...Option) (*matrix.Dense, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	rows, err := prepare(graph, epsilon)
	if err != nil {
		return nil, err
	}
	n := len(rows)
	out := make([][]float64, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		source := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			order := newWalker(rows, source, o.OnVisit).run(epsilon)
			row := make([]float64, n)
			for _, node := range order[1:] {
				row[node] = -1
			}
			row[source] = float64(len(order) - 1)
			out[source] = row

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	s, err := matrix.NewDenseFrom(out)
	if err != nil {
		return nil, errors.Wrap(err, "neighborhood: assemble similarity")
	}

	return symmetrize(s, o.Symmetrize)
}

// Reach returns the nodes reached from source under budget epsilon, in visit
// order. The first element is always source.
//
// Errors: as Build, plus fault.ErrInvalidArgument for an out-of-range source.
func Reach(graph matrix.Matrix, source int, epsilon float64) ([]int, error) {
	rows, err := prepare(graph, epsilon)
	if err != nil {
		return nil, err
	}
	if source < 0 || source >= len(rows) {
		return nil, fault.Invalidf("neighborhood: source %d outside [0,%d)", source, len(rows))
	}

	return newWalker(rows, source, func(int, int, float64) {}).run(epsilon), nil
}

// prepare validates graph and epsilon and returns a private row copy of the
// adjacency that walkers can share read-only.
func prepare(graph matrix.Matrix, epsilon float64) ([][]float64, error) {
	if err := matrix.ValidateNotNil(graph); err != nil {
		return nil, fault.Mark(err, fault.ErrInvalidArgument, "neighborhood: graph")
	}
	if graph.Rows() == 0 && graph.Cols() == 0 {
		return nil, fault.Emptyf("neighborhood: graph has no nodes")
	}
	if err := matrix.ValidateAdjacency(graph); err != nil {
		return nil, fault.Mark(err, fault.ErrInvalidArgument, "neighborhood: graph")
	}
	if math.IsNaN(epsilon) || math.IsInf(epsilon, 0) || epsilon < 0 {
		return nil, fault.Invalidf("neighborhood: epsilon must be finite and >= 0, got %g", epsilon)
	}
	d, err := matrix.AsDense(graph)
	if err != nil {
		return nil, fault.Mark(err, fault.ErrInvalidArgument, "neighborhood: graph")
	}

	return d.RawRows(), nil
}

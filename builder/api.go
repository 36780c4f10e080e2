// SPDX-License-Identifier: MIT

package builder

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/matrix"
)

// Constructor overlays edges on an adjacency matrix using the resolved
// builderConfig. Constructors validate their parameters before writing,
// emit edges in a fixed order and never panic.
type Constructor func(g *matrix.Dense, cfg builderConfig) error

// Build allocates an n×n zero adjacency matrix, resolves bopts, and applies
// cons in order. Later constructors overwrite the weights of edges written
// by earlier ones.
//
// Errors:
//   - ErrTooFewVertices for n < 1.
//   - ErrConstructFailed for a nil constructor.
//   - The first constructor error, wrapped with "Build".
//
// Complexity: O(n²) allocation plus the sum of constructor costs.
func Build(n int, bopts []BuilderOption, cons ...Constructor) (*matrix.Dense, error) {
	if n < 1 {
		return nil, builderErrorf(methodBuild, ErrTooFewVertices, "n=%d < 1", n)
	}
	g, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fault.Mark(err, fault.ErrInvalidArgument, "%s: allocate", methodBuild)
	}
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, builderErrorf(methodBuild, ErrConstructFailed, "nil constructor at index %d", i)
		}
		if err = fn(g, cfg); err != nil {
			return nil, errors.Wrap(err, methodBuild)
		}
	}

	return g, nil
}

const (
	methodBuild           = "Build"
	methodPath            = "Path"
	methodCycle           = "Cycle"
	methodComplete        = "Complete"
	methodStar            = "Star"
	methodRandomSparse    = "RandomSparse"
	methodRandomNeighbors = "RandomNeighbors"
	methodEdges           = "Edges"

	minPathNodes  = 2
	minCycleNodes = 3
	minStarNodes  = 2
)

// addEdge writes w at (u,v) and, for undirected configs, at (v,u).
// u and v must be in range.
func addEdge(g *matrix.Dense, cfg builderConfig, u, v int, w float64) {
	_ = g.Set(u, v, w)
	if !cfg.directed {
		_ = g.Set(v, u, w)
	}
}

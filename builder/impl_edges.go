// SPDX-License-Identifier: MIT

package builder

import (
	"math"

	"github.com/katalvlaran/spectral/matrix"
)

// Edge is an explicit (From, To, Weight) triple. A zero Weight means
// "use the configured WeightFn".
type Edge struct {
	From, To int
	Weight   float64
}

// Edges writes the given edges in order. Self-loops are written to the
// diagonal, which traversal ignores.
//
// Errors: ErrInvalidEdge for an endpoint outside [0,n) or a negative or
// non-finite weight. Validation covers every edge before any is written.
// Complexity: O(len(edges)).
func Edges(edges ...Edge) Constructor {
	return func(g *matrix.Dense, cfg builderConfig) error {
		n := g.Rows()
		for k, e := range edges {
			if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
				return builderErrorf(methodEdges, ErrInvalidEdge, "edge %d (%d→%d) outside [0,%d)", k, e.From, e.To, n)
			}
			if e.Weight < 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
				return builderErrorf(methodEdges, ErrInvalidEdge, "edge %d weight %g", k, e.Weight)
			}
		}

		var w float64
		for _, e := range edges {
			w = e.Weight
			if w == 0 {
				w = cfg.weightFn(cfg.rng)
			}
			addEdge(g, cfg, e.From, e.To, w)
		}

		return nil
	}
}

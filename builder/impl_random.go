// SPDX-License-Identifier: MIT

package builder

import (
	"github.com/katalvlaran/spectral/matrix"
)

// RandomSparse samples an Erdős–Rényi-like graph: each admissible pair is
// included independently with probability p.
//
// Trial order is fixed: i ascending, then j ascending (j > i when
// undirected, j != i when directed). The RNG is required only for 0 < p < 1.
//
// Errors: ErrInvalidProbability, ErrNeedRandSource.
// Complexity: O(n²) Bernoulli trials.
func RandomSparse(p float64) Constructor {
	return func(g *matrix.Dense, cfg builderConfig) error {
		if p < 0 || p > 1 {
			return builderErrorf(methodRandomSparse, ErrInvalidProbability, "p=%.6f not in [0,1]", p)
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return builderErrorf(methodRandomSparse, ErrNeedRandSource, "p=%.6f", p)
		}
		if p == 0 {
			return nil
		}

		n := g.Rows()
		var i, j, from int
		for i = 0; i < n; i++ {
			from = i + 1
			if cfg.directed {
				from = 0
			}
			for j = from; j < n; j++ {
				if i == j {
					continue
				}
				if p < 1 && cfg.rng.Float64() >= p {
					continue
				}
				addEdge(g, cfg, i, j, cfg.weightFn(cfg.rng))
			}
		}

		return nil
	}
}

// RandomNeighbors gives every node picks uniformly drawn partners: node i
// (ascending) draws picks indices in [0,n) with replacement and links to each.
// Self draws are skipped; repeated draws overwrite the same edge.
// Mirroring makes node degrees ≥ the number of distinct partners drawn.
//
// Errors: ErrTooFewVertices for picks < 0, ErrNeedRandSource.
// Complexity: O(n·picks).
func RandomNeighbors(picks int) Constructor {
	return func(g *matrix.Dense, cfg builderConfig) error {
		if picks < 0 {
			return builderErrorf(methodRandomNeighbors, ErrTooFewVertices, "picks=%d < 0", picks)
		}
		if cfg.rng == nil {
			return builderErrorf(methodRandomNeighbors, ErrNeedRandSource, "picks=%d", picks)
		}

		n := g.Rows()
		var i, p, j int
		for i = 0; i < n; i++ {
			for p = 0; p < picks; p++ {
				j = cfg.rng.Intn(n)
				if j == i {
					continue
				}
				addEdge(g, cfg, i, j, cfg.weightFn(cfg.rng))
			}
		}

		return nil
	}
}

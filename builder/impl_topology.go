// SPDX-License-Identifier: MIT

package builder

import (
	"github.com/katalvlaran/spectral/matrix"
)

// Path links i—(i+1) for i in [0, n-2] (n ≥ 2).
// Complexity: O(n).
func Path() Constructor {
	return func(g *matrix.Dense, cfg builderConfig) error {
		n := g.Rows()
		if n < minPathNodes {
			return builderErrorf(methodPath, ErrTooFewVertices, "n=%d < min=%d", n, minPathNodes)
		}
		for i := 0; i+1 < n; i++ {
			addEdge(g, cfg, i, i+1, cfg.weightFn(cfg.rng))
		}

		return nil
	}
}

// Cycle is Path plus the closing edge (n-1)—0 (n ≥ 3).
// Complexity: O(n).
func Cycle() Constructor {
	return func(g *matrix.Dense, cfg builderConfig) error {
		n := g.Rows()
		if n < minCycleNodes {
			return builderErrorf(methodCycle, ErrTooFewVertices, "n=%d < min=%d", n, minCycleNodes)
		}
		for i := 0; i < n; i++ {
			addEdge(g, cfg, i, (i+1)%n, cfg.weightFn(cfg.rng))
		}

		return nil
	}
}

// Complete links every unordered pair {i,j}, i<j. A single node is valid
// and yields no edges.
// Complexity: O(n²).
func Complete() Constructor {
	return func(g *matrix.Dense, cfg builderConfig) error {
		n := g.Rows()
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				addEdge(g, cfg, i, j, cfg.weightFn(cfg.rng))
			}
		}

		return nil
	}
}

// Star links center 0 to every other node (n ≥ 2).
// Complexity: O(n).
func Star() Constructor {
	return func(g *matrix.Dense, cfg builderConfig) error {
		n := g.Rows()
		if n < minStarNodes {
			return builderErrorf(methodStar, ErrTooFewVertices, "n=%d < min=%d", n, minStarNodes)
		}
		for i := 1; i < n; i++ {
			addEdge(g, cfg, 0, i, cfg.weightFn(cfg.rng))
		}

		return nil
	}
}

// SPDX-License-Identifier: MIT

package kmeans

import (
	"math/rand"
)

// initCentroids returns k starting centroids for points according to init.
func initCentroids(points [][]float64, k int, init Init, rng *rand.Rand) [][]float64 {
	if init == InitBoundingBox {
		return boundingBox(points, k, rng)
	}

	return plusPlus(points, k, rng)
}

// boundingBox draws k centroids uniformly inside the per-dimension [min, max]
// box of points.
//
// Complexity: O(n*d + k*d).
func boundingBox(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	dim := len(points[0])
	lo := append([]float64(nil), points[0]...)
	hi := append([]float64(nil), points[0]...)
	var i, j int
	for i = 1; i < len(points); i++ {
		for j = 0; j < dim; j++ {
			if points[i][j] < lo[j] {
				lo[j] = points[i][j]
			}
			if points[i][j] > hi[j] {
				hi[j] = points[i][j]
			}
		}
	}

	out := make([][]float64, k)
	for i = 0; i < k; i++ {
		out[i] = make([]float64, dim)
		for j = 0; j < dim; j++ {
			out[i][j] = lo[j] + rng.Float64()*(hi[j]-lo[j])
		}
	}

	return out
}

// plusPlus implements k-means++ seeding. When every remaining point sits on
// an existing centroid the next one is drawn uniformly.
//
// Complexity: O(n*k*d).
func plusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(points)
	out := make([][]float64, 0, k)
	out = append(out, append([]float64(nil), points[rng.Intn(n)]...))

	nearest := make([]float64, n)
	for i := range points {
		nearest[i] = sqDist(points[i], out[0])
	}

	var (
		total, target, d float64
		i, pick          int
	)
	for len(out) < k {
		total = 0
		for _, d = range nearest {
			total += d
		}
		if total == 0 {
			pick = rng.Intn(n)
		} else {
			target = rng.Float64() * total
			pick = n - 1
			for i = 0; i < n; i++ {
				target -= nearest[i]
				if target < 0 {
					pick = i
					break
				}
			}
		}
		c := append([]float64(nil), points[pick]...)
		out = append(out, c)
		for i = range points {
			if d = sqDist(points[i], c); d < nearest[i] {
				nearest[i] = d
			}
		}
	}

	return out
}

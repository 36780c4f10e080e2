// SPDX-License-Identifier: MIT

// Package kmeans assigns points to clusters with seeded Lloyd iterations.
//
// What
//
//   - Assign partitions the rows of an N×d matrix into k clusters by
//     alternating nearest-centroid assignment and centroid recomputation
//     until no label changes or MaxIterations is reached.
//   - Initialization is k-means++ (default) or uniform inside the bounding
//     box of the points. Several restarts run from independent RNG streams
//     and the lowest-inertia result wins (earliest restart on ties).
//   - A cluster that loses all its points is re-seeded at the point farthest
//     from its own centroid. If every point coincides with its centroid the
//     empty cluster keeps its previous centroid, so k greater than the
//     number of distinct points still terminates.
//
// Determinism
//
//	All randomness flows from one *rand.Rand (WithRand) or one seed
//	(WithSeed, 0 → fixed default). Distance ties go to the lower centroid
//	index. Labels are canonicalized by first appearance, so two runs that
//	find the same partition return identical label slices.
//
// Complexity
//
//   - Time:   O(restarts * iterations * N * k * d)
//   - Memory: O(N*d + k*d)
package kmeans

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/matrix"
)

// Assign clusters the rows of points into numClusters groups.
//
// Errors:
//   - fault.ErrEmptyInput for zero rows.
//   - fault.ErrInvalidArgument for nil points, numClusters outside [1, N],
//     or ErrOptionViolation.
//   - fault.ErrNumericalFailure for NaN/Inf coordinates.
func Assign(points matrix.Matrix, numClusters int, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	if err := matrix.ValidateNotNil(points); err != nil {
		return nil, fault.Mark(err, fault.ErrInvalidArgument, "kmeans: points")
	}
	if points.Rows() == 0 {
		return nil, fault.Emptyf("kmeans: no points")
	}
	n := points.Rows()
	if numClusters < 1 || numClusters > n {
		return nil, fault.Invalidf("kmeans: numClusters=%d outside [1,%d]", numClusters, n)
	}
	if err := matrix.ValidateFinite(points); err != nil {
		return nil, fault.Mark(err, fault.ErrNumericalFailure, "kmeans: points")
	}
	d, err := matrix.AsDense(points)
	if err != nil {
		return nil, fault.Mark(err, fault.ErrInvalidArgument, "kmeans: points")
	}
	rows := d.RawRows()

	base := o.Rand
	if base == nil {
		base = rngFromSeed(o.Seed)
	}

	var best *Result
	for _, rng := range restartRNGs(base, o.Restarts) {
		res := lloyd(rows, initCentroids(rows, numClusters, o.Init, rng), o.MaxIterations)
		if best == nil || res.Inertia < best.Inertia {
			best = res
		}
	}
	canonicalize(best)

	return best, nil
}

// lloyd runs assignment/update iterations from the given centroids.
func lloyd(points [][]float64, centroids [][]float64, maxIter int) *Result {
	n, k := len(points), len(centroids)
	dim := len(points[0])
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	sums := make([][]float64, k)
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	counts := make([]int, k)

	var (
		iter, i, c, nearest int
		changed             bool
	)
	for iter = 1; iter <= maxIter; iter++ {
		// assignment
		changed = false
		for i = 0; i < n; i++ {
			nearest = nearestCentroid(points[i], centroids)
			if nearest != labels[i] {
				labels[i] = nearest
				changed = true
			}
		}
		if !changed {
			break
		}

		// update
		for c = 0; c < k; c++ {
			for j := range sums[c] {
				sums[c][j] = 0
			}
			counts[c] = 0
		}
		for i = 0; i < n; i++ {
			floats.Add(sums[labels[i]], points[i])
			counts[labels[i]]++
		}
		for c = 0; c < k; c++ {
			if counts[c] > 0 {
				floats.ScaleTo(centroids[c], 1/float64(counts[c]), sums[c])
			}
		}
		reseedEmpty(points, labels, centroids, counts)
	}
	if iter > maxIter {
		iter = maxIter
	}

	inertia := 0.0
	for i = 0; i < n; i++ {
		inertia += sqDist(points[i], centroids[labels[i]])
	}

	return &Result{Labels: labels, Centroids: centroids, Iterations: iter, Inertia: inertia}
}

// reseedEmpty moves every empty centroid onto the point farthest from its own
// centroid. A point is used at most once per call.
func reseedEmpty(points [][]float64, labels []int, centroids [][]float64, counts []int) {
	var used map[int]bool
	for c := range centroids {
		if counts[c] > 0 {
			continue
		}
		if used == nil {
			used = make(map[int]bool)
		}
		far, farDist := -1, 0.0
		for i, p := range points {
			if used[i] {
				continue
			}
			if d := sqDist(p, centroids[labels[i]]); d > farDist {
				far, farDist = i, d
			}
		}
		if far < 0 {
			continue // all points coincide with their centroids; keep the old one
		}
		used[far] = true
		copy(centroids[c], points[far])
	}
}

// nearestCentroid returns the index of the closest centroid; ties go to the lower index.
func nearestCentroid(p []float64, centroids [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, ctr := range centroids {
		if d := sqDist(p, ctr); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best
}

// sqDist is the squared Euclidean distance.
func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)

	return d * d
}

// canonicalize relabels clusters in first-appearance order and permutes the
// centroids to match. Clusters that own no point keep their relative order
// after the used ones.
func canonicalize(res *Result) {
	k := len(res.Centroids)
	remap := make([]int, k)
	for c := range remap {
		remap[c] = -1
	}
	next := 0
	for _, l := range res.Labels {
		if remap[l] < 0 {
			remap[l] = next
			next++
		}
	}
	for c := range remap {
		if remap[c] < 0 {
			remap[c] = next
			next++
		}
	}

	centroids := make([][]float64, k)
	for c, to := range remap {
		centroids[to] = res.Centroids[c]
	}
	for i, l := range res.Labels {
		res.Labels[i] = remap[l]
	}
	res.Centroids = centroids
}

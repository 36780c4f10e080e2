// SPDX-License-Identifier: MIT

// Package neighborhood builds the epsilon-bounded similarity matrix that feeds
// spectral clustering.
//
// What
//
//   - For every node i, a weighted breadth-first walk starts at i with a
//     distance budget epsilon. Crossing an edge of weight w costs w; an edge
//     is taken only when w > 0 and the remaining budget stays >= 0.
//   - Every node dequeued for the first time is "reached": S[i][node] = -1.
//   - After the walk, S[i][i] = (number of reached nodes) - 1, i.e. the
//     number of other nodes reached. Row sums of S are therefore zero, which
//     makes S a Laplacian of the reachability relation.
//
// Determinism
//
//	The queue is FIFO and neighbors are scanned in ascending index order.
//	A node may be enqueued several times with different budgets; the FIRST
//	dequeue wins and later copies are discarded. This is a hop-ordered walk,
//	not a shortest-path search: a node reached early with a small budget
//	does not get revisited when a cheaper path shows up later. As a
//	consequence S is not guaranteed to be symmetric on weighted graphs;
//	WithSymmetrize offers explicit symmetrization policies.
//
// Concurrency
//
//	Per-node walks are independent. Build runs them on an errgroup bounded
//	by WithWorkers (default runtime.GOMAXPROCS(0)); each goroutine owns one
//	output row, so the result is identical for any worker count.
//	Cancellation is checked before each node expansion.
//
// Complexity (N = nodes)
//
//   - One walk: O(N * queue pushes); each dequeue scans a full adjacency row.
//   - Build:    N walks, O(N^2) memory for the output.
//
// Usage
//
//	s, err := neighborhood.Build(ctx, graph, 2.0,
//	    neighborhood.WithWorkers(4),
//	    neighborhood.WithSymmetrize(neighborhood.SymmetrizeUnion),
//	)
//	if errors.Is(err, fault.ErrInvalidArgument) { ... }
package neighborhood

// SPDX-License-Identifier: MIT

// Package spectral partitions the nodes of a graph into clusters of densely
// interconnected, mutually reachable regions using spectral clustering.
//
// What is spectral?
//
//	A small pipeline over dense adjacency matrices:
//		• neighborhood/ — epsilon-bounded weighted walks → Laplacian-like similarity matrix
//		• embed/        — eigendecomposition, first k eigenvectors under an explicit ordering
//		• kmeans/       — seeded k-means over the embedded points
//		• filter/       — drop every edge that crosses cluster boundaries
//
// Supporting packages:
//
//	matrix/   — Dense matrix, validators, Jacobi and general eigen solvers
//	fault/    — error kinds (invalid argument, numerical failure, empty input) and stages
//	adjlist/  — adjacency-list and dense-text codecs
//	builder/  — seeded graph fixtures (random neighbors, Erdős–Rényi, path, cycle)
//	cmd/spectral — command line front end
//
// Quick example:
//
//	    0───2───1───3
//	    │  /    │   │
//	    5─┘     4───6
//
//	labels, err := spectral.Cluster(graph, 2, 2.0)
//
// Run gives full control and returns every intermediate product:
//
//	res, err := spectral.Run(ctx, graph, spectral.Config{
//	    Epsilon:          2,
//	    ClustersToCreate: 3,
//	    Seed:             42,
//	}, spectral.WithObserver(obs))
//
// Errors are *fault.StageError values naming the failed stage; errors.Is
// matches the kind sentinels from package fault.
package spectral

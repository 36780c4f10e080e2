// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra layer used by the spectral
// clustering pipeline.
//
// What it offers:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set and an
//     optional finite-only numeric policy.
//   - Validators: one canonical place for nil/shape/symmetry/finiteness/sign
//     checks, returning plain sentinel errors.
//   - Eigen: Jacobi rotations for symmetric input (eigenvalues + orthonormal
//     eigenvectors as columns).
//   - EigenGeneral: full real eigendecomposition for non-symmetric input,
//     backed by gonum/mat (right eigenvectors, complex in general).
//   - Element-wise helpers (Add, Scale, Max, Symmetrize, AllClose) used when
//     symmetrizing similarity matrices and comparing results in tests.
//
// Matrices are dense on purpose: adjacency and similarity matrices in this
// module are N×N and the pipeline targets small and medium graphs.
//
// Errors are package-level sentinels (errors.go). Callers branch on them with
// errors.Is; kernels wrap them with an operation tag ("Eigen: ...").
package matrix

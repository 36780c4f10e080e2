// SPDX-License-Identifier: MIT

// Package matrix: documented numeric defaults (single source of truth).
package matrix

// Numeric policy.
const (
	// DefaultValidateNaNInf toggles strict finite-value validation on Set.
	DefaultValidateNaNInf = true
)

// Jacobi defaults.
const (
	// DefaultJacobiTol is the off-diagonal magnitude below which Jacobi stops.
	DefaultJacobiTol = 1e-10

	// jacobiRotationsPerCell bounds the rotation budget as a multiple of n².
	// Classical Jacobi needs a handful of sweeps of n(n-1)/2 rotations each.
	jacobiRotationsPerCell = 50

	// jacobiMinRotations keeps the budget meaningful for tiny matrices.
	jacobiMinRotations = 100
)

// DefaultJacobiMaxIter returns the rotation budget used when callers pass
// maxIter <= 0 to Eigen.
func DefaultJacobiMaxIter(n int) int {
	budget := jacobiRotationsPerCell * n * n
	if budget < jacobiMinRotations {
		return jacobiMinRotations
	}

	return budget
}

// SPDX-License-Identifier: MIT

// Package matrix - linear algebra kernels used by the spectral pipeline.
//
// Purpose:
//   - Transpose and MatVec for diagnostics and residual checks.
//   - Eigen: cyclic-pivot Jacobi for symmetric matrices (pure Go, deterministic).
//
// Determinism:
//   - Fixed i→j loop orders everywhere; no map iteration, no goroutines.
//
// AI-Hints:
//   - Eigen never mutates its argument; it works on a private clone.
//   - Eigen returns eigenvalues in diagonal order (unsorted). Ordering is a
//     policy of the caller (see package embed).

package matrix

import (
	"fmt"
	"math"
)

const (
	opTranspose = "Transpose"
	opMatVec    = "MatVec"
	opEigen     = "Eigen"
)

// matrixErrorf wraps err with an operation tag, preserving the sentinel for errors.Is.
func matrixErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// Transpose returns a new r×c → c×r matrix with T[j,i] = M[i,j].
//
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	src, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	out, err := NewDense(src.c, src.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < src.r; i++ {
		for j = 0; j < src.c; j++ {
			out.data[j*out.c+i] = src.data[i*src.c+j]
		}
	}

	return out, nil
}

// MatVec computes y = M·x.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch when len(x) != Cols().
// Complexity: Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	src, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if len(x) != src.c {
		return nil, matrixErrorf(opMatVec, ErrDimensionMismatch)
	}
	y := make([]float64, src.r)
	var (
		i, j, base int
		acc        float64
	)
	for i = 0; i < src.r; i++ {
		base = i * src.c
		acc = 0
		for j = 0; j < src.c; j++ {
			acc += src.data[base+j] * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via Jacobi rotations.
// MAIN DESCRIPTION:
//   - Repeatedly annihilates the largest off-diagonal entry until every
//     off-diagonal magnitude drops below tol.
//
// Implementation:
//   - Stage 1: Validate symmetric square input within tol.
//   - Stage 2: Pick (p,q) with the largest |A[p,q]| in i→j order and apply a rotation.
//   - Stage 3: Accumulate rotations into Q; eigenvalues are diag(A).
//
// Inputs:
//   - m: symmetric Matrix (within tol).
//   - tol: convergence threshold (typ. 1e-9..1e-12 for float64); must be > 0.
//   - maxIter: rotation budget; values <= 0 select DefaultJacobiMaxIter(n).
//
// Returns:
//   - []float64: eigenvalues, values[i] pairs with column i of Q.
//   - *Dense: Q whose columns are orthonormal eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrNaNInf (input or tol),
//     ErrMatrixEigenFailed (max off-diagonal ≥ tol after maxIter rotations).
//
// Complexity:
//   - Time O(maxIter * n), Space O(n^2) (pivot scan adds O(n^2) per rotation).
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, *Dense, error) {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		return nil, nil, matrixErrorf(opEigen, ErrNaNInf)
	}
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := AsDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	a := src.Clone().(*Dense) // working copy; the caller's matrix stays intact
	n := a.r
	if maxIter <= 0 {
		maxIter = DefaultJacobiMaxIter(n)
	}

	q, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	var i int
	for i = 0; i < n; i++ {
		q.data[i*n+i] = 1.0
	}

	var (
		iter, p, r         int
		maxOff             float64
		app, arr, apr      float64
		aip, air, qip, qir float64
		theta, t, c, s     float64
	)
	for iter = 0; iter < maxIter; iter++ {
		// J.1: pivot
		maxOff, p, r = a.maxOffDiagonal()
		if maxOff < tol {
			break
		}

		// J.2: rotation parameters from A[p,p], A[r,r], A[p,r]
		app = a.data[p*n+p]
		arr = a.data[r*n+r]
		apr = a.data[p*n+r]
		theta = (arr - app) / (2 * apr)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		// J.3: rotate rows/cols p and r, keeping A symmetric
		for i = 0; i < n; i++ {
			if i == p || i == r {
				continue
			}
			aip = a.data[i*n+p]
			air = a.data[i*n+r]
			a.data[i*n+p] = c*aip - s*air
			a.data[p*n+i] = a.data[i*n+p]
			a.data[i*n+r] = s*aip + c*air
			a.data[r*n+i] = a.data[i*n+r]
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apr + s*s*arr
		a.data[r*n+r] = s*s*app + 2*c*s*apr + c*c*arr
		a.data[p*n+r], a.data[r*n+p] = 0, 0

		// J.4: accumulate into Q
		for i = 0; i < n; i++ {
			qip = q.data[i*n+p]
			qir = q.data[i*n+r]
			q.data[i*n+p] = c*qip - s*qir
			q.data[i*n+r] = s*qip + c*qir
		}
	}

	if maxOff, _, _ = a.maxOffDiagonal(); maxOff >= tol {
		return nil, nil, matrixErrorf(opEigen,
			fmt.Errorf("off-diagonal %g after %d rotations: %w", maxOff, maxIter, ErrMatrixEigenFailed))
	}

	values := make([]float64, n)
	for i = 0; i < n; i++ {
		values[i] = a.data[i*n+i]
	}

	return values, q, nil
}

// maxOffDiagonal scans the strict upper triangle of a square Dense and returns
// the largest magnitude with its position. Ties keep the first in i→j order.
func (m *Dense) maxOffDiagonal() (maxOff float64, p, q int) {
	n := m.r
	var (
		i, j, base int
		off        float64
	)
	for i = 0; i < n; i++ {
		base = i * n
		for j = i + 1; j < n; j++ {
			off = math.Abs(m.data[base+j])
			if off > maxOff {
				maxOff, p, q = off, i, j
			}
		}
	}

	return maxOff, p, q
}

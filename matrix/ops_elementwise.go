// SPDX-License-Identifier: MIT

// Package matrix - element-wise helpers.
//
// Purpose:
//   - Small, allocation-explicit kernels used by the similarity stage
//     (symmetrization) and by tests (AllClose).
//   - Every helper returns a NEW *Dense and leaves its inputs untouched.

package matrix

import "math"

// Add returns a + b.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (*Dense, error) {
	return zipWith("Add", a, b, func(x, y float64) float64 { return x + y })
}

// Max returns the element-wise maximum of a and b.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Max(a, b Matrix) (*Dense, error) {
	return zipWith("Max", a, b, math.Max)
}

// Scale returns alpha·m.
//
// Errors: ErrNilMatrix, ErrNaNInf when alpha is not finite.
// Complexity: Time O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf("Scale", ErrNaNInf)
	}
	src, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf("Scale", err)
	}
	out := src.Clone().(*Dense)
	for idx := range out.data {
		out.data[idx] *= alpha
	}

	return out, nil
}

// Symmetrize returns (m + mᵀ)/2.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square).
// Complexity: Time O(n^2), Space O(n^2).
func Symmetrize(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}
	src, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}
	n := src.r
	out := src.Clone().(*Dense)
	var (
		i, j int
		avg  float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			avg = (src.data[i*n+j] + src.data[j*n+i]) / 2
			out.data[i*n+j], out.data[j*n+i] = avg, avg
		}
	}

	return out, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
//
// Time: O(r*c). Space: O(1) for *Dense inputs.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf("AllClose", ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateNotNil(a); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	da, err := AsDense(a)
	if err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	db, err := AsDense(b)
	if err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	for idx := range da.data {
		if math.Abs(da.data[idx]-db.data[idx]) > atol+rtol*math.Abs(db.data[idx]) {
			return false, nil // early-exit on first violation
		}
	}

	return true, nil
}

// zipWith applies f pairwise over two same-shape matrices.
func zipWith(op string, a, b Matrix, f func(x, y float64) float64) (*Dense, error) {
	da, err := AsDense(a)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}
	db, err := AsDense(b)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}
	if err = ValidateSameShape(da, db); err != nil {
		return nil, matrixErrorf(op, err)
	}
	out, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}
	for idx := range out.data {
		out.data[idx] = f(da.data[idx], db.data[idx])
	}

	return out, nil
}

// SPDX-License-Identifier: MIT

// Package matrix - general (non-symmetric) eigendecomposition backed by gonum.
//
// Purpose:
//   - Similarity matrices built from directed or asymmetric inputs are not
//     symmetric; Jacobi does not apply there. EigenGeneral delegates to
//     gonum's mat.Eigen (LAPACK Dgeev port) and projects the result back
//     onto this package's Dense type.
//
// AI-Hints:
//   - Values keep their complex form so the caller can order by real part or
//     by magnitude; vectors keep only the real parts (the spectral embedding
//     is a real-valued point set).

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

const opEigenGeneral = "EigenGeneral"

// EigenGeneral factorizes any square matrix and returns its eigenvalues and
// the real parts of its right eigenvectors (column i pairs with values[i]).
// The order is the solver's native order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (non-finite input),
//     ErrMatrixEigenFailed (factorization failed or produced non-finite output).
//
// Complexity: Time O(n^3), Space O(n^2).
func EigenGeneral(m Matrix) ([]complex128, *Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, matrixErrorf(opEigenGeneral, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, nil, matrixErrorf(opEigenGeneral, err)
	}
	src, err := AsDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigenGeneral, err)
	}
	n := src.r

	// gonum takes ownership of the slice it wraps; hand it a copy.
	buf := make([]float64, len(src.data))
	copy(buf, src.data)
	a := mat.NewDense(n, n, buf)

	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenRight); !ok {
		return nil, nil, matrixErrorf(opEigenGeneral, ErrMatrixEigenFailed)
	}
	values := eig.Values(nil)

	var cv mat.CDense
	eig.VectorsTo(&cv)

	out, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigenGeneral, err)
	}
	var (
		i, j int
		re   float64
	)
	for j = 0; j < n; j++ {
		if cmplx.IsNaN(values[j]) || cmplx.IsInf(values[j]) {
			return nil, nil, matrixErrorf(opEigenGeneral,
				fmt.Errorf("value %d: %w", j, ErrMatrixEigenFailed))
		}
		for i = 0; i < n; i++ {
			re = real(cv.At(i, j))
			if math.IsNaN(re) || math.IsInf(re, 0) {
				return nil, nil, matrixErrorf(opEigenGeneral,
					fmt.Errorf("vector (%d,%d): %w", i, j, ErrMatrixEigenFailed))
			}
			out.data[i*n+j] = re
		}
	}

	return values, out, nil
}

// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures for kernels and validators.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spectral/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the AsDense copy path in code under test.
type hide struct{ matrix.Matrix }

// MustDenseFrom builds a Dense from row literals or fails the test.
func MustDenseFrom(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// symmetric4 is a small symmetric matrix with distinct eigenvalues.
func symmetric4() [][]float64 {
	return [][]float64{
		{4, 1, 0, 2},
		{1, 3, 1, 0},
		{0, 1, 2, 1},
		{2, 0, 1, 5},
	}
}

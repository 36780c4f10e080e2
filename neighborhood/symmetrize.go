// SPDX-License-Identifier: MIT

package neighborhood

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/spectral/matrix"
)

// symmetrize applies mode to s and returns the result (s itself for SymmetrizeNone).
func symmetrize(s *matrix.Dense, mode Symmetrize) (*matrix.Dense, error) {
	var (
		out *matrix.Dense
		err error
	)
	switch mode {
	case SymmetrizeNone:
		return s, nil
	case SymmetrizeMean:
		if out, err = matrix.Symmetrize(s); err == nil {
			balanceDiagonal(out)
		}
	case SymmetrizeIntersection:
		var st *matrix.Dense
		if st, err = matrix.Transpose(s); err == nil {
			out, err = matrix.Max(s, st)
			if err == nil {
				err = recountDiagonal(out)
			}
		}
	case SymmetrizeUnion:
		out, err = union(s)
	default:
		return nil, errors.Newf("neighborhood: unknown symmetrize mode %d", int(mode))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "neighborhood: symmetrize %s", mode)
	}

	return out, nil
}

// union marks (i,j) and (j,i) with -1 whenever either is -1.
func union(s *matrix.Dense) (*matrix.Dense, error) {
	rows := s.RawRows()
	n := len(rows)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if rows[i][j] != 0 || rows[j][i] != 0 {
				rows[i][j], rows[j][i] = -1, -1
			}
		}
	}
	out, err := matrix.NewDenseFrom(rows)
	if err != nil {
		return nil, err
	}

	return out, recountDiagonal(out)
}

// recountDiagonal sets S[i][i] to the number of off-diagonal -1 entries in row i.
func recountDiagonal(s *matrix.Dense) error {
	n := s.Rows()
	var (
		i, j  int
		v     float64
		count int
		err   error
	)
	for i = 0; i < n; i++ {
		count = 0
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			if v, err = s.At(i, j); err != nil {
				return err
			}
			if v != 0 {
				count++
			}
		}
		if err = s.Set(i, i, float64(count)); err != nil {
			return err
		}
	}

	return nil
}

// balanceDiagonal sets S[i][i] to minus the sum of the off-diagonal entries
// of row i, so every row sums to zero after averaging.
func balanceDiagonal(s *matrix.Dense) {
	rows := s.RawRows()
	var (
		i, j int
		sum  float64
	)
	for i = range rows {
		sum = 0
		for j = range rows[i] {
			if i != j {
				sum += rows[i][j]
			}
		}
		_ = s.Set(i, i, -sum) // i in range
	}
}

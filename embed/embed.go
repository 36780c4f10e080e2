// SPDX-License-Identifier: MIT

// Package embed turns a similarity matrix into spectral coordinates: it
// eigendecomposes the matrix and keeps the first k eigenvectors as columns.
//
// "First" is explicit. Solvers return eigenpairs in arbitrary order, so Embed
// always reorders them according to an Order (ascending real part by
// default; ties keep solver order) before slicing. Each selected eigenvector
// is sign-normalized so that its first non-negligible component is positive,
// which makes embeddings comparable across solvers and runs.
//
// Errors:
//   - fault.ErrInvalidArgument: nil/non-square input, k outside [1, N],
//     asymmetric input with SolverJacobi, bad options.
//   - fault.ErrNumericalFailure: non-convergence or non-finite values.
//   - fault.ErrEmptyInput: zero-node input.
package embed

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/matrix"
)

// Embed computes the k-column spectral embedding of sim.
//
// Complexity: Time O(N^3) (solver dominated), Space O(N^2).
func Embed(sim matrix.Matrix, k int, opts ...Option) (*Embedding, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	if err := matrix.ValidateNotNil(sim); err != nil {
		return nil, fault.Mark(err, fault.ErrInvalidArgument, "embed: similarity")
	}
	if sim.Rows() == 0 && sim.Cols() == 0 {
		return nil, fault.Emptyf("embed: similarity has no nodes")
	}
	if err := matrix.ValidateSquare(sim); err != nil {
		return nil, fault.Mark(err, fault.ErrInvalidArgument, "embed: similarity")
	}
	n := sim.Rows()
	if k < 1 || k > n {
		return nil, fault.Invalidf("embed: k=%d outside [1,%d]", k, n)
	}

	solver := o.Solver
	if solver == SolverAuto {
		solver = SolverGeneral
		if matrix.IsSymmetric(sim, o.Tolerance) {
			solver = SolverJacobi
		}
	}

	values, vectors, err := decompose(sim, solver, o)
	if err != nil {
		return nil, classify(err, solver)
	}

	idx := order(values, o.Order)
	out, err := matrix.NewDense(n, k)
	if err != nil {
		return nil, errors.Wrap(err, "embed: allocate embedding")
	}
	selected := make([]float64, k)
	var (
		c, i int
		col  []float64
	)
	for c = 0; c < k; c++ {
		selected[c] = real(values[idx[c]])
		col = column(vectors, idx[c])
		normalizeSign(col, o.Tolerance)
		for i = 0; i < n; i++ {
			if err = out.Set(i, c, col[i]); err != nil {
				return nil, fault.Mark(err, fault.ErrNumericalFailure, "embed: column %d", c)
			}
		}
	}

	return &Embedding{Vectors: out, Values: selected, Solver: solver, Order: o.Order}, nil
}

// decompose runs the chosen solver and returns complex values with real vectors.
func decompose(sim matrix.Matrix, solver Solver, o Options) ([]complex128, *matrix.Dense, error) {
	if solver == SolverGeneral {
		return matrix.EigenGeneral(sim)
	}
	vals, q, err := matrix.Eigen(sim, o.Tolerance, o.MaxIterations)
	if err != nil {
		return nil, nil, err
	}
	values := make([]complex128, len(vals))
	for i, v := range vals {
		values[i] = complex(v, 0)
	}

	return values, q, nil
}

// classify tags a matrix-layer failure with its fault kind.
func classify(err error, solver Solver) error {
	if errors.Is(err, matrix.ErrMatrixEigenFailed) || errors.Is(err, matrix.ErrNaNInf) {
		return fault.Mark(err, fault.ErrNumericalFailure, "embed: %s solver", solver)
	}

	return fault.Mark(err, fault.ErrInvalidArgument, "embed: %s solver", solver)
}

// order returns eigenpair indices in the requested order; sorting is stable
// so equal keys keep the solver's index order.
func order(values []complex128, ord Order) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	var less func(a, b int) bool
	switch ord {
	case OrderDescending:
		less = func(a, b int) bool { return real(values[idx[a]]) > real(values[idx[b]]) }
	case OrderMagnitude:
		less = func(a, b int) bool { return cmplx.Abs(values[idx[a]]) < cmplx.Abs(values[idx[b]]) }
	case OrderNative:
		return idx
	default:
		less = func(a, b int) bool { return real(values[idx[a]]) < real(values[idx[b]]) }
	}
	sort.SliceStable(idx, less)

	return idx
}

// column copies column j of m.
func column(m *matrix.Dense, j int) []float64 {
	out := make([]float64, m.Rows())
	for i := range out {
		out[i], _ = m.At(i, j) // in range by construction
	}

	return out
}

// normalizeSign flips v so that its first component with |v_i| > tol is positive.
func normalizeSign(v []float64, tol float64) {
	for _, x := range v {
		if math.Abs(x) <= tol {
			continue
		}
		if x < 0 {
			for i := range v {
				v[i] = -v[i]
			}
		}
		return
	}
}

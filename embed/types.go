// SPDX-License-Identifier: MIT

package embed

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/matrix"
)

// ErrOptionViolation is returned when an invalid Option is supplied.
// It also matches fault.ErrInvalidArgument.
var ErrOptionViolation = errors.New("embed: invalid option supplied")

// Solver selects the eigendecomposition backend.
type Solver int

const (
	// SolverAuto uses Jacobi when the matrix is symmetric within Tolerance
	// and the general solver otherwise.
	SolverAuto Solver = iota

	// SolverJacobi uses matrix.Eigen; the input must be symmetric.
	SolverJacobi

	// SolverGeneral uses matrix.EigenGeneral (gonum) and keeps the real parts.
	SolverGeneral
)

// Order selects which eigenpairs count as "first".
type Order int

const (
	// OrderAscending sorts by the real part of the eigenvalue, smallest first.
	// Ties keep the solver's index order.
	OrderAscending Order = iota

	// OrderDescending sorts by the real part, largest first.
	OrderDescending

	// OrderMagnitude sorts by |λ|, smallest first.
	OrderMagnitude

	// OrderNative keeps the order returned by the solver.
	OrderNative
)

var solverNames = map[Solver]string{
	SolverAuto:    "auto",
	SolverJacobi:  "jacobi",
	SolverGeneral: "general",
}

var orderNames = map[Order]string{
	OrderAscending:  "ascending",
	OrderDescending: "descending",
	OrderMagnitude:  "magnitude",
	OrderNative:     "native",
}

// String implements fmt.Stringer.
func (s Solver) String() string {
	if name, ok := solverNames[s]; ok {
		return name
	}

	return fmt.Sprintf("Solver(%d)", int(s))
}

// String implements fmt.Stringer.
func (o Order) String() string {
	if name, ok := orderNames[o]; ok {
		return name
	}

	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseSolver maps a configuration string onto a Solver ("" → SolverAuto).
func ParseSolver(s string) (Solver, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return SolverAuto, nil
	}
	for v, name := range solverNames {
		if name == key {
			return v, nil
		}
	}

	return SolverAuto, fault.Invalidf("embed: unknown solver %q", s)
}

// ParseOrder maps a configuration string onto an Order ("" → OrderAscending).
func ParseOrder(s string) (Order, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return OrderAscending, nil
	}
	for v, name := range orderNames {
		if name == key {
			return v, nil
		}
	}

	return OrderAscending, fault.Invalidf("embed: unknown order %q", s)
}

// Embedding is the spectral representation of the nodes.
type Embedding struct {
	// Vectors is N×k; column c is the c-th selected eigenvector and row i is
	// the coordinate of node i.
	Vectors *matrix.Dense

	// Values are the real parts of the selected eigenvalues, len k.
	Values []float64

	// Solver is the backend that actually ran (never SolverAuto).
	Solver Solver

	// Order is the ordering that selected the columns.
	Order Order
}

// Option configures Embed via functional arguments.
type Option func(*Options)

// Options holds the parameters of Embed.
type Options struct {
	Solver        Solver
	Order         Order
	Tolerance     float64
	MaxIterations int

	err error
}

// DefaultTolerance is the Jacobi convergence and symmetry tolerance.
const DefaultTolerance = matrix.DefaultJacobiTol

// DefaultOptions returns SolverAuto, OrderAscending, DefaultTolerance and
// MaxIterations = 0 (the Jacobi kernel's own budget).
func DefaultOptions() Options {
	return Options{
		Solver:    SolverAuto,
		Order:     OrderAscending,
		Tolerance: DefaultTolerance,
	}
}

// WithSolver selects the eigen backend.
func WithSolver(s Solver) Option {
	return func(o *Options) {
		if _, ok := solverNames[s]; !ok {
			o.err = fault.Mark(ErrOptionViolation, fault.ErrInvalidArgument, "unknown solver %d", int(s))
			return
		}
		o.Solver = s
	}
}

// WithOrder selects the eigenpair ordering.
func WithOrder(ord Order) Option {
	return func(o *Options) {
		if _, ok := orderNames[ord]; !ok {
			o.err = fault.Mark(ErrOptionViolation, fault.ErrInvalidArgument, "unknown order %d", int(ord))
			return
		}
		o.Order = ord
	}
}

// WithTolerance sets the Jacobi tolerance; tol must be > 0.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) {
			o.err = fault.Mark(ErrOptionViolation, fault.ErrInvalidArgument, "tolerance must be > 0, got %g", tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithMaxIterations caps Jacobi rotations; 0 keeps the kernel default.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fault.Mark(ErrOptionViolation, fault.ErrInvalidArgument, "max iterations must be >= 0, got %d", n)
			return
		}
		o.MaxIterations = n
	}
}

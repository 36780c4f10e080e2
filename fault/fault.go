// SPDX-License-Identifier: MIT

// Package fault defines the error kinds and pipeline stages shared by every
// clustering package.
//
// Every error returned by neighborhood, embed, kmeans, filter and the root
// spectral package matches exactly one kind sentinel under errors.Is:
//
//	ErrInvalidArgument  - bad shape, bad parameter, malformed input file
//	ErrNumericalFailure - eigen solver or k-means hit NaN/Inf or did not converge
//	ErrEmptyInput       - a graph or point set with zero nodes
//
// Errors crossing the pipeline boundary are additionally wrapped in a
// *StageError naming the stage that failed.
//
// The package is built on github.com/cockroachdb/errors: kinds are attached
// with errors.Mark so that the original cause (for example a matrix sentinel)
// stays reachable through the same chain.
package fault

import (
	"github.com/cockroachdb/errors"
)

// Kind sentinels. Use errors.Is to branch on them.
var (
	// ErrInvalidArgument indicates a caller-side contract violation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNumericalFailure indicates a numerical routine could not produce a finite result.
	ErrNumericalFailure = errors.New("numerical failure")

	// ErrEmptyInput indicates a graph or point set with zero nodes.
	ErrEmptyInput = errors.New("empty input")
)

// Invalidf creates a new ErrInvalidArgument error with a formatted message.
func Invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

// Numericalf creates a new ErrNumericalFailure error with a formatted message.
func Numericalf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNumericalFailure, format, args...)
}

// Emptyf creates a new ErrEmptyInput error with a formatted message.
func Emptyf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrEmptyInput, format, args...)
}

// Mark wraps err with a formatted context and tags it with kind.
// The returned error matches both kind and every error in err's chain.
// Mark returns nil when err is nil.
func Mark(err, kind error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	return errors.Mark(errors.Wrapf(err, format, args...), kind)
}

// KindOf returns the kind sentinel matched by err, or nil when err carries none.
func KindOf(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidArgument):
		return ErrInvalidArgument
	case errors.Is(err, ErrNumericalFailure):
		return ErrNumericalFailure
	case errors.Is(err, ErrEmptyInput):
		return ErrEmptyInput
	default:
		return nil
	}
}

// SPDX-License-Identifier: MIT

package fault

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Stage names one step of the clustering pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	StageSimilarity Stage = "similarity"
	StageEmbedding  Stage = "embedding"
	StageClustering Stage = "clustering"
	StageFilter     Stage = "filter"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageSimilarity, StageEmbedding, StageClustering, StageFilter}

// String implements fmt.Stringer.
func (s Stage) String() string { return string(s) }

// StageError reports which pipeline stage failed. Err keeps the kind
// sentinel in its chain, so errors.Is(stageErr, ErrInvalidArgument) works.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *StageError) Unwrap() error { return e.Err }

// AtStage wraps err in a *StageError. It returns nil when err is nil.
func AtStage(stage Stage, err error) error {
	if err == nil {
		return nil
	}

	return &StageError{Stage: stage, Err: err}
}

// StageOf extracts the failing stage from err.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}

	return "", false
}

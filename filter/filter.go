// SPDX-License-Identifier: MIT

// Package filter reduces a graph to its cluster-consistent subgraph: every
// edge whose endpoints carry different cluster labels is removed.
package filter

import (
	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/matrix"
)

// Filter returns a copy of graph where entry (i,j) is kept when
// labels[i] == labels[j] and zeroed otherwise. The diagonal is always kept.
// graph is not modified.
//
// Errors: fault.ErrInvalidArgument for a nil or non-square graph, or when
// len(labels) != N.
//
// Complexity: Time O(N^2), Space O(N^2).
func Filter(graph matrix.Matrix, labels []int) (*matrix.Dense, error) {
	g, err := prepare(graph, labels)
	if err != nil {
		return nil, err
	}
	out := g.Clone().(*matrix.Dense)
	n := out.Rows()
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if labels[i] != labels[j] {
				if err = out.Set(i, j, 0); err != nil {
					return nil, fault.Mark(err, fault.ErrInvalidArgument, "filter: zero (%d,%d)", i, j)
				}
			}
		}
	}

	return out, nil
}

// CrossEdges counts the edges Filter would remove: pairs i<j with a non-zero
// entry in either direction and different labels.
//
// Errors: as Filter.
func CrossEdges(graph matrix.Matrix, labels []int) (int, error) {
	g, err := prepare(graph, labels)
	if err != nil {
		return 0, err
	}
	n := g.Rows()
	var (
		i, j, count int
		vij, vji    float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if labels[i] == labels[j] {
				continue
			}
			vij, _ = g.At(i, j)
			vji, _ = g.At(j, i)
			if vij != 0 || vji != 0 {
				count++
			}
		}
	}

	return count, nil
}

func prepare(graph matrix.Matrix, labels []int) (*matrix.Dense, error) {
	if err := matrix.ValidateSquareNonNil(graph); err != nil {
		return nil, fault.Mark(err, fault.ErrInvalidArgument, "filter: graph")
	}
	if len(labels) != graph.Rows() {
		return nil, fault.Invalidf("filter: %d labels for %d nodes", len(labels), graph.Rows())
	}
	g, err := matrix.AsDense(graph)
	if err != nil {
		return nil, fault.Mark(err, fault.ErrInvalidArgument, "filter: graph")
	}

	return g, nil
}

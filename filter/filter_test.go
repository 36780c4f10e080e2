// SPDX-License-Identifier: MIT

package filter_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/filter"
	"github.com/katalvlaran/spectral/matrix"
)

// twoTriangles is two triangles {0,1,2} and {3,4,5} joined by the bridge 2-3.
func twoTriangles(t *testing.T) *matrix.Dense {
	t.Helper()
	g, err := matrix.NewDenseFrom([][]float64{
		{0, 1, 1, 0, 0, 0},
		{1, 0, 1, 0, 0, 0},
		{1, 1, 0, 2, 0, 0},
		{0, 0, 2, 0, 1, 1},
		{0, 0, 0, 1, 0, 1},
		{0, 0, 0, 1, 1, 0},
	})
	require.NoError(t, err)

	return g
}

func TestFilter_RemovesOnlyCrossEdges(t *testing.T) {
	g := twoTriangles(t)
	labels := []int{0, 0, 0, 1, 1, 1}

	got, err := filter.Filter(g, labels)
	require.NoError(t, err)

	want := [][]float64{
		{0, 1, 1, 0, 0, 0},
		{1, 0, 1, 0, 0, 0},
		{1, 1, 0, 0, 0, 0},
		{0, 0, 0, 0, 1, 1},
		{0, 0, 0, 1, 0, 1},
		{0, 0, 0, 1, 1, 0},
	}
	if diff := cmp.Diff(want, got.RawRows()); diff != "" {
		t.Errorf("Filter mismatch (-want +got):\n%s", diff)
	}

	removed, err := filter.CrossEdges(g, labels)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	// input untouched
	v, _ := g.At(2, 3)
	assert.Equal(t, 2.0, v)
}

func TestFilter_SubsetAndIdempotent(t *testing.T) {
	g := twoTriangles(t)
	labels := []int{0, 1, 0, 1, 0, 1}

	once, err := filter.Filter(g, labels)
	require.NoError(t, err)
	twice, err := filter.Filter(once, labels)
	require.NoError(t, err)
	if diff := cmp.Diff(once.RawRows(), twice.RawRows()); diff != "" {
		t.Errorf("Filter not idempotent (-once +twice):\n%s", diff)
	}

	gr, fr := g.RawRows(), once.RawRows()
	for i := range gr {
		for j := range gr[i] {
			if fr[i][j] != 0 {
				assert.Equal(t, gr[i][j], fr[i][j], "(%d,%d)", i, j)
			}
			if labels[i] == labels[j] {
				assert.Equal(t, gr[i][j], fr[i][j], "intra-cluster (%d,%d)", i, j)
			}
		}
	}
}

func TestFilter_SingleClusterKeepsEverything(t *testing.T) {
	g := twoTriangles(t)
	got, err := filter.Filter(g, make([]int, 6))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(g.RawRows(), got.RawRows()))

	removed, err := filter.CrossEdges(g, make([]int, 6))
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestFilter_Errors(t *testing.T) {
	g := twoTriangles(t)
	_, err := filter.Filter(g, []int{0, 1})
	assert.True(t, errors.Is(err, fault.ErrInvalidArgument))

	_, err = filter.Filter(nil, nil)
	assert.True(t, errors.Is(err, fault.ErrInvalidArgument))
	assert.True(t, errors.Is(err, matrix.ErrNilMatrix))

	rect, err := matrix.NewDenseFrom([][]float64{{0, 1, 0}})
	require.NoError(t, err)
	_, err = filter.CrossEdges(rect, []int{0})
	assert.True(t, errors.Is(err, fault.ErrInvalidArgument))
}

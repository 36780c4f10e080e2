// SPDX-License-Identifier: MIT

package neighborhood_test

import (
	"context"
	"math"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/matrix"
	"github.com/katalvlaran/spectral/neighborhood"
)

// undirected builds an n-node symmetric adjacency from {u, v, w} triples.
func undirected(t *testing.T, n int, edges [][3]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for _, e := range edges {
		u, v := int(e[0]), int(e[1])
		require.NoError(t, m.Set(u, v, e[2]))
		require.NoError(t, m.Set(v, u, e[2]))
	}

	return m
}

// sevenNode is the reference 7-node unweighted graph.
func sevenNode(t *testing.T) *matrix.Dense {
	return undirected(t, 7, [][3]float64{
		{0, 2, 1}, {0, 5, 1}, {1, 2, 1}, {1, 3, 1},
		{1, 4, 1}, {2, 5, 1}, {3, 6, 1}, {4, 6, 1},
	})
}

// skewed is a weighted graph whose hop-ordered walks are not mutual:
// 3 reaches 0 under budget 3, but 0 visits 1 first with too little budget
// left to continue to 3.
func skewed(t *testing.T) *matrix.Dense {
	return undirected(t, 4, [][3]float64{
		{0, 1, 2}, {0, 2, 0.5}, {2, 1, 0.5}, {1, 3, 1.5},
	})
}

func build(t *testing.T, g matrix.Matrix, eps float64, opts ...neighborhood.Option) *matrix.Dense {
	t.Helper()
	s, err := neighborhood.Build(context.Background(), g, eps, opts...)
	require.NoError(t, err)

	return s
}

func at(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// requireLaplacianRows checks that every row of s sums to zero.
func requireLaplacianRows(t *testing.T, s *matrix.Dense) {
	t.Helper()
	for i, row := range s.RawRows() {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		assert.InDeltaf(t, 0, sum, 1e-12, "row %d", i)
	}
}

func TestBuild_SevenNodeScenario(t *testing.T) {
	g := sevenNode(t)

	s1 := build(t, g, 1)
	assert.Equal(t, 2.0, at(t, s1, 0, 0))
	assert.Equal(t, -1.0, at(t, s1, 0, 2))
	assert.Equal(t, -1.0, at(t, s1, 0, 5))
	assert.Equal(t, 0.0, at(t, s1, 0, 1))
	assert.Equal(t, 0.0, at(t, s1, 0, 3))
	requireLaplacianRows(t, s1)

	s2 := build(t, g, 2)
	assert.Greater(t, at(t, s2, 0, 0), 2.0)
	assert.Equal(t, 3.0, at(t, s2, 0, 0))
}

func TestBuild_ZeroEpsilonIsZeroMatrix(t *testing.T) {
	s := build(t, sevenNode(t), 0)
	s.Do(func(i, j int, v float64) bool {
		assert.Zerof(t, v, "S[%d][%d]", i, j)
		return true
	})
}

func TestBuild_EpsilonAtDiameterReachesAll(t *testing.T) {
	path := undirected(t, 5, [][3]float64{{0, 1, 1}, {1, 2, 1}, {2, 3, 1}, {3, 4, 1}})
	s := build(t, path, 4)
	s.Do(func(i, j int, v float64) bool {
		if i == j {
			assert.Equal(t, 4.0, v)
		} else {
			assert.Equal(t, -1.0, v)
		}
		return true
	})
}

func TestBuild_DiagonalMonotoneInEpsilon(t *testing.T) {
	g := sevenNode(t)
	prev := build(t, g, 0)
	for eps := 1.0; eps <= 6; eps++ {
		cur := build(t, g, eps)
		for i := 0; i < 7; i++ {
			assert.GreaterOrEqualf(t, at(t, cur, i, i), at(t, prev, i, i), "node %d eps %g", i, eps)
		}
		prev = cur
	}
}

func TestBuild_WorkerCountDoesNotChangeResult(t *testing.T) {
	g := sevenNode(t)
	serial := build(t, g, 3, neighborhood.WithWorkers(1))
	for _, w := range []int{2, 3, 8} {
		parallel := build(t, g, 3, neighborhood.WithWorkers(w))
		assert.Equal(t, serial.RawRows(), parallel.RawRows(), "workers=%d", w)
	}
}

func TestBuild_InputUntouched(t *testing.T) {
	g := sevenNode(t)
	before := g.RawRows()
	_ = build(t, g, 2)
	assert.Equal(t, before, g.RawRows())
}

func TestBuild_FirstDequeueWins(t *testing.T) {
	s := build(t, skewed(t), 3)
	assert.Equal(t, 0.0, at(t, s, 0, 3))
	assert.Equal(t, -1.0, at(t, s, 3, 0))
	assert.False(t, matrix.IsSymmetric(s, 0))
	requireLaplacianRows(t, s)
}

func TestBuild_Symmetrize(t *testing.T) {
	g := skewed(t)

	union := build(t, g, 3, neighborhood.WithSymmetrize(neighborhood.SymmetrizeUnion))
	assert.True(t, matrix.IsSymmetric(union, 0))
	assert.Equal(t, -1.0, at(t, union, 0, 3))
	assert.Equal(t, 3.0, at(t, union, 0, 0))
	requireLaplacianRows(t, union)

	inter := build(t, g, 3, neighborhood.WithSymmetrize(neighborhood.SymmetrizeIntersection))
	assert.True(t, matrix.IsSymmetric(inter, 0))
	assert.Equal(t, 0.0, at(t, inter, 3, 0))
	assert.Equal(t, 2.0, at(t, inter, 3, 3))
	requireLaplacianRows(t, inter)

	mean := build(t, g, 3, neighborhood.WithSymmetrize(neighborhood.SymmetrizeMean))
	assert.True(t, matrix.IsSymmetric(mean, 0))
	assert.Equal(t, -0.5, at(t, mean, 0, 3))
	assert.Equal(t, 2.5, at(t, mean, 0, 0))
	requireLaplacianRows(t, mean)
}

func TestBuild_OnVisitSeesEveryReach(t *testing.T) {
	var visits atomic.Int64
	s := build(t, sevenNode(t), 2,
		neighborhood.WithWorkers(4),
		neighborhood.WithOnVisit(func(_, _ int, budget float64) {
			if budget >= 0 {
				visits.Add(1)
			}
		}),
	)
	want := 0.0
	for i := 0; i < 7; i++ {
		want += at(t, s, i, i) + 1
	}
	assert.Equal(t, int64(want), visits.Load())
}

// zeroMatrix is a Matrix with no rows, which *matrix.Dense cannot represent.
type zeroMatrix struct{}

func (zeroMatrix) Rows() int { return 0 }
func (zeroMatrix) Cols() int { return 0 }
func (zeroMatrix) At(int, int) (float64, error) { return 0, matrix.ErrOutOfRange }
func (zeroMatrix) Set(int, int, float64) error { return matrix.ErrOutOfRange }
func (z zeroMatrix) Clone() matrix.Matrix { return z }

func TestBuild_Errors(t *testing.T) {
	ctx := context.Background()
	rect, err := matrix.NewDenseFrom([][]float64{{0, 1, 0}, {1, 0, 0}})
	require.NoError(t, err)
	asym, err := matrix.NewDenseFrom([][]float64{{0, 1}, {0, 0}})
	require.NoError(t, err)
	neg, err := matrix.NewDenseFrom([][]float64{{0, -1}, {-1, 0}})
	require.NoError(t, err)

	cases := []struct {
		name  string
		graph matrix.Matrix
		eps   float64
		opts  []neighborhood.Option
		kind  error
		cause error
	}{
		{"nil graph", nil, 1, nil, fault.ErrInvalidArgument, matrix.ErrNilMatrix},
		{"empty", zeroMatrix{}, 1, nil, fault.ErrEmptyInput, nil},
		{"rectangular", rect, 1, nil, fault.ErrInvalidArgument, matrix.ErrDimensionMismatch},
		{"asymmetric", asym, 1, nil, fault.ErrInvalidArgument, matrix.ErrAsymmetry},
		{"negative weight", neg, 1, nil, fault.ErrInvalidArgument, matrix.ErrNegative},
		{"negative epsilon", sevenNode(t), -1, nil, fault.ErrInvalidArgument, nil},
		{"NaN epsilon", sevenNode(t), math.NaN(), nil, fault.ErrInvalidArgument, nil},
		{"Inf epsilon", sevenNode(t), math.Inf(1), nil, fault.ErrInvalidArgument, nil},
		{"zero workers", sevenNode(t), 1, []neighborhood.Option{neighborhood.WithWorkers(0)},
			fault.ErrInvalidArgument, neighborhood.ErrOptionViolation},
		{"bad mode", sevenNode(t), 1, []neighborhood.Option{neighborhood.WithSymmetrize(42)},
			fault.ErrInvalidArgument, neighborhood.ErrOptionViolation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := neighborhood.Build(ctx, tc.graph, tc.eps, tc.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.kind), "kind: %v", err)
			if tc.cause != nil {
				assert.True(t, errors.Is(err, tc.cause), "cause: %v", err)
			}
		})
	}
}

func TestBuild_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := neighborhood.Build(ctx, sevenNode(t), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReach(t *testing.T) {
	order, err := neighborhood.Reach(sevenNode(t), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 5, 1}, order)

	_, err = neighborhood.Reach(sevenNode(t), 7, 2)
	assert.True(t, errors.Is(err, fault.ErrInvalidArgument))
}

func TestParseSymmetrize(t *testing.T) {
	for in, want := range map[string]neighborhood.Symmetrize{
		"":             neighborhood.SymmetrizeNone,
		"none":         neighborhood.SymmetrizeNone,
		"Union":        neighborhood.SymmetrizeUnion,
		"intersection": neighborhood.SymmetrizeIntersection,
		" mean ":       neighborhood.SymmetrizeMean,
	} {
		got, err := neighborhood.ParseSymmetrize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := neighborhood.ParseSymmetrize("max")
	assert.True(t, errors.Is(err, fault.ErrInvalidArgument))
	assert.Equal(t, "union", neighborhood.SymmetrizeUnion.String())
}

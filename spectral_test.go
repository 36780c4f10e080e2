// SPDX-License-Identifier: MIT

package spectral_test

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spectral"
	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/matrix"
)

// twoTriangles is two unit-weight triangles {0,1,2} and {3,4,5} joined by 2-3.
func twoTriangles(t *testing.T) *matrix.Dense {
	t.Helper()
	g, err := matrix.NewDenseFrom([][]float64{
		{0, 1, 1, 0, 0, 0},
		{1, 0, 1, 0, 0, 0},
		{1, 1, 0, 1, 0, 0},
		{0, 0, 1, 0, 1, 1},
		{0, 0, 0, 1, 0, 1},
		{0, 0, 0, 1, 1, 0},
	})
	require.NoError(t, err)

	return g
}

func TestCluster_SplitsAtTheBridge(t *testing.T) {
	labels, err := spectral.Cluster(twoTriangles(t), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, labels)
}

func TestRun_ProducesEveryStage(t *testing.T) {
	var seen []fault.Stage
	obs := spectral.ObserverFunc(func(stage fault.Stage, d time.Duration, err error) {
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, d, time.Duration(0))
		seen = append(seen, stage)
	})

	g := twoTriangles(t)
	res, err := spectral.Run(context.Background(), g, spectral.Config{
		Epsilon:          1,
		ClustersToCreate: 2,
		Seed:             7,
		Workers:          2,
	}, spectral.WithObserver(obs))
	require.NoError(t, err)

	assert.Equal(t, fault.Stages, seen)
	assert.Len(t, res.Timings, 4)

	require.NotNil(t, res.Similarity)
	d, err := res.Similarity.At(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, d)

	require.NotNil(t, res.Embedding)
	assert.Equal(t, 2, res.Embedding.Vectors.Cols())
	assert.InDelta(t, 0, res.Embedding.Values[0], 1e-9)

	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, res.Labels)
	assert.Equal(t, res.Labels, res.KMeans.Labels)

	bridge, err := res.Filtered.At(2, 3)
	require.NoError(t, err)
	assert.Zero(t, bridge)
	kept, err := res.Filtered.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, kept)

	// the caller's graph is untouched
	orig, _ := g.At(2, 3)
	assert.Equal(t, 1.0, orig)
}

func TestRun_ZeroEpsilonStillClusters(t *testing.T) {
	g := twoTriangles(t)
	res, err := spectral.Run(context.Background(), g, spectral.Config{
		Epsilon:          0,
		ClustersToCreate: 2,
		Seed:             3,
	})
	require.NoError(t, err)

	res.Similarity.Do(func(i, j int, v float64) bool {
		assert.Zerof(t, v, "S[%d][%d]", i, j)
		return true
	})
	require.Len(t, res.Labels, g.Rows())
	for i, l := range res.Labels {
		assert.GreaterOrEqualf(t, l, 0, "label of node %d", i)
		assert.Lessf(t, l, 2, "label of node %d", i)
	}
	require.NotNil(t, res.Filtered)
	assert.Equal(t, g.Rows(), res.Filtered.Rows())
}

func TestRun_Reproducible(t *testing.T) {
	cfg := spectral.Config{Epsilon: 2, ClustersToCreate: 3, NumClusters: 2, Seed: 11}
	a, err := spectral.Run(context.Background(), twoTriangles(t), cfg)
	require.NoError(t, err)
	b, err := spectral.Run(context.Background(), twoTriangles(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Labels, b.Labels)
	assert.Equal(t, a.Similarity.RawRows(), b.Similarity.RawRows())
}

func TestRun_StageErrors(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name  string
		graph matrix.Matrix
		cfg   spectral.Config
		stage fault.Stage
		kind  error
	}{
		{"nil graph", nil, spectral.Config{Epsilon: 1, ClustersToCreate: 2}, fault.StageSimilarity, fault.ErrInvalidArgument},
		{"negative epsilon", twoTriangles(t), spectral.Config{Epsilon: -1, ClustersToCreate: 2}, fault.StageSimilarity, fault.ErrInvalidArgument},
		{"negative workers", twoTriangles(t), spectral.Config{Epsilon: 1, ClustersToCreate: 2, Workers: -1}, fault.StageSimilarity, fault.ErrInvalidArgument},
		{"zero k", twoTriangles(t), spectral.Config{Epsilon: 1}, fault.StageEmbedding, fault.ErrInvalidArgument},
		{"k above N", twoTriangles(t), spectral.Config{Epsilon: 1, ClustersToCreate: 7}, fault.StageEmbedding, fault.ErrInvalidArgument},
		{"clusters above N", twoTriangles(t), spectral.Config{Epsilon: 1, ClustersToCreate: 2, NumClusters: 7}, fault.StageClustering, fault.ErrInvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := spectral.Run(ctx, tc.graph, tc.cfg)
			require.Error(t, err)
			assert.Nil(t, res)

			var se *fault.StageError
			require.True(t, errors.As(err, &se), "%v", err)
			assert.Equal(t, tc.stage, se.Stage)
			assert.True(t, errors.Is(err, tc.kind), "%v", err)
		})
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int
	_, err := spectral.Run(ctx, twoTriangles(t), spectral.Config{Epsilon: 1, ClustersToCreate: 2},
		spectral.WithObserver(spectral.ObserverFunc(func(fault.Stage, time.Duration, error) { calls++ })))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	stage, ok := fault.StageOf(err)
	require.True(t, ok)
	assert.Equal(t, fault.StageSimilarity, stage)
	assert.Equal(t, 1, calls)
}

func TestRun_OnVisitHook(t *testing.T) {
	var visits int
	_, err := spectral.Run(context.Background(), twoTriangles(t),
		spectral.Config{Epsilon: 1, ClustersToCreate: 2, Workers: 1},
		spectral.WithOnVisit(func(_, _ int, _ float64) { visits++ }))
	require.NoError(t, err)
	// every node reaches itself and its direct neighbors: 6 + 2*7 edges
	assert.Equal(t, 20, visits)
}

// SPDX-License-Identifier: MIT

package metrics_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spectral"
	"github.com/katalvlaran/spectral/builder"
	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/internal/metrics"
)

func TestCollector_StageDone(t *testing.T) {
	c := metrics.NewCollector()
	c.StageDone(fault.StageEmbedding, 2*time.Millisecond, nil)
	c.StageDone(fault.StageEmbedding, time.Millisecond, errors.New("x"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.StageTotal.WithLabelValues("embedding", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.StageTotal.WithLabelValues("embedding", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.StageDuration))
}

func TestCollector_ObservesPipeline(t *testing.T) {
	g, err := builder.Build(6, nil, builder.Cycle())
	require.NoError(t, err)

	c := metrics.NewCollector()
	c.Nodes.Set(float64(g.Rows()))
	_, err = spectral.Run(context.Background(), g,
		spectral.Config{Epsilon: 1, ClustersToCreate: 2, Seed: 3},
		spectral.WithObserver(c), spectral.WithOnVisit(c.OnVisit))
	require.NoError(t, err)

	for _, st := range fault.Stages {
		assert.Equal(t, 1.0, testutil.ToFloat64(c.StageTotal.WithLabelValues(string(st), "ok")), st)
	}
	// each node reaches itself and its two ring neighbors
	assert.Equal(t, 18.0, testutil.ToFloat64(c.Visits))
	assert.Equal(t, 6.0, testutil.ToFloat64(c.Nodes))

	path := filepath.Join(t.TempDir(), "spectral.prom")
	require.NoError(t, c.WriteTextfile(path))
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "spectral_stage_duration_seconds_bucket")
	assert.Contains(t, string(body), `spectral_stage_total{stage="filter",status="ok"} 1`)
}

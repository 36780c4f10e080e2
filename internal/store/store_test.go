// SPDX-License-Identifier: MIT

package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spectral"
	"github.com/katalvlaran/spectral/embed"
	"github.com/katalvlaran/spectral/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	saved, err := s.Save(ctx, store.Run{
		Source:     "graph.adj",
		Nodes:      6,
		Config:     spectral.Config{Epsilon: 1.5, ClustersToCreate: 2, Seed: 9, Solver: embed.SolverGeneral},
		Labels:     []int{0, 0, 0, 1, 1, 1},
		CrossEdges: 1,
		Timings:    map[string]time.Duration{"similarity": 3 * time.Millisecond},
	})
	require.NoError(t, err)
	_, err = uuid.Parse(saved.ID)
	require.NoError(t, err)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, saved.Config, got.Config)
	assert.Equal(t, saved.Labels, got.Labels)
	assert.Equal(t, saved.Timings, got.Timings)
	assert.Equal(t, 1, got.CrossEdges)
}

func TestStore_GetUnknown(t *testing.T) {
	_, err := openStore(t).Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.Save(ctx, store.Run{
			Source:    "r",
			Nodes:     i,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Labels:    []int{},
		})
		require.NoError(t, err)
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{2, 1, 0}, []int{all[0].Nodes, all[1].Nodes, all[2].Nodes})

	top, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 2, top[0].Nodes)
}

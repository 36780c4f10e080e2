// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/spectral/adjlist"
	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/internal/logger"
	"github.com/katalvlaran/spectral/matrix"
)

const twoTriangles = "2 1 2\n2 0 2\n3 0 1 3\n3 2 4 5\n2 3 5\n2 3 4\n"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := logger.Logger
	t.Cleanup(func() { logger.Logger = prev })

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()

	return out.String(), err
}

func writeFixture(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestCluster_JSONAndFiltered(t *testing.T) {
	in := writeFixture(t, "g.adj", twoTriangles)
	filtered := filepath.Join(t.TempDir(), "filtered.adj")

	out, err := execute(t, "cluster", in, "-e", "1", "-k", "2", "-o", "json", "--filtered", filtered)
	require.NoError(t, err)

	var rep clusterReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, rep.Labels)
	assert.Equal(t, []int{3, 3}, rep.Sizes)
	assert.Equal(t, 1, rep.CrossEdges)
	assert.Len(t, rep.TimingsMS, 4)
	assert.Empty(t, rep.RunID)

	body, err := os.ReadFile(filtered)
	require.NoError(t, err)
	assert.Equal(t, "2 1 2\n2 0 2\n2 0 1\n2 4 5\n2 3 5\n2 3 4\n", string(body))
}

func TestCluster_TextAndYAML(t *testing.T) {
	in := writeFixture(t, "g.adj", twoTriangles)

	out, err := execute(t, "cluster", in, "-e", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "0 0\n1 0\n2 0\n3 1\n4 1\n5 1\n"), out)
	assert.Contains(t, out, "cross edges removed: 1")

	out, err = execute(t, "cluster", in, "-e", "1", "-o", "yaml")
	require.NoError(t, err)
	var rep clusterReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 6, rep.Nodes)
}

func TestCluster_ConfigFileAndErrors(t *testing.T) {
	in := writeFixture(t, "g.adj", twoTriangles)
	cfg := writeFixture(t, "spectral.toml", "[pipeline]\nepsilon = 1\nsolver = \"bogus\"\n")

	_, err := execute(t, "--config", cfg, "cluster", in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline.solver")

	_, err = execute(t, "cluster", in, "-o", "xml")
	assert.Error(t, err)

	_, err = execute(t, "cluster", in, "-k", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding")

	_, err = execute(t, "cluster", writeFixture(t, "bad.adj", "2 1\n0\n"))
	require.Error(t, err)
	var le *adjlist.LineError
	assert.ErrorAs(t, err, &le)
}

func TestSimilarityAndReach(t *testing.T) {
	in := writeFixture(t, "path.adj", "1 1\n2 0 2\n1 1\n")

	out, err := execute(t, "similarity", in, "-e", "1")
	require.NoError(t, err)
	assert.Equal(t, "1 -1 0\n-1 2 -1\n0 -1 1\n", out)

	out, err = execute(t, "reach", in, "0", "-e", "2")
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)

	_, err = execute(t, "reach", in, "7")
	assert.Error(t, err)
}

func TestHistory_RecordsRuns(t *testing.T) {
	in := writeFixture(t, "g.adj", twoTriangles)
	db := filepath.Join(t.TempDir(), "runs.db")
	prom := filepath.Join(t.TempDir(), "spectral.prom")

	out, err := execute(t, "--store", db, "--metrics-textfile", prom, "cluster", in, "-e", "1", "-o", "json")
	require.NoError(t, err)
	var rep clusterReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.NotEmpty(t, rep.RunID)

	metricsBody, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(metricsBody), "spectral_graph_nodes 6")

	out, err = execute(t, "--store", db, "history", "list", "-o", "json")
	require.NoError(t, err)
	var runs []struct {
		ID     string
		Labels []int
	}
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, rep.RunID, runs[0].ID)
	assert.Equal(t, rep.Labels, runs[0].Labels)

	out, err = execute(t, "--store", db, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, rep.RunID)

	out, err = execute(t, "--store", db, "history", "show", rep.RunID, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, rep.RunID)

	_, err = execute(t, "history", "list")
	assert.Error(t, err)
}

func TestGenerate_Fixtures(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.adj")
	b := filepath.Join(dir, "b.adj")

	_, err := execute(t, "generate", "--nodes", "12", "--seed", "5", a)
	require.NoError(t, err)
	_, err = execute(t, "generate", "--nodes", "12", "--seed", "5", b)
	require.NoError(t, err)

	ga, err := adjlist.ReadFile(a, false)
	require.NoError(t, err)
	gb, err := adjlist.ReadFile(b, false)
	require.NoError(t, err)
	assert.Equal(t, 12, ga.Rows())
	assert.Equal(t, ga.RawRows(), gb.RawRows())
	assert.True(t, matrix.IsSymmetric(ga, 0))

	sparse := filepath.Join(dir, "s.txt")
	_, err = execute(t, "generate", "--nodes", "5", "--p", "1", "--dense", sparse)
	require.NoError(t, err)
	gs, err := adjlist.ReadFile(sparse, true)
	require.NoError(t, err)
	v, err := gs.At(0, 4)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	_, err = execute(t, "generate", "--nodes", "0", filepath.Join(dir, "z.adj"))
	assert.Error(t, err)
}

func TestGenerate_Weights(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		weights  string
		min, max float64
	}{
		{"const:2.5", 2.5, 2.5},
		{"uniform:0.5,1.5", 0.5, 1.5},
		{"exp:4", 0, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.weights, func(t *testing.T) {
			out := filepath.Join(dir, strings.ReplaceAll(tc.weights, ":", "_")+".txt")
			_, err := execute(t, "generate", "--nodes", "6", "--p", "1", "--seed", "3",
				"--dense", "--weights", tc.weights, out)
			require.NoError(t, err)

			g, err := adjlist.ReadFile(out, true)
			require.NoError(t, err)
			assert.True(t, matrix.IsSymmetric(g, 0))
			for i, row := range g.RawRows() {
				for j, v := range row {
					if i == j {
						assert.Zero(t, v)
						continue
					}
					assert.GreaterOrEqualf(t, v, tc.min, "w(%d,%d)", i, j)
					assert.LessOrEqualf(t, v, tc.max, "w(%d,%d)", i, j)
				}
			}
		})
	}

	for _, bad := range []string{"const:-1", "uniform:2,1", "exp:0", "exp:x", "gauss:1", "const:1,2"} {
		_, err := execute(t, "generate", "--nodes", "4", "--p", "1", "--dense", "--weights", bad,
			filepath.Join(dir, "bad.txt"))
		assert.ErrorIsf(t, err, fault.ErrInvalidArgument, "weights %q", bad)
	}

	_, err := execute(t, "generate", "--nodes", "4", "--weights", "const:2", filepath.Join(dir, "list.adj"))
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)
}

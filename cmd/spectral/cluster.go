// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/spectral"
	"github.com/katalvlaran/spectral/adjlist"
	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/filter"
	"github.com/katalvlaran/spectral/internal/config"
	"github.com/katalvlaran/spectral/internal/logger"
	"github.com/katalvlaran/spectral/internal/metrics"
	"github.com/katalvlaran/spectral/internal/store"
	"github.com/katalvlaran/spectral/matrix"
)

// pipelineFlags maps viper keys to the flags shared by pipeline commands.
var pipelineFlags = map[string]string{
	"pipeline.epsilon":            "epsilon",
	"pipeline.clusters_to_create": "clusters",
	"pipeline.num_clusters":       "num-clusters",
	"pipeline.seed":               "seed",
	"pipeline.workers":            "workers",
	"pipeline.symmetrize":         "symmetrize",
	"pipeline.solver":             "solver",
	"pipeline.order":              "order",
	"pipeline.init":               "init",
	"pipeline.max_iterations":     "max-iterations",
	"pipeline.restarts":           "restarts",
}

type clusterReport struct {
	RunID      string             `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Source     string             `json:"source" yaml:"source"`
	Nodes      int                `json:"nodes" yaml:"nodes"`
	Labels     []int              `json:"labels" yaml:"labels"`
	Sizes      []int              `json:"sizes" yaml:"sizes"`
	CrossEdges int                `json:"cross_edges" yaml:"cross_edges"`
	TimingsMS  map[string]float64 `json:"timings_ms" yaml:"timings_ms"`
}

func newClusterCmd(a *app) *cobra.Command {
	var (
		dense    bool
		format   string
		filtered string
	)
	cmd := &cobra.Command{
		Use:   "cluster <graph-file>",
		Short: "Cluster a graph and print node labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			cfg, err := a.load(cmd.Flags(), pipelineFlags)
			if err != nil {
				return err
			}
			pcfg, err := cfg.Spectral()
			if err != nil {
				return err
			}
			graph, err := adjlist.ReadFile(args[0], dense)
			if err != nil {
				return err
			}

			report, res, err := runCluster(cmd.Context(), cfg, pcfg, graph, args[0])
			if err != nil {
				return err
			}
			if filtered != "" {
				if err = adjlist.WriteFile(filtered, res.Filtered, dense); err != nil {
					return err
				}
				logger.Logger.Infow("filtered graph written", "path", filtered)
			}

			return printClusterReport(cmd.OutOrStdout(), format, report)
		},
	}

	addPipelineFlags(cmd)
	f := cmd.Flags()
	f.BoolVar(&dense, "dense", false, "input (and --filtered output) is a dense text matrix")
	f.StringVarP(&format, "output", "o", formatText, "output format: text, json or yaml")
	f.StringVar(&filtered, "filtered", "", "write the filtered graph to this file")

	return cmd
}

// addPipelineFlags registers the pipeline knobs; defaults mirror config.SetDefaults.
func addPipelineFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64P("epsilon", "e", 2, "neighborhood distance budget")
	f.IntP("clusters", "k", 2, "eigenvectors kept (clusters to create)")
	f.Int("num-clusters", 0, "k-means clusters (0 = --clusters)")
	f.Int64("seed", 0, "k-means seed")
	f.Int("workers", 0, "concurrent neighborhood walks (0 = GOMAXPROCS)")
	f.String("symmetrize", "none", "none, union, intersection or mean")
	f.String("solver", "auto", "auto, jacobi or general")
	f.String("order", "ascending", "ascending, descending, magnitude or native")
	f.String("init", "plusplus", "plusplus or boundingbox")
	f.Int("max-iterations", 300, "Lloyd iteration cap")
	f.Int("restarts", 10, "k-means restarts")
}

// runCluster executes the pipeline with logging, metrics and history wired in.
func runCluster(ctx context.Context, cfg *config.Config, pcfg spectral.Config, graph *matrix.Dense, source string) (*clusterReport, *spectral.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	collector := metrics.NewCollector()
	collector.Nodes.Set(float64(graph.Rows()))

	res, err := spectral.Run(ctx, graph, pcfg,
		spectral.WithObserver(logger.StageLogger{Nodes: graph.Rows()}),
		spectral.WithObserver(collector),
		spectral.WithOnVisit(collector.OnVisit),
	)
	if cfg.Metrics.Textfile != "" {
		if werr := collector.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			logger.Logger.Warnw("metrics export failed", "error", werr)
		}
	}
	if err != nil {
		if stage, ok := fault.StageOf(err); ok {
			return nil, nil, errors.Wrapf(err, "cluster %s (stage %s)", source, stage)
		}
		return nil, nil, errors.Wrapf(err, "cluster %s", source)
	}

	cross, err := filter.CrossEdges(graph, res.Labels)
	if err != nil {
		return nil, nil, err
	}
	report := &clusterReport{
		Source:     source,
		Nodes:      graph.Rows(),
		Labels:     res.Labels,
		Sizes:      clusterSizes(res.Labels),
		CrossEdges: cross,
		TimingsMS:  make(map[string]float64, len(res.Timings)),
	}
	timings := make(map[string]time.Duration, len(res.Timings))
	for stage, d := range res.Timings {
		report.TimingsMS[string(stage)] = float64(d.Microseconds()) / 1000
		timings[string(stage)] = d
	}

	if cfg.Store.Path != "" {
		st, err := store.Open(ctx, cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		defer st.Close()
		run, err := st.Save(ctx, store.Run{
			Source:     source,
			Nodes:      report.Nodes,
			Config:     pcfg,
			Labels:     report.Labels,
			CrossEdges: cross,
			Timings:    timings,
		})
		if err != nil {
			return nil, nil, err
		}
		report.RunID = run.ID
	}

	return report, res, nil
}

func clusterSizes(labels []int) []int {
	var sizes []int
	for _, l := range labels {
		for len(sizes) <= l {
			sizes = append(sizes, 0)
		}
		sizes[l]++
	}

	return sizes
}

func printClusterReport(w io.Writer, format string, r *clusterReport) error {
	if !strings.EqualFold(format, formatText) {
		return encode(w, format, r)
	}

	for i, l := range r.Labels {
		if _, err := fmt.Fprintf(w, "%d %d\n", i, l); err != nil {
			return errors.Wrap(err, "write labels")
		}
	}

	data := pterm.TableData{{"cluster", "nodes"}}
	for c, n := range r.Sizes {
		data = append(data, []string{strconv.Itoa(c), strconv.Itoa(n)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "render table")
	}
	_, err = fmt.Fprintf(w, "\n%s\ncross edges removed: %d\n", table, r.CrossEdges)
	for _, stage := range fault.Stages {
		if err != nil {
			break
		}
		_, err = fmt.Fprintf(w, "%-11s %8.3f ms\n", stage, r.TimingsMS[string(stage)])
	}
	if err == nil && r.RunID != "" {
		_, err = fmt.Fprintf(w, "run: %s\n", r.RunID)
	}

	return errors.Wrap(err, "write summary")
}

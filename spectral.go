// SPDX-License-Identifier: MIT

package spectral

import (
	"context"
	"time"

	"github.com/katalvlaran/spectral/embed"
	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/filter"
	"github.com/katalvlaran/spectral/kmeans"
	"github.com/katalvlaran/spectral/matrix"
	"github.com/katalvlaran/spectral/neighborhood"
)

// Result carries every intermediate product of a pipeline run.
type Result struct {
	Similarity *matrix.Dense
	Embedding  *embed.Embedding
	KMeans     *kmeans.Result
	Labels     []int
	Filtered   *matrix.Dense
	Timings    map[fault.Stage]time.Duration
}

// Run executes similarity → embedding → clustering → filter on graph.
// MAIN DESCRIPTION:
//   - k = cfg.ClustersToCreate eigenvectors feed k-means with
//     cfg.NumClusters clusters (0 → ClustersToCreate).
//   - The filter stage is applied to the original graph.
//
// Errors:
//   - *fault.StageError for the first failing stage; no partial result.
//     Invalid Config fields fail the stage that consumes them.
//   - errors.Is matches fault.ErrInvalidArgument, ErrNumericalFailure or
//     ErrEmptyInput; context errors pass through wrapped in the stage.
func Run(ctx context.Context, graph matrix.Matrix, cfg Config, opts ...Option) (*Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	res := &Result{Timings: make(map[fault.Stage]time.Duration, len(fault.Stages))}
	var err error

	err = o.stage(ctx, res, fault.StageSimilarity, func() error {
		nopts := []neighborhood.Option{neighborhood.WithSymmetrize(cfg.Symmetrize)}
		if cfg.Workers != 0 {
			nopts = append(nopts, neighborhood.WithWorkers(cfg.Workers))
		}
		if o.onVisit != nil {
			nopts = append(nopts, neighborhood.WithOnVisit(o.onVisit))
		}
		res.Similarity, err = neighborhood.Build(ctx, graph, cfg.Epsilon, nopts...)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = o.stage(ctx, res, fault.StageEmbedding, func() error {
		res.Embedding, err = embed.Embed(res.Similarity, cfg.ClustersToCreate,
			embed.WithSolver(cfg.Solver), embed.WithOrder(cfg.Order))
		return err
	})
	if err != nil {
		return nil, err
	}

	err = o.stage(ctx, res, fault.StageClustering, func() error {
		kopts := []kmeans.Option{kmeans.WithSeed(cfg.Seed), kmeans.WithInit(cfg.KMeansInit)}
		if cfg.MaxIterations != 0 {
			kopts = append(kopts, kmeans.WithMaxIterations(cfg.MaxIterations))
		}
		if cfg.Restarts != 0 {
			kopts = append(kopts, kmeans.WithRestarts(cfg.Restarts))
		}
		res.KMeans, err = kmeans.Assign(res.Embedding.Vectors, cfg.clusters(), kopts...)
		if err == nil {
			res.Labels = res.KMeans.Labels
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	err = o.stage(ctx, res, fault.StageFilter, func() error {
		res.Filtered, err = filter.Filter(graph, res.Labels)
		return err
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// Cluster is the one-call form of Run: default options, seed 0, and the
// k-means cluster count equal to clustersToCreate. It returns only the labels.
func Cluster(graph matrix.Matrix, clustersToCreate int, epsilon float64) ([]int, error) {
	res, err := Run(context.Background(), graph, Config{
		Epsilon:          epsilon,
		ClustersToCreate: clustersToCreate,
	})
	if err != nil {
		return nil, err
	}

	return res.Labels, nil
}

// stage times fn, records the duration, notifies observers and wraps a
// failure in a *fault.StageError. A cancelled context fails the stage
// before fn starts.
func (o *options) stage(ctx context.Context, res *Result, stage fault.Stage, fn func() error) error {
	start := time.Now()
	err := ctx.Err()
	if err == nil {
		err = fn()
	}
	d := time.Since(start)
	res.Timings[stage] = d
	for _, obs := range o.observers {
		obs.StageDone(stage, d, err)
	}

	return fault.AtStage(stage, err)
}

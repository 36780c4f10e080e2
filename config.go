// SPDX-License-Identifier: MIT

package spectral

import (
	"time"

	"github.com/katalvlaran/spectral/embed"
	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/kmeans"
	"github.com/katalvlaran/spectral/neighborhood"
)

// Config holds the pipeline parameters. The zero value of every optional
// field selects the package default.
type Config struct {
	// Epsilon is the distance budget of each neighborhood walk (>= 0).
	Epsilon float64

	// ClustersToCreate is the number of eigenvectors kept (k, >= 1).
	ClustersToCreate int

	// NumClusters is the number of k-means clusters; 0 means ClustersToCreate.
	NumClusters int

	// Seed drives k-means initialization; 0 maps to a fixed default seed.
	Seed int64

	// Workers bounds concurrent walks; 0 means runtime.GOMAXPROCS(0).
	Workers int

	Symmetrize neighborhood.Symmetrize
	Solver     embed.Solver
	Order      embed.Order
	KMeansInit kmeans.Init

	// MaxIterations caps Lloyd iterations; 0 means kmeans.DefaultMaxIterations.
	MaxIterations int

	// Restarts is the number of k-means initializations; 0 means kmeans.DefaultRestarts.
	Restarts int
}

// clusters resolves the k-means cluster count.
func (c Config) clusters() int {
	if c.NumClusters == 0 {
		return c.ClustersToCreate
	}

	return c.NumClusters
}

// Observer receives a callback after each pipeline stage, successful or not.
type Observer interface {
	StageDone(stage fault.Stage, d time.Duration, err error)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(stage fault.Stage, d time.Duration, err error)

// StageDone implements Observer.
func (f ObserverFunc) StageDone(stage fault.Stage, d time.Duration, err error) { f(stage, d, err) }

// Option configures Run.
type Option func(*options)

type options struct {
	observers []Observer
	onVisit   func(source, node int, budget float64)
}

// WithObserver registers an Observer; observers run in registration order.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		if o != nil {
			opts.observers = append(opts.observers, o)
		}
	}
}

// WithOnVisit forwards a traversal hook to the similarity stage.
func WithOnVisit(fn func(source, node int, budget float64)) Option {
	return func(opts *options) { opts.onVisit = fn }
}

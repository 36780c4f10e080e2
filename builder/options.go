// SPDX-License-Identifier: MIT

package builder

import (
	"math/rand"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	// RNG for stochastic choices; nil means no randomness.
	rng *rand.Rand
	// Weight generator for every emitted edge.
	weightFn WeightFn
	// directed disables mirroring of (u,v) into (v,u).
	directed bool
}

// newBuilderConfig applies options in order (last wins) over the defaults:
// no RNG, DefaultWeightFn, undirected.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{weightFn: DefaultWeightFn}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// BuilderOption customizes a Build call.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for stochastic constructors.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a new seeded *rand.Rand (deterministic).
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithWeightFn overrides the per-edge weight generator. Panics on nil.
func WithWeightFn(fn WeightFn) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}

	return func(c *builderConfig) { c.weightFn = fn }
}

// WithDirected writes each edge only as (u,v).
func WithDirected() BuilderOption {
	return func(c *builderConfig) { c.directed = true }
}

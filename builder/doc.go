// SPDX-License-Identifier: MIT

// Package builder produces deterministic graph fixtures as adjacency matrices.
//
// A fixture is assembled by Build from an ordered list of Constructors that
// overlay edges on an N×N zero matrix:
//
//	g, err := builder.Build(100,
//		[]builder.BuilderOption{builder.WithSeed(42)},
//		builder.RandomNeighbors(5),
//	)
//
// Guarantees:
//   - Same n, options, seed and constructor order ⇒ identical matrices.
//   - Undirected by default: every edge is written to (u,v) and (v,u).
//     WithDirected keeps only (u,v).
//   - Weights come from the configured WeightFn (DefaultEdgeWeight = 1) and
//     are always finite and ≥ 0, so the result passes matrix.ValidateAdjacency.
//   - Constructors never panic; option constructors panic on meaningless
//     inputs (nil RNG, nil WeightFn, negative constant weight).
//
// Errors match a builder sentinel and fault.ErrInvalidArgument.
package builder

// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/spectral/adjlist"
	"github.com/katalvlaran/spectral/builder"
	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/internal/logger"
)

func newGenerateCmd(_ *app) *cobra.Command {
	var (
		nodes, picks int
		p            float64
		seed         int64
		dense        bool
		weights      string
	)
	cmd := &cobra.Command{
		Use:   "generate <out-file>",
		Short: "Write a seeded random graph fixture",
		Long: `generate writes a random undirected graph. By default every node links to
--picks uniformly drawn partners; with --p each pair is linked independently
with probability p instead.

--weights draws edge weights as const:W, uniform:MIN,MAX or exp:RATE. The
adjacency-list format drops weights, so --weights requires --dense.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctor := builder.RandomNeighbors(picks)
			desc := fmt.Sprintf("neighbors(picks=%d)", picks)
			if cmd.Flags().Changed("p") {
				ctor = builder.RandomSparse(p)
				desc = fmt.Sprintf("sparse(p=%g)", p)
			}
			bopts := []builder.BuilderOption{builder.WithSeed(seed)}
			if weights != "" {
				if !dense {
					return fault.Invalidf("generate: --weights requires --dense")
				}
				wopt, err := parseWeights(weights)
				if err != nil {
					return err
				}
				bopts = append(bopts, wopt)
				desc += " weights=" + weights
			}
			g, err := builder.Build(nodes, bopts, ctor)
			if err != nil {
				return errors.Wrap(err, "generate")
			}
			if err = adjlist.WriteFile(args[0], g, dense); err != nil {
				return err
			}
			logger.Logger.Infow("fixture written", "path", args[0], "nodes", nodes, "model", desc, "seed", seed)

			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&nodes, "nodes", "n", 100, "number of nodes")
	f.IntVar(&picks, "picks", 5, "random partners drawn per node")
	f.Float64Var(&p, "p", 0, "edge probability (switches to the sparse model)")
	f.Int64Var(&seed, "seed", 1, "random seed")
	f.BoolVar(&dense, "dense", false, "write a dense text matrix instead of an adjacency list")
	f.StringVar(&weights, "weights", "", "edge weight distribution: const:W, uniform:MIN,MAX or exp:RATE")

	return cmd
}

// parseWeights maps "const:W", "uniform:MIN,MAX" or "exp:RATE" onto a
// builder weight option, validating the parameters the builder would panic on.
func parseWeights(spec string) (builder.BuilderOption, error) {
	kind, params, _ := strings.Cut(spec, ":")
	var vals []float64
	for _, p := range strings.Split(params, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fault.Invalidf("generate: bad weight parameter %q in %q", p, spec)
		}
		vals = append(vals, v)
	}

	switch strings.ToLower(kind) {
	case "const":
		if len(vals) == 1 && vals[0] >= 0 {
			return builder.WithConstantWeight(vals[0]), nil
		}
	case "uniform":
		if len(vals) == 2 && vals[0] >= 0 && vals[1] >= vals[0] {
			return builder.WithUniformWeight(vals[0], vals[1]), nil
		}
	case "exp":
		if len(vals) == 1 && vals[0] > 0 {
			return builder.WithExponentialWeight(vals[0]), nil
		}
	default:
		return nil, fault.Invalidf("generate: unknown weight distribution %q", kind)
	}

	return nil, fault.Invalidf("generate: invalid parameters for %s weights in %q", kind, spec)
}

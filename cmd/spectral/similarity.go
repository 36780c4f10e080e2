// SPDX-License-Identifier: MIT

package main

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/spectral/adjlist"
	"github.com/katalvlaran/spectral/fault"
	"github.com/katalvlaran/spectral/neighborhood"
)

func newSimilarityCmd(a *app) *cobra.Command {
	var dense bool
	cmd := &cobra.Command{
		Use:   "similarity <graph-file>",
		Short: "Print the Laplacian-like similarity matrix as dense text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd.Flags(), map[string]string{
				"pipeline.epsilon":    "epsilon",
				"pipeline.workers":    "workers",
				"pipeline.symmetrize": "symmetrize",
			})
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

			opts := []neighborhood.Option{neighborhood.WithSymmetrize(pcfg.Symmetrize)}
			if pcfg.Workers != 0 {
				opts = append(opts, neighborhood.WithWorkers(pcfg.Workers))
			}
			s, err := neighborhood.Build(cmd.Context(), graph, pcfg.Epsilon, opts...)
			if err != nil {
				return fault.AtStage(fault.StageSimilarity, err)
			}

			return adjlist.WriteDense(cmd.OutOrStdout(), s)
		},
	}
	f := cmd.Flags()
	f.Float64P("epsilon", "e", 2, "neighborhood distance budget")
	f.Int("workers", 0, "concurrent neighborhood walks (0 = GOMAXPROCS)")
	f.String("symmetrize", "none", "none, union, intersection or mean")
	f.BoolVar(&dense, "dense", false, "input is a dense text matrix")

	return cmd
}

func newReachCmd(a *app) *cobra.Command {
	var dense bool
	cmd := &cobra.Command{
		Use:   "reach <graph-file> <node>",
		Short: "Print the nodes reached from one source, in visit order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd.Flags(), map[string]string{"pipeline.epsilon": "epsilon"})
			if err != nil {
				return err
			}
			source, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrapf(err, "node %q", args[1])
			}
			graph, err := adjlist.ReadFile(args[0], dense)
			if err != nil {
				return err
			}
			order, err := neighborhood.Reach(graph, source, cfg.Pipeline.Epsilon)
			if err != nil {
				return err
			}
			for _, n := range order {
				if _, err = cmd.OutOrStdout().Write([]byte(strconv.Itoa(n) + "\n")); err != nil {
					return errors.Wrap(err, "write")
				}
			}

			return nil
		},
	}
	cmd.Flags().Float64P("epsilon", "e", 2, "neighborhood distance budget")
	cmd.Flags().BoolVar(&dense, "dense", false, "input is a dense text matrix")

	return cmd
}

// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/spectral/internal/config"
	"github.com/katalvlaran/spectral/internal/store"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded clustering runs",
	}
	cmd.AddCommand(newHistoryListCmd(a), newHistoryShowCmd(a))

	return cmd
}

func openHistory(cmd *cobra.Command, a *app) (*store.Store, error) {
	cfg, err := a.load(cmd.Flags(), nil)
	if err != nil {
		return nil, err
	}

	return openStoreFor(cmd, cfg)
}

func openStoreFor(cmd *cobra.Command, cfg *config.Config) (*store.Store, error) {
	if cfg.Store.Path == "" {
		return nil, errors.New("no run history configured (set --store or store.path)")
	}

	return store.Open(cmd.Context(), cfg.Store.Path)
}

func newHistoryListCmd(a *app) *cobra.Command {
	var (
		limit  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			st, err := openHistory(cmd, a)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if !strings.EqualFold(format, formatText) {
				return encode(cmd.OutOrStdout(), format, runs)
			}

			data := pterm.TableData{{"id", "created", "source", "nodes", "k", "epsilon", "cross edges"}}
			for _, r := range runs {
				data = append(data, []string{
					r.ID,
					r.CreatedAt.Local().Format(time.DateTime),
					r.Source,
					strconv.Itoa(r.Nodes),
					strconv.Itoa(r.Config.ClustersToCreate),
					strconv.FormatFloat(r.Config.Epsilon, 'g', -1, 64),
					strconv.Itoa(r.CrossEdges),
				})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Wrap(err, "render table")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), table)

			return errors.Wrap(err, "write")
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list (0 = all)")
	cmd.Flags().StringVarP(&format, "output", "o", formatText, "output format: text, json or yaml")

	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openHistory(cmd, a)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return encode(cmd.OutOrStdout(), format, run)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", formatYAML, "output format: json or yaml")

	return cmd
}

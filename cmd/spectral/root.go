// SPDX-License-Identifier: MIT

package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/spectral/internal/config"
	"github.com/katalvlaran/spectral/internal/logger"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "spectral",
		Short: "Spectral clustering over epsilon-bounded graph neighborhoods",
		Long: `spectral builds a Laplacian-like similarity matrix from epsilon-bounded
neighborhood walks, embeds nodes with the first k eigenvectors, clusters the
embedding with seeded k-means and removes every edge that crosses clusters.

Configuration precedence: defaults < --config file < SPECTRAL_* env < flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (toml, yaml or json)")
	pf.Bool("log-json", false, "log as JSON")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("store", "", "run-history SQLite database (empty disables history)")
	pf.String("metrics-textfile", "", "write prometheus metrics to this file after clustering")

	root.AddCommand(
		newClusterCmd(a),
		newSimilarityCmd(a),
		newReachCmd(a),
		newGenerateCmd(a),
		newHistoryCmd(a),
	)

	return root
}

// setup loads configuration and starts the logger.
func (a *app) setup(cmd *cobra.Command) error {
	a.v = config.New()
	if a.configPath != "" {
		a.v.SetConfigFile(a.configPath)
		if err := a.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", a.configPath)
		}
	}
	if err := bindFlags(a.v, cmd.Flags(), map[string]string{
		"log.json":         "log-json",
		"log.level":        "log-level",
		"store.path":       "store",
		"metrics.textfile": "metrics-textfile",
	}); err != nil {
		return err
	}

	return logger.Initialize(a.v.GetBool("log.json"), a.v.GetString("log.level"))
}

// load binds the command's flags and unmarshals the effective configuration.
func (a *app) load(fs *pflag.FlagSet, keys map[string]string) (*config.Config, error) {
	if err := bindFlags(a.v, fs, keys); err != nil {
		return nil, err
	}

	return config.FromViper(a.v)
}

// bindFlags binds viper keys to flag names present in fs.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "bind --%s", name)
		}
	}

	return nil
}

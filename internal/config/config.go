// SPDX-License-Identifier: MIT

// Package config loads CLI configuration with viper.
//
// Precedence (lowest to highest): defaults < config file < SPECTRAL_* env
// vars < command-line flags bound by the caller. Keys use dot notation;
// the env form replaces dots with underscores, e.g.
// SPECTRAL_PIPELINE_EPSILON=3.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/katalvlaran/spectral"
	"github.com/katalvlaran/spectral/embed"
	"github.com/katalvlaran/spectral/kmeans"
	"github.com/katalvlaran/spectral/neighborhood"
)

// EnvPrefix is prepended to every environment key.
const EnvPrefix = "SPECTRAL"

// Config is the full CLI configuration.
type Config struct {
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Log      LogConfig      `mapstructure:"log"`
	Store    StoreConfig    `mapstructure:"store"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// PipelineConfig mirrors spectral.Config with string enums.
type PipelineConfig struct {
	Epsilon          float64 `mapstructure:"epsilon"`
	ClustersToCreate int     `mapstructure:"clusters_to_create"`
	NumClusters      int     `mapstructure:"num_clusters"` // 0 = clusters_to_create
	Seed             int64   `mapstructure:"seed"`
	Workers          int     `mapstructure:"workers"` // 0 = GOMAXPROCS
	Symmetrize       string  `mapstructure:"symmetrize"`
	Solver           string  `mapstructure:"solver"`
	Order            string  `mapstructure:"order"`
	Init             string  `mapstructure:"init"`
	MaxIterations    int     `mapstructure:"max_iterations"`
	Restarts         int     `mapstructure:"restarts"`
}

// LogConfig selects the logger encoding and level.
type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Level string `mapstructure:"level"`
}

// StoreConfig locates the run-history database; empty disables history.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// MetricsConfig locates the prometheus textfile; empty disables the export.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.epsilon", 2.0)
	v.SetDefault("pipeline.clusters_to_create", 2)
	v.SetDefault("pipeline.num_clusters", 0)
	v.SetDefault("pipeline.seed", 0)
	v.SetDefault("pipeline.workers", 0)
	v.SetDefault("pipeline.symmetrize", "none")
	v.SetDefault("pipeline.solver", "auto")
	v.SetDefault("pipeline.order", "ascending")
	v.SetDefault("pipeline.init", "plusplus")
	v.SetDefault("pipeline.max_iterations", kmeans.DefaultMaxIterations)
	v.SetDefault("pipeline.restarts", kmeans.DefaultRestarts)

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")

	v.SetDefault("store.path", "")
	v.SetDefault("metrics.textfile", "")
}

// New returns a viper instance with defaults and env binding but no file.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	return v
}

// Load reads path (any format viper infers from the extension; empty means
// no file) on top of the defaults and environment.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: read %s", path)
		}
	}

	return FromViper(v)
}

// FromViper unmarshals an already-populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}

	return &c, nil
}

// Spectral converts the pipeline section into a spectral.Config.
// Unknown enum names fail with fault.ErrInvalidArgument.
func (c *Config) Spectral() (spectral.Config, error) {
	p := c.Pipeline
	out := spectral.Config{
		Epsilon:          p.Epsilon,
		ClustersToCreate: p.ClustersToCreate,
		NumClusters:      p.NumClusters,
		Seed:             p.Seed,
		Workers:          p.Workers,
		MaxIterations:    p.MaxIterations,
		Restarts:         p.Restarts,
	}

	var err error
	if out.Symmetrize, err = neighborhood.ParseSymmetrize(p.Symmetrize); err != nil {
		return spectral.Config{}, errors.Wrap(err, "config: pipeline.symmetrize")
	}
	if out.Solver, err = embed.ParseSolver(p.Solver); err != nil {
		return spectral.Config{}, errors.Wrap(err, "config: pipeline.solver")
	}
	if out.Order, err = embed.ParseOrder(p.Order); err != nil {
		return spectral.Config{}, errors.Wrap(err, "config: pipeline.order")
	}
	if out.KMeansInit, err = kmeans.ParseInit(p.Init); err != nil {
		return spectral.Config{}, errors.Wrap(err, "config: pipeline.init")
	}

	return out, nil
}

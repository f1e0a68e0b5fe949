// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the dataset builder settings from a yaml file,
// SEDIAS_ prefixed environment variables and command line flags.
package config

import (
	"io"
	"os"
	"strings"

	"github.com/dandrid/sedias/augment"
	"github.com/dandrid/sedias/corpus"
	"github.com/dandrid/sedias/logger"
	"github.com/dandrid/sedias/sound"
	"github.com/kkyr/fig"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "SEDIAS"

type Config struct {
	Data struct {
		// directory holding the RAVDESS and emodb corpus directories
		Root string `default:"data"`
		// comma separated corpus names, in build order
		Corpora string `default:"ravdess,emodb"`
	}
	Noise struct {
		Start  float64 `default:"0.1"`
		Stop   float64 `default:"0.3"`
		Step   float64 `default:"0.1"`
		Center string  `default:"signal"`
		// 0 seeds from the clock
		Seed uint64
	}
	EmoDB struct {
		Rate int `default:"48000"`
	}
	Table struct {
		// keep category values instead of one-hot indicators
		Raw  bool
		Head int `default:"5"`
	}
	Output struct {
		// empty keeps the datasets in memory only
		Dir      string
		BitDepth int `default:"16"`
	}
	Log struct {
		Debug   bool
		NoColor bool
		// structured json lines instead of console output
		JSON bool
		// hide the progress bar
		Quiet bool
	}
}

// LoadConfig loads a configuration file into the given struct.
// The path param specifies a custom path to the configuration file, without it
// config.yaml is looked up in the current and configs directories and skipped
// if there is none. Environment variables with the SEDIAS_ prefix override
// file values, e.g. SEDIAS_NOISE_SEED.
func LoadConfig(config any, path string) error {
	if path != "" {
		dir, file := splitPath(path)
		return fig.Load(config, fig.File(file), fig.Dirs(dir), fig.UseEnv(EnvPrefix))
	}
	dirs := []string{".", "configs", "../../configs"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home+"/.sedias")
	}
	err := fig.Load(config, fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if errors.Is(err, fig.ErrFileNotFound) {
		return LoadConfigEnv(config)
	}
	return err
}

// LoadConfigEnv fills config from defaults and environment variables only
func LoadConfigEnv(config any) error {
	return fig.Load(config, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
}

func splitPath(path string) (dir, file string) {
	i := strings.LastIndexAny(path, `/\`)
	if i < 0 {
		return ".", path
	}
	return path[:i+1], path[i+1:]
}

// WithFlags registers flags overriding the loaded values
func (c *Config) WithFlags(fs *pflag.FlagSet) *Config {
	fs.StringVarP(&c.Data.Root, "root", "r", c.Data.Root, "data root containing the corpus directories")
	fs.StringVar(&c.Data.Corpora, "corpora", c.Data.Corpora, "comma separated corpora to build")
	fs.Uint64Var(&c.Noise.Seed, "seed", c.Noise.Seed, "noise seed, 0 seeds from the clock")
	fs.StringVar(&c.Noise.Center, "noise.center", c.Noise.Center, "noise mean: signal or zero")
	fs.BoolVar(&c.Table.Raw, "raw", c.Table.Raw, "keep category values instead of one-hot columns")
	fs.IntVar(&c.Table.Head, "head", c.Table.Head, "rows printed per dataset")
	fs.StringVarP(&c.Output.Dir, "out", "o", c.Output.Dir, "directory to save the datasets to")
	fs.BoolVarP(&c.Log.Debug, "debug", "d", c.Log.Debug, "debug logging")
	fs.BoolVar(&c.Log.JSON, "json", c.Log.JSON, "log json lines")
	fs.BoolVarP(&c.Log.Quiet, "quiet", "q", c.Log.Quiet, "hide the progress bar")
	return c
}

// Parse loads the configuration named by --config in args, then applies the
// remaining flags. printConfig reports whether --print-config was given.
func Parse(name string, args []string) (conf *Config, printConfig bool, err error) {
	pre := pflag.NewFlagSet(name, pflag.ContinueOnError)
	pre.ParseErrorsWhitelist.UnknownFlags = true
	pre.SetOutput(io.Discard)
	path := pre.StringP("config", "c", "", "configuration file")
	if err := pre.Parse(args); err != nil && !errors.Is(err, pflag.ErrHelp) {
		return nil, false, err
	}

	conf = &Config{}
	if err := LoadConfig(conf, *path); err != nil {
		return nil, false, errors.Wrap(err, "config: load")
	}
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "configuration file")
	fs.BoolVar(&printConfig, "print-config", false, "print the effective configuration and exit")
	conf.WithFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}
	if err := conf.Validate(); err != nil {
		return nil, false, err
	}
	return conf, printConfig, nil
}

// Validate checks the values fig cannot
func (c *Config) Validate() error {
	if _, err := c.Descriptors(); err != nil {
		return err
	}
	switch augment.Center(c.Noise.Center) {
	case augment.CenterSignal, augment.CenterZero:
	default:
		return errors.Errorf("config: unknown noise center %q", c.Noise.Center)
	}
	if c.Noise.Step <= 0 {
		return errors.Errorf("config: noise step must be positive, got %v", c.Noise.Step)
	}
	if c.EmoDB.Rate <= 0 {
		return errors.Errorf("config: emodb rate must be positive, got %v", c.EmoDB.Rate)
	}
	return errors.Wrap(sound.CheckBitDepth(c.Output.BitDepth), "config")
}

// Descriptors returns the configured corpora in build order
func (c *Config) Descriptors() ([]*corpus.Descriptor, error) {
	var ds []*corpus.Descriptor
	for _, nm := range strings.Split(c.Data.Corpora, ",") {
		if strings.TrimSpace(nm) == "" {
			continue
		}
		d, err := corpus.Lookup(nm)
		if err != nil {
			return nil, errors.Wrap(err, "config")
		}
		if d.TargetRate > 0 {
			d.TargetRate = c.EmoDB.Rate
		}
		ds = append(ds, d)
	}
	if len(ds) == 0 {
		return nil, errors.New("config: no corpora selected")
	}
	return ds, nil
}

// NoiseParams returns the augmentation settings with a seeded source
func (c *Config) NoiseParams() *augment.Noise {
	ns := &augment.Noise{
		Start:  c.Noise.Start,
		Stop:   c.Noise.Stop,
		Step:   c.Noise.Step,
		Center: augment.Center(c.Noise.Center),
	}
	ns.Seed(c.Noise.Seed)
	return ns
}

// NewLogger returns the configured logger
func (c *Config) NewLogger(tag string) *logger.Logger {
	if c.Log.JSON {
		return logger.New(c.Log.Debug)
	}
	return logger.NewConsole(c.Log.Debug, tag, c.Log.NoColor)
}

// Dump writes the configuration as yaml
func (c *Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

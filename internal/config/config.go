// Package config resolves the demo settings from, in increasing order of
// precedence: built-in defaults, an optional config file, POISSONGAUSS_*
// environment variables and command-line flags bound to viper.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mwiater/poissongauss/internal/clt"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"
)

// EnvPrefix is prepended to every environment variable, e.g. POISSONGAUSS_RATE.
const EnvPrefix = "POISSONGAUSS"

// Keys shared by viper, config files and flags.
const (
	KeyRate   = "rate"
	KeyCounts = "counts"
	KeyXMin   = "xmin"
	KeyXMax   = "xmax"
	KeyOut    = "out"
	KeyWidth  = "width"
	KeyHeight = "height"
	KeyShow   = "show"
	KeyDebug  = "debug"
)

// DefaultOut is the figure written when no output path is given.
const DefaultOut = "poisson_gauss.png"

// Config holds the resolved settings.
type Config struct {
	Rate   float64 `mapstructure:"rate"`
	Counts []int   `mapstructure:"counts"`
	XMin   float64 `mapstructure:"xmin"`
	XMax   float64 `mapstructure:"xmax"`

	// Out is the figure path; its extension picks the image format.
	Out string `mapstructure:"out"`
	// Width and Height are the figure size in inches.
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`

	// Show opens the terminal viewer after rendering.
	Show bool `mapstructure:"show"`
	// Debug dumps the resolved config and enables debug logging.
	Debug bool `mapstructure:"debug"`
}

// SetDefaults registers every key with its default value. Keys must be
// known to viper for environment variables to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyRate, clt.DefaultRate)
	v.SetDefault(KeyCounts, clt.DefaultCounts())
	v.SetDefault(KeyXMin, clt.DefaultXMin)
	v.SetDefault(KeyXMax, clt.DefaultXMax)
	v.SetDefault(KeyOut, DefaultOut)
	v.SetDefault(KeyWidth, 6.0)
	v.SetDefault(KeyHeight, 4.0)
	v.SetDefault(KeyShow, false)
	v.SetDefault(KeyDebug, false)
}

// Load resolves the configuration held by v. When path is not empty the
// file is read first; its format follows the extension (yaml, json, toml).
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("could not read config file %s: %w", filepath.Base(path), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that the plot depends on.
func (c Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Out == "" {
		return fmt.Errorf("%s must not be empty", KeyOut)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("figure size must be positive, got %vx%v in", c.Width, c.Height)
	}
	return nil
}

// Params converts the settings into inputs for a run.
func (c Config) Params() clt.Params {
	return clt.Params{
		Rate:   c.Rate,
		Counts: append([]int(nil), c.Counts...),
		XMin:   c.XMin,
		XMax:   c.XMax,
	}
}

// Size returns the figure width and height.
func (c Config) Size() (vg.Length, vg.Length) {
	return vg.Length(c.Width) * vg.Inch, vg.Length(c.Height) * vg.Inch
}

// Package config loads the tunables of the bound analysis from TOML
// configuration files, merging on-disk settings over built-in defaults.
package config

import (
	"fmt"
	"math/big"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/tetramorph/overrun/bounds"
	"github.com/tetramorph/overrun/internal/log"
)

type Config struct {
	// WideningThresholds are the landing spots threshold widening snaps to
	// before giving up and jumping to infinity. Must be ascending.
	WideningThresholds []int64 `toml:"widening_thresholds"`
	// WideningDelay is the number of fixpoint iterations loop-bound
	// widening keeps joining before it widens.
	WideningDelay int `toml:"widening_delay"`
	// TraceDepth bounds the number of steps rendered from a bound's
	// provenance trace.
	TraceDepth int `toml:"trace_depth"`
}

func Default() Config {
	return Config{
		WideningThresholds: []int64{0, 1, 16, 64, 255, 1024, 4096},
		WideningDelay:      bounds.DefaultWideningDelay,
		TraceDepth:         10,
	}
}

// Load reads the configuration at path and merges it over the defaults.
// Keys absent from the file keep their default value. A missing file is
// not an error; the defaults are returned.
func Load(path string) (Config, error) {
	logger := log.Logger("config")

	cfg := Default()
	var file Config
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("no configuration file, using defaults")
			return cfg, nil
		}
		return Config{}, fmt.Errorf("loading %s: %w", path, err)
	}

	if meta.IsDefined("widening_thresholds") {
		cfg.WideningThresholds = file.WideningThresholds
	}
	if meta.IsDefined("widening_delay") {
		cfg.WideningDelay = file.WideningDelay
	}
	if meta.IsDefined("trace_depth") {
		cfg.TraceDepth = file.TraceDepth
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	logger.Debug().
		Ints64("widening_thresholds", cfg.WideningThresholds).
		Int("widening_delay", cfg.WideningDelay).
		Int("trace_depth", cfg.TraceDepth).
		Msg("effective configuration")
	return cfg, nil
}

func (c Config) Validate() error {
	for i := 1; i < len(c.WideningThresholds); i++ {
		if c.WideningThresholds[i] <= c.WideningThresholds[i-1] {
			return fmt.Errorf("widening_thresholds must be strictly ascending, got %d after %d",
				c.WideningThresholds[i], c.WideningThresholds[i-1])
		}
	}
	if c.WideningDelay < 0 {
		return fmt.Errorf("widening_delay must be non-negative, got %d", c.WideningDelay)
	}
	if c.TraceDepth < 0 {
		return fmt.Errorf("trace_depth must be non-negative, got %d", c.TraceDepth)
	}
	return nil
}

// ThresholdZs converts the configured thresholds into the extended
// integers the widening operators take.
func (c Config) ThresholdZs() []bounds.Z {
	zs := make([]bounds.Z, len(c.WideningThresholds))
	for i, t := range c.WideningThresholds {
		zs[i] = bounds.NewBigZ(big.NewInt(t))
	}
	return zs
}

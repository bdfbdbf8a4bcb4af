// Package config aggregates the run configuration a strategy invocation
// needs: file paths, the strategy tag, the hyperparameter bundle, worker
// count, and deadline. Values may come from a TOML file (parsed with
// BurntSushi/toml, mirroring the teacher's own manifest-parsing use of the
// same library) and are then overridden by CLI flags, which always win.
package config

import (
	"os"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/arvogrid/floorsa/pkg/anneal"
	"github.com/arvogrid/floorsa/pkg/strategy"
)

// File is the on-disk TOML shape. Every field is optional; zero values are
// left to Config's defaults.
type File struct {
	Strategy    string  `toml:"strategy"`
	TStart      float64 `toml:"t_start"`
	TMin        float64 `toml:"t_min"`
	CoolingRate float64 `toml:"cooling_rate"`
	Factor      float64 `toml:"factor"`
	Workers     int     `toml:"workers"`
	DeadlineSec int     `toml:"deadline_seconds"`
}

// Config is the fully resolved run configuration.
type Config struct {
	InputPath       string
	OutputPath      string
	ConvergencePath string

	Strategy    strategy.Tag
	Params      anneal.Params
	Workers     int
	DeadlineSec int
}

// Default returns the baseline configuration used when neither a file nor
// flags supply a value: MultiStart_Coarse, a conservative hyperparameter
// bundle, and a worker count equal to the host's available parallelism.
func Default() Config {
	return Config{
		Strategy:    strategy.MultiStartCoarse,
		Params:      anneal.Params{TStart: 100, TMin: 0.1, CoolingRate: 0.9, Factor: 1},
		Workers:     runtime.GOMAXPROCS(0),
		DeadlineSec: 30,
	}
}

// LoadFile parses a TOML configuration file into Config, starting from
// Default and overwriting only the fields the file sets. A strategy tag
// unrecognised by strategy.Tag.Valid falls back to MultiStart_Coarse, with
// the caller expected to log a warning (config itself does not log).
func LoadFile(path string) (Config, bool, error) {
	cfg := Default()
	if path == "" {
		return cfg, false, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, false, nil
	}

	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return cfg, false, err
	}

	fellBack := false
	if f.Strategy != "" {
		tag := strategy.Tag(f.Strategy)
		if tag.Valid() {
			cfg.Strategy = tag
		} else {
			cfg.Strategy = strategy.MultiStartCoarse
			fellBack = true
		}
	}
	if f.TStart > 0 {
		cfg.Params.TStart = f.TStart
	}
	if f.TMin > 0 {
		cfg.Params.TMin = f.TMin
	}
	if f.CoolingRate > 0 {
		cfg.Params.CoolingRate = f.CoolingRate
	}
	if f.Factor > 0 {
		cfg.Params.Factor = f.Factor
	}
	if f.Workers > 0 {
		cfg.Workers = clampWorkers(f.Workers)
	}
	if f.DeadlineSec > 0 {
		cfg.DeadlineSec = f.DeadlineSec
	}
	return cfg, fellBack, nil
}

// clampWorkers bounds a requested worker count to the host's available
// parallelism.
func clampWorkers(requested int) int {
	max := runtime.GOMAXPROCS(0)
	if requested > max {
		return max
	}
	if requested < 1 {
		return 1
	}
	return requested
}

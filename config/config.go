// Package config provides the ambient knobs a host embedding this core
// needs to set: which mappers it is willing to load, the default CPU
// trace/log setup, and the PAL-stretch toggle (spec.md §4.4).
//
// Mirrors the layered-defaults-plus-TOML-override shape used elsewhere in
// this codebase, trimmed to what this module's core actually consumes (no
// video/input sections; those are host concerns, never a core concern
// per spec.md §1).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the root TOML document. Every field round-trips through
// toml.Decode/toml.NewEncoder round-trip cleanly.
type Config struct {
	Mappers MapperConfig `toml:"mappers"`
	Trace   TraceConfig  `toml:"trace"`
	Region  RegionConfig `toml:"region"`
}

// MapperConfig narrows the compile-time mapper whitelist (spec.md §4.3)
// to a host-chosen subset. An empty Enabled list means "every compiled-in
// mapper is allowed" -- this section only ever *restricts*, it cannot
// widen the whitelist beyond what package mappers actually implements.
type MapperConfig struct {
	Enabled []int `toml:"enabled"`
}

// Allows reports whether mapper number n may be loaded under this config.
func (mc MapperConfig) Allows(n uint16) bool {
	if len(mc.Enabled) == 0 {
		return true
	}
	for _, v := range mc.Enabled {
		if v == int(n) {
			return true
		}
	}
	return false
}

// TraceConfig controls the nlog module mask and the CPU trace sink a
// `run` invocation starts with (mirrors the --log and --trace flags exposed by
// the CLI, lifted into the persisted config so a host need not
// re-specify them every run).
type TraceConfig struct {
	// LogModules names the nlog modules to enable at Debug/Info level
	// (e.g. "cpu", "mapper"). Warn and above are always surfaced
	// regardless of this list.
	LogModules []string `toml:"log_modules"`
	// Out is where CPU.Trace lines are written: a file path, "stdout",
	// "stderr", or "" to disable tracing entirely.
	Out string `toml:"out"`
}

// RegionConfig selects NTSC vs the single-scalar PAL cycle-stretch
// approximation spec.md §4.4 allows (no other PAL/NTSC timing
// differences are in scope).
type RegionConfig struct {
	PAL bool `toml:"pal"`
}

// Default returns the configuration a fresh install starts with: every
// compiled-in mapper enabled, no tracing, NTSC timing.
func Default() Config {
	return Config{
		Mappers: MapperConfig{Enabled: nil},
		Trace:   TraceConfig{Out: ""},
		Region:  RegionConfig{PAL: false},
	}
}

// Dir returns the directory this package's config.toml lives in,
// creating it if necessary.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user config dir: %w", err)
	}
	dir := filepath.Join(base, "nestor-core")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("config: create %s: %w", dir, err)
	}
	return dir, nil
}

const filename = "config.toml"

// Load reads config.toml from path (a directory, per Dir's convention).
// A missing file is not an error: Default() is returned instead.
func Load(dir string) (Config, error) {
	cfg := Default()
	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to dir/config.toml.
func Save(dir string, cfg Config) error {
	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}

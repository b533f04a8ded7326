// Package config loads benchmark profiles.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jedisct1/dlog"

	"github.com/tstromberg/gosieve/internal/benchmark"
	"github.com/tstromberg/gosieve/internal/trace"
	"github.com/tstromberg/gosieve/internal/workload"
)

// Suites lists all benchmark suites in run order.
var Suites = []string{"hitrate", "latency", "throughput", "memory"}

// Config is a benchmark profile. Command-line flags override its fields.
type Config struct {
	Suites   []string     `toml:"suites"`
	Tests    []string     `toml:"tests"`
	Caches   []string     `toml:"caches"`
	Sizes    []int        `toml:"sizes"`
	Threads  []int        `toml:"threads"`
	OutDir   string       `toml:"outdir"`
	LogLevel string       `toml:"log_level"`
	Zipf     ZipfConfig   `toml:"zipf"`
	Memory   MemoryConfig `toml:"memory"`
	Traces   []trace.Spec `toml:"traces"`
}

// ZipfConfig shapes the synthetic workloads.
type ZipfConfig struct {
	KeySpace    int     `toml:"keyspace"`
	Ops         int     `toml:"ops"`
	Theta       float64 `toml:"theta"`
	Seed        uint64  `toml:"seed"`
	OneHitRatio float64 `toml:"one_hit_ratio"`
}

// Zipf returns the distribution described by z.
func (z ZipfConfig) Zipf() workload.Zipf {
	return workload.Zipf{KeySpace: z.KeySpace, Theta: z.Theta, Seed: z.Seed}
}

// MemoryConfig sizes the memory probe.
type MemoryConfig struct {
	Capacity  int `toml:"capacity"`
	ValueSize int `toml:"value_size"`
}

// Default returns the built-in profile.
func Default() Config {
	return Config{
		Suites:   slices.Clone(Suites),
		Sizes:    slices.Clone(benchmark.DefaultCacheSizes),
		Threads:  slices.Clone(benchmark.DefaultThreadCounts),
		LogLevel: "notice",
		Zipf: ZipfConfig{
			KeySpace:    100_000,
			Ops:         2_000_000,
			Theta:       0.8,
			Seed:        42,
			OneHitRatio: 0.3,
		},
		Memory: MemoryConfig{
			Capacity:  benchmark.DefaultMemoryCapacity,
			ValueSize: benchmark.DefaultValueSize,
		},
	}
}

// Load reads a TOML profile from path on top of Default. Keys the profile
// does not define are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unsupported key in %s: [%s]", path, undecoded[0])
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	var errs []error
	for _, s := range c.Suites {
		if !slices.Contains(Suites, s) {
			errs = append(errs, fmt.Errorf("unknown suite %q", s))
		}
	}
	for _, n := range c.Sizes {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("cache size %d must be positive", n))
		}
	}
	for _, n := range c.Threads {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("thread count %d must be positive", n))
		}
	}
	if c.Zipf.KeySpace <= 0 || c.Zipf.Ops <= 0 {
		errs = append(errs, errors.New("zipf keyspace and ops must be positive"))
	}
	if c.Zipf.Theta <= 0 || c.Zipf.Theta == 1 {
		errs = append(errs, fmt.Errorf("zipf theta %v must be positive and not 1", c.Zipf.Theta))
	}
	if c.Zipf.OneHitRatio < 0 || c.Zipf.OneHitRatio >= 1 {
		errs = append(errs, fmt.Errorf("zipf one_hit_ratio %v must be in [0, 1)", c.Zipf.OneHitRatio))
	}
	if c.Memory.Capacity <= 0 || c.Memory.ValueSize < 0 {
		errs = append(errs, errors.New("memory capacity must be positive and value_size non-negative"))
	}
	for i, t := range c.Traces {
		if t.Name == "" || t.Path == "" {
			errs = append(errs, fmt.Errorf("trace %d needs a name and a path", i))
		}
		if _, err := trace.ParseFormat(string(t.Format)); err != nil {
			errs = append(errs, fmt.Errorf("trace %q: %w", t.Name, err))
		}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLogLevel accepts a severity name ("debug" ... "fatal") or its number.
func ParseLogLevel(s string) (dlog.Severity, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 0 && n < int(dlog.SeverityLast) {
			return dlog.Severity(n), nil
		}
		return 0, fmt.Errorf("log level %d out of range", n)
	}
	for sev, name := range dlog.SeverityName {
		if strings.EqualFold(name, s) || (name == "WARNING" && strings.EqualFold(s, "warn")) {
			return dlog.Severity(sev), nil //nolint:gosec // index of a short table
		}
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

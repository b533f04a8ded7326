// gosieve benchmarks the SIEVE cache in this module against Go cache
// implementations.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/jedisct1/dlog"
	"github.com/spf13/pflag"

	"github.com/tstromberg/gosieve/internal/cache"
	"github.com/tstromberg/gosieve/internal/config"
	"github.com/tstromberg/gosieve/internal/output"
	"github.com/tstromberg/gosieve/internal/trace"
)

// Tests that are not hit rate workloads, by suite.
var suiteTests = map[string][]string{
	"hitrate":    {"zipf", "scan", "one-hit"},
	"latency":    {"string", "int", "getorinsert"},
	"throughput": {"string-throughput", "int-throughput"},
	"memory":     {"memory"},
}

func main() {
	dlog.Init("gosieve", dlog.SeverityNotice, "")
	if err := run(os.Args[1:]); err != nil {
		dlog.Fatalf("%v", err)
	}
}

// options are the parsed command-line flags.
type options struct {
	configPath string
	suites     string
	caches     string
	tests      string
	sizes      string
	threads    string
	outDir     string
	logLevel   string
	traces     []string
}

func newFlagSet(o *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("gosieve", pflag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "TOML benchmark profile")
	fs.StringVar(&o.suites, "suites", "", "comma-separated suites: hitrate,latency,throughput,memory (default: all)")
	fs.StringVar(&o.caches, "caches", "", "comma-separated caches to benchmark (default: all)")
	fs.StringVar(&o.tests, "tests", "", "comma-separated tests to run across suites (default: all)")
	fs.StringVar(&o.sizes, "sizes", "", "comma-separated cache sizes in K (e.g. 16,32,64)")
	fs.StringVar(&o.threads, "threads", "", "comma-separated thread counts for throughput (e.g. 8,16)")
	fs.StringVar(&o.outDir, "outdir", "", "directory for gosieve_results.{md,json}")
	fs.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, notice, warning, error")
	fs.StringArrayVar(&o.traces, "trace", nil, "trace to replay as name=format:path (format: keys, ops, csv2); repeatable")
	fs.Usage = func() { printUsage(fs) }
	return fs
}

func run(args []string) error {
	var o options
	fs := newFlagSet(&o)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
	}
	if err := applyFlags(&cfg, o); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	dlog.SetLogLevel(level)

	if unknown := cache.SetFilter(cfg.Caches); len(unknown) > 0 {
		return fmt.Errorf("unknown caches %s (available: %s)",
			strings.Join(unknown, ", "), strings.Join(cache.AvailableNames(), ", "))
	}

	tests, err := testFilter(cfg)
	if err != nil {
		return err
	}

	dlog.Noticef("caches: %s", strings.Join(cache.Names(), ", "))
	dlog.Noticef("suites: %s", strings.Join(cfg.Suites, ", "))
	dlog.Noticef("sizes: %v", cfg.Sizes)

	r := runner{cfg: cfg, tests: tests}
	results := r.run()

	commandLine := "gosieve " + strings.Join(args, " ")
	results.MachineInfo = output.CurrentMachine()
	results.Rankings, results.MedalTable = output.ComputeRankings(results)

	if err := output.RenderMarkdown(os.Stdout, results, commandLine); err != nil {
		return fmt.Errorf("print results: %w", err)
	}
	return writeResults(cfg.OutDir, results, commandLine)
}

// applyFlags overrides profile values with the flags the user set.
func applyFlags(cfg *config.Config, o options) error {
	if o.suites != "" && o.suites != "all" {
		cfg.Suites = splitList(strings.ToLower(o.suites))
	}
	if o.caches != "" {
		cfg.Caches = splitList(o.caches)
	}
	if o.tests != "" {
		cfg.Tests = splitList(strings.ToLower(o.tests))
	}
	if o.sizes != "" {
		sizes, err := parseIntList(o.sizes, 1024)
		if err != nil {
			return fmt.Errorf("--sizes: %w", err)
		}
		cfg.Sizes = sizes
	}
	if o.threads != "" {
		threads, err := parseIntList(o.threads, 1)
		if err != nil {
			return fmt.Errorf("--threads: %w", err)
		}
		cfg.Threads = threads
	}
	if o.outDir != "" {
		cfg.OutDir = o.outDir
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	for _, s := range o.traces {
		spec, err := trace.ParseSpec(s)
		if err != nil {
			return err
		}
		cfg.Traces = append(cfg.Traces, spec)
	}
	return nil
}

func splitList(input string) []string {
	var out []string
	for s := range strings.SplitSeq(input, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseIntList parses a comma-separated list of integers, scaling each by
// multiplier.
func parseIntList(input string, multiplier int) ([]int, error) {
	var result []int
	for _, s := range splitList(input) {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", s)
		}
		result = append(result, v*multiplier)
	}
	return result, nil
}

// testFilter validates cfg.Tests. A nil result means every test runs.
func testFilter(cfg config.Config) (map[string]bool, error) {
	if len(cfg.Tests) == 0 {
		return nil, nil
	}
	valid := make(map[string]bool)
	for _, names := range suiteTests {
		for _, n := range names {
			valid[n] = true
		}
	}
	for _, t := range cfg.Traces {
		valid[t.Name] = true
	}

	filter := make(map[string]bool, len(cfg.Tests))
	for _, t := range cfg.Tests {
		if !valid[t] {
			names := make([]string, 0, len(valid))
			for n := range valid {
				names = append(names, n)
			}
			slices.Sort(names)
			return nil, fmt.Errorf("unknown test %q (available: %s)", t, strings.Join(names, ", "))
		}
		filter[t] = true
	}
	return filter, nil
}

func writeResults(outDir string, results output.Results, commandLine string) error {
	if outDir == "" {
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil { //nolint:gosec // G301: 0755 is standard dir permission
		return fmt.Errorf("create output directory: %w", err)
	}
	mdPath := filepath.Join(outDir, "gosieve_results.md")
	if err := output.WriteMarkdown(mdPath, results, commandLine); err != nil {
		return err
	}
	jsonPath := filepath.Join(outDir, "gosieve_results.json")
	if err := output.WriteJSON(jsonPath, results, commandLine); err != nil {
		return err
	}
	dlog.Noticef("results: %s, %s", mdPath, jsonPath)
	return nil
}

func printUsage(fs *pflag.FlagSet) {
	fmt.Fprintln(os.Stderr, "gosieve - benchmark the SIEVE cache against Go cache implementations")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  gosieve [flags]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprint(os.Stderr, fs.FlagUsages())
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Tests:")
	for _, suite := range config.Suites {
		fmt.Fprintf(os.Stderr, "  %-11s %s\n", suite, strings.Join(suiteTests[suite], ", "))
	}
	fmt.Fprintln(os.Stderr, "  (each --trace name is also a hitrate test)")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  gosieve --suites hitrate --caches gosieve,golang-fifo-sieve,lru")
	fmt.Fprintln(os.Stderr, "  gosieve --suites hitrate --trace wiki=keys:wiki.txt.zst --tests wiki")
	fmt.Fprintln(os.Stderr, "  gosieve --suites latency,throughput --threads 1,8 --outdir results")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Available caches:")
	for _, name := range cache.AvailableNames() {
		fmt.Fprintf(os.Stderr, "  - %s\n", name)
	}
}

// Package config parses the CLI flag surface into a VanityConfig, the
// way falcon-signatures' cli package and madmin-go's server flags parse
// their own surfaces: the standard-library flag package, exit code 2 on
// parse/validation failure, usage text on -h.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// VanityConfig is everything cmd/erg-vanity needs to start an
// Orchestrator run, already validated.
type VanityConfig struct {
	ListDevices bool
	DeviceIndices []int

	Patterns      []string // normalized (lowercased iff IgnoreCase)
	PatternsOriginal []string
	IgnoreCase    bool

	MaxResults int
	NumIndices uint32
	Duration   time.Duration

	Bench           bool
	BenchIters      int
	BenchWarmup     int
	BenchBatchSize  int
	BenchNumIndices int
	BenchValidate   bool
}

// ParseArgsError carries the exit code spec.md §6/§7 requires: 2 for
// invalid arguments, reported and returned before any GPU work starts.
type ParseArgsError struct {
	Message  string
	ExitCode int
}

func (e *ParseArgsError) Error() string { return e.Message }

// ParseArgs parses argv (excluding the program name) into a
// VanityConfig, or a *ParseArgsError carrying the intended exit code.
func ParseArgs(argv []string, errOutput io.Writer) (VanityConfig, error) {
	fs := flag.NewFlagSet("erg-vanity", flag.ContinueOnError)
	fs.SetOutput(errOutput)

	listDevices := fs.Bool("list-devices", false, "enumerate OpenCL GPUs and exit")
	devices := fs.String("devices", "0", "comma-separated device indices, or \"all\"")
	pattern := fs.String("pattern", "", "pattern(s) to search for, comma-separated")
	fs.StringVar(pattern, "p", "", "shorthand for --pattern")
	ignoreCase := fs.Bool("ignore-case", false, "case-insensitive match")
	fs.BoolVar(ignoreCase, "i", false, "shorthand for --ignore-case")
	maxResults := fs.Int("max-results", 1, "stop after N matches")
	fs.IntVar(maxResults, "n", 1, "shorthand for --max-results")
	index := fs.Int("index", 1, "BIP44 address indices per seed, 1..100")
	durationSecs := fs.Int("duration-secs", 0, "optional wall-clock deadline in seconds")

	bench := fs.Bool("bench", false, "run microbenchmark mode instead of searching")
	benchIters := fs.Int("bench-iters", 10, "benchmark iterations")
	benchWarmup := fs.Int("bench-warmup", 1, "benchmark warmup iterations")
	benchBatchSize := fs.Int("bench-batch-size", 1<<16, "benchmark batch size")
	benchNumIndices := fs.Int("bench-num-indices", 1, "benchmark address indices per seed")
	benchValidate := fs.Bool("bench-validate", false, "cross-check benchmark checksums against the CPU reference")

	if err := fs.Parse(argv); err != nil {
		return VanityConfig{}, &ParseArgsError{Message: err.Error(), ExitCode: 2}
	}

	cfg := VanityConfig{
		ListDevices:     *listDevices,
		IgnoreCase:      *ignoreCase,
		MaxResults:      *maxResults,
		NumIndices:      uint32(*index),
		Bench:           *bench,
		BenchIters:      *benchIters,
		BenchWarmup:     *benchWarmup,
		BenchBatchSize:  *benchBatchSize,
		BenchNumIndices: *benchNumIndices,
		BenchValidate:   *benchValidate,
	}
	if *durationSecs > 0 {
		cfg.Duration = time.Duration(*durationSecs) * time.Second
	}

	patterns := splitNonEmpty(*pattern)
	// Legacy positional pattern (if any) is appended to -p/--pattern.
	if rest := fs.Args(); len(rest) > 0 {
		patterns = append(patterns, rest...)
	}
	if cfg.ListDevices {
		return cfg, nil
	}
	if len(patterns) == 0 && !cfg.Bench {
		return VanityConfig{}, &ParseArgsError{Message: "at least one --pattern is required", ExitCode: 2}
	}
	cfg.PatternsOriginal = patterns
	cfg.Patterns = make([]string, len(patterns))
	for i, p := range patterns {
		if cfg.IgnoreCase {
			cfg.Patterns[i] = strings.ToLower(p)
		} else {
			cfg.Patterns[i] = p
		}
	}

	if cfg.MaxResults < 1 {
		return VanityConfig{}, &ParseArgsError{Message: "--max-results must be >= 1", ExitCode: 2}
	}
	if cfg.NumIndices < 1 || cfg.NumIndices > 100 {
		return VanityConfig{}, &ParseArgsError{Message: "--index must be between 1 and 100", ExitCode: 2}
	}

	indices, err := parseDeviceList(*devices)
	if err != nil {
		return VanityConfig{}, &ParseArgsError{Message: err.Error(), ExitCode: 2}
	}
	cfg.DeviceIndices = indices

	return cfg, nil
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseDeviceList parses "--devices LIST|all". "all" is represented as
// a nil slice: the caller (cmd/erg-vanity) resolves it against
// gpu.EnumerateDevices after flags are parsed, since ParseArgs itself
// never touches the OpenCL ICD.
func parseDeviceList(s string) ([]int, error) {
	if s == "all" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid device index %q", p)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("--devices must name at least one index or \"all\"")
	}
	return out, nil
}

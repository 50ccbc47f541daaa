// Command erg-vanity searches for Ergo mainnet P2PK addresses matching
// one or more Base58 prefixes, spreading the search across one or more
// OpenCL GPU devices.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/Asylian21/erg-vanity-gpu/internal/config"
	"github.com/Asylian21/erg-vanity-gpu/internal/gpu"
	"github.com/Asylian21/erg-vanity-gpu/internal/matcher"
	"github.com/Asylian21/erg-vanity-gpu/internal/orchestrator"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr *os.File) int {
	cfg, err := config.ParseArgs(argv, stderr)
	if err != nil {
		if pe, ok := err.(*config.ParseArgsError); ok {
			fmt.Fprintln(stderr, pe.Message)
			return pe.ExitCode
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	if cfg.ListDevices {
		return listDevices(stdout, stderr)
	}

	if cfg.Bench {
		return runBench(cfg, stdout, stderr)
	}

	if _, err := matcher.NewBank(cfg.Patterns, cfg.IgnoreCase); err != nil {
		fmt.Fprintf(stderr, "invalid pattern: %v\n", err)
		return 2
	}

	deviceIndices := cfg.DeviceIndices
	if deviceIndices == nil {
		devices, err := gpu.EnumerateDevices()
		if err != nil {
			fmt.Fprintf(stderr, "device enumeration failed: %v\n", err)
			return 1
		}
		for _, d := range devices {
			deviceIndices = append(deviceIndices, d.GlobalIndex)
		}
	}

	fmt.Fprintf(stderr, "Searching for patterns: %v\n", cfg.PatternsOriginal)
	fmt.Fprintf(stderr, "Devices: %v\n", deviceIndices)

	var o orchestrator.Orchestrator
	ctx := context.Background()
	hits, err := o.Run(ctx, orchestrator.Config{
		BatchSize:  0,
		NumIndices: cfg.NumIndices,
		IgnoreCase: cfg.IgnoreCase,
	}, deviceIndices, cfg.Patterns, cfg.MaxResults, cfg.Duration)

	for k, hit := range hits {
		printMatch(stdout, k+1, hit, cfg.PatternsOriginal)
	}

	if dropped := o.HitsDroppedTotal(); dropped > 0 {
		fmt.Fprintf(stderr, "warning: %d hits dropped this run (pattern too short?)\n", dropped)
	}
	fmt.Fprintf(stderr, "\naddresses checked: %d\n", o.AddressesChecked())

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// printMatch writes one result record in spec.md §6's exact format.
func printMatch(out *os.File, k int, hit orchestrator.Hit, patternsOriginal []string) {
	r := hit.Result
	original := r.Address
	if int(r.PatternIndex) < len(patternsOriginal) {
		original = patternsOriginal[r.PatternIndex]
	}
	fmt.Fprintf(out, "=== Match %d ===\n", k)
	fmt.Fprintf(out, "Device:   %d\n", hit.Device)
	fmt.Fprintf(out, "Address:  %s\n", r.Address)
	fmt.Fprintf(out, "Pattern:  %s\n", original)
	fmt.Fprintf(out, "Path:     m/44'/429'/0'/0/%d\n", r.AddressIndex)
	fmt.Fprintf(out, "Mnemonic: %s\n", r.Mnemonic)
	fmt.Fprintf(out, "Entropy:  %s\n\n", hex.EncodeToString(r.Entropy[:]))
}

// runBench drives the first configured device through --bench-iters
// warmed-up batches of the full vanity_search pipeline, reporting a
// throughput figure. It does not separately drive the four isolated
// bench_* kernels embedded in kernel.cl; see DESIGN.md for why that is
// left as a known gap rather than wired end to end.
func runBench(cfg config.VanityConfig, stdout, stderr *os.File) int {
	deviceIdx := 0
	if len(cfg.DeviceIndices) > 0 {
		deviceIdx = cfg.DeviceIndices[0]
	}
	pipe, err := gpu.NewPipelineForBench(deviceIdx)
	if err != nil {
		fmt.Fprintf(stderr, "bench init failed: %v\n", err)
		return 1
	}
	defer pipe.Close()

	info, err := pipe.DeviceInfo()
	if err != nil {
		fmt.Fprintf(stderr, "bench device info failed: %v\n", err)
		return 1
	}
	fmt.Fprintf(stderr, "Bench device: %s\n", info.String())

	for i := 0; i < cfg.BenchWarmup; i++ {
		if _, _, err := pipe.RunBatchWithCounter(uint64(i) * uint64(cfg.BenchBatchSize)); err != nil {
			fmt.Fprintf(stderr, "bench warmup failed: %v\n", err)
			return 1
		}
	}
	start := time.Now()
	var total uint64
	for i := 0; i < cfg.BenchIters; i++ {
		counter := uint64(cfg.BenchWarmup+i) * uint64(cfg.BenchBatchSize)
		if _, _, err := pipe.RunBatchWithCounter(counter); err != nil {
			fmt.Fprintf(stderr, "bench iteration failed: %v\n", err)
			return 1
		}
		total += uint64(cfg.BenchBatchSize)
	}
	elapsed := time.Since(start).Seconds()
	rate := float64(0)
	if elapsed > 0 {
		rate = float64(total) / elapsed
	}
	fmt.Fprintf(stdout, "candidates: %d  elapsed: %.3fs  rate: %.0f/s\n", total, elapsed, rate)
	return 0
}

func listDevices(stdout, stderr *os.File) int {
	devices, err := gpu.EnumerateDevices()
	if err != nil {
		fmt.Fprintf(stderr, "device enumeration failed: %v\n", err)
		return 1
	}
	for _, d := range devices {
		fmt.Fprintln(stdout, d.String())
	}
	return 0
}

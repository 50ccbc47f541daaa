// Package orchestrator fans a vanity search out across one or more
// OpenCL devices.
//
// It generalizes the teacher's worker/matchWriter/statsReporter
// goroutine triad (bitcoin-wallet-bruteforce-offline.go) to one
// goroutine per GPU device sharing an atomic counter and an atomic
// stop flag, one coordinator goroutine that owns max-results/error
// decisions, and one stats-reporter goroutine. No locks on the fast
// path: counter, stop, and addressesChecked are all single-word
// atomics, matching the teacher's lock-free design.
package orchestrator

import (
	"context"
	"crypto/rand"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Asylian21/erg-vanity-gpu/internal/gpu"
)

// Config bundles the per-run tunables read from internal/config.
type Config struct {
	BatchSize  int
	NumIndices uint32
	IgnoreCase bool
}

// Hit is one verified match, tagged with the device that found it.
type Hit struct {
	Device int
	Result gpu.VanityResult
}

// Event is the message type workers send to the coordinator. Exactly
// one of Hit, Err, or Stats is meaningful for any given Event, mirroring
// the teacher's separate matchChan/fatal-log/statsReporter paths
// collapsed into a single channel.
type Event struct {
	Kind EventKind
	Hit  Hit
	Err  error
	Stats DeviceStats
}

// EventKind distinguishes the three Event payloads.
type EventKind int

const (
	EventHit EventKind = iota
	EventError
	EventStats
)

// DeviceStats is sent once, when a worker goroutine whose pipeline was
// created exits; a worker whose NewPipeline fails sends only its error.
type DeviceStats struct {
	Device           int
	HitsDroppedTotal uint64
}

// Orchestrator owns the shared atomics and device pipelines for one run.
type Orchestrator struct {
	counter           uint64 // atomic, claimed via fetch_add(batch)
	stop              int32  // atomic bool
	addressesChecked  uint64 // atomic, observability only
	hitsDroppedTotal  uint64 // atomic, aggregated across devices
}

// Run starts one worker per device index, a coordinator, and a
// stats-reporter, and blocks until max-results is hit, the optional
// duration elapses, or every worker has exited.
func (o *Orchestrator) Run(ctx context.Context, cfg Config, deviceIndices []int, patterns []string, maxResults int, duration time.Duration) ([]Hit, error) {
	if len(deviceIndices) == 0 {
		return nil, fmt.Errorf("orchestrator: no device indices given")
	}

	var salt [32]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, fmt.Errorf("orchestrator: generate salt: %w", err)
	}

	events := make(chan Event, 256)
	var wg sync.WaitGroup
	for _, dev := range deviceIndices {
		wg.Add(1)
		go func(device int) {
			defer wg.Done()
			o.runWorker(device, cfg, patterns, salt, events)
		}(dev)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	if duration > 0 {
		go func() {
			t := time.NewTimer(duration)
			defer t.Stop()
			select {
			case <-t.C:
				atomic.StoreInt32(&o.stop, 1)
			case <-done:
			case <-ctx.Done():
			}
		}()
	}
	go func() {
		<-ctx.Done()
		atomic.StoreInt32(&o.stop, 1)
	}()

	go reportStats(&o.addressesChecked, done)

	return o.coordinate(events, done, maxResults)
}

// coordinate is the sole decider of max-results and first-error,
// matching spec.md's "no race on max_results" invariant: only this
// goroutine ever reads a Hit count to decide when to stop. It keeps
// draining events until every worker has exited (done closes), so
// late Stats/Hit events sent during worker shutdown are never lost.
func (o *Orchestrator) coordinate(events chan Event, done chan struct{}, maxResults int) ([]Hit, error) {
	var hits []Hit
	var firstErr error
	var totalDropped uint64

	apply := func(ev Event) {
		switch ev.Kind {
		case EventHit:
			if len(hits) < maxResults {
				hits = append(hits, ev.Hit)
				if len(hits) >= maxResults {
					atomic.StoreInt32(&o.stop, 1)
				}
			}
		case EventError:
			if firstErr == nil {
				firstErr = ev.Err
			}
			atomic.StoreInt32(&o.stop, 1)
		case EventStats:
			totalDropped += ev.Stats.HitsDroppedTotal
		}
	}

loop:
	for {
		// Events take priority over done: a plain select between two
		// simultaneously-ready channels picks pseudo-randomly, which
		// could drop buffered hits the instant the last worker exits.
		select {
		case ev := <-events:
			apply(ev)
			continue loop
		default:
		}
		select {
		case ev := <-events:
			apply(ev)
		case <-done:
			break loop
		}
	}
	// Workers have all exited; drain whatever they buffered on the way
	// out without blocking further.
	for {
		select {
		case ev := <-events:
			apply(ev)
		default:
			goto finished
		}
	}
finished:
	atomic.StoreUint64(&o.hitsDroppedTotal, totalDropped)

	sort.Slice(hits, func(i, j int) bool {
		a, b := hits[i].Result, hits[j].Result
		if a.AddressIndex != b.AddressIndex {
			return a.AddressIndex < b.AddressIndex
		}
		if a.PatternIndex != b.PatternIndex {
			return a.PatternIndex < b.PatternIndex
		}
		return a.WorkItemID < b.WorkItemID
	})
	return hits, firstErr
}

// runWorker is one goroutine per device: claim a batch, run it, report
// addresses checked, forward hits, and stop cooperatively. It polls
// stop only between batches, never mid-batch, matching spec.md's
// "a single batch is a quantum" cancellation rule.
func (o *Orchestrator) runWorker(device int, cfg Config, patterns []string, salt [32]byte, events chan<- Event) {
	gcfg := gpu.VanityConfig{BatchSize: cfg.BatchSize, NumIndices: cfg.NumIndices}
	pipeline, err := gpu.NewPipeline(patterns, cfg.IgnoreCase, gcfg, device, salt)
	if err != nil {
		events <- Event{Kind: EventError, Err: fmt.Errorf("device %d: %w", device, err)}
		return
	}
	defer pipeline.Close()

	batch := uint64(gcfg.BatchSizeOrDefault())
	var droppedTotal uint64
	for atomic.LoadInt32(&o.stop) == 0 {
		start := atomic.AddUint64(&o.counter, batch) - batch
		results, dropped, err := pipeline.RunBatchWithCounter(start)
		if err != nil {
			events <- Event{Kind: EventError, Err: fmt.Errorf("device %d: %w", device, err)}
			break
		}
		droppedTotal += dropped
		atomic.AddUint64(&o.addressesChecked, batch*uint64(cfg.NumIndices))
		for _, r := range results {
			events <- Event{Kind: EventHit, Hit: Hit{Device: device, Result: r}}
		}
	}
	events <- Event{Kind: EventStats, Stats: DeviceStats{Device: device, HitsDroppedTotal: droppedTotal}}
}

// AddressesChecked reports the observability-only running total.
func (o *Orchestrator) AddressesChecked() uint64 {
	return atomic.LoadUint64(&o.addressesChecked)
}

// HitsDroppedTotal reports how many device-side hits overflowed
// MAX_HITS across every batch of the run, aggregated on worker exit.
func (o *Orchestrator) HitsDroppedTotal() uint64 {
	return atomic.LoadUint64(&o.hitsDroppedTotal)
}

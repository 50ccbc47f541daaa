package orchestrator

import (
	"testing"

	"github.com/Asylian21/erg-vanity-gpu/internal/gpu"
)

func TestCoordinateStopsAtMaxResults(t *testing.T) {
	var o Orchestrator
	events := make(chan Event, 8)
	done := make(chan struct{})

	events <- Event{Kind: EventHit, Hit: Hit{Device: 0, Result: gpu.VanityResult{AddressIndex: 2}}}
	events <- Event{Kind: EventHit, Hit: Hit{Device: 0, Result: gpu.VanityResult{AddressIndex: 0}}}
	events <- Event{Kind: EventHit, Hit: Hit{Device: 1, Result: gpu.VanityResult{AddressIndex: 1}}}
	close(done)

	hits, err := o.coordinate(events, done, 2)
	if err != nil {
		t.Fatalf("coordinate returned error: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2", len(hits))
	}
	if hits[0].Result.AddressIndex != 0 || hits[1].Result.AddressIndex != 2 {
		t.Errorf("hits not sorted by address index: %+v", hits)
	}
}

func TestCoordinateSurfacesFirstError(t *testing.T) {
	var o Orchestrator
	events := make(chan Event, 4)
	done := make(chan struct{})

	events <- Event{Kind: EventError, Err: errTest("first")}
	events <- Event{Kind: EventError, Err: errTest("second")}
	close(done)

	_, err := o.coordinate(events, done, 10)
	if err == nil || err.Error() != "first" {
		t.Fatalf("coordinate error = %v, want \"first\"", err)
	}
}

func TestCoordinateAggregatesDroppedHits(t *testing.T) {
	var o Orchestrator
	events := make(chan Event, 4)
	done := make(chan struct{})

	events <- Event{Kind: EventStats, Stats: DeviceStats{Device: 0, HitsDroppedTotal: 3}}
	events <- Event{Kind: EventStats, Stats: DeviceStats{Device: 1, HitsDroppedTotal: 5}}
	close(done)

	if _, err := o.coordinate(events, done, 1); err != nil {
		t.Fatalf("coordinate returned error: %v", err)
	}
	if got := o.HitsDroppedTotal(); got != 8 {
		t.Errorf("HitsDroppedTotal() = %d, want 8", got)
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }

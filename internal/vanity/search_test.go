package vanity

import (
	"testing"
	"time"

	"github.com/Asylian21/erg-vanity-gpu/internal/address"
	"github.com/Asylian21/erg-vanity-gpu/internal/matcher"
)

func TestEntropyFromCounterIsDeterministic(t *testing.T) {
	var salt [32]byte
	copy(salt[:], []byte("deterministic-salt-for-testing!"))

	a := EntropyFromCounter(7, salt)
	b := EntropyFromCounter(7, salt)
	if a != b {
		t.Errorf("EntropyFromCounter(7, salt) not deterministic: %x vs %x", a, b)
	}
}

func TestEntropyFromCounterDiffersByCounter(t *testing.T) {
	var salt [32]byte
	copy(salt[:], []byte("another-fixed-salt-for-testing!"))

	a := EntropyFromCounter(1, salt)
	b := EntropyFromCounter(2, salt)
	if a == b {
		t.Errorf("different counters produced the same entropy")
	}
}

func TestSearchWithSaltFindsEasyPattern(t *testing.T) {
	bank, err := matcher.NewBank([]string{"9e"}, false)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	var salt [32]byte
	copy(salt[:], []byte("easy-pattern-search-salt-value!"))

	stop := make(chan struct{})
	result, err := SearchCPUWithSalt(bank, address.Mainnet, salt, 4, stop)
	if err != nil {
		t.Fatalf("SearchCPUWithSalt: %v", err)
	}
	if result.Match == nil {
		t.Fatalf("expected a match for a 2-character pattern, got none after %d attempts", result.Attempts)
	}
	if idx := bank.MatchIndex(result.Match.Address); idx < 0 {
		t.Errorf("reported match %q does not actually match the bank", result.Match.Address)
	}
	if result.Attempts == 0 {
		t.Errorf("expected nonzero attempts")
	}
}

func TestSearchWithSaltStopsOnSignal(t *testing.T) {
	bank, err := matcher.NewBank([]string{"9eabcdefghij"}, false)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	var salt [32]byte
	copy(salt[:], []byte("stop-signal-cancellation-salt!!"))

	stop := make(chan struct{})
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(stop)
	}()

	result, err := SearchCPUWithSalt(bank, address.Mainnet, salt, 2, stop)
	if err != nil {
		t.Fatalf("SearchCPUWithSalt: %v", err)
	}
	if result.Match != nil {
		t.Fatalf("pattern is astronomically unlikely within the stop window, got a match: %+v", result.Match)
	}
}

func TestSearchWithSaltDeterministicGivenSameSalt(t *testing.T) {
	bank, err := matcher.NewBank([]string{"9f"}, false)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	var salt [32]byte
	copy(salt[:], []byte("repeatable-search-salt-value!!!"))

	stop := make(chan struct{})
	a, err := SearchCPUWithSalt(bank, address.Mainnet, salt, 1, stop)
	if err != nil {
		t.Fatalf("SearchCPUWithSalt: %v", err)
	}
	if a.Match == nil {
		t.Fatalf("expected a match")
	}

	stop2 := make(chan struct{})
	b, err := SearchCPUWithSalt(bank, address.Mainnet, salt, 1, stop2)
	if err != nil {
		t.Fatalf("SearchCPUWithSalt: %v", err)
	}
	if b.Match == nil || a.Match.Address != b.Match.Address || a.Attempts != b.Attempts {
		t.Errorf("single-worker search over the same salt should be fully deterministic: %+v vs %+v", a, b)
	}
}

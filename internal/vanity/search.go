package vanity

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/Asylian21/erg-vanity-gpu/internal/address"
	"github.com/Asylian21/erg-vanity-gpu/internal/matcher"
	"github.com/Asylian21/erg-vanity-gpu/internal/primitives"
)

// searchBatchSize is the number of counter values a single goroutine
// claims from the shared atomic counter per round trip, amortizing the
// cost of the atomic operation across many candidates.
const searchBatchSize = 1000

// SearchResult is the outcome of a CPU reference search: either a
// GeneratedAddress matching one of the bank's patterns, or none if the
// search was stopped first. Attempts counts every candidate entropy
// tried, successful or not.
type SearchResult struct {
	Match    *GeneratedAddress
	Attempts uint64
}

// EntropyFromCounter derives the 32-byte entropy for one candidate as
// Blake2b-256(salt || counter_le_u64), the same construction every
// device work item and every host worker uses so their candidate
// streams agree bit for bit given the same (salt, counter).
func EntropyFromCounter(counter uint64, salt [32]byte) [32]byte {
	var buf [40]byte
	copy(buf[:32], salt[:])
	binary.LittleEndian.PutUint64(buf[32:], counter)
	return primitives.Blake2b256(buf[:])
}

// SearchCPU runs a CPU reference search for bank's patterns on network,
// using a fresh random salt, stopping when stop is closed or a match is
// found. It is a correctness oracle for the device kernel, not the
// production search path (that lives in internal/orchestrator, driving
// internal/gpu pipelines); workers here are plain goroutines rather
// than a GPU batch.
func SearchCPU(bank *matcher.Bank, network address.Network, workers int, stop <-chan struct{}) (SearchResult, error) {
	var salt [32]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return SearchResult{}, err
	}
	return SearchCPUWithSalt(bank, network, salt, workers, stop)
}

// SearchCPUWithSalt is SearchCPU with an explicit salt, letting tests drive a
// deterministic candidate stream.
func SearchCPUWithSalt(bank *matcher.Bank, network address.Network, salt [32]byte, workers int, stop <-chan struct{}) (SearchResult, error) {
	if workers < 1 {
		workers = 1
	}

	var counter uint64
	var attempts uint64
	var found atomic.Bool
	var mu sync.Mutex
	var match *GeneratedAddress

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if found.Load() {
					return
				}

				base := atomic.AddUint64(&counter, searchBatchSize) - searchBatchSize
				for i := uint64(0); i < searchBatchSize; i++ {
					if found.Load() {
						return
					}
					select {
					case <-stop:
						return
					default:
					}

					c := base + i
					atomic.AddUint64(&attempts, 1)

					entropy := EntropyFromCounter(c, salt)
					candidate, err := GenerateAddressFromEntropy(entropy[:], network)
					if err != nil {
						continue
					}
					if bank.MatchIndex(candidate.Address) < 0 {
						continue
					}

					if found.CompareAndSwap(false, true) {
						mu.Lock()
						match = &candidate
						mu.Unlock()
					}
					return
				}
			}
		}()
	}
	wg.Wait()

	return SearchResult{Match: match, Attempts: atomic.LoadUint64(&attempts)}, nil
}

package orchestrator

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// reportStats is a direct generalization of the teacher's
// statsReporter: a time.Ticker fires once per second (the teacher used
// ten), printing a carriage-returned progress line to stderr with the
// overall and current rate, until done closes.
func reportStats(counter *uint64, done <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	start := time.Now()
	var lastCount uint64
	lastTime := start

	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			total := atomic.LoadUint64(counter)
			elapsed := now.Sub(start).Seconds()
			interval := now.Sub(lastTime).Seconds()

			overallRate := float64(0)
			if elapsed > 0 {
				overallRate = float64(total) / elapsed
			}
			currentRate := float64(0)
			if interval > 0 {
				currentRate = float64(total-lastCount) / interval
			}

			fmt.Fprintf(os.Stderr, "\rchecked: %d  rate: %.0f/s  avg: %.0f/s  elapsed: %.0fs",
				total, currentRate, overallRate, elapsed)

			lastCount = total
			lastTime = now
		}
	}
}

package domain

import "github.com/jonboulle/clockwork"

// clock stamps QualityReport.GeneratedAt. Production uses the real
// clock; tests inject a fake via SetClock for deterministic reports.
var clock = clockwork.NewRealClock()

// SetClock swaps the transform's time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

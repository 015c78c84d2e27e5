package crawler

import "time"

// Delay paces sampling behind block production: sampling of a block starts
// no earlier than Duration after the block was received. It is purely
// additive latency, never an error and never a shortcut.
type Delay struct {
	Duration time.Duration
}

// SleepDuration returns how much longer to wait so that the gap between
// block receipt and sampling start equals the configured duration. It
// returns zero when no delay is configured or the delay already elapsed.
func (d Delay) SleepDuration(receivedAt time.Time) time.Duration {
	if d.Duration <= 0 {
		return 0
	}
	wait := d.Duration - time.Since(receivedAt)
	if wait < 0 {
		return 0
	}
	return wait
}

// Package schedule decides when a telemetry transmission cycle is due. The
// transmission cadence is independent of the acquisition cadence: sampling
// runs every loop tick, transmission only once per interval.
package schedule

import "time"

// DefaultSendInterval is how often a telemetry record is transmitted.
const DefaultSendInterval = 2 * time.Second

// Scheduler tracks the last transmission time and signals when the interval
// has elapsed. It does not catch up on missed intervals: if the loop stalls
// past several intervals, only one cycle fires on the next check. Not safe
// for concurrent use.
type Scheduler struct {
	interval time.Duration
	lastSend time.Time
}

// New creates a Scheduler. The first cycle becomes due one interval after
// start.
func New(interval time.Duration, start time.Time) *Scheduler {
	return &Scheduler{
		interval: interval,
		lastSend: start,
	}
}

// Tick reports whether a transmission cycle is due at now. When it is, the
// last-send timestamp advances to now, so repeated calls within the same
// interval report due at most once.
func (s *Scheduler) Tick(now time.Time) bool {
	if now.Sub(s.lastSend) < s.interval {
		return false
	}
	s.lastSend = now
	return true
}

// LastSend returns the timestamp of the most recent due cycle (or the start
// time before the first one).
func (s *Scheduler) LastSend() time.Time {
	return s.lastSend
}

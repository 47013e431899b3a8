// Package status provides a thread-safe status tracker for the blinkband
// daemon. The acquisition loop writes it; the HTTP status server reads it.
package status

import (
	"sync"
	"time"

	"github.com/yudhisthereal/blinkband/internal/netlink"
	"github.com/yudhisthereal/blinkband/internal/ppg"
)

// Config contains daemon configuration for display.
type Config struct {
	DeviceID       string
	CollectorURL   string
	MQTTBroker     string
	HTTPAddr       string
	PollMs         int64
	SendIntervalMs int64
}

// SendCounts tallies transmission outcomes since startup.
type SendCounts struct {
	OK         int
	Failed     int
	LastStatus int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Raw         ppg.SmoothedReading
	Norm        ppg.NormalizedSignal
	Temperature float64
	Motion      float64
	Link        netlink.State
	Sends       SendCounts
	StartTime   time.Time
	Now         time.Time
	Config      Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Link:      netlink.Disconnected,
			Config:    cfg,
		},
	}
}

// UpdateReading sets the current processed values.
// Called from the acquisition loop on every tick.
func (t *Tracker) UpdateReading(raw ppg.SmoothedReading, norm ppg.NormalizedSignal, temperature, motion float64) {
	t.mu.Lock()
	t.snap.Raw = raw
	t.snap.Norm = norm
	t.snap.Temperature = temperature
	t.snap.Motion = motion
	t.mu.Unlock()
}

// SetLink sets the connectivity state.
func (t *Tracker) SetLink(state netlink.State) {
	t.mu.Lock()
	t.snap.Link = state
	t.mu.Unlock()
}

// RecordSend tallies one transmission outcome.
func (t *Tracker) RecordSend(httpStatus int, ok bool) {
	t.mu.Lock()
	if ok {
		t.snap.Sends.OK++
	} else {
		t.snap.Sends.Failed++
	}
	t.snap.Sends.LastStatus = httpStatus
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}

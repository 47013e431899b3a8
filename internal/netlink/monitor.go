package netlink

import (
	"log"
	"time"
)

// Reconnect retry budget: poll the radio twenty times at half-second
// spacing before giving up until the next loop pass.
const (
	DefaultReconnectAttempts = 20
	DefaultReconnectDelay    = 500 * time.Millisecond
)

// Monitor checks link status before each telemetry cycle and drives a
// blocking reconnect with a bounded retry budget when the link is down.
// Exhausting the budget is non-fatal: the monitor stays Disconnected and the
// caller's loop carries on, retrying on its next pass. Not safe for
// concurrent use.
type Monitor struct {
	link     Link
	creds    Credentials
	attempts int
	delay    time.Duration
	sleep    func(time.Duration)
	state    State
}

// NewMonitor creates a Monitor over the given link. A nil sleep uses
// time.Sleep; tests inject their own to avoid wall-clock waits.
func NewMonitor(link Link, creds Credentials, attempts int, delay time.Duration, sleep func(time.Duration)) *Monitor {
	if attempts <= 0 {
		attempts = DefaultReconnectAttempts
	}
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Monitor{
		link:     link,
		creds:    creds,
		attempts: attempts,
		delay:    delay,
		sleep:    sleep,
		state:    Disconnected,
	}
}

// Check returns the current link state, reconnecting first if the link is
// down. Reconnection blocks until it succeeds or the retry budget runs out;
// while it runs no sampling happens, an accepted cost bounded by
// attempts*delay.
func (m *Monitor) Check() State {
	if m.link.Up() {
		if m.state != Connected {
			log.Printf("link up, addr=%s", m.link.LocalAddr())
		}
		m.state = Connected
		return m.state
	}

	if m.state == Connected {
		log.Printf("link down, reconnecting to %q", m.creds.SSID)
	}
	m.state = Reconnecting

	for i := 0; i < m.attempts; i++ {
		if m.link.Connect(m.creds) {
			m.state = Connected
			log.Printf("link reconnected, addr=%s", m.link.LocalAddr())
			return m.state
		}
		m.sleep(m.delay)
	}

	m.state = Disconnected
	log.Printf("reconnect failed after %d attempts", m.attempts)
	return m.state
}

// State returns the state observed by the last Check.
func (m *Monitor) State() State {
	return m.state
}

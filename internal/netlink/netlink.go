// Package netlink provides the network link collaborator with hardware
// abstraction, plus the connectivity monitor that drives bounded reconnect
// retries. The real implementation manages WiFi through NetworkManager; the
// fake allows testing without a network.
package netlink

// State is the link state as seen by the monitor.
type State string

// Link states. Reconnecting is only observable while a retry budget is being
// spent.
const (
	Connected    State = "CONNECTED"
	Disconnected State = "DISCONNECTED"
	Reconnecting State = "RECONNECTING"
)

// Credentials identify the WiFi network to join.
type Credentials struct {
	SSID     string
	Password string
}

// Link is the network interface collaborator.
type Link interface {
	// Connect attempts to join the network with the given credentials and
	// reports whether the link came up. It never returns an error: a failed
	// attempt is an expected outcome, handled by the monitor's retry budget.
	Connect(creds Credentials) bool

	// Up reports whether the link is currently connected.
	Up() bool

	// LocalAddr returns the assigned IP address, or empty while down.
	LocalAddr() string
}

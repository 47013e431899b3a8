// Package led drives the node's link-state indicator LED with hardware
// abstraction. The real implementation uses the Linux GPIO character device;
// the fake allows testing without hardware.
package led

// DefaultPin is the BCM pin wired to the link LED.
const DefaultPin = 17

// Indicator drives the link LED.
type Indicator interface {
	// SetLinkUp lights the LED when the network link is up.
	SetLinkUp(up bool) error

	// Close releases GPIO resources, leaving the LED off.
	Close() error
}

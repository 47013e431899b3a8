//go:build linux

package led

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealIndicator drives an LED on actual hardware using the Linux GPIO
// character device.
type RealIndicator struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealIndicator requests the given BCM pin as an output, initially off.
func NewRealIndicator(pin int) (*RealIndicator, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request led pin %d: %w", pin, err)
	}

	return &RealIndicator{
		chip: chip,
		line: line,
	}, nil
}

// SetLinkUp lights the LED when up is true.
func (r *RealIndicator) SetLinkUp(up bool) error {
	v := 0
	if up {
		v = 1
	}
	if err := r.line.SetValue(v); err != nil {
		return fmt.Errorf("set led pin: %w", err)
	}
	return nil
}

// Close turns the LED off and releases GPIO resources.
func (r *RealIndicator) Close() error {
	var errs []error

	if r.line != nil {
		if err := r.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear led pin: %w", err))
		}
		if err := r.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close led pin: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

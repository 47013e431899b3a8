// Package sensor provides the MAX30102 pulse-oximetry collaborator with
// hardware abstraction. The real implementation talks to the sensor board
// over a serial line; the fake allows testing without hardware.
package sensor

import (
	"fmt"
	"time"
)

// Config mirrors the MAX30102 acquisition setup registers.
type Config struct {
	Brightness    int // LED drive, 0..255
	SampleAverage int // on-chip sample averaging: 1,2,4,8,16,32
	LEDMode       int // 1 = red only, 2 = red + IR
	SampleRate    int // Hz: 50..3200
	PulseWidth    int // µs: 69,118,215,411
	ADCRange      int // 2048,4096,8192,16384
}

// DefaultConfig returns the deployment tuning for the MAX30102.
func DefaultConfig() Config {
	return Config{
		Brightness:    0x1F,
		SampleAverage: 4,
		LEDMode:       2,
		SampleRate:    100,
		PulseWidth:    411,
		ADCRange:      4096,
	}
}

// ContactThreshold is the IR level treated as "sensor is in contact with
// skin". Below it the readings are ambient light, not a pulse signal.
const ContactThreshold = 50000

// ContactPoll is the delay between contact-wait probes.
const ContactPoll = 100 * time.Millisecond

// Reader reads raw PPG samples and die temperature from the sensor.
type Reader interface {
	// Setup applies the acquisition configuration. Must be called once
	// before sampling.
	Setup(cfg Config) error

	// RedSample returns the current raw red intensity.
	RedSample() (int64, error)

	// IRSample returns the current raw IR intensity.
	IRSample() (int64, error)

	// Temperature returns the die temperature in °C.
	Temperature() (float64, error)

	// Close releases the underlying device.
	Close() error
}

// WaitForContact blocks until the IR level reaches threshold, probing every
// poll. A nil sleep uses time.Sleep; tests inject their own. A read error
// aborts the wait — without a working sensor there is nothing to wait for.
func WaitForContact(r Reader, threshold int64, poll time.Duration, sleep func(time.Duration)) error {
	if sleep == nil {
		sleep = time.Sleep
	}
	for {
		ir, err := r.IRSample()
		if err != nil {
			return fmt.Errorf("ir sample: %w", err)
		}
		if ir >= threshold {
			return nil
		}
		sleep(poll)
	}
}

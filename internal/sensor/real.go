package sensor

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.bug.st/serial"
)

// DefaultDevice is the usual serial device for the sensor board on a Pi.
const DefaultDevice = "/dev/ttyACM0"

// DefaultBaud matches the board firmware's serial console rate.
const DefaultBaud = 115200

// RealReader drives the MAX30102 breakout over a serial line. The attached
// board firmware answers one request per line:
//
//	SETUP <brightness> <avg> <mode> <rate> <width> <adc>  → OK
//	RED?                                                  → <integer>
//	IR?                                                   → <integer>
//	TEMP?                                                 → <float>
//
// Any reply starting with ERR is a device-side failure.
type RealReader struct {
	port serial.Port
	r    *bufio.Reader
}

// NewRealReader opens the serial device. Failure here means the sensor is
// absent, which is fatal for the node.
func NewRealReader(device string, baud int) (*RealReader, error) {
	if device == "" {
		device = DefaultDevice
	}
	if baud <= 0 {
		baud = DefaultBaud
	}

	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open sensor port %s: %w", device, err)
	}
	if err := port.SetReadTimeout(2 * time.Second); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}

	return &RealReader{
		port: port,
		r:    bufio.NewReader(port),
	}, nil
}

// Setup applies the acquisition configuration to the sensor.
func (s *RealReader) Setup(cfg Config) error {
	cmd := fmt.Sprintf("SETUP %d %d %d %d %d %d",
		cfg.Brightness, cfg.SampleAverage, cfg.LEDMode,
		cfg.SampleRate, cfg.PulseWidth, cfg.ADCRange)
	reply, err := s.command(cmd)
	if err != nil {
		return err
	}
	if reply != "OK" {
		return fmt.Errorf("setup rejected: %q", reply)
	}
	return nil
}

// RedSample returns the current raw red intensity.
func (s *RealReader) RedSample() (int64, error) {
	return s.intQuery("RED?")
}

// IRSample returns the current raw IR intensity.
func (s *RealReader) IRSample() (int64, error) {
	return s.intQuery("IR?")
}

// Temperature returns the die temperature in °C.
func (s *RealReader) Temperature() (float64, error) {
	reply, err := s.command("TEMP?")
	if err != nil {
		return 0, err
	}
	t, err := strconv.ParseFloat(reply, 64)
	if err != nil {
		return 0, fmt.Errorf("parse temperature %q: %w", reply, err)
	}
	return t, nil
}

// Close releases the serial port.
func (s *RealReader) Close() error {
	return s.port.Close()
}

func (s *RealReader) intQuery(cmd string) (int64, error) {
	reply, err := s.command(cmd)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(reply, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s reply %q: %w", cmd, reply, err)
	}
	return v, nil
}

func (s *RealReader) command(cmd string) (string, error) {
	if _, err := s.port.Write([]byte(cmd + "\n")); err != nil {
		return "", fmt.Errorf("write %q: %w", cmd, err)
	}
	line, err := s.r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read reply to %q: %w", cmd, err)
	}
	reply := strings.TrimSpace(line)
	if reply == "" || strings.HasPrefix(reply, "ERR") {
		return "", fmt.Errorf("sensor reply to %q: %q", cmd, reply)
	}
	return reply, nil
}

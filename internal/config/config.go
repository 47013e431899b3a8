// Package config loads the node configuration from a YAML file. Missing
// files fall back to the deployment defaults so a bare node still runs.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the node configuration.
type Config struct {
	DeviceID    string            `yaml:"device_id"`
	Collector   CollectorConfig   `yaml:"collector"`
	MQTT        MQTTConfig        `yaml:"mqtt"`
	WiFi        WiFiConfig        `yaml:"wifi"`
	Sensor      SensorConfig      `yaml:"sensor"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Timing      TimingConfig      `yaml:"timing"`
}

// CollectorConfig identifies the HTTP ingest endpoint.
type CollectorConfig struct {
	URL string `yaml:"url"`
}

// MQTTConfig configures the optional MQTT telemetry sink.
// An empty broker disables it.
type MQTTConfig struct {
	Broker string `yaml:"broker"`
	Topic  string `yaml:"topic"`
}

// WiFiConfig contains the network credentials.
type WiFiConfig struct {
	SSID     string `yaml:"ssid"`
	Password string `yaml:"password"`
}

// SensorConfig contains the serial device and MAX30102 setup parameters.
type SensorConfig struct {
	Device           string `yaml:"device"`
	Baud             int    `yaml:"baud"`
	Brightness       int    `yaml:"brightness"`
	SampleAverage    int    `yaml:"sample_average"`
	LEDMode          int    `yaml:"led_mode"`
	SampleRate       int    `yaml:"sample_rate"`
	PulseWidth       int    `yaml:"pulse_width"`
	ADCRange         int    `yaml:"adc_range"`
	ContactThreshold int64  `yaml:"contact_threshold"`
}

// CalibrationConfig contains the fixed normalization bounds, pre-tuned per
// deployment.
type CalibrationConfig struct {
	RedMin int64 `yaml:"red_min"`
	RedMax int64 `yaml:"red_max"`
	IRMin  int64 `yaml:"ir_min"`
	IRMax  int64 `yaml:"ir_max"`
}

// TimingConfig contains the loop cadences and the reconnect budget.
type TimingConfig struct {
	Poll              time.Duration `yaml:"poll"`
	SendInterval      time.Duration `yaml:"send_interval"`
	ReconnectAttempts int           `yaml:"reconnect_attempts"`
	ReconnectDelay    time.Duration `yaml:"reconnect_delay"`
}

// Default returns the deployment defaults, matching the original ESP32
// firmware constants.
func Default() *Config {
	return &Config{
		DeviceID: "esp32_max30102",
		Collector: CollectorConfig{
			URL: "http://yudhistiramisu9.pythonanywhere.com/api/sensor-data",
		},
		MQTT: MQTTConfig{
			Topic: "blinkband/telemetry",
		},
		Sensor: SensorConfig{
			Device:           "/dev/ttyACM0",
			Baud:             115200,
			Brightness:       0x1F,
			SampleAverage:    4,
			LEDMode:          2,
			SampleRate:       100,
			PulseWidth:       411,
			ADCRange:         4096,
			ContactThreshold: 50000,
		},
		Calibration: CalibrationConfig{
			RedMin: 5000,
			RedMax: 100000,
			IRMin:  10000,
			IRMax:  150000,
		},
		Timing: TimingConfig{
			Poll:              100 * time.Millisecond,
			SendInterval:      2 * time.Second,
			ReconnectAttempts: 20,
			ReconnectDelay:    500 * time.Millisecond,
		},
	}
}

// Load reads the configuration from path. A missing file returns the
// defaults; an unreadable or invalid file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

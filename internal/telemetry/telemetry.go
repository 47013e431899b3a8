// Package telemetry builds the node's periodic telemetry record and sends it
// to the collector, with abstraction for testing.
package telemetry

import (
	"time"

	"github.com/yudhisthereal/blinkband/internal/ppg"
)

// DefaultDeviceID identifies this node to the collector.
const DefaultDeviceID = "esp32_max30102"

// Record is the outbound wire payload. Field names are fixed by the
// collector's ingest API — do not rename.
type Record struct {
	RedSignal   float64 `json:"red_signal"`
	IRSignal    float64 `json:"ir_signal"`
	Temperature float64 `json:"temperature"`
	Motion      float64 `json:"motion"`
	DeviceID    string  `json:"device_id"`
	RawRed      int64   `json:"raw_red"`
	RawIR       int64   `json:"raw_ir"`
	Timestamp   int64   `json:"timestamp"` // whole seconds since process start
}

// BuildRecord packages one transmission cycle's processed values. It is pure:
// the record is immutable once built and consumed exactly once by a sender.
func BuildRecord(norm ppg.NormalizedSignal, temperature, motion float64, raw ppg.SmoothedReading, deviceID string, now, start time.Time) Record {
	return Record{
		RedSignal:   norm.Red,
		IRSignal:    norm.IR,
		Temperature: temperature,
		Motion:      motion,
		DeviceID:    deviceID,
		RawRed:      raw.Red,
		RawIR:       raw.IR,
		Timestamp:   int64(now.Sub(start) / time.Second),
	}
}

// SendResult reports the transport outcome for one record.
type SendResult struct {
	Status int
	Body   string
}

// OK reports whether the collector accepted the record.
func (r SendResult) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Sender delivers records to a collector. A failed send is logged by the
// caller and dropped; the next scheduled cycle is the retry mechanism.
type Sender interface {
	// Send delivers one record. A transport-level failure returns an error;
	// a collector rejection comes back as a non-2xx SendResult.
	Send(rec Record) (SendResult, error)

	// Close releases transport resources.
	Close() error
}

package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details. This is diagnostic output for
// humans and dashboards, not the collector wire format.
type StatusInner struct {
	DeviceID      string     `json:"device_id"`
	Link          string     `json:"link"`
	RawRed        int64      `json:"raw_red"`
	RawIR         int64      `json:"raw_ir"`
	RedSignal     float64    `json:"red_signal"`
	IRSignal      float64    `json:"ir_signal"`
	Temperature   float64    `json:"temperature"`
	Motion        float64    `json:"motion"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	Sends         SendsJSON  `json:"sends"`
	Config        ConfigJSON `json:"config"`
}

// SendsJSON is the JSON representation of transmission counters.
type SendsJSON struct {
	OK         int `json:"ok"`
	Failed     int `json:"failed"`
	LastStatus int `json:"last_status"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	CollectorURL   string `json:"collector_url"`
	MQTTBroker     string `json:"mqtt_broker,omitempty"`
	HTTPAddr       string `json:"http_addr"`
	PollMs         int64  `json:"poll_ms"`
	SendIntervalMs int64  `json:"send_interval_ms"`
}

// FormatJSON returns the indented JSON status for the web endpoint.
func FormatJSON(snap Snapshot) []byte {
	inner := StatusInner{
		DeviceID:      snap.Config.DeviceID,
		Link:          string(snap.Link),
		RawRed:        snap.Raw.Red,
		RawIR:         snap.Raw.IR,
		RedSignal:     snap.Norm.Red,
		IRSignal:      snap.Norm.IR,
		Temperature:   snap.Temperature,
		Motion:        snap.Motion,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Sends: SendsJSON{
			OK:         snap.Sends.OK,
			Failed:     snap.Sends.Failed,
			LastStatus: snap.Sends.LastStatus,
		},
		Config: ConfigJSON{
			CollectorURL:   snap.Config.CollectorURL,
			MQTTBroker:     snap.Config.MQTTBroker,
			HTTPAddr:       snap.Config.HTTPAddr,
			PollMs:         snap.Config.PollMs,
			SendIntervalMs: snap.Config.SendIntervalMs,
		},
	}

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

package telemetry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseBody caps how much of a collector reply is kept for logging.
const maxResponseBody = 4096

// HTTPSender posts records as JSON to the collector's ingest URL.
// One synchronous POST per cycle; no pooling or retry beyond what the
// next scheduled cycle provides.
type HTTPSender struct {
	url    string
	client *http.Client
}

// NewHTTPSender creates a sender for the given ingest URL.
func NewHTTPSender(url string) *HTTPSender {
	return &HTTPSender{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send posts the record with Content-Type: application/json.
func (s *HTTPSender) Send(rec Record) (SendResult, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return SendResult{}, fmt.Errorf("marshal record: %w", err)
	}

	resp, err := s.client.Post(s.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return SendResult{}, fmt.Errorf("post record: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return SendResult{Status: resp.StatusCode}, fmt.Errorf("read response: %w", err)
	}

	return SendResult{Status: resp.StatusCode, Body: string(body)}, nil
}

// Close releases idle connections.
func (s *HTTPSender) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

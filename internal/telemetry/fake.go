package telemetry

import "encoding/json"

// FakeSender records sent records for test assertions.
type FakeSender struct {
	// Records contains all records passed to Send.
	Records []Record

	// Payloads contains the JSON encodings of those records.
	Payloads [][]byte

	// Result is returned by Send. A zero Status is reported as 200.
	Result SendResult

	// SendError, if set, will be returned by Send.
	SendError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeSender creates a FakeSender for testing.
func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

// Send records the record.
func (f *FakeSender) Send(rec Record) (SendResult, error) {
	if f.SendError != nil {
		return SendResult{}, f.SendError
	}

	f.Records = append(f.Records, rec)

	payload, err := json.Marshal(rec)
	if err != nil {
		return SendResult{}, err
	}
	f.Payloads = append(f.Payloads, payload)

	res := f.Result
	if res.Status == 0 {
		res.Status = 200
	}
	return res, nil
}

// Close marks the sender as closed.
func (f *FakeSender) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded records.
func (f *FakeSender) Reset() {
	f.Records = nil
	f.Payloads = nil
	f.Result = SendResult{}
	f.SendError = nil
	f.Closed = false
}

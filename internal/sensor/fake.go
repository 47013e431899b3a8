package sensor

import "errors"

// FakeReader is a test double that returns scripted sensor values.
// Each sequence is consumed one value per call; when exhausted, the last
// value repeats.
type FakeReader struct {
	// Reds, IRs, and Temps contain scripted readings per channel.
	Reds  []int64
	IRs   []int64
	Temps []float64

	// SetupConfig records the config passed to Setup.
	SetupConfig *Config

	// SetupError, if set, will be returned by Setup.
	SetupError error

	// ReadError, if set, will be returned by every sample read.
	ReadError error

	// Closed tracks if Close was called.
	Closed bool

	redIdx  int
	irIdx   int
	tempIdx int
}

// NewFakeReader creates a FakeReader with the given scripted channel values.
func NewFakeReader(reds, irs []int64, temps []float64) *FakeReader {
	return &FakeReader{Reds: reds, IRs: irs, Temps: temps}
}

// Setup records the configuration.
func (f *FakeReader) Setup(cfg Config) error {
	if f.SetupError != nil {
		return f.SetupError
	}
	f.SetupConfig = &cfg
	return nil
}

// RedSample returns the next scripted red value.
func (f *FakeReader) RedSample() (int64, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	return nextInt(f.Reds, &f.redIdx)
}

// IRSample returns the next scripted IR value.
func (f *FakeReader) IRSample() (int64, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	return nextInt(f.IRs, &f.irIdx)
}

// Temperature returns the next scripted temperature.
func (f *FakeReader) Temperature() (float64, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Temps) == 0 {
		return 0, errors.New("no temperatures configured")
	}
	v := f.Temps[f.tempIdx]
	if f.tempIdx < len(f.Temps)-1 {
		f.tempIdx++
	}
	return v, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

func nextInt(vals []int64, idx *int) (int64, error) {
	if len(vals) == 0 {
		return 0, errors.New("no samples configured")
	}
	v := vals[*idx]
	if *idx < len(vals)-1 {
		*idx++
	}
	return v, nil
}

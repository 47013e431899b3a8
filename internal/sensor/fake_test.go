package sensor

import (
	"errors"
	"testing"
	"time"
)

func TestFakeReaderSamples(t *testing.T) {
	f := NewFakeReader([]int64{100, 200}, []int64{1000, 2000}, []float64{36.5})

	red, err := f.RedSample()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if red != 100 {
		t.Errorf("red 0: got %d, want 100", red)
	}

	red, _ = f.RedSample()
	if red != 200 {
		t.Errorf("red 1: got %d, want 200", red)
	}

	// Exhausted sequence repeats the last value.
	red, _ = f.RedSample()
	if red != 200 {
		t.Errorf("red 2 (repeat): got %d, want 200", red)
	}

	ir, err := f.IRSample()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ir != 1000 {
		t.Errorf("ir 0: got %d, want 1000", ir)
	}

	temp, err := f.Temperature()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if temp != 36.5 {
		t.Errorf("temp: got %v, want 36.5", temp)
	}
}

func TestFakeReaderNoSamples(t *testing.T) {
	f := NewFakeReader(nil, nil, nil)

	if _, err := f.RedSample(); err == nil {
		t.Error("expected error with no red samples")
	}
	if _, err := f.Temperature(); err == nil {
		t.Error("expected error with no temperatures")
	}
}

func TestFakeReaderError(t *testing.T) {
	f := NewFakeReader([]int64{1}, []int64{1}, []float64{1})
	f.ReadError = errors.New("simulated fault")

	if _, err := f.IRSample(); err == nil {
		t.Error("expected read error to be returned")
	}
}

func TestFakeReaderSetup(t *testing.T) {
	f := NewFakeReader(nil, nil, nil)
	cfg := DefaultConfig()

	if err := f.Setup(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.SetupConfig == nil || *f.SetupConfig != cfg {
		t.Errorf("recorded config: got %+v, want %+v", f.SetupConfig, cfg)
	}
}

func TestWaitForContact(t *testing.T) {
	// Three probes below threshold, then contact.
	f := NewFakeReader(nil, []int64{100, 30000, 49999, 50000}, nil)

	var sleeps int
	err := WaitForContact(f, ContactThreshold, ContactPoll, func(d time.Duration) {
		if d != ContactPoll {
			t.Errorf("sleep: got %v, want %v", d, ContactPoll)
		}
		sleeps++
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sleeps != 3 {
		t.Errorf("probe sleeps: got %d, want 3", sleeps)
	}
}

func TestWaitForContactReadError(t *testing.T) {
	f := NewFakeReader(nil, []int64{100}, nil)
	f.ReadError = errors.New("sensor gone")

	err := WaitForContact(f, ContactThreshold, ContactPoll, func(time.Duration) {})
	if err == nil {
		t.Error("expected error when sensor read fails")
	}
}

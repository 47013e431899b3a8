package ppg

import (
	"errors"
	"math"
	"testing"
	"time"
)

// fakeTemp returns scripted temperature readings. Exhausted readings repeat
// the last value.
type fakeTemp struct {
	temps []float64
	err   error
	calls int
}

func (f *fakeTemp) Temperature() (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	if len(f.temps) == 0 {
		return 0, errors.New("no temperatures configured")
	}
	i := f.calls - 1
	if i >= len(f.temps) {
		i = len(f.temps) - 1
	}
	return f.temps[i], nil
}

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestIngestReturnsWindowAverages(t *testing.T) {
	p := NewProcessor(&fakeTemp{temps: []float64{36.5}}, t0)

	var last SmoothedReading
	for i := 0; i < WindowSize; i++ {
		last = p.Ingest(RawSample{Red: 8000, IR: 60000})
	}

	if last.Red != 8000 {
		t.Errorf("smoothed red: got %d, want 8000", last.Red)
	}
	if last.IR != 60000 {
		t.Errorf("smoothed ir: got %d, want 60000", last.IR)
	}
}

func TestIngestSmoothsSpike(t *testing.T) {
	p := NewProcessor(&fakeTemp{temps: []float64{36.5}}, t0)

	p.Ingest(RawSample{Red: 20000, IR: 0})
	got := p.Ingest(RawSample{Red: 0, IR: 0})

	// 20000 spread over ten slots.
	if got.Red != 2000 {
		t.Errorf("smoothed red after spike: got %d, want 2000", got.Red)
	}
}

func TestTemperatureThrottled(t *testing.T) {
	src := &fakeTemp{temps: []float64{36.5}}
	p := NewProcessor(src, t0)

	// Within the refresh interval the cached (zero) value persists and the
	// sensor is not touched.
	got, err := p.MaybeRefreshTemperature(t0.Add(4 * time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("temperature before first refresh: got %v, want 0", got)
	}
	if src.calls != 0 {
		t.Errorf("sensor read %d times before interval elapsed", src.calls)
	}

	// Past the interval a fresh read happens.
	got, err = p.MaybeRefreshTemperature(t0.Add(6 * time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 36.5 {
		t.Errorf("temperature after refresh: got %v, want 36.5", got)
	}
	if src.calls != 1 {
		t.Errorf("sensor reads: got %d, want 1", src.calls)
	}

	// Immediately after a refresh the cached value is served again.
	got, err = p.MaybeRefreshTemperature(t0.Add(7 * time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 36.5 {
		t.Errorf("cached temperature: got %v, want 36.5", got)
	}
	if src.calls != 1 {
		t.Errorf("sensor reads after cached return: got %d, want 1", src.calls)
	}
}

func TestTemperatureReadErrorKeepsCache(t *testing.T) {
	src := &fakeTemp{temps: []float64{36.5}}
	p := NewProcessor(src, t0)

	if _, err := p.MaybeRefreshTemperature(t0.Add(6 * time.Second)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src.err = errors.New("die temp timeout")
	got, err := p.MaybeRefreshTemperature(t0.Add(12 * time.Second))
	if err == nil {
		t.Error("expected error from failed refresh")
	}
	if got != 36.5 {
		t.Errorf("temperature after failed refresh: got %v, want cached 36.5", got)
	}

	// The failed refresh consumed the interval; the next tick serves cache
	// without another read.
	src.err = nil
	if _, err := p.MaybeRefreshTemperature(t0.Add(13 * time.Second)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls != 2 {
		t.Errorf("sensor reads: got %d, want 2", src.calls)
	}
}

func TestEstimateMotionFirstCallSeedsOnly(t *testing.T) {
	p := NewProcessor(&fakeTemp{temps: []float64{36.5}}, t0)

	if got := p.EstimateMotion(80000); got != 0.3 {
		t.Errorf("estimate after first call: got %v, want 0.3", got)
	}
}

func TestEstimateMotionSecondCall(t *testing.T) {
	p := NewProcessor(&fakeTemp{temps: []float64{36.5}}, t0)

	p.EstimateMotion(80000)
	got := p.EstimateMotion(90000)

	// variation = min(1, 10000/10000) = 1 → 0.8*0.3 + 0.2*1 = 0.44
	if math.Abs(got-0.44) > 1e-9 {
		t.Errorf("estimate after second call: got %v, want 0.44", got)
	}
}

func TestEstimateMotionVariationClamped(t *testing.T) {
	p := NewProcessor(&fakeTemp{temps: []float64{36.5}}, t0)

	p.EstimateMotion(0)
	got := p.EstimateMotion(500000)

	// Huge jump clamps variation to 1, same as the 10000 jump.
	if math.Abs(got-0.44) > 1e-9 {
		t.Errorf("estimate after clamped jump: got %v, want 0.44", got)
	}
}

func TestEstimateMotionConvergesOnConstantStream(t *testing.T) {
	p := NewProcessor(&fakeTemp{temps: []float64{36.5}}, t0)

	p.EstimateMotion(80000)
	prev := p.EstimateMotion(80000)
	for i := 0; i < 50; i++ {
		got := p.EstimateMotion(80000)
		if got >= prev {
			t.Fatalf("step %d: estimate %v did not decrease from %v", i, got, prev)
		}
		if got < 0 {
			t.Fatalf("step %d: estimate %v below 0", i, got)
		}
		prev = got
	}

	// Decays toward zero without reaching it.
	if prev <= 0 || prev >= 0.01 {
		t.Errorf("estimate after 50 constant samples: got %v, want small positive", prev)
	}
}

func TestEstimateMotionStaysInRange(t *testing.T) {
	p := NewProcessor(&fakeTemp{temps: []float64{36.5}}, t0)

	levels := []int64{0, 900000, 0, 900000, 0, 900000}
	for i, ir := range levels {
		got := p.EstimateMotion(ir)
		if got < 0 || got > 1 {
			t.Fatalf("step %d: estimate %v outside [0,1]", i, got)
		}
	}
}

// Package ppg implements the acquisition pipeline: window smoothing of the
// raw PPG channels, throttled temperature refresh, the motion proxy estimate,
// and normalization into the unit range.
package ppg

import "time"

// RawSample is one acquisition tick's intensity pair.
type RawSample struct {
	Red int64
	IR  int64
}

// SmoothedReading is the per-channel window average of recent raw samples.
type SmoothedReading struct {
	Red int64
	IR  int64
}

// TemperatureSource provides die temperature reads. Satisfied by the sensor
// collaborator; narrowed here so the pipeline does not depend on it.
type TemperatureSource interface {
	Temperature() (float64, error)
}

// DefaultTempRefresh is how often the die temperature is re-read. Temperature
// reads stall the sensor, so they run on a much slower cadence than sampling.
const DefaultTempRefresh = 5 * time.Second

// Motion proxy tuning. The proxy approximates wearer motion from IR signal
// variance; there is no inertial sensor on the node.
const (
	motionSeed  = 0.3
	motionDecay = 0.8
	motionGain  = 0.2
	motionScale = 10000.0
)

// Processor consumes raw samples and owns the derived-signal state: the
// smoothing buffer, the cached temperature, and the motion estimator history.
// Not safe for concurrent use — it belongs to the single acquisition loop.
type Processor struct {
	buf  *Buffer
	temp TemperatureSource

	tempRefresh time.Duration
	lastRefresh time.Time
	temperature float64

	motion   float64
	prevIR   int64
	seededIR bool
}

// NewProcessor creates a Processor reading temperature from temp. The first
// temperature refresh happens one refresh interval after start; until then the
// zero value is reported.
func NewProcessor(temp TemperatureSource, start time.Time) *Processor {
	return &Processor{
		buf:         NewBuffer(),
		temp:        temp,
		tempRefresh: DefaultTempRefresh,
		lastRefresh: start,
		motion:      motionSeed,
	}
}

// Ingest pushes the sample into both channel windows and returns the freshly
// recomputed averages.
func (p *Processor) Ingest(s RawSample) SmoothedReading {
	p.buf.Push(Red, s.Red)
	p.buf.Push(IR, s.IR)
	return SmoothedReading{
		Red: p.buf.Average(Red),
		IR:  p.buf.Average(IR),
	}
}

// MaybeRefreshTemperature re-reads the die temperature if the refresh interval
// has elapsed, otherwise it returns the cached value. On a read error the
// cached value is returned alongside the error and the refresh timer still
// advances, so a flaky sensor is retried once per interval, not every tick.
func (p *Processor) MaybeRefreshTemperature(now time.Time) (float64, error) {
	if now.Sub(p.lastRefresh) <= p.tempRefresh {
		return p.temperature, nil
	}
	p.lastRefresh = now

	t, err := p.temp.Temperature()
	if err != nil {
		return p.temperature, err
	}
	p.temperature = t
	return p.temperature, nil
}

// EstimateMotion folds the given IR level into the motion proxy and returns
// the updated estimate. The very first call only seeds the previous-IR state
// and leaves the estimate at its initial value.
func (p *Processor) EstimateMotion(ir int64) float64 {
	if p.seededIR {
		diff := ir - p.prevIR
		if diff < 0 {
			diff = -diff
		}
		variation := clamp01(float64(diff) / motionScale)
		p.motion = clamp01(motionDecay*p.motion + motionGain*variation)
	}
	p.prevIR = ir
	p.seededIR = true
	return p.motion
}

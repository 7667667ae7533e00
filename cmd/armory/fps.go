package main

import "time"

// fpsSmoothing is the weight of the newest frame in the running average.
const fpsSmoothing = 0.1

// fpsMeter tracks the rendered frame rate as an exponential moving average
// of wall-clock frame time.
type fpsMeter struct {
	last time.Time
	avg  time.Duration
}

// frame records a frame drawn at t and returns the smoothed rate.
func (m *fpsMeter) frame(t time.Time) float64 {
	if !m.last.IsZero() {
		dt := t.Sub(m.last)
		if m.avg == 0 {
			m.avg = dt
		} else {
			m.avg += time.Duration(float64(dt-m.avg) * fpsSmoothing)
		}
	}
	m.last = t
	if m.avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(m.avg)
}

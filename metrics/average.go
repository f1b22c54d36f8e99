package metrics

import "github.com/chewxy/math32"

// Average maintains the cumulative running mean of every sample field for one
// phase. After N observations each field equals the arithmetic mean of the N
// samples seen so far, updated incrementally rather than by replaying history.
//
// The four float fields accumulate in single precision. MaxRSS keeps the
// integer mean, which truncates on every update; this matches the historical
// CSV output and is preserved deliberately.
type Average struct {
	UserTime   float32
	SystemTime float32
	CPUUsage   float32
	WallClock  float32
	MaxRSS     int64
	Count      int

	wallClock Spread
}

// Observe merges one sample into the running mean. The accumulator never
// resets mid-run.
func (a *Average) Observe(s Sample) {
	a.Count++
	if a.Count == 1 {
		a.UserTime = s.UserTime
		a.SystemTime = s.SystemTime
		a.CPUUsage = s.CPUUsage
		a.WallClock = s.WallClock
		a.MaxRSS = s.MaxRSS
	} else {
		n := a.Count
		a.UserTime = step(a.UserTime, s.UserTime, n)
		a.SystemTime = step(a.SystemTime, s.SystemTime, n)
		a.CPUUsage = step(a.CPUUsage, s.CPUUsage, n)
		a.WallClock = step(a.WallClock, s.WallClock, n)
		a.MaxRSS = (int64(n-1)*a.MaxRSS + s.MaxRSS) / int64(n)
	}
	a.wallClock.Observe(s.WallClock)
}

// WallClockSpread returns the dispersion of the wall-clock samples observed
// so far.
func (a *Average) WallClockSpread() Spread {
	return a.wallClock
}

// step applies the online mean update for the Nth observation.
func step(avg, v float32, n int) float32 {
	return (float32(n-1)*avg + v) / float32(n)
}

// Spread tracks the dispersion of a single float metric across observations.
type Spread struct {
	min   float32
	max   float32
	sum   float32
	sumSq float32
	count int
}

// Observe records one value.
func (sp *Spread) Observe(v float32) {
	if sp.count == 0 {
		sp.min = v
		sp.max = v
	} else {
		sp.min = math32.Min(sp.min, v)
		sp.max = math32.Max(sp.max, v)
	}
	sp.sum += v
	sp.sumSq += v * v
	sp.count++
}

// Min returns the smallest observed value, or zero before any observation.
func (sp Spread) Min() float32 { return sp.min }

// Max returns the largest observed value, or zero before any observation.
func (sp Spread) Max() float32 { return sp.max }

// StdDev returns the population standard deviation of the observed values.
func (sp Spread) StdDev() float32 {
	if sp.count == 0 {
		return 0
	}
	mean := sp.sum / float32(sp.count)
	variance := sp.sumSq/float32(sp.count) - mean*mean
	if variance < 0 {
		// Single-precision rounding can push a zero variance negative.
		variance = 0
	}
	return math32.Sqrt(variance)
}

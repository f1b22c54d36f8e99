package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageFirstSample(t *testing.T) {
	var avg Average

	sample := Sample{UserTime: 10, SystemTime: 2, CPUUsage: 96.5, WallClock: 12.5, MaxRSS: 40960}
	avg.Observe(sample)

	assert.Equal(t, 1, avg.Count)
	assert.Equal(t, sample.UserTime, avg.UserTime)
	assert.Equal(t, sample.SystemTime, avg.SystemTime)
	assert.Equal(t, sample.CPUUsage, avg.CPUUsage)
	assert.Equal(t, sample.WallClock, avg.WallClock)
	assert.Equal(t, sample.MaxRSS, avg.MaxRSS)
}

func TestAverageTwoSamples(t *testing.T) {
	var avg Average

	avg.Observe(Sample{WallClock: 10.0, MaxRSS: 100})
	avg.Observe(Sample{WallClock: 20.0, MaxRSS: 200})

	assert.Equal(t, 2, avg.Count)
	assert.InDelta(t, 15.0, avg.WallClock, 1e-4)
	assert.Equal(t, int64(150), avg.MaxRSS)
}

func TestAverageOrderIndependent(t *testing.T) {
	samples := []Sample{
		{UserTime: 3, SystemTime: 1, CPUUsage: 50, WallClock: 5, MaxRSS: 100},
		{UserTime: 6, SystemTime: 2, CPUUsage: 70, WallClock: 10, MaxRSS: 100},
		{UserTime: 9, SystemTime: 3, CPUUsage: 90, WallClock: 15, MaxRSS: 100},
	}

	var forward, backward Average
	for i := range samples {
		forward.Observe(samples[i])
		backward.Observe(samples[len(samples)-1-i])
	}

	assert.InDelta(t, forward.UserTime, backward.UserTime, 1e-3)
	assert.InDelta(t, forward.SystemTime, backward.SystemTime, 1e-3)
	assert.InDelta(t, forward.CPUUsage, backward.CPUUsage, 1e-3)
	assert.InDelta(t, forward.WallClock, backward.WallClock, 1e-3)

	assert.InDelta(t, 6.0, forward.UserTime, 1e-3)
	assert.InDelta(t, 10.0, forward.WallClock, 1e-3)
}

func TestAverageMaxRSSTruncates(t *testing.T) {
	var avg Average

	avg.Observe(Sample{MaxRSS: 3})
	avg.Observe(Sample{MaxRSS: 4})

	// (1*3 + 4) / 2 truncates to 3 under integer arithmetic.
	assert.Equal(t, int64(3), avg.MaxRSS)
}

func TestSpread(t *testing.T) {
	var avg Average
	for _, wc := range []float32{10, 20, 30} {
		avg.Observe(Sample{WallClock: wc})
	}

	sp := avg.WallClockSpread()
	assert.Equal(t, float32(10), sp.Min())
	assert.Equal(t, float32(30), sp.Max())
	// Population std-dev of {10,20,30}.
	assert.InDelta(t, 8.1650, sp.StdDev(), 1e-3)
}

func TestSpreadEmpty(t *testing.T) {
	var sp Spread
	require.Equal(t, float32(0), sp.StdDev())
	require.Equal(t, float32(0), sp.Min())
	require.Equal(t, float32(0), sp.Max())
}

package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLongCalculator(t *testing.T) {
	lc := NewLongCalculator()
	assert.Equal(t, int64(math.MaxInt64), lc.Min())
	assert.Equal(t, int64(math.MinInt64), lc.Max())
	assert.Equal(t, int64(0), lc.Median())

	for _, value := range []int64{4, 1, 3, 2} {
		lc.AddValue(value)
	}
	assert.Equal(t, int64(2), lc.Median())
	assert.Equal(t, 2.5, lc.Calculator().Median())
	assert.Equal(t, int64(1), lc.Min())
	assert.Equal(t, int64(4), lc.Max())
	assert.Equal(t, int64(10), lc.Sum())
	assert.Equal(t, int64(4), lc.Count())
	assert.Equal(t, 2.5, lc.Mean())
	assert.InDelta(t, math.Sqrt(1.25), lc.StandardDeviation(), 1e-12)

	lc.AddAggregate(7, 2)
	assert.Equal(t, int64(3), lc.Calculator().Occurrences(4))
	assert.Equal(t, int64(4), lc.Percentile(1))

	lc.Reset()
	assert.Equal(t, int64(0), lc.Count())
	assert.Equal(t, int64(math.MaxInt64), lc.Min())
}

func TestIntCalculator(t *testing.T) {
	ic := NewIntCalculator()
	assert.Equal(t, int64(math.MaxInt32), ic.Min())
	assert.Equal(t, int64(math.MinInt32), ic.Max())
	assert.Equal(t, "int", ic.Calculator().Domain().Name)
}

func TestDurationCalculator(t *testing.T) {
	dc := NewDurationCalculator()
	dc.AddValue(3 * time.Millisecond)
	dc.AddValue(1 * time.Millisecond)
	dc.AddValue(2 * time.Millisecond)

	assert.Equal(t, 2*time.Millisecond, dc.Median())
	assert.Equal(t, time.Millisecond, dc.Min())
	assert.Equal(t, 3*time.Millisecond, dc.Max())
	assert.Equal(t, 2*time.Millisecond, dc.Mean())
	assert.Equal(t, int64(3), dc.Count())

	dc.AddAggregate(10*time.Millisecond, 4)
	assert.Equal(t, int64(7), dc.Count())
	assert.Equal(t, int64(4), dc.Calculator().Occurrences(float64(2500*time.Microsecond)))
	assert.Equal(t, 2500*time.Microsecond, dc.Percentile(0.75))

	dc.Reset()
	assert.Equal(t, time.Duration(0), dc.Median())
	assert.Equal(t, time.Duration(math.MaxInt64), dc.Min())
}

func TestToInt64(t *testing.T) {
	assert.Equal(t, int64(0), toInt64(math.NaN()))
	assert.Equal(t, int64(math.MaxInt64), toInt64(math.Inf(1)))
	assert.Equal(t, int64(math.MinInt64), toInt64(math.Inf(-1)))
	assert.Equal(t, int64(-2), toInt64(-2.9))
	assert.Equal(t, int64(2), toInt64(2.9))
}

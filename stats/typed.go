package stats

import (
	"math"
	"time"
)

// toInt64 truncates toward zero, saturating at the int64 bounds. The
// float64 seeds of the long domain round up to 2^63, which int64 cannot hold.
func toInt64(value float64) int64 {
	switch {
	case math.IsNaN(value):
		return 0
	case value >= math.MaxInt64:
		return math.MaxInt64
	case value <= math.MinInt64:
		return math.MinInt64
	}
	return int64(value)
}

// LongCalculator records integer samples and reports results truncated
// back to int64.
type LongCalculator struct {
	calc *Calculator
}

func NewLongCalculator(opts ...Option) *LongCalculator {
	return &LongCalculator{calc: MustNew(LongDomain, opts...)}
}

// NewIntCalculator is a LongCalculator seeded with int32 bounds.
func NewIntCalculator(opts ...Option) *LongCalculator {
	return &LongCalculator{calc: MustNew(IntDomain, opts...)}
}

func (lc *LongCalculator) Calculator() *Calculator {
	return lc.calc
}

func (lc *LongCalculator) AddValue(value int64) {
	lc.calc.AddValue(float64(value))
}

func (lc *LongCalculator) AddAggregate(value int64, n int64) {
	lc.calc.AddAggregate(float64(value), n)
}

func (lc *LongCalculator) Percentile(p float64) int64 {
	return toInt64(lc.calc.Percentile(p))
}

func (lc *LongCalculator) Median() int64 {
	return toInt64(lc.calc.Median())
}

func (lc *LongCalculator) Min() int64 {
	return toInt64(lc.calc.Min())
}

func (lc *LongCalculator) Max() int64 {
	return toInt64(lc.calc.Max())
}

func (lc *LongCalculator) Sum() int64 {
	return toInt64(lc.calc.Sum())
}

func (lc *LongCalculator) Count() int64 {
	return lc.calc.Count()
}

func (lc *LongCalculator) Mean() float64 {
	return lc.calc.Mean()
}

func (lc *LongCalculator) StandardDeviation() float64 {
	return lc.calc.StandardDeviation()
}

func (lc *LongCalculator) Reset() {
	lc.calc.Reset()
}

// DurationCalculator records elapsed times at nanosecond resolution.
type DurationCalculator struct {
	calc *Calculator
}

func NewDurationCalculator(opts ...Option) *DurationCalculator {
	return &DurationCalculator{calc: MustNew(DurationDomain, opts...)}
}

func (dc *DurationCalculator) Calculator() *Calculator {
	return dc.calc
}

func (dc *DurationCalculator) AddValue(d time.Duration) {
	dc.calc.AddValue(float64(d))
}

// AddAggregate records n requests that took total altogether.
func (dc *DurationCalculator) AddAggregate(total time.Duration, n int64) {
	dc.calc.AddAggregate(float64(total), n)
}

func (dc *DurationCalculator) Percentile(p float64) time.Duration {
	return time.Duration(toInt64(dc.calc.Percentile(p)))
}

func (dc *DurationCalculator) Median() time.Duration {
	return time.Duration(toInt64(dc.calc.Median()))
}

func (dc *DurationCalculator) Min() time.Duration {
	return time.Duration(toInt64(dc.calc.Min()))
}

func (dc *DurationCalculator) Max() time.Duration {
	return time.Duration(toInt64(dc.calc.Max()))
}

func (dc *DurationCalculator) Mean() time.Duration {
	return time.Duration(toInt64(dc.calc.Mean()))
}

func (dc *DurationCalculator) StandardDeviation() time.Duration {
	return time.Duration(toInt64(dc.calc.StandardDeviation()))
}

func (dc *DurationCalculator) Count() int64 {
	return dc.calc.Count()
}

func (dc *DurationCalculator) Reset() {
	dc.calc.Reset()
}

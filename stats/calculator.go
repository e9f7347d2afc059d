package stats

import (
	"math"

	"go.uber.org/zap"
	"statcalc/tree"
)

// Calculator keeps running statistics over a stream of samples: count,
// sum, mean, standard deviation, min, max, byte counters, and a frequency
// table of every distinct value from which percentiles are interpolated.
//
// A Calculator is not safe for concurrent use. Wrap it in a SyncCalculator,
// or give each producer its own Calculator and Merge them under a lock.
type Calculator struct {
	values *tree.RbTree

	sum          float64
	sumOfSquares float64
	mean         float64
	deviation    float64
	count        int64
	min          float64
	max          float64

	receivedBytes int64
	sentBytes     int64

	domain Domain
	logger *zap.Logger

	// onScan, when set, runs for every key Percentile visits.
	onScan func(key float64)
}

// Bucket is one entry of Distribution.
type Bucket struct {
	Value float64
	Count int64
}

// Option configures a Calculator built by New.
type Option func(*Calculator)

// WithLogger sets the logger used to report degraded reads. A nil logger
// keeps the default no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(calc *Calculator) {
		if logger != nil {
			calc.logger = logger
		}
	}
}

// New returns an empty Calculator for domain, or an error wrapping
// ErrInvalidDomain if its sentinels or divider are unusable.
func New(domain Domain, opts ...Option) (*Calculator, error) {
	if err := domain.Validate(); err != nil {
		return nil, err
	}
	calc := &Calculator{
		values: tree.NewRbTree(),
		min:    domain.MaxSeed,
		max:    domain.MinSeed,
		domain: domain,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(calc)
	}
	return calc, nil
}

// MustNew is like New but panics if domain is invalid. It is meant for the
// package-level domains.
func MustNew(domain Domain, opts ...Option) *Calculator {
	calc, err := New(domain, opts...)
	if err != nil {
		panic(err)
	}
	return calc
}

// NewFloatCalculator returns an empty Calculator over FloatDomain.
func NewFloatCalculator(opts ...Option) *Calculator {
	return MustNew(FloatDomain, opts...)
}

func (calc *Calculator) Domain() Domain {
	return calc.domain
}

func (calc *Calculator) Reset() {
	calc.values.Clear()
	calc.sum = 0
	calc.sumOfSquares = 0
	calc.mean = 0
	calc.deviation = 0
	calc.count = 0
	calc.receivedBytes = 0
	calc.sentBytes = 0
	calc.max = calc.domain.MinSeed
	calc.min = calc.domain.MaxSeed
}

func (calc *Calculator) AddReceivedBytes(n int64) {
	calc.receivedBytes += n
}

func (calc *Calculator) AddSentBytes(n int64) {
	calc.sentBytes += n
}

// AddValue records a single observation.
func (calc *Calculator) AddValue(value float64) {
	calc.AddAggregate(value, 1)
}

// AddAggregate records n observations whose combined value is value, e.g.
// the total elapsed time of n requests. The frequency table and min/max see
// the per-observation value produced by the domain's divider.
func (calc *Calculator) AddAggregate(value float64, n int64) {
	if n == 0 {
		return
	}
	calc.count += n
	calc.sum += value
	actual := value
	if n > 1 {
		// n equal values of value/n have a sum of squares of value²/n
		calc.sumOfSquares += value * value / float64(n)
		actual = calc.domain.Divide(value, n)
	} else {
		calc.sumOfSquares += value * value
	}
	calc.values.Add(actual, n)
	calc.updateDerived(actual)
}

// addEachValue records n observations that are each equal to value.
func (calc *Calculator) addEachValue(value float64, n int64) {
	if n == 0 {
		return
	}
	calc.count += n
	calc.sum += value * float64(n)
	calc.sumOfSquares += value * value * float64(n)
	calc.values.Add(value, n)
	calc.updateDerived(value)
}

func (calc *Calculator) updateDerived(actual float64) {
	calc.mean = calc.sum / float64(calc.count)
	calc.deviation = math.Sqrt(calc.sumOfSquares/float64(calc.count) - calc.mean*calc.mean)
	if actual > calc.max {
		calc.max = actual
	}
	if actual < calc.min {
		calc.min = actual
	}
}

// Merge records every entry of other's frequency table into calc.
// Byte counters are left alone. Merging a calculator into itself doubles
// every entry.
func (calc *Calculator) Merge(other *Calculator) {
	for _, entry := range other.values.Entries() {
		calc.addEachValue(entry.Key, entry.Count)
	}
}

// Clone returns an independent copy of calc, byte counters included.
func (calc *Calculator) Clone() *Calculator {
	clone := *calc
	clone.values = calc.values.Clone()
	return &clone
}

// Percentile returns the value below which roughly a fraction p of the
// observations fall, interpolating linearly between the two values that
// bracket rank p*(count+1). Ranks below 1 give Min and ranks at or above
// count give Max, so any p outside [0, 1] is clamped the same way.
func (calc *Calculator) Percentile(p float64) float64 {
	if calc.count <= 0 {
		return calc.domain.Zero
	}

	rank := p * float64(calc.count+1)
	if rank < 1 {
		return calc.Min()
	}
	if rank >= float64(calc.count) {
		return calc.Max()
	}

	floorRank := math.Floor(rank)
	dif := rank - floorRank
	remaining := int64(floorRank)
	lower := calc.domain.Zero
	upper := calc.domain.Zero
	foundLower := false
	foundUpper := false

	err := calc.values.Map(func(key float64, count int64) bool {
		if calc.onScan != nil {
			calc.onScan(key)
		}
		if foundLower {
			upper = key
			foundUpper = true
			return true
		}
		remaining -= count
		if remaining == 0 {
			lower = key
			foundLower = true
		} else if remaining < 0 {
			lower = key
			upper = key
			foundLower = true
			foundUpper = true
			return true
		}
		return false
	})
	if err != nil {
		calc.logger.Warn("frequency table changed during percentile scan",
			zap.Float64("percentile", p),
			zap.Int64("count", calc.count),
			zap.Error(err))
		return calc.domain.Zero
	}
	if foundLower && !foundUpper {
		// lower was the last distinct value
		upper = lower
	}
	return lower + dif*(upper-lower)
}

func (calc *Calculator) Median() float64 {
	return calc.Percentile(0.5)
}

func (calc *Calculator) Percentiles(ps ...float64) []float64 {
	result := make([]float64, len(ps))
	for i, p := range ps {
		result[i] = calc.Percentile(p)
	}
	return result
}

// Distribution maps every distinct value to its bucket.
func (calc *Calculator) Distribution() map[float64]Bucket {
	items := make(map[float64]Bucket, calc.values.Len())
	for _, entry := range calc.values.Entries() {
		items[entry.Key] = Bucket{Value: entry.Key, Count: entry.Count}
	}
	return items
}

// Values returns the distinct recorded values in ascending order.
func (calc *Calculator) Values() []float64 {
	entries := calc.values.Entries()
	values := make([]float64, len(entries))
	for i, entry := range entries {
		values[i] = entry.Key
	}
	return values
}

// Occurrences returns how many observations had exactly value.
func (calc *Calculator) Occurrences(value float64) int64 {
	count, _ := calc.values.Get(value)
	return count
}

func (calc *Calculator) Mean() float64 {
	return calc.mean
}

func (calc *Calculator) StandardDeviation() float64 {
	return calc.deviation
}

func (calc *Calculator) Min() float64 {
	return calc.min
}

func (calc *Calculator) Max() float64 {
	return calc.max
}

func (calc *Calculator) Count() int64 {
	return calc.count
}

func (calc *Calculator) Sum() float64 {
	return calc.sum
}

func (calc *Calculator) TotalReceivedBytes() int64 {
	return calc.receivedBytes
}

func (calc *Calculator) TotalSentBytes() int64 {
	return calc.sentBytes
}

package stats

import "sync"

// SyncCalculator serializes every call to a single Calculator so it can be
// fed from several goroutines.
type SyncCalculator struct {
	mu   sync.Mutex
	calc *Calculator
}

func NewSyncCalculator(calc *Calculator) *SyncCalculator {
	return &SyncCalculator{calc: calc}
}

func (sc *SyncCalculator) AddValue(value float64) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calc.AddValue(value)
}

func (sc *SyncCalculator) AddAggregate(value float64, n int64) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calc.AddAggregate(value, n)
}

func (sc *SyncCalculator) AddReceivedBytes(n int64) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calc.AddReceivedBytes(n)
}

func (sc *SyncCalculator) AddSentBytes(n int64) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calc.AddSentBytes(n)
}

// Merge folds other into the wrapped calculator. other must not be
// mutated concurrently; pass a Snapshot if it is shared.
func (sc *SyncCalculator) Merge(other *Calculator) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calc.Merge(other)
}

func (sc *SyncCalculator) Percentile(p float64) float64 {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.calc.Percentile(p)
}

func (sc *SyncCalculator) Reset() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calc.Reset()
}

// Snapshot returns a private copy for reporting without holding the lock.
func (sc *SyncCalculator) Snapshot() *Calculator {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.calc.Clone()
}

package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncCalculator_ConcurrentProducers(t *testing.T) {
	sc := NewSyncCalculator(NewFloatCalculator())

	var wg sync.WaitGroup
	for producer := 0; producer < 8; producer++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				sc.AddValue(float64(i))
				sc.AddReceivedBytes(2)
				sc.AddSentBytes(1)
				_ = sc.Percentile(0.5)
			}
		}()
	}
	wg.Wait()

	snapshot := sc.Snapshot()
	assert.Equal(t, int64(8000), snapshot.Count())
	assert.Equal(t, 8*499500.0, snapshot.Sum())
	assert.Equal(t, int64(16000), snapshot.TotalReceivedBytes())
	assert.Equal(t, int64(8000), snapshot.TotalSentBytes())
	assert.Equal(t, int64(8), snapshot.Occurrences(999))
	assert.Equal(t, snapshot.Percentile(0.9), sc.Percentile(0.9))
}

func TestSyncCalculator_MergePerProducer(t *testing.T) {
	sc := NewSyncCalculator(NewFloatCalculator())

	var wg sync.WaitGroup
	for producer := 0; producer < 4; producer++ {
		wg.Add(1)
		go func(producer int) {
			defer wg.Done()
			local := NewFloatCalculator()
			for i := 0; i < 250; i++ {
				local.AddValue(float64(producer*250 + i))
			}
			sc.Merge(local)
		}(producer)
	}
	wg.Wait()

	snapshot := sc.Snapshot()
	assert.Equal(t, int64(1000), snapshot.Count())
	assert.Equal(t, 0.0, snapshot.Min())
	assert.Equal(t, 999.0, snapshot.Max())
	assert.Equal(t, 499.5, snapshot.Median())
}

func TestSyncCalculator_SnapshotIsPrivate(t *testing.T) {
	sc := NewSyncCalculator(NewFloatCalculator())
	sc.AddAggregate(10, 5)

	snapshot := sc.Snapshot()
	snapshot.AddValue(100)
	assert.Equal(t, 2.0, sc.Percentile(1))

	sc.Reset()
	assert.Equal(t, int64(0), sc.Snapshot().Count())
	assert.Equal(t, int64(6), snapshot.Count())
}

package network

import (
	"slices"
	"sync"
)

const (
	// A sample is an outlier when it exceeds outlierFactor times the median
	// and is above outlierFloorMs.
	outlierFactor  = 2
	outlierFloorMs = 20
)

// rttWindow keeps the most recent round trip samples, in milliseconds, and
// their mean.
type rttWindow struct {
	mu      sync.RWMutex
	samples []int64
	size    int
	mean    float64
}

func newRTTWindow(size int) *rttWindow {
	return &rttWindow{
		samples: make([]int64, 0, size+1),
		size:    size,
	}
}

// Record adds a sample, evicts the oldest beyond the window size and drops
// outliers before recomputing the mean.
func (w *rttWindow) Record(rtt int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.samples = append(w.samples, rtt)
	if len(w.samples) > w.size {
		w.samples = w.samples[1:]
	}
	w.samples = withoutOutliers(w.samples)

	var sum int64
	for _, s := range w.samples {
		sum += s
	}
	if len(w.samples) > 0 {
		w.mean = float64(sum) / float64(len(w.samples))
	}
}

func (w *rttWindow) Mean() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.mean
}

func withoutOutliers(samples []int64) []int64 {
	m := median(samples)
	kept := make([]int64, 0, len(samples))
	for _, s := range samples {
		if s > outlierFactor*m && s > outlierFloorMs {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

func median(samples []int64) int64 {
	if len(samples) == 0 {
		return 0
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

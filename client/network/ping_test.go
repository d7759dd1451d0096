package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	assert.Equal(t, int64(0), median(nil))
	assert.Equal(t, int64(20), median([]int64{30, 10, 20}))
	assert.Equal(t, int64(15), median([]int64{10, 20, 30, 5}))
}

func TestWithoutOutliers(t *testing.T) {
	assert.Equal(t, []int64{10, 12, 11}, withoutOutliers([]int64{10, 12, 80, 11}))
	// small values are never outliers
	assert.Equal(t, []int64{2, 3, 15}, withoutOutliers([]int64{2, 3, 15}))
}

func TestRTTWindow(t *testing.T) {
	w := newRTTWindow(3)
	assert.Equal(t, 0.0, w.Mean())

	w.Record(10)
	w.Record(20)
	assert.Equal(t, 15.0, w.Mean())

	w.Record(30)
	w.Record(40)
	// 10 was evicted
	assert.Equal(t, 30.0, w.Mean())
}

func TestNetworkManager_Ping(t *testing.T) {
	m := NewNetworkManager(NewNetworkManagerOptions{})
	m.rtts.Record(10)
	m.rtts.Record(20)
	assert.Equal(t, 15.0, m.Ping())
}

package parquetmeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanBatches(t *testing.T) {
	requests := []rangeRequest{
		{offset: 100, length: 50},
		{offset: 200, length: 50},
		{offset: 10000, length: 50},
	}

	batches := planBatches(requests, 1000)
	require.Len(t, batches, 2)

	assert.Equal(t, int64(100), batches[0].start)
	assert.Equal(t, int64(250), batches[0].end)
	assert.Len(t, batches[0].requests, 2)

	assert.Equal(t, int64(10000), batches[1].start)
	assert.Equal(t, int64(10050), batches[1].end)
	assert.Len(t, batches[1].requests, 1)
}

func TestPlanBatchesUnsortedInput(t *testing.T) {
	requests := []rangeRequest{
		{offset: 10000, length: 50},
		{offset: 200, length: 50},
		{offset: 100, length: 50},
	}

	batches := planBatches(requests, 1000)
	require.Len(t, batches, 2)
	assert.Equal(t, int64(100), batches[0].start)
	assert.Equal(t, int64(250), batches[0].end)
	assert.Equal(t, int64(10000), batches[1].start)

	// the input slice stays untouched
	assert.Equal(t, int64(10000), requests[0].offset)
}

func TestPlanBatchesZeroGap(t *testing.T) {
	// back-to-back ranges coalesce even with no tolerance at all
	batches := planBatches([]rangeRequest{
		{offset: 0, length: 10},
		{offset: 10, length: 5},
		{offset: 16, length: 5},
	}, 0)
	require.Len(t, batches, 2)
	assert.Equal(t, int64(0), batches[0].start)
	assert.Equal(t, int64(15), batches[0].end)
	assert.Equal(t, int64(16), batches[1].start)
}

func TestPlanBatchesContainedRange(t *testing.T) {
	// a range nested inside the running batch must not shrink it
	batches := planBatches([]rangeRequest{
		{offset: 0, length: 100},
		{offset: 10, length: 20},
	}, 0)
	require.Len(t, batches, 1)
	assert.Equal(t, int64(0), batches[0].start)
	assert.Equal(t, int64(100), batches[0].end)
}

func TestPlanBatchesEmpty(t *testing.T) {
	assert.Nil(t, planBatches(nil, 1000))
}

func TestBatchSlice(t *testing.T) {
	buf := make([]byte, 150)
	for i := range buf {
		buf[i] = byte(i)
	}

	batch := readBatch{start: 100, end: 250}
	got := batch.slice(buf, rangeRequest{offset: 200, length: 50})
	require.Len(t, got, 50)
	assert.Equal(t, byte(100), got[0])
	assert.Equal(t, byte(149), got[49])
}

package parquetmeta

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraugster/parquet-meta/parquet"
)

func TestNewFileReader(t *testing.T) {
	fx := buildIndexedFile(t, -1)

	r, err := NewFileReader(bytes.NewReader(fx.data), int64(len(fx.data)))
	require.NoError(t, err)

	assert.Equal(t, int64(100), r.NumRows())
	assert.Equal(t, 1, r.RowGroupCount())
	assert.Equal(t, int64(len(fx.data)), r.Size())
	assert.Equal(t, "parquet-meta test writer", *r.MetaData().CreatedBy)
	require.Len(t, r.Schema().Columns(), 2)
	assert.Equal(t, "id", r.Schema().Columns()[0].Name())

	// indexes are lazy
	assert.Nil(t, r.PageIndexes())
}

func TestNewFileReaderColumnCountMismatch(t *testing.T) {
	meta := &parquet.FileMetaData{
		Version: 1,
		Schema:  twoColumnSchema(),
		NumRows: 1,
		RowGroups: []*parquet.RowGroup{
			{
				Columns: []*parquet.ColumnChunk{{FileOffset: 4}},
				NumRows: 1,
			},
		},
	}
	data := buildFile(t, nil, meta)

	_, err := NewFileReader(bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column chunks")
}

func TestReadPageIndexes(t *testing.T) {
	fx := buildIndexedFile(t, -1)

	r, err := NewFileReader(bytes.NewReader(fx.data), int64(len(fx.data)))
	require.NoError(t, err)
	require.NoError(t, r.ReadPageIndexes())

	require.Len(t, r.PageIndexes(), 1)
	slots := r.PageIndexes()[0]
	require.Len(t, slots, 2)

	for j := 0; j < 2; j++ {
		require.NotNil(t, slots[j].ColumnIndex, "column %d", j)
		require.NotNil(t, slots[j].OffsetIndex, "column %d", j)
		assert.Equal(t, fx.columnIndexes[j], slots[j].ColumnIndex)
		assert.Equal(t, fx.offsetIndexes[j], slots[j].OffsetIndex)
	}
	assert.Empty(t, r.IndexWarnings())
}

// TestReadPageIndexesCoalesced checks that the four adjacent index blobs are
// fetched with a single read.
func TestReadPageIndexesCoalesced(t *testing.T) {
	fx := buildIndexedFile(t, -1)

	counter := &countingReaderAt{r: bytes.NewReader(fx.data)}
	r, err := NewFileReader(counter, int64(len(fx.data)))
	require.NoError(t, err)

	before := counter.count()
	require.NoError(t, r.ReadPageIndexes())
	assert.Equal(t, int64(1), counter.count()-before)
}

func TestReadPageIndexesSequential(t *testing.T) {
	fx := buildIndexedFile(t, -1)

	// a zero gap tolerance keeps every blob in its own batch
	r, err := NewFileReader(bytes.NewReader(fx.data), int64(len(fx.data)),
		WithGapTolerance(0), WithIndexConcurrency(1))
	require.NoError(t, err)
	require.NoError(t, r.ReadPageIndexes())

	slots := r.PageIndexes()[0]
	assert.Equal(t, fx.columnIndexes[0], slots[0].ColumnIndex)
	assert.Equal(t, fx.offsetIndexes[1], slots[1].OffsetIndex)
	assert.Empty(t, r.IndexWarnings())
}

// TestReadPageIndexesTruncated cuts one column index short. Only that slot
// may fail; every other index must still decode, and the failure surfaces as
// a warning rather than an error.
func TestReadPageIndexesTruncated(t *testing.T) {
	fx := buildIndexedFile(t, 1)

	r, err := NewFileReader(bytes.NewReader(fx.data), int64(len(fx.data)))
	require.NoError(t, err)
	require.NoError(t, r.ReadPageIndexes())

	slots := r.PageIndexes()[0]
	assert.NotNil(t, slots[0].ColumnIndex)
	assert.NotNil(t, slots[0].OffsetIndex)
	assert.Nil(t, slots[1].ColumnIndex)
	assert.NotNil(t, slots[1].OffsetIndex)

	require.Len(t, r.IndexWarnings(), 1)
	w := r.IndexWarnings()[0]
	assert.Equal(t, 0, w.RowGroup)
	assert.Equal(t, 1, w.Column)
	assert.Equal(t, ColumnIndexKind, w.Kind)
	assert.Error(t, w.Err)
}

func TestReadPageIndexesBogusLocation(t *testing.T) {
	fx := buildIndexedFile(t, -1)

	// point one offset index far outside the file
	meta, err := ReadFileMetaData(bytes.NewReader(fx.data), int64(len(fx.data)))
	require.NoError(t, err)
	chunk := meta.RowGroups[0].Columns[0]
	*chunk.OffsetIndexOffset = int64(len(fx.data)) + 4096

	data := buildFile(t, fx.data[4:int64(len(fx.data))-footerBytesLen(t, fx.data)-8], meta)

	r, err := NewFileReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.NoError(t, r.ReadPageIndexes())

	slots := r.PageIndexes()[0]
	assert.NotNil(t, slots[0].ColumnIndex)
	assert.Nil(t, slots[0].OffsetIndex)
	assert.NotNil(t, slots[1].ColumnIndex)
	assert.NotNil(t, slots[1].OffsetIndex)

	require.Len(t, r.IndexWarnings(), 1)
	assert.Equal(t, OffsetIndexKind, r.IndexWarnings()[0].Kind)
	assert.Contains(t, r.IndexWarnings()[0].Err.Error(), "outside file")
}

func TestReadPageIndexesCanceled(t *testing.T) {
	fx := buildIndexedFile(t, -1)

	r, err := NewFileReader(bytes.NewReader(fx.data), int64(len(fx.data)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = r.ReadPageIndexesWithContext(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotEmpty(t, r.IndexWarnings())
}

func TestReadPageIndexesNoIndexes(t *testing.T) {
	meta := &parquet.FileMetaData{
		Version: 1,
		Schema:  twoColumnSchema(),
		NumRows: 1,
	}
	data := buildFile(t, nil, meta)

	r, err := NewFileReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.NoError(t, r.ReadPageIndexes())
	assert.Empty(t, r.PageIndexes())
	assert.Empty(t, r.IndexWarnings())
}

func TestOpenFile(t *testing.T) {
	fx := buildIndexedFile(t, -1)

	path := filepath.Join(t.TempDir(), "test.parquet")
	require.NoError(t, os.WriteFile(path, fx.data, 0o644))

	r, err := OpenFile(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, r.Close())
	}()

	assert.Equal(t, int64(100), r.NumRows())
	require.NoError(t, r.ReadPageIndexes())
	assert.Equal(t, fx.columnIndexes[0], r.PageIndexes()[0][0].ColumnIndex)
}

func TestOpenFileMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "nope.parquet"))
	require.Error(t, err)
}

// footerBytesLen reads the serialized footer length out of a file image.
func footerBytesLen(t *testing.T, data []byte) int64 {
	t.Helper()
	require.GreaterOrEqual(t, len(data), 8)
	return int64(binary.LittleEndian.Uint32(data[len(data)-8 : len(data)-4]))
}

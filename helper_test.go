package parquetmeta

import (
	"encoding/binary"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fraugster/parquet-meta/parquet"
	"github.com/fraugster/parquet-meta/parquet/parquettest"
)

func pi32(v int32) *int32   { return &v }
func pi64(v int64) *int64   { return &v }
func pstr(v string) *string { return &v }

func ptype(v parquet.Type) *parquet.Type { return &v }

func prep(v parquet.FieldRepetitionType) *parquet.FieldRepetitionType { return &v }

func pconv(v parquet.ConvertedType) *parquet.ConvertedType { return &v }

// buildFile assembles a parquet file image around the given footer: the
// leading magic, the body bytes, the serialized footer, its 4-byte
// little-endian length and the trailing magic.
func buildFile(t *testing.T, body []byte, meta *parquet.FileMetaData) []byte {
	t.Helper()

	footer, err := parquettest.EncodeFileMetaData(meta)
	require.NoError(t, err)

	buf := append([]byte{}, magic...)
	buf = append(buf, body...)
	buf = append(buf, footer...)

	var fl [4]byte
	binary.LittleEndian.PutUint32(fl[:], uint32(len(footer)))
	buf = append(buf, fl[:]...)
	return append(buf, magic...)
}

// twoColumnSchema is a flat message with an INT64 "id" and a string "name".
func twoColumnSchema() []*parquet.SchemaElement {
	return []*parquet.SchemaElement{
		{Name: "root", NumChildren: pi32(2)},
		{
			Type:           ptype(parquet.Type_INT64),
			RepetitionType: prep(parquet.FieldRepetitionType_REQUIRED),
			Name:           "id",
		},
		{
			Type:           ptype(parquet.Type_BYTE_ARRAY),
			RepetitionType: prep(parquet.FieldRepetitionType_OPTIONAL),
			Name:           "name",
			LogicalType:    &parquet.LogicalType{String: true},
		},
	}
}

// indexFixture is a complete single-row-group file whose body holds the page
// index structures announced by the footer.
type indexFixture struct {
	data []byte

	columnIndexes [2]*parquet.ColumnIndex
	offsetIndexes [2]*parquet.OffsetIndex
}

// buildIndexedFile lays the four index blobs back to back behind the leading
// magic and points the column chunks at them. When truncateColumn is
// non-negative, the announced length of that column's column index is cut in
// half, so decoding it must fail while the neighbouring blobs stay intact.
func buildIndexedFile(t *testing.T, truncateColumn int) indexFixture {
	t.Helper()

	fx := indexFixture{
		columnIndexes: [2]*parquet.ColumnIndex{
			{
				NullPages:     []bool{false, false},
				MinValues:     [][]byte{{1, 0, 0, 0, 0, 0, 0, 0}, {50, 0, 0, 0, 0, 0, 0, 0}},
				MaxValues:     [][]byte{{49, 0, 0, 0, 0, 0, 0, 0}, {100, 0, 0, 0, 0, 0, 0, 0}},
				BoundaryOrder: parquet.BoundaryOrder_ASCENDING,
				NullCounts:    []int64{0, 0},
			},
			{
				NullPages:     []bool{false, true},
				MinValues:     [][]byte{[]byte("alice"), nil},
				MaxValues:     [][]byte{[]byte("zora"), nil},
				BoundaryOrder: parquet.BoundaryOrder_UNORDERED,
				NullCounts:    []int64{3, 100},
			},
		},
		offsetIndexes: [2]*parquet.OffsetIndex{
			{PageLocations: []*parquet.PageLocation{
				{Offset: 4, CompressedPageSize: 512, FirstRowIndex: 0},
				{Offset: 516, CompressedPageSize: 512, FirstRowIndex: 50},
			}},
			{PageLocations: []*parquet.PageLocation{
				{Offset: 1028, CompressedPageSize: 700, FirstRowIndex: 0},
				{Offset: 1728, CompressedPageSize: 700, FirstRowIndex: 50},
			}},
		},
	}

	var body []byte
	offsetOf := func(blob []byte) (int64, int32) {
		off := int64(len(magic) + len(body))
		body = append(body, blob...)
		return off, int32(len(blob))
	}

	chunks := make([]*parquet.ColumnChunk, 2)
	types := []parquet.Type{parquet.Type_INT64, parquet.Type_BYTE_ARRAY}
	paths := []string{"id", "name"}
	for j := 0; j < 2; j++ {
		ciBlob, err := parquettest.EncodeColumnIndex(fx.columnIndexes[j])
		require.NoError(t, err)
		oiBlob, err := parquettest.EncodeOffsetIndex(fx.offsetIndexes[j])
		require.NoError(t, err)

		ciOff, ciLen := offsetOf(ciBlob)
		oiOff, oiLen := offsetOf(oiBlob)
		if j == truncateColumn {
			ciLen /= 2
		}

		chunks[j] = &parquet.ColumnChunk{
			FileOffset: 4,
			MetaData: &parquet.ColumnMetaData{
				Type:                  types[j],
				Encodings:             []parquet.Encoding{parquet.Encoding_PLAIN},
				PathInSchema:          []string{paths[j]},
				Codec:                 parquet.CompressionCodec_UNCOMPRESSED,
				NumValues:             100,
				TotalUncompressedSize: 1024,
				TotalCompressedSize:   1024,
				DataPageOffset:        4,
			},
			ColumnIndexOffset: pi64(ciOff),
			ColumnIndexLength: pi32(ciLen),
			OffsetIndexOffset: pi64(oiOff),
			OffsetIndexLength: pi32(oiLen),
		}
	}

	meta := &parquet.FileMetaData{
		Version: 2,
		Schema:  twoColumnSchema(),
		NumRows: 100,
		RowGroups: []*parquet.RowGroup{
			{Columns: chunks, TotalByteSize: 2048, NumRows: 100},
		},
		CreatedBy: pstr("parquet-meta test writer"),
	}

	fx.data = buildFile(t, body, meta)
	return fx
}

// countingReaderAt counts ReadAt calls, for asserting read coalescing.
type countingReaderAt struct {
	r     io.ReaderAt
	calls int64
}

func (c *countingReaderAt) ReadAt(p []byte, off int64) (int, error) {
	atomic.AddInt64(&c.calls, 1)
	return c.r.ReadAt(p, off)
}

func (c *countingReaderAt) count() int64 {
	return atomic.LoadInt64(&c.calls)
}

// recordingReaderAt records every requested byte range.
type recordingReaderAt struct {
	r io.ReaderAt

	mu     sync.Mutex
	ranges [][2]int64
}

func (c *recordingReaderAt) ReadAt(p []byte, off int64) (int, error) {
	c.mu.Lock()
	c.ranges = append(c.ranges, [2]int64{off, off + int64(len(p))})
	c.mu.Unlock()
	return c.r.ReadAt(p, off)
}

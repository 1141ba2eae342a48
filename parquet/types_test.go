package parquet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "BOOLEAN", Type_BOOLEAN.String())
	assert.Equal(t, "FIXED_LEN_BYTE_ARRAY", Type_FIXED_LEN_BYTE_ARRAY.String())
	assert.Equal(t, "UNKNOWN(42)", Type(42).String())

	assert.Equal(t, "UTF8", ConvertedType_UTF8.String())
	assert.Equal(t, "TIMESTAMP_MICROS", ConvertedType_TIMESTAMP_MICROS.String())
	assert.Equal(t, "UNKNOWN(-1)", ConvertedType(-1).String())

	assert.Equal(t, "REQUIRED", FieldRepetitionType_REQUIRED.String())
	assert.Equal(t, "REPEATED", FieldRepetitionType_REPEATED.String())

	assert.Equal(t, "PLAIN", Encoding_PLAIN.String())
	assert.Equal(t, "RLE_DICTIONARY", Encoding_RLE_DICTIONARY.String())

	assert.Equal(t, "SNAPPY", CompressionCodec_SNAPPY.String())
	assert.Equal(t, "ZSTD", CompressionCodec_ZSTD.String())
	assert.Equal(t, "UNKNOWN(99)", CompressionCodec(99).String())

	assert.Equal(t, "DATA_PAGE_V2", PageType_DATA_PAGE_V2.String())
	assert.Equal(t, "ASCENDING", BoundaryOrder_ASCENDING.String())
	assert.Equal(t, "UNORDERED", BoundaryOrder_UNORDERED.String())
}

func TestStatisticsBytesPrecedence(t *testing.T) {
	st := &Statistics{
		Min:      []byte("deprecated-min"),
		Max:      []byte("deprecated-max"),
		MinValue: []byte("modern-min"),
		MaxValue: []byte("modern-max"),
	}
	assert.Equal(t, []byte("modern-min"), st.MinBytes())
	assert.Equal(t, []byte("modern-max"), st.MaxBytes())

	st = &Statistics{Min: []byte("deprecated-min"), Max: []byte("deprecated-max")}
	assert.Equal(t, []byte("deprecated-min"), st.MinBytes())
	assert.Equal(t, []byte("deprecated-max"), st.MaxBytes())

	st = &Statistics{}
	assert.Nil(t, st.MinBytes())
	assert.Nil(t, st.MaxBytes())
}

func TestColumnIndexNumPages(t *testing.T) {
	idx := &ColumnIndex{NullPages: []bool{false, true, false}}
	assert.Equal(t, 3, idx.NumPages())
	assert.Equal(t, 0, (&ColumnIndex{}).NumPages())
}

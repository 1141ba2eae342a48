package parquetmeta

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraugster/parquet-meta/parquet"
)

func TestReadFileMetaData(t *testing.T) {
	want := &parquet.FileMetaData{
		Version:   2,
		Schema:    twoColumnSchema(),
		NumRows:   1234,
		CreatedBy: pstr("parquet-meta test writer"),
	}
	data := buildFile(t, []byte("this is not real page data"), want)

	got, err := ReadFileMetaData(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// TestReadFileMetaDataReadRanges pins down which byte ranges the footer read
// touches: the head magic, the 8-byte trailer, and the footer itself. The
// body must stay untouched.
func TestReadFileMetaDataReadRanges(t *testing.T) {
	data := buildFile(t, bytes.Repeat([]byte{0xaa}, 500), &parquet.FileMetaData{
		Version: 1,
		Schema:  twoColumnSchema(),
		NumRows: 1,
	})
	size := int64(len(data))
	footerLen := int64(binary.LittleEndian.Uint32(data[size-8 : size-4]))

	rec := &recordingReaderAt{r: bytes.NewReader(data)}
	_, err := ReadFileMetaData(rec, size)
	require.NoError(t, err)

	require.Equal(t, [][2]int64{
		{0, 4},
		{size - 8, size},
		{size - 8 - footerLen, size - 8},
	}, rec.ranges)
}

func TestReadFileMetaDataTooSmall(t *testing.T) {
	data := []byte("PAR1PAR1")
	_, err := ReadFileMetaData(bytes.NewReader(data), int64(len(data)))
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestReadFileMetaDataBadHeadMagic(t *testing.T) {
	data := buildFile(t, nil, &parquet.FileMetaData{Version: 1, Schema: twoColumnSchema()})
	copy(data, "JUNK")

	_, err := ReadFileMetaData(bytes.NewReader(data), int64(len(data)))
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestReadFileMetaDataBadTailMagic(t *testing.T) {
	data := buildFile(t, nil, &parquet.FileMetaData{Version: 1, Schema: twoColumnSchema()})
	data[len(data)-1] = 'X'

	_, err := ReadFileMetaData(bytes.NewReader(data), int64(len(data)))
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestReadFileMetaDataFooterLenOutOfBounds(t *testing.T) {
	base := buildFile(t, nil, &parquet.FileMetaData{Version: 1, Schema: twoColumnSchema()})

	tests := []struct {
		name string
		fl   uint32
	}{
		{"zero", 0},
		{"larger than the file", uint32(len(base))},
		{"maximum", 0xffffffff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := append([]byte{}, base...)
			binary.LittleEndian.PutUint32(data[len(data)-8:], tt.fl)

			_, err := ReadFileMetaData(bytes.NewReader(data), int64(len(data)))
			require.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestReadFileMetaDataCorruptFooter(t *testing.T) {
	data := buildFile(t, nil, &parquet.FileMetaData{
		Version: 1,
		Schema:  twoColumnSchema(),
		NumRows: 42,
	})

	// overwrite the footer region with bytes that are not a valid struct
	footerLen := int(binary.LittleEndian.Uint32(data[len(data)-8 : len(data)-4]))
	footerStart := len(data) - 8 - footerLen
	for i := footerStart; i < len(data)-8; i++ {
		data[i] = 0xff
	}

	_, err := ReadFileMetaData(bytes.NewReader(data), int64(len(data)))
	assert.Error(t, err)
}

func TestReadRange(t *testing.T) {
	r := bytes.NewReader([]byte("0123456789"))

	got, err := readRange(r, 2, 6)
	require.NoError(t, err)
	assert.Equal(t, []byte("2345"), got)

	// a range reaching the end of the source tolerates the trailing EOF
	got, err = readRange(r, 6, 10)
	require.NoError(t, err)
	assert.Equal(t, []byte("6789"), got)

	_, err = readRange(r, 6, 14)
	assert.Error(t, err)

	_, err = readRange(r, -1, 4)
	assert.Error(t, err)

	_, err = readRange(r, 6, 2)
	assert.Error(t, err)
}

package parquetmeta

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fraugster/parquet-meta/parquet"
)

var magic = []byte{'P', 'A', 'R', '1'}

// footerTailSize is the fixed trailer of a parquet file: a 4-byte
// little-endian footer length followed by the 4-byte magic marker.
const footerTailSize = 8

// ReadFileMetaData reads and returns the meta data of a parquet file from a
// random-access byte source. Only the magic markers and the footer byte
// range are read; the data pages are left untouched.
func ReadFileMetaData(r io.ReaderAt, size int64) (*parquet.FileMetaData, error) {
	if size < int64(len(magic))+footerTailSize {
		return nil, fmt.Errorf("%w: file of %d bytes is too small to hold a footer", ErrInvalidFormat, size)
	}

	head, err := readRange(r, 0, int64(len(magic)))
	if err != nil {
		return nil, fmt.Errorf("reading the file magic header failed: %w", err)
	}
	if !bytes.Equal(head, magic) {
		return nil, fmt.Errorf("%w: bad magic header %q", ErrInvalidFormat, head)
	}

	tail, err := readRange(r, size-footerTailSize, size)
	if err != nil {
		return nil, fmt.Errorf("reading the file magic footer failed: %w", err)
	}
	if !bytes.Equal(tail[4:], magic) {
		return nil, fmt.Errorf("%w: bad magic footer %q", ErrInvalidFormat, tail[4:])
	}

	fl := int64(binary.LittleEndian.Uint32(tail[:4]))
	if fl <= 0 || fl > size-footerTailSize {
		return nil, fmt.Errorf("%w: footer len %d out of bounds for file of %d bytes", ErrInvalidFormat, fl, size)
	}

	footer, err := readRange(r, size-footerTailSize-fl, size-footerTailSize)
	if err != nil {
		return nil, fmt.Errorf("reading the footer failed: %w", err)
	}

	meta, err := parquet.DecodeFileMetaData(footer)
	if err != nil {
		return nil, fmt.Errorf("decoding file meta data failed: %w", err)
	}

	return meta, nil
}

// readRange fetches [start, end) from the byte source, treating short reads
// and out-of-range requests as errors.
func readRange(r io.ReaderAt, start, end int64) ([]byte, error) {
	if start < 0 || end < start {
		return nil, fmt.Errorf("invalid byte range [%d, %d)", start, end)
	}
	buf := make([]byte, end-start)
	n, err := r.ReadAt(buf, start)
	if err != nil && !(err == io.EOF && int64(n) == end-start) {
		return nil, fmt.Errorf("reading byte range [%d, %d) failed: %w", start, end, err)
	}
	if int64(n) != end-start {
		return nil, fmt.Errorf("short read of byte range [%d, %d): got %d bytes", start, end, n)
	}
	return buf, nil
}

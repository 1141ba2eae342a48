package parquetmeta

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/fraugster/parquet-meta/parquet"
)

// FileReader reads the metadata of a parquet file: the footer object graph
// and, on demand, the per-column page index structures. It never loads row
// data.
type FileReader struct {
	meta   *parquet.FileMetaData
	schema *Schema
	reader io.ReaderAt
	size   int64

	file *os.File // set when the reader owns the file handle

	gapTolerance     int64
	indexConcurrency int

	pageIndexes [][]PageIndex

	warnMu   sync.Mutex
	warnings []IndexWarning
}

// PageIndex holds the page index structures of one column chunk. A nil entry
// means the index was absent from the file or failed to decode; the failure,
// if any, is recorded as an IndexWarning.
type PageIndex struct {
	ColumnIndex *parquet.ColumnIndex
	OffsetIndex *parquet.OffsetIndex
}

// ReaderOption configures a FileReader.
type ReaderOption func(*FileReader)

// WithGapTolerance sets the largest gap between two page index ranges that
// is still bridged by a single coalesced read.
func WithGapTolerance(n int64) ReaderOption {
	return func(f *FileReader) {
		f.gapTolerance = n
	}
}

// WithIndexConcurrency bounds the number of coalesced index reads in flight
// at once. A value of 1 makes the index pass fully sequential.
func WithIndexConcurrency(n int) ReaderOption {
	return func(f *FileReader) {
		if n > 0 {
			f.indexConcurrency = n
		}
	}
}

// NewFileReader creates a reader from a random-access byte source. The
// footer is read and decoded eagerly, page indexes only on ReadPageIndexes.
func NewFileReader(r io.ReaderAt, size int64, opts ...ReaderOption) (*FileReader, error) {
	meta, err := ReadFileMetaData(r, size)
	if err != nil {
		return nil, errors.Wrap(err, "reading file meta data failed")
	}

	schema, err := makeSchema(meta)
	if err != nil {
		return nil, errors.Wrap(err, "creating schema failed")
	}

	for i, rg := range meta.RowGroups {
		if len(rg.Columns) != len(schema.Leaves()) {
			return nil, errors.Errorf("row group %d has %d column chunks, schema has %d leaf columns",
				i, len(rg.Columns), len(schema.Leaves()))
		}
	}

	f := &FileReader{
		meta:             meta,
		schema:           schema,
		reader:           r,
		size:             size,
		gapTolerance:     defaultGapTolerance,
		indexConcurrency: 4,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// OpenFile opens the named file and creates a FileReader over it. Close
// releases the underlying handle.
func OpenFile(path string, opts ...ReaderOption) (*FileReader, error) {
	fl, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	st, err := fl.Stat()
	if err != nil {
		_ = fl.Close()
		return nil, err
	}

	r, err := NewFileReader(fl, st.Size(), opts...)
	if err != nil {
		_ = fl.Close()
		return nil, err
	}
	r.file = fl
	return r, nil
}

// Close closes the underlying file if the reader owns one.
func (f *FileReader) Close() error {
	if f.file != nil {
		return f.file.Close()
	}
	return nil
}

// MetaData returns the decoded footer.
func (f *FileReader) MetaData() *parquet.FileMetaData {
	return f.meta
}

// Schema returns the schema tree reconstructed from the footer.
func (f *FileReader) Schema() *Schema {
	return f.schema
}

// NumRows returns the total row count of the file.
func (f *FileReader) NumRows() int64 {
	return f.meta.NumRows
}

// RowGroupCount returns the number of row groups in the file.
func (f *FileReader) RowGroupCount() int {
	return len(f.meta.RowGroups)
}

// Size returns the file size in bytes.
func (f *FileReader) Size() int64 {
	return f.size
}

// PageIndexes returns the per-column page index slots, indexed by row group
// and column. It is nil until ReadPageIndexes has run.
func (f *FileReader) PageIndexes() [][]PageIndex {
	return f.pageIndexes
}

// IndexWarnings returns the per-slot failures collected by the last
// ReadPageIndexes run.
func (f *FileReader) IndexWarnings() []IndexWarning {
	return f.warnings
}

// ReadPageIndexes fetches and decodes the column and offset indexes of every
// column chunk that carries them, coalescing nearby byte ranges into a small
// number of reads.
func (f *FileReader) ReadPageIndexes() error {
	return f.ReadPageIndexesWithContext(context.Background())
}

// ReadPageIndexesWithContext is ReadPageIndexes with cancellation. A failed
// or canceled batch read only leaves its own slots empty; batches already
// fetched remain valid.
func (f *FileReader) ReadPageIndexesWithContext(ctx context.Context) error {
	f.pageIndexes = make([][]PageIndex, len(f.meta.RowGroups))
	f.warnings = nil

	var requests []rangeRequest
	for i, rg := range f.meta.RowGroups {
		f.pageIndexes[i] = make([]PageIndex, len(rg.Columns))
		for j, col := range rg.Columns {
			if col.ColumnIndexOffset != nil && col.ColumnIndexLength != nil {
				requests = f.appendIndexRequest(requests, rangeRequest{
					offset:   *col.ColumnIndexOffset,
					length:   int64(*col.ColumnIndexLength),
					rowGroup: i,
					column:   j,
					kind:     ColumnIndexKind,
				})
			}
			if col.OffsetIndexOffset != nil && col.OffsetIndexLength != nil {
				requests = f.appendIndexRequest(requests, rangeRequest{
					offset:   *col.OffsetIndexOffset,
					length:   int64(*col.OffsetIndexLength),
					rowGroup: i,
					column:   j,
					kind:     OffsetIndexKind,
				})
			}
		}
	}

	if len(requests) == 0 {
		return nil
	}

	batches := planBatches(requests, f.gapTolerance)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.indexConcurrency)
	for _, batch := range batches {
		batch := batch
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				f.warnBatch(batch, err)
				return err
			}

			buf, err := readRange(f.reader, batch.start, batch.end)
			if err != nil {
				// isolated to this batch's slots
				f.warnBatch(batch, err)
				return nil
			}

			for _, req := range batch.requests {
				f.decodeIndexSlot(req, batch.slice(buf, req))
			}
			return nil
		})
	}
	return g.Wait()
}

// appendIndexRequest validates the offsets announced by the footer against
// the file bounds before trusting them; a bogus location becomes a warning
// instead of a wild read.
func (f *FileReader) appendIndexRequest(requests []rangeRequest, req rangeRequest) []rangeRequest {
	if req.offset < 0 || req.length <= 0 || req.end() > f.size {
		f.warn(IndexWarning{
			RowGroup: req.rowGroup,
			Column:   req.column,
			Kind:     req.kind,
			Err:      errors.Errorf("index location [%d, %d) outside file of %d bytes", req.offset, req.end(), f.size),
		})
		return requests
	}
	return append(requests, req)
}

// decodeIndexSlot decodes one fetched index byte range into its slot. Slots
// are disjoint across batches so the write needs no lock.
func (f *FileReader) decodeIndexSlot(req rangeRequest, data []byte) {
	switch req.kind {
	case ColumnIndexKind:
		idx, err := parquet.DecodeColumnIndex(data)
		if err != nil {
			f.warn(IndexWarning{RowGroup: req.rowGroup, Column: req.column, Kind: req.kind, Err: err})
			return
		}
		f.pageIndexes[req.rowGroup][req.column].ColumnIndex = idx
	case OffsetIndexKind:
		idx, err := parquet.DecodeOffsetIndex(data)
		if err != nil {
			f.warn(IndexWarning{RowGroup: req.rowGroup, Column: req.column, Kind: req.kind, Err: err})
			return
		}
		f.pageIndexes[req.rowGroup][req.column].OffsetIndex = idx
	}
}

func (f *FileReader) warn(w IndexWarning) {
	f.warnMu.Lock()
	f.warnings = append(f.warnings, w)
	f.warnMu.Unlock()
}

func (f *FileReader) warnBatch(batch readBatch, err error) {
	for _, req := range batch.requests {
		f.warn(IndexWarning{RowGroup: req.rowGroup, Column: req.column, Kind: req.kind, Err: err})
	}
}

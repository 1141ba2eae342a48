package parquetmeta

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat reports a file that is not a parquet file: bad or missing
// magic markers, or a footer length that exceeds the file bounds. It aborts
// the whole decode.
var ErrInvalidFormat = errors.New("invalid parquet file")

// IndexKind tells which page index structure a diagnostic refers to.
type IndexKind int

const (
	ColumnIndexKind IndexKind = iota
	OffsetIndexKind
)

func (k IndexKind) String() string {
	switch k {
	case ColumnIndexKind:
		return "column index"
	case OffsetIndexKind:
		return "offset index"
	}
	return fmt.Sprintf("index kind %d", int(k))
}

// IndexWarning records the failure to fetch or decode one page index slot.
// A warning never interrupts the decoding of the remaining slots; the
// affected slot simply stays nil.
type IndexWarning struct {
	RowGroup int
	Column   int
	Kind     IndexKind
	Err      error
}

func (w IndexWarning) Error() string {
	return fmt.Sprintf("row group %d column %d: reading %s failed: %v", w.RowGroup, w.Column, w.Kind, w.Err)
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (w IndexWarning) Unwrap() error {
	return w.Err
}

// Package parquet contains the parquet file metadata object graph and the
// compact protocol decoders that materialize it from footer bytes.
//
// The structures mirror the thrift definitions of the parquet format.
// Optional fields are pointers, enums are kept as their raw wire codes, the
// String methods map them to the names used by the format specification.
package parquet

import "strconv"

func unknownEnum(v int32) string {
	return "UNKNOWN(" + strconv.Itoa(int(v)) + ")"
}

// Type is the physical type of a column.
type Type int32

const (
	Type_BOOLEAN              Type = 0
	Type_INT32                Type = 1
	Type_INT64                Type = 2
	Type_INT96                Type = 3
	Type_FLOAT                Type = 4
	Type_DOUBLE               Type = 5
	Type_BYTE_ARRAY           Type = 6
	Type_FIXED_LEN_BYTE_ARRAY Type = 7
)

var typeNames = map[Type]string{
	Type_BOOLEAN:              "BOOLEAN",
	Type_INT32:                "INT32",
	Type_INT64:                "INT64",
	Type_INT96:                "INT96",
	Type_FLOAT:                "FLOAT",
	Type_DOUBLE:               "DOUBLE",
	Type_BYTE_ARRAY:           "BYTE_ARRAY",
	Type_FIXED_LEN_BYTE_ARRAY: "FIXED_LEN_BYTE_ARRAY",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return unknownEnum(int32(t))
}

// ConvertedType is the deprecated logical type annotation, kept for files
// written before the LogicalType union existed.
type ConvertedType int32

const (
	ConvertedType_UTF8             ConvertedType = 0
	ConvertedType_MAP              ConvertedType = 1
	ConvertedType_MAP_KEY_VALUE    ConvertedType = 2
	ConvertedType_LIST             ConvertedType = 3
	ConvertedType_ENUM             ConvertedType = 4
	ConvertedType_DECIMAL          ConvertedType = 5
	ConvertedType_DATE             ConvertedType = 6
	ConvertedType_TIME_MILLIS      ConvertedType = 7
	ConvertedType_TIME_MICROS      ConvertedType = 8
	ConvertedType_TIMESTAMP_MILLIS ConvertedType = 9
	ConvertedType_TIMESTAMP_MICROS ConvertedType = 10
	ConvertedType_UINT_8           ConvertedType = 11
	ConvertedType_UINT_16          ConvertedType = 12
	ConvertedType_UINT_32          ConvertedType = 13
	ConvertedType_UINT_64          ConvertedType = 14
	ConvertedType_INT_8            ConvertedType = 15
	ConvertedType_INT_16           ConvertedType = 16
	ConvertedType_INT_32           ConvertedType = 17
	ConvertedType_INT_64           ConvertedType = 18
	ConvertedType_JSON             ConvertedType = 19
	ConvertedType_BSON             ConvertedType = 20
	ConvertedType_INTERVAL         ConvertedType = 21
)

var convertedTypeNames = map[ConvertedType]string{
	ConvertedType_UTF8:             "UTF8",
	ConvertedType_MAP:              "MAP",
	ConvertedType_MAP_KEY_VALUE:    "MAP_KEY_VALUE",
	ConvertedType_LIST:             "LIST",
	ConvertedType_ENUM:             "ENUM",
	ConvertedType_DECIMAL:          "DECIMAL",
	ConvertedType_DATE:             "DATE",
	ConvertedType_TIME_MILLIS:      "TIME_MILLIS",
	ConvertedType_TIME_MICROS:      "TIME_MICROS",
	ConvertedType_TIMESTAMP_MILLIS: "TIMESTAMP_MILLIS",
	ConvertedType_TIMESTAMP_MICROS: "TIMESTAMP_MICROS",
	ConvertedType_UINT_8:           "UINT_8",
	ConvertedType_UINT_16:          "UINT_16",
	ConvertedType_UINT_32:          "UINT_32",
	ConvertedType_UINT_64:          "UINT_64",
	ConvertedType_INT_8:            "INT_8",
	ConvertedType_INT_16:           "INT_16",
	ConvertedType_INT_32:           "INT_32",
	ConvertedType_INT_64:           "INT_64",
	ConvertedType_JSON:             "JSON",
	ConvertedType_BSON:             "BSON",
	ConvertedType_INTERVAL:         "INTERVAL",
}

func (t ConvertedType) String() string {
	if s, ok := convertedTypeNames[t]; ok {
		return s
	}
	return unknownEnum(int32(t))
}

// FieldRepetitionType is the repetition requirement of a schema element.
type FieldRepetitionType int32

const (
	FieldRepetitionType_REQUIRED FieldRepetitionType = 0
	FieldRepetitionType_OPTIONAL FieldRepetitionType = 1
	FieldRepetitionType_REPEATED FieldRepetitionType = 2
)

func (t FieldRepetitionType) String() string {
	switch t {
	case FieldRepetitionType_REQUIRED:
		return "REQUIRED"
	case FieldRepetitionType_OPTIONAL:
		return "OPTIONAL"
	case FieldRepetitionType_REPEATED:
		return "REPEATED"
	}
	return unknownEnum(int32(t))
}

// Encoding of data pages or levels.
type Encoding int32

const (
	Encoding_PLAIN                   Encoding = 0
	Encoding_PLAIN_DICTIONARY        Encoding = 2
	Encoding_RLE                     Encoding = 3
	Encoding_BIT_PACKED              Encoding = 4
	Encoding_DELTA_BINARY_PACKED     Encoding = 5
	Encoding_DELTA_LENGTH_BYTE_ARRAY Encoding = 6
	Encoding_DELTA_BYTE_ARRAY        Encoding = 7
	Encoding_RLE_DICTIONARY          Encoding = 8
	Encoding_BYTE_STREAM_SPLIT       Encoding = 9
)

var encodingNames = map[Encoding]string{
	Encoding_PLAIN:                   "PLAIN",
	Encoding_PLAIN_DICTIONARY:        "PLAIN_DICTIONARY",
	Encoding_RLE:                     "RLE",
	Encoding_BIT_PACKED:              "BIT_PACKED",
	Encoding_DELTA_BINARY_PACKED:     "DELTA_BINARY_PACKED",
	Encoding_DELTA_LENGTH_BYTE_ARRAY: "DELTA_LENGTH_BYTE_ARRAY",
	Encoding_DELTA_BYTE_ARRAY:        "DELTA_BYTE_ARRAY",
	Encoding_RLE_DICTIONARY:          "RLE_DICTIONARY",
	Encoding_BYTE_STREAM_SPLIT:       "BYTE_STREAM_SPLIT",
}

func (e Encoding) String() string {
	if s, ok := encodingNames[e]; ok {
		return s
	}
	return unknownEnum(int32(e))
}

// CompressionCodec of column chunk data.
type CompressionCodec int32

const (
	CompressionCodec_UNCOMPRESSED CompressionCodec = 0
	CompressionCodec_SNAPPY       CompressionCodec = 1
	CompressionCodec_GZIP         CompressionCodec = 2
	CompressionCodec_LZO          CompressionCodec = 3
	CompressionCodec_BROTLI       CompressionCodec = 4
	CompressionCodec_LZ4          CompressionCodec = 5
	CompressionCodec_ZSTD         CompressionCodec = 6
	CompressionCodec_LZ4_RAW      CompressionCodec = 7
)

var codecNames = map[CompressionCodec]string{
	CompressionCodec_UNCOMPRESSED: "UNCOMPRESSED",
	CompressionCodec_SNAPPY:       "SNAPPY",
	CompressionCodec_GZIP:         "GZIP",
	CompressionCodec_LZO:          "LZO",
	CompressionCodec_BROTLI:       "BROTLI",
	CompressionCodec_LZ4:          "LZ4",
	CompressionCodec_ZSTD:         "ZSTD",
	CompressionCodec_LZ4_RAW:      "LZ4_RAW",
}

func (c CompressionCodec) String() string {
	if s, ok := codecNames[c]; ok {
		return s
	}
	return unknownEnum(int32(c))
}

// PageType of a page inside a column chunk.
type PageType int32

const (
	PageType_DATA_PAGE       PageType = 0
	PageType_INDEX_PAGE      PageType = 1
	PageType_DICTIONARY_PAGE PageType = 2
	PageType_DATA_PAGE_V2    PageType = 3
)

func (t PageType) String() string {
	switch t {
	case PageType_DATA_PAGE:
		return "DATA_PAGE"
	case PageType_INDEX_PAGE:
		return "INDEX_PAGE"
	case PageType_DICTIONARY_PAGE:
		return "DICTIONARY_PAGE"
	case PageType_DATA_PAGE_V2:
		return "DATA_PAGE_V2"
	}
	return unknownEnum(int32(t))
}

// BoundaryOrder describes whether the min/max values of a column index are
// monotonic across pages.
type BoundaryOrder int32

const (
	BoundaryOrder_UNORDERED  BoundaryOrder = 0
	BoundaryOrder_ASCENDING  BoundaryOrder = 1
	BoundaryOrder_DESCENDING BoundaryOrder = 2
)

func (o BoundaryOrder) String() string {
	switch o {
	case BoundaryOrder_UNORDERED:
		return "UNORDERED"
	case BoundaryOrder_ASCENDING:
		return "ASCENDING"
	case BoundaryOrder_DESCENDING:
		return "DESCENDING"
	}
	return unknownEnum(int32(o))
}

// TimeUnit of a TIME or TIMESTAMP logical type. Exactly one flag is set.
type TimeUnit struct {
	Millis bool
	Micros bool
	Nanos  bool
}

// DecimalType annotation, scale and precision of a decimal column.
type DecimalType struct {
	Scale     int32
	Precision int32
}

// TimeType annotation for time-of-day columns.
type TimeType struct {
	IsAdjustedToUTC bool
	Unit            *TimeUnit
}

// TimestampType annotation for instant columns.
type TimestampType struct {
	IsAdjustedToUTC bool
	Unit            *TimeUnit
}

// IntType annotation carrying the width and signedness of integer columns.
type IntType struct {
	BitWidth int8
	IsSigned bool
}

// LogicalType is the modern type annotation, a union with at most one member
// set. Marker members carry no payload and are represented as booleans.
type LogicalType struct {
	String    bool
	Map       bool
	List      bool
	Enum      bool
	Decimal   *DecimalType
	Date      bool
	Time      *TimeType
	Timestamp *TimestampType
	Integer   *IntType
	Unknown   bool
	JSON      bool
	BSON      bool
	UUID      bool
	Float16   bool
}

// SchemaElement is one node of the flattened pre-order schema tree. Internal
// nodes have NumChildren set and no physical type, leaves the other way
// around.
type SchemaElement struct {
	Type           *Type
	TypeLength     *int32
	RepetitionType *FieldRepetitionType
	Name           string
	NumChildren    *int32
	ConvertedType  *ConvertedType
	Scale          *int32
	Precision      *int32
	FieldID        *int32
	LogicalType    *LogicalType
}

// Statistics of a column chunk or page. Min/Max are deprecated in favour of
// MinValue/MaxValue; both pairs can be present in the wild.
type Statistics struct {
	Max           []byte
	Min           []byte
	NullCount     *int64
	DistinctCount *int64
	MaxValue      []byte
	MinValue      []byte
}

// MinBytes returns the min statistic, preferring the modern field over the
// deprecated one when both are present.
func (s *Statistics) MinBytes() []byte {
	if s.MinValue != nil {
		return s.MinValue
	}
	return s.Min
}

// MaxBytes returns the max statistic, preferring the modern field over the
// deprecated one when both are present.
func (s *Statistics) MaxBytes() []byte {
	if s.MaxValue != nil {
		return s.MaxValue
	}
	return s.Max
}

// KeyValue is one entry of the free-form file metadata.
type KeyValue struct {
	Key   string
	Value *string
}

// SortingColumn describes one sort criterion of a row group.
type SortingColumn struct {
	ColumnIdx  int32
	Descending bool
	NullsFirst bool
}

// PageEncodingStats counts pages of one page type and encoding.
type PageEncodingStats struct {
	PageType PageType
	Encoding Encoding
	Count    int32
}

// ColumnMetaData describes one column chunk's data.
type ColumnMetaData struct {
	Type                  Type
	Encodings             []Encoding
	PathInSchema          []string
	Codec                 CompressionCodec
	NumValues             int64
	TotalUncompressedSize int64
	TotalCompressedSize   int64
	KeyValueMetadata      []*KeyValue
	DataPageOffset        int64
	IndexPageOffset       *int64
	DictionaryPageOffset  *int64
	Statistics            *Statistics
	EncodingStats         []*PageEncodingStats
	BloomFilterOffset     *int64
	BloomFilterLength     *int32
}

// ColumnChunk locates one column's data and page indexes inside the file.
type ColumnChunk struct {
	FilePath          *string
	FileOffset        int64
	MetaData          *ColumnMetaData
	OffsetIndexOffset *int64
	OffsetIndexLength *int32
	ColumnIndexOffset *int64
	ColumnIndexLength *int32
}

// RowGroup is one horizontal partition of the file.
type RowGroup struct {
	Columns             []*ColumnChunk
	TotalByteSize       int64
	NumRows             int64
	SortingColumns      []*SortingColumn
	FileOffset          *int64
	TotalCompressedSize *int64
	Ordinal             *int16
}

// FileMetaData is the footer of a parquet file.
type FileMetaData struct {
	Version          int32
	Schema           []*SchemaElement
	NumRows          int64
	RowGroups        []*RowGroup
	KeyValueMetadata []*KeyValue
	CreatedBy        *string
}

// PageLocation locates one page inside a column chunk.
type PageLocation struct {
	Offset             int64
	CompressedPageSize int32
	FirstRowIndex      int64
}

// OffsetIndex lists the page locations of one column chunk.
type OffsetIndex struct {
	PageLocations []*PageLocation
}

// ColumnIndex holds the per-page min/max statistics of one column chunk. The
// four slices are parallel and of equal length.
type ColumnIndex struct {
	NullPages     []bool
	MinValues     [][]byte
	MaxValues     [][]byte
	BoundaryOrder BoundaryOrder
	NullCounts    []int64
}

// NumPages returns the number of pages covered by the index.
func (c *ColumnIndex) NumPages() int {
	return len(c.NullPages)
}

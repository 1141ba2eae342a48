package parquetmeta

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/fraugster/parquet-meta/parquet"
)

// notAvailable is rendered when a statistics value is absent or too short
// for its declared physical type.
const notAvailable = "-"

const (
	maxStringRunes = 64
	maxHexBytes    = 32
)

// logicalKind is the resolved semantic interpretation of a column, computed
// from the modern LogicalType annotation or, failing that, the deprecated
// ConvertedType.
type logicalKind int

const (
	kindPlain logicalKind = iota
	kindString
	kindDate
	kindTimeMillis
	kindTimeMicros
	kindTimeNanos
	kindTimestampMillis
	kindTimestampMicros
	kindTimestampNanos
	kindDecimal
	kindUUID
)

// FormatStatValue renders a raw min or max statistics value as a
// display-ready string, given the schema element of its column. The function
// never fails: values that are too short, not valid UTF-8, or otherwise
// unsuitable degrade to a hex rendering or the "-" sentinel.
func FormatStatValue(value []byte, elem *parquet.SchemaElement) string {
	if value == nil {
		return notAvailable
	}
	if elem == nil || elem.Type == nil {
		return hexString(value)
	}

	kind := resolveLogicalKind(elem)

	switch *elem.Type {
	case parquet.Type_BOOLEAN:
		if len(value) < 1 {
			return notAvailable
		}
		return strconv.FormatBool(value[0] != 0)

	case parquet.Type_INT32:
		if len(value) < 4 {
			return notAvailable
		}
		v := int64(int32(binary.LittleEndian.Uint32(value)))
		return formatInteger(v, kind, decimalScale(elem))

	case parquet.Type_INT64:
		if len(value) < 8 {
			return notAvailable
		}
		v := int64(binary.LittleEndian.Uint64(value))
		return formatInteger(v, kind, decimalScale(elem))

	case parquet.Type_INT96:
		if len(value) != 12 {
			return hexString(value)
		}
		return formatInt96Timestamp(value)

	case parquet.Type_FLOAT:
		if len(value) < 4 {
			return notAvailable
		}
		return formatFloat(float64(math.Float32frombits(binary.LittleEndian.Uint32(value))))

	case parquet.Type_DOUBLE:
		if len(value) < 8 {
			return notAvailable
		}
		return formatFloat(math.Float64frombits(binary.LittleEndian.Uint64(value)))

	case parquet.Type_BYTE_ARRAY, parquet.Type_FIXED_LEN_BYTE_ARRAY:
		return formatByteArray(value, kind, decimalScale(elem))
	}

	return hexString(value)
}

func resolveLogicalKind(elem *parquet.SchemaElement) logicalKind {
	if lt := elem.LogicalType; lt != nil {
		switch {
		case lt.String, lt.Enum, lt.JSON, lt.BSON:
			return kindString
		case lt.Date:
			return kindDate
		case lt.UUID:
			return kindUUID
		case lt.Decimal != nil:
			return kindDecimal
		case lt.Time != nil && lt.Time.Unit != nil:
			switch {
			case lt.Time.Unit.Micros:
				return kindTimeMicros
			case lt.Time.Unit.Nanos:
				return kindTimeNanos
			default:
				return kindTimeMillis
			}
		case lt.Timestamp != nil && lt.Timestamp.Unit != nil:
			switch {
			case lt.Timestamp.Unit.Micros:
				return kindTimestampMicros
			case lt.Timestamp.Unit.Nanos:
				return kindTimestampNanos
			default:
				return kindTimestampMillis
			}
		}
	}

	if ct := elem.ConvertedType; ct != nil {
		switch *ct {
		case parquet.ConvertedType_UTF8, parquet.ConvertedType_ENUM, parquet.ConvertedType_JSON, parquet.ConvertedType_BSON:
			return kindString
		case parquet.ConvertedType_DATE:
			return kindDate
		case parquet.ConvertedType_DECIMAL:
			return kindDecimal
		case parquet.ConvertedType_TIME_MILLIS:
			return kindTimeMillis
		case parquet.ConvertedType_TIME_MICROS:
			return kindTimeMicros
		case parquet.ConvertedType_TIMESTAMP_MILLIS:
			return kindTimestampMillis
		case parquet.ConvertedType_TIMESTAMP_MICROS:
			return kindTimestampMicros
		}
	}

	return kindPlain
}

// decimalScale returns the scale of a decimal column, the modern annotation
// winning over the deprecated per-element field.
func decimalScale(elem *parquet.SchemaElement) int {
	if elem.LogicalType != nil && elem.LogicalType.Decimal != nil {
		return int(elem.LogicalType.Decimal.Scale)
	}
	if elem.Scale != nil {
		return int(*elem.Scale)
	}
	return 0
}

func formatInteger(v int64, kind logicalKind, scale int) string {
	switch kind {
	case kindDate:
		return time.Unix(v*86400, 0).UTC().Format("2006-01-02")
	case kindTimeMillis:
		return formatTimeOfDay(v)
	case kindTimeMicros:
		return formatTimeOfDay(v / 1000)
	case kindTimeNanos:
		return formatTimeOfDay(v / 1000000)
	case kindTimestampMillis:
		return formatTimestampMillis(v)
	case kindTimestampMicros:
		return formatTimestampMillis(v / 1000)
	case kindTimestampNanos:
		return formatTimestampMillis(v / 1000000)
	case kindDecimal:
		return formatDecimalDigits(strconv.FormatInt(v, 10), scale)
	}
	return strconv.FormatInt(v, 10)
}

// formatTimeOfDay renders milliseconds since midnight as HH:MM:SS, with the
// millisecond fraction attached only when it is nonzero.
func formatTimeOfDay(millis int64) string {
	neg := ""
	if millis < 0 {
		neg = "-"
		millis = -millis
	}
	ms := millis % 1000
	secs := millis / 1000
	if ms == 0 {
		return fmt.Sprintf("%s%02d:%02d:%02d", neg, secs/3600, secs/60%60, secs%60)
	}
	return fmt.Sprintf("%s%02d:%02d:%02d.%03d", neg, secs/3600, secs/60%60, secs%60, ms)
}

func formatTimestampMillis(millis int64) string {
	return time.UnixMilli(millis).UTC().Format("2006-01-02T15:04:05.000Z")
}

// julianDayUnixEpoch is the Julian day number of Jan 1, 1970.
const julianDayUnixEpoch = 2440588

// formatInt96Timestamp renders the legacy 96-bit timestamp: 8 bytes of
// little-endian nanoseconds within the day followed by a 4-byte little-endian
// Julian day number.
func formatInt96Timestamp(value []byte) string {
	nanos := int64(binary.LittleEndian.Uint64(value[:8]))
	julianDay := int32(binary.LittleEndian.Uint32(value[8:]))

	unixDays := int64(julianDay) - julianDayUnixEpoch
	millis := unixDays*86400000 + nanos/1000000
	return formatTimestampMillis(millis)
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e6) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatDecimalDigits places the decimal point into the digit string of the
// unscaled integer: the absolute value is zero-padded to at least scale+1
// digits, then split scale digits from the right.
func formatDecimalDigits(digits string, scale int) string {
	if scale <= 0 {
		return digits
	}

	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign = "-"
		digits = digits[1:]
	}
	for len(digits) < scale+1 {
		digits = "0" + digits
	}

	split := len(digits) - scale
	return sign + digits[:split] + "." + digits[split:]
}

func formatByteArray(value []byte, kind logicalKind, scale int) string {
	switch kind {
	case kindUUID:
		u, err := uuid.FromBytes(value)
		if err != nil {
			return hexString(value)
		}
		return u.String()
	case kindDecimal:
		return formatDecimalDigits(bigEndianDecimalDigits(value), scale)
	}

	if s, ok := printableString(value); ok {
		return s
	}
	return hexString(value)
}

// bigEndianDecimalDigits interprets the bytes as a big-endian
// two's-complement integer and returns its decimal digit string.
func bigEndianDecimalDigits(value []byte) string {
	if len(value) == 0 {
		return "0"
	}

	neg := value[0]&0x80 != 0
	mag := new(big.Int)
	if neg {
		comp := make([]byte, len(value))
		for i, b := range value {
			comp[i] = ^b
		}
		mag.SetBytes(comp)
		mag.Add(mag, big.NewInt(1))
		return "-" + mag.String()
	}
	mag.SetBytes(value)
	return mag.String()
}

// printableString accepts the value as text only when it is valid UTF-8 and
// every rune is printable ASCII, tab, newline, carriage return, or a
// non-ASCII code point. Long strings are truncated with an ellipsis.
func printableString(value []byte) (string, bool) {
	if !utf8.Valid(value) {
		return "", false
	}

	s := string(value)
	for _, r := range s {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return "", false
		}
		if r == 0x7f {
			return "", false
		}
	}

	runes := []rune(s)
	if len(runes) > maxStringRunes {
		return string(runes[:maxStringRunes]) + "...", true
	}
	return s, true
}

// hexString is the bounded fallback rendering for values that have no better
// interpretation.
func hexString(value []byte) string {
	if len(value) == 0 {
		return notAvailable
	}
	if len(value) > maxHexBytes {
		return "0x" + strings.ToUpper(hex.EncodeToString(value[:maxHexBytes])) + "..."
	}
	return "0x" + strings.ToUpper(hex.EncodeToString(value))
}

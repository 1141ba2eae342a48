package parquet

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Compact protocol type tags, low nibble of every field header byte.
const (
	typeStop   = 0
	typeTrue   = 1
	typeFalse  = 2
	typeByte   = 3
	typeI16    = 4
	typeI32    = 5
	typeI64    = 6
	typeDouble = 7
	typeBinary = 8
	typeList   = 9
	typeSet    = 10
	typeMap    = 11
	typeStruct = 12
)

// compactReader is a cursor over a thrift compact protocol byte stream. It
// keeps one last-field-id value per open struct so that delta-encoded field
// ids resolve against the correct nesting depth, and at most one pending
// boolean whose value was merged into a field header byte.
type compactReader struct {
	data []byte
	pos  int

	lastFieldID []int16

	pendingBool    bool
	pendingBoolVal bool
}

func newCompactReader(data []byte) *compactReader {
	return &compactReader{data: data}
}

func (r *compactReader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, io.ErrUnexpectedEOF
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *compactReader) readSlice(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, io.ErrUnexpectedEOF
	}
	s := r.data[r.pos : r.pos+n]
	r.pos += n
	return s, nil
}

func (r *compactReader) skipBytes(n int) error {
	if n < 0 || r.pos+n > len(r.data) {
		return io.ErrUnexpectedEOF
	}
	r.pos += n
	return nil
}

// readUvarint reads an unsigned LEB128 varint, least significant group
// first, continuation in the high bit of each byte.
func (r *compactReader) readUvarint() (uint64, error) {
	var x uint64
	var s uint
	for i := 0; ; i++ {
		if r.pos >= len(r.data) {
			return 0, io.ErrUnexpectedEOF
		}
		v := r.data[r.pos]
		r.pos++
		if v < 0x80 {
			if i >= binary.MaxVarintLen64 || i == binary.MaxVarintLen64-1 && v > 1 {
				return 0, fmt.Errorf("varint overflows uint64")
			}
			return x | uint64(v)<<s, nil
		}
		x |= uint64(v&0x7f) << s
		s += 7
	}
}

// readVarint reads a zig-zag encoded signed integer, mapping the unsigned
// sequence 0,1,2,3,4 to 0,-1,1,-2,2.
func (r *compactReader) readVarint() (int64, error) {
	ux, err := r.readUvarint()
	if err != nil {
		return 0, err
	}
	x := int64(ux >> 1)
	if ux&1 != 0 {
		x = ^x
	}
	return x, nil
}

func (r *compactReader) structBegin() {
	r.lastFieldID = append(r.lastFieldID, 0)
}

func (r *compactReader) structEnd() {
	r.lastFieldID = r.lastFieldID[:len(r.lastFieldID)-1]
}

// readFieldHeader reads one field header byte. A zero byte signals the end of
// the current struct and is reported as typeStop. Otherwise the low nibble is
// the type tag and the high nibble a field-id delta; a zero delta means the
// id follows as a separate zig-zag varint. Boolean field values are encoded
// in the type tag itself and are stashed for the next readBool.
func (r *compactReader) readFieldHeader() (typ byte, id int16, err error) {
	v, err := r.readByte()
	if err != nil {
		return 0, 0, err
	}

	typ = v & 0x0f
	if typ == typeStop {
		return typeStop, 0, nil
	}

	depth := len(r.lastFieldID) - 1
	if delta := v >> 4; delta != 0 {
		id = r.lastFieldID[depth] + int16(delta)
	} else {
		n, err := r.readVarint()
		if err != nil {
			return 0, 0, err
		}
		id = int16(n)
	}
	r.lastFieldID[depth] = id

	if typ == typeTrue || typ == typeFalse {
		r.pendingBool = true
		r.pendingBoolVal = typ == typeTrue
	}

	return typ, id, nil
}

// readBool consumes the pending boolean of the last field header, or reads a
// one-byte boolean when the value was a collection element.
func (r *compactReader) readBool() (bool, error) {
	if r.pendingBool {
		r.pendingBool = false
		return r.pendingBoolVal, nil
	}
	v, err := r.readByte()
	if err != nil {
		return false, err
	}
	return v == typeTrue, nil
}

func (r *compactReader) readI8() (int8, error) {
	v, err := r.readByte()
	return int8(v), err
}

func (r *compactReader) readI16() (int16, error) {
	v, err := r.readVarint()
	return int16(v), err
}

func (r *compactReader) readI32() (int32, error) {
	v, err := r.readVarint()
	return int32(v), err
}

func (r *compactReader) readI64() (int64, error) {
	return r.readVarint()
}

func (r *compactReader) readDouble() (float64, error) {
	b, err := r.readSlice(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// readBinary reads a varint length followed by that many raw bytes. The
// returned slice aliases the underlying buffer.
func (r *compactReader) readBinary() ([]byte, error) {
	n, err := r.readUvarint()
	if err != nil {
		return nil, err
	}
	if int64(n) < 0 || n > uint64(len(r.data)-r.pos) {
		return nil, io.ErrUnexpectedEOF
	}
	if n == 0 {
		return nil, nil
	}
	return r.readSlice(int(n))
}

func (r *compactReader) readString() (string, error) {
	b, err := r.readBinary()
	return string(b), err
}

// readListHeader reads a list or set header: element type in the low nibble,
// count in the high nibble with 0xF escaping to a separate varint.
func (r *compactReader) readListHeader() (elemType byte, count int, err error) {
	v, err := r.readByte()
	if err != nil {
		return 0, 0, err
	}
	elemType = v & 0x0f
	count = int(v >> 4)
	if count == 0x0f {
		n, err := r.readUvarint()
		if err != nil {
			return 0, 0, err
		}
		count = int(n)
	}
	return elemType, count, nil
}

// readMapHeader reads the element count followed, for non-empty maps only,
// by one byte holding the key type in the high nibble and the value type in
// the low nibble.
func (r *compactReader) readMapHeader() (keyType, valType byte, count int, err error) {
	n, err := r.readUvarint()
	if err != nil {
		return 0, 0, 0, err
	}
	if n == 0 {
		return 0, 0, 0, nil
	}
	v, err := r.readByte()
	if err != nil {
		return 0, 0, 0, err
	}
	return v >> 4, v & 0x0f, int(n), nil
}

// skip structurally skips one value of the given type without materializing
// it, recursing through containers. This is what keeps unknown future fields
// from breaking the decode.
func (r *compactReader) skip(typ byte) error {
	switch typ {
	case typeTrue, typeFalse:
		_, err := r.readBool()
		return err
	case typeByte:
		return r.skipBytes(1)
	case typeI16, typeI32, typeI64:
		_, err := r.readVarint()
		return err
	case typeDouble:
		return r.skipBytes(8)
	case typeBinary:
		n, err := r.readUvarint()
		if err != nil {
			return err
		}
		return r.skipBytes(int(n))
	case typeList, typeSet:
		elemType, count, err := r.readListHeader()
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			if err := r.skip(elemType); err != nil {
				return err
			}
		}
		return nil
	case typeMap:
		keyType, valType, count, err := r.readMapHeader()
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			if err := r.skip(keyType); err != nil {
				return err
			}
			if err := r.skip(valType); err != nil {
				return err
			}
		}
		return nil
	case typeStruct:
		r.structBegin()
		for {
			typ, _, err := r.readFieldHeader()
			if err != nil {
				return err
			}
			if typ == typeStop {
				r.structEnd()
				return nil
			}
			if err := r.skip(typ); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown compact type %d", typ)
	}
}

// Package parquettest serializes footer metadata structs with the apache
// thrift compact protocol writer. Tests use it to produce byte streams from
// an independent thrift implementation and feed them to the hand-written
// decoder.
package parquettest

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/fraugster/parquet-meta/parquet"
)

// EncodeFileMetaData serializes a FileMetaData the way a parquet writer
// serializes the file footer.
func EncodeFileMetaData(m *parquet.FileMetaData) ([]byte, error) {
	e := NewEncoder()
	e.FileMetaData(m)
	return e.Bytes()
}

// EncodeColumnIndex serializes a ColumnIndex page index struct.
func EncodeColumnIndex(c *parquet.ColumnIndex) ([]byte, error) {
	e := NewEncoder()
	e.ColumnIndex(c)
	return e.Bytes()
}

// EncodeOffsetIndex serializes an OffsetIndex page index struct.
func EncodeOffsetIndex(o *parquet.OffsetIndex) ([]byte, error) {
	e := NewEncoder()
	e.OffsetIndex(o)
	return e.Bytes()
}

// Encoder writes metadata structs into an in-memory thrift transport. Errors
// stick; the first one is reported by Bytes.
type Encoder struct {
	ctx context.Context
	mem *thrift.TMemoryBuffer
	p   *thrift.TCompactProtocol
	err error
}

func NewEncoder() *Encoder {
	mem := thrift.NewTMemoryBuffer()
	return &Encoder{
		ctx: context.Background(),
		mem: mem,
		p:   thrift.NewTCompactProtocolConf(mem, nil),
	}
}

// Bytes flushes the protocol and returns the serialized stream.
func (e *Encoder) Bytes() ([]byte, error) {
	e.check(e.p.Flush(e.ctx))
	if e.err != nil {
		return nil, e.err
	}
	return e.mem.Bytes(), nil
}

func (e *Encoder) check(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *Encoder) structBegin() {
	e.check(e.p.WriteStructBegin(e.ctx, ""))
}

func (e *Encoder) structEnd() {
	e.check(e.p.WriteFieldStop(e.ctx))
	e.check(e.p.WriteStructEnd(e.ctx))
}

func (e *Encoder) fieldBegin(typ thrift.TType, id int16) {
	e.check(e.p.WriteFieldBegin(e.ctx, "", typ, id))
}

func (e *Encoder) fieldEnd() {
	e.check(e.p.WriteFieldEnd(e.ctx))
}

func (e *Encoder) boolField(id int16, v bool) {
	e.fieldBegin(thrift.BOOL, id)
	e.check(e.p.WriteBool(e.ctx, v))
	e.fieldEnd()
}

func (e *Encoder) i8Field(id int16, v int8) {
	e.fieldBegin(thrift.BYTE, id)
	e.check(e.p.WriteByte(e.ctx, v))
	e.fieldEnd()
}

func (e *Encoder) i16Field(id int16, v int16) {
	e.fieldBegin(thrift.I16, id)
	e.check(e.p.WriteI16(e.ctx, v))
	e.fieldEnd()
}

func (e *Encoder) i32Field(id int16, v int32) {
	e.fieldBegin(thrift.I32, id)
	e.check(e.p.WriteI32(e.ctx, v))
	e.fieldEnd()
}

func (e *Encoder) i64Field(id int16, v int64) {
	e.fieldBegin(thrift.I64, id)
	e.check(e.p.WriteI64(e.ctx, v))
	e.fieldEnd()
}

func (e *Encoder) binaryField(id int16, v []byte) {
	e.fieldBegin(thrift.STRING, id)
	e.check(e.p.WriteBinary(e.ctx, v))
	e.fieldEnd()
}

func (e *Encoder) stringField(id int16, v string) {
	e.fieldBegin(thrift.STRING, id)
	e.check(e.p.WriteString(e.ctx, v))
	e.fieldEnd()
}

func (e *Encoder) listBegin(id int16, elem thrift.TType, n int) {
	e.fieldBegin(thrift.LIST, id)
	e.check(e.p.WriteListBegin(e.ctx, elem, n))
}

func (e *Encoder) listEnd() {
	e.check(e.p.WriteListEnd(e.ctx))
	e.fieldEnd()
}

// emptyStructField writes a field holding a struct with no fields, the shape
// of the marker members of thrift unions like LogicalType and TimeUnit.
func (e *Encoder) emptyStructField(id int16) {
	e.fieldBegin(thrift.STRUCT, id)
	e.structBegin()
	e.structEnd()
	e.fieldEnd()
}

func (e *Encoder) FileMetaData(m *parquet.FileMetaData) {
	e.structBegin()
	e.i32Field(1, m.Version)
	if m.Schema != nil {
		e.listBegin(2, thrift.STRUCT, len(m.Schema))
		for _, se := range m.Schema {
			e.schemaElement(se)
		}
		e.listEnd()
	}
	e.i64Field(3, m.NumRows)
	if m.RowGroups != nil {
		e.listBegin(4, thrift.STRUCT, len(m.RowGroups))
		for _, rg := range m.RowGroups {
			e.rowGroup(rg)
		}
		e.listEnd()
	}
	if m.KeyValueMetadata != nil {
		e.keyValueList(5, m.KeyValueMetadata)
	}
	if m.CreatedBy != nil {
		e.stringField(6, *m.CreatedBy)
	}
	e.structEnd()
}

func (e *Encoder) keyValueList(id int16, kvs []*parquet.KeyValue) {
	e.listBegin(id, thrift.STRUCT, len(kvs))
	for _, kv := range kvs {
		e.structBegin()
		e.stringField(1, kv.Key)
		if kv.Value != nil {
			e.stringField(2, *kv.Value)
		}
		e.structEnd()
	}
	e.listEnd()
}

func (e *Encoder) schemaElement(se *parquet.SchemaElement) {
	e.structBegin()
	if se.Type != nil {
		e.i32Field(1, int32(*se.Type))
	}
	if se.TypeLength != nil {
		e.i32Field(2, *se.TypeLength)
	}
	if se.RepetitionType != nil {
		e.i32Field(3, int32(*se.RepetitionType))
	}
	e.stringField(4, se.Name)
	if se.NumChildren != nil {
		e.i32Field(5, *se.NumChildren)
	}
	if se.ConvertedType != nil {
		e.i32Field(6, int32(*se.ConvertedType))
	}
	if se.Scale != nil {
		e.i32Field(7, *se.Scale)
	}
	if se.Precision != nil {
		e.i32Field(8, *se.Precision)
	}
	if se.FieldID != nil {
		e.i32Field(9, *se.FieldID)
	}
	if se.LogicalType != nil {
		e.fieldBegin(thrift.STRUCT, 10)
		e.logicalType(se.LogicalType)
		e.fieldEnd()
	}
	e.structEnd()
}

func (e *Encoder) logicalType(lt *parquet.LogicalType) {
	e.structBegin()
	switch {
	case lt.String:
		e.emptyStructField(1)
	case lt.Map:
		e.emptyStructField(2)
	case lt.List:
		e.emptyStructField(3)
	case lt.Enum:
		e.emptyStructField(4)
	case lt.Decimal != nil:
		e.fieldBegin(thrift.STRUCT, 5)
		e.structBegin()
		e.i32Field(1, lt.Decimal.Scale)
		e.i32Field(2, lt.Decimal.Precision)
		e.structEnd()
		e.fieldEnd()
	case lt.Date:
		e.emptyStructField(6)
	case lt.Time != nil:
		e.fieldBegin(thrift.STRUCT, 7)
		e.structBegin()
		e.boolField(1, lt.Time.IsAdjustedToUTC)
		e.fieldBegin(thrift.STRUCT, 2)
		e.timeUnit(lt.Time.Unit)
		e.fieldEnd()
		e.structEnd()
		e.fieldEnd()
	case lt.Timestamp != nil:
		e.fieldBegin(thrift.STRUCT, 8)
		e.structBegin()
		e.boolField(1, lt.Timestamp.IsAdjustedToUTC)
		e.fieldBegin(thrift.STRUCT, 2)
		e.timeUnit(lt.Timestamp.Unit)
		e.fieldEnd()
		e.structEnd()
		e.fieldEnd()
	case lt.Integer != nil:
		e.fieldBegin(thrift.STRUCT, 10)
		e.structBegin()
		e.i8Field(1, lt.Integer.BitWidth)
		e.boolField(2, lt.Integer.IsSigned)
		e.structEnd()
		e.fieldEnd()
	case lt.Unknown:
		e.emptyStructField(11)
	case lt.JSON:
		e.emptyStructField(12)
	case lt.BSON:
		e.emptyStructField(13)
	case lt.UUID:
		e.emptyStructField(14)
	case lt.Float16:
		e.emptyStructField(15)
	}
	e.structEnd()
}

func (e *Encoder) timeUnit(u *parquet.TimeUnit) {
	e.structBegin()
	switch {
	case u.Millis:
		e.emptyStructField(1)
	case u.Micros:
		e.emptyStructField(2)
	case u.Nanos:
		e.emptyStructField(3)
	}
	e.structEnd()
}

func (e *Encoder) rowGroup(rg *parquet.RowGroup) {
	e.structBegin()
	if rg.Columns != nil {
		e.listBegin(1, thrift.STRUCT, len(rg.Columns))
		for _, cc := range rg.Columns {
			e.columnChunk(cc)
		}
		e.listEnd()
	}
	e.i64Field(2, rg.TotalByteSize)
	e.i64Field(3, rg.NumRows)
	if rg.SortingColumns != nil {
		e.listBegin(4, thrift.STRUCT, len(rg.SortingColumns))
		for _, sc := range rg.SortingColumns {
			e.structBegin()
			e.i32Field(1, sc.ColumnIdx)
			e.boolField(2, sc.Descending)
			e.boolField(3, sc.NullsFirst)
			e.structEnd()
		}
		e.listEnd()
	}
	if rg.FileOffset != nil {
		e.i64Field(5, *rg.FileOffset)
	}
	if rg.TotalCompressedSize != nil {
		e.i64Field(6, *rg.TotalCompressedSize)
	}
	if rg.Ordinal != nil {
		e.i16Field(7, *rg.Ordinal)
	}
	e.structEnd()
}

func (e *Encoder) columnChunk(cc *parquet.ColumnChunk) {
	e.structBegin()
	if cc.FilePath != nil {
		e.stringField(1, *cc.FilePath)
	}
	e.i64Field(2, cc.FileOffset)
	if cc.MetaData != nil {
		e.fieldBegin(thrift.STRUCT, 3)
		e.columnMetaData(cc.MetaData)
		e.fieldEnd()
	}
	if cc.OffsetIndexOffset != nil {
		e.i64Field(4, *cc.OffsetIndexOffset)
	}
	if cc.OffsetIndexLength != nil {
		e.i32Field(5, *cc.OffsetIndexLength)
	}
	if cc.ColumnIndexOffset != nil {
		e.i64Field(6, *cc.ColumnIndexOffset)
	}
	if cc.ColumnIndexLength != nil {
		e.i32Field(7, *cc.ColumnIndexLength)
	}
	e.structEnd()
}

func (e *Encoder) columnMetaData(md *parquet.ColumnMetaData) {
	e.structBegin()
	e.i32Field(1, int32(md.Type))
	e.listBegin(2, thrift.I32, len(md.Encodings))
	for _, enc := range md.Encodings {
		e.check(e.p.WriteI32(e.ctx, int32(enc)))
	}
	e.listEnd()
	e.listBegin(3, thrift.STRING, len(md.PathInSchema))
	for _, p := range md.PathInSchema {
		e.check(e.p.WriteString(e.ctx, p))
	}
	e.listEnd()
	e.i32Field(4, int32(md.Codec))
	e.i64Field(5, md.NumValues)
	e.i64Field(6, md.TotalUncompressedSize)
	e.i64Field(7, md.TotalCompressedSize)
	if md.KeyValueMetadata != nil {
		e.keyValueList(8, md.KeyValueMetadata)
	}
	e.i64Field(9, md.DataPageOffset)
	if md.IndexPageOffset != nil {
		e.i64Field(10, *md.IndexPageOffset)
	}
	if md.DictionaryPageOffset != nil {
		e.i64Field(11, *md.DictionaryPageOffset)
	}
	if md.Statistics != nil {
		e.fieldBegin(thrift.STRUCT, 12)
		e.statistics(md.Statistics)
		e.fieldEnd()
	}
	if md.EncodingStats != nil {
		e.listBegin(13, thrift.STRUCT, len(md.EncodingStats))
		for _, pes := range md.EncodingStats {
			e.structBegin()
			e.i32Field(1, int32(pes.PageType))
			e.i32Field(2, int32(pes.Encoding))
			e.i32Field(3, pes.Count)
			e.structEnd()
		}
		e.listEnd()
	}
	if md.BloomFilterOffset != nil {
		e.i64Field(14, *md.BloomFilterOffset)
	}
	if md.BloomFilterLength != nil {
		e.i32Field(15, *md.BloomFilterLength)
	}
	e.structEnd()
}

func (e *Encoder) statistics(st *parquet.Statistics) {
	e.structBegin()
	if st.Max != nil {
		e.binaryField(1, st.Max)
	}
	if st.Min != nil {
		e.binaryField(2, st.Min)
	}
	if st.NullCount != nil {
		e.i64Field(3, *st.NullCount)
	}
	if st.DistinctCount != nil {
		e.i64Field(4, *st.DistinctCount)
	}
	if st.MaxValue != nil {
		e.binaryField(5, st.MaxValue)
	}
	if st.MinValue != nil {
		e.binaryField(6, st.MinValue)
	}
	e.structEnd()
}

func (e *Encoder) ColumnIndex(c *parquet.ColumnIndex) {
	e.structBegin()
	e.listBegin(1, thrift.BOOL, len(c.NullPages))
	for _, v := range c.NullPages {
		e.check(e.p.WriteBool(e.ctx, v))
	}
	e.listEnd()
	e.listBegin(2, thrift.STRING, len(c.MinValues))
	for _, v := range c.MinValues {
		e.check(e.p.WriteBinary(e.ctx, v))
	}
	e.listEnd()
	e.listBegin(3, thrift.STRING, len(c.MaxValues))
	for _, v := range c.MaxValues {
		e.check(e.p.WriteBinary(e.ctx, v))
	}
	e.listEnd()
	e.i32Field(4, int32(c.BoundaryOrder))
	if c.NullCounts != nil {
		e.listBegin(5, thrift.I64, len(c.NullCounts))
		for _, v := range c.NullCounts {
			e.check(e.p.WriteI64(e.ctx, v))
		}
		e.listEnd()
	}
	e.structEnd()
}

func (e *Encoder) OffsetIndex(o *parquet.OffsetIndex) {
	e.structBegin()
	e.listBegin(1, thrift.STRUCT, len(o.PageLocations))
	for _, pl := range o.PageLocations {
		e.structBegin()
		e.i64Field(1, pl.Offset)
		e.i32Field(2, pl.CompressedPageSize)
		e.i64Field(3, pl.FirstRowIndex)
		e.structEnd()
	}
	e.listEnd()
	e.structEnd()
}

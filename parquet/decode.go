package parquet

import "fmt"

// DecodeFileMetaData decodes a serialized FileMetaData struct, usually the
// footer byte range of a parquet file.
func DecodeFileMetaData(data []byte) (*FileMetaData, error) {
	r := newCompactReader(data)
	m := &FileMetaData{}
	if err := r.decodeFileMetaData(m); err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeColumnIndex decodes a serialized ColumnIndex struct.
func DecodeColumnIndex(data []byte) (*ColumnIndex, error) {
	r := newCompactReader(data)
	c := &ColumnIndex{}
	if err := r.decodeColumnIndex(c); err != nil {
		return nil, err
	}
	if len(c.MinValues) != len(c.NullPages) || len(c.MaxValues) != len(c.NullPages) {
		return nil, fmt.Errorf("column index page lists of unequal length: %d null flags, %d mins, %d maxes",
			len(c.NullPages), len(c.MinValues), len(c.MaxValues))
	}
	return c, nil
}

// DecodeOffsetIndex decodes a serialized OffsetIndex struct.
func DecodeOffsetIndex(data []byte) (*OffsetIndex, error) {
	r := newCompactReader(data)
	o := &OffsetIndex{}
	if err := r.decodeOffsetIndex(o); err != nil {
		return nil, err
	}
	return o, nil
}

// Field readers that assert the wire type before consuming the value, so a
// field carrying an unexpected type is a decode error instead of a misparse.

func (r *compactReader) fieldBool(typ byte, what string) (bool, error) {
	if typ != typeTrue && typ != typeFalse {
		return false, fmt.Errorf("%s: expected BOOL, got type %d", what, typ)
	}
	return r.readBool()
}

func (r *compactReader) fieldI8(typ byte, what string) (int8, error) {
	if typ != typeByte {
		return 0, fmt.Errorf("%s: expected BYTE, got type %d", what, typ)
	}
	return r.readI8()
}

func (r *compactReader) fieldI16(typ byte, what string) (int16, error) {
	if typ != typeI16 {
		return 0, fmt.Errorf("%s: expected I16, got type %d", what, typ)
	}
	return r.readI16()
}

func (r *compactReader) fieldI32(typ byte, what string) (int32, error) {
	if typ != typeI32 {
		return 0, fmt.Errorf("%s: expected I32, got type %d", what, typ)
	}
	return r.readI32()
}

func (r *compactReader) fieldI64(typ byte, what string) (int64, error) {
	if typ != typeI64 {
		return 0, fmt.Errorf("%s: expected I64, got type %d", what, typ)
	}
	return r.readI64()
}

func (r *compactReader) fieldBinary(typ byte, what string) ([]byte, error) {
	if typ != typeBinary {
		return nil, fmt.Errorf("%s: expected BINARY, got type %d", what, typ)
	}
	return r.readBinary()
}

func (r *compactReader) fieldString(typ byte, what string) (string, error) {
	b, err := r.fieldBinary(typ, what)
	return string(b), err
}

// listHeader asserts a list field and returns its element count after
// checking the declared element type.
func (r *compactReader) listHeader(typ byte, what string, want byte) (int, error) {
	if typ != typeList {
		return 0, fmt.Errorf("%s: expected LIST, got type %d", what, typ)
	}
	elemType, count, err := r.readListHeader()
	if err != nil {
		return 0, err
	}
	if count > 0 && elemType != want {
		return 0, fmt.Errorf("%s: unexpected element type %d", what, elemType)
	}
	return count, nil
}

// boolListHeader is listHeader for list<bool>, where the element type tag is
// either of the two boolean tags.
func (r *compactReader) boolListHeader(typ byte, what string) (int, error) {
	if typ != typeList {
		return 0, fmt.Errorf("%s: expected LIST, got type %d", what, typ)
	}
	elemType, count, err := r.readListHeader()
	if err != nil {
		return 0, err
	}
	if count > 0 && elemType != typeTrue && elemType != typeFalse {
		return 0, fmt.Errorf("%s: unexpected element type %d", what, elemType)
	}
	return count, nil
}

func (r *compactReader) decodeFileMetaData(m *FileMetaData) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch id {
		case 1:
			m.Version, err = r.fieldI32(typ, "FileMetaData.Version")
		case 2:
			count, err := r.listHeader(typ, "FileMetaData.Schema", typeStruct)
			if err != nil {
				return err
			}
			m.Schema = make([]*SchemaElement, count)
			for i := range m.Schema {
				se := &SchemaElement{}
				if err := r.decodeSchemaElement(se); err != nil {
					return err
				}
				m.Schema[i] = se
			}
		case 3:
			m.NumRows, err = r.fieldI64(typ, "FileMetaData.NumRows")
		case 4:
			count, err := r.listHeader(typ, "FileMetaData.RowGroups", typeStruct)
			if err != nil {
				return err
			}
			m.RowGroups = make([]*RowGroup, count)
			for i := range m.RowGroups {
				rg := &RowGroup{}
				if err := r.decodeRowGroup(rg); err != nil {
					return err
				}
				m.RowGroups[i] = rg
			}
		case 5:
			kvs, err := r.decodeKeyValueList(typ, "FileMetaData.KeyValueMetadata")
			if err != nil {
				return err
			}
			m.KeyValueMetadata = kvs
		case 6:
			s, err := r.fieldString(typ, "FileMetaData.CreatedBy")
			if err != nil {
				return err
			}
			m.CreatedBy = &s
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodeKeyValueList(typ byte, what string) ([]*KeyValue, error) {
	count, err := r.listHeader(typ, what, typeStruct)
	if err != nil {
		return nil, err
	}
	kvs := make([]*KeyValue, count)
	for i := range kvs {
		kv := &KeyValue{}
		if err := r.decodeKeyValue(kv); err != nil {
			return nil, err
		}
		kvs[i] = kv
	}
	return kvs, nil
}

func (r *compactReader) decodeKeyValue(kv *KeyValue) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch id {
		case 1:
			kv.Key, err = r.fieldString(typ, "KeyValue.Key")
		case 2:
			s, err := r.fieldString(typ, "KeyValue.Value")
			if err != nil {
				return err
			}
			kv.Value = &s
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodeSchemaElement(se *SchemaElement) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch id {
		case 1:
			v, err := r.fieldI32(typ, "SchemaElement.Type")
			if err != nil {
				return err
			}
			t := Type(v)
			se.Type = &t
		case 2:
			v, err := r.fieldI32(typ, "SchemaElement.TypeLength")
			if err != nil {
				return err
			}
			se.TypeLength = &v
		case 3:
			v, err := r.fieldI32(typ, "SchemaElement.RepetitionType")
			if err != nil {
				return err
			}
			rt := FieldRepetitionType(v)
			se.RepetitionType = &rt
		case 4:
			se.Name, err = r.fieldString(typ, "SchemaElement.Name")
		case 5:
			v, err := r.fieldI32(typ, "SchemaElement.NumChildren")
			if err != nil {
				return err
			}
			se.NumChildren = &v
		case 6:
			v, err := r.fieldI32(typ, "SchemaElement.ConvertedType")
			if err != nil {
				return err
			}
			ct := ConvertedType(v)
			se.ConvertedType = &ct
		case 7:
			v, err := r.fieldI32(typ, "SchemaElement.Scale")
			if err != nil {
				return err
			}
			se.Scale = &v
		case 8:
			v, err := r.fieldI32(typ, "SchemaElement.Precision")
			if err != nil {
				return err
			}
			se.Precision = &v
		case 9:
			v, err := r.fieldI32(typ, "SchemaElement.FieldID")
			if err != nil {
				return err
			}
			se.FieldID = &v
		case 10:
			if typ != typeStruct {
				return fmt.Errorf("SchemaElement.LogicalType: expected STRUCT, got type %d", typ)
			}
			lt := &LogicalType{}
			if err := r.decodeLogicalType(lt); err != nil {
				return err
			}
			se.LogicalType = lt
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodeLogicalType(lt *LogicalType) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		// every member of the union is a struct; markers are empty ones
		if typ != typeStruct {
			if err := r.skip(typ); err != nil {
				return err
			}
			continue
		}
		switch id {
		case 1:
			lt.String = true
			err = r.skip(typeStruct)
		case 2:
			lt.Map = true
			err = r.skip(typeStruct)
		case 3:
			lt.List = true
			err = r.skip(typeStruct)
		case 4:
			lt.Enum = true
			err = r.skip(typeStruct)
		case 5:
			dt := &DecimalType{}
			if err := r.decodeDecimalType(dt); err != nil {
				return err
			}
			lt.Decimal = dt
		case 6:
			lt.Date = true
			err = r.skip(typeStruct)
		case 7:
			tt := &TimeType{}
			if err := r.decodeTimeType(tt); err != nil {
				return err
			}
			lt.Time = tt
		case 8:
			tt := &TimestampType{}
			if err := r.decodeTimestampType(tt); err != nil {
				return err
			}
			lt.Timestamp = tt
		case 10:
			it := &IntType{}
			if err := r.decodeIntType(it); err != nil {
				return err
			}
			lt.Integer = it
		case 11:
			lt.Unknown = true
			err = r.skip(typeStruct)
		case 12:
			lt.JSON = true
			err = r.skip(typeStruct)
		case 13:
			lt.BSON = true
			err = r.skip(typeStruct)
		case 14:
			lt.UUID = true
			err = r.skip(typeStruct)
		case 15:
			lt.Float16 = true
			err = r.skip(typeStruct)
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodeDecimalType(dt *DecimalType) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch id {
		case 1:
			dt.Scale, err = r.fieldI32(typ, "DecimalType.Scale")
		case 2:
			dt.Precision, err = r.fieldI32(typ, "DecimalType.Precision")
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodeTimeUnit(u *TimeUnit) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch {
		case id == 1 && typ == typeStruct:
			u.Millis = true
			err = r.skip(typeStruct)
		case id == 2 && typ == typeStruct:
			u.Micros = true
			err = r.skip(typeStruct)
		case id == 3 && typ == typeStruct:
			u.Nanos = true
			err = r.skip(typeStruct)
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodeTimeType(tt *TimeType) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch id {
		case 1:
			tt.IsAdjustedToUTC, err = r.fieldBool(typ, "TimeType.IsAdjustedToUTC")
		case 2:
			if typ != typeStruct {
				return fmt.Errorf("TimeType.Unit: expected STRUCT, got type %d", typ)
			}
			u := &TimeUnit{}
			if err := r.decodeTimeUnit(u); err != nil {
				return err
			}
			tt.Unit = u
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodeTimestampType(tt *TimestampType) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch id {
		case 1:
			tt.IsAdjustedToUTC, err = r.fieldBool(typ, "TimestampType.IsAdjustedToUTC")
		case 2:
			if typ != typeStruct {
				return fmt.Errorf("TimestampType.Unit: expected STRUCT, got type %d", typ)
			}
			u := &TimeUnit{}
			if err := r.decodeTimeUnit(u); err != nil {
				return err
			}
			tt.Unit = u
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodeIntType(it *IntType) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch id {
		case 1:
			it.BitWidth, err = r.fieldI8(typ, "IntType.BitWidth")
		case 2:
			it.IsSigned, err = r.fieldBool(typ, "IntType.IsSigned")
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodeRowGroup(rg *RowGroup) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch id {
		case 1:
			count, err := r.listHeader(typ, "RowGroup.Columns", typeStruct)
			if err != nil {
				return err
			}
			rg.Columns = make([]*ColumnChunk, count)
			for i := range rg.Columns {
				cc := &ColumnChunk{}
				if err := r.decodeColumnChunk(cc); err != nil {
					return err
				}
				rg.Columns[i] = cc
			}
		case 2:
			rg.TotalByteSize, err = r.fieldI64(typ, "RowGroup.TotalByteSize")
		case 3:
			rg.NumRows, err = r.fieldI64(typ, "RowGroup.NumRows")
		case 4:
			count, err := r.listHeader(typ, "RowGroup.SortingColumns", typeStruct)
			if err != nil {
				return err
			}
			rg.SortingColumns = make([]*SortingColumn, count)
			for i := range rg.SortingColumns {
				sc := &SortingColumn{}
				if err := r.decodeSortingColumn(sc); err != nil {
					return err
				}
				rg.SortingColumns[i] = sc
			}
		case 5:
			v, err := r.fieldI64(typ, "RowGroup.FileOffset")
			if err != nil {
				return err
			}
			rg.FileOffset = &v
		case 6:
			v, err := r.fieldI64(typ, "RowGroup.TotalCompressedSize")
			if err != nil {
				return err
			}
			rg.TotalCompressedSize = &v
		case 7:
			v, err := r.fieldI16(typ, "RowGroup.Ordinal")
			if err != nil {
				return err
			}
			rg.Ordinal = &v
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodeSortingColumn(sc *SortingColumn) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch id {
		case 1:
			sc.ColumnIdx, err = r.fieldI32(typ, "SortingColumn.ColumnIdx")
		case 2:
			sc.Descending, err = r.fieldBool(typ, "SortingColumn.Descending")
		case 3:
			sc.NullsFirst, err = r.fieldBool(typ, "SortingColumn.NullsFirst")
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodeColumnChunk(cc *ColumnChunk) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch id {
		case 1:
			s, err := r.fieldString(typ, "ColumnChunk.FilePath")
			if err != nil {
				return err
			}
			cc.FilePath = &s
		case 2:
			cc.FileOffset, err = r.fieldI64(typ, "ColumnChunk.FileOffset")
		case 3:
			if typ != typeStruct {
				return fmt.Errorf("ColumnChunk.MetaData: expected STRUCT, got type %d", typ)
			}
			md := &ColumnMetaData{}
			if err := r.decodeColumnMetaData(md); err != nil {
				return err
			}
			cc.MetaData = md
		case 4:
			v, err := r.fieldI64(typ, "ColumnChunk.OffsetIndexOffset")
			if err != nil {
				return err
			}
			cc.OffsetIndexOffset = &v
		case 5:
			v, err := r.fieldI32(typ, "ColumnChunk.OffsetIndexLength")
			if err != nil {
				return err
			}
			cc.OffsetIndexLength = &v
		case 6:
			v, err := r.fieldI64(typ, "ColumnChunk.ColumnIndexOffset")
			if err != nil {
				return err
			}
			cc.ColumnIndexOffset = &v
		case 7:
			v, err := r.fieldI32(typ, "ColumnChunk.ColumnIndexLength")
			if err != nil {
				return err
			}
			cc.ColumnIndexLength = &v
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodeColumnMetaData(md *ColumnMetaData) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch id {
		case 1:
			v, err := r.fieldI32(typ, "ColumnMetaData.Type")
			if err != nil {
				return err
			}
			md.Type = Type(v)
		case 2:
			count, err := r.listHeader(typ, "ColumnMetaData.Encodings", typeI32)
			if err != nil {
				return err
			}
			md.Encodings = make([]Encoding, count)
			for i := range md.Encodings {
				v, err := r.readI32()
				if err != nil {
					return err
				}
				md.Encodings[i] = Encoding(v)
			}
		case 3:
			count, err := r.listHeader(typ, "ColumnMetaData.PathInSchema", typeBinary)
			if err != nil {
				return err
			}
			md.PathInSchema = make([]string, count)
			for i := range md.PathInSchema {
				if md.PathInSchema[i], err = r.readString(); err != nil {
					return err
				}
			}
		case 4:
			v, err := r.fieldI32(typ, "ColumnMetaData.Codec")
			if err != nil {
				return err
			}
			md.Codec = CompressionCodec(v)
		case 5:
			md.NumValues, err = r.fieldI64(typ, "ColumnMetaData.NumValues")
		case 6:
			md.TotalUncompressedSize, err = r.fieldI64(typ, "ColumnMetaData.TotalUncompressedSize")
		case 7:
			md.TotalCompressedSize, err = r.fieldI64(typ, "ColumnMetaData.TotalCompressedSize")
		case 8:
			kvs, err := r.decodeKeyValueList(typ, "ColumnMetaData.KeyValueMetadata")
			if err != nil {
				return err
			}
			md.KeyValueMetadata = kvs
		case 9:
			md.DataPageOffset, err = r.fieldI64(typ, "ColumnMetaData.DataPageOffset")
		case 10:
			v, err := r.fieldI64(typ, "ColumnMetaData.IndexPageOffset")
			if err != nil {
				return err
			}
			md.IndexPageOffset = &v
		case 11:
			v, err := r.fieldI64(typ, "ColumnMetaData.DictionaryPageOffset")
			if err != nil {
				return err
			}
			md.DictionaryPageOffset = &v
		case 12:
			if typ != typeStruct {
				return fmt.Errorf("ColumnMetaData.Statistics: expected STRUCT, got type %d", typ)
			}
			st := &Statistics{}
			if err := r.decodeStatistics(st); err != nil {
				return err
			}
			md.Statistics = st
		case 13:
			count, err := r.listHeader(typ, "ColumnMetaData.EncodingStats", typeStruct)
			if err != nil {
				return err
			}
			md.EncodingStats = make([]*PageEncodingStats, count)
			for i := range md.EncodingStats {
				pes := &PageEncodingStats{}
				if err := r.decodePageEncodingStats(pes); err != nil {
					return err
				}
				md.EncodingStats[i] = pes
			}
		case 14:
			v, err := r.fieldI64(typ, "ColumnMetaData.BloomFilterOffset")
			if err != nil {
				return err
			}
			md.BloomFilterOffset = &v
		case 15:
			v, err := r.fieldI32(typ, "ColumnMetaData.BloomFilterLength")
			if err != nil {
				return err
			}
			md.BloomFilterLength = &v
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodeStatistics(st *Statistics) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch id {
		case 1:
			st.Max, err = r.fieldBinary(typ, "Statistics.Max")
		case 2:
			st.Min, err = r.fieldBinary(typ, "Statistics.Min")
		case 3:
			v, err := r.fieldI64(typ, "Statistics.NullCount")
			if err != nil {
				return err
			}
			st.NullCount = &v
		case 4:
			v, err := r.fieldI64(typ, "Statistics.DistinctCount")
			if err != nil {
				return err
			}
			st.DistinctCount = &v
		case 5:
			st.MaxValue, err = r.fieldBinary(typ, "Statistics.MaxValue")
		case 6:
			st.MinValue, err = r.fieldBinary(typ, "Statistics.MinValue")
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodePageEncodingStats(pes *PageEncodingStats) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch id {
		case 1:
			v, err := r.fieldI32(typ, "PageEncodingStats.PageType")
			if err != nil {
				return err
			}
			pes.PageType = PageType(v)
		case 2:
			v, err := r.fieldI32(typ, "PageEncodingStats.Encoding")
			if err != nil {
				return err
			}
			pes.Encoding = Encoding(v)
		case 3:
			pes.Count, err = r.fieldI32(typ, "PageEncodingStats.Count")
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodeColumnIndex(c *ColumnIndex) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch id {
		case 1:
			count, err := r.boolListHeader(typ, "ColumnIndex.NullPages")
			if err != nil {
				return err
			}
			c.NullPages = make([]bool, count)
			for i := range c.NullPages {
				if c.NullPages[i], err = r.readBool(); err != nil {
					return err
				}
			}
		case 2:
			count, err := r.listHeader(typ, "ColumnIndex.MinValues", typeBinary)
			if err != nil {
				return err
			}
			c.MinValues = make([][]byte, count)
			for i := range c.MinValues {
				if c.MinValues[i], err = r.readBinary(); err != nil {
					return err
				}
			}
		case 3:
			count, err := r.listHeader(typ, "ColumnIndex.MaxValues", typeBinary)
			if err != nil {
				return err
			}
			c.MaxValues = make([][]byte, count)
			for i := range c.MaxValues {
				if c.MaxValues[i], err = r.readBinary(); err != nil {
					return err
				}
			}
		case 4:
			v, err := r.fieldI32(typ, "ColumnIndex.BoundaryOrder")
			if err != nil {
				return err
			}
			c.BoundaryOrder = BoundaryOrder(v)
		case 5:
			count, err := r.listHeader(typ, "ColumnIndex.NullCounts", typeI64)
			if err != nil {
				return err
			}
			c.NullCounts = make([]int64, count)
			for i := range c.NullCounts {
				if c.NullCounts[i], err = r.readI64(); err != nil {
					return err
				}
			}
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodeOffsetIndex(o *OffsetIndex) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch id {
		case 1:
			count, err := r.listHeader(typ, "OffsetIndex.PageLocations", typeStruct)
			if err != nil {
				return err
			}
			o.PageLocations = make([]*PageLocation, count)
			for i := range o.PageLocations {
				pl := &PageLocation{}
				if err := r.decodePageLocation(pl); err != nil {
					return err
				}
				o.PageLocations[i] = pl
			}
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

func (r *compactReader) decodePageLocation(pl *PageLocation) error {
	r.structBegin()
	defer r.structEnd()
	for {
		typ, id, err := r.readFieldHeader()
		if err != nil {
			return err
		}
		if typ == typeStop {
			return nil
		}
		switch id {
		case 1:
			pl.Offset, err = r.fieldI64(typ, "PageLocation.Offset")
		case 2:
			pl.CompressedPageSize, err = r.fieldI32(typ, "PageLocation.CompressedPageSize")
		case 3:
			pl.FirstRowIndex, err = r.fieldI64(typ, "PageLocation.FirstRowIndex")
		default:
			err = r.skip(typ)
		}
		if err != nil {
			return err
		}
	}
}

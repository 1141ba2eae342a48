package cmds

import (
	parquetmeta "github.com/fraugster/parquet-meta"
	"github.com/fraugster/parquet-meta/parquet"
)

// columnElement resolves the schema element of a column chunk from its
// path, so that statistics get rendered with the right logical type.
func columnElement(reader *parquetmeta.FileReader, path []string) *parquet.SchemaElement {
	col := reader.Schema().GetColumnByPath(path)
	if col == nil {
		return nil
	}
	return col.Element()
}

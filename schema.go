package parquetmeta

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/fraugster/parquet-meta/parquet"
)

// Column is one leaf of the schema tree, i.e. one physical column of the
// file. Its index matches the column chunk order inside every row group.
type Column struct {
	index    int
	path     []string
	flatName string
	element  *parquet.SchemaElement
}

// Index of the column in the schema.
func (c *Column) Index() int {
	return c.index
}

// Name of the column.
func (c *Column) Name() string {
	return c.element.Name
}

// FlatName of the column: the path from the root to the leaf, separated with
// dots.
func (c *Column) FlatName() string {
	return c.flatName
}

// Path of the column from the root to the leaf, without the root's name.
func (c *Column) Path() []string {
	return c.path
}

// Element of the column in the schema.
func (c *Column) Element() *parquet.SchemaElement {
	return c.element
}

func (c *Column) String() string {
	return fmt.Sprintf("%d => %s", c.index, c.flatName)
}

// Columns array of the column.
type Columns []*Column

type schemaNode struct {
	element  *parquet.SchemaElement
	children []*schemaNode
}

// Schema is the schema tree of a parquet file, reconstructed from the
// flattened pre-order SchemaElement sequence of the footer.
type Schema struct {
	root    *schemaNode
	columns Columns
}

// makeSchema rebuilds the tree: the first element is the single root, every
// internal node announces its child count in NumChildren, leaves carry a
// physical type and no children.
func makeSchema(meta *parquet.FileMetaData) (*Schema, error) {
	if len(meta.Schema) == 0 {
		return nil, errors.New("the schema is empty")
	}

	s := &Schema{}
	root, end, err := s.create(meta.Schema, nil, 0)
	if err != nil {
		return nil, err
	}
	if end != len(meta.Schema) {
		return nil, errors.Errorf("too many SchemaElements, only %d out of %d have been used",
			end, len(meta.Schema))
	}

	s.root = root
	return s, nil
}

func (s *Schema) create(schema []*parquet.SchemaElement, path []string, idx int) (*schemaNode, int, error) {
	if idx >= len(schema) {
		return nil, 0, errors.New("schema index out of bound")
	}

	elem := schema[idx]
	node := &schemaNode{element: elem}

	if elem.NumChildren == nil || *elem.NumChildren == 0 {
		if elem.Type == nil {
			return nil, 0, errors.Errorf("leaf element %q has no physical type in index %d", elem.Name, idx)
		}
		// the root's own name is not part of column paths
		if idx == 0 {
			return nil, 0, errors.New("the root element has no children")
		}
		col := &Column{
			index:   len(s.columns),
			path:    append(append([]string{}, path...), elem.Name),
			element: elem,
		}
		col.flatName = strings.Join(col.path, ".")
		s.columns = append(s.columns, col)
		return node, idx + 1, nil
	}

	if elem.Type != nil {
		return nil, 0, errors.Errorf("group element %q has a physical type in index %d", elem.Name, idx)
	}

	childPath := path
	if idx > 0 {
		childPath = append(append([]string{}, path...), elem.Name)
	}

	next := idx + 1
	for i := int32(0); i < *elem.NumChildren; i++ {
		child, n, err := s.create(schema, childPath, next)
		if err != nil {
			return nil, 0, err
		}
		node.children = append(node.children, child)
		next = n
	}
	return node, next, nil
}

// Root returns the root element of the schema.
func (s *Schema) Root() *parquet.SchemaElement {
	return s.root.element
}

// Columns returns all leaf columns in column chunk order.
func (s *Schema) Columns() Columns {
	return s.columns
}

// Leaves is an alias of Columns.
func (s *Schema) Leaves() Columns {
	return s.columns
}

// GetColumnByName returns the leaf column with the given dotted path, or nil.
func (s *Schema) GetColumnByName(flatName string) *Column {
	for i := range s.columns {
		if s.columns[i].flatName == flatName {
			return s.columns[i]
		}
	}
	return nil
}

// GetColumnByPath returns the leaf column with the given path, or nil.
func (s *Schema) GetColumnByPath(path []string) *Column {
	return s.GetColumnByName(strings.Join(path, "."))
}

// String renders the schema in the message-definition text format.
func (s *Schema) String() string {
	var sb strings.Builder

	name := s.root.element.Name
	if name == "" {
		name = "msg"
	}
	fmt.Fprintf(&sb, "message %s {\n", name)
	for _, child := range s.root.children {
		printNode(&sb, child, 1)
	}
	sb.WriteString("}\n")

	return sb.String()
}

func printNode(sb *strings.Builder, node *schemaNode, depth int) {
	indent := strings.Repeat("  ", depth)
	elem := node.element

	rep := "required"
	if elem.RepetitionType != nil {
		rep = strings.ToLower(elem.RepetitionType.String())
	}

	if elem.Type != nil {
		fmt.Fprintf(sb, "%s%s %s %s%s;\n", indent, rep, physicalTypeName(elem), elem.Name, annotation(elem))
		return
	}

	fmt.Fprintf(sb, "%s%s group %s%s {\n", indent, rep, elem.Name, annotation(elem))
	for _, child := range node.children {
		printNode(sb, child, depth+1)
	}
	fmt.Fprintf(sb, "%s}\n", indent)
}

func physicalTypeName(elem *parquet.SchemaElement) string {
	switch *elem.Type {
	case parquet.Type_BOOLEAN:
		return "boolean"
	case parquet.Type_INT32:
		return "int32"
	case parquet.Type_INT64:
		return "int64"
	case parquet.Type_INT96:
		return "int96"
	case parquet.Type_FLOAT:
		return "float"
	case parquet.Type_DOUBLE:
		return "double"
	case parquet.Type_BYTE_ARRAY:
		return "binary"
	case parquet.Type_FIXED_LEN_BYTE_ARRAY:
		if elem.TypeLength != nil {
			return fmt.Sprintf("fixed_len_byte_array(%d)", *elem.TypeLength)
		}
		return "fixed_len_byte_array"
	}
	return elem.Type.String()
}

// annotation renders the logical or converted type of an element, modern
// annotation first.
func annotation(elem *parquet.SchemaElement) string {
	if lt := elem.LogicalType; lt != nil {
		switch {
		case lt.String:
			return " (STRING)"
		case lt.Enum:
			return " (ENUM)"
		case lt.Date:
			return " (DATE)"
		case lt.JSON:
			return " (JSON)"
		case lt.BSON:
			return " (BSON)"
		case lt.UUID:
			return " (UUID)"
		case lt.Map:
			return " (MAP)"
		case lt.List:
			return " (LIST)"
		case lt.Decimal != nil:
			return fmt.Sprintf(" (DECIMAL(%d,%d))", lt.Decimal.Precision, lt.Decimal.Scale)
		case lt.Integer != nil:
			return fmt.Sprintf(" (INT(%d,%t))", lt.Integer.BitWidth, lt.Integer.IsSigned)
		case lt.Time != nil:
			return fmt.Sprintf(" (TIME(%s,%t))", timeUnitName(lt.Time.Unit), lt.Time.IsAdjustedToUTC)
		case lt.Timestamp != nil:
			return fmt.Sprintf(" (TIMESTAMP(%s,%t))", timeUnitName(lt.Timestamp.Unit), lt.Timestamp.IsAdjustedToUTC)
		}
	}
	if elem.ConvertedType != nil {
		return " (" + elem.ConvertedType.String() + ")"
	}
	return ""
}

func timeUnitName(u *parquet.TimeUnit) string {
	switch {
	case u == nil:
		return "UNKNOWN"
	case u.Millis:
		return "MILLIS"
	case u.Micros:
		return "MICROS"
	case u.Nanos:
		return "NANOS"
	}
	return "UNKNOWN"
}

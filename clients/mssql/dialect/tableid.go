package dialect

import "fmt"

const (
	// DefaultSchema is where tables go unless told otherwise, `public` is not a schema in MS SQL.
	DefaultSchema = "dbo"

	IDColumn        = "id"
	GeographyColumn = "geo"
	CreatedAtColumn = "created_at"
)

var _dialect = MSSQLDialect{}

type TableIdentifier struct {
	schema string
	table  string
}

func NewTableIdentifier(schema, table string) TableIdentifier {
	if schema == "" {
		schema = DefaultSchema
	}

	return TableIdentifier{schema: schema, table: table}
}

func (ti TableIdentifier) Schema() string {
	return ti.schema
}

func (ti TableIdentifier) Table() string {
	return ti.table
}

func (ti TableIdentifier) EscapedTable() string {
	return _dialect.QuoteIdentifier(ti.table)
}

func (ti TableIdentifier) FullyQualifiedName() string {
	return fmt.Sprintf("%s.%s", _dialect.QuoteIdentifier(ti.schema), ti.EscapedTable())
}

// ObjectName is the unquoted name accepted by OBJECT_ID.
func (ti TableIdentifier) ObjectName() string {
	return fmt.Sprintf("%s.%s", ti.schema, ti.table)
}

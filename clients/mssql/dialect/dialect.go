package dialect

import (
	"fmt"
)

type MSSQLDialect struct{}

func (MSSQLDialect) QuoteIdentifier(identifier string) string {
	return fmt.Sprintf(`"%s"`, identifier)
}

// BuildCreateTableQuery returns a statement creating the geography table unless it already exists.
// Microsoft SQL Server doesn't support IF NOT EXISTS, the object id of the table is passed as @p1.
func (md MSSQLDialect) BuildCreateTableQuery(tableID TableIdentifier) string {
	return fmt.Sprintf(`IF OBJECT_ID(@p1, N'U') IS NULL CREATE TABLE %s (%s UNIQUEIDENTIFIER NOT NULL PRIMARY KEY, %s GEOGRAPHY NOT NULL, %s DATETIME2 NOT NULL DEFAULT SYSUTCDATETIME());`,
		tableID.FullyQualifiedName(),
		md.QuoteIdentifier(IDColumn),
		md.QuoteIdentifier(GeographyColumn),
		md.QuoteIdentifier(CreatedAtColumn),
	)
}

// BuildInsertQuery takes the id as @p1, the geography text as @p2 and the SRID as @p3.
func (md MSSQLDialect) BuildInsertQuery(tableID TableIdentifier) string {
	return fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES (@p1, geography::STGeomFromText(@p2, @p3));`,
		tableID.FullyQualifiedName(),
		md.QuoteIdentifier(IDColumn),
		md.QuoteIdentifier(GeographyColumn),
	)
}

// BuildSelectQuery returns the geography text of the row whose id is @p1.
func (md MSSQLDialect) BuildSelectQuery(tableID TableIdentifier) string {
	return fmt.Sprintf(`SELECT %s.ToString() FROM %s WHERE %s = @p1;`,
		md.QuoteIdentifier(GeographyColumn),
		tableID.FullyQualifiedName(),
		md.QuoteIdentifier(IDColumn),
	)
}

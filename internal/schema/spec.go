// Package schema is the authoritative store of table definitions plus the
// structural-change operations the migration runner applies against them.
// The live database is introspected through SQLite's pragma functions, so
// idempotency probes (HasTable / HasColumn) cost one query each.
package schema

import "fmt"

// ColumnSpec describes one column of a table definition.
type ColumnSpec struct {
	Name       string
	Type       string // SQLite affinity: INTEGER | TEXT | DECIMAL(12,2) | DATETIME
	NotNull    bool
	Default    string // literal SQL, e.g. "0", "'pagado'", "CURRENT_TIMESTAMP"
	PrimaryKey bool
	References string // "tabla(columna)" for a column-level foreign key
}

// TableSpec describes a table: ordered columns plus table-level constraints.
type TableSpec struct {
	Name    string
	Columns []ColumnSpec
	Checks  []string // raw CHECK expressions, e.g. "tipo IN ('INGRESO','SALIDA','AJUSTE')"
}

// Column returns the spec for a named column, or false when absent.
func (t TableSpec) Column(name string) (ColumnSpec, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// ColumnNames returns the ordered column names of the definition.
func (t TableSpec) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// DDL renders the column as it appears inside CREATE TABLE.
func (c ColumnSpec) DDL() string {
	s := c.Name + " " + c.Type
	if c.PrimaryKey {
		s += " PRIMARY KEY AUTOINCREMENT"
	}
	if c.NotNull {
		s += " NOT NULL"
	}
	if c.Default != "" {
		s += " DEFAULT " + c.Default
	}
	if c.References != "" {
		s += " REFERENCES " + c.References
	}
	return s
}

// CreateSQL renders the full CREATE TABLE statement for the definition.
func (t TableSpec) CreateSQL(ifNotExists bool) string {
	clause := "CREATE TABLE "
	if ifNotExists {
		clause = "CREATE TABLE IF NOT EXISTS "
	}
	body := ""
	for i, c := range t.Columns {
		if i > 0 {
			body += ",\n  "
		}
		body += c.DDL()
	}
	for _, chk := range t.Checks {
		body += fmt.Sprintf(",\n  CHECK(%s)", chk)
	}
	return fmt.Sprintf("%s%s (\n  %s\n)", clause, t.Name, body)
}

package schema

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/apperror"
)

// HasTable reports whether the table exists in the live database.
func HasTable(db *gorm.DB, name string) (bool, error) {
	var n int64
	err := db.Raw(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&n).Error
	return n > 0, err
}

// HasColumn reports whether the column exists on the table.
func HasColumn(db *gorm.DB, table, column string) (bool, error) {
	var n int64
	err := db.Raw(
		"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column,
	).Scan(&n).Error
	return n > 0, err
}

// TableColumns returns the live column list of a table, in declaration order.
// Returns SchemaMismatchError when the table does not exist.
func TableColumns(db *gorm.DB, table string) ([]ColumnSpec, error) {
	ok, err := HasTable(db, table)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &apperror.SchemaMismatchError{Table: table}
	}

	var rows []struct {
		Name    string
		Type    string
		NotNull int     `gorm:"column:notnull"`
		Dflt    *string `gorm:"column:dflt_value"`
		PK      int     `gorm:"column:pk"`
	}
	err = db.Raw(
		`SELECT name, type, "notnull", dflt_value, pk FROM pragma_table_info(?) ORDER BY cid`, table,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	cols := make([]ColumnSpec, 0, len(rows))
	for _, r := range rows {
		c := ColumnSpec{
			Name:       r.Name,
			Type:       r.Type,
			NotNull:    r.NotNull == 1,
			PrimaryKey: r.PK > 0,
		}
		if r.Dflt != nil {
			c.Default = *r.Dflt
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// CountRows counts the rows of a table. Table names always come from our own
// specs, never from external input.
func CountRows(db *gorm.DB, table string) (int64, error) {
	var n int64
	err := db.Raw(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n).Error
	return n, err
}

// RequireColumn returns SchemaMismatchError when the column is absent.
// Used by verification routines before running queries that assume it.
func RequireColumn(db *gorm.DB, table, column string) error {
	ok, err := HasColumn(db, table, column)
	if err != nil {
		return err
	}
	if !ok {
		return &apperror.SchemaMismatchError{Table: table, Column: column}
	}
	return nil
}

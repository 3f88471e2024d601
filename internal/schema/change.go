package schema

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/apperror"
)

// Change is one structural operation the migration runner can apply.
// Every implementation must be idempotent: applying it to a database that
// already has the target shape is a no-op.
type Change interface {
	Apply(tx *gorm.DB) error
	String() string
}

// CreateTable creates the table when absent.
type CreateTable struct {
	Spec TableSpec
}

func (c CreateTable) String() string { return "create table " + c.Spec.Name }

func (c CreateTable) Apply(tx *gorm.DB) error {
	return tx.Exec(c.Spec.CreateSQL(true)).Error
}

// AddColumn adds the column when absent. Backfill is the migration's job,
// not the change's: existing rows get the column default.
type AddColumn struct {
	Table  string
	Column ColumnSpec
}

func (c AddColumn) String() string { return fmt.Sprintf("add column %s.%s", c.Table, c.Column.Name) }

func (c AddColumn) Apply(tx *gorm.DB) error {
	ok, err := HasColumn(tx, c.Table, c.Column.Name)
	if err != nil || ok {
		return err
	}
	return tx.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", c.Table, c.Column.DDL())).Error
}

// CreateIndex creates the index when absent.
type CreateIndex struct {
	Name    string
	Table   string
	Columns []string
}

func (c CreateIndex) String() string { return "create index " + c.Name }

func (c CreateIndex) Apply(tx *gorm.DB) error {
	return tx.Exec(fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
		c.Name, c.Table, strings.Join(c.Columns, ", "))).Error
}

// RenameColumnViaRebuild renames a column on an engine without relying on
// native column rename: create a shadow table with the target shape, copy
// every row (ids included), verify row-count parity, drop the original and
// rename the shadow into place. The caller supplies the enclosing
// transaction; a parity mismatch aborts with MigrationIntegrityError before
// anything is dropped.
type RenameColumnViaRebuild struct {
	Target TableSpec // desired shape, already carrying the new column name
	From   string
	To     string
}

func (c RenameColumnViaRebuild) String() string {
	return fmt.Sprintf("rename column %s.%s -> %s (rebuild)", c.Target.Name, c.From, c.To)
}

func (c RenameColumnViaRebuild) Apply(tx *gorm.DB) error {
	table := c.Target.Name

	// Already renamed — nothing to do.
	if ok, err := HasColumn(tx, table, c.To); err != nil || ok {
		return err
	}
	if err := RequireColumn(tx, table, c.From); err != nil {
		return err
	}

	// DROP TABLE deletes the rows it holds, which trips the child tables'
	// foreign keys mid-rebuild. Deferring enforcement to commit is safe: the
	// shadow takes the original's name, ids intact, before then. The pragma
	// resets itself when the transaction ends.
	if err := tx.Exec("PRAGMA defer_foreign_keys = ON").Error; err != nil {
		return err
	}

	shadow := c.Target
	shadow.Name = table + "__rebuild"
	if err := tx.Exec(shadow.CreateSQL(false)).Error; err != nil {
		return fmt.Errorf("crear tabla sombra: %w", err)
	}

	// Column mapping: destination order, sourcing the renamed column from its
	// old name and everything else verbatim.
	dst := c.Target.ColumnNames()
	src := make([]string, len(dst))
	for i, name := range dst {
		if name == c.To {
			src[i] = c.From
		} else {
			src[i] = name
		}
	}
	copySQL := fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s",
		shadow.Name, strings.Join(dst, ", "), strings.Join(src, ", "), table)
	if err := tx.Exec(copySQL).Error; err != nil {
		return fmt.Errorf("copiar filas a la tabla sombra: %w", err)
	}

	before, err := CountRows(tx, table)
	if err != nil {
		return err
	}
	after, err := CountRows(tx, shadow.Name)
	if err != nil {
		return err
	}
	if before != after {
		return &apperror.MigrationIntegrityError{
			Migration: c.String(),
			Detail:    fmt.Sprintf("conteo de filas: origen %d, destino %d", before, after),
		}
	}

	if err := tx.Exec(fmt.Sprintf("DROP TABLE %s", table)).Error; err != nil {
		return err
	}
	return tx.Exec(fmt.Sprintf("ALTER TABLE %s RENAME TO %s", shadow.Name, table)).Error
}

// DropColumn removes a column through the same rebuild sequence, since
// historical SQLite versions predate ALTER TABLE DROP COLUMN.
type DropColumn struct {
	Target TableSpec // desired shape, already without the column
	Column string
}

func (c DropColumn) String() string {
	return fmt.Sprintf("drop column %s.%s (rebuild)", c.Target.Name, c.Column)
}

func (c DropColumn) Apply(tx *gorm.DB) error {
	table := c.Target.Name

	if ok, err := HasColumn(tx, table, c.Column); err != nil || !ok {
		return err
	}

	// Same foreign-key deferral as the rename rebuild.
	if err := tx.Exec("PRAGMA defer_foreign_keys = ON").Error; err != nil {
		return err
	}

	shadow := c.Target
	shadow.Name = table + "__rebuild"
	if err := tx.Exec(shadow.CreateSQL(false)).Error; err != nil {
		return fmt.Errorf("crear tabla sombra: %w", err)
	}

	cols := strings.Join(c.Target.ColumnNames(), ", ")
	copySQL := fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s", shadow.Name, cols, cols, table)
	if err := tx.Exec(copySQL).Error; err != nil {
		return fmt.Errorf("copiar filas a la tabla sombra: %w", err)
	}

	before, err := CountRows(tx, table)
	if err != nil {
		return err
	}
	after, err := CountRows(tx, shadow.Name)
	if err != nil {
		return err
	}
	if before != after {
		return &apperror.MigrationIntegrityError{
			Migration: c.String(),
			Detail:    fmt.Sprintf("conteo de filas: origen %d, destino %d", before, after),
		}
	}

	if err := tx.Exec(fmt.Sprintf("DROP TABLE %s", table)).Error; err != nil {
		return err
	}
	return tx.Exec(fmt.Sprintf("ALTER TABLE %s RENAME TO %s", shadow.Name, table)).Error
}

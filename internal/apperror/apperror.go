// Package apperror defines the typed error taxonomy shared by the migration,
// reconciliation and consolidation layers. Callers branch on these with
// errors.As / errors.Is instead of matching message strings, so message text
// can stay human-oriented.
package apperror

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrLegacyTableAbsent signals that a consolidation source table does not
// exist. Commands treat it as "nothing to migrate", not as a failure.
var ErrLegacyTableAbsent = errors.New("tabla legacy inexistente")

// SchemaMismatchError reports an expected table or column that is missing
// from the live database.
type SchemaMismatchError struct {
	Table  string
	Column string // empty when the whole table is missing
}

func (e *SchemaMismatchError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("esquema: falta la tabla %q", e.Table)
	}
	return fmt.Sprintf("esquema: falta la columna %s.%s", e.Table, e.Column)
}

// MigrationIntegrityError is returned when a structural change fails its
// post-condition (row-count parity, invariant probe). The enclosing
// transaction must be rolled back — never committed partially.
type MigrationIntegrityError struct {
	Migration string
	Detail    string
}

func (e *MigrationIntegrityError) Error() string {
	return fmt.Sprintf("migración %q: integridad violada: %s", e.Migration, e.Detail)
}

// InconsistentLedgerError reports a stored aggregate that disagrees with the
// sum recomputed from its ledger (abonos or venta_items). It is reported,
// never auto-corrected outside the explicit repair mode.
type InconsistentLedgerError struct {
	Entity   string // "venta"
	EntityID uint
	Field    string // "monto_pagado" | "total"
	Stored   decimal.Decimal
	Ledger   decimal.Decimal
}

func (e *InconsistentLedgerError) Error() string {
	return fmt.Sprintf("%s %d: %s almacenado %s difiere del ledger %s",
		e.Entity, e.EntityID, e.Field, e.Stored.StringFixed(2), e.Ledger.StringFixed(2))
}

// InsufficientStockError rejects a SALIDA that would drive stock negative.
type InsufficientStockError struct {
	ProductoID  uint
	StockActual int
	Solicitado  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("producto %d: stock insuficiente (actual %d, solicitado %d)",
		e.ProductoID, e.StockActual, e.Solicitado)
}

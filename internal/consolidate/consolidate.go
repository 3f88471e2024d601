// Package consolidate merges superseded tables into their current successors
// without loss or duplication. The destination is authoritative: a row whose
// key already exists there is never overwritten, and the legacy table is
// never dropped here — deletion is a separate operator decision.
package consolidate

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/apperror"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/schema"
)

// Backfill runs inside the consolidation transaction, after the insert, to
// fix up columns the legacy shape never had. It commits or rolls back with
// the copied rows.
type Backfill func(tx *gorm.DB) error

// PaymentBackfill marks sales coming from a legacy shape that predates
// payment tracking as fully paid, the same policy the payment-tracking
// migration applies: a sale recorded before fiado existed was a cash sale.
// Without it the migrated rows keep the column defaults (estado pagado with
// monto_pagado 0), breaking monto_pagado + monto_pendiente == total.
// No-op when the legacy table already tracked payments: its figures travel
// with the row.
func PaymentBackfill(legacyTable string) Backfill {
	return func(tx *gorm.DB) error {
		ok, err := schema.HasColumn(tx, legacyTable, "monto_pagado")
		if err != nil || ok {
			return err
		}
		return tx.Exec(fmt.Sprintf(`UPDATE ventas
			SET monto_pagado = total, monto_pendiente = 0
			WHERE estado_pago = 'pagado' AND monto_pagado = 0
			  AND id IN (SELECT id FROM %s)`, legacyTable)).Error
	}
}

// Consolidate copies every legacy row absent (by keyColumns) from the
// current table and returns how many it migrated. Idempotent: a second run
// migrates 0. A missing legacy table returns ErrLegacyTableAbsent, which
// callers treat as nothing-to-migrate; a missing destination is a real
// SchemaMismatchError. A non-nil backfill runs in the same transaction.
func Consolidate(ctx context.Context, db *gorm.DB, legacyTable, currentTable string, keyColumns []string, backfill Backfill) (int64, error) {
	if ok, err := schema.HasTable(db, legacyTable); err != nil {
		return 0, err
	} else if !ok {
		return 0, apperror.ErrLegacyTableAbsent
	}
	if ok, err := schema.HasTable(db, currentTable); err != nil {
		return 0, err
	} else if !ok {
		return 0, &apperror.SchemaMismatchError{Table: currentTable}
	}

	legacyCols, err := schema.TableColumns(db, legacyTable)
	if err != nil {
		return 0, err
	}
	currentCols, err := schema.TableColumns(db, currentTable)
	if err != nil {
		return 0, err
	}

	// Only columns both shapes share travel; anything else keeps its default
	// in the destination.
	currentSet := make(map[string]bool, len(currentCols))
	for _, c := range currentCols {
		currentSet[c.Name] = true
	}
	var cols []string
	for _, c := range legacyCols {
		if currentSet[c.Name] {
			cols = append(cols, c.Name)
		}
	}
	if len(cols) == 0 {
		return 0, fmt.Errorf("consolidar %s -> %s: sin columnas en común", legacyTable, currentTable)
	}
	for _, k := range keyColumns {
		if !contains(cols, k) {
			return 0, &apperror.SchemaMismatchError{Table: legacyTable, Column: k}
		}
	}

	conds := make([]string, len(keyColumns))
	for i, k := range keyColumns {
		conds[i] = fmt.Sprintf("c.%s = l.%s", k, k)
	}
	colList := strings.Join(cols, ", ")
	srcList := "l." + strings.Join(cols, ", l.")
	insertSQL := fmt.Sprintf(
		`INSERT INTO %s (%s)
		 SELECT %s FROM %s l
		 WHERE NOT EXISTS (SELECT 1 FROM %s c WHERE %s)`,
		currentTable, colList, srcList, legacyTable, currentTable, strings.Join(conds, " AND "))

	var migrated int64
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(insertSQL)
		if res.Error != nil {
			return res.Error
		}
		migrated = res.RowsAffected
		if backfill != nil {
			return backfill(tx)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("consolidar %s -> %s: %w", legacyTable, currentTable, err)
	}

	log.Info().
		Str("legacy", legacyTable).
		Str("destino", currentTable).
		Int64("migradas", migrated).
		Msg("consolidación completada")
	return migrated, nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// Package reconcile re-derives and validates the denormalized aggregates of
// the ledger: ventas payment fields against the abonos ledger, venta totals
// against their line items, and productos.stock_actual against the
// stock_movimientos chain.
//
// Checks only report; writes happen exclusively in the explicit repair mode,
// and every correction is logged.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/apperror"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/model"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/schema"
)

// Finding is one detected inconsistency. Shape follows the usual drift-report
// row: what check fired, on which entity, and a human-readable detail.
type Finding struct {
	CheckType  string // PAYMENT_STATUS | PAYMENT_LEDGER | VENTA_ITEMS | STOCK_CHAIN | STOCK_ACTUAL
	EntityType string // venta | producto
	EntityID   uint
	Details    string
}

// Report aggregates one verification or repair run.
type Report struct {
	CorrelationID string
	Checked       int
	Repaired      int
	Findings      []Finding
}

func (r *Report) add(f Finding) { r.Findings = append(r.Findings, f) }

// Clean reports whether the run found no inconsistencies.
func (r *Report) Clean() bool { return len(r.Findings) == 0 }

// Engine runs the checks against one database with one money tolerance.
type Engine struct {
	db  *gorm.DB
	eps decimal.Decimal
}

func NewEngine(db *gorm.DB, epsilon float64) *Engine {
	return &Engine{db: db, eps: decimal.NewFromFloat(epsilon)}
}

func (e *Engine) withinEps(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(e.eps)
}

// ReconcilePaymentStatus recomputes monto_pendiente and estado_pago from the
// venta's own total and monto_pagado. Pure: it trusts the stored
// monto_pagado and never consults the abonos ledger (see CheckVentaLedger
// for the stronger check). A zero-total sale with nothing paid is pagado by
// definition.
func ReconcilePaymentStatus(v model.Venta, epsilon decimal.Decimal) model.Venta {
	switch {
	case v.MontoPagado.GreaterThanOrEqual(v.Total.Sub(epsilon)):
		v.EstadoPago = model.EstadoPagado
		v.MontoPendiente = decimal.Zero
	case v.MontoPagado.IsZero():
		v.EstadoPago = model.EstadoPendiente
		v.MontoPendiente = v.Total
	default:
		v.EstadoPago = model.EstadoParcial
		v.MontoPendiente = v.Total.Sub(v.MontoPagado)
	}
	return v
}

// LedgerSum recomputes monto_pagado as the sum of the venta's abonos.
func (e *Engine) LedgerSum(ctx context.Context, ventaID uint) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := e.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(monto), 0) FROM abonos WHERE venta_id = ?", ventaID).
		Scan(&sum).Error
	return sum, err
}

// CheckVentaLedger compares the stored monto_pagado with the abonos sum and
// returns InconsistentLedgerError beyond tolerance. The stored value is not
// trusted; the ledger is the source of truth.
func (e *Engine) CheckVentaLedger(ctx context.Context, v *model.Venta) error {
	sum, err := e.LedgerSum(ctx, v.ID)
	if err != nil {
		return err
	}
	// Vacuous case: no abonos and nothing stored as paid is fine for credit
	// sales; cash sales recorded before the abonos table exist only as
	// monto_pagado == total, which the backfill policy authorized.
	if v.EstadoPago == model.EstadoPagado && sum.IsZero() && e.withinEps(v.MontoPagado, v.Total) {
		return nil
	}
	if !e.withinEps(v.MontoPagado, sum) {
		return &apperror.InconsistentLedgerError{
			Entity: "venta", EntityID: v.ID, Field: "monto_pagado",
			Stored: v.MontoPagado, Ledger: sum,
		}
	}
	return nil
}

// CheckVentaItems compares the venta total with the sum of its line-item
// subtotals. Historically the two disagree for some sales and neither side
// is authoritative, so the discrepancy is surfaced, never resolved here.
// Sales without items (rows consolidated from the pre-items schema) are
// skipped: there is no ledger to compare against.
func (e *Engine) CheckVentaItems(ctx context.Context, v *model.Venta) error {
	var n int64
	err := e.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM venta_items WHERE venta_id = ?", v.ID).
		Scan(&n).Error
	if err != nil || n == 0 {
		return err
	}

	var sum decimal.Decimal
	err = e.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(subtotal), 0) FROM venta_items WHERE venta_id = ?", v.ID).
		Scan(&sum).Error
	if err != nil {
		return err
	}
	if !e.withinEps(v.Total, sum) {
		return &apperror.InconsistentLedgerError{
			Entity: "venta", EntityID: v.ID, Field: "total",
			Stored: v.Total, Ledger: sum,
		}
	}
	return nil
}

// Check runs every read-only verification. Per-check errors become findings
// and the run continues; only infrastructure failures abort it.
func (e *Engine) Check(ctx context.Context) (*Report, error) {
	report := &Report{CorrelationID: uuid.New().String()}

	for _, probe := range [][2]string{
		{"ventas", "estado_pago"}, {"ventas", "monto_pagado"}, {"ventas", "monto_pendiente"},
	} {
		if err := schema.RequireColumn(e.db, probe[0], probe[1]); err != nil {
			return report, err
		}
	}

	var ventas []model.Venta
	if err := e.db.WithContext(ctx).Find(&ventas).Error; err != nil {
		return report, err
	}

	for i := range ventas {
		v := &ventas[i]
		report.Checked++

		if fixed := ReconcilePaymentStatus(*v, e.eps); fixed.EstadoPago != v.EstadoPago ||
			!e.withinEps(fixed.MontoPendiente, v.MontoPendiente) {
			report.add(Finding{
				CheckType: "PAYMENT_STATUS", EntityType: "venta", EntityID: v.ID,
				Details: fmt.Sprintf("estado %s / pendiente %s; recalculado %s / %s",
					v.EstadoPago, v.MontoPendiente.StringFixed(2),
					fixed.EstadoPago, fixed.MontoPendiente.StringFixed(2)),
			})
		}

		if err := e.CheckVentaLedger(ctx, v); err != nil {
			var ledgerErr *apperror.InconsistentLedgerError
			if !errors.As(err, &ledgerErr) {
				return report, err
			}
			report.add(Finding{
				CheckType: "PAYMENT_LEDGER", EntityType: "venta", EntityID: v.ID,
				Details: ledgerErr.Error(),
			})
		}

		if err := e.CheckVentaItems(ctx, v); err != nil {
			var ledgerErr *apperror.InconsistentLedgerError
			if !errors.As(err, &ledgerErr) {
				return report, err
			}
			report.add(Finding{
				CheckType: "VENTA_ITEMS", EntityType: "venta", EntityID: v.ID,
				Details: ledgerErr.Error(),
			})
		}
	}

	stockFindings, err := e.CheckStock(ctx)
	if err != nil {
		return report, err
	}
	report.Findings = append(report.Findings, stockFindings...)

	return report, nil
}

// RepairPayments rewrites each drifted venta's payment fields from the
// abonos ledger, one venta per transaction, logging every correction.
// Ventas whose stored figures already match the ledger are left untouched.
func (e *Engine) RepairPayments(ctx context.Context) (*Report, error) {
	report := &Report{CorrelationID: uuid.New().String()}

	var ventas []model.Venta
	if err := e.db.WithContext(ctx).Find(&ventas).Error; err != nil {
		return report, err
	}

	for i := range ventas {
		v := ventas[i]
		report.Checked++

		sum, err := e.LedgerSum(ctx, v.ID)
		if err != nil {
			return report, err
		}
		// Pre-abonos cash sales have an empty ledger by design: keep the
		// backfilled monto_pagado == total instead of zeroing history.
		if sum.IsZero() && v.EstadoPago == model.EstadoPagado && e.withinEps(v.MontoPagado, v.Total) {
			continue
		}

		fixed := v
		fixed.MontoPagado = sum
		fixed = ReconcilePaymentStatus(fixed, e.eps)

		if fixed.EstadoPago == v.EstadoPago &&
			e.withinEps(fixed.MontoPagado, v.MontoPagado) &&
			e.withinEps(fixed.MontoPendiente, v.MontoPendiente) {
			continue
		}

		err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Model(&model.Venta{}).Where("id = ?", v.ID).Updates(map[string]interface{}{
				"monto_pagado":    fixed.MontoPagado,
				"monto_pendiente": fixed.MontoPendiente,
				"estado_pago":     fixed.EstadoPago,
			}).Error
		})
		if err != nil {
			return report, fmt.Errorf("reparar venta %d: %w", v.ID, err)
		}

		log.Info().
			Str("correlation_id", report.CorrelationID).
			Uint("venta_id", v.ID).
			Str("estado", fixed.EstadoPago).
			Str("monto_pagado", fixed.MontoPagado.StringFixed(2)).
			Str("monto_pendiente", fixed.MontoPendiente.StringFixed(2)).
			Msg("venta reparada desde el ledger de abonos")
		report.Repaired++
	}
	return report, nil
}

package reconcile

import (
	"context"
	"fmt"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/model"
)

// CheckStock validates every product's movement chain:
//
//	stock_nuevo[i] == stock_anterior[i] + delta firmado
//	stock_anterior[i] == stock_nuevo[i-1]
//	último stock_nuevo == productos.stock_actual
//
// Read-only: broken chains are historical facts, repairing them is an
// operator decision.
func (e *Engine) CheckStock(ctx context.Context) ([]Finding, error) {
	var productos []model.Producto
	if err := e.db.WithContext(ctx).Find(&productos).Error; err != nil {
		return nil, err
	}

	var findings []Finding
	for _, p := range productos {
		fs, err := e.checkProductoChain(ctx, p)
		if err != nil {
			return findings, err
		}
		findings = append(findings, fs...)
	}
	return findings, nil
}

func (e *Engine) checkProductoChain(ctx context.Context, p model.Producto) ([]Finding, error) {
	var movs []model.MovimientoStock
	err := e.db.WithContext(ctx).
		Where("producto_id = ?", p.ID).
		Order("id ASC").
		Find(&movs).Error
	if err != nil {
		return nil, err
	}

	var findings []Finding
	// Presence tracked apart from the value: a corrupt stock_nuevo can be
	// any integer, so no sentinel value is safe.
	prev := 0
	hasPrev := false
	for _, m := range movs {
		if got, want := m.StockNuevo, m.StockAnterior+m.DeltaFirmado(); got != want {
			findings = append(findings, Finding{
				CheckType: "STOCK_CHAIN", EntityType: "producto", EntityID: p.ID,
				Details: fmt.Sprintf("movimiento %d (%s %d): stock_nuevo %d, esperado %d",
					m.ID, m.Tipo, m.Cantidad, got, want),
			})
		}
		if hasPrev && m.StockAnterior != prev {
			findings = append(findings, Finding{
				CheckType: "STOCK_CHAIN", EntityType: "producto", EntityID: p.ID,
				Details: fmt.Sprintf("movimiento %d: stock_anterior %d no encadena con stock_nuevo previo %d",
					m.ID, m.StockAnterior, prev),
			})
		}
		prev = m.StockNuevo
		hasPrev = true
	}

	// Terminal agreement with the denormalized field. A product with no
	// movements is only checked when it claims stock.
	switch {
	case hasPrev && prev != p.StockActual:
		findings = append(findings, Finding{
			CheckType: "STOCK_ACTUAL", EntityType: "producto", EntityID: p.ID,
			Details: fmt.Sprintf("stock_actual %d difiere del último stock_nuevo %d",
				p.StockActual, prev),
		})
	case !hasPrev && p.StockActual < 0:
		findings = append(findings, Finding{
			CheckType: "STOCK_ACTUAL", EntityType: "producto", EntityID: p.ID,
			Details: fmt.Sprintf("stock_actual negativo (%d) sin movimientos", p.StockActual),
		})
	}
	return findings, nil
}

package migration

import (
	"gorm.io/gorm"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/schema"
)

// All returns the full schema history, oldest first. Order matters: later
// migrations assume the shapes earlier ones produce.
func All() []Migration {
	return []Migration{
		baseSchema(),
		ventasPaymentTracking(),
		createAbonos(),
		createStockMovimientos(),
		renameProductoTipoAroma(),
	}
}

// baseSchema creates the original tables in their legacy shapes: productos
// still has "tipo" and ventas has no payment columns. Later migrations bring
// them to the current specs, the same way the production database evolved.
func baseSchema() Migration {
	changes := []schema.Change{
		schema.CreateTable{Spec: schema.ProductosLegacy},
		schema.CreateTable{Spec: schema.Clientes},
		schema.CreateTable{Spec: schema.VentasLegacy},
		schema.CreateTable{Spec: schema.VentaItems},
		schema.CreateIndex{Name: "idx_ventas_fecha", Table: "ventas", Columns: []string{"fecha"}},
		schema.CreateIndex{Name: "idx_venta_items_venta", Table: "venta_items", Columns: []string{"venta_id"}},
	}
	return Migration{
		Name: "base-schema",
		Applied: func(db *gorm.DB) (bool, error) {
			return schema.HasTable(db, "venta_items")
		},
		Apply: func(tx *gorm.DB) error { return applyAll(tx, changes) },
	}
}

// ventasPaymentTracking adds the fiado fields. Pre-existing sales were all
// cash sales, so they are backfilled as fully paid.
func ventasPaymentTracking() Migration {
	changes := []schema.Change{
		schema.AddColumn{Table: "ventas", Column: schema.ColumnSpec{
			Name: "estado_pago", Type: "TEXT", NotNull: true, Default: "'pagado'"}},
		schema.AddColumn{Table: "ventas", Column: schema.ColumnSpec{
			Name: "monto_pagado", Type: "DECIMAL(12,2)", NotNull: true, Default: "0"}},
		schema.AddColumn{Table: "ventas", Column: schema.ColumnSpec{
			Name: "monto_pendiente", Type: "DECIMAL(12,2)", NotNull: true, Default: "0"}},
	}
	return Migration{
		Name: "ventas-payment-tracking",
		Applied: func(db *gorm.DB) (bool, error) {
			return schema.HasColumn(db, "ventas", "estado_pago")
		},
		Apply: func(tx *gorm.DB) error {
			if err := applyAll(tx, changes); err != nil {
				return err
			}
			// Every row present at this point predates credit tracking.
			return tx.Exec(`UPDATE ventas
				SET estado_pago = 'pagado', monto_pagado = total, monto_pendiente = 0`).Error
		},
	}
}

func createAbonos() Migration {
	changes := []schema.Change{
		schema.CreateTable{Spec: schema.Abonos},
		schema.CreateIndex{Name: "idx_abonos_venta", Table: "abonos", Columns: []string{"venta_id"}},
		schema.CreateIndex{Name: "idx_abonos_cliente", Table: "abonos", Columns: []string{"cliente_id"}},
	}
	return Migration{
		Name: "create-abonos",
		Applied: func(db *gorm.DB) (bool, error) {
			return schema.HasTable(db, "abonos")
		},
		Apply: func(tx *gorm.DB) error { return applyAll(tx, changes) },
	}
}

func createStockMovimientos() Migration {
	changes := []schema.Change{
		schema.CreateTable{Spec: schema.StockMovimientos},
		schema.CreateIndex{Name: "idx_stock_mov_producto", Table: "stock_movimientos",
			Columns: []string{"producto_id", "fecha"}},
	}
	return Migration{
		Name: "create-stock-movimientos",
		Applied: func(db *gorm.DB) (bool, error) {
			return schema.HasTable(db, "stock_movimientos")
		},
		Apply: func(tx *gorm.DB) error { return applyAll(tx, changes) },
	}
}

// renameProductoTipoAroma replaces the generic "tipo" classification with the
// scent attribute, preserving row ids via the shadow-table rebuild.
func renameProductoTipoAroma() Migration {
	return Migration{
		Name: "rename-producto-tipo-aroma",
		Applied: func(db *gorm.DB) (bool, error) {
			return schema.HasColumn(db, "productos", "aroma")
		},
		Apply: func(tx *gorm.DB) error {
			return schema.RenameColumnViaRebuild{
				Target: schema.Productos,
				From:   "tipo",
				To:     "aroma",
			}.Apply(tx)
		},
	}
}

func applyAll(tx *gorm.DB, changes []schema.Change) error {
	for _, c := range changes {
		if err := c.Apply(tx); err != nil {
			return err
		}
	}
	return nil
}

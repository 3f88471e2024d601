package model

import "time"

// Tipos de movimiento de stock. Enforced by a CHECK constraint on the table.
const (
	MovIngreso = "INGRESO"
	MovSalida  = "SALIDA"
	MovAjuste  = "AJUSTE"
)

// MovimientoStock registra cada cambio de stock en un producto.
// Movements chain: each new row's StockAnterior must equal the product's
// current stock (the previous row's StockNuevo), and
// StockNuevo == StockAnterior + signed(Cantidad, Tipo).
type MovimientoStock struct {
	ID            uint   `gorm:"primaryKey"`
	ProductoID    uint   `gorm:"index;not null"`
	Tipo          string `gorm:"type:varchar(10);not null"` // INGRESO | SALIDA | AJUSTE
	Cantidad      int    `gorm:"not null"`                  // AJUSTE: signed delta; otherwise positive
	StockAnterior int    `gorm:"not null"`
	StockNuevo    int    `gorm:"not null"`
	Motivo        string
	// ReferenciaTipo/ReferenciaID link back to the originating record,
	// e.g. ("venta", venta.ID) for the SALIDA created by a sale.
	ReferenciaTipo *string `gorm:"type:varchar(20)"`
	ReferenciaID   *uint
	Fecha          time.Time `gorm:"index;not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (MovimientoStock) TableName() string { return "stock_movimientos" }

// DeltaFirmado devuelve el delta con signo que Tipo aplica al stock.
func (m *MovimientoStock) DeltaFirmado() int {
	switch m.Tipo {
	case MovSalida:
		return -m.Cantidad
	default: // INGRESO y AJUSTE (AJUSTE ya viene firmado)
		return m.Cantidad
	}
}

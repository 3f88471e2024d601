package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto is a catalog entry (jabones). Aroma replaced the older generic
// "tipo" classification; the rename migration preserves row ids.
//
// StockActual is denormalized from the stock_movimientos ledger and is only
// mutated together with a ledger row — never edited directly.
type Producto struct {
	ID           uint   `gorm:"primaryKey"`
	Nombre       string `gorm:"index;not null"`
	Aroma        string
	Presentacion string
	PrecioCosto  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVenta  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockActual  int             `gorm:"not null;default:0"`
	Activo       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Producto) TableName() string { return "productos" }

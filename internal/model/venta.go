package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoPago values for ventas.estado_pago.
const (
	EstadoPagado    = "pagado"
	EstadoPendiente = "pendiente"
	EstadoParcial   = "parcial"
)

// Venta is a sale, possibly fiado (credit). Payment fields are mutated only
// by recorded abonos, never by direct edit, and must satisfy
// MontoPagado + MontoPendiente == Total with MontoPagado >= Total implying
// EstadoPago == "pagado".
type Venta struct {
	ID             uint            `gorm:"primaryKey"`
	ClienteID      *uint           `gorm:"index"` // nil = venta anónima
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Fecha          time.Time       `gorm:"index;not null"`
	MetodoPago     string          `gorm:"type:varchar(20)"`
	EstadoPago     string          `gorm:"type:varchar(20);not null;default:'pagado'"`
	MontoPagado    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MontoPendiente decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Cliente *Cliente    `gorm:"foreignKey:ClienteID"`
	Items   []VentaItem `gorm:"foreignKey:VentaID"`
	Abonos  []Abono     `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem is immutable once created: a sale correction is a new sale, not
// an edit. Subtotal == Cantidad * PrecioUnitario.
type VentaItem struct {
	ID             uint            `gorm:"primaryKey"`
	VentaID        uint            `gorm:"index;not null"`
	ProductoID     uint            `gorm:"index;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaItem) TableName() string { return "venta_items" }

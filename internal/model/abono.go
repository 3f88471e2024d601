package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Abono is an append-only partial-payment ledger entry against a venta.
// Entries are NEVER modified or deleted — the sum of a sale's abonos is the
// source of truth for ventas.monto_pagado.
type Abono struct {
	ID         uint            `gorm:"primaryKey"`
	VentaID    uint            `gorm:"index;not null"`
	ClienteID  *uint           `gorm:"index"` // denormalized from the venta
	Monto      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Fecha      time.Time       `gorm:"not null"`
	MetodoPago string          `gorm:"type:varchar(20)"`
	Notas      string

	Venta *Venta `gorm:"foreignKey:VentaID"`
}

func (Abono) TableName() string { return "abonos" }

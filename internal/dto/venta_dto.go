package dto

import (
	"github.com/shopspring/decimal"
)

// ItemRequest is one line of a sale. Subtotal is computed server-side from
// cantidad × precio vigente, never taken from the caller.
type ItemRequest struct {
	ProductoID uint `json:"producto_id" validate:"required"`
	Cantidad   int  `json:"cantidad" validate:"required,gt=0"`
}

// RegistrarVentaRequest creates a sale atomically with its items and the
// SALIDA stock movements they cause.
type RegistrarVentaRequest struct {
	ClienteID  *uint         `json:"cliente_id"` // nil = venta anónima
	MetodoPago string        `json:"metodo_pago" validate:"omitempty,oneof=efectivo transferencia fiado"`
	Items      []ItemRequest `json:"items" validate:"required,min=1,dive"`
	// Fiado: the sale starts pendiente with nothing paid. Anonymous sales
	// cannot be fiado — there is nobody to collect from.
	Fiado bool `json:"fiado"`
}

// VentaResponse mirrors the persisted sale after the transaction commits.
type VentaResponse struct {
	ID             uint            `json:"id"`
	ClienteID      *uint           `json:"cliente_id"`
	Total          decimal.Decimal `json:"total"`
	EstadoPago     string          `json:"estado_pago"`
	MontoPagado    decimal.Decimal `json:"monto_pagado"`
	MontoPendiente decimal.Decimal `json:"monto_pendiente"`
	Items          []ItemResponse  `json:"items"`
}

type ItemResponse struct {
	ProductoID     uint            `json:"producto_id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

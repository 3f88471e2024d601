package dto

import (
	"github.com/shopspring/decimal"
)

// RegistrarAbonoRequest applies a partial payment to an outstanding sale.
type RegistrarAbonoRequest struct {
	VentaID    uint            `json:"venta_id" validate:"required"`
	Monto      decimal.Decimal `json:"monto" validate:"required"`
	MetodoPago string          `json:"metodo_pago" validate:"omitempty,oneof=efectivo transferencia"`
	Notas      string          `json:"notas"`
}

// AbonoResponse includes the sale's payment state after applying the abono.
type AbonoResponse struct {
	AbonoID        uint            `json:"abono_id"`
	VentaID        uint            `json:"venta_id"`
	MontoPagado    decimal.Decimal `json:"monto_pagado"`
	MontoPendiente decimal.Decimal `json:"monto_pendiente"`
	EstadoPago     string          `json:"estado_pago"`
}

package dto

// RegistrarMovimientoRequest records one stock movement. For AJUSTE,
// Cantidad is the signed delta itself; for INGRESO/SALIDA it must be
// positive.
type RegistrarMovimientoRequest struct {
	ProductoID uint   `json:"producto_id" validate:"required"`
	Tipo       string `json:"tipo" validate:"required,oneof=INGRESO SALIDA AJUSTE"`
	Cantidad   int    `json:"cantidad" validate:"required"`
	Motivo     string `json:"motivo"`
	// Referencia links the movement to its cause, e.g. ("venta", 17).
	ReferenciaTipo string `json:"referencia_tipo"`
	ReferenciaID   *uint  `json:"referencia_id"`
}

// MovimientoResponse mirrors the persisted ledger row.
type MovimientoResponse struct {
	MovimientoID  uint   `json:"movimiento_id"`
	ProductoID    uint   `json:"producto_id"`
	Tipo          string `json:"tipo"`
	Cantidad      int    `json:"cantidad"`
	StockAnterior int    `json:"stock_anterior"`
	StockNuevo    int    `json:"stock_nuevo"`
}

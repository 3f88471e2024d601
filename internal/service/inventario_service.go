package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/apperror"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/dto"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/model"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/repository"
)

// InventarioService records stock movements. The ledger row and the
// denormalized productos.stock_actual always move together in one
// transaction — a crash between the two must not be observable.
type InventarioService interface {
	RegistrarMovimiento(ctx context.Context, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error)
	// RegistrarSalidaTx is called inside a sale's transaction, one per item.
	RegistrarSalidaTx(tx *gorm.DB, productoID uint, cantidad int, motivo, refTipo string, refID uint) (*model.MovimientoStock, error)
}

type inventarioService struct {
	productoRepo   repository.ProductoRepository
	movimientoRepo repository.MovimientoStockRepository
	validate       *validator.Validate
}

func NewInventarioService(
	productoRepo repository.ProductoRepository,
	movimientoRepo repository.MovimientoStockRepository,
) InventarioService {
	return &inventarioService{
		productoRepo:   productoRepo,
		movimientoRepo: movimientoRepo,
		validate:       validator.New(),
	}
}

func (s *inventarioService) RegistrarMovimiento(ctx context.Context, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("movimiento inválido: %w", err)
	}
	if (req.Tipo == model.MovIngreso || req.Tipo == model.MovSalida) && req.Cantidad <= 0 {
		return nil, fmt.Errorf("movimiento %s requiere cantidad positiva, recibió %d", req.Tipo, req.Cantidad)
	}

	var mov *model.MovimientoStock
	err := s.productoRepo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refID uint
		if req.ReferenciaID != nil {
			refID = *req.ReferenciaID
		}
		m, err := s.registrarTx(tx, req.ProductoID, req.Tipo, req.Cantidad, req.Motivo, req.ReferenciaTipo, refID)
		mov = m
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.MovimientoResponse{
		MovimientoID:  mov.ID,
		ProductoID:    mov.ProductoID,
		Tipo:          mov.Tipo,
		Cantidad:      mov.Cantidad,
		StockAnterior: mov.StockAnterior,
		StockNuevo:    mov.StockNuevo,
	}, nil
}

func (s *inventarioService) RegistrarSalidaTx(tx *gorm.DB, productoID uint, cantidad int, motivo, refTipo string, refID uint) (*model.MovimientoStock, error) {
	return s.registrarTx(tx, productoID, model.MovSalida, cantidad, motivo, refTipo, refID)
}

// registrarTx reads current stock, computes the new level per movement type
// and persists ledger row + stock field together. The caller owns the
// transaction, so a later failure rolls everything back.
func (s *inventarioService) registrarTx(tx *gorm.DB, productoID uint, tipo string, cantidad int, motivo, refTipo string, refID uint) (*model.MovimientoStock, error) {
	p, err := s.productoRepo.FindByIDTx(tx, productoID)
	if err != nil {
		return nil, fmt.Errorf("producto %d: %w", productoID, err)
	}

	mov := &model.MovimientoStock{
		ProductoID:    p.ID,
		Tipo:          tipo,
		Cantidad:      cantidad,
		StockAnterior: p.StockActual,
		Motivo:        motivo,
		Fecha:         time.Now(),
	}
	if refTipo != "" {
		mov.ReferenciaTipo = &refTipo
		mov.ReferenciaID = &refID
	}

	nuevo := p.StockActual + mov.DeltaFirmado()
	if nuevo < 0 {
		solicitado := cantidad
		if tipo == model.MovAjuste {
			solicitado = -cantidad
		}
		return nil, &apperror.InsufficientStockError{
			ProductoID:  p.ID,
			StockActual: p.StockActual,
			Solicitado:  solicitado,
		}
	}
	mov.StockNuevo = nuevo

	if err := s.movimientoRepo.CreateTx(tx, mov); err != nil {
		return nil, err
	}
	if err := s.productoRepo.SetStockTx(tx, p.ID, nuevo); err != nil {
		return nil, err
	}
	return mov, nil
}

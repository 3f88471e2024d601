package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/dto"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/model"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/repository"
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ObtenerVenta(ctx context.Context, id uint) (*model.Venta, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	inventario   InventarioService
	validate     *validator.Validate
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	inventario InventarioService,
) VentaService {
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		inventario:   inventario,
		validate:     validator.New(),
	}
}

// RegistrarVenta creates the venta, its items and one SALIDA movement per
// item in a single transaction:
//  1. resolve products and compute subtotals (pre-flight, outside TX)
//  2. BEGIN TX: create venta + items, descontar stock per item
//  3. COMMIT — insufficient stock on any item rolls back the whole sale
func (s *ventaService) RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("venta inválida: %w", err)
	}
	if req.Fiado && req.ClienteID == nil {
		return nil, errors.New("una venta fiada requiere cliente")
	}

	type resolvedItem struct {
		productoID uint
		precio     decimal.Decimal
		cantidad   int
		subtotal   decimal.Decimal
	}

	var resolved []resolvedItem
	total := decimal.Zero
	for _, item := range req.Items {
		p, err := s.productoRepo.FindByID(ctx, item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto %d no encontrado", item.ProductoID)
		}
		if !p.Activo {
			return nil, fmt.Errorf("producto %q está inactivo y no puede venderse", p.Nombre)
		}
		sub := p.PrecioVenta.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		total = total.Add(sub)
		resolved = append(resolved, resolvedItem{
			productoID: p.ID,
			precio:     p.PrecioVenta,
			cantidad:   item.Cantidad,
			subtotal:   sub,
		})
	}

	venta := model.Venta{
		ClienteID:  req.ClienteID,
		Total:      total,
		Fecha:      time.Now(),
		MetodoPago: req.MetodoPago,
	}
	if req.Fiado {
		venta.EstadoPago = model.EstadoPendiente
		venta.MontoPagado = decimal.Zero
		venta.MontoPendiente = total
	} else {
		venta.EstadoPago = model.EstadoPagado
		venta.MontoPagado = total
		venta.MontoPendiente = decimal.Zero
	}
	for _, it := range resolved {
		venta.Items = append(venta.Items, model.VentaItem{
			ProductoID:     it.productoID,
			Cantidad:       it.cantidad,
			PrecioUnitario: it.precio,
			Subtotal:       it.subtotal,
		})
	}

	txErr := s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}
		motivo := fmt.Sprintf("venta #%d", venta.ID)
		for _, it := range resolved {
			if _, err := s.inventario.RegistrarSalidaTx(tx, it.productoID, it.cantidad, motivo, "venta", venta.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := &dto.VentaResponse{
		ID:             venta.ID,
		ClienteID:      venta.ClienteID,
		Total:          venta.Total,
		EstadoPago:     venta.EstadoPago,
		MontoPagado:    venta.MontoPagado,
		MontoPendiente: venta.MontoPendiente,
	}
	for _, it := range venta.Items {
		resp.Items = append(resp.Items, dto.ItemResponse{
			ProductoID:     it.ProductoID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal,
		})
	}
	return resp, nil
}

func (s *ventaService) ObtenerVenta(ctx context.Context, id uint) (*model.Venta, error) {
	return s.repo.FindByID(ctx, id)
}

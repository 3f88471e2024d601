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
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/reconcile"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/repository"
)

// AbonoService appends partial payments. The abonos ledger is the source of
// truth: after every insert the venta's payment fields are recomputed from
// SUM(abonos), never incremented blindly.
type AbonoService interface {
	RegistrarAbono(ctx context.Context, req dto.RegistrarAbonoRequest) (*dto.AbonoResponse, error)
}

type abonoService struct {
	ventaRepo repository.VentaRepository
	abonoRepo repository.AbonoRepository
	epsilon   decimal.Decimal
	validate  *validator.Validate
}

func NewAbonoService(ventaRepo repository.VentaRepository, abonoRepo repository.AbonoRepository, epsilon float64) AbonoService {
	return &abonoService{
		ventaRepo: ventaRepo,
		abonoRepo: abonoRepo,
		epsilon:   decimal.NewFromFloat(epsilon),
		validate:  validator.New(),
	}
}

func (s *abonoService) RegistrarAbono(ctx context.Context, req dto.RegistrarAbonoRequest) (*dto.AbonoResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("abono inválido: %w", err)
	}
	if !req.Monto.IsPositive() {
		return nil, errors.New("el monto del abono debe ser positivo")
	}

	var resp dto.AbonoResponse
	txErr := s.ventaRepo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var venta model.Venta
		if err := tx.First(&venta, req.VentaID).Error; err != nil {
			return fmt.Errorf("venta %d: %w", req.VentaID, err)
		}
		if venta.EstadoPago == model.EstadoPagado {
			return fmt.Errorf("venta %d ya está pagada", venta.ID)
		}
		if req.Monto.GreaterThan(venta.MontoPendiente.Add(s.epsilon)) {
			return fmt.Errorf("abono %s excede el pendiente %s de la venta %d",
				req.Monto.StringFixed(2), venta.MontoPendiente.StringFixed(2), venta.ID)
		}

		abono := model.Abono{
			VentaID:    venta.ID,
			ClienteID:  venta.ClienteID,
			Monto:      req.Monto,
			Fecha:      time.Now(),
			MetodoPago: req.MetodoPago,
			Notas:      req.Notas,
		}
		if err := s.abonoRepo.CreateTx(tx, &abono); err != nil {
			return err
		}

		sum, err := s.abonoRepo.SumByVentaTx(tx, venta.ID)
		if err != nil {
			return err
		}
		venta.MontoPagado = sum
		venta = reconcile.ReconcilePaymentStatus(venta, s.epsilon)

		if err := s.ventaRepo.UpdatePagoTx(tx, venta.ID, venta.MontoPagado, venta.MontoPendiente, venta.EstadoPago); err != nil {
			return err
		}

		resp = dto.AbonoResponse{
			AbonoID:        abono.ID,
			VentaID:        venta.ID,
			MontoPagado:    venta.MontoPagado,
			MontoPendiente: venta.MontoPendiente,
			EstadoPago:     venta.EstadoPago,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &resp, nil
}

package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/model"
)

// AbonoRepository is append-only: abonos are never updated or deleted.
type AbonoRepository interface {
	CreateTx(tx *gorm.DB, a *model.Abono) error
	ListByVenta(ctx context.Context, ventaID uint) ([]model.Abono, error)
	SumByVentaTx(tx *gorm.DB, ventaID uint) (decimal.Decimal, error)
}

type abonoRepo struct{ db *gorm.DB }

func NewAbonoRepository(db *gorm.DB) AbonoRepository { return &abonoRepo{db: db} }

func (r *abonoRepo) CreateTx(tx *gorm.DB, a *model.Abono) error {
	return tx.Create(a).Error
}

func (r *abonoRepo) ListByVenta(ctx context.Context, ventaID uint) ([]model.Abono, error) {
	var abonos []model.Abono
	err := r.db.WithContext(ctx).
		Where("venta_id = ?", ventaID).
		Order("fecha ASC, id ASC").
		Find(&abonos).Error
	return abonos, err
}

func (r *abonoRepo) SumByVentaTx(tx *gorm.DB, ventaID uint) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := tx.Raw("SELECT COALESCE(SUM(monto), 0) FROM abonos WHERE venta_id = ?", ventaID).
		Scan(&sum).Error
	return sum, err
}

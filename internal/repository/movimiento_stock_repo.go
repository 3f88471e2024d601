package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/model"
)

type MovimientoStockRepository interface {
	CreateTx(tx *gorm.DB, m *model.MovimientoStock) error
	ListByProducto(ctx context.Context, productoID uint) ([]model.MovimientoStock, error)
	// LastByProductoTx returns nil when the product has no movements yet.
	LastByProductoTx(tx *gorm.DB, productoID uint) (*model.MovimientoStock, error)
}

type movimientoStockRepo struct{ db *gorm.DB }

func NewMovimientoStockRepository(db *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: db}
}

func (r *movimientoStockRepo) CreateTx(tx *gorm.DB, m *model.MovimientoStock) error {
	return tx.Create(m).Error
}

func (r *movimientoStockRepo) ListByProducto(ctx context.Context, productoID uint) ([]model.MovimientoStock, error) {
	var movs []model.MovimientoStock
	err := r.db.WithContext(ctx).
		Where("producto_id = ?", productoID).
		Order("id ASC").
		Find(&movs).Error
	return movs, err
}

func (r *movimientoStockRepo) LastByProductoTx(tx *gorm.DB, productoID uint) (*model.MovimientoStock, error) {
	var m model.MovimientoStock
	err := tx.Where("producto_id = ?", productoID).Order("id DESC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

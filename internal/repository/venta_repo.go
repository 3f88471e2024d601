package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/model"
)

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uint) (*model.Venta, error)
	ListByEstado(ctx context.Context, estado string) ([]model.Venta, error)

	// UpdatePagoTx rewrites the payment fields inside a transaction — the
	// only sanctioned way to mutate them outside the repair mode.
	UpdatePagoTx(tx *gorm.DB, id uint, pagado, pendiente decimal.Decimal, estado string) error

	// DB exposes the DB for transaction creation in the service layer.
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uint) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Abonos").Preload("Cliente").
		First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) ListByEstado(ctx context.Context, estado string) ([]model.Venta, error) {
	q := r.db.WithContext(ctx).Model(&model.Venta{}).Order("fecha DESC")
	if estado != "" && estado != "all" {
		q = q.Where("estado_pago = ?", estado)
	}
	var ventas []model.Venta
	err := q.Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) UpdatePagoTx(tx *gorm.DB, id uint, pagado, pendiente decimal.Decimal, estado string) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Updates(map[string]interface{}{
		"monto_pagado":    pagado,
		"monto_pendiente": pendiente,
		"estado_pago":     estado,
	}).Error
}

package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/dto"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/model"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/repository"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/service"
)

func newAbonoService(db *gorm.DB) service.AbonoService {
	return service.NewAbonoService(
		repository.NewVentaRepository(db),
		repository.NewAbonoRepository(db),
		0.01,
	)
}

func crearVentaFiada(t *testing.T, db *gorm.DB, total int64) *model.Venta {
	t.Helper()
	v := &model.Venta{
		Total:          decimal.NewFromInt(total),
		EstadoPago:     model.EstadoPendiente,
		MontoPagado:    decimal.Zero,
		MontoPendiente: decimal.NewFromInt(total),
	}
	require.NoError(t, db.Create(v).Error)
	return v
}

func TestAbonosHastaSaldar(t *testing.T) {
	db := newMigratedDB(t)
	v := crearVentaFiada(t, db, 100)
	svc := newAbonoService(db)

	// Primer abono de 40: la venta pasa a parcial.
	resp, err := svc.RegistrarAbono(context.Background(), dto.RegistrarAbonoRequest{
		VentaID: v.ID, Monto: decimal.NewFromInt(40), MetodoPago: "efectivo",
	})
	require.NoError(t, err)
	assert.Equal(t, model.EstadoParcial, resp.EstadoPago)
	assert.True(t, resp.MontoPagado.Equal(decimal.NewFromInt(40)))
	assert.True(t, resp.MontoPendiente.Equal(decimal.NewFromInt(60)))

	// Segundo abono de 60: saldada.
	resp, err = svc.RegistrarAbono(context.Background(), dto.RegistrarAbonoRequest{
		VentaID: v.ID, Monto: decimal.NewFromInt(60), MetodoPago: "efectivo",
	})
	require.NoError(t, err)
	assert.Equal(t, model.EstadoPagado, resp.EstadoPago)
	assert.True(t, resp.MontoPagado.Equal(decimal.NewFromInt(100)))
	assert.True(t, resp.MontoPendiente.IsZero())

	// El ledger manda: monto_pagado almacenado coincide con SUM(abonos).
	var sum float64
	require.NoError(t, db.Raw("SELECT SUM(monto) FROM abonos WHERE venta_id = ?", v.ID).Scan(&sum).Error)
	assert.InDelta(t, 100.0, sum, 0.001)

	// Un abono sobre una venta saldada se rechaza.
	_, err = svc.RegistrarAbono(context.Background(), dto.RegistrarAbonoRequest{
		VentaID: v.ID, Monto: decimal.NewFromInt(1),
	})
	require.Error(t, err)
}

func TestAbonoExcedePendiente(t *testing.T) {
	db := newMigratedDB(t)
	v := crearVentaFiada(t, db, 50)
	svc := newAbonoService(db)

	_, err := svc.RegistrarAbono(context.Background(), dto.RegistrarAbonoRequest{
		VentaID: v.ID, Monto: decimal.NewFromInt(80),
	})
	require.Error(t, err)

	// El rechazo no deja rastro en el ledger.
	var n int64
	require.NoError(t, db.Model(&model.Abono{}).Where("venta_id = ?", v.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestAbonoMontoNoPositivo(t *testing.T) {
	db := newMigratedDB(t)
	v := crearVentaFiada(t, db, 50)
	svc := newAbonoService(db)

	_, err := svc.RegistrarAbono(context.Background(), dto.RegistrarAbonoRequest{
		VentaID: v.ID, Monto: decimal.NewFromInt(-5),
	})
	require.Error(t, err)
	_, err = svc.RegistrarAbono(context.Background(), dto.RegistrarAbonoRequest{
		VentaID: v.ID, Monto: decimal.Zero,
	})
	require.Error(t, err)
}

func TestAbonoDenormalizaCliente(t *testing.T) {
	db := newMigratedDB(t)
	c := crearCliente(t, db)
	v := &model.Venta{
		ClienteID:      &c.ID,
		Total:          decimal.NewFromInt(30),
		EstadoPago:     model.EstadoPendiente,
		MontoPendiente: decimal.NewFromInt(30),
	}
	require.NoError(t, db.Create(v).Error)
	svc := newAbonoService(db)

	resp, err := svc.RegistrarAbono(context.Background(), dto.RegistrarAbonoRequest{
		VentaID: v.ID, Monto: decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	var abono model.Abono
	require.NoError(t, db.First(&abono, resp.AbonoID).Error)
	require.NotNil(t, abono.ClienteID)
	assert.Equal(t, c.ID, *abono.ClienteID)
}

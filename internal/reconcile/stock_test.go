package reconcile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/reconcile"
)

func seedProducto(t *testing.T, db *gorm.DB, id uint, stock int) {
	t.Helper()
	require.NoError(t, db.Exec(`INSERT INTO productos (id, nombre, aroma, precio_costo, precio_venta, stock_actual)
		VALUES (?, 'Jabón', 'lavanda', 20, 45, ?)`, id, stock).Error)
}

func seedMovimiento(t *testing.T, db *gorm.DB, productoID uint, tipo string, cantidad, anterior, nuevo int) {
	t.Helper()
	require.NoError(t, db.Exec(`INSERT INTO stock_movimientos
		(producto_id, tipo, cantidad, stock_anterior, stock_nuevo, fecha)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`, productoID, tipo, cantidad, anterior, nuevo).Error)
}

func TestStockChainClean(t *testing.T) {
	db := newMigratedDB(t)
	engine := reconcile.NewEngine(db, 0.01)

	seedProducto(t, db, 1, 45)
	seedMovimiento(t, db, 1, "INGRESO", 50, 0, 50)
	seedMovimiento(t, db, 1, "SALIDA", 5, 50, 45)

	findings, err := engine.CheckStock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestStockChainAjusteNegativo(t *testing.T) {
	db := newMigratedDB(t)
	engine := reconcile.NewEngine(db, 0.01)

	// AJUSTE lleva el delta firmado en cantidad.
	seedProducto(t, db, 1, 7)
	seedMovimiento(t, db, 1, "INGRESO", 10, 0, 10)
	seedMovimiento(t, db, 1, "AJUSTE", -3, 10, 7)

	findings, err := engine.CheckStock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestStockChainBrokenLink(t *testing.T) {
	db := newMigratedDB(t)
	engine := reconcile.NewEngine(db, 0.01)

	seedProducto(t, db, 1, 40)
	seedMovimiento(t, db, 1, "INGRESO", 50, 0, 50)
	// stock_anterior 45 no encadena con el 50 previo.
	seedMovimiento(t, db, 1, "SALIDA", 5, 45, 40)

	findings, err := engine.CheckStock(context.Background())
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "STOCK_CHAIN", findings[0].CheckType)
	assert.EqualValues(t, 1, findings[0].EntityID)
}

func TestStockChainBadArithmetic(t *testing.T) {
	db := newMigratedDB(t)
	engine := reconcile.NewEngine(db, 0.01)

	seedProducto(t, db, 1, 44)
	// 50 - 5 != 44
	seedMovimiento(t, db, 1, "SALIDA", 5, 50, 44)

	findings, err := engine.CheckStock(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, findings)
	assert.Equal(t, "STOCK_CHAIN", findings[0].CheckType)
}

func TestStockChainCorruptFirstMovement(t *testing.T) {
	db := newMigratedDB(t)
	engine := reconcile.NewEngine(db, 0.01)

	seedProducto(t, db, 1, 6)
	// Primer movimiento corrupto: 0 + 5 != -1. Que el valor corrupto sea
	// justo -1 no debe apagar el chequeo de encadenamiento del siguiente.
	seedMovimiento(t, db, 1, "INGRESO", 5, 0, -1)
	seedMovimiento(t, db, 1, "INGRESO", 6, 0, 6)

	findings, err := engine.CheckStock(context.Background())
	require.NoError(t, err)
	require.Len(t, findings, 2)
	assert.Equal(t, "STOCK_CHAIN", findings[0].CheckType)
	assert.Equal(t, "STOCK_CHAIN", findings[1].CheckType)
}

func TestStockActualDisagreesWithChain(t *testing.T) {
	db := newMigratedDB(t)
	engine := reconcile.NewEngine(db, 0.01)

	// La cadena termina en 45 pero el campo denormalizado dice 60.
	seedProducto(t, db, 1, 60)
	seedMovimiento(t, db, 1, "INGRESO", 50, 0, 50)
	seedMovimiento(t, db, 1, "SALIDA", 5, 50, 45)

	findings, err := engine.CheckStock(context.Background())
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "STOCK_ACTUAL", findings[0].CheckType)
}

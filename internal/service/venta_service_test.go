package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/apperror"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/dto"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/model"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/repository"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/service"
)

func newVentaService(db *gorm.DB) service.VentaService {
	productoRepo := repository.NewProductoRepository(db)
	inventario := service.NewInventarioService(productoRepo, repository.NewMovimientoStockRepository(db))
	return service.NewVentaService(repository.NewVentaRepository(db), productoRepo, inventario)
}

func crearCliente(t *testing.T, db *gorm.DB) *model.Cliente {
	t.Helper()
	c := &model.Cliente{Nombre: "María", Activo: true}
	require.NoError(t, db.Create(c).Error)
	return c
}

func TestRegistrarVentaContado(t *testing.T) {
	db := newMigratedDB(t)
	p := crearProducto(t, db, 10)
	svc := newVentaService(db)

	resp, err := svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		MetodoPago: "efectivo",
		Items:      []dto.ItemRequest{{ProductoID: p.ID, Cantidad: 2}},
	})
	require.NoError(t, err)

	// 2 × 45 = 90, de contado: pagada al registrarse.
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(90)), "total %s", resp.Total)
	assert.Equal(t, model.EstadoPagado, resp.EstadoPago)
	assert.True(t, resp.MontoPendiente.IsZero())
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Subtotal.Equal(decimal.NewFromInt(90)))

	// La venta descontó stock vía movimiento SALIDA referenciado.
	var got model.Producto
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 8, got.StockActual)

	var mov model.MovimientoStock
	require.NoError(t, db.Where("producto_id = ?", p.ID).First(&mov).Error)
	assert.Equal(t, model.MovSalida, mov.Tipo)
	require.NotNil(t, mov.ReferenciaTipo)
	assert.Equal(t, "venta", *mov.ReferenciaTipo)
	require.NotNil(t, mov.ReferenciaID)
	assert.Equal(t, resp.ID, *mov.ReferenciaID)
}

func TestRegistrarVentaFiado(t *testing.T) {
	db := newMigratedDB(t)
	p := crearProducto(t, db, 10)
	c := crearCliente(t, db)
	svc := newVentaService(db)

	resp, err := svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		ClienteID:  &c.ID,
		MetodoPago: "fiado",
		Fiado:      true,
		Items:      []dto.ItemRequest{{ProductoID: p.ID, Cantidad: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.EstadoPendiente, resp.EstadoPago)
	assert.True(t, resp.MontoPagado.IsZero())
	assert.True(t, resp.MontoPendiente.Equal(resp.Total))
}

func TestVentaFiadaRequiereCliente(t *testing.T) {
	db := newMigratedDB(t)
	p := crearProducto(t, db, 10)
	svc := newVentaService(db)

	_, err := svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Fiado: true,
		Items: []dto.ItemRequest{{ProductoID: p.ID, Cantidad: 1}},
	})
	require.Error(t, err)
}

func TestVentaSinStockRevierteTodo(t *testing.T) {
	db := newMigratedDB(t)
	conStock := crearProducto(t, db, 10)
	sinStock := crearProducto(t, db, 1)
	svc := newVentaService(db)

	_, err := svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items: []dto.ItemRequest{
			{ProductoID: conStock.ID, Cantidad: 2},
			{ProductoID: sinStock.ID, Cantidad: 5},
		},
	})
	var insufficient *apperror.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)

	// Nada se persiste: ni la venta, ni los items, ni el descuento del
	// primer producto.
	var n int64
	require.NoError(t, db.Model(&model.Venta{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&model.MovimientoStock{}).Count(&n).Error)
	assert.Zero(t, n)

	var got model.Producto
	require.NoError(t, db.First(&got, conStock.ID).Error)
	assert.Equal(t, 10, got.StockActual)
}

func TestVentaProductoInactivo(t *testing.T) {
	db := newMigratedDB(t)
	p := crearProducto(t, db, 10)
	require.NoError(t, db.Model(&model.Producto{}).Where("id = ?", p.ID).Update("activo", false).Error)
	svc := newVentaService(db)

	_, err := svc.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		Items: []dto.ItemRequest{{ProductoID: p.ID, Cantidad: 1}},
	})
	require.Error(t, err)
}

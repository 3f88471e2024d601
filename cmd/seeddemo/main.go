// cmd/seeddemo — carga un catálogo y ventas de demostración.
// Uso: go run ./cmd/seeddemo  (requiere esquema migrado)
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/config"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/dto"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/infra"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/model"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/repository"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/service"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo cargar la configuración")
	}

	db, err := infra.NewDatabase(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.DatabasePath).Msg("no se pudo abrir la base de datos")
	}

	ctx := context.Background()
	productoRepo := repository.NewProductoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	abonoRepo := repository.NewAbonoRepository(db)

	inventario := service.NewInventarioService(productoRepo, movimientoRepo)
	ventas := service.NewVentaService(ventaRepo, productoRepo, inventario)
	abonos := service.NewAbonoService(ventaRepo, abonoRepo, cfg.Epsilon)

	productos := []model.Producto{
		{Nombre: "Jabón artesanal", Aroma: "lavanda", Presentacion: "barra 100g",
			PrecioCosto: decimal.NewFromInt(20), PrecioVenta: decimal.NewFromInt(45), Activo: true},
		{Nombre: "Jabón artesanal", Aroma: "avena y miel", Presentacion: "barra 100g",
			PrecioCosto: decimal.NewFromInt(22), PrecioVenta: decimal.NewFromInt(50), Activo: true},
		{Nombre: "Jabón líquido", Aroma: "cítrico", Presentacion: "botella 250ml",
			PrecioCosto: decimal.NewFromInt(35), PrecioVenta: decimal.NewFromInt(80), Activo: true},
	}
	for i := range productos {
		if err := productoRepo.Create(ctx, &productos[i]); err != nil {
			log.Fatal().Err(err).Msg("no se pudo crear el producto de demo")
		}
		if _, err := inventario.RegistrarMovimiento(ctx, dto.RegistrarMovimientoRequest{
			ProductoID: productos[i].ID,
			Tipo:       model.MovIngreso,
			Cantidad:   50,
			Motivo:     "carga inicial",
		}); err != nil {
			log.Fatal().Err(err).Msg("no se pudo cargar stock inicial")
		}
	}

	cliente := model.Cliente{Nombre: "María demo", Telefono: "555-0101", Activo: true}
	if err := clienteRepo.Create(ctx, &cliente); err != nil {
		log.Fatal().Err(err).Msg("no se pudo crear el cliente de demo")
	}

	venta, err := ventas.RegistrarVenta(ctx, dto.RegistrarVentaRequest{
		ClienteID:  &cliente.ID,
		MetodoPago: "fiado",
		Fiado:      true,
		Items: []dto.ItemRequest{
			{ProductoID: productos[0].ID, Cantidad: 2},
			{ProductoID: productos[2].ID, Cantidad: 1},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo registrar la venta de demo")
	}

	if _, err := abonos.RegistrarAbono(ctx, dto.RegistrarAbonoRequest{
		VentaID:    venta.ID,
		Monto:      decimal.NewFromInt(50),
		MetodoPago: "efectivo",
		Notas:      "primer abono",
	}); err != nil {
		log.Fatal().Err(err).Msg("no se pudo registrar el abono de demo")
	}

	log.Info().
		Int("productos", len(productos)).
		Uint("venta", venta.ID).
		Msg("datos de demo cargados")
}

// cmd/reconcile — repara el estado de pago de las ventas desde el ledger de
// abonos. Es el único modo en que las cifras almacenadas se reescriben; cada
// corrección queda logueada con el correlation id de la corrida.
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/config"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/infra"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/reconcile"
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

	engine := reconcile.NewEngine(db, cfg.Epsilon)
	report, err := engine.RepairPayments(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("reconciliación abortada")
		os.Exit(1)
	}

	log.Info().
		Str("correlation_id", report.CorrelationID).
		Int("revisadas", report.Checked).
		Int("reparadas", report.Repaired).
		Msg("reconciliación de pagos completada")
}

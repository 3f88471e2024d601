// cmd/consolidate — vuelca las tablas legacy del esquema viejo en las
// actuales (insert-if-absent, re-ejecutable) y luego re-verifica pagos.
// No borra las tablas legacy: eso es un paso manual posterior.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/apperror"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/config"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/consolidate"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/infra"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/reconcile"
)

// Pares legacy → actual conocidos de este esquema. Las tablas *_old quedaron
// de la versión anterior del sistema; ausentes significa que ya no hay nada
// que migrar.
var pares = []struct {
	legacy, actual string
	claves         []string
	backfill       consolidate.Backfill
}{
	{"clientes_old", "clientes", []string{"id"}, nil},
	// ventas_old es anterior al seguimiento de pagos: las filas migradas se
	// marcan pagadas, igual que hizo la migración ventas-payment-tracking.
	{"ventas_old", "ventas", []string{"id"}, consolidate.PaymentBackfill("ventas_old")},
}

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
	for _, par := range pares {
		migradas, err := consolidate.Consolidate(ctx, db, par.legacy, par.actual, par.claves, par.backfill)
		switch {
		case errors.Is(err, apperror.ErrLegacyTableAbsent):
			log.Info().Str("legacy", par.legacy).Msg("tabla legacy ausente, nada que migrar")
		case err != nil:
			log.Error().Err(err).Str("legacy", par.legacy).Msg("consolidación fallida")
			os.Exit(1)
		default:
			log.Info().Str("legacy", par.legacy).Int64("migradas", migradas).Msg("consolidada")
		}
	}

	// Las filas recién llegadas pueden traer cifras de pago de la era
	// anterior: re-verificamos en vez de confiar.
	engine := reconcile.NewEngine(db, cfg.Epsilon)
	report, err := engine.Check(ctx)
	if err != nil {
		log.Error().Err(err).Msg("verificación post-consolidación fallida")
		os.Exit(1)
	}
	if !report.Clean() {
		for _, f := range report.Findings {
			log.Warn().Str("check", f.CheckType).Uint("id", f.EntityID).Msg(f.Details)
		}
		log.Warn().
			Int("hallazgos", len(report.Findings)).
			Msg("la consolidación dejó inconsistencias; ejecute cmd/reconcile para repararlas")
		os.Exit(1)
	}
	log.Info().Msg("consolidación y verificación completadas")
}

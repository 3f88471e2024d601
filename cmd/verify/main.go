// cmd/verify — corre todas las verificaciones de integridad sin escribir
// nada. Sale con código 1 si encuentra inconsistencias, para que pueda
// usarse en cron / CI contra la base de producción.
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
	report, err := engine.Check(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("verificación abortada")
		os.Exit(1)
	}

	for _, f := range report.Findings {
		log.Warn().
			Str("correlation_id", report.CorrelationID).
			Str("check", f.CheckType).
			Str("entidad", f.EntityType).
			Uint("id", f.EntityID).
			Msg(f.Details)
	}

	if !report.Clean() {
		log.Error().
			Int("revisadas", report.Checked).
			Int("hallazgos", len(report.Findings)).
			Msg("se encontraron inconsistencias")
		os.Exit(1)
	}
	log.Info().Int("revisadas", report.Checked).Msg("sin inconsistencias")
}

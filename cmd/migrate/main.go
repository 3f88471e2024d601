// cmd/migrate — aplica todas las migraciones de esquema pendientes.
// Uso: go run ./cmd/migrate  (DATABASE_PATH opcional)
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/config"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/infra"
	"github.com/JoseRuco/Sistema-de-inventario--sub001/internal/migration"
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

	runner := migration.NewRunner(db, migration.All())
	applied, err := runner.Run(context.Background())
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("aplicada")
	}
	if err != nil {
		// La migración que falló ya fue revertida; las anteriores quedan.
		log.Error().Err(err).Msg("migración fallida")
		os.Exit(1)
	}

	log.Info().Int("aplicadas", len(applied)).Str("db", cfg.DatabasePath).Msg("esquema al día")
}

// Package migration applies the ordered schema history of the system.
//
// There is no tracking table: each migration probes the live schema
// (table/column presence) to decide whether it already ran. That keeps the
// database self-describing but means a migration must never change shape in
// a way its own probe cannot see — a known, accepted risk carried over from
// the original script-per-change workflow.
package migration

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Migration is one named, idempotent schema change.
type Migration struct {
	Name string
	// Applied reports whether the migration already ran, probing the live
	// schema. Checked outside the transaction so skipped migrations cost one
	// query.
	Applied func(db *gorm.DB) (bool, error)
	// Apply performs the change inside the supplied transaction. Backfills
	// belong here too: they must commit or roll back with the DDL.
	Apply func(tx *gorm.DB) error
}

// Runner applies migrations in order, each inside its own transaction.
type Runner struct {
	db         *gorm.DB
	migrations []Migration
}

func NewRunner(db *gorm.DB, migrations []Migration) *Runner {
	return &Runner{db: db, migrations: migrations}
}

// Run applies every pending migration and returns the names it applied.
// A failure rolls back only the failing migration; everything applied before
// it stays committed, and the run halts there.
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	runID := uuid.New().String()
	applied := make([]string, 0, len(r.migrations))

	for _, m := range r.migrations {
		done, err := m.Applied(r.db)
		if err != nil {
			return applied, fmt.Errorf("migración %q: sondeo de esquema: %w", m.Name, err)
		}
		if done {
			log.Debug().Str("run_id", runID).Str("migration", m.Name).Msg("ya aplicada")
			continue
		}

		log.Info().Str("run_id", runID).Str("migration", m.Name).Msg("aplicando migración")
		if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return m.Apply(tx)
		}); err != nil {
			return applied, fmt.Errorf("migración %q: %w", m.Name, err)
		}
		applied = append(applied, m.Name)
	}
	return applied, nil
}

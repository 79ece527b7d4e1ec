package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_kv_slots",
		SQL: `CREATE TABLE IF NOT EXISTS kv_slots (
  key        TEXT        PRIMARY KEY,
  value      JSONB       NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_kv_slots_updated_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_kv_slots_updated_at ON kv_slots (updated_at);`,
	},
}

// EnsureMigrated bootstraps the kv_slots schema when the sentinel table is
// absent. Re-running against an existing schema is a no-op.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger, dbHost string) error {
	start := time.Now()

	log.Info().Str("db_host", dbHost).Msg("verificando esquema do banco")

	var exists bool
	query := "SELECT to_regclass('public.kv_slots') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error().Err(err).Str("db_host", dbHost).
			Dur("duration", time.Since(start)).Msg("falha ao verificar tabela sentinela")
		return fmt.Errorf("verificar tabela sentinela: %w", err)
	}

	if exists {
		log.Info().Str("db_host", dbHost).
			Dur("duration", time.Since(start)).Msg("esquema já existe, migração ignorada")
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().Err(err).Str("migration_step", step.Name).Str("db_host", dbHost).
				Dur("duration", time.Since(stepStart)).Msg("passo de migração falhou")
			return fmt.Errorf("passo de migração %s: %w", step.Name, err)
		}
		log.Info().Str("migration_step", step.Name).Str("db_host", dbHost).
			Dur("duration", time.Since(stepStart)).Msg("passo de migração aplicado")
	}

	log.Info().Str("db_host", dbHost).
		Dur("duration", time.Since(start)).Msg("esquema criado")
	return nil
}

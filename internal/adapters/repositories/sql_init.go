package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for the simulation run log.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS simulation_runs (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		destination TEXT NOT NULL,
		zone INTEGER NOT NULL,
		winner_rate_card_id TEXT,
		winner_total_cost DOUBLE PRECISION,
		winner_is_priority BOOLEAN NOT NULL DEFAULT FALSE,
		cache_hit BOOLEAN NOT NULL DEFAULT FALSE,
		rate_card_ids JSONB NOT NULL,
		items JSONB NOT NULL,
		result JSONB NOT NULL
	);
	`

	createCreatedAtIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_simulation_runs_created_at
	ON simulation_runs(created_at DESC);
	`

	createWinnerIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_simulation_runs_winner
	ON simulation_runs(winner_rate_card_id, zone);
	`

	statements := []string{
		createRunsQuery,
		createCreatedAtIndexQuery,
		createWinnerIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"fulfillment-routing-service/internal/domain"
	"fulfillment-routing-service/internal/platform/obs"
	"fulfillment-routing-service/internal/ports"
)

// SQLSimulationStore is a Postgres-backed log of routing runs.
// Inputs and results are stored as JSONB next to a few queryable columns.
type SQLSimulationStore struct {
	DB *sql.DB
}

var _ ports.SimulationStore = (*SQLSimulationStore)(nil)

func NewSQLSimulationStore(db *sql.DB) *SQLSimulationStore {
	return &SQLSimulationStore{DB: db}
}

// Insert one run. Runs are immutable; saving an existing id is an error.
func (s *SQLSimulationStore) SaveRun(ctx context.Context, run domain.SimulationRun) (err error) {
	defer obs.Time(ctx, "simulation.store.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("save simulation run: db is nil")
	}
	if run.ID == uuid.Nil {
		return errors.New("save simulation run: id must be set")
	}

	items, err := json.Marshal(run.Items)
	if err != nil {
		return fmt.Errorf("save simulation run %s: encode items: %w", run.ID, err)
	}
	cardIDs, err := json.Marshal(run.RateCardIDs)
	if err != nil {
		return fmt.Errorf("save simulation run %s: encode rate card ids: %w", run.ID, err)
	}
	result, err := json.Marshal(run.Result)
	if err != nil {
		return fmt.Errorf("save simulation run %s: encode result: %w", run.ID, err)
	}

	var (
		winnerID   sql.NullString
		winnerCost sql.NullFloat64
		priority   bool
	)
	if w := run.Result.Winner; w != nil {
		winnerID = sql.NullString{String: w.RateCardID, Valid: true}
		winnerCost = sql.NullFloat64{Float64: w.TotalCost, Valid: true}
		priority = w.IsPriority
	}

	q := `
	INSERT INTO simulation_runs (
		id,
		created_at,
		destination,
		zone,
		winner_rate_card_id,
		winner_total_cost,
		winner_is_priority,
		cache_hit,
		rate_card_ids,
		items,
		result
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = s.DB.ExecContext(ctx, q,
		run.ID.String(),
		run.CreatedAt,
		run.Destination,
		run.Result.Zone,
		winnerID,
		winnerCost,
		priority,
		run.CacheHit,
		string(cardIDs),
		string(items),
		string(result),
	)
	if err != nil {
		return fmt.Errorf("save simulation run %s: insert: %w", run.ID, err)
	}
	return nil
}

// Fetch one run by id.
func (s *SQLSimulationStore) GetRun(ctx context.Context, id uuid.UUID) (_ domain.SimulationRun, err error) {
	defer obs.Time(ctx, "simulation.store.GetRun")(&err)

	if s.DB == nil {
		return domain.SimulationRun{}, errors.New("get simulation run: db is nil")
	}

	q := `
	SELECT created_at, destination, cache_hit, rate_card_ids, items, result
	FROM simulation_runs
	WHERE id = $1;
	`

	run := domain.SimulationRun{ID: id}
	var cardIDs, items, result []byte
	err = s.DB.QueryRowContext(ctx, q, id.String()).Scan(
		&run.CreatedAt,
		&run.Destination,
		&run.CacheHit,
		&cardIDs,
		&items,
		&result,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SimulationRun{}, fmt.Errorf("get simulation run %s: %w", id, ports.ErrSimulationNotFound)
	}
	if err != nil {
		return domain.SimulationRun{}, fmt.Errorf("get simulation run %s: query: %w", id, err)
	}

	if err := json.Unmarshal(cardIDs, &run.RateCardIDs); err != nil {
		return domain.SimulationRun{}, fmt.Errorf("get simulation run %s: decode rate card ids: %w", id, err)
	}
	if err := json.Unmarshal(items, &run.Items); err != nil {
		return domain.SimulationRun{}, fmt.Errorf("get simulation run %s: decode items: %w", id, err)
	}
	if err := json.Unmarshal(result, &run.Result); err != nil {
		return domain.SimulationRun{}, fmt.Errorf("get simulation run %s: decode result: %w", id, err)
	}
	return run, nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"fulfillment-routing-service/internal/domain"
	platformdb "fulfillment-routing-service/internal/platform/db"
	"fulfillment-routing-service/internal/ports"
)

type SimulationStoreIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *sql.DB
	store     *SQLSimulationStore
	ctx       context.Context
}

func (s *SimulationStoreIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx, "postgres:16-alpine",
		postgres.WithDatabase("routing"),
		postgres.WithUsername("routing"),
		postgres.WithPassword("routing"),
		postgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = platformdb.Open(s.ctx, dsn)
	s.Require().NoError(err)

	s.Require().NoError(InitSchema(s.db))
	s.store = NewSQLSimulationStore(s.db)
}

func (s *SimulationStoreIntegrationTestSuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(s.ctx))
	}
}

func (s *SimulationStoreIntegrationTestSuite) TearDownTest() {
	_, err := s.db.ExecContext(s.ctx, `TRUNCATE simulation_runs`)
	s.Require().NoError(err)
}

func TestSimulationStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(SimulationStoreIntegrationTestSuite))
}

func sampleRun() domain.SimulationRun {
	owned := domain.RoutingCandidate{
		RateCardID:  "rc_owned_wh",
		VendorName:  "Owned-Warehouse",
		Currency:    "USD",
		TotalCost:   12.35,
		TotalWeight: 1,
		TotalVolume: 192,
		IsPriority:  true,
		Details: []domain.CostDetail{
			{Name: "Handling", Cost: 3.75, Note: "Base $3.00 + (1 extra items x $0.75)"},
			{Name: "Priority Override", Cost: 0, Note: "Zone 1 destination is reserved for the owned fleet"},
		},
	}
	fba := domain.RoutingCandidate{
		RateCardID:  "rc_amazon_fba",
		VendorName:  "Amazon-FBA",
		Currency:    "USD",
		TotalCost:   6.44,
		TotalWeight: 1,
		TotalVolume: 192,
		Details:     []domain.CostDetail{{Name: "Fulfillment Fee", Cost: 6.44, Note: "Tee: Small Standard $3.22 x 2"}},
	}
	winner := owned

	return domain.SimulationRun{
		ID:          uuid.New(),
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
		Destination: "90012",
		RateCardIDs: []string{"rc_amazon_fba", "rc_owned_wh"},
		Items:       []domain.OrderItem{{ID: 1, Name: "Tee", Weight: 0.5, L: 10, W: 8, H: 1, Qty: 2}},
		Result: domain.SimulationResult{
			Destination: "90012",
			Zone:        1,
			Aggregates:  domain.OrderAggregates{TotalItems: 2, TotalWeight: 1, TotalVolume: 192},
			Candidates:  []domain.RoutingCandidate{owned, fba},
			Winner:      &winner,
		},
	}
}

func (s *SimulationStoreIntegrationTestSuite) TestSaveAndGetRoundTrip() {
	run := sampleRun()
	s.Require().NoError(s.store.SaveRun(s.ctx, run))

	got, err := s.store.GetRun(s.ctx, run.ID)
	s.Require().NoError(err)

	s.True(run.CreatedAt.Equal(got.CreatedAt), "created_at: got %v, want %v", got.CreatedAt, run.CreatedAt)
	got.CreatedAt = run.CreatedAt
	s.Equal(run, got)

	var (
		winnerID   sql.NullString
		winnerCost sql.NullFloat64
		priority   bool
		zone       int
	)
	err = s.db.QueryRowContext(s.ctx,
		`SELECT winner_rate_card_id, winner_total_cost, winner_is_priority, zone FROM simulation_runs WHERE id = $1`,
		run.ID.String(),
	).Scan(&winnerID, &winnerCost, &priority, &zone)
	s.Require().NoError(err)
	s.Equal(sql.NullString{String: "rc_owned_wh", Valid: true}, winnerID)
	s.Equal(sql.NullFloat64{Float64: 12.35, Valid: true}, winnerCost)
	s.True(priority)
	s.Equal(1, zone)
}

func (s *SimulationStoreIntegrationTestSuite) TestRunWithoutWinner() {
	run := sampleRun()
	run.RateCardIDs = []string{}
	run.Result.Candidates = []domain.RoutingCandidate{}
	run.Result.Winner = nil
	s.Require().NoError(s.store.SaveRun(s.ctx, run))

	got, err := s.store.GetRun(s.ctx, run.ID)
	s.Require().NoError(err)
	s.Nil(got.Result.Winner)
	s.Empty(got.Result.Candidates)

	var winnerID sql.NullString
	var winnerCost sql.NullFloat64
	err = s.db.QueryRowContext(s.ctx,
		`SELECT winner_rate_card_id, winner_total_cost FROM simulation_runs WHERE id = $1`,
		run.ID.String(),
	).Scan(&winnerID, &winnerCost)
	s.Require().NoError(err)
	s.False(winnerID.Valid)
	s.False(winnerCost.Valid)
}

func (s *SimulationStoreIntegrationTestSuite) TestGetUnknownRun() {
	_, err := s.store.GetRun(s.ctx, uuid.New())
	s.ErrorIs(err, ports.ErrSimulationNotFound)
}

func (s *SimulationStoreIntegrationTestSuite) TestDuplicateIDRejected() {
	run := sampleRun()
	s.Require().NoError(s.store.SaveRun(s.ctx, run))

	err := s.store.SaveRun(s.ctx, run)
	s.Require().Error(err)

	var pgErr *pgconn.PgError
	s.Require().True(errors.As(err, &pgErr), "got %T, want *pgconn.PgError", err)
	s.Equal("23505", pgErr.Code)
}

func (s *SimulationStoreIntegrationTestSuite) TestInitSchemaIsIdempotent() {
	s.NoError(InitSchema(s.db))
}

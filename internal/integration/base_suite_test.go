package integration_test

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/catalog-admin/internal/database"
	"github.com/metinatakli/catalog-admin/internal/telemetry"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

// testEnv is a migrated PostgreSQL container and a pool connected to it.
type testEnv struct {
	container *PostgresContainer
	pool      *pgxpool.Pool
	logger    *slog.Logger
}

func newTestEnv(ctx context.Context) (*testEnv, error) {
	container, err := getDbContainer(ctx)
	if err != nil {
		return nil, err
	}

	pool, err := database.NewPool(ctx, database.Config{
		DSN:          container.ConnectionString,
		MaxOpenConns: 25,
		MaxIdleTime:  2 * time.Minute,
	})
	if err != nil {
		_ = testcontainers.TerminateContainer(container.Container)
		return nil, fmt.Errorf("cannot open pool: %w", err)
	}

	return &testEnv{
		container: container,
		pool:      pool,
		logger:    telemetry.NewLogger(os.Stderr, "catalog-admin-integration"),
	}, nil
}

func (e *testEnv) close() {
	e.pool.Close()
	if err := testcontainers.TerminateContainer(e.container.Container); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

func (e *testEnv) truncate(ctx context.Context) error {
	_, err := e.pool.Exec(ctx, "TRUNCATE genre_categories, genres, categories, cast_members RESTART IDENTITY CASCADE")
	return err
}

// mustTruncate empties every table. Suites recover the panic and fail the
// running test.
func (e *testEnv) mustTruncate() {
	if err := e.truncate(context.Background()); err != nil {
		panic(fmt.Sprintf("truncating tables: %s", err))
	}
}

type BaseSuite struct {
	suite.Suite
	env *testEnv
}

func (s *BaseSuite) SetupSuite() {
	env, err := newTestEnv(context.Background())
	s.Require().NoError(err, "cannot start test environment")

	s.env = env
}

func (s *BaseSuite) TearDownSuite() {
	if s.env != nil {
		s.env.close()
	}
}

func (s *BaseSuite) SetupTest() {
	s.Require().NoError(s.env.truncate(context.Background()))
}

func (s *BaseSuite) exec(query string, args ...any) {
	_, err := s.env.pool.Exec(context.Background(), query, args...)
	s.Require().NoError(err)
}

package repository

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUnitOfWork holds one pgx transaction between Start and Commit or
// Rollback. Repositories bound to it query through Conn.
type PostgresUnitOfWork struct {
	db     *pgxpool.Pool
	logger *slog.Logger

	mu sync.Mutex
	tx pgx.Tx
}

func NewPostgresUnitOfWork(db *pgxpool.Pool, logger *slog.Logger) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{
		db:     db,
		logger: logger,
	}
}

func (u *PostgresUnitOfWork) Start(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx != nil {
		return invalidState("start", "active")
	}

	tx, err := u.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	u.tx = tx

	return nil
}

func (u *PostgresUnitOfWork) Commit(ctx context.Context) error {
	tx, err := u.finish("commit")
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (u *PostgresUnitOfWork) Rollback(ctx context.Context) error {
	tx, err := u.finish("rollback")
	if err != nil {
		return err
	}

	err = tx.Rollback(ctx)
	if err != nil {
		u.logger.Error("failed to roll back unit of work", "error", err)
	}

	return err
}

func (u *PostgresUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return runUnitOfWork(ctx, "postgres", u, fn)
}

// Conn returns the open transaction, or the pool when idle.
func (u *PostgresUnitOfWork) Conn() DBTX {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx != nil {
		return u.tx
	}

	return u.db
}

func (u *PostgresUnitOfWork) InTransaction() bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.tx != nil
}

// finish detaches the open transaction so the unit of work is idle again
// whatever the outcome of its commit or rollback.
func (u *PostgresUnitOfWork) finish(op string) (pgx.Tx, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx == nil {
		return nil, invalidState(op, "idle")
	}

	tx := u.tx
	u.tx = nil

	return tx, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/catalog-admin/internal/domain"
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnSrc []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// pgStore routes queries through the bound unit of work while it is active and
// through the pool otherwise.
type pgStore struct {
	db  *pgxpool.Pool
	uow *PostgresUnitOfWork
}

func (s pgStore) conn() DBTX {
	if s.uow != nil {
		return s.uow.Conn()
	}

	return s.db
}

// inTx runs fn inside the active unit of work, or inside a transaction of its
// own when there is none.
func (s pgStore) inTx(ctx context.Context, fn func(tx DBTX) error) error {
	if s.uow != nil && s.uow.InTransaction() {
		return fn(s.uow.Conn())
	}

	return runInTx(ctx, s.db, func(tx pgx.Tx) error {
		return fn(tx)
	})
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

// sortOverrides maps a sortable field to the expression it orders by. Names
// sort with the "C" collation so the order is plain byte order.
var sortOverrides = map[string]string{
	"name": `name COLLATE "C"`,
}

// orderClause builds the ORDER BY for a search. Fields outside sortable fall
// back to newest first; insertion_order breaks ties.
func orderClause(field string, dir domain.SortDirection, sortable []string, prefix string) string {
	column := prefix + "created_at DESC"

	for _, f := range sortable {
		if f != field {
			continue
		}

		expr := prefix + field
		if override, ok := sortOverrides[field]; ok {
			expr = prefix + override
		}

		direction := "ASC"
		if dir == domain.SortDesc {
			direction = "DESC"
		}

		column = expr + " " + direction
		break
	}

	return fmt.Sprintf("ORDER BY %s, %sinsertion_order ASC", column, prefix)
}

// conditions collects WHERE predicates and their positional arguments.
type conditions struct {
	clauses []string
	args    []any
}

// add appends a predicate; each "?" in clause becomes the next placeholder.
func (c *conditions) add(clause string, args ...any) {
	for _, arg := range args {
		c.args = append(c.args, arg)
		clause = strings.Replace(clause, "?", fmt.Sprintf("$%d", len(c.args)), 1)
	}

	c.clauses = append(c.clauses, clause)
}

// contains adds a case-insensitive substring match on column.
func (c *conditions) contains(column, value string) {
	c.add(column+` ILIKE ? ESCAPE '\'`, "%"+escapeLike(value)+"%")
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}

	return "WHERE " + strings.Join(c.clauses, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func pgUUID(id domain.Identifier) pgtype.UUID {
	return pgtype.UUID{Bytes: id.UUID(), Valid: true}
}

func pgUUIDs[ID interface{ UUID() uuid.UUID }](ids []ID) []pgtype.UUID {
	out := make([]pgtype.UUID, len(ids))
	for i, id := range ids {
		out[i] = pgtype.UUID{Bytes: id.UUID(), Valid: true}
	}

	return out
}

func uuidString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}

	return uuid.UUID(u.Bytes).String()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}

// classifyWriteError maps constraint violations onto domain errors.
func classifyWriteError(err error, entityName string, ids ...string) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return fmt.Errorf("%s %s: %w", entityName, strings.Join(ids, ", "), domain.ErrAlreadyExists)
	default:
		return err
	}
}

// searchPage runs a windowed search query. When the page lies past the last
// match no row carries the window total, so countQuery supplies it.
func searchPage[E any](
	ctx context.Context,
	db DBTX,
	query, countQuery string,
	args []any,
	limit, offset int,
	scan func(rows pgx.Rows, total *int) (E, error),
) ([]E, int, error) {
	rows, err := db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	totalRecords := 0
	items := []E{}

	for rows.Next() {
		item, err := scan(rows, &totalRecords)
		if err != nil {
			return nil, 0, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(items) == 0 && offset > 0 {
		err = db.QueryRow(ctx, countQuery, args...).Scan(&totalRecords)
		if err != nil {
			return nil, 0, err
		}
	}

	return items, totalRecords, nil
}

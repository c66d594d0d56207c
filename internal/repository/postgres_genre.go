package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/catalog-admin/internal/domain"
	"github.com/metinatakli/catalog-admin/internal/validator"
)

// genreSelect reads a genre with its category ids aggregated into one array.
const genreSelect = `SELECT %s g.genre_id, g.name, g.is_active, g.created_at,
		COALESCE(
			array_agg(gc.category_id ORDER BY gc.category_id) FILTER (WHERE gc.category_id IS NOT NULL),
			'{}'
		)
	FROM genres g
	LEFT JOIN genre_categories gc ON gc.genre_id = g.genre_id`

type PostgresGenreRepository struct {
	pgStore
}

func NewPostgresGenreRepository(db *pgxpool.Pool) *PostgresGenreRepository {
	return &PostgresGenreRepository{
		pgStore: pgStore{db: db},
	}
}

// WithUnitOfWork binds the repository to uow when it is a postgres unit of
// work. Any other unit of work leaves the repository unbound.
func (p *PostgresGenreRepository) WithUnitOfWork(uow domain.UnitOfWork) domain.GenreRepository {
	u, ok := uow.(*PostgresUnitOfWork)
	if !ok {
		return p
	}

	return &PostgresGenreRepository{
		pgStore: pgStore{db: p.db, uow: u},
	}
}

func (p *PostgresGenreRepository) SortableFields() []string {
	return []string{"name", "created_at"}
}

func (p *PostgresGenreRepository) Insert(ctx context.Context, genre *domain.Genre) error {
	return p.BulkInsert(ctx, []*domain.Genre{genre})
}

func (p *PostgresGenreRepository) BulkInsert(ctx context.Context, genres []*domain.Genre) error {
	if len(genres) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(genres))
	ids := make([]string, 0, len(genres))
	links := [][]any{}

	for _, g := range genres {
		rows = append(rows, []any{pgUUID(g.ID.Identifier), g.Name, g.IsActive, g.CreatedAt})
		ids = append(ids, g.ID.String())
		links = append(links, genreLinks(g)...)
	}

	err := p.inTx(ctx, func(tx DBTX) error {
		_, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"genres"},
			[]string{"genre_id", "name", "is_active", "created_at"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return err
		}

		return copyGenreLinks(ctx, tx, links)
	})

	return classifyGenreWriteError(err, ids...)
}

// Update replaces the genre row and its whole category set: existing links are
// removed, the row is updated, then the new links are written.
func (p *PostgresGenreRepository) Update(ctx context.Context, genre *domain.Genre) error {
	id := pgUUID(genre.ID.Identifier)

	err := p.inTx(ctx, func(tx DBTX) error {
		_, err := tx.Exec(ctx, `DELETE FROM genre_categories WHERE genre_id = $1`, id)
		if err != nil {
			return err
		}

		query := `UPDATE genres
			SET name = $2, is_active = $3
			WHERE genre_id = $1`

		tag, err := tx.Exec(ctx, query, id, genre.Name, genre.IsActive)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.NewNotFoundError(domain.GenreEntityName, genre.ID.String())
		}

		return copyGenreLinks(ctx, tx, genreLinks(genre))
	})

	return classifyGenreWriteError(err, genre.ID.String())
}

func (p *PostgresGenreRepository) Delete(ctx context.Context, id domain.GenreID) error {
	tag, err := p.conn().Exec(ctx, `DELETE FROM genres WHERE genre_id = $1`, pgUUID(id.Identifier))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError(domain.GenreEntityName, id.String())
	}

	return nil
}

func (p *PostgresGenreRepository) FindByID(ctx context.Context, id domain.GenreID) (*domain.Genre, error) {
	query := fmt.Sprintf(genreSelect, "") + `
		WHERE g.genre_id = $1
		GROUP BY g.genre_id`

	genre, err := scanGenre(p.conn().QueryRow(ctx, query, pgUUID(id.Identifier)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return genre, nil
}

func (p *PostgresGenreRepository) FindAll(ctx context.Context) ([]*domain.Genre, error) {
	query := fmt.Sprintf(genreSelect, "") + `
		GROUP BY g.genre_id
		ORDER BY g.insertion_order`

	rows, err := p.conn().Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := []*domain.Genre{}

	for rows.Next() {
		genre, err := scanGenre(rows)
		if err != nil {
			return nil, err
		}

		genres = append(genres, genre)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return genres, nil
}

func (p *PostgresGenreRepository) Search(
	ctx context.Context,
	params domain.SearchParams[domain.GenreFilter]) (domain.SearchResult[*domain.Genre], error) {

	params = params.Normalize()

	var where conditions
	if f := params.Filter; f != nil {
		if f.Name != "" {
			where.contains("g.name", f.Name)
		}
		if len(f.CategoryIDs) > 0 {
			where.add(`EXISTS (
				SELECT 1 FROM genre_categories fc
				WHERE fc.genre_id = g.genre_id AND fc.category_id = ANY(?)
			)`, pgUUIDs(f.CategoryIDs))
		}
	}

	query := fmt.Sprintf(genreSelect, "count(*) OVER(),") + fmt.Sprintf(`
		%s
		GROUP BY g.genre_id
		%s
		LIMIT $%d OFFSET $%d`,
		where.where(),
		orderClause(params.SortField(), params.Direction(), p.SortableFields(), "g."),
		len(where.args)+1,
		len(where.args)+2)

	countQuery := `SELECT count(*) FROM genres g ` + where.where()

	genres, total, err := searchPage(ctx, p.conn(), query, countQuery, where.args, params.Limit(), params.Offset(),
		func(rows pgx.Rows, total *int) (*domain.Genre, error) {
			return scanGenre(rows, total)
		})
	if err != nil {
		return domain.SearchResult[*domain.Genre]{}, err
	}

	return domain.NewSearchResult(genres, total, params.Page, params.PerPage), nil
}

func genreLinks(g *domain.Genre) [][]any {
	links := make([][]any, 0, len(g.CategoryIDs))
	for _, categoryID := range g.CategoryIDList() {
		links = append(links, []any{pgUUID(g.ID.Identifier), pgUUID(categoryID.Identifier)})
	}

	return links
}

func copyGenreLinks(ctx context.Context, tx DBTX, links [][]any) error {
	if len(links) == 0 {
		return nil
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"genre_categories"},
		[]string{"genre_id", "category_id"},
		pgx.CopyFromRows(links),
	)

	return err
}

// classifyGenreWriteError turns a dangling category reference into a
// *NotFoundError for that category.
func classifyGenreWriteError(err error, ids ...string) error {
	if !isForeignKeyViolation(err) {
		return classifyWriteError(err, domain.GenreEntityName, ids...)
	}

	var pgErr *pgconn.PgError
	errors.As(err, &pgErr)

	if categoryID, ok := referencedKey(pgErr.Detail); ok {
		return domain.NewNotFoundError(domain.CategoryEntityName, categoryID)
	}

	return fmt.Errorf("%s %s references a missing category: %w",
		domain.GenreEntityName, strings.Join(ids, ", "), domain.ErrRecordNotFound)
}

// referencedKey pulls the key value out of a foreign key violation detail such
// as `Key (category_id)=(…) is not present in table "categories".`
func referencedKey(detail string) (string, bool) {
	_, rest, ok := strings.Cut(detail, ")=(")
	if !ok {
		return "", false
	}

	key, _, ok := strings.Cut(rest, ")")

	return key, ok
}

// scanGenre rebuilds a genre from a row. A genre without categories or with an
// invalid name is reported as a *LoadEntityError.
func scanGenre(row pgx.Row, prefix ...any) (*domain.Genre, error) {
	var (
		id          pgtype.UUID
		name        string
		isActive    bool
		createdAt   time.Time
		categoryIDs []pgtype.UUID
	)

	dest := append(prefix, &id, &name, &isActive, &createdAt, &categoryIDs)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	genreID, err := domain.ParseGenreID(uuidString(id))
	if err != nil {
		return nil, err
	}

	ids := make([]domain.CategoryID, 0, len(categoryIDs))
	for _, raw := range categoryIDs {
		categoryID, err := domain.ParseCategoryID(uuidString(raw))
		if err != nil {
			return nil, err
		}
		ids = append(ids, categoryID)
	}

	genre := domain.NewGenre(domain.GenreProps{
		ID:          genreID,
		Name:        name,
		CategoryIDs: ids,
		IsActive:    &isActive,
		CreatedAt:   createdAt,
	})

	genre.Validate()

	if len(ids) == 0 {
		genre.Notification().AddFieldError("categories_id", fmt.Sprintf(validator.ErrRequired, "categories_id"))
	}

	if genre.Notification().HasErrors() {
		return nil, domain.NewLoadEntityError(genre.Notification())
	}

	return genre, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/catalog-admin/internal/domain"
)

const categoryColumns = "category_id, name, description, is_active, created_at"

type PostgresCategoryRepository struct {
	pgStore
}

func NewPostgresCategoryRepository(db *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{
		pgStore: pgStore{db: db},
	}
}

// WithUnitOfWork returns a copy of the repository that queries through uow.
func (p *PostgresCategoryRepository) WithUnitOfWork(uow *PostgresUnitOfWork) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{
		pgStore: pgStore{db: p.db, uow: uow},
	}
}

func (p *PostgresCategoryRepository) SortableFields() []string {
	return []string{"name", "created_at"}
}

func (p *PostgresCategoryRepository) Insert(ctx context.Context, category *domain.Category) error {
	query := `INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := p.conn().Exec(ctx,
		query,
		pgUUID(category.ID.Identifier),
		category.Name,
		category.Description,
		category.IsActive,
		category.CreatedAt)

	return classifyWriteError(err, domain.CategoryEntityName, category.ID.String())
}

func (p *PostgresCategoryRepository) BulkInsert(ctx context.Context, categories []*domain.Category) error {
	if len(categories) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(categories))
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []any{
			pgUUID(c.ID.Identifier),
			c.Name,
			c.Description,
			c.IsActive,
			c.CreatedAt,
		})
		ids = append(ids, c.ID.String())
	}

	_, err := p.conn().CopyFrom(
		ctx,
		pgx.Identifier{"categories"},
		[]string{"category_id", "name", "description", "is_active", "created_at"},
		pgx.CopyFromRows(rows),
	)

	return classifyWriteError(err, domain.CategoryEntityName, ids...)
}

func (p *PostgresCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `UPDATE categories
		SET name = $2, description = $3, is_active = $4
		WHERE category_id = $1`

	tag, err := p.conn().Exec(ctx,
		query,
		pgUUID(category.ID.Identifier),
		category.Name,
		category.Description,
		category.IsActive)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError(domain.CategoryEntityName, category.ID.String())
	}

	return nil
}

func (p *PostgresCategoryRepository) Delete(ctx context.Context, id domain.CategoryID) error {
	tag, err := p.conn().Exec(ctx, `DELETE FROM categories WHERE category_id = $1`, pgUUID(id.Identifier))
	if isForeignKeyViolation(err) {
		return domain.NewInUseError(domain.CategoryEntityName, id.String(), domain.GenreEntityName)
	}
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError(domain.CategoryEntityName, id.String())
	}

	return nil
}

func (p *PostgresCategoryRepository) FindByID(ctx context.Context, id domain.CategoryID) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1`

	category, err := scanCategory(p.conn().QueryRow(ctx, query, pgUUID(id.Identifier)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return category, nil
}

func (p *PostgresCategoryRepository) FindAll(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY insertion_order`

	return p.queryCategories(ctx, query)
}

func (p *PostgresCategoryRepository) FindByIDs(ctx context.Context, ids []domain.CategoryID) ([]*domain.Category, error) {
	if len(ids) == 0 {
		return []*domain.Category{}, nil
	}

	query := `SELECT ` + categoryColumns + `
		FROM categories
		WHERE category_id = ANY($1)
		ORDER BY insertion_order`

	return p.queryCategories(ctx, query, pgUUIDs(ids))
}

func (p *PostgresCategoryRepository) ExistsByID(ctx context.Context, ids []domain.CategoryID) (domain.ExistsResult[domain.CategoryID], error) {
	if len(ids) == 0 {
		return splitExisting(ids, []string{}, func(s string) string { return s }), nil
	}

	rows, err := p.conn().Query(ctx, `SELECT category_id FROM categories WHERE category_id = ANY($1)`, pgUUIDs(ids))
	if err != nil {
		return domain.ExistsResult[domain.CategoryID]{}, err
	}
	defer rows.Close()

	found := []string{}
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return domain.ExistsResult[domain.CategoryID]{}, err
		}
		found = append(found, uuidString(id))
	}

	if err = rows.Err(); err != nil {
		return domain.ExistsResult[domain.CategoryID]{}, err
	}

	return splitExisting(ids, found, func(s string) string { return s }), nil
}

func (p *PostgresCategoryRepository) Search(
	ctx context.Context,
	params domain.SearchParams[domain.CategoryFilter]) (domain.SearchResult[*domain.Category], error) {

	params = params.Normalize()

	var where conditions
	if params.Filter != nil {
		where.contains("name", params.Filter.Name)
	}

	query := fmt.Sprintf(`SELECT count(*) OVER(), %s
		FROM categories
		%s
		%s
		LIMIT $%d OFFSET $%d`,
		categoryColumns,
		where.where(),
		orderClause(params.SortField(), params.Direction(), p.SortableFields(), ""),
		len(where.args)+1,
		len(where.args)+2)

	countQuery := `SELECT count(*) FROM categories ` + where.where()

	categories, total, err := searchPage(ctx, p.conn(), query, countQuery, where.args, params.Limit(), params.Offset(),
		func(rows pgx.Rows, total *int) (*domain.Category, error) {
			return scanCategory(rows, total)
		})
	if err != nil {
		return domain.SearchResult[*domain.Category]{}, err
	}

	return domain.NewSearchResult(categories, total, params.Page, params.PerPage), nil
}

func (p *PostgresCategoryRepository) queryCategories(ctx context.Context, query string, args ...any) ([]*domain.Category, error) {
	rows, err := p.conn().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*domain.Category{}

	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// scanCategory reads one row, optionally preceded by a window total, and
// rebuilds the aggregate. A row that fails validation is a *LoadEntityError.
func scanCategory(row pgx.Row, prefix ...any) (*domain.Category, error) {
	var (
		id          pgtype.UUID
		name        string
		description *string
		isActive    bool
		createdAt   time.Time
	)

	dest := append(prefix, &id, &name, &description, &isActive, &createdAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	categoryID, err := domain.ParseCategoryID(uuidString(id))
	if err != nil {
		return nil, err
	}

	category := domain.NewCategory(domain.CategoryProps{
		ID:          categoryID,
		Name:        name,
		Description: description,
		IsActive:    &isActive,
		CreatedAt:   createdAt,
	})

	if !category.Validate() {
		return nil, domain.NewLoadEntityError(category.Notification())
	}

	return category, nil
}

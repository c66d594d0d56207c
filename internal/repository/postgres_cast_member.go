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

const castMemberColumns = "cast_member_id, name, cast_member_type, created_at"

type PostgresCastMemberRepository struct {
	pgStore
}

func NewPostgresCastMemberRepository(db *pgxpool.Pool) *PostgresCastMemberRepository {
	return &PostgresCastMemberRepository{
		pgStore: pgStore{db: db},
	}
}

func (p *PostgresCastMemberRepository) SortableFields() []string {
	return []string{"name", "created_at"}
}

func (p *PostgresCastMemberRepository) Insert(ctx context.Context, member *domain.CastMember) error {
	query := `INSERT INTO cast_members (` + castMemberColumns + `)
		VALUES ($1, $2, $3, $4)`

	_, err := p.conn().Exec(ctx,
		query,
		pgUUID(member.ID.Identifier),
		member.Name,
		int16(member.Type.Int()),
		member.CreatedAt)

	return classifyWriteError(err, domain.CastMemberEntityName, member.ID.String())
}

func (p *PostgresCastMemberRepository) BulkInsert(ctx context.Context, members []*domain.CastMember) error {
	if len(members) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(members))
	ids := make([]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []any{
			pgUUID(m.ID.Identifier),
			m.Name,
			int16(m.Type.Int()),
			m.CreatedAt,
		})
		ids = append(ids, m.ID.String())
	}

	_, err := p.conn().CopyFrom(
		ctx,
		pgx.Identifier{"cast_members"},
		[]string{"cast_member_id", "name", "cast_member_type", "created_at"},
		pgx.CopyFromRows(rows),
	)

	return classifyWriteError(err, domain.CastMemberEntityName, ids...)
}

func (p *PostgresCastMemberRepository) Update(ctx context.Context, member *domain.CastMember) error {
	query := `UPDATE cast_members
		SET name = $2, cast_member_type = $3
		WHERE cast_member_id = $1`

	tag, err := p.conn().Exec(ctx, query, pgUUID(member.ID.Identifier), member.Name, int16(member.Type.Int()))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError(domain.CastMemberEntityName, member.ID.String())
	}

	return nil
}

func (p *PostgresCastMemberRepository) Delete(ctx context.Context, id domain.CastMemberID) error {
	tag, err := p.conn().Exec(ctx, `DELETE FROM cast_members WHERE cast_member_id = $1`, pgUUID(id.Identifier))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError(domain.CastMemberEntityName, id.String())
	}

	return nil
}

func (p *PostgresCastMemberRepository) FindByID(ctx context.Context, id domain.CastMemberID) (*domain.CastMember, error) {
	query := `SELECT ` + castMemberColumns + ` FROM cast_members WHERE cast_member_id = $1`

	member, err := scanCastMember(p.conn().QueryRow(ctx, query, pgUUID(id.Identifier)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return member, nil
}

func (p *PostgresCastMemberRepository) FindAll(ctx context.Context) ([]*domain.CastMember, error) {
	rows, err := p.conn().Query(ctx, `SELECT `+castMemberColumns+` FROM cast_members ORDER BY insertion_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []*domain.CastMember{}

	for rows.Next() {
		member, err := scanCastMember(rows)
		if err != nil {
			return nil, err
		}

		members = append(members, member)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

func (p *PostgresCastMemberRepository) Search(
	ctx context.Context,
	params domain.SearchParams[domain.CastMemberFilter]) (domain.SearchResult[*domain.CastMember], error) {

	params = params.Normalize()

	var where conditions
	if f := params.Filter; f != nil {
		if f.Name != "" {
			where.contains("name", f.Name)
		}
		if f.Type != nil {
			where.add("cast_member_type = ?", int16(f.Type.Int()))
		}
	}

	query := fmt.Sprintf(`SELECT count(*) OVER(), %s
		FROM cast_members
		%s
		%s
		LIMIT $%d OFFSET $%d`,
		castMemberColumns,
		where.where(),
		orderClause(params.SortField(), params.Direction(), p.SortableFields(), ""),
		len(where.args)+1,
		len(where.args)+2)

	countQuery := `SELECT count(*) FROM cast_members ` + where.where()

	members, total, err := searchPage(ctx, p.conn(), query, countQuery, where.args, params.Limit(), params.Offset(),
		func(rows pgx.Rows, total *int) (*domain.CastMember, error) {
			return scanCastMember(rows, total)
		})
	if err != nil {
		return domain.SearchResult[*domain.CastMember]{}, err
	}

	return domain.NewSearchResult(members, total, params.Page, params.PerPage), nil
}

// scanCastMember rebuilds a cast member from a row. An unknown stored type or
// an invalid name is reported as a *LoadEntityError.
func scanCastMember(row pgx.Row, prefix ...any) (*domain.CastMember, error) {
	var (
		id        pgtype.UUID
		name      string
		kind      int16
		createdAt time.Time
	)

	dest := append(prefix, &id, &name, &kind, &createdAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	memberID, err := domain.ParseCastMemberID(uuidString(id))
	if err != nil {
		return nil, err
	}

	member := domain.NewCastMember(domain.CastMemberProps{
		ID:        memberID,
		Name:      name,
		CreatedAt: createdAt,
	})

	member.Validate()

	typ, typeErr := domain.CreateCastMemberType(int(kind)).AsArray()
	if typeErr != nil {
		member.Notification().AddFieldError("type", typeErr.Error())
	}
	member.Type = typ

	if member.Notification().HasErrors() {
		return nil, domain.NewLoadEntityError(member.Notification())
	}

	return member, nil
}

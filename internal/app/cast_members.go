package app

import (
	"context"

	"github.com/metinatakli/catalog-admin/internal/domain"
)

type CreateCastMemberInput struct {
	Name string `json:"name" validate:"notblank"`
	Type int    `json:"type"`
}

type UpdateCastMemberInput struct {
	ID   string  `json:"id"`
	Name *string `json:"name" validate:"omitnil,notblank"`
	Type *int    `json:"type"`
}

// ListCastMembersInput takes raw values; a filter type that is not a known
// cast member type is ignored.
type ListCastMembersInput struct {
	Page    any
	PerPage any
	Sort    any
	SortDir any
	Filter  *domain.CastMemberFilterInput
}

func (app *Application) CreateCastMember(ctx context.Context, input CreateCastMemberInput) (CastMemberOutput, error) {
	typ, typeErr := domain.CreateCastMemberType(input.Type).AsArray()

	member := domain.CreateCastMember(domain.CastMemberCreateCommand{
		Name: input.Name,
		Type: typ,
	})

	app.validateInput(member.Notification(), input)

	if typeErr != nil {
		member.Notification().SetFieldError("type", typeErr.Error())
	}

	if err := validationFailure(member.Notification()); err != nil {
		return CastMemberOutput{}, err
	}

	if err := app.castMemberRepo.Insert(ctx, member); err != nil {
		return CastMemberOutput{}, err
	}

	return toCastMemberOutput(member), nil
}

func (app *Application) UpdateCastMember(ctx context.Context, input UpdateCastMemberInput) (CastMemberOutput, error) {
	member, err := app.findCastMember(ctx, input.ID)
	if err != nil {
		return CastMemberOutput{}, err
	}

	if input.Name != nil {
		member.ChangeName(*input.Name)
	}

	app.validateInput(member.Notification(), input)

	if input.Type != nil {
		typ, typeErr := domain.CreateCastMemberType(*input.Type).AsArray()
		member.ChangeType(typ)

		if typeErr != nil {
			member.Notification().SetFieldError("type", typeErr.Error())
		}
	}

	if err := validationFailure(member.Notification()); err != nil {
		return CastMemberOutput{}, err
	}

	if err := app.castMemberRepo.Update(ctx, member); err != nil {
		return CastMemberOutput{}, err
	}

	return toCastMemberOutput(member), nil
}

func (app *Application) GetCastMember(ctx context.Context, id string) (CastMemberOutput, error) {
	member, err := app.findCastMember(ctx, id)
	if err != nil {
		return CastMemberOutput{}, err
	}

	return toCastMemberOutput(member), nil
}

func (app *Application) DeleteCastMember(ctx context.Context, id string) error {
	memberID, err := domain.ParseCastMemberID(id)
	if err != nil {
		return err
	}

	return app.castMemberRepo.Delete(ctx, memberID)
}

func (app *Application) ListCastMembers(ctx context.Context, input ListCastMembersInput) (PaginationOutput[CastMemberOutput], error) {
	params := domain.NewCastMemberSearchParams(domain.CastMemberSearchInput{
		Page:    input.Page,
		PerPage: input.PerPage,
		Sort:    input.Sort,
		SortDir: input.SortDir,
		Filter:  input.Filter,
	})

	result, err := app.castMemberRepo.Search(ctx, params)
	if err != nil {
		return PaginationOutput[CastMemberOutput]{}, err
	}

	return toPaginationOutput(result, toCastMemberOutput), nil
}

func (app *Application) findCastMember(ctx context.Context, id string) (*domain.CastMember, error) {
	memberID, err := domain.ParseCastMemberID(id)
	if err != nil {
		return nil, err
	}

	member, err := app.castMemberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if member == nil {
		return nil, domain.NewNotFoundError(domain.CastMemberEntityName, id)
	}

	return member, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/metinatakli/catalog-admin/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/metinatakli/catalog-admin/internal/repository"

var (
	tracer = otel.Tracer(instrumentationName)
	meter  = otel.Meter(instrumentationName)

	unitOfWorkOutcomes, _ = meter.Int64Counter(
		"catalog.unit_of_work.outcomes",
		metric.WithDescription("Units of work finished, by outcome"),
	)
)

type transactionScope interface {
	Start(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// runUnitOfWork starts uow, runs fn and commits. When fn fails or panics the
// unit of work is rolled back; fn's error is returned, or the panic re-raised.
func runUnitOfWork(ctx context.Context, backend string, uow transactionScope, fn func(ctx context.Context) error) (err error) {
	ctx, span := tracer.Start(ctx, "UnitOfWork.Do")
	span.SetAttributes(attribute.String("catalog.unit_of_work.backend", backend))
	defer span.End()

	if err := uow.Start(ctx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = uow.Rollback(ctx)
			recordOutcome(ctx, backend, "panic")
			panic(p)
		}
	}()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		recordOutcome(ctx, backend, "rollback")

		if rollbackErr := uow.Rollback(ctx); rollbackErr != nil {
			return errors.Join(err, rollbackErr)
		}

		return err
	}

	if err := uow.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		recordOutcome(ctx, backend, "commit_failed")
		return err
	}

	recordOutcome(ctx, backend, "commit")

	return nil
}

func recordOutcome(ctx context.Context, backend, outcome string) {
	unitOfWorkOutcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("outcome", outcome),
	))
}

func invalidState(op, state string) error {
	return fmt.Errorf("%s while %s: %w", op, state, domain.ErrInvalidUnitOfWorkState)
}

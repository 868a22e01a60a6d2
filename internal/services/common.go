package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/tasktrack/tasktrack-api/internal/logger"
	"github.com/tasktrack/tasktrack-api/internal/query"
)

var (
	ErrInvalidID = errors.New("invalid id")
	ErrForbidden = errors.New("operation not permitted")
)

// QueryObserver records the outcome of listing queries.
type QueryObserver interface {
	ObserveQuery(entity string, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveQuery(string, time.Duration, error) {}

func observerOrNop(o QueryObserver) QueryObserver {
	if o == nil {
		return nopObserver{}
	}
	return o
}

// IsValidationError reports whether err was caused by rejected listing criteria.
func IsValidationError(err error) bool {
	return errors.Is(err, query.ErrInvalidPage) ||
		errors.Is(err, query.ErrInvalidPageSize) ||
		errors.Is(err, query.ErrInvalidRange) ||
		errors.Is(err, query.ErrInvalidDate)
}

// runQuery runs one listing query, logging and wrapping storage failures.
func runQuery[T any](ctx context.Context, log *zap.Logger, obs QueryObserver, store query.Store[T], entity query.Entity[T], spec query.Spec) (*query.Page[T], error) {
	start := time.Now()
	page, err := query.Run(ctx, store, entity, spec)
	obs.ObserveQuery(entity.Name, time.Since(start), err)

	if err != nil {
		if IsValidationError(err) {
			return nil, err
		}
		logger.WithRequestID(ctx, log).Error("listing query failed",
			zap.String("entity", entity.Name), zap.Error(err))
		return nil, fmt.Errorf("failed to list %s: %w", entity.Name, err)
	}
	return page, nil
}

// findAll returns every record of entity in its default order.
func findAll[T any](ctx context.Context, store query.Store[T], entity query.Entity[T], filter query.Filter) ([]T, error) {
	items, err := store.Find(ctx, filter, entity.DefaultSort, query.Window{})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// storageError logs a failed storage call once and wraps it.
func storageError(ctx context.Context, log *zap.Logger, action string, err error) error {
	logger.WithRequestID(ctx, log).Error("storage failure", zap.String("action", action), zap.Error(err))
	return fmt.Errorf("failed to %s: %w", action, err)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// parseIDs converts the valid hex ids in ids, skipping duplicates and anything unparsable.
func parseIDs(ids []string) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil || seen[oid] {
			continue
		}
		seen[oid] = true
		out = append(out, oid)
	}
	return out
}

// nowUTC matches the millisecond precision of BSON dates.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

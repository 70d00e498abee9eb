package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

// WeightRepo stores the per-user objective weight vectors written by the
// learner.
type WeightRepo interface {
	Get(ctx context.Context, userID string) (*domain.UserWeights, error)
	Upsert(ctx context.Context, w *domain.UserWeights) error
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context) ([]*domain.UserWeights, error)
}

// ScheduleRunRepo records every produced schedule.
type ScheduleRunRepo interface {
	Create(ctx context.Context, run *domain.ScheduleRun) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleRun, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]*domain.ScheduleRun, error)
}

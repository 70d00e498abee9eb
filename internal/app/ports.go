package app

import (
	"context"

	"github.com/alexanderramin/dayplan/internal/domain"
)

type ScheduleUseCase interface {
	Schedule(ctx context.Context, req ScheduleRequest) (*ScheduleResponse, error)
	ScheduleBatch(ctx context.Context, reqs map[string]ScheduleRequest) []BatchItem
}

type WeightsUseCase interface {
	// Get returns the stored vector for userID, or the defaults when none
	// has been stored yet.
	Get(ctx context.Context, userID string) (*domain.UserWeights, error)
	Set(ctx context.Context, userID string, overrides domain.WeightOverrides) (*domain.UserWeights, error)
	Reset(ctx context.Context, userID string) error
	List(ctx context.Context) ([]*domain.UserWeights, error)
}

type RunHistoryUseCase interface {
	ListRuns(ctx context.Context, userID string, limit int) ([]*domain.ScheduleRun, error)
	GetRun(ctx context.Context, id string) (*domain.ScheduleRun, error)
}

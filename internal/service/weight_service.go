package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
)

type weightService struct {
	weights  repository.WeightRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewWeightService manages stored weight vectors. Writes stand in for the
// external learner.
func NewWeightService(weights repository.WeightRepo, uow db.UnitOfWork, observers ...UseCaseObserver) app.WeightsUseCase {
	return &weightService{weights: weights, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *weightService) Get(ctx context.Context, userID string) (*domain.UserWeights, error) {
	if userID == "" {
		return nil, domain.NewValidationError("user_id", "user id is required")
	}
	w, err := s.weights.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.UserWeights{UserID: userID, Weights: domain.DefaultWeightConfig()}, nil
	}
	return w, err
}

func (s *weightService) Set(ctx context.Context, userID string, overrides domain.WeightOverrides) (updated *domain.UserWeights, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "weights-set",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"user": userID},
		})
	}()

	if userID == "" {
		return nil, domain.NewValidationError("user_id", "user id is required")
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteWeightRepo(tx)
		base := domain.DefaultWeightConfig()
		current, err := repo.Get(ctx, userID)
		switch {
		case err == nil:
			base = current.Weights
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}

		next := overrides.Apply(base)
		if err := next.Validate(); err != nil {
			return err
		}
		updated = &domain.UserWeights{UserID: userID, Weights: next, UpdatedAt: time.Now().UTC()}
		return repo.Upsert(ctx, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Reset drops the stored vector so the defaults apply again. Resetting a
// user with no stored vector is not an error.
func (s *weightService) Reset(ctx context.Context, userID string) error {
	err := s.weights.Delete(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

func (s *weightService) List(ctx context.Context) ([]*domain.UserWeights, error) {
	return s.weights.List(ctx)
}

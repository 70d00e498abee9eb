package service

import (
	"context"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
)

type runHistoryService struct {
	uow db.UnitOfWork
}

func NewRunHistoryService(uow db.UnitOfWork) app.RunHistoryUseCase {
	return &runHistoryService{uow: uow}
}

func (s *runHistoryService) ListRuns(ctx context.Context, userID string, limit int) ([]*domain.ScheduleRun, error) {
	var runs []*domain.ScheduleRun
	err := s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		runs, err = repository.NewSQLiteScheduleRunRepo(tx).ListRecent(ctx, userID, limit)
		return err
	})
	return runs, err
}

// GetRun reads the run and its task rows from one snapshot.
func (s *runHistoryService) GetRun(ctx context.Context, id string) (*domain.ScheduleRun, error) {
	var run *domain.ScheduleRun
	err := s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		run, err = repository.NewSQLiteScheduleRunRepo(tx).GetByID(ctx, id)
		return err
	})
	return run, err
}

package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/dayplan/internal/config"
	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

type failingWeightRepo struct {
	repository.WeightRepo
	err error
}

func (f failingWeightRepo) Get(context.Context, string) (*domain.UserWeights, error) {
	return nil, f.err
}

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.DBPath = ":memory:"
	cfg.SolveTimeoutMs = 5000
	cfg.MaxConcurrentSolves = 2
	return cfg
}

type scheduleFixture struct {
	db       *sql.DB
	uow      db.UnitOfWork
	weights  *repository.SQLiteWeightRepo
	svc      *ScheduleService
	observer *recordingObserver
}

func newScheduleFixture(t *testing.T, mutate ...func(*config.Config)) *scheduleFixture {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	weights := repository.NewSQLiteWeightRepo(database)
	obs := &recordingObserver{}

	svc, err := NewScheduleService(weights, uow, cfg, obs)
	require.NoError(t, err)
	svc.now = func() time.Time { return testutil.RefDate.Add(7 * time.Hour) }

	return &scheduleFixture{db: database, uow: uow, weights: weights, svc: svc, observer: obs}
}

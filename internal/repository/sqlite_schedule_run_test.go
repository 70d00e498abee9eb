package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleRunRepo_CreateThenGet(t *testing.T) {
	repo := NewSQLiteScheduleRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	run := testutil.NewTestRun("u-1", time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC))
	run.Status = domain.StatusPartial
	run.Message = "one missing"

	require.NoError(t, repo.Create(ctx, run))

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.UserID, got.UserID)
	assert.True(t, run.ReferenceDate.Equal(got.ReferenceDate))
	assert.Equal(t, run.WorkWindow, got.WorkWindow)
	assert.Equal(t, run.Weights, got.Weights)
	assert.Equal(t, domain.StatusPartial, got.Status)
	assert.Equal(t, domain.SolverOptimal, got.SolverStatus)
	assert.Equal(t, "one missing", got.Message)
	assert.Equal(t, 1234.5, got.Objective)
	assert.Equal(t, int64(17), got.Nodes)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.ScheduledTasks, 1)
	st := got.ScheduledTasks[0]
	assert.Equal(t, "t1", st.ID)
	assert.Equal(t, domain.PriorityHigh, st.Priority)
	assert.True(t, st.Mandatory)
	assert.True(t, run.ScheduledTasks[0].Start.Equal(st.Start))
	assert.Equal(t, 60, st.DurationMinutes)
}

func TestScheduleRunRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteScheduleRunRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScheduleRunRepo_ErrorRunHasNoTasks(t *testing.T) {
	repo := NewSQLiteScheduleRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	run := testutil.NewTestRun("u", time.Now().UTC())
	run.Status = domain.StatusError
	run.SolverStatus = domain.SolverInfeasible
	run.ScheduledTasks = nil

	require.NoError(t, repo.Create(ctx, run))

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.ScheduledTasks)
	assert.Empty(t, got.ScheduledTasks)
}

func TestScheduleRunRepo_ListRecent(t *testing.T) {
	repo := NewSQLiteScheduleRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, testutil.NewTestRun("alice", base.Add(time.Duration(i)*time.Minute))))
	}
	require.NoError(t, repo.Create(ctx, testutil.NewTestRun("bob", base.Add(time.Hour))))

	alice, err := repo.ListRecent(ctx, "alice", 3)
	require.NoError(t, err)
	require.Len(t, alice, 3)
	assert.True(t, alice[0].CreatedAt.After(alice[1].CreatedAt), "newest first")
	assert.Nil(t, alice[0].ScheduledTasks, "list omits task rows")

	everyone, err := repo.ListRecent(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, everyone, 6)
	assert.Equal(t, "bob", everyone[0].UserID)
}

func TestScheduleRunRepo_CreateIsAtomicInsideTx(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	boom := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: boom}
	run := testutil.NewTestRun("u", time.Now().UTC())

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteScheduleRunRepo(tx).Create(ctx, run)
	})
	require.ErrorIs(t, err, boom)

	_, err = NewSQLiteScheduleRunRepo(database).GetByID(ctx, run.ID)
	assert.ErrorIs(t, err, ErrNotFound, "run row rolled back with its task rows")
}

func TestScheduleRunRepo_ConcurrentCreates(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			run := testutil.NewTestRun(fmt.Sprintf("user-%d", i%2), time.Now().UTC())
			errs <- uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				return NewSQLiteScheduleRunRepo(tx).Create(ctx, run)
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	all, err := NewSQLiteScheduleRunRepo(database).ListRecent(ctx, "", 100)
	require.NoError(t, err)
	assert.Len(t, all, 8)
}

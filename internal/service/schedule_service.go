package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/config"
	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/scheduler"
	"github.com/alexanderramin/dayplan/internal/timemodel"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ScheduleService validates requests, resolves the user's weight vector,
// runs the solver under admission control and records every run.
type ScheduleService struct {
	weights  repository.WeightRepo
	uow      db.UnitOfWork
	validate *validator.Validate
	observer UseCaseObserver

	pool     *semaphore.Weighted
	poolSize int
	closed   atomic.Bool

	timeLimit     time.Duration
	defaultWindow domain.WorkWindow

	now   func() time.Time
	newID func() string
}

var _ app.ScheduleUseCase = (*ScheduleService)(nil)

func NewScheduleService(
	weights repository.WeightRepo,
	uow db.UnitOfWork,
	cfg config.Config,
	observers ...UseCaseObserver,
) (*ScheduleService, error) {
	window, err := cfg.DefaultWindow()
	if err != nil {
		return nil, fmt.Errorf("fallback work window: %w", err)
	}
	size := cfg.MaxConcurrentSolves
	if size <= 0 {
		size = 1
	}
	return &ScheduleService{
		weights:       weights,
		uow:           uow,
		validate:      newRequestValidator(),
		observer:      useCaseObserverOrNoop(observers),
		pool:          semaphore.NewWeighted(int64(size)),
		poolSize:      size,
		timeLimit:     cfg.SolveTimeout(),
		defaultWindow: window,
		now:           time.Now,
		newID:         uuid.NewString,
	}, nil
}

func newRequestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := timemodel.ParseClock(fl.Field().String())
		return err == nil
	})
	return v
}

// Close stops admitting new solves. Solves already running finish normally.
func (s *ScheduleService) Close() {
	s.closed.Store(true)
}

func (s *ScheduleService) Schedule(ctx context.Context, req app.ScheduleRequest) (resp *app.ScheduleResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"user":  req.UserID,
		"tasks": len(req.Tasks),
	}
	degraded := false
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "schedule",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Degraded:  degraded,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = s.validate.StructCtx(ctx, req); err != nil {
		return nil, invalidRequest(err)
	}
	in, err := s.buildInput(req)
	if err != nil {
		return nil, invalidRequest(err)
	}

	weights, err := s.resolveWeights(ctx, req.UserID)
	if err != nil {
		return nil, &app.ScheduleError{Code: app.ScheduleErrWeightsUnavailable, Message: err.Error(), Err: err}
	}
	if req.Constraints.MaxContinuousWorkMin != nil {
		weights.MaxContinuousWorkMinutes = *req.Constraints.MaxContinuousWorkMin
	}
	in.Weights = weights

	if err = s.acquire(ctx); err != nil {
		return nil, err
	}
	result, err := scheduler.Schedule(ctx, in, scheduler.Options{TimeLimit: s.timeLimit, Now: s.now})
	s.pool.Release(1)
	if err != nil {
		return nil, invalidRequest(err)
	}
	degraded = resultFields(fields, result)
	if ctx.Err() != nil {
		fields["cancelled"] = true
	}

	run := &domain.ScheduleRun{
		ID:             s.newID(),
		UserID:         req.UserID,
		ReferenceDate:  result.ReferenceDate,
		WorkWindow:     in.Window,
		Weights:        weights,
		Status:         result.Status,
		SolverStatus:   result.Stats.SolverStatus,
		Message:        result.Message,
		ScheduledTasks: result.ScheduledTasks,
		Objective:      result.Stats.Objective,
		Nodes:          result.Stats.Nodes,
		ElapsedMs:      result.Stats.Elapsed.Milliseconds(),
		CreatedAt:      s.now().UTC(),
	}
	// A caller that gave up mid-solve still gets the best schedule found,
	// and the run is recorded regardless.
	err = s.uow.WithinTx(context.WithoutCancel(ctx), func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteScheduleRunRepo(tx).Create(ctx, run)
	})
	if err != nil {
		return nil, &app.ScheduleError{Code: app.ScheduleErrInternal, Message: "recording schedule run", Err: err}
	}
	fields["run_id"] = run.ID

	return &app.ScheduleResponse{
		RunID:   run.ID,
		UserID:  req.UserID,
		Window:  in.Window,
		Weights: weights,
		Result:  result,
	}, nil
}

// ScheduleBatch solves every request concurrently. Items come back sorted
// by source name; a failing request does not stop the others.
func (s *ScheduleService) ScheduleBatch(ctx context.Context, reqs map[string]app.ScheduleRequest) []app.BatchItem {
	sources := slices.Sorted(maps.Keys(reqs))
	items := make([]app.BatchItem, len(sources))

	var g errgroup.Group
	g.SetLimit(s.poolSize)
	for i, src := range sources {
		g.Go(func() error {
			resp, err := s.Schedule(ctx, reqs[src])
			items[i] = app.BatchItem{Source: src, Response: resp, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return items
}

func (s *ScheduleService) acquire(ctx context.Context) error {
	if s.closed.Load() {
		return &app.ScheduleError{Code: app.ScheduleErrPoolClosed, Message: "scheduler is shutting down"}
	}
	if err := s.pool.Acquire(ctx, 1); err != nil {
		return &app.ScheduleError{Code: app.ScheduleErrPoolClosed, Message: "waiting for a solver slot", Err: err}
	}
	return nil
}

// resolveWeights falls back to the defaults for users the learner has not
// produced a vector for yet.
func (s *ScheduleService) resolveWeights(ctx context.Context, userID string) (domain.WeightConfig, error) {
	stored, err := s.weights.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultWeightConfig(), nil
	}
	if err != nil {
		return domain.WeightConfig{}, fmt.Errorf("loading weights for %s: %w", userID, err)
	}
	return stored.Weights, nil
}

func (s *ScheduleService) buildInput(req app.ScheduleRequest) (scheduler.Input, error) {
	var in scheduler.Input

	window, err := s.resolveWindow(req.Constraints.WorkHours)
	if err != nil {
		return in, err
	}
	in.Window = window

	if req.TargetDate != nil {
		ref, err := timemodel.ParseTimestamp(*req.TargetDate)
		if err != nil {
			return in, relabel(err, "target_date")
		}
		in.ReferenceDate = &ref
	}

	in.Tasks = make([]domain.Task, 0, len(req.Tasks))
	for i, tp := range req.Tasks {
		priority := domain.Priority(tp.Priority)
		if priority == "" {
			priority = domain.PriorityMedium
		}
		var due *time.Time
		if tp.Due != nil && *tp.Due != "" {
			d, err := timemodel.ParseDue(*tp.Due)
			if err != nil {
				return in, relabel(err, fmt.Sprintf("tasks[%d].due", i))
			}
			due = &d
		}
		task, err := domain.NewTask(string(tp.ID), tp.Title, priority, tp.EstimatedDuration, due)
		if err != nil {
			return in, err
		}
		in.Tasks = append(in.Tasks, task)
	}

	in.Events = make([]domain.CalendarEvent, 0, len(req.CalendarEvents))
	for i, ep := range req.CalendarEvents {
		start, err := timemodel.ParseTimestamp(ep.Start)
		if err != nil {
			return in, relabel(err, fmt.Sprintf("calendar_events[%d].start", i))
		}
		end, err := timemodel.ParseTimestamp(ep.End)
		if err != nil {
			return in, relabel(err, fmt.Sprintf("calendar_events[%d].end", i))
		}
		in.Events = append(in.Events, domain.CalendarEvent{ID: string(ep.ID), Title: ep.Title, Start: start, End: end})
	}
	return in, nil
}

func (s *ScheduleService) resolveWindow(wh app.WorkHoursPayload) (domain.WorkWindow, error) {
	switch {
	case wh.Start == "" && wh.End == "":
		return s.defaultWindow, nil
	case wh.Start == "" || wh.End == "":
		return domain.WorkWindow{}, domain.NewValidationError("constraints.work_hours", "start and end must be given together")
	}
	return timemodel.ParseWindow(wh.Start, wh.End)
}

func relabel(err error, field string) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return &domain.ValidationError{Field: field, Message: ve.Message}
	}
	return err
}

// invalidRequest maps validator and domain validation failures onto
// INVALID_REQUEST. The wrapped error always matches domain.ErrValidation.
func invalidRequest(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, describeFieldError(fe))
		}
		first := fieldErrs[0]
		return &app.ScheduleError{
			Code:    app.ScheduleErrInvalidRequest,
			Message: strings.Join(msgs, "; "),
			Err:     domain.NewValidationError(fieldPath(first), "%s", describeFieldError(first)),
		}
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return &app.ScheduleError{Code: app.ScheduleErrInvalidRequest, Message: ve.Error(), Err: ve}
	}
	return &app.ScheduleError{Code: app.ScheduleErrInternal, Message: err.Error(), Err: err}
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describeFieldError(fe validator.FieldError) string {
	path := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return path + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", path, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", path, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", path, fe.Param())
	case "clock":
		return path + " must be HH:MM"
	}
	return fmt.Sprintf("%s failed %s", path, fe.Tag())
}

package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/google/uuid"
)

var taskCounter atomic.Int64

// RefDate is the fixed day most fixtures schedule against.
var RefDate = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

// At formats hh:mm on RefDate plus dayOffset days in the wire layout.
func At(dayOffset, hour, minute int) string {
	return RefDate.AddDate(0, 0, dayOffset).
		Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute).
		Format("2006-01-02T15:04:05")
}

// Request options
type RequestOption func(*app.ScheduleRequest)

func WithUser(userID string) RequestOption {
	return func(r *app.ScheduleRequest) { r.UserID = userID }
}

func WithWorkHours(start, end string) RequestOption {
	return func(r *app.ScheduleRequest) {
		r.Constraints.WorkHours = app.WorkHoursPayload{Start: start, End: end}
	}
}

func WithTask(t app.TaskPayload) RequestOption {
	return func(r *app.ScheduleRequest) { r.Tasks = append(r.Tasks, t) }
}

func WithEvent(id, start, end string) RequestOption {
	return func(r *app.ScheduleRequest) {
		r.CalendarEvents = append(r.CalendarEvents, app.EventPayload{
			ID: app.FlexibleID(id), Title: "Event " + id, Start: start, End: end,
		})
	}
}

func WithMaxContinuous(min int) RequestOption {
	return func(r *app.ScheduleRequest) { r.Constraints.MaxContinuousWorkMin = &min }
}

func WithTargetDate(date string) RequestOption {
	return func(r *app.ScheduleRequest) { r.TargetDate = &date }
}

// NewScheduleRequest builds a 09:00-17:00 request for RefDate.
func NewScheduleRequest(opts ...RequestOption) app.ScheduleRequest {
	target := RefDate.Format(time.DateOnly)
	r := app.ScheduleRequest{
		UserID:      "user-" + uuid.NewString()[:8],
		Constraints: app.ConstraintsPayload{WorkHours: app.WorkHoursPayload{Start: "09:00", End: "17:00"}},
		TargetDate:  &target,
	}
	for _, o := range opts {
		o(&r)
	}
	return r
}

// Task options
type TaskOption func(*app.TaskPayload)

func WithPriority(p domain.Priority) TaskOption {
	return func(t *app.TaskPayload) { t.Priority = string(p) }
}

func WithDue(due string) TaskOption {
	return func(t *app.TaskPayload) { t.Due = &due }
}

func WithID(id string) TaskOption {
	return func(t *app.TaskPayload) { t.ID = app.FlexibleID(id) }
}

// NewTestTask builds a Medium-priority task with a unique id.
func NewTestTask(title string, durationMin int, opts ...TaskOption) app.TaskPayload {
	t := app.TaskPayload{
		ID:                app.FlexibleID(fmt.Sprintf("task-%d", taskCounter.Add(1))),
		Title:             title,
		Priority:          string(domain.PriorityMedium),
		EstimatedDuration: durationMin,
	}
	for _, o := range opts {
		o(&t)
	}
	return t
}

// NewTestRun builds a stored-run fixture with one scheduled task.
func NewTestRun(userID string, createdAt time.Time) *domain.ScheduleRun {
	start := RefDate.Add(9 * time.Hour)
	return &domain.ScheduleRun{
		ID:            uuid.NewString(),
		UserID:        userID,
		ReferenceDate: RefDate,
		WorkWindow:    domain.WorkWindow{StartMinute: 540, EndMinute: 1020},
		Weights:       domain.DefaultWeightConfig(),
		Status:        domain.StatusSuccess,
		SolverStatus:  domain.SolverOptimal,
		ScheduledTasks: []domain.ScheduledTask{{
			ID: "t1", Title: "Write", Priority: domain.PriorityHigh,
			Start: start, End: start.Add(time.Hour), DurationMinutes: 60, Mandatory: true,
		}},
		Objective: 1234.5,
		Nodes:     17,
		ElapsedMs: 3,
		CreatedAt: createdAt,
	}
}

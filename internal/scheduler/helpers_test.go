package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(hour, minute int) time.Time {
	return refDate.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func clockPtr(hour, minute int) *time.Time {
	t := clock(hour, minute)
	return &t
}

func workHours(startHour, endHour int) domain.WorkWindow {
	return domain.WorkWindow{StartMinute: startHour * 60, EndMinute: endHour * 60}
}

func mkTask(id string, p domain.Priority, dur int, due *time.Time) domain.Task {
	return domain.Task{ID: id, Title: "Task " + id, Priority: p, DurationMinutes: dur, Due: due}
}

func mkEvent(id string, start, end time.Time) domain.CalendarEvent {
	return domain.CalendarEvent{ID: id, Title: "Event " + id, Start: start, End: end}
}

func newInput(w domain.WorkWindow, tasks []domain.Task, events []domain.CalendarEvent) Input {
	ref := refDate
	return Input{
		Tasks:         tasks,
		Events:        events,
		Window:        w,
		Weights:       domain.DefaultWeightConfig(),
		ReferenceDate: &ref,
	}
}

func mustModel(t *testing.T, in Input) *Model {
	t.Helper()
	m, err := BuildModel(in, refDate)
	require.NoError(t, err)
	return m
}

// runSchedule solves in and asserts the result honours every invariant.
func runSchedule(t *testing.T, in Input) domain.ScheduleResult {
	t.Helper()
	res, err := Schedule(context.Background(), in, Options{
		TimeLimit: 5 * time.Second,
		Now:       func() time.Time { return refDate },
	})
	require.NoError(t, err)
	assert.Empty(t, Verify(res, in))
	return res
}

package domain

import "time"

// Task is a candidate piece of work to place on the day.
type Task struct {
	ID              string
	Title           string
	Priority        Priority
	DurationMinutes int
	Due             *time.Time
}

// NewTask builds a Task and rejects empty ids, unknown priorities and
// non-positive durations.
func NewTask(id, title string, priority Priority, durationMin int, due *time.Time) (Task, error) {
	t := Task{
		ID:              id,
		Title:           title,
		Priority:        priority,
		DurationMinutes: durationMin,
		Due:             due,
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (t Task) Validate() error {
	if t.ID == "" {
		return NewValidationError("task.id", "task id is required")
	}
	if !ValidPriorities[string(t.Priority)] {
		return NewValidationError("task.priority", "task %s: priority %q must be High, Medium or Low", t.ID, t.Priority)
	}
	if t.DurationMinutes <= 0 {
		return NewValidationError("task.estimated_duration", "task %s: duration must be positive, got %d", t.ID, t.DurationMinutes)
	}
	if t.DurationMinutes > MinutesPerDay {
		return NewValidationError("task.estimated_duration", "task %s: duration %d exceeds one day", t.ID, t.DurationMinutes)
	}
	return nil
}

// CalendarEvent is already-committed, non-negotiable time.
type CalendarEvent struct {
	ID    string
	Title string
	Start time.Time
	End   time.Time
}

func (e CalendarEvent) Validate() error {
	if e.ID == "" {
		return NewValidationError("event.id", "event id is required")
	}
	if e.End.Before(e.Start) {
		return NewValidationError("event.end", "event %s: end %s is before start %s",
			e.ID, e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
	}
	return nil
}

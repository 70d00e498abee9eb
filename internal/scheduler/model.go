package scheduler

import (
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/timemodel"
)

// Input is one scheduling request as seen by the core.
type Input struct {
	Tasks   []domain.Task
	Events  []domain.CalendarEvent
	Window  domain.WorkWindow
	Weights domain.WeightConfig
	// ReferenceDate pins the day being scheduled. When nil it is resolved
	// from the earliest due date, then from the clock.
	ReferenceDate *time.Time
}

// TaskHandle is a stable index into Model.Decisions.
type TaskHandle int

// TaskDecision holds the presence-gated decision variables for one task.
// Lower and Upper bound start and end only when Present is true.
type TaskDecision struct {
	Handle         TaskHandle
	Task           domain.Task
	Duration       int
	PriorityWeight int
	DaysToDue      int
	Mandatory      bool
	Score          int
	Penalty        int
	Lower          int
	Upper          int

	Present bool
	Start   int
	End     int
}

// FixedInterval is a non-movable occupied range in minutes from reference
// midnight: a clipped calendar event or an out-of-hours blackout.
type FixedInterval struct {
	Kind  domain.IntervalKind
	ID    string
	Start int
	End   int
}

func (f FixedInterval) overlaps(o FixedInterval) bool {
	return f.Start < o.End && o.Start < f.End
}

type Model struct {
	Reference    time.Time
	Window       domain.WorkWindow
	Weights      domain.WeightConfig
	Decisions    []TaskDecision
	Fixed        []FixedInterval
	EventMinutes int

	index map[string]TaskHandle
}

// BuildModel validates the request and lays out one decision per task plus
// the fixed intervals. ref must already be resolved.
func BuildModel(in Input, ref time.Time) (*Model, error) {
	if err := in.Window.Validate(); err != nil {
		return nil, err
	}
	if err := in.Weights.Validate(); err != nil {
		return nil, err
	}

	m := &Model{
		Reference: timemodel.Midnight(ref),
		Window:    in.Window,
		Weights:   in.Weights,
		Decisions: make([]TaskDecision, 0, len(in.Tasks)),
		index:     make(map[string]TaskHandle, len(in.Tasks)),
	}

	for _, task := range in.Tasks {
		if err := task.Validate(); err != nil {
			return nil, err
		}
		if _, dup := m.index[task.ID]; dup {
			return nil, domain.NewValidationError("task.id", "duplicate task id %q", task.ID)
		}
		c := Classify(task, m.Reference)
		h := TaskHandle(len(m.Decisions))
		m.Decisions = append(m.Decisions, TaskDecision{
			Handle:         h,
			Task:           task,
			Duration:       task.DurationMinutes,
			PriorityWeight: c.PriorityWeight,
			DaysToDue:      c.DaysToDue,
			Mandatory:      c.Mandatory,
			Score:          c.Desirability,
			Penalty:        c.OmissionPenalty,
			Lower:          in.Window.StartMinute,
			Upper:          DeadlineMinute(task.Due, m.Reference, in.Window),
		})
		m.index[task.ID] = h
	}

	for _, ev := range in.Events {
		if err := ev.Validate(); err != nil {
			return nil, err
		}
		start := timemodel.OffsetFromReference(m.Reference, ev.Start)
		end := timemodel.OffsetFromReference(m.Reference, ev.End)
		if end <= in.Window.StartMinute || start >= in.Window.EndMinute {
			continue
		}
		start = max(start, in.Window.StartMinute)
		end = min(end, in.Window.EndMinute)
		if end <= start {
			continue
		}
		m.Fixed = append(m.Fixed, FixedInterval{Kind: domain.IntervalEvent, ID: ev.ID, Start: start, End: end})
		m.EventMinutes += end - start
	}

	if in.Window.StartMinute > 0 {
		m.Fixed = append(m.Fixed, FixedInterval{Kind: domain.IntervalBlackout, ID: "before-work", Start: 0, End: in.Window.StartMinute})
	}
	if in.Window.EndMinute < timemodel.Horizon {
		m.Fixed = append(m.Fixed, FixedInterval{Kind: domain.IntervalBlackout, ID: "after-work", Start: in.Window.EndMinute, End: timemodel.Horizon})
	}

	return m, nil
}

// Decision returns the arena slot for h.
func (m *Model) Decision(h TaskHandle) *TaskDecision {
	return &m.Decisions[h]
}

// Lookup resolves a task id to its handle.
func (m *Model) Lookup(id string) (TaskHandle, bool) {
	h, ok := m.index[id]
	return h, ok
}

// AvailableMinutes is the work window minus clipped event time.
func (m *Model) AvailableMinutes() int {
	return m.Window.Length() - m.EventMinutes
}

// ResetAssignment marks every task absent.
func (m *Model) ResetAssignment() {
	for i := range m.Decisions {
		d := &m.Decisions[i]
		d.Present, d.Start, d.End = false, 0, 0
	}
}

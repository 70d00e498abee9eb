package scheduler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/timemodel"
)

// Decode turns a solved formulation into a ScheduleResult. The
// mandatory-versus-scheduled check runs on every decodable solution.
func Decode(f *Formulation, obj Objective, sol Solution) domain.ScheduleResult {
	m := f.Model
	result := domain.ScheduleResult{
		ReferenceDate: m.Reference,
		Stats: domain.SolveStats{
			SolverStatus: sol.Status,
			Objective:    sol.Objective,
			Nodes:        sol.Nodes,
			Elapsed:      sol.Elapsed,
			TimedOut:     sol.TimedOut,
		},
	}

	if !sol.Status.HasSolution() {
		diag := Diagnose(m)
		result.Status = domain.StatusError
		result.Diagnostics = &diag
		result.Message = noSolutionMessage(f, sol.Status)
		return result
	}

	result.Stats.Breakdown = obj.Evaluate(m)
	result.ScheduledTasks = make([]domain.ScheduledTask, 0, len(m.Decisions))
	var missing []string
	for i := range m.Decisions {
		d := &m.Decisions[i]
		if !d.Present {
			if d.Mandatory {
				missing = append(missing, d.Task.ID)
			}
			continue
		}
		result.ScheduledTasks = append(result.ScheduledTasks, domain.ScheduledTask{
			ID:              d.Task.ID,
			Title:           d.Task.Title,
			Priority:        d.Task.Priority,
			Start:           timemodel.MinutesToTimestamp(m.Reference, d.Start),
			End:             timemodel.MinutesToTimestamp(m.Reference, d.End),
			DurationMinutes: d.Duration,
			Mandatory:       d.Mandatory,
		})
	}
	sort.SliceStable(result.ScheduledTasks, func(i, j int) bool {
		return result.ScheduledTasks[i].Start.Before(result.ScheduledTasks[j].Start)
	})

	if len(missing) > 0 {
		result.Status = domain.StatusPartial
		result.Message = fmt.Sprintf("Could not schedule all mandatory tasks due to time constraints: %d unscheduled (%s)",
			len(missing), strings.Join(missing, ", "))
		return result
	}
	result.Status = domain.StatusSuccess
	return result
}

func noSolutionMessage(f *Formulation, status domain.SolverStatus) string {
	msg := fmt.Sprintf("No feasible solution found. Solver status: %s", status)
	if a, b, ok := f.Conflict(); ok {
		msg += fmt.Sprintf("; %s %q [%s-%s] overlaps %s %q [%s-%s]",
			a.Kind, a.ID, timemodel.FormatClock(a.Start), timemodel.FormatClock(a.End),
			b.Kind, b.ID, timemodel.FormatClock(b.Start), timemodel.FormatClock(b.End))
	}
	return msg
}

// Diagnose aggregates demand against capacity for triage of a failed solve.
func Diagnose(m *Model) domain.Diagnostics {
	diag := domain.Diagnostics{
		TotalTasks:           len(m.Decisions),
		AvailableMinutes:     m.AvailableMinutes(),
		CalendarEventMinutes: m.EventMinutes,
	}
	for i := range m.Decisions {
		d := &m.Decisions[i]
		diag.TotalTaskMinutes += d.Duration
		if d.Mandatory {
			diag.MandatoryTasks++
			diag.MandatoryTaskMinutes += d.Duration
		}
	}
	return diag
}

package scheduler

import (
	"fmt"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/timemodel"
)

// Violation is one broken schedule invariant.
type Violation struct {
	TaskID  string
	Message string
}

func (v Violation) String() string {
	return v.TaskID + ": " + v.Message
}

// Verify re-checks a produced schedule against the request it answers:
// window containment, due dates, no overlap between tasks and against
// every calendar event clipped to the window, and the status contract.
func Verify(result domain.ScheduleResult, in Input) []Violation {
	var out []Violation
	ref := result.ReferenceDate
	w := in.Window

	type expectation struct {
		mandatory bool
		deadline  int
	}
	expected := make(map[string]expectation, len(in.Tasks))
	mandatory := 0
	for _, t := range in.Tasks {
		c := Classify(t, ref)
		if c.Mandatory {
			mandatory++
		}
		expected[t.ID] = expectation{mandatory: c.Mandatory, deadline: DeadlineMinute(t.Due, ref, w)}
	}

	type span struct {
		id         string
		start, end int
	}
	spans := make([]span, 0, len(result.ScheduledTasks))
	mandatoryPlaced := 0
	for _, st := range result.ScheduledTasks {
		start := timemodel.OffsetFromReference(ref, st.Start)
		end := timemodel.OffsetFromReference(ref, st.End)
		if start < w.StartMinute || end > w.EndMinute {
			out = append(out, Violation{st.ID, fmt.Sprintf("[%d,%d) outside work window %s", start, end, w)})
		}
		if end-start != st.DurationMinutes {
			out = append(out, Violation{st.ID, fmt.Sprintf("span %d differs from duration %d", end-start, st.DurationMinutes)})
		}
		if e, ok := expected[st.ID]; !ok {
			out = append(out, Violation{st.ID, "not in request"})
		} else {
			if end > e.deadline {
				out = append(out, Violation{st.ID, fmt.Sprintf("ends at %s after deadline %s", timemodel.FormatClock(end), timemodel.FormatClock(e.deadline))})
			}
			if e.mandatory {
				mandatoryPlaced++
			}
		}
		spans = append(spans, span{st.ID, start, end})
	}

	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			if spans[i].start < spans[j].end && spans[j].start < spans[i].end {
				out = append(out, Violation{spans[i].id, "overlaps task " + spans[j].id})
			}
		}
		for _, ev := range in.Events {
			es := max(timemodel.OffsetFromReference(ref, ev.Start), w.StartMinute)
			ee := min(timemodel.OffsetFromReference(ref, ev.End), w.EndMinute)
			if es < ee && spans[i].start < ee && es < spans[i].end {
				out = append(out, Violation{spans[i].id, "overlaps event " + ev.ID})
			}
		}
	}

	switch result.Status {
	case domain.StatusSuccess:
		if mandatoryPlaced != mandatory {
			out = append(out, Violation{"", fmt.Sprintf("success with %d of %d mandatory tasks", mandatoryPlaced, mandatory)})
		}
	case domain.StatusPartial:
		if mandatoryPlaced == mandatory {
			out = append(out, Violation{"", "partial with every mandatory task placed"})
		}
	}
	return out
}

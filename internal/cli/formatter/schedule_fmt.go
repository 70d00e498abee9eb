package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/domain"
)

const timelineWidth = 48

// FormatSchedule renders one scheduling response. With explain set it
// appends the objective breakdown and the weight vector the run used.
func FormatSchedule(resp *app.ScheduleResponse, explain bool) string {
	res := resp.Result
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		StatusIndicator(res.Status),
		Bold(res.ReferenceDate.Format("Mon Jan 2, 2006")),
		Dim(resp.Window.String()+" · "+resp.UserID),
	))

	if res.Status != domain.StatusError {
		b.WriteString("\n")
		b.WriteString(RenderTimeline(resp.Window, res.ReferenceDate, res.ScheduledTasks, timelineWidth))
		b.WriteString("\n\n")
		b.WriteString(formatScheduledTasks(res.ScheduledTasks))
		b.WriteString(RenderShare(res.ScheduledMinutes(), resp.Window.Length(), 20) + "\n")
	}

	if res.Message != "" {
		style := StyleYellow
		if res.Status == domain.StatusError {
			style = StyleRed
		}
		b.WriteString("\n" + style.Render(res.Message) + "\n")
	}
	if res.Diagnostics != nil {
		b.WriteString("\n" + Header("Diagnostics") + "\n")
		b.WriteString(FormatDiagnostics(*res.Diagnostics))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s  %s  %s\n",
		Dim("solver"),
		SolverBadge(res.Stats.SolverStatus, res.Stats.TimedOut),
		Dim(fmt.Sprintf("%d nodes", res.Stats.Nodes)),
		Dim(res.Stats.Elapsed.Round(time.Millisecond).String()),
	))

	if explain {
		b.WriteString("\n" + Header("Objective") + "\n")
		b.WriteString(FormatBreakdown(res.Stats.Breakdown))
		b.WriteString("\n" + Header("Weights") + "\n")
		b.WriteString(FormatWeightConfig(resp.Weights))
	}

	title := "Schedule"
	if resp.RunID != "" {
		title += " " + resp.RunID[:min(8, len(resp.RunID))]
	}
	return RenderBox(title, b.String())
}

func formatScheduledTasks(tasks []domain.ScheduledTask) string {
	if len(tasks) == 0 {
		return Dim("Nothing scheduled.") + "\n"
	}
	headers := []string{"TIME", "TASK", "PRIORITY", "DURATION", ""}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		mark := ""
		if t.Mandatory {
			mark = StyleRed.Render("must")
		}
		title := t.Title
		if title == "" {
			title = t.ID
		}
		rows = append(rows, []string{
			ClockRange(t.Start, t.End),
			Bold(title),
			PriorityBadge(t.Priority),
			FormatMinutes(t.DurationMinutes),
			mark,
		})
	}
	return RenderTable(headers, rows)
}

// FormatDiagnostics lists the demand and capacity figures of a failed run.
func FormatDiagnostics(d domain.Diagnostics) string {
	return RenderKV([][2]string{
		{"tasks", fmt.Sprintf("%d (%d mandatory)", d.TotalTasks, d.MandatoryTasks)},
		{"task time", fmt.Sprintf("%s (%s mandatory)", FormatMinutes(d.TotalTaskMinutes), FormatMinutes(d.MandatoryTaskMinutes))},
		{"available", FormatMinutes(d.AvailableMinutes)},
		{"events", FormatMinutes(d.CalendarEventMinutes)},
	})
}

// FormatBreakdown lists the six objective terms and their total.
func FormatBreakdown(o domain.ObjectiveBreakdown) string {
	return RenderKV([][2]string{
		{"break reward", FormatSigned(o.BreakReward)},
		{"mandatory penalty", FormatSigned(o.MandatoryPenalty)},
		{"optional reward", FormatSigned(o.OptionalReward)},
		{"early completion", FormatSigned(o.EarlyCompletion)},
		{"evening penalty", FormatSigned(o.EveningPenalty)},
		{"continuous penalty", FormatSigned(o.ContinuousPenalty)},
		{"total", Bold(FormatSigned(o.Total))},
	})
}

// FormatBatchError renders one failed request of a batch.
func FormatBatchError(source string, err error) string {
	return StyleRed.Render("✖ "+source) + "  " + err.Error() + "\n"
}

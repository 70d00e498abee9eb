package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
)

func FormatRunList(runs []*domain.ScheduleRun) string {
	if len(runs) == 0 {
		return Dim("No schedule runs recorded.") + "\n"
	}
	headers := []string{"ID", "USER", "DAY", "STATUS", "SOLVER", "CREATED"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			TruncID(r.ID),
			r.UserID,
			r.ReferenceDate.Format("2006-01-02"),
			StatusIndicator(r.Status),
			SolverBadge(r.SolverStatus, false),
			Dim(HumanTimestamp(r.CreatedAt)),
		})
	}
	return RenderBox("Runs", RenderTable(headers, rows))
}

// FormatRun renders a stored run with its scheduled tasks.
func FormatRun(r *domain.ScheduleRun) string {
	var b strings.Builder
	b.WriteString(RenderKV([][2]string{
		{"id", r.ID},
		{"user", r.UserID},
		{"day", r.ReferenceDate.Format("Mon Jan 2, 2006")},
		{"window", r.WorkWindow.String()},
		{"status", StatusIndicator(r.Status)},
		{"solver", fmt.Sprintf("%s  %s", SolverBadge(r.SolverStatus, false), Dim(fmt.Sprintf("objective %.1f · %d nodes · %dms", r.Objective, r.Nodes, r.ElapsedMs)))},
		{"created", r.CreatedAt.Format("2006-01-02 15:04:05")},
	}))
	if r.Message != "" {
		b.WriteString("\n" + StyleYellow.Render(r.Message) + "\n")
	}
	if r.Status != domain.StatusError {
		b.WriteString("\n")
		b.WriteString(RenderTimeline(r.WorkWindow, r.ReferenceDate, r.ScheduledTasks, timelineWidth))
		b.WriteString("\n\n")
		b.WriteString(formatScheduledTasks(r.ScheduledTasks))
	}
	b.WriteString("\n" + Header("Weights") + "\n")
	b.WriteString(FormatWeightConfig(r.Weights))
	return RenderBox("Run", b.String())
}

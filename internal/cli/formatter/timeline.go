package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/timemodel"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderTimeline draws the work window as a bar of width cells, labelled
// with its bounds. A cell is filled, in the task's priority color, when a
// scheduled task covers the cell's midpoint.
func RenderTimeline(window domain.WorkWindow, ref time.Time, tasks []domain.ScheduledTask, width int) string {
	if width < 2 {
		width = 2
	}
	span := float64(window.Length())

	type placed struct {
		start, end int
		priority   domain.Priority
	}
	spans := make([]placed, 0, len(tasks))
	for _, t := range tasks {
		spans = append(spans, placed{
			start:    timemodel.OffsetFromReference(ref, t.Start),
			end:      timemodel.OffsetFromReference(ref, t.End),
			priority: t.Priority,
		})
	}

	var bar strings.Builder
	for c := 0; c < width; c++ {
		mid := float64(window.StartMinute) + (float64(c)+0.5)*span/float64(width)
		cell := StyleDim.Render(emptyBlock)
		for _, p := range spans {
			if float64(p.start) <= mid && mid < float64(p.end) {
				cell = PriorityStyle(p.priority).Render(filledBlock)
				break
			}
		}
		bar.WriteString(cell)
	}

	return Dim(timemodel.FormatClock(window.StartMinute)) + " " + bar.String() + " " + Dim(timemodel.FormatClock(window.EndMinute))
}

// RenderShare renders a used/total bar like [████░░░░] 3h of 8h.
func RenderShare(used, total, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if total > 0 {
		pct = min(1, max(0, float64(used)/float64(total)))
	}
	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return "[" + StyleGreen.Render(bar) + "] " + FormatMinutes(used) + " of " + FormatMinutes(total)
}

package formatter

import (
	"os"
	"testing"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	DisableColor()
	os.Exit(m.Run())
}

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"just now", now.Add(-10 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-2 * time.Hour), "2h ago"},
		{"days", now.Add(-48 * time.Hour), "Mar 13, 2025 12:00"},
		{"future", now.Add(time.Hour), "Mar 15, 2025 13:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestampFrom(tt.input, now))
		})
	}
}

func TestPriorityBadge(t *testing.T) {
	assert.Contains(t, PriorityBadge(domain.PriorityHigh), "High")
	assert.Contains(t, PriorityBadge(domain.PriorityMedium), "Medium")
	assert.Contains(t, PriorityBadge(domain.PriorityLow), "Low")
}

func TestStatusIndicator(t *testing.T) {
	tests := []struct {
		status   domain.ScheduleStatus
		contains string
	}{
		{domain.StatusSuccess, "SUCCESS"},
		{domain.StatusPartial, "PARTIAL"},
		{domain.StatusError, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Contains(t, StatusIndicator(tt.status), tt.contains)
		})
	}
}

func TestSolverBadge(t *testing.T) {
	assert.Equal(t, "OPTIMAL", SolverBadge(domain.SolverOptimal, false))
	assert.Equal(t, "FEASIBLE (time limit)", SolverBadge(domain.SolverFeasible, true))
}

func TestTruncID(t *testing.T) {
	got := TruncID("a1b2c3d4-e5f6-7890-abcd-ef1234567890")
	assert.Contains(t, got, "a1b2c3d4")
	assert.NotContains(t, got, "e5f6")

	assert.Contains(t, TruncID("short"), "short")
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "0m"},
		{-5, "0m"},
		{45, "45m"},
		{60, "1h"},
		{150, "2h 30m"},
		{61, "1h 1m"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMinutes(tt.input))
		})
	}
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "0", FormatSigned(0))
	assert.Equal(t, "+12.5", FormatSigned(12.5))
	assert.Equal(t, "-300.0", FormatSigned(-300))
}

func TestClockRange(t *testing.T) {
	start := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "09:00-10:30", ClockRange(start, start.Add(90*time.Minute)))
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("Test", "content here")
	assert.Contains(t, result, "TEST")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")

	assert.Contains(t, RenderBox("", "just content"), "just content")
}

func TestRenderTable_Aligns(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{{"long cell", "x"}, {"s", "y"}})

	assert.Equal(t, "A          B\n─────────  ─\nlong cell  x\ns          y\n", out)
}

func TestRenderKV(t *testing.T) {
	out := RenderKV([][2]string{{"a", "1"}, {"longer", "2"}})

	assert.Equal(t, "a       1\nlonger  2\n", out)
}

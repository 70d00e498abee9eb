package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLogObserver_Levels(t *testing.T) {
	tests := []struct {
		name  string
		event UseCaseEvent
		want  string
	}{
		{"success", UseCaseEvent{Name: "schedule", Success: true}, "level=INFO"},
		{"degraded", UseCaseEvent{Name: "schedule", Success: true, Degraded: true}, "level=WARN"},
		{"failed", UseCaseEvent{Name: "schedule", Err: errors.New("boom")}, "level=ERROR"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogUseCaseObserver(&buf).ObserveUseCase(context.Background(), tc.event)
			assert.Contains(t, buf.String(), tc.want)
			assert.Contains(t, buf.String(), "use_case=schedule")
		})
	}
}

func TestLogObserver_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	NewLogUseCaseObserver(&buf).ObserveUseCase(context.Background(), UseCaseEvent{
		Name:   "schedule",
		Fields: map[string]any{"user": "u1", "nodes": 42, "status": "success"},
	})

	out := buf.String()
	nodes := bytes.Index([]byte(out), []byte("nodes=42"))
	status := bytes.Index([]byte(out), []byte("status=success"))
	user := bytes.Index([]byte(out), []byte("user=u1"))
	assert.True(t, nodes < status && status < user, out)
}

func TestNewLogUseCaseObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestResultFields(t *testing.T) {
	fields := map[string]any{}
	degraded := resultFields(fields, domain.ScheduleResult{
		Status:         domain.StatusSuccess,
		ScheduledTasks: make([]domain.ScheduledTask, 2),
		Stats:          domain.SolveStats{SolverStatus: domain.SolverOptimal, Nodes: 9},
	})

	assert.False(t, degraded)
	assert.Equal(t, "success", fields["status"])
	assert.Equal(t, "OPTIMAL", fields["solver_status"])
	assert.Equal(t, 2, fields["scheduled"])
	assert.Equal(t, int64(9), fields["nodes"])

	assert.True(t, resultFields(map[string]any{}, domain.ScheduleResult{Status: domain.StatusPartial}))
	assert.True(t, resultFields(map[string]any{}, domain.ScheduleResult{
		Status: domain.StatusSuccess,
		Stats:  domain.SolveStats{TimedOut: true},
	}))
}

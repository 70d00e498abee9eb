package app

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// FlexibleID accepts either a JSON string or a JSON number.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = FlexibleID(n.String())
	return nil
}

type TaskPayload struct {
	ID                FlexibleID `json:"id" validate:"required"`
	Title             string     `json:"title"`
	Priority          string     `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	EstimatedDuration int        `json:"estimated_duration" validate:"gt=0,lte=1440"`
	Due               *string    `json:"due,omitempty"`
}

type EventPayload struct {
	ID    FlexibleID `json:"id" validate:"required"`
	Title string     `json:"title"`
	Start string     `json:"start" validate:"required"`
	End   string     `json:"end" validate:"required"`
}

type WorkHoursPayload struct {
	Start string `json:"start" validate:"omitempty,clock"`
	End   string `json:"end" validate:"omitempty,clock"`
}

type ConstraintsPayload struct {
	WorkHours            WorkHoursPayload `json:"work_hours"`
	MaxContinuousWorkMin *int             `json:"max_continuous_work_min,omitempty" validate:"omitempty,gt=0"`
}

// ScheduleRequest is the wire shape of one scheduling request.
type ScheduleRequest struct {
	UserID           string             `json:"user_id" validate:"required"`
	Tasks            []TaskPayload      `json:"tasks" validate:"dive"`
	CalendarEvents   []EventPayload     `json:"calendar_events" validate:"dive"`
	Constraints      ConstraintsPayload `json:"constraints"`
	OptimizationGoal string             `json:"optimization_goal,omitempty"`
	TargetDate       *string            `json:"target_date,omitempty"`
}

// DecodeScheduleRequest reads one JSON request. Fields it does not know
// are ignored, so payloads written for other clients still decode.
func DecodeScheduleRequest(r io.Reader) (ScheduleRequest, error) {
	var req ScheduleRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return ScheduleRequest{}, &ScheduleError{Code: ScheduleErrInvalidRequest, Message: err.Error()}
	}
	return req, nil
}

// ScheduleResponse pairs a scheduling outcome with the run that recorded it.
type ScheduleResponse struct {
	RunID   string
	UserID  string
	Window  domain.WorkWindow
	Weights domain.WeightConfig
	Result  domain.ScheduleResult
}

type ScheduledTaskPayload struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Priority          string `json:"priority"`
	EstimatedDuration int    `json:"estimated_duration"`
	Start             string `json:"start"`
	End               string `json:"end"`
	Mandatory         bool   `json:"mandatory"`
}

type DiagnosticsPayload struct {
	TotalTasks           int `json:"total_tasks"`
	MandatoryTasks       int `json:"mandatory_tasks"`
	TotalTaskMinutes     int `json:"total_task_minutes"`
	MandatoryTaskMinutes int `json:"mandatory_task_minutes"`
	AvailableMinutes     int `json:"available_minutes"`
	CalendarEventMinutes int `json:"calendar_event_minutes"`
}

type SolverPayload struct {
	Status    string  `json:"status"`
	Objective float64 `json:"objective"`
	Nodes     int64   `json:"nodes"`
	ElapsedMs int64   `json:"elapsed_ms"`
	TimedOut  bool    `json:"timed_out"`
}

// ScheduleResponsePayload is the wire shape of a ScheduleResponse.
type ScheduleResponsePayload struct {
	RunID          string                 `json:"run_id,omitempty"`
	Status         string                 `json:"status"`
	ReferenceDate  string                 `json:"reference_date"`
	ScheduledTasks []ScheduledTaskPayload `json:"scheduled_tasks"`
	Message        string                 `json:"message,omitempty"`
	Diagnostics    *DiagnosticsPayload    `json:"diagnostics,omitempty"`
	Solver         SolverPayload          `json:"solver"`
}

const wireTimeLayout = "2006-01-02T15:04:05"

func (r *ScheduleResponse) Payload() ScheduleResponsePayload {
	res := r.Result
	p := ScheduleResponsePayload{
		RunID:          r.RunID,
		Status:         string(res.Status),
		ReferenceDate:  res.ReferenceDate.Format(time.DateOnly),
		ScheduledTasks: make([]ScheduledTaskPayload, 0, len(res.ScheduledTasks)),
		Message:        res.Message,
		Solver: SolverPayload{
			Status:    string(res.Stats.SolverStatus),
			Objective: res.Stats.Objective,
			Nodes:     res.Stats.Nodes,
			ElapsedMs: res.Stats.Elapsed.Milliseconds(),
			TimedOut:  res.Stats.TimedOut,
		},
	}
	for _, st := range res.ScheduledTasks {
		p.ScheduledTasks = append(p.ScheduledTasks, ScheduledTaskPayload{
			ID:                st.ID,
			Title:             st.Title,
			Priority:          string(st.Priority),
			EstimatedDuration: st.DurationMinutes,
			Start:             st.Start.Format(wireTimeLayout),
			End:               st.End.Format(wireTimeLayout),
			Mandatory:         st.Mandatory,
		})
	}
	if d := res.Diagnostics; d != nil {
		p.Diagnostics = &DiagnosticsPayload{
			TotalTasks:           d.TotalTasks,
			MandatoryTasks:       d.MandatoryTasks,
			TotalTaskMinutes:     d.TotalTaskMinutes,
			MandatoryTaskMinutes: d.MandatoryTaskMinutes,
			AvailableMinutes:     d.AvailableMinutes,
			CalendarEventMinutes: d.CalendarEventMinutes,
		}
	}
	return p
}

// BatchItem is the outcome of one request in a batch. Exactly one of
// Response and Err is set.
type BatchItem struct {
	Source   string
	Response *ScheduleResponse
	Err      error
}

type ScheduleErrorCode string

const (
	ScheduleErrInvalidRequest     ScheduleErrorCode = "INVALID_REQUEST"
	ScheduleErrWeightsUnavailable ScheduleErrorCode = "WEIGHTS_UNAVAILABLE"
	ScheduleErrPoolClosed         ScheduleErrorCode = "POOL_CLOSED"
	ScheduleErrInternal           ScheduleErrorCode = "INTERNAL_ERROR"
)

type ScheduleError struct {
	Code    ScheduleErrorCode
	Message string
	Err     error
}

func (e *ScheduleError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *ScheduleError) Unwrap() error {
	return e.Err
}

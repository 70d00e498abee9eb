package domain

import "time"

// ScheduledTask is one placed task in a produced schedule.
type ScheduledTask struct {
	ID              string
	Title           string
	Priority        Priority
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Mandatory       bool
}

// Diagnostics summarises the request when no schedule could be produced.
type Diagnostics struct {
	TotalTasks           int
	MandatoryTasks       int
	TotalTaskMinutes     int
	MandatoryTaskMinutes int
	AvailableMinutes     int
	CalendarEventMinutes int
}

// ObjectiveBreakdown splits the objective value into its six signed terms.
// Penalties are negative.
type ObjectiveBreakdown struct {
	BreakReward       float64
	MandatoryPenalty  float64
	OptionalReward    float64
	EarlyCompletion   float64
	EveningPenalty    float64
	ContinuousPenalty float64
	Total             float64
}

// SolveStats records how the search ended.
type SolveStats struct {
	SolverStatus SolverStatus
	Objective    float64
	Breakdown    ObjectiveBreakdown
	Nodes        int64
	Elapsed      time.Duration
	TimedOut     bool
}

// ScheduleResult is tagged by Status: success carries ScheduledTasks,
// partial carries ScheduledTasks and Message, error carries Message and
// Diagnostics.
type ScheduleResult struct {
	Status         ScheduleStatus
	ScheduledTasks []ScheduledTask
	Message        string
	Diagnostics    *Diagnostics
	ReferenceDate  time.Time
	Stats          SolveStats
}

// ScheduledMinutes sums the durations of all placed tasks.
func (r ScheduleResult) ScheduledMinutes() int {
	total := 0
	for _, t := range r.ScheduledTasks {
		total += t.DurationMinutes
	}
	return total
}

package domain

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Weight maps a priority to its ordinal weight (High=3, Medium=2, Low=1).
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"High": true, "Medium": true, "Low": true,
}

// ScheduleStatus tags a ScheduleResult.
type ScheduleStatus string

const (
	StatusSuccess ScheduleStatus = "success"
	StatusPartial ScheduleStatus = "partial"
	StatusError   ScheduleStatus = "error"
)

// SolverStatus is the outcome of one bounded search.
type SolverStatus string

const (
	SolverOptimal    SolverStatus = "OPTIMAL"
	SolverFeasible   SolverStatus = "FEASIBLE"
	SolverInfeasible SolverStatus = "INFEASIBLE"
	SolverUnknown    SolverStatus = "UNKNOWN"
)

// HasSolution reports whether the status carries a decodable assignment.
func (s SolverStatus) HasSolution() bool {
	return s == SolverOptimal || s == SolverFeasible
}

type IntervalKind string

const (
	IntervalTask     IntervalKind = "task"
	IntervalEvent    IntervalKind = "event"
	IntervalBlackout IntervalKind = "blackout"
)

package domain

import "time"

// ScheduleRun is the persisted record of one scheduling request and its
// outcome, kept as input for the feedback loop.
type ScheduleRun struct {
	ID             string
	UserID         string
	ReferenceDate  time.Time
	WorkWindow     WorkWindow
	Weights        WeightConfig
	Status         ScheduleStatus
	SolverStatus   SolverStatus
	Message        string
	ScheduledTasks []ScheduledTask
	Objective      float64
	Nodes          int64
	ElapsedMs      int64
	CreatedAt      time.Time
}

package scheduler

import (
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/timemodel"
)

const (
	// ScoreFloor is the minimum desirability of an optional task, so that
	// leaving it out is never objective-neutral.
	ScoreFloor = 100

	// ProximityHorizonDays is how many days ahead of its due date an
	// optional task starts earning the proximity bonus.
	ProximityHorizonDays = 5

	priorityScoreUnit  = 100
	proximityScoreUnit = 200
	omissionUnit       = 1000
)

// Classification is the per-task outcome of the classifier.
type Classification struct {
	PriorityWeight  int
	DaysToDue       int
	Mandatory       bool
	Desirability    int // optional tasks only
	OmissionPenalty int // mandatory tasks only, before objective scaling
}

// Classify decides whether a task must appear in an acceptable schedule.
// A task is mandatory when it is High priority or due on or before the
// reference date.
func Classify(task domain.Task, ref time.Time) Classification {
	c := Classification{
		PriorityWeight: task.Priority.Weight(),
		DaysToDue:      timemodel.FarFutureDays,
	}
	if task.Due != nil {
		c.DaysToDue = timemodel.DaysBetween(ref, *task.Due)
	}

	c.Mandatory = task.Priority == domain.PriorityHigh || c.DaysToDue <= 0
	if c.Mandatory {
		c.OmissionPenalty = OmissionPenaltyBase(c.PriorityWeight)
	} else {
		c.Desirability = DesirabilityScore(c.PriorityWeight, c.DaysToDue)
	}
	return c
}

// DesirabilityScore rewards priority and due-date proximity:
// p*100 + max(0, 5-days)*200, floored at 100.
func DesirabilityScore(priorityWeight, daysToDue int) int {
	proximity := ProximityHorizonDays - daysToDue
	if proximity < 0 {
		proximity = 0
	}
	score := priorityWeight*priorityScoreUnit + proximity*proximityScoreUnit
	if score < ScoreFloor {
		return ScoreFloor
	}
	return score
}

// OmissionPenaltyBase is the unscaled cost of leaving a mandatory task out.
func OmissionPenaltyBase(priorityWeight int) int {
	return priorityWeight * omissionUnit
}

// DeadlineMinute returns the latest allowed end minute for a task.
// A due time on the reference date is clamped into the work window (a due
// time before work start clamps up to work start). Later dates, overdue
// dates and missing due dates are bounded by the window end only.
func DeadlineMinute(due *time.Time, ref time.Time, w domain.WorkWindow) int {
	if due == nil || timemodel.DaysBetween(ref, *due) != 0 {
		return w.EndMinute
	}
	m := timemodel.MinuteOfDay(*due)
	if m > w.EndMinute {
		return w.EndMinute
	}
	if m < w.StartMinute {
		return w.StartMinute
	}
	return m
}

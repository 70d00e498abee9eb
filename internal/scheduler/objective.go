package scheduler

import (
	"math"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// Scale floors for the objective terms. Mandatory and optional scales are
// raised per request when the soft terms could otherwise outweigh them.
const (
	MandatoryPenaltyScale  = 50.0
	OptionalRewardScale    = 500.0
	BreakRewardScale       = 0.1
	EveningPenaltyScale    = 25.0
	ContinuousPenaltyScale = 2.0

	// EveningCutoffMinutes before work end is where evening work begins.
	EveningCutoffMinutes = 60
)

// Objective holds the per-request coefficients of the maximised objective:
//
//	break reward      BreakWeight * (available - scheduled)
//	mandatory penalty -MandatoryScale * penalty, per absent mandatory task
//	optional reward   OptionalScale * score, per present optional task
//	early completion  -EarlyBonus * priority * end, per present task
//	evening penalty   -EveningPenalty, per present task ending after the cutoff
//	continuous        -ContinuousWeight * max(0, scheduled - MaxContinuous)
type Objective struct {
	BreakWeight      float64
	MandatoryScale   float64
	OptionalScale    float64
	EarlyBonus       float64
	EveningPenalty   float64
	EveningCutoff    int
	ContinuousWeight float64
	MaxContinuous    int
	Available        int
}

// ComposeObjective derives the coefficients for m from its weight vector.
func ComposeObjective(m *Model) Objective {
	w := m.Weights
	o := Objective{
		BreakWeight:      w.BreakImportance * BreakRewardScale,
		MandatoryScale:   MandatoryPenaltyScale,
		OptionalScale:    OptionalRewardScale,
		EarlyBonus:       w.EarlyCompletionBonus,
		EveningPenalty:   w.EveningWorkPenalty * EveningPenaltyScale,
		EveningCutoff:    m.Window.EndMinute - EveningCutoffMinutes,
		ContinuousWeight: w.ContinuousWorkPenalty * ContinuousPenaltyScale,
		MaxContinuous:    w.MaxContinuousWorkMinutes,
		Available:        m.AvailableMinutes(),
	}

	soft := o.softSwing(m)
	minScore, minPenalty := float64(ScoreFloor), float64(OmissionPenaltyBase(1))
	if minScore*o.OptionalScale <= soft {
		o.OptionalScale = math.Floor(soft/minScore) + 1
	}

	var rewards float64
	for i := range m.Decisions {
		if !m.Decisions[i].Mandatory {
			rewards += float64(m.Decisions[i].Score)
		}
	}
	if ceiling := rewards*o.OptionalScale + soft; minPenalty*o.MandatoryScale <= ceiling {
		o.MandatoryScale = math.Floor(ceiling/minPenalty) + 1
	}
	return o
}

// softSwing bounds how far the break, early, evening and continuous terms
// together can move between any two schedules.
func (o Objective) softSwing(m *Model) float64 {
	swing := o.BreakWeight*float64(max(o.Available, 0)) + o.ContinuousWeight*float64(m.Window.Length())
	for i := range m.Decisions {
		d := &m.Decisions[i]
		swing += o.EarlyBonus*float64(d.PriorityWeight*m.Window.EndMinute) + o.EveningPenalty
	}
	return swing
}

// inclusion is the tier value earned by having d present.
func (o Objective) inclusion(d *TaskDecision) float64 {
	if d.Mandatory {
		return float64(d.Penalty) * o.MandatoryScale
	}
	return float64(d.Score) * o.OptionalScale
}

// endCost is the early-completion and evening cost of d ending at end.
func (o Objective) endCost(d *TaskDecision, end int) float64 {
	cost := o.EarlyBonus * float64(d.PriorityWeight*end)
	if end > o.EveningCutoff {
		cost += o.EveningPenalty
	}
	return cost
}

// Gain is the change in objective from making d present and ending at end,
// excluding the continuous-work term, which depends only on the total.
func (o Objective) Gain(d *TaskDecision, end int) float64 {
	return o.inclusion(d) - o.BreakWeight*float64(d.Duration) - o.endCost(d, end)
}

// Baseline is the objective of the empty schedule.
func (o Objective) Baseline(m *Model) float64 {
	base := o.BreakWeight * float64(o.Available)
	for i := range m.Decisions {
		if m.Decisions[i].Mandatory {
			base -= o.inclusion(&m.Decisions[i])
		}
	}
	return base
}

// Continuous is the continuous-work penalty for scheduled total minutes.
func (o Objective) Continuous(scheduled int) float64 {
	excess := scheduled - o.MaxContinuous
	if excess <= 0 {
		return 0
	}
	return o.ContinuousWeight * float64(excess)
}

// Evaluate scores the assignment currently written into m.
func (o Objective) Evaluate(m *Model) domain.ObjectiveBreakdown {
	var b domain.ObjectiveBreakdown
	scheduled := 0
	for i := range m.Decisions {
		d := &m.Decisions[i]
		if !d.Present {
			if d.Mandatory {
				b.MandatoryPenalty -= o.inclusion(d)
			}
			continue
		}
		scheduled += d.Duration
		if !d.Mandatory {
			b.OptionalReward += o.inclusion(d)
		}
		b.EarlyCompletion -= o.EarlyBonus * float64(d.PriorityWeight*d.End)
		if d.End > o.EveningCutoff {
			b.EveningPenalty -= o.EveningPenalty
		}
	}
	b.BreakReward = o.BreakWeight * float64(o.Available-scheduled)
	b.ContinuousPenalty = -o.Continuous(scheduled)
	b.Total = b.BreakReward + b.MandatoryPenalty + b.OptionalReward +
		b.EarlyCompletion + b.EveningPenalty + b.ContinuousPenalty
	return b
}

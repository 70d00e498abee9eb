package scheduler

import (
	"testing"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeObjective_DefaultsKeepFloors(t *testing.T) {
	m := mustModel(t, newInput(workHours(9, 17), []domain.Task{
		mkTask("a", domain.PriorityHigh, 60, nil),
	}, nil))

	o := ComposeObjective(m)

	assert.InDelta(t, 0.1, o.BreakWeight, 1e-9)
	assert.InDelta(t, 75.0, o.EveningPenalty, 1e-9)
	assert.InDelta(t, 4.0, o.ContinuousWeight, 1e-9)
	assert.InDelta(t, 2.0, o.EarlyBonus, 1e-9)
	assert.Equal(t, 960, o.EveningCutoff)
	assert.Equal(t, 90, o.MaxContinuous)
	assert.Equal(t, 480, o.Available)
	assert.Equal(t, OptionalRewardScale, o.OptionalScale)
	assert.Equal(t, MandatoryPenaltyScale, o.MandatoryScale)
}

func TestComposeObjective_RaisesScalesToKeepTiers(t *testing.T) {
	tasks := make([]domain.Task, 0, 30)
	for i := 0; i < 30; i++ {
		tasks = append(tasks, mkTask(string(rune('A'+i)), domain.PriorityMedium, 15, nil))
	}
	m := mustModel(t, newInput(workHours(9, 17), tasks, nil))

	o := ComposeObjective(m)
	soft := o.softSwing(m)

	assert.Greater(t, o.OptionalScale, OptionalRewardScale)
	assert.Greater(t, ScoreFloor*o.OptionalScale, soft, "cheapest optional task outweighs all soft terms")

	rewards := 0.0
	for i := range m.Decisions {
		rewards += float64(m.Decisions[i].Score)
	}
	assert.Greater(t, float64(OmissionPenaltyBase(1))*o.MandatoryScale, rewards*o.OptionalScale+soft,
		"cheapest mandatory task outweighs every optional task plus all soft terms")
}

func TestObjective_EvaluateMatchesIncrementalGain(t *testing.T) {
	m := mustModel(t, newInput(workHours(9, 17), []domain.Task{
		mkTask("hi", domain.PriorityHigh, 120, nil),
		mkTask("opt", domain.PriorityMedium, 60, clockPtr(24+12, 0)),
		mkTask("late", domain.PriorityLow, 30, nil),
		mkTask("skipped", domain.PriorityLow, 30, clockPtr(15, 0)),
	}, nil))
	o := ComposeObjective(m)

	placed := []Placement{{Handle: 0, Start: 540}, {Handle: 1, Start: 660}, {Handle: 2, Start: 990}}
	apply(m, placed)
	b := o.Evaluate(m)

	want := o.Baseline(m)
	for _, p := range placed {
		d := m.Decision(p.Handle)
		want += o.Gain(d, d.End)
	}
	want -= o.Continuous(210)
	assert.InDelta(t, want, b.Total, 1e-6)

	assert.InDelta(t, 0.1*(480-210), b.BreakReward, 1e-9)
	assert.InDelta(t, -1000*o.MandatoryScale, b.MandatoryPenalty, 1e-9, "only 'skipped' is absent")
	assert.InDelta(t, float64(1000+ScoreFloor)*o.OptionalScale, b.OptionalReward, 1e-9)
	assert.InDelta(t, -2.0*(3*660+2*720+1*1020), b.EarlyCompletion, 1e-9)
	assert.InDelta(t, -75.0, b.EveningPenalty, 1e-9, "only 'late' ends after 16:00")
	assert.InDelta(t, -4.0*(210-90), b.ContinuousPenalty, 1e-9)
}

func TestObjective_ContinuousPenaltyOnlyAboveMax(t *testing.T) {
	o := Objective{ContinuousWeight: 4, MaxContinuous: 90}

	assert.Zero(t, o.Continuous(0))
	assert.Zero(t, o.Continuous(90))
	assert.InDelta(t, 40.0, o.Continuous(100), 1e-9)
}

func TestObjective_GainOrdering(t *testing.T) {
	m := mustModel(t, newInput(workHours(9, 17), []domain.Task{
		mkTask("mandatory", domain.PriorityLow, 60, clockPtr(17, 0)),
		mkTask("high", domain.PriorityHigh, 60, nil),
		mkTask("optional-near", domain.PriorityMedium, 60, clockPtr(24+12, 0)),
	}, nil))
	o := ComposeObjective(m)
	mand, high, near := m.Decision(0), m.Decision(1), m.Decision(2)
	require.True(t, mand.Mandatory)
	require.True(t, high.Mandatory, "high priority is always mandatory")
	require.False(t, near.Mandatory)

	assert.Greater(t, o.Gain(high, 1020), o.Gain(mand, 600))
	assert.Greater(t, o.Gain(mand, 1020), o.Gain(near, 600))
	assert.Greater(t, o.Gain(near, 600), o.Gain(near, 1020), "earlier ends earn more")
	assert.Greater(t, o.Gain(near, 1020), 0.0, "an optional task is worth including even in the evening")
}

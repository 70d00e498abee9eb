package scheduler

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exhaustive enumerates every task sequence with earliest placement and
// returns the best objective value.
func exhaustive(f *Formulation, obj Objective) float64 {
	m := f.Model
	used := make([]bool, len(m.Decisions))
	best := obj.Baseline(m)
	var walk func(t int, acc float64, scheduled int)
	walk = func(t int, acc float64, scheduled int) {
		if v := obj.Baseline(m) + acc - obj.Continuous(scheduled); v > best {
			best = v
		}
		for i := range m.Decisions {
			if used[i] {
				continue
			}
			d := &m.Decisions[i]
			start, ok := f.EarliestPlacement(d, t)
			if !ok {
				continue
			}
			used[i] = true
			walk(start+d.Duration, acc+obj.Gain(d, start+d.Duration), scheduled+d.Duration)
			used[i] = false
		}
	}
	walk(m.Window.StartMinute, 0, 0)
	return best
}

func randomInstance(rng *rand.Rand, n int) Input {
	priorities := []domain.Priority{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow}
	startHour := 7 + rng.Intn(3)
	w := workHours(startHour, startHour+2+rng.Intn(4))

	tasks := make([]domain.Task, n)
	for i := range tasks {
		var due *time.Time
		switch rng.Intn(3) {
		case 0:
			due = clockPtr(24*(rng.Intn(4)-1)+8+rng.Intn(10), 15*rng.Intn(4))
		case 1:
			due = clockPtr(24*(1+rng.Intn(6)), 0)
		}
		tasks[i] = mkTask(fmt.Sprintf("t%d", i), priorities[rng.Intn(3)], 15*(1+rng.Intn(6)), due)
	}

	var events []domain.CalendarEvent
	cursor := w.StartMinute
	for i := 0; i < rng.Intn(3); i++ {
		start := cursor + 15*rng.Intn(6)
		end := start + 15*(1+rng.Intn(4))
		events = append(events, mkEvent(fmt.Sprintf("e%d", i), clock(0, start), clock(0, end)))
		cursor = end
	}
	return newInput(w, tasks, events)
}

func TestSolve_MatchesExhaustiveSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 60; trial++ {
		in := randomInstance(rng, 1+rng.Intn(6))
		m := mustModel(t, in)
		f := Formulate(m)
		obj := ComposeObjective(m)

		want := exhaustive(f, obj)
		sol := Solve(context.Background(), f, obj, SolveOptions{TimeLimit: 5 * time.Second})

		require.Equal(t, domain.SolverOptimal, sol.Status, "trial %d", trial)
		assert.InDelta(t, want, sol.Objective, 1e-6, "trial %d", trial)
		assert.InDelta(t, sol.Objective, obj.Evaluate(m).Total, 1e-6, "trial %d: written assignment scores the reported objective", trial)
	}
}

func TestSolve_InfeasibleOnFixedConflict(t *testing.T) {
	m := mustModel(t, newInput(workHours(9, 17), []domain.Task{
		mkTask("a", domain.PriorityHigh, 30, nil),
	}, []domain.CalendarEvent{
		mkEvent("x", clock(10, 0), clock(11, 0)),
		mkEvent("y", clock(10, 59), clock(12, 0)),
	}))
	f := Formulate(m)

	sol := Solve(context.Background(), f, ComposeObjective(m), SolveOptions{})

	assert.Equal(t, domain.SolverInfeasible, sol.Status)
	assert.False(t, sol.Status.HasSolution())
	assert.Zero(t, sol.Nodes)
}

func TestSolve_CancelledContextHasNoSolution(t *testing.T) {
	m := mustModel(t, newInput(workHours(9, 17), []domain.Task{
		mkTask("a", domain.PriorityHigh, 30, nil),
	}, nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sol := Solve(ctx, Formulate(m), ComposeObjective(m), SolveOptions{})

	assert.Equal(t, domain.SolverUnknown, sol.Status)
}

func TestSolve_TimeLimitKeepsIncumbent(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	tasks := make([]domain.Task, 60)
	for i := range tasks {
		tasks[i] = mkTask(fmt.Sprintf("t%02d", i), domain.PriorityMedium, 7+rng.Intn(53), clockPtr(24*(1+rng.Intn(5)), 0))
	}
	m := mustModel(t, newInput(workHours(8, 18), tasks, nil))
	f := Formulate(m)

	sol := Solve(context.Background(), f, ComposeObjective(m), SolveOptions{TimeLimit: time.Millisecond})

	require.True(t, sol.Status.HasSolution())
	assert.NotEmpty(t, sol.Placements, "greedy incumbent survives the budget")
	if sol.TimedOut {
		assert.Equal(t, domain.SolverFeasible, sol.Status)
	}
}

func TestSolve_IdenticalTasksAreNotPermuted(t *testing.T) {
	tasks := make([]domain.Task, 12)
	for i := range tasks {
		tasks[i] = mkTask(fmt.Sprintf("t%02d", i), domain.PriorityMedium, 30, clockPtr(24+9, 0))
	}
	m := mustModel(t, newInput(workHours(9, 17), tasks, nil))

	sol := Solve(context.Background(), Formulate(m), ComposeObjective(m), SolveOptions{})

	assert.Equal(t, domain.SolverOptimal, sol.Status)
	assert.Len(t, sol.Placements, 12)
	assert.Less(t, sol.Nodes, int64(1000))
}

func TestInterchangeableClasses(t *testing.T) {
	m := mustModel(t, newInput(workHours(9, 17), []domain.Task{
		mkTask("a", domain.PriorityMedium, 30, nil),
		mkTask("b", domain.PriorityLow, 30, nil),
		mkTask("c", domain.PriorityMedium, 30, nil),
		mkTask("d", domain.PriorityMedium, 45, nil),
	}, nil))
	order := []*TaskDecision{m.Decision(0), m.Decision(1), m.Decision(2), m.Decision(3)}

	assert.Equal(t, []int{0, 1, 0, 3}, classify(order))
}

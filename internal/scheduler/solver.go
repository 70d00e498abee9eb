package scheduler

import (
	"context"
	"sort"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
)

const (
	// DefaultTimeLimit is the wall-clock budget of one solve.
	DefaultTimeLimit = 30 * time.Second

	checkInterval = 512
	memoTaskLimit = 64
	memoMaxStates = 1 << 20
	epsilon       = 1e-9
)

type SolveOptions struct {
	TimeLimit time.Duration
}

// Solution is the outcome of Solve. On OPTIMAL or FEASIBLE the best
// assignment has been written into the model.
type Solution struct {
	Status     domain.SolverStatus
	Objective  float64
	Nodes      int64
	Elapsed    time.Duration
	TimedOut   bool
	Placements []Placement
}

type memoKey struct {
	mask uint64
	t    int
}

type search struct {
	ctx      context.Context
	deadline time.Time
	f        *Formulation
	obj      Objective
	base     float64

	order []*TaskDecision
	class []int
	used  []bool

	path      []Placement
	best      []Placement
	bestValue float64

	mask      uint64
	scheduled int
	nodes     int64
	stopped   bool

	memo map[memoKey]float64
}

// Solve maximises obj over f with a depth-first branch-and-bound over task
// sequences. Each task in a sequence starts at its earliest admitted minute
// after its predecessor; every objective term is non-increasing in each end
// time, so this loses no optimal schedule. The search is seeded with the
// greedy allocation and stops at the time limit or when ctx is done, keeping
// the best schedule found so far.
func Solve(ctx context.Context, f *Formulation, obj Objective, opts SolveOptions) Solution {
	started := time.Now()
	limit := opts.TimeLimit
	if limit <= 0 {
		limit = DefaultTimeLimit
	}

	if _, _, conflict := f.Conflict(); conflict {
		return Solution{Status: domain.SolverInfeasible, Elapsed: time.Since(started)}
	}
	if ctx.Err() != nil {
		return Solution{Status: domain.SolverUnknown, Elapsed: time.Since(started)}
	}

	m := f.Model
	s := &search{
		ctx:      ctx,
		deadline: started.Add(limit),
		f:        f,
		obj:      obj,
		base:     obj.Baseline(m),
	}
	s.order = make([]*TaskDecision, len(m.Decisions))
	for i := range m.Decisions {
		s.order[i] = &m.Decisions[i]
	}
	CanonicalSort(s.order, obj)
	s.class = classify(s.order)
	s.used = make([]bool, len(s.order))
	if len(s.order) <= memoTaskLimit {
		s.memo = make(map[memoKey]float64)
	}

	s.best = AllocateGreedy(f, s.order)
	s.bestValue = s.value(s.best)

	s.dfs(m.Window.StartMinute, 0)

	status := domain.SolverOptimal
	if s.stopped {
		status = domain.SolverFeasible
	}
	apply(m, s.best)
	return Solution{
		Status:     status,
		Objective:  s.bestValue,
		Nodes:      s.nodes,
		Elapsed:    time.Since(started),
		TimedOut:   s.stopped,
		Placements: s.best,
	}
}

// classify groups interchangeable decisions; class[i] is the position of
// the first member of i's group.
func classify(order []*TaskDecision) []int {
	class := make([]int, len(order))
	for i := range order {
		class[i] = i
		for j := 0; j < i; j++ {
			if class[j] == j && interchangeable(order[i], order[j]) {
				class[i] = j
				break
			}
		}
	}
	return class
}

func (s *search) value(placed []Placement) float64 {
	v := s.base
	scheduled := 0
	for _, p := range placed {
		d := s.f.Model.Decision(p.Handle)
		v += s.obj.Gain(d, p.Start+d.Duration)
		scheduled += d.Duration
	}
	return v - s.obj.Continuous(scheduled)
}

func (s *search) expired() bool {
	if s.stopped {
		return true
	}
	if s.nodes%checkInterval == 0 {
		if s.ctx.Err() != nil || time.Now().After(s.deadline) {
			s.stopped = true
		}
	}
	return s.stopped
}

type candidate struct {
	pos   int
	start int
	gain  float64
}

// dfs explores sequences extending s.path, which currently ends at t with
// accumulated gain acc.
func (s *search) dfs(t int, acc float64) {
	s.nodes++
	if s.expired() {
		return
	}

	if s.memo != nil {
		key := memoKey{mask: s.mask, t: t}
		if prev, seen := s.memo[key]; seen && prev >= acc-epsilon {
			return
		}
		if len(s.memo) < memoMaxStates {
			s.memo[key] = acc
		}
	}

	current := s.base + acc - s.obj.Continuous(s.scheduled)
	if current > s.bestValue+epsilon {
		s.bestValue = current
		s.best = append(s.best[:0:0], s.path...)
	}

	var cands []candidate
	var bound []candidate
	for pos, d := range s.order {
		if s.used[pos] {
			continue
		}
		start, ok := s.f.EarliestPlacement(d, t)
		if !ok {
			continue
		}
		gain := s.obj.Gain(d, start+d.Duration)
		if gain <= epsilon {
			continue
		}
		c := candidate{pos: pos, start: start, gain: gain}
		bound = append(bound, c)
		if s.firstUnusedOfClass(pos) {
			cands = append(cands, c)
		}
	}
	if len(cands) == 0 {
		return
	}

	if current+s.knapsackBound(bound, s.f.FreeMinutesAfter(t)) <= s.bestValue+epsilon {
		return
	}

	for _, c := range cands {
		d := s.order[c.pos]
		s.used[c.pos] = true
		if s.memo != nil {
			s.mask |= 1 << uint(c.pos)
		}
		s.scheduled += d.Duration
		s.path = append(s.path, Placement{Handle: d.Handle, Start: c.start})

		s.dfs(c.start+d.Duration, acc+c.gain)

		s.path = s.path[:len(s.path)-1]
		s.scheduled -= d.Duration
		if s.memo != nil {
			s.mask &^= 1 << uint(c.pos)
		}
		s.used[c.pos] = false

		if s.stopped {
			return
		}
	}
}

func (s *search) firstUnusedOfClass(pos int) bool {
	cls := s.class[pos]
	for i := cls; i < pos; i++ {
		if s.class[i] == cls && !s.used[i] {
			return false
		}
	}
	return true
}

// knapsackBound is the fractional-knapsack optimum of the remaining gains
// over the remaining free capacity. Each gain is already the best that task
// can earn from here on.
func (s *search) knapsackBound(cands []candidate, capacity int) float64 {
	sort.Slice(cands, func(i, j int) bool {
		di, dj := s.order[cands[i].pos].Duration, s.order[cands[j].pos].Duration
		return cands[i].gain*float64(dj) > cands[j].gain*float64(di)
	})
	total := 0.0
	for _, c := range cands {
		if capacity <= 0 {
			break
		}
		dur := s.order[c.pos].Duration
		if dur <= capacity {
			total += c.gain
			capacity -= dur
			continue
		}
		total += c.gain * float64(capacity) / float64(dur)
		capacity = 0
	}
	return total
}

func apply(m *Model, placed []Placement) {
	m.ResetAssignment()
	for _, p := range placed {
		d := m.Decision(p.Handle)
		d.Present = true
		d.Start = p.Start
		d.End = p.Start + d.Duration
	}
}

package scheduler

import "sort"

// Gap is a free half-open range inside the work window.
type Gap struct {
	Start int
	End   int
}

func (g Gap) Len() int { return g.End - g.Start }

// Formulation is the constraint view of a Model: the free gaps left by the
// fixed intervals, and the presence-gated admission test every placement
// goes through. Tasks among themselves are kept apart by the solver, which
// places them in sequence.
type Formulation struct {
	Model *Model
	Gaps  []Gap

	conflict *[2]FixedInterval
	// freeAfter[i] is the total free time in Gaps[i:].
	freeAfter []int
}

// Formulate derives the free gaps of m and detects fixed intervals that
// overlap each other, which leaves the no-overlap constraint unsatisfiable.
func Formulate(m *Model) *Formulation {
	f := &Formulation{Model: m}

	fixed := make([]FixedInterval, len(m.Fixed))
	copy(fixed, m.Fixed)
	sort.SliceStable(fixed, func(i, j int) bool {
		if fixed[i].Start != fixed[j].Start {
			return fixed[i].Start < fixed[j].Start
		}
		return fixed[i].End < fixed[j].End
	})

	for i := 1; i < len(fixed) && f.conflict == nil; i++ {
		for j := 0; j < i; j++ {
			if fixed[j].overlaps(fixed[i]) {
				f.conflict = &[2]FixedInterval{fixed[j], fixed[i]}
				break
			}
		}
	}

	cursor := m.Window.StartMinute
	for _, fx := range fixed {
		if fx.End <= m.Window.StartMinute || fx.Start >= m.Window.EndMinute {
			continue
		}
		if fx.Start > cursor {
			f.Gaps = append(f.Gaps, Gap{Start: cursor, End: fx.Start})
		}
		cursor = max(cursor, fx.End)
	}
	if cursor < m.Window.EndMinute {
		f.Gaps = append(f.Gaps, Gap{Start: cursor, End: m.Window.EndMinute})
	}

	f.freeAfter = make([]int, len(f.Gaps)+1)
	for i := len(f.Gaps) - 1; i >= 0; i-- {
		f.freeAfter[i] = f.freeAfter[i+1] + f.Gaps[i].Len()
	}
	return f
}

// Conflict returns the first pair of overlapping fixed intervals, if any.
func (f *Formulation) Conflict() (FixedInterval, FixedInterval, bool) {
	if f.conflict == nil {
		return FixedInterval{}, FixedInterval{}, false
	}
	return f.conflict[0], f.conflict[1], true
}

// Admits reports whether d may be present at start: inside its bounds,
// ending by its deadline, and clear of every fixed interval.
func (f *Formulation) Admits(d *TaskDecision, start int) bool {
	end := start + d.Duration
	if start < d.Lower || end > d.Upper {
		return false
	}
	for _, g := range f.Gaps {
		if start >= g.Start && end <= g.End {
			return true
		}
	}
	return false
}

// EarliestPlacement finds the earliest admitted start for d at or after from.
func (f *Formulation) EarliestPlacement(d *TaskDecision, from int) (int, bool) {
	from = max(from, d.Lower)
	for _, g := range f.Gaps {
		if g.End <= from {
			continue
		}
		start := max(g.Start, from)
		if start+d.Duration > d.Upper {
			return 0, false
		}
		if start+d.Duration <= g.End {
			return start, true
		}
	}
	return 0, false
}

// FreeMinutesAfter is the free time remaining in the window from t on.
func (f *Formulation) FreeMinutesAfter(t int) int {
	i := sort.Search(len(f.Gaps), func(i int) bool { return f.Gaps[i].End > t })
	if i == len(f.Gaps) {
		return 0
	}
	total := f.freeAfter[i]
	if t > f.Gaps[i].Start {
		total -= t - f.Gaps[i].Start
	}
	return total
}

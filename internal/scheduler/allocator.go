package scheduler

// Placement is one present task and its start minute.
type Placement struct {
	Handle TaskHandle
	Start  int
}

// AllocateGreedy places decisions in the given order, each at the earliest
// admitted start in whatever free time is left. It never fails: tasks that
// no longer fit are left absent.
func AllocateGreedy(f *Formulation, ordered []*TaskDecision) []Placement {
	free := make([]Gap, len(f.Gaps))
	copy(free, f.Gaps)

	var placed []Placement
	for _, d := range ordered {
		idx, start, ok := firstFit(free, d)
		if !ok {
			continue
		}
		placed = append(placed, Placement{Handle: d.Handle, Start: start})
		free = carve(free, idx, start, start+d.Duration)
	}
	return placed
}

func firstFit(free []Gap, d *TaskDecision) (int, int, bool) {
	for i, g := range free {
		start := max(g.Start, d.Lower)
		end := start + d.Duration
		if end > d.Upper {
			return 0, 0, false
		}
		if end <= g.End {
			return i, start, true
		}
	}
	return 0, 0, false
}

// carve removes [start, end) from free[idx], splitting it when needed.
func carve(free []Gap, idx, start, end int) []Gap {
	g := free[idx]
	var pieces []Gap
	if start > g.Start {
		pieces = append(pieces, Gap{Start: g.Start, End: start})
	}
	if end < g.End {
		pieces = append(pieces, Gap{Start: end, End: g.End})
	}
	out := make([]Gap, 0, len(free)+1)
	out = append(out, free[:idx]...)
	out = append(out, pieces...)
	return append(out, free[idx+1:]...)
}

package scheduler

import "sort"

// CanonicalSort orders decisions for the greedy pass and for branching:
// 1. Mandatory before optional
// 2. Deadline: earliest latest-end first
// 3. Value density: inclusion value per minute, higher first
// 4. Priority: higher first
// 5. Task ID: lexical ascending
func CanonicalSort(decisions []*TaskDecision, obj Objective) {
	sort.SliceStable(decisions, func(i, j int) bool {
		a, b := decisions[i], decisions[j]

		if a.Mandatory != b.Mandatory {
			return a.Mandatory
		}

		if a.Upper != b.Upper {
			return a.Upper < b.Upper
		}

		densityA := obj.inclusion(a) / float64(a.Duration)
		densityB := obj.inclusion(b) / float64(b.Duration)
		if densityA != densityB {
			return densityA > densityB
		}

		if a.PriorityWeight != b.PriorityWeight {
			return a.PriorityWeight > b.PriorityWeight
		}

		return a.Task.ID < b.Task.ID
	})
}

// interchangeable reports whether a and b can swap places in any schedule
// without changing feasibility or objective value.
func interchangeable(a, b *TaskDecision) bool {
	return a.Mandatory == b.Mandatory &&
		a.Duration == b.Duration &&
		a.PriorityWeight == b.PriorityWeight &&
		a.Score == b.Score &&
		a.Penalty == b.Penalty &&
		a.Lower == b.Lower &&
		a.Upper == b.Upper
}

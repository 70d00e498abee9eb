package scheduler

import (
	"testing"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sortedIDs(t *testing.T, tasks ...domain.Task) []string {
	t.Helper()
	m := mustModel(t, newInput(workHours(9, 17), tasks, nil))
	ds := make([]*TaskDecision, len(m.Decisions))
	for i := range m.Decisions {
		ds[i] = &m.Decisions[i]
	}
	CanonicalSort(ds, ComposeObjective(m))
	ids := make([]string, len(ds))
	for i, d := range ds {
		ids[i] = d.Task.ID
	}
	return ids
}

func TestCanonicalSort_MandatoryFirst(t *testing.T) {
	ids := sortedIDs(t,
		mkTask("optional", domain.PriorityMedium, 30, clockPtr(24+9, 0)),
		mkTask("mandatory", domain.PriorityLow, 30, clockPtr(16, 0)),
	)

	assert.Equal(t, []string{"mandatory", "optional"}, ids)
}

func TestCanonicalSort_DeadlineTiebreak(t *testing.T) {
	ids := sortedIDs(t,
		mkTask("eod", domain.PriorityHigh, 30, nil),
		mkTask("noon", domain.PriorityHigh, 30, clockPtr(12, 0)),
		mkTask("ten", domain.PriorityHigh, 30, clockPtr(10, 0)),
	)

	assert.Equal(t, []string{"ten", "noon", "eod"}, ids)
}

func TestCanonicalSort_DensityTiebreak(t *testing.T) {
	ids := sortedIDs(t,
		mkTask("long", domain.PriorityMedium, 120, clockPtr(24+9, 0)),
		mkTask("short", domain.PriorityMedium, 30, clockPtr(24+9, 0)),
	)

	assert.Equal(t, []string{"short", "long"}, ids)
}

func TestCanonicalSort_IDTiebreak(t *testing.T) {
	ids := sortedIDs(t,
		mkTask("b", domain.PriorityLow, 30, nil),
		mkTask("a", domain.PriorityLow, 30, nil),
	)

	assert.Equal(t, []string{"a", "b"}, ids)
}

package scheduler

import (
	"context"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/timemodel"
)

// Options tunes one Schedule call.
type Options struct {
	TimeLimit time.Duration
	// Now resolves the reference date when neither an explicit date nor any
	// due date is available. Defaults to time.Now.
	Now func() time.Time
}

// Schedule builds, solves and decodes one single-day scheduling problem.
// The only error it returns is a *domain.ValidationError; infeasible and
// partial outcomes are reported through the result's Status.
func Schedule(ctx context.Context, in Input, opts Options) (domain.ScheduleResult, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	dues := make([]*time.Time, 0, len(in.Tasks))
	for i := range in.Tasks {
		dues = append(dues, in.Tasks[i].Due)
	}
	ref := timemodel.ResolveReferenceDate(in.ReferenceDate, dues, now())

	m, err := BuildModel(in, ref)
	if err != nil {
		return domain.ScheduleResult{}, err
	}
	f := Formulate(m)
	obj := ComposeObjective(m)
	sol := Solve(ctx, f, obj, SolveOptions{TimeLimit: opts.TimeLimit})
	return Decode(f, obj, sol), nil
}

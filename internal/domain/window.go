package domain

import "fmt"

// MinutesPerDay is the scheduling horizon.
const MinutesPerDay = 24 * 60

// WorkWindow is the half-open minute-of-day range [StartMinute, EndMinute)
// in which tasks may be placed.
type WorkWindow struct {
	StartMinute int
	EndMinute   int
}

func NewWorkWindow(start, end int) (WorkWindow, error) {
	w := WorkWindow{StartMinute: start, EndMinute: end}
	if err := w.Validate(); err != nil {
		return WorkWindow{}, err
	}
	return w, nil
}

func (w WorkWindow) Validate() error {
	if w.StartMinute < 0 || w.EndMinute > MinutesPerDay {
		return NewValidationError("work_hours", "work window %s must lie within the day", w)
	}
	if w.StartMinute >= w.EndMinute {
		return NewValidationError("work_hours", "work start must be before work end, got %s", w)
	}
	return nil
}

// Length returns the window size in minutes.
func (w WorkWindow) Length() int {
	return w.EndMinute - w.StartMinute
}

func (w WorkWindow) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.StartMinute/60, w.StartMinute%60, w.EndMinute/60, w.EndMinute%60)
}

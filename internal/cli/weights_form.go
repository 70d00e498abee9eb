package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func dayplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// weightFormValues holds the form's text fields. huh inputs bind strings.
type weightFormValues struct {
	BreakImportance string
	MaxContinuous   string
	ContinuousPen   string
	EveningPen      string
	EarlyBonus      string
}

func newWeightFormValues(w domain.WeightConfig) *weightFormValues {
	ff := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return &weightFormValues{
		BreakImportance: ff(w.BreakImportance),
		MaxContinuous:   strconv.Itoa(w.MaxContinuousWorkMinutes),
		ContinuousPen:   ff(w.ContinuousWorkPenalty),
		EveningPen:      ff(w.EveningWorkPenalty),
		EarlyBonus:      ff(w.EarlyCompletionBonus),
	}
}

// overrides returns an override for every field whose value differs from
// current. Blank fields keep the current value.
func (v *weightFormValues) overrides(current domain.WeightConfig) (domain.WeightOverrides, error) {
	var o domain.WeightOverrides
	var err error
	if o.BreakImportance, err = changedFloat(v.BreakImportance, current.BreakImportance); err != nil {
		return o, fmt.Errorf("break importance: %w", err)
	}
	if o.MaxContinuousWorkMinutes, err = changedInt(v.MaxContinuous, current.MaxContinuousWorkMinutes); err != nil {
		return o, fmt.Errorf("max continuous work: %w", err)
	}
	if o.ContinuousWorkPenalty, err = changedFloat(v.ContinuousPen, current.ContinuousWorkPenalty); err != nil {
		return o, fmt.Errorf("continuous work penalty: %w", err)
	}
	if o.EveningWorkPenalty, err = changedFloat(v.EveningPen, current.EveningWorkPenalty); err != nil {
		return o, fmt.Errorf("evening work penalty: %w", err)
	}
	if o.EarlyCompletionBonus, err = changedFloat(v.EarlyBonus, current.EarlyCompletionBonus); err != nil {
		return o, fmt.Errorf("early completion bonus: %w", err)
	}
	return o, nil
}

func changedFloat(s string, current float64) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if f == current {
		return nil, nil
	}
	return &f, nil
}

func changedInt(s string, current int) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	if n == current {
		return nil, nil
	}
	return &n, nil
}

func validatePositiveFloat(s string) error {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive whole number")
	}
	return nil
}

func weightInput(title, description string, value *string, validate func(string) error) *huh.Input {
	return huh.NewInput().
		Title(title).
		Description(description).
		Value(value).
		Validate(validate)
}

func weightsForm(userID string, v *weightFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			weightInput("Break importance", "Reward for unscheduled time", &v.BreakImportance, validatePositiveFloat),
			weightInput("Max continuous work (minutes)", "Work beyond this is penalised", &v.MaxContinuous, validatePositiveInt),
			weightInput("Continuous work penalty", "Per minute over the limit", &v.ContinuousPen, validatePositiveFloat),
			weightInput("Evening work penalty", "Per task ending in the last hour", &v.EveningPen, validatePositiveFloat),
			weightInput("Early completion bonus", "Pull toward finishing early", &v.EarlyBonus, validatePositiveFloat),
		).Title("Weights for "+userID),
	).WithTheme(dayplanHuhTheme()).WithShowHelp(false)
}

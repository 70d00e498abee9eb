package formatter

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/dayplan/internal/domain"
)

func FormatWeightConfig(w domain.WeightConfig) string {
	return RenderKV([][2]string{
		{"break importance", formatWeight(w.BreakImportance, domain.DefaultBreakImportance)},
		{"max continuous work", formatMinutesWeight(w.MaxContinuousWorkMinutes, domain.DefaultMaxContinuousWorkMinutes)},
		{"continuous work penalty", formatWeight(w.ContinuousWorkPenalty, domain.DefaultContinuousWorkPenalty)},
		{"evening work penalty", formatWeight(w.EveningWorkPenalty, domain.DefaultEveningWorkPenalty)},
		{"early completion bonus", formatWeight(w.EarlyCompletionBonus, domain.DefaultEarlyCompletionBonus)},
	})
}

// formatWeight highlights values that differ from the default.
func formatWeight(v, def float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if v == def {
		return s + Dim(" (default)")
	}
	return StyleYellow.Render(s)
}

func formatMinutesWeight(v, def int) string {
	s := FormatMinutes(v)
	if v == def {
		return s + Dim(" (default)")
	}
	return StyleYellow.Render(s)
}

// FormatUserWeights renders one user's stored or default vector.
func FormatUserWeights(w *domain.UserWeights) string {
	updated := Dim("never stored, using defaults")
	if !w.UpdatedAt.IsZero() {
		updated = Dim("updated " + HumanTimestamp(w.UpdatedAt))
	}
	return RenderBox("Weights · "+w.UserID, FormatWeightConfig(w.Weights)+"\n"+updated)
}

func FormatWeightList(all []*domain.UserWeights) string {
	if len(all) == 0 {
		return Dim("No stored weight vectors; every user gets the defaults.") + "\n"
	}
	headers := []string{"USER", "BREAK", "MAX CONT.", "CONT. PEN.", "EVENING", "EARLY", "UPDATED"}
	rows := make([][]string, 0, len(all))
	for _, w := range all {
		rows = append(rows, []string{
			Bold(w.UserID),
			fmt.Sprintf("%g", w.Weights.BreakImportance),
			FormatMinutes(w.Weights.MaxContinuousWorkMinutes),
			fmt.Sprintf("%g", w.Weights.ContinuousWorkPenalty),
			fmt.Sprintf("%g", w.Weights.EveningWorkPenalty),
			fmt.Sprintf("%g", w.Weights.EarlyCompletionBonus),
			Dim(HumanTimestamp(w.UpdatedAt)),
		})
	}
	return RenderBox("Weights", RenderTable(headers, rows))
}

package domain

// IntFromPtrWithDefault returns the first non-nil *int value, or the fallback.
func IntFromPtrWithDefault(fallback int, ptrs ...*int) int {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// Float64FromPtrWithDefault returns the first non-nil *float64 value, or the fallback.
func Float64FromPtrWithDefault(fallback float64, ptrs ...*float64) float64 {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// WeightOverrides holds optional per-field replacements for a WeightConfig.
type WeightOverrides struct {
	BreakImportance          *float64
	MaxContinuousWorkMinutes *int
	ContinuousWorkPenalty    *float64
	EveningWorkPenalty       *float64
	EarlyCompletionBonus     *float64
}

// Apply returns base with every non-nil override substituted.
func (o WeightOverrides) Apply(base WeightConfig) WeightConfig {
	return WeightConfig{
		BreakImportance:          Float64FromPtrWithDefault(base.BreakImportance, o.BreakImportance),
		MaxContinuousWorkMinutes: IntFromPtrWithDefault(base.MaxContinuousWorkMinutes, o.MaxContinuousWorkMinutes),
		ContinuousWorkPenalty:    Float64FromPtrWithDefault(base.ContinuousWorkPenalty, o.ContinuousWorkPenalty),
		EveningWorkPenalty:       Float64FromPtrWithDefault(base.EveningWorkPenalty, o.EveningWorkPenalty),
		EarlyCompletionBonus:     Float64FromPtrWithDefault(base.EarlyCompletionBonus, o.EarlyCompletionBonus),
	}
}

package domain

import "time"

// Default objective weights, used until the learner has produced a vector
// for a user.
const (
	DefaultBreakImportance          = 1.0
	DefaultMaxContinuousWorkMinutes = 90
	DefaultContinuousWorkPenalty    = 2.0
	DefaultEveningWorkPenalty       = 3.0
	DefaultEarlyCompletionBonus     = 2.0
)

// WeightConfig is the per-user objective weight vector produced by the
// external learner. The scheduling core only reads it.
type WeightConfig struct {
	BreakImportance          float64
	MaxContinuousWorkMinutes int
	ContinuousWorkPenalty    float64
	EveningWorkPenalty       float64
	EarlyCompletionBonus     float64
}

func DefaultWeightConfig() WeightConfig {
	return WeightConfig{
		BreakImportance:          DefaultBreakImportance,
		MaxContinuousWorkMinutes: DefaultMaxContinuousWorkMinutes,
		ContinuousWorkPenalty:    DefaultContinuousWorkPenalty,
		EveningWorkPenalty:       DefaultEveningWorkPenalty,
		EarlyCompletionBonus:     DefaultEarlyCompletionBonus,
	}
}

func (w WeightConfig) Validate() error {
	switch {
	case w.BreakImportance <= 0:
		return NewValidationError("weights.break_importance", "must be positive, got %g", w.BreakImportance)
	case w.MaxContinuousWorkMinutes <= 0:
		return NewValidationError("weights.max_continuous_work", "must be positive, got %d", w.MaxContinuousWorkMinutes)
	case w.ContinuousWorkPenalty <= 0:
		return NewValidationError("weights.continuous_work_penalty", "must be positive, got %g", w.ContinuousWorkPenalty)
	case w.EveningWorkPenalty <= 0:
		return NewValidationError("weights.evening_work_penalty", "must be positive, got %g", w.EveningWorkPenalty)
	case w.EarlyCompletionBonus <= 0:
		return NewValidationError("weights.early_completion_bonus", "must be positive, got %g", w.EarlyCompletionBonus)
	}
	return nil
}

// UserWeights is a stored weight vector keyed by user identity.
type UserWeights struct {
	UserID    string
	Weights   WeightConfig
	UpdatedAt time.Time
}

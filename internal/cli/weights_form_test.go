package cli

import (
	"testing"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightFormValues_OnlyChangedFields(t *testing.T) {
	current := domain.DefaultWeightConfig()
	v := newWeightFormValues(current)
	v.EveningPen = "4.5"
	v.MaxContinuous = "120"
	v.EarlyBonus = ""

	o, err := v.overrides(current)

	require.NoError(t, err)
	require.NotNil(t, o.EveningWorkPenalty)
	assert.Equal(t, 4.5, *o.EveningWorkPenalty)
	require.NotNil(t, o.MaxContinuousWorkMinutes)
	assert.Equal(t, 120, *o.MaxContinuousWorkMinutes)
	assert.Nil(t, o.BreakImportance)
	assert.Nil(t, o.EarlyCompletionBonus)
}

func TestWeightFormValues_Unchanged(t *testing.T) {
	current := domain.DefaultWeightConfig()

	o, err := newWeightFormValues(current).overrides(current)

	require.NoError(t, err)
	assert.Equal(t, domain.WeightOverrides{}, o)
}

func TestWeightFormValues_BadNumber(t *testing.T) {
	v := newWeightFormValues(domain.DefaultWeightConfig())
	v.ContinuousPen = "lots"

	_, err := v.overrides(domain.DefaultWeightConfig())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "continuous work penalty")
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validatePositiveFloat(""))
	assert.NoError(t, validatePositiveFloat("0.5"))
	assert.Error(t, validatePositiveFloat("0"))
	assert.Error(t, validatePositiveFloat("x"))
	assert.NoError(t, validatePositiveInt("90"))
	assert.Error(t, validatePositiveInt("1.5"))
	assert.Error(t, validatePositiveInt("-3"))
}

func TestWeightsForm_Builds(t *testing.T) {
	assert.NotNil(t, weightsForm("bob", newWeightFormValues(domain.DefaultWeightConfig())))
}

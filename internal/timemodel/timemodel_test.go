package timemodel

import (
	"testing"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"09:00": 540,
		"9:30":  570,
		"17:45": 1065,
		"24:00": 1440,
	}
	for in, want := range cases {
		got, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseClock_Invalid(t *testing.T) {
	for _, in := range []string{"", "9", "09:5", "25:00", "24:01", "ab:cd", "09:60", "-1:00"} {
		_, err := ParseClock(in)
		assert.ErrorIs(t, err, domain.ErrValidation, in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "17:00", FormatClock(1020))
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("09:00", "17:00")
	require.NoError(t, err)
	assert.Equal(t, 540, w.StartMinute)
	assert.Equal(t, 1020, w.EndMinute)

	_, err = ParseWindow("17:00", "09:00")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = ParseWindow("nine", "17:00")
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "work_hours.start", vErr.Field)
}

func TestParseTimestamp(t *testing.T) {
	cases := []string{
		"2025-03-15T17:00:00Z",
		"2025-03-15T17:00:00+02:00",
		"2025-03-15T17:00:00",
		"2025-03-15T17:00",
	}
	for _, in := range cases {
		ts, err := ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.Equal(t, 17*60, MinuteOfDay(ts), "wall clock is kept for %s", in)
	}

	_, err := ParseTimestamp("tomorrow at five")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseDue(t *testing.T) {
	ts, err := ParseDue("2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC), ts)

	ts, err = ParseDue("2025-03-15T11:30:00")
	require.NoError(t, err)
	assert.Equal(t, 11*60+30, MinuteOfDay(ts))

	_, err = ParseDue("friday")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMinutesToTimestamp(t *testing.T) {
	ref := time.Date(2025, 3, 15, 13, 37, 0, 0, time.UTC)
	got := MinutesToTimestamp(ref, 9*60+30)
	assert.Equal(t, time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC), got)
}

func TestOffsetFromReference(t *testing.T) {
	ref := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 600, OffsetFromReference(ref, time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1440, OffsetFromReference(ref, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -60, OffsetFromReference(ref, time.Date(2025, 3, 14, 23, 0, 0, 0, time.UTC)))

	// Wall clock of an offset timestamp is used without conversion.
	loc := time.FixedZone("X", 5*3600)
	assert.Equal(t, 600, OffsetFromReference(ref, time.Date(2025, 3, 15, 10, 0, 0, 0, loc)))
}

func TestDaysBetween(t *testing.T) {
	ref := time.Date(2025, 3, 15, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysBetween(ref, time.Date(2025, 3, 15, 1, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, DaysBetween(ref, time.Date(2025, 3, 16, 0, 30, 0, 0, time.UTC)))
	assert.Equal(t, -2, DaysBetween(ref, time.Date(2025, 3, 13, 12, 0, 0, 0, time.UTC)))
}

func TestResolveReferenceDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	later := time.Date(2025, 3, 20, 17, 0, 0, 0, time.UTC)
	earlier := time.Date(2025, 3, 18, 9, 0, 0, 0, time.UTC)
	explicit := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	t.Run("explicit wins", func(t *testing.T) {
		got := ResolveReferenceDate(&explicit, []*time.Time{&earlier}, now)
		assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), got)
	})
	t.Run("earliest due date", func(t *testing.T) {
		got := ResolveReferenceDate(nil, []*time.Time{nil, &later, &earlier}, now)
		assert.Equal(t, time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC), got)
	})
	t.Run("falls back to now", func(t *testing.T) {
		got := ResolveReferenceDate(nil, []*time.Time{nil}, now)
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), got)
	})
}

package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reference is a Wednesday afternoon.
var reference = time.Date(2025, time.March, 5, 14, 30, 0, 0, testLoc)

func TestParseLocalTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2025-03-07T09:30:00", at(7, 9, 30)},
		{"2025-03-07T09:30", at(7, 9, 30)},
		{"2025-03-07 09:30:00", at(7, 9, 30)},
		{"2025-03-07 09:30", at(7, 9, 30)},
		{"2025-03-07", at(7, 0, 0)},
		{"  2025-03-07 09:30  ", at(7, 9, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLocalTime(tt.input, testLoc)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
			assert.Equal(t, testLoc, got.Location())
		})
	}
}

func TestParseLocalTime_Unparseable(t *testing.T) {
	for _, input := range []string{"", "not a date", "07/03/2025", "2025-03-07T09"} {
		_, err := ParseLocalTime(input, testLoc)
		assert.ErrorIs(t, err, ErrAmbiguousInput, "input %q", input)
	}
}

func TestResolveDate(t *testing.T) {
	tests := []struct {
		fragment string
		want     time.Time
	}{
		{"today", at(5, 0, 0)},
		{"tomorrow", at(6, 0, 0)},
		{"2025-03-20", at(20, 0, 0)},
		{"this friday", at(7, 0, 0)},
		{"this wednesday", at(5, 0, 0)}, // today counts
		{"next friday", at(14, 0, 0)},   // a week beyond "this friday"
		{"next wednesday", at(12, 0, 0)},
		{"next thursday", at(13, 0, 0)},
		{"This Friday", at(7, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			got, err := ResolveDate(reference, tt.fragment)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestResolveDate_Ambiguous(t *testing.T) {
	// A bare weekday has no implied direction; the caller must re-prompt.
	for _, fragment := range []string{"friday", "Monday", "", "someday", "last friday"} {
		_, err := ResolveDate(reference, fragment)
		assert.ErrorIs(t, err, ErrAmbiguousInput, "fragment %q", fragment)
	}
}

func TestResolveWindow(t *testing.T) {
	w, err := ResolveWindow(reference, "2025-03-07", "2025-03-08", time.Hour)
	require.NoError(t, err)

	// A date-only end bound covers the whole end day.
	assert.True(t, at(7, 0, 0).Equal(w.Start))
	assert.True(t, at(9, 0, 0).Equal(w.End))
	assert.Equal(t, time.Hour, w.Duration)
}

func TestResolveWindow_ExplicitTimes(t *testing.T) {
	w, err := ResolveWindow(reference, "2025-03-07 09:00", "2025-03-07 17:00", 30*time.Minute)
	require.NoError(t, err)

	assert.True(t, at(7, 9, 0).Equal(w.Start))
	assert.True(t, at(7, 17, 0).Equal(w.End))
}

func TestResolveWindow_RelativeFragments(t *testing.T) {
	w, err := ResolveWindow(reference, "tomorrow", "this friday", time.Hour)
	require.NoError(t, err)

	assert.True(t, at(6, 0, 0).Equal(w.Start))
	assert.True(t, at(8, 0, 0).Equal(w.End))
}

func TestResolveWindow_Errors(t *testing.T) {
	_, err := ResolveWindow(reference, "friday", "2025-03-08", time.Hour)
	assert.ErrorIs(t, err, ErrAmbiguousInput)

	_, err = ResolveWindow(reference, "2025-03-08", "2025-03-07", time.Hour)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = ResolveWindow(reference, "2025-03-07", "2025-03-08", 0)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestResolveCandidate(t *testing.T) {
	ivl, err := ResolveCandidate(reference, "2025-03-07 10:15", "2025-03-07 10:45")
	require.NoError(t, err)

	assert.True(t, at(7, 10, 15).Equal(ivl.Start))
	assert.True(t, at(7, 10, 45).Equal(ivl.End))

	_, err = ResolveCandidate(reference, "2025-03-07 10:45", "2025-03-07 10:15")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = ResolveCandidate(reference, "whenever", "2025-03-07 10:15")
	assert.ErrorIs(t, err, ErrAmbiguousInput)
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 30}, tod)
	assert.Equal(t, "09:30", tod.String())

	for _, input := range []string{"", "nine", "25:00", "09:75"} {
		_, err := ParseTimeOfDay(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestPreferenceHours(t *testing.T) {
	tests := []struct {
		preference string
		open       int
		close      int
	}{
		{"morning", 8, 12},
		{"afternoon", 12, 17},
		{"evening", 17, 20},
		{"anytime", 8, 18},
		{"", 8, 18},
	}

	for _, tt := range tests {
		t.Run(tt.preference, func(t *testing.T) {
			hours, err := PreferenceHours(tt.preference)
			require.NoError(t, err)
			assert.Equal(t, tt.open, hours.Open.Hour)
			assert.Equal(t, tt.close, hours.Close.Hour)
		})
	}

	_, err := PreferenceHours("midnight")
	assert.Error(t, err)
}

package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpandRuleDaily(t *testing.T) {
	// 2024-01-01 is a Monday
	seriesStart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	seriesEnd := seriesStart.Add(time.Hour)

	tests := []struct {
		name        string
		rule        *RecurrenceRule
		windowStart time.Time
		windowEnd   time.Time
		expected    []time.Time
	}{
		{
			name:        "Daily with count 5 yields 5 occurrences 24h apart",
			rule:        &RecurrenceRule{Freq: FrequencyDaily, Interval: 1, Count: intPtr(5)},
			windowStart: seriesStart,
			windowEnd:   seriesStart.AddDate(0, 0, 30),
			expected: []time.Time{
				seriesStart,
				seriesStart.AddDate(0, 0, 1),
				seriesStart.AddDate(0, 0, 2),
				seriesStart.AddDate(0, 0, 3),
				seriesStart.AddDate(0, 0, 4),
			},
		},
		{
			name:        "Daily interval 3 over a 10-day window",
			rule:        &RecurrenceRule{Freq: FrequencyDaily, Interval: 3},
			windowStart: seriesStart,
			windowEnd:   seriesStart.AddDate(0, 0, 9).Add(3 * time.Hour),
			expected: []time.Time{
				seriesStart,
				seriesStart.AddDate(0, 0, 3),
				seriesStart.AddDate(0, 0, 6),
				seriesStart.AddDate(0, 0, 9),
			},
		},
		{
			name: "Until is inclusive of its calendar date",
			rule: &RecurrenceRule{
				Freq:     FrequencyDaily,
				Interval: 1,
				Until:    timePtr(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)),
			},
			windowStart: seriesStart,
			windowEnd:   seriesStart.AddDate(0, 0, 30),
			expected: []time.Time{
				seriesStart,
				seriesStart.AddDate(0, 0, 1),
				seriesStart.AddDate(0, 0, 2),
				seriesStart.AddDate(0, 0, 3),
				seriesStart.AddDate(0, 0, 4),
			},
		},
		{
			name: "Count applies to the whole series, not the window",
			rule: &RecurrenceRule{Freq: FrequencyDaily, Interval: 1, Count: intPtr(5)},
			// The first three matches fall before the window and are
			// counted without being emitted.
			windowStart: seriesStart.AddDate(0, 0, 3),
			windowEnd:   seriesStart.AddDate(0, 0, 30),
			expected: []time.Time{
				seriesStart.AddDate(0, 0, 3),
				seriesStart.AddDate(0, 0, 4),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occurrences, err := ExpandRule(seriesStart, seriesEnd, tt.rule, tt.windowStart, tt.windowEnd)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, startsOf(occurrences))
			for _, occ := range occurrences {
				assert.Equal(t, time.Hour, occ.End.Sub(occ.Start), "instance must preserve the series duration")
			}
		})
	}
}

func TestExpandRuleWeeklyByDay(t *testing.T) {
	// Monday, Wednesday, Friday over a 14-day window starting Monday
	seriesStart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	seriesEnd := seriesStart.Add(30 * time.Minute)
	rule := &RecurrenceRule{Freq: FrequencyWeekly, Interval: 1, ByDay: []int64{1, 3, 5}}

	occurrences, err := ExpandRule(seriesStart, seriesEnd, rule, seriesStart, seriesStart.AddDate(0, 0, 13).Add(12*time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, []time.Time{
		seriesStart,                // Mon Jan 1
		seriesStart.AddDate(0, 0, 2),  // Wed Jan 3
		seriesStart.AddDate(0, 0, 4),  // Fri Jan 5
		seriesStart.AddDate(0, 0, 7),  // Mon Jan 8
		seriesStart.AddDate(0, 0, 9),  // Wed Jan 10
		seriesStart.AddDate(0, 0, 11), // Fri Jan 12
	}, startsOf(occurrences))
}

func TestExpandRuleExceptions(t *testing.T) {
	seriesStart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	seriesEnd := seriesStart.Add(time.Hour)

	t.Run("Excluded date is dropped from the expansion", func(t *testing.T) {
		rule := &RecurrenceRule{
			Freq:     FrequencyWeekly,
			Interval: 1,
			ByDay:    []int64{1, 3, 5},
			Exceptions: []RecurrenceException{
				{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)}, // second Wednesday
			},
		}

		occurrences, err := ExpandRule(seriesStart, seriesEnd, rule, seriesStart, seriesStart.AddDate(0, 0, 13).Add(12*time.Hour))

		assert.NoError(t, err)
		assert.Len(t, occurrences, 5)
		for _, occ := range occurrences {
			assert.NotEqual(t, 10, occ.Start.Day(), "the excluded day must not be emitted")
		}
	})

	t.Run("Excluded date does not consume the count", func(t *testing.T) {
		rule := &RecurrenceRule{
			Freq:     FrequencyDaily,
			Interval: 1,
			Count:    intPtr(3),
			Exceptions: []RecurrenceException{
				{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
			},
		}

		occurrences, err := ExpandRule(seriesStart, seriesEnd, rule, seriesStart, seriesStart.AddDate(0, 0, 30))

		assert.NoError(t, err)
		assert.Equal(t, []time.Time{
			seriesStart,
			seriesStart.AddDate(0, 0, 2),
			seriesStart.AddDate(0, 0, 3),
		}, startsOf(occurrences))
	})
}

func TestExpandRuleMonthlyShortMonths(t *testing.T) {
	// A series anchored to the 31st skips months without a 31st.
	seriesStart := time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)
	seriesEnd := seriesStart.Add(time.Hour)
	rule := &RecurrenceRule{Freq: FrequencyMonthly, Interval: 1}

	occurrences, err := ExpandRule(seriesStart, seriesEnd, rule, seriesStart, time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.Equal(t, []time.Time{
		time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 31, 9, 0, 0, 0, time.UTC),
	}, startsOf(occurrences))
}

func TestExpandRuleGenerationCap(t *testing.T) {
	seriesStart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	seriesEnd := seriesStart.Add(time.Hour)
	rule := &RecurrenceRule{Freq: FrequencyDaily, Interval: 1}

	occurrences, err := ExpandRule(seriesStart, seriesEnd, rule, seriesStart, seriesStart.AddDate(50, 0, 0))

	assert.ErrorIs(t, err, ErrGenerationCapped)
	assert.Len(t, occurrences, 1000, "partial results up to the cap are still returned")
}

func TestExpandRuleDegenerateInputs(t *testing.T) {
	seriesStart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	seriesEnd := seriesStart.Add(time.Hour)
	window := seriesStart.AddDate(0, 0, 30)

	t.Run("Nil rule expands to nothing", func(t *testing.T) {
		occurrences, err := ExpandRule(seriesStart, seriesEnd, nil, seriesStart, window)
		assert.NoError(t, err)
		assert.Empty(t, occurrences)
	})

	t.Run("Window entirely before the series start", func(t *testing.T) {
		rule := &RecurrenceRule{Freq: FrequencyDaily, Interval: 1}
		occurrences, err := ExpandRule(seriesStart, seriesEnd, rule, seriesStart.AddDate(0, 0, -20), seriesStart.AddDate(0, 0, -10))
		assert.NoError(t, err)
		assert.Empty(t, occurrences)
	})

	t.Run("Unknown frequency expands to nothing", func(t *testing.T) {
		rule := &RecurrenceRule{Freq: Frequency("Hourly"), Interval: 1}
		occurrences, err := ExpandRule(seriesStart, seriesEnd, rule, seriesStart, window)
		assert.NoError(t, err)
		assert.Empty(t, occurrences)
	})
}

func startsOf(occurrences []Occurrence) []time.Time {
	starts := make([]time.Time, 0, len(occurrences))
	for _, occ := range occurrences {
		starts = append(starts, occ.Start)
	}
	return starts
}

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }

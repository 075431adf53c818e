package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		rule     *RecurrenceRule
		expected string
	}{
		{
			name:     "Nil rule does not repeat",
			rule:     nil,
			expected: "Does not repeat",
		},
		{
			name:     "Unknown frequency does not repeat",
			rule:     &RecurrenceRule{Freq: Frequency("Hourly"), Interval: 1},
			expected: "Does not repeat",
		},
		{
			name:     "Daily interval 1",
			rule:     &RecurrenceRule{Freq: FrequencyDaily, Interval: 1},
			expected: "Daily",
		},
		{
			name:     "Daily with interval and count",
			rule:     &RecurrenceRule{Freq: FrequencyDaily, Interval: 2, Count: intPtr(10)},
			expected: "Every 2 days, 10 times",
		},
		{
			name:     "Weekly interval 1 without by_day",
			rule:     &RecurrenceRule{Freq: FrequencyWeekly, Interval: 1},
			expected: "Weekly",
		},
		{
			name:     "Weekly with interval and weekday names",
			rule:     &RecurrenceRule{Freq: FrequencyWeekly, Interval: 2, ByDay: []int64{1, 3}},
			expected: "Every 2 weeks on Monday, Wednesday",
		},
		{
			name:     "Monthly on a single day",
			rule:     &RecurrenceRule{Freq: FrequencyMonthly, Interval: 1, ByMonthDay: []int64{15}},
			expected: "Monthly on day 15",
		},
		{
			name:     "Monthly on several days with interval",
			rule:     &RecurrenceRule{Freq: FrequencyMonthly, Interval: 2, ByMonthDay: []int64{1, 15}},
			expected: "Every 2 months on days 1, 15",
		},
		{
			name:     "Yearly with month names",
			rule:     &RecurrenceRule{Freq: FrequencyYearly, Interval: 1, ByMonth: []int64{3, 6}},
			expected: "Yearly in March, June",
		},
		{
			name: "Yearly with months and days",
			rule: &RecurrenceRule{
				Freq:       FrequencyYearly,
				Interval:   1,
				ByMonth:    []int64{12},
				ByMonthDay: []int64{24},
			},
			expected: "Yearly in December on day 24",
		},
		{
			name: "Until renders as a formatted date",
			rule: &RecurrenceRule{
				Freq:     FrequencyDaily,
				Interval: 1,
				Until:    timePtr(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)),
			},
			expected: "Daily, until Jun 30, 2025",
		},
		{
			name: "Count wins over until when both are set",
			rule: &RecurrenceRule{
				Freq:     FrequencyWeekly,
				Interval: 1,
				Count:    intPtr(4),
				Until:    timePtr(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)),
			},
			expected: "Weekly, 4 times",
		},
		{
			name:     "Out-of-range weekday values are ignored",
			rule:     &RecurrenceRule{Freq: FrequencyWeekly, Interval: 1, ByDay: []int64{1, 9}},
			expected: "Weekly on Monday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Describe(tt.rule))
		})
	}
}

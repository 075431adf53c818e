package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalendarEventValidate(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   CalendarEvent
		wantErr bool
	}{
		{
			name:    "Valid event",
			event:   CalendarEvent{Title: "Standup", StartTime: start, EndTime: start.Add(time.Hour)},
			wantErr: false,
		},
		{
			name:    "Missing title",
			event:   CalendarEvent{StartTime: start, EndTime: start.Add(time.Hour)},
			wantErr: true,
		},
		{
			name:    "End before start",
			event:   CalendarEvent{Title: "Standup", StartTime: start, EndTime: start.Add(-time.Hour)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecurrenceRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    RecurrenceRule
		wantErr bool
	}{
		{
			name:    "Valid weekly rule",
			rule:    RecurrenceRule{Freq: FrequencyWeekly, Interval: 1, ByDay: []int64{1, 5}},
			wantErr: false,
		},
		{
			name:    "Unknown frequency",
			rule:    RecurrenceRule{Freq: Frequency("Hourly"), Interval: 1},
			wantErr: true,
		},
		{
			name:    "Zero interval",
			rule:    RecurrenceRule{Freq: FrequencyDaily, Interval: 0},
			wantErr: true,
		},
		{
			name:    "Weekday out of range",
			rule:    RecurrenceRule{Freq: FrequencyWeekly, Interval: 1, ByDay: []int64{7}},
			wantErr: true,
		},
		{
			name:    "Month day out of range",
			rule:    RecurrenceRule{Freq: FrequencyMonthly, Interval: 1, ByMonthDay: []int64{32}},
			wantErr: true,
		},
		{
			name:    "Month out of range",
			rule:    RecurrenceRule{Freq: FrequencyYearly, Interval: 1, ByMonth: []int64{13}},
			wantErr: true,
		},
		{
			name:    "Non-positive count",
			rule:    RecurrenceRule{Freq: FrequencyDaily, Interval: 1, Count: intPtr(0)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCalendarEventDuration(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	event := CalendarEvent{StartTime: start, EndTime: start.Add(90 * time.Minute)}

	assert.Equal(t, 90*time.Minute, event.Duration())
}

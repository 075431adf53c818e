package calendar

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
	FrequencyYearly  Frequency = "Yearly"
)

type EventStatus string

const (
	EventStatusConfirmed EventStatus = "Confirmed"
	EventStatusTentative EventStatus = "Tentative"
	EventStatusCancelled EventStatus = "Cancelled"
)

type Visibility string

const (
	VisibilityDefault Visibility = "Default"
	VisibilityPublic  Visibility = "Public"
	VisibilityPrivate Visibility = "Private"
)

type ResponseStatus string

const (
	ResponseNeedsAction ResponseStatus = "NeedsAction"
	ResponseAccepted    ResponseStatus = "Accepted"
	ResponseDeclined    ResponseStatus = "Declined"
	ResponseTentative   ResponseStatus = "Tentative"
)

type ReminderMethod string

const (
	ReminderMethodEmail ReminderMethod = "Email"
	ReminderMethodPush  ReminderMethod = "Push"
	ReminderMethodSMS   ReminderMethod = "SMS"
)

// CalendarEvent is either a series root (ParentEventID nil, may own a
// RecurrenceRule) or a materialized instance pointing back at its root.
// The unique index on (parent_event_id, start_time) makes concurrent
// materialization of the same occurrence a no-op for the loser.
type CalendarEvent struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ParentEventID *uuid.UUID     `json:"parent_event_id,omitempty" gorm:"type:uuid;index:idx_event_instance_slot,unique"`
	CreatorID     uuid.UUID      `json:"creator_id" gorm:"type:uuid;not null;index:idx_calendar_event_creator"`
	Title         string         `json:"title" gorm:"type:varchar(255);not null"`
	Description   string         `json:"description" gorm:"type:text"`
	Location      string         `json:"location,omitempty" gorm:"type:varchar(255)"`
	Color         string         `json:"color,omitempty" gorm:"type:varchar(7)"`
	Category      string         `json:"category,omitempty" gorm:"type:varchar(100)"`
	Status        EventStatus    `json:"status" gorm:"type:varchar(20);not null;default:'Confirmed'"`
	Visibility    Visibility     `json:"visibility" gorm:"type:varchar(20);not null;default:'Default'"`
	Metadata      datatypes.JSON `json:"metadata,omitempty"`
	StartTime     time.Time      `json:"start_time" gorm:"not null;index:idx_event_instance_slot,unique;index:idx_calendar_event_start"`
	EndTime       time.Time      `json:"end_time" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt     time.Time      `json:"updated_at" gorm:"not null;default:current_timestamp"`

	// Relationships (for preload)
	Rule      *RecurrenceRule `json:"rule,omitempty" gorm:"foreignKey:EventID"`
	Attendees []EventAttendee `json:"attendees,omitempty" gorm:"foreignKey:EventID"`
	Reminders []EventReminder `json:"reminders,omitempty" gorm:"foreignKey:EventID"`
}

// Duration is preserved across every materialized instance.
func (e *CalendarEvent) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// RecurrenceRule describes how a series root repeats. Exactly one rule
// per series; instances never own a rule. ByDay uses 0=Sunday..6,
// ByMonthDay 1..31, ByMonth 1..12.
type RecurrenceRule struct {
	ID         uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	EventID    uuid.UUID     `json:"event_id" gorm:"type:uuid;not null;uniqueIndex:idx_rule_event"`
	Freq       Frequency     `json:"freq" gorm:"type:varchar(20);not null"`
	Interval   int           `json:"interval" gorm:"not null;default:1"`
	ByDay      pq.Int64Array `json:"by_day,omitempty" gorm:"type:integer[]"`
	ByMonthDay pq.Int64Array `json:"by_month_day,omitempty" gorm:"type:integer[]"`
	ByMonth    pq.Int64Array `json:"by_month,omitempty" gorm:"type:integer[]"`
	Count      *int          `json:"count,omitempty"`
	Until      *time.Time    `json:"until,omitempty"`
	CreatedAt  time.Time     `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt  time.Time     `json:"updated_at" gorm:"not null;default:current_timestamp"`

	Exceptions []RecurrenceException `json:"exceptions,omitempty" gorm:"foreignKey:RuleID"`
}

// RecurrenceException excludes one calendar day from a series even when
// it would otherwise match the pattern.
type RecurrenceException struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	RuleID    uuid.UUID `json:"rule_id" gorm:"type:uuid;not null;index:idx_exception_rule"`
	Date      time.Time `json:"date" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:current_timestamp"`
}

// EventAttendee represents one invited user (or team) on an event.
type EventAttendee struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	EventID        uuid.UUID      `json:"event_id" gorm:"type:uuid;not null;index:idx_attendee_event"`
	UserID         uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index:idx_attendee_user"`
	TeamID         *uuid.UUID     `json:"team_id,omitempty" gorm:"type:uuid"`
	IsOrganizer    bool           `json:"is_organizer" gorm:"not null;default:false"`
	ResponseStatus ResponseStatus `json:"response_status" gorm:"type:varchar(20);not null;default:'NeedsAction'"`
	CreatedAt      time.Time      `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

// EventReminder represents a reminder offset for an event.
type EventReminder struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	EventID       uuid.UUID      `json:"event_id" gorm:"type:uuid;not null;index:idx_reminder_event"`
	MinutesBefore int            `json:"minutes_before" gorm:"not null"`
	Method        ReminderMethod `json:"method" gorm:"type:varchar(20);not null;default:'Push'"`
	CreatedAt     time.Time      `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt     time.Time      `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table names for each model
func (CalendarEvent) TableName() string       { return "calendar_events" }
func (RecurrenceRule) TableName() string      { return "recurrence_rules" }
func (RecurrenceException) TableName() string { return "recurrence_exceptions" }
func (EventAttendee) TableName() string       { return "event_attendees" }
func (EventReminder) TableName() string       { return "event_reminders" }

// BeforeCreate hooks for UUID generation
func (e *CalendarEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (r *RecurrenceRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (x *RecurrenceException) BeforeCreate(tx *gorm.DB) error {
	if x.ID == uuid.Nil {
		x.ID = uuid.New()
	}
	return nil
}

func (a *EventAttendee) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (r *EventReminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Common errors
var (
	ErrEventNotFound     = NewError("calendar event not found")
	ErrRuleNotFound      = NewError("event has no recurrence rule")
	ErrInvalidTimeRange  = NewError("end time must be after start time")
	ErrInvalidRecurrence = NewError("invalid recurrence configuration")
)

// Error type
type Error struct {
	message string
}

func NewError(message string) *Error {
	return &Error{message: message}
}

func (e *Error) Error() string {
	return e.message
}

// Validation methods
func (e *CalendarEvent) Validate() error {
	if e.Title == "" {
		return NewError("title is required")
	}
	if e.StartTime.After(e.EndTime) {
		return ErrInvalidTimeRange
	}
	return nil
}

func (r *RecurrenceRule) Validate() error {
	if !isValidFrequency(r.Freq) {
		return ErrInvalidRecurrence
	}
	if r.Interval < 1 {
		return NewError("interval must be at least 1")
	}
	for _, d := range r.ByDay {
		if d < 0 || d > 6 {
			return NewError("by_day values must be between 0 (Sunday) and 6 (Saturday)")
		}
	}
	for _, d := range r.ByMonthDay {
		if d < 1 || d > 31 {
			return NewError("by_month_day values must be between 1 and 31")
		}
	}
	for _, m := range r.ByMonth {
		if m < 1 || m > 12 {
			return NewError("by_month values must be between 1 and 12")
		}
	}
	if r.Count != nil && *r.Count < 1 {
		return NewError("count must be at least 1")
	}
	return nil
}

func (r *EventReminder) Validate() error {
	if r.MinutesBefore < 0 {
		return NewError("minutes_before must not be negative")
	}
	return nil
}

func isValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

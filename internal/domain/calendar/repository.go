package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface defines the event-store access the engine needs
type Repository interface {
	// GetEventWithRule loads a series root with its rule (including
	// exceptions), attendees and reminders.
	GetEventWithRule(ctx context.Context, id uuid.UUID) (*CalendarEvent, error)

	// FindChildrenByStartTimes returns the already-materialized
	// instances of a parent whose start time is in the given set.
	FindChildrenByStartTimes(ctx context.Context, parentID uuid.UUID, startTimes []time.Time) ([]CalendarEvent, error)

	// ListRecurringSeries returns the ids of every series root that
	// owns a recurrence rule.
	ListRecurringSeries(ctx context.Context) ([]uuid.UUID, error)

	BeginTransaction(ctx context.Context) Transaction
}

// Transaction scopes the writes for one materialized instance
type Transaction interface {
	Commit() error
	Rollback() error
	CreateEvent(event *CalendarEvent) error
	CreateAttendees(attendees []EventAttendee) error
	CreateReminders(reminders []EventReminder) error
}

// repository implements the Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new calendar repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetEventWithRule(ctx context.Context, id uuid.UUID) (*CalendarEvent, error) {
	var event CalendarEvent
	err := r.db.WithContext(ctx).
		Preload("Rule").
		Preload("Rule.Exceptions").
		Preload("Attendees").
		Preload("Reminders").
		First(&event, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) FindChildrenByStartTimes(ctx context.Context, parentID uuid.UUID, startTimes []time.Time) ([]CalendarEvent, error) {
	if len(startTimes) == 0 {
		return nil, nil
	}
	var events []CalendarEvent
	err := r.db.WithContext(ctx).
		Where("parent_event_id = ? AND start_time IN ?", parentID, startTimes).
		Find(&events).Error
	return events, err
}

func (r *repository) ListRecurringSeries(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&RecurrenceRule{}).
		Joins("JOIN calendar_events ON calendar_events.id = recurrence_rules.event_id").
		Where("calendar_events.parent_event_id IS NULL").
		Pluck("recurrence_rules.event_id", &ids).Error
	return ids, err
}

func (r *repository) BeginTransaction(ctx context.Context) Transaction {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil
	}
	return &transaction{tx: tx}
}

type transaction struct {
	tx *gorm.DB
}

func (t *transaction) Commit() error {
	return t.tx.Commit().Error
}

func (t *transaction) Rollback() error {
	return t.tx.Rollback().Error
}

func (t *transaction) CreateEvent(event *CalendarEvent) error {
	return t.tx.Create(event).Error
}

func (t *transaction) CreateAttendees(attendees []EventAttendee) error {
	if len(attendees) == 0 {
		return nil
	}
	return t.tx.Create(&attendees).Error
}

func (t *transaction) CreateReminders(reminders []EventReminder) error {
	if len(reminders) == 0 {
		return nil
	}
	return t.tx.Create(&reminders).Error
}

package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cadenza-app/cadenza/internal/domain/events"
	"github.com/cadenza-app/cadenza/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service defines the recurrence engine operations exposed to callers
type Service interface {
	// GenerateInstances expands a series' rule over the window without
	// persisting anything.
	GenerateInstances(ctx context.Context, parentEventID uuid.UUID, windowStart, windowEnd time.Time) ([]Occurrence, error)

	// CreateRecurringInstances materializes the occurrences in the
	// window that do not exist yet and returns how many were created.
	CreateRecurringInstances(ctx context.Context, parentEventID uuid.UUID, windowStart, windowEnd time.Time) (int, error)

	// MaterializeUpcoming materializes every recurring series over
	// [now, now+horizon]. Called by the scheduler.
	MaterializeUpcoming(ctx context.Context, horizon time.Duration) (int, error)

	// DescribeRule renders a rule as a human-readable sentence.
	DescribeRule(rule *RecurrenceRule) string
}

type service struct {
	repo   Repository
	redis  *cache.RedisClient
	logger *zap.Logger
}

// NewService creates a new recurrence engine instance
func NewService(repo Repository, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &service{repo: repo, redis: redis, logger: logger}
}

func (s *service) GenerateInstances(ctx context.Context, parentEventID uuid.UUID, windowStart, windowEnd time.Time) ([]Occurrence, error) {
	parent, err := s.getSeriesRoot(ctx, parentEventID)
	if err != nil {
		return nil, err
	}
	return s.expand(parent, windowStart, windowEnd), nil
}

func (s *service) CreateRecurringInstances(ctx context.Context, parentEventID uuid.UUID, windowStart, windowEnd time.Time) (int, error) {
	parent, err := s.getSeriesRoot(ctx, parentEventID)
	if err != nil {
		return 0, err
	}

	occurrences := s.expand(parent, windowStart, windowEnd)
	if len(occurrences) == 0 {
		return 0, nil
	}

	created, err := s.materialize(ctx, parent, occurrences)
	if created > 0 {
		instancesCreated.Add(float64(created))
		s.publishSync(ctx, parent.ID, created)
	}
	return created, err
}

func (s *service) MaterializeUpcoming(ctx context.Context, horizon time.Duration) (int, error) {
	seriesIDs, err := s.repo.ListRecurringSeries(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list recurring series: %w", err)
	}

	now := time.Now().UTC()
	windowEnd := now.Add(horizon)

	total := 0
	var errs []error
	for _, id := range seriesIDs {
		created, err := s.CreateRecurringInstances(ctx, id, now, windowEnd)
		total += created
		if err != nil {
			s.logger.Error("Failed to materialize series",
				zap.String("parent_event_id", id.String()),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}
	return total, errors.Join(errs...)
}

func (s *service) DescribeRule(rule *RecurrenceRule) string {
	return Describe(rule)
}

// getSeriesRoot loads the parent event and insists on a rule being
// present: callers asking to expand a non-recurring event is a caller
// bug, not an empty result.
func (s *service) getSeriesRoot(ctx context.Context, id uuid.UUID) (*CalendarEvent, error) {
	event, err := s.repo.GetEventWithRule(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrEventNotFound, id)
		}
		return nil, err
	}
	if event.Rule == nil {
		return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	}
	return event, nil
}

// expand runs the scanner and absorbs the safety cap into a warning:
// callers still get the partial result.
func (s *service) expand(parent *CalendarEvent, windowStart, windowEnd time.Time) []Occurrence {
	occurrences, err := ExpandRule(parent.StartTime, parent.EndTime, parent.Rule, windowStart, windowEnd)
	if err != nil {
		generationCapHits.Inc()
		s.logger.Warn("Occurrence generation stopped at safety cap",
			zap.String("parent_event_id", parent.ID.String()),
			zap.Int("occurrences", len(occurrences)),
			zap.Time("window_start", windowStart),
			zap.Time("window_end", windowEnd),
		)
	}
	occurrencesGenerated.Add(float64(len(occurrences)))
	return occurrences
}

// materialize creates the instances that do not exist yet. Each
// instance and its cloned attendee/reminder rows are one transaction;
// across instances the batch is best-effort, so one bad slot never
// blocks its siblings. A duplicate-key failure means a concurrent
// materializer already created the slot and counts as success-by-other.
func (s *service) materialize(ctx context.Context, parent *CalendarEvent, occurrences []Occurrence) (int, error) {
	starts := make([]time.Time, len(occurrences))
	for i, occ := range occurrences {
		starts[i] = occ.Start
	}

	existing, err := s.repo.FindChildrenByStartTimes(ctx, parent.ID, starts)
	if err != nil {
		return 0, fmt.Errorf("failed to load existing instances: %w", err)
	}
	taken := make(map[int64]bool, len(existing))
	for _, child := range existing {
		taken[child.StartTime.UTC().Unix()] = true
	}

	created := 0
	var errs []error
	for _, occ := range occurrences {
		if taken[occ.Start.UTC().Unix()] {
			continue
		}
		if err := s.createInstance(ctx, parent, occ); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			materializeFailures.Inc()
			s.logger.Error("Failed to create event instance",
				zap.String("parent_event_id", parent.ID.String()),
				zap.Time("start_time", occ.Start),
				zap.Error(err),
			)
			errs = append(errs, err)
			continue
		}
		created++
	}
	return created, errors.Join(errs...)
}

func (s *service) createInstance(ctx context.Context, parent *CalendarEvent, occ Occurrence) error {
	tx := s.repo.BeginTransaction(ctx)
	if tx == nil {
		return fmt.Errorf("failed to start transaction")
	}
	defer tx.Rollback()

	instance := cloneForOccurrence(parent, occ)
	if err := tx.CreateEvent(instance); err != nil {
		return err
	}

	attendees := make([]EventAttendee, 0, len(parent.Attendees))
	for _, a := range parent.Attendees {
		attendees = append(attendees, EventAttendee{
			EventID:     instance.ID,
			UserID:      a.UserID,
			TeamID:      a.TeamID,
			IsOrganizer: a.IsOrganizer,
			// Each instance is a fresh invitation, not a copy of the
			// root's RSVP history.
			ResponseStatus: ResponseNeedsAction,
		})
	}
	if err := tx.CreateAttendees(attendees); err != nil {
		return err
	}

	reminders := make([]EventReminder, 0, len(parent.Reminders))
	for _, r := range parent.Reminders {
		reminders = append(reminders, EventReminder{
			EventID:       instance.ID,
			MinutesBefore: r.MinutesBefore,
			Method:        r.Method,
		})
	}
	if err := tx.CreateReminders(reminders); err != nil {
		return err
	}

	return tx.Commit()
}

// cloneForOccurrence copies the root's display fields onto a new
// instance. Instances never carry a rule of their own.
func cloneForOccurrence(parent *CalendarEvent, occ Occurrence) *CalendarEvent {
	parentID := parent.ID
	return &CalendarEvent{
		ParentEventID: &parentID,
		CreatorID:     parent.CreatorID,
		Title:         parent.Title,
		Description:   parent.Description,
		Location:      parent.Location,
		Color:         parent.Color,
		Category:      parent.Category,
		Status:        parent.Status,
		Visibility:    parent.Visibility,
		Metadata:      parent.Metadata,
		StartTime:     occ.Start,
		EndTime:       occ.End,
	}
}

func (s *service) publishSync(ctx context.Context, parentID uuid.UUID, created int) {
	if s.redis == nil {
		return
	}
	event := &events.CalendarSyncEvent{
		Action:        events.ActionInstancesMaterialized,
		ParentEventID: parentID,
		InstanceCount: created,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.redis.PublishCalendarSyncEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish calendar sync event", zap.Error(err))
	}
}

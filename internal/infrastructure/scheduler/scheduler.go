package scheduler

import (
	"context"
	"time"

	"github.com/cadenza-app/cadenza/internal/domain/calendar"
	"github.com/cadenza-app/cadenza/pkg/logger"
	"go.uber.org/zap"
)

// Scheduler keeps recurring series materialized over a rolling horizon.
type Scheduler struct {
	calendarService calendar.Service
	horizon         time.Duration
	interval        time.Duration
	logger          *logger.Logger
}

func NewScheduler(calendarService calendar.Service, horizon, interval time.Duration, logger *logger.Logger) *Scheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Scheduler{
		calendarService: calendarService,
		horizon:         horizon,
		interval:        interval,
		logger:          logger,
	}
}

func (s *Scheduler) Start() {
	// Run immediately at startup
	s.runMaterialization()

	// Calculate time until next midnight
	now := time.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	timeUntilMidnight := nextMidnight.Sub(now)

	s.logger.Info("Materialization scheduler initialized",
		zap.Time("current_time", now),
		zap.Time("next_run", nextMidnight),
		zap.Duration("horizon", s.horizon),
	)

	go func() {
		// Wait until first midnight
		time.Sleep(timeUntilMidnight)
		s.runMaterialization()

		ticker := time.NewTicker(s.interval)
		for range ticker.C {
			s.runMaterialization()
		}
	}()
}

func (s *Scheduler) runMaterialization() {
	ctx := context.Background()
	startTime := time.Now()

	s.logger.Info("Starting recurring instance materialization", zap.Time("start_time", startTime))

	created, err := s.calendarService.MaterializeUpcoming(ctx, s.horizon)
	if err != nil {
		// Partial failures still materialized siblings; log and keep
		// the count honest.
		s.logger.Error("Materialization finished with errors",
			zap.Int("created", created),
			zap.Error(err),
		)
	} else {
		s.logger.Info("Successfully materialized recurring instances",
			zap.Int("created", created),
		)
	}

	s.logger.Info("Completed recurring instance materialization",
		zap.Time("end_time", time.Now()),
		zap.Duration("duration", time.Since(startTime)),
	)
}

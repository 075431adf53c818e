package events

import (
	"time"

	"github.com/google/uuid"
)

// Calendar sync actions
const (
	ActionInstancesMaterialized = "instances_materialized"
	ActionSeriesUpdated         = "series_updated"
	ActionSeriesDeleted         = "series_deleted"
)

// CalendarSyncEvent is published after materialization so downstream
// consumers (reminder dispatch, caches, UIs) can pick up new instances.
type CalendarSyncEvent struct {
	Action        string      `json:"action"`
	ParentEventID uuid.UUID   `json:"parent_event_id"`
	InstanceCount int         `json:"instance_count"`
	Timestamp     time.Time   `json:"timestamp"`
	Details       interface{} `json:"details,omitempty"`
}

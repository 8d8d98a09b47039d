// events.go defines the event types for extension notifications.
//
// Separated from extension.go to isolate the event system. Events let
// extensions react to recorded checks (alerting, export, dashboards) without
// modifying core logic.
//
// Design: Events are fire-and-forget notifications, not approval requests.
// Extensions cannot block or veto a check via events; they observe after the
// report is stored.

package extension

import "github.com/jpl-au/qgate/internal/platform"

// EventType identifies the kind of event.
type EventType string

const (
	EventReportCreate EventType = "report:create"
	EventBatchDelete  EventType = "batch:delete"
	EventBatchRestore EventType = "batch:restore"
)

// Event is the base interface for all events.
type Event interface {
	EventType() EventType
	EventBatch() string
}

// ReportEvent is fired after a check is recorded.
type ReportEvent struct {
	Batch    string
	Report   string
	Platform platform.Platform
	Passed   bool
	Issues   int
	Warnings int
	Author   string
	NewBatch bool // The batch was stored by this check
}

func (e ReportEvent) EventType() EventType { return EventReportCreate }
func (e ReportEvent) EventBatch() string   { return e.Batch }

// BatchEvent is fired after a batch is soft-deleted or restored.
type BatchEvent struct {
	Batch    string
	Restored bool // true=restored, false=deleted
}

func (e BatchEvent) EventType() EventType {
	if e.Restored {
		return EventBatchRestore
	}
	return EventBatchDelete
}
func (e BatchEvent) EventBatch() string { return e.Batch }

// EventHandler is implemented by extensions that want to receive events.
type EventHandler interface {
	HandleEvent(ctx Context, e Event) error
}

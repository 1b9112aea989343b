// Package events publishes domain change notifications keyed by store path.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const (
	TypeAttendanceSaved   = "attendance.saved"
	TypeSuperSaved        = "timesheet.supersaved"
	TypeApprovalSubmitted = "approval.submitted"
	TypeApprovalDecided   = "approval.decided"
	TypeEsiUpdated        = "esi.updated"
	TypeSalaryRevised     = "employee.salary_revised"
	TypeEmployeeUpdated   = "employee.updated"
)

// Event is a change notification. Topic is the store path that changed.
type Event struct {
	Type       string      `json:"type"`
	Topic      string      `json:"topic"`
	ActorID    string      `json:"actor_id,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func NewEvent(eventType, topic, actorID string, payload interface{}) Event {
	return Event{
		Type:       eventType,
		Topic:      topic,
		ActorID:    actorID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// Topic roots. Every topic is a root followed by path keys.
const (
	RootTimesheetSummary = "timesheetSummary"
	RootApprovals        = "attendanceApprovals"
	RootEsi              = "esi"
	RootEmployees        = "employees"
)

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

func TimesheetTopic(employeeID, month string) string {
	return fmt.Sprintf("%s/%s/%s", RootTimesheetSummary, employeeID, month)
}

func ApprovalTopic(employeeID, month string) string {
	return fmt.Sprintf("%s/%s/%s", RootApprovals, employeeID, month)
}

func EsiTopic(month string) string {
	return RootEsi + "/" + month
}

func EmployeeTopic(employeeID string) string {
	return RootEmployees + "/" + employeeID
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) error { return nil }
func (noopPublisher) Close() error                         { return nil }

type multiPublisher struct {
	publishers []Publisher
}

// NewMultiPublisher fans each event out to every publisher.
func NewMultiPublisher(publishers ...Publisher) Publisher {
	return &multiPublisher{publishers: publishers}
}

func (m *multiPublisher) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *multiPublisher) Close() error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PublishBestEffort publishes and logs failures. Events follow a committed write and
// never fail the request that produced them.
func PublishBestEffort(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event",
			"type", event.Type,
			"topic", event.Topic,
			"error", err,
		)
	}
}

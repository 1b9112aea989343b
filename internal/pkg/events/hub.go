package events

import (
	"context"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/sse"
)

type hubPublisher struct {
	hub *sse.Hub
}

// NewHubPublisher delivers events to in-process SSE subscribers of the event topic.
func NewHubPublisher(hub *sse.Hub) Publisher {
	return &hubPublisher{hub: hub}
}

func (p *hubPublisher) Publish(_ context.Context, event Event) error {
	p.hub.Publish(event.Topic, sse.Event{
		Event: event.Type,
		Data:  event,
	})
	return nil
}

func (p *hubPublisher) Close() error { return nil }

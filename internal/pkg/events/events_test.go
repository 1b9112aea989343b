package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/sse"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher(w)

	ev := NewEvent(TypeApprovalSubmitted, ApprovalTopic("E1", "2024-03"), "hr-1", map[string]string{"status": "pending"})
	require.NoError(t, p.Publish(context.Background(), ev))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "attendanceApprovals/E1/2024-03", string(msg.Key))
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, TypeApprovalSubmitted, string(msg.Headers[0].Value))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "hr-1", decoded.ActorID)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestMultiPublisher_JoinsErrors(t *testing.T) {
	boom := errors.New("broker down")
	hub := sse.NewHub()
	ch, cancel := hub.Subscribe("esi")
	defer cancel()

	p := NewMultiPublisher(NewKafkaPublisher(&recordingWriter{err: boom}), NewHubPublisher(hub), NewNoopPublisher())
	err := p.Publish(context.Background(), NewEvent(TypeEsiUpdated, EsiTopic("2024-03"), "", nil))

	assert.ErrorIs(t, err, boom)
	require.Len(t, ch, 1)
	assert.Equal(t, TypeEsiUpdated, (<-ch).Event)
}

func TestTopics(t *testing.T) {
	assert.Equal(t, "timesheetSummary/E1/2024-03", TimesheetTopic("E1", "2024-03"))
	assert.Equal(t, "esi/2024-03", EsiTopic("2024-03"))
	assert.Equal(t, "employees/E1", EmployeeTopic("E1"))
}

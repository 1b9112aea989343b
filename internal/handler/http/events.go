package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/events"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/sse"
)

type EventsHandler interface {
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// topicPermissions is the read permission a subscriber needs per topic root.
// It mirrors the REST routes serving the same data.
var topicPermissions = map[string]user.Permission{
	events.RootTimesheetSummary: user.PermissionTimesheetView,
	events.RootApprovals:        user.PermissionTimesheetView,
	events.RootEsi:              user.PermissionEsiView,
	events.RootEmployees:        user.PermissionRevisionView,
}

// canSubscribe reports whether actor may read topic. Unknown roots are denied.
func canSubscribe(actor user.Actor, topic string) bool {
	root, _, _ := strings.Cut(topic, "/")
	perm, ok := topicPermissions[root]
	return ok && actor.Can(perm)
}

type eventsHandlerImpl struct {
	hub        *sse.Hub
	jwtService jwt.Service
	keepalive  time.Duration
}

func NewEventsHandler(hub *sse.Hub, jwtService jwt.Service) EventsHandler {
	return &eventsHandlerImpl{
		hub:        hub,
		jwtService: jwtService,
		keepalive:  30 * time.Second,
	}
}

// GetSSEToken issues a short-lived token for the authenticated actor.
func (h *eventsHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	token, expiresIn, err := h.jwtService.GenerateSSEToken(actorFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, SSETokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream pushes change events for a store path and everything below it.
func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (SSE doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	actor, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	topic := strings.Trim(r.URL.Query().Get("topic"), "/")
	if topic == "" {
		response.ValidationError(w, map[string]string{"topic": "topic is required"})
		return
	}
	if !canSubscribe(actor, topic) {
		response.Forbidden(w, "You do not have permission to subscribe to this topic")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ch, cleanup := h.hub.Subscribe(topic)
	defer cleanup()
	slog.InfoContext(r.Context(), "sse subscriber connected",
		"user_id", actor.ID,
		"topic", topic,
		"topic_subscribers", h.hub.SubscriberCount(topic),
		"total_subscribers", h.hub.TotalSubscribers(),
	)

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":%q,\"topic\":%q}\n\n", actor.ID, topic)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

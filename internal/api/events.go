package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/smazurov/relaycoder/internal/api/models"
	"github.com/smazurov/relaycoder/internal/events"
)

// registerSSERoutes registers the native Huma SSE endpoint.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time event stream for service selections, profile changes, created publications and engine reloads",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"connected":        models.ConnectedData{},
		"service-selected": events.ServiceSelectedEvent{},
		"profile-changed":  events.ProfileChangedEvent{},
		"egress-created":   events.EgressCreatedEvent{},
		"skills-reloaded":  events.SkillsReloadedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 10)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.ServiceSelectedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.ProfileChangedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.EgressCreatedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.SkillsReloadedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		if err := send.Data(models.ConnectedData{
			Message:   "SSE connection established",
			Timestamp: time.Now().Format(time.RFC3339),
		}); err != nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}

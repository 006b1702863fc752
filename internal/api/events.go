package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/smazurov/mediacaps/internal/events"
)

// registerSSERoutes registers the native Huma SSE endpoint.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time stream of session, capability query and dump events",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"session-opened":     events.SessionOpenedEvent{},
		"session-closed":     events.SessionClosedEvent{},
		"caps-loaded":        events.CapsLoadedEvent{},
		"attribute-queried":  events.AttributeQueriedEvent{},
		"resolution-checked": events.ResolutionCheckedEvent{},
		"dump-written":       events.DumpWrittenEvent{},
		"config-reloaded":    events.ConfigReloadedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 10)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.SessionOpenedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.SessionClosedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.CapsLoadedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.AttributeQueriedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.ResolutionCheckedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.DumpWrittenEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.ConfigReloadedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

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

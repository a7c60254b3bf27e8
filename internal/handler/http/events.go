package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/teampulse/attendance-backend-go/internal/handler/http/response"
	"github.com/teampulse/attendance-backend-go/internal/pkg/identity"
	"github.com/teampulse/attendance-backend-go/internal/pkg/jwt"
	"github.com/teampulse/attendance-backend-go/internal/pkg/sse"
)

type EventsHandler interface {
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventsHandlerImpl struct {
	hub        *sse.Hub
	jwtService jwt.Service
}

func NewEventsHandler(hub *sse.Hub, jwtService jwt.Service) EventsHandler {
	return &eventsHandlerImpl{
		hub:        hub,
		jwtService: jwtService,
	}
}

type sseTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// GetSSEToken mints a short-lived token for the stream endpoint, which cannot
// carry an Authorization header.
func (h *eventsHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	userID, teamID, err := identity.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID, teamID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, sseTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream handles the SSE connection, fanning in the caller's user topic and
// their team topic.
func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	userID, teamID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
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

	userEvents, cleanupUser := h.hub.Subscribe(sse.UserTopic(userID))
	defer cleanupUser()
	teamEvents, cleanupTeam := h.hub.Subscribe(sse.TeamTopic(teamID))
	defer cleanupTeam()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":%d}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-userEvents:
			if !ok {
				return
			}
			writeEvent(w, flusher, event)

		case event, ok := <-teamEvents:
			if !ok {
				return
			}
			writeEvent(w, flusher, event)

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, event sse.Event) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
	flusher.Flush()
}

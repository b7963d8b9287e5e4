package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/launchboard/launchboard-backend/internal/services"
)

var upvoteUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// UpvoteFeedWebSocket streams live upvote counts for one startup, selected by
// the `id` query parameter. The feed is read-only and public: anyone viewing
// a detail page may watch the counter move.
func (h *Handler) UpvoteFeedWebSocket(w http.ResponseWriter, r *http.Request) {
	startupID := r.URL.Query().Get("id")
	if startupID == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	startup, err := h.Startups.FetchByID(ctx, startupID)
	cancel()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if startup == nil {
		http.Error(w, "Startup not found", http.StatusNotFound)
		return
	}

	conn, err := upvoteUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Snapshot first, so the client has a baseline before any events arrive.
	if err := conn.WriteJSON(services.UpvoteEvent{
		StartupID:    startupID,
		UpvotesCount: startup.UpvotesCount,
		Timestamp:    time.Now().UTC(),
	}); err != nil {
		return
	}

	eventsCh, unsubscribe := services.SubscribeUpvotes(startupID)
	defer unsubscribe()

	// Writer goroutine: forward hub events to this connection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for evt := range eventsCh {
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		}
	}()

	// Reader loop: clients send nothing meaningful; we read only to detect
	// disconnects and keep the connection alive via pongs.
	conn.SetReadLimit(1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		select {
		case <-done:
			return
		default:
		}
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	}
}

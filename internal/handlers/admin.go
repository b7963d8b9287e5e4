package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/launchboard/launchboard-backend/internal/services"
	"github.com/launchboard/launchboard-backend/internal/store"
)

// requireAdmin resolves the caller and rejects non-admins. Returns false
// after writing the error response.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	user, ok := currentUser(r)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Authentication required",
		})
		return false
	}
	if !user.IsAdmin {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Admin access required",
		})
		return false
	}
	return true
}

// GetPendingStartups returns the review queue, oldest submission first.
func (h *Handler) GetPendingStartups(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := h.Startups.FetchPending(ctx)
	if err != nil {
		http.Error(w, "Failed to fetch pending startups: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeStartupList(w, items)
}

// ApproveStartup moves a startup into the public directory.
func (h *Handler) ApproveStartup(w http.ResponseWriter, r *http.Request) {
	h.moderateStartup(w, r, h.Startups.Approve, "Startup approved")
}

// RejectStartup removes a startup from the review queue without publishing it.
func (h *Handler) RejectStartup(w http.ResponseWriter, r *http.Request) {
	h.moderateStartup(w, r, h.Startups.Reject, "Startup rejected")
}

func (h *Handler) moderateStartup(w http.ResponseWriter, r *http.Request, action func(context.Context, string) error, message string) {
	if !requireAdmin(w, r) {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Startup ID is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := action(ctx, id); err != nil {
		if err == store.ErrNotFound {
			http.Error(w, "Startup not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update startup status: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Either decision changes what the public list should show.
	services.Cache.Delete(approvedCacheKey)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": message,
	})
}

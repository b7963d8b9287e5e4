package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/launchboard/launchboard-backend/internal/models"
)

// founderFields is the whitelist of profile fields a founder may set.
// Email and createdAt are managed by the store (email from the account,
// createdAt set once).
var founderFields = map[string]bool{
	"name": true, "avatarUrl": true,
	"linkedin": true, "x": true, "instagram": true, "website": true, "otherSocial": true,
}

type FounderResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Founder *models.Founder `json:"founder,omitempty"`
}

// GetMyFounder returns the caller's founder profile, or founder:null when
// they have not completed onboarding yet.
func (h *Handler) GetMyFounder(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(FounderResponse{Success: false, Message: "Authentication required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	founder, err := h.Founders.Get(ctx, user.ID.String())
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(FounderResponse{Success: true, Founder: founder})
}

// UpsertMyFounder saves the caller's founder profile and propagates the new
// public snapshot into every startup they own.
func (h *Handler) UpsertMyFounder(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(FounderResponse{Success: false, Message: "Authentication required"})
		return
	}
	uid := user.ID.String()

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	partial := bson.M{}
	for k, v := range body {
		if founderFields[k] {
			partial[k] = v
		}
	}
	// The profile email always mirrors the account email; the store keeps
	// the stored value when an update omits it.
	partial["email"] = user.Email

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.Founders.Upsert(ctx, uid, partial); err != nil {
		http.Error(w, "Failed to save profile: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.Sync.SyncOwnerProfile(ctx, uid); err != nil {
		// The profile itself is saved; owned startups catch up on the next sync.
		http.Error(w, "Profile saved but syncing owned startups failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	founder, err := h.Founders.Get(ctx, uid)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(FounderResponse{
		Success: true,
		Message: "Profile saved",
		Founder: founder,
	})
}

// GetMyStartups returns the caller's startups, most recently touched first.
func (h *Handler) GetMyStartups(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(StartupListResponse{Success: false, Message: "Authentication required", Startups: []models.Startup{}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := h.Startups.FetchOwned(ctx, user.ID.String())
	if err != nil {
		http.Error(w, "Failed to fetch startups: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeStartupList(w, items)
}

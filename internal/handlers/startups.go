package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/launchboard/launchboard-backend/internal/models"
	"github.com/launchboard/launchboard-backend/internal/services"
	"github.com/launchboard/launchboard-backend/internal/store"
)

const approvedCacheKey = "startups:approved"

// CreateStartupRequest carries the fields an owner may set at submission.
// Status is not among them: every startup enters the review queue as pending.
type CreateStartupRequest struct {
	Name        string `json:"name"`
	OneLiner    string `json:"oneLiner"`
	Description string `json:"description,omitempty"`

	WebsiteURL  string `json:"websiteUrl,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
	Location    string `json:"location,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`

	SocialLinkedin  string `json:"socialLinkedin,omitempty"`
	SocialX         string `json:"socialX,omitempty"`
	SocialInstagram string `json:"socialInstagram,omitempty"`
	SocialOther     string `json:"socialOther,omitempty"`

	Stage      string   `json:"stage"`
	Hiring     bool     `json:"hiring"`
	Tags       []string `json:"tags,omitempty"`
	Categories []string `json:"categories,omitempty"`

	DemoVideoURL        string `json:"demoVideoUrl,omitempty"`
	RecentSocialPostURL string `json:"recentSocialPostUrl,omitempty"`
	CareersURL          string `json:"careersUrl,omitempty"`
	ContactEmail        string `json:"contactEmail,omitempty"`
}

type StartupResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Startup *models.Startup `json:"startup,omitempty"`
}

type StartupListResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Startups []models.Startup `json:"startups"`
	Count    int              `json:"count"`
}

// ListStartups returns the approved directory, optionally narrowed by
// ?q= (search), ?stage=, ?country= and ?category=. Public.
func (h *Handler) ListStartups(w http.ResponseWriter, r *http.Request) {
	opts := store.ListOptions{
		Search:   r.URL.Query().Get("q"),
		Stage:    r.URL.Query().Get("stage"),
		Country:  r.URL.Query().Get("country"),
		Category: r.URL.Query().Get("category"),
	}

	// The unfiltered list is the hot path (home page); serve it from cache
	// when possible.
	unfiltered := opts == (store.ListOptions{})
	if unfiltered {
		var cached []models.Startup
		if hit, _ := services.Cache.Get(approvedCacheKey, &cached); hit {
			writeStartupList(w, cached)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := h.Startups.FetchApproved(ctx, opts)
	if err != nil {
		http.Error(w, "Failed to fetch startups: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if unfiltered {
		if err := services.Cache.Set(approvedCacheKey, items); err != nil {
			log.Printf("failed to cache approved startups: %v", err)
		}
	}

	writeStartupList(w, items)
}

func writeStartupList(w http.ResponseWriter, items []models.Startup) {
	if items == nil {
		items = []models.Startup{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StartupListResponse{
		Success:  true,
		Startups: items,
		Count:    len(items),
	})
}

// GetStartupBySlug returns one approved startup by its public slug. Public.
func (h *Handler) GetStartupBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		http.Error(w, "Slug is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	startup, err := h.Startups.FetchBySlug(ctx, slug)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if startup == nil {
		http.Error(w, "Startup not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StartupResponse{Success: true, Startup: startup})
}

// GetStartupByID returns a startup regardless of status, for the edit page.
// Only owners and admins may see unapproved documents.
func (h *Handler) GetStartupByID(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(StartupResponse{Success: false, Message: "Authentication required"})
		return
	}

	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	startup, err := h.Startups.FetchByID(ctx, id)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if startup == nil {
		http.Error(w, "Startup not found", http.StatusNotFound)
		return
	}

	if !startup.OwnedBy(user.ID.String()) && !user.IsAdmin {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(StartupResponse{Success: false, Message: "You do not own this startup"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StartupResponse{Success: true, Startup: startup})
}

// CreateStartup submits a new listing. It enters the queue as pending and
// carries a freshly resolved unique slug plus the creator's founder snapshot.
func (h *Handler) CreateStartup(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(StartupResponse{Success: false, Message: "Authentication required"})
		return
	}
	uid := user.ID.String()

	var req CreateStartupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.OneLiner == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(StartupResponse{Success: false, Message: "Name and one-liner are required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	slug, err := store.ResolveUniqueSlug(ctx, h.Startups, req.Name, uid)
	if err == store.ErrSlugExhausted {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(StartupResponse{Success: false, Message: "Could not allocate a unique slug for this name"})
		return
	}
	if err != nil {
		http.Error(w, "Failed to resolve slug: "+err.Error(), http.StatusInternalServerError)
		return
	}

	startup := models.Startup{
		Name:                req.Name,
		OneLiner:            req.OneLiner,
		Slug:                slug,
		Description:         req.Description,
		WebsiteURL:          req.WebsiteURL,
		LogoURL:             req.LogoURL,
		Location:            req.Location,
		CountryCode:         req.CountryCode,
		SocialLinkedin:      req.SocialLinkedin,
		SocialX:             req.SocialX,
		SocialInstagram:     req.SocialInstagram,
		SocialOther:         req.SocialOther,
		Stage:               req.Stage,
		Hiring:              req.Hiring,
		Status:              models.StatusPending,
		Tags:                req.Tags,
		Categories:          req.Categories,
		OwnerIDs:            []string{uid},
		DemoVideoURL:        req.DemoVideoURL,
		RecentSocialPostURL: req.RecentSocialPostURL,
		CareersURL:          req.CareersURL,
		ContactEmail:        req.ContactEmail,
	}

	// Denormalize the creator's founder profile, when one exists.
	if founder, err := h.Founders.Get(ctx, uid); err == nil && founder != nil {
		startup.OwnersPublic = []models.OwnerPublicInfo{founder.PublicInfo()}
	}

	id, err := h.Startups.Create(ctx, &startup)
	if err != nil {
		http.Error(w, "Failed to create startup: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Startup submitted for review",
		"id":      id,
		"slug":    slug,
	})
}

// updatableFields is the whitelist of startup fields an owner may edit.
// Slug, status, ownership and vote counters are managed by the system.
var updatableFields = map[string]bool{
	"name": true, "oneLiner": true, "description": true,
	"websiteUrl": true, "logoUrl": true, "location": true, "countryCode": true,
	"socialLinkedin": true, "socialX": true, "socialInstagram": true, "socialOther": true,
	"stage": true, "hiring": true, "tags": true, "categories": true,
	"demoVideoUrl": true, "recentUpdates": true, "recentSocialPostUrl": true,
	"careersUrl": true, "contactEmail": true,
}

// UpdateStartup merges the supplied fields into an owned startup.
func (h *Handler) UpdateStartup(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(StartupResponse{Success: false, Message: "Authentication required"})
		return
	}

	id := chi.URLParam(r, "id")

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	partial := bson.M{}
	for k, v := range body {
		if updatableFields[k] {
			partial[k] = v
		}
	}
	if len(partial) == 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(StartupResponse{Success: false, Message: "No updatable fields supplied"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	startup, err := h.Startups.FetchByID(ctx, id)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if startup == nil {
		http.Error(w, "Startup not found", http.StatusNotFound)
		return
	}
	if !startup.OwnedBy(user.ID.String()) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(StartupResponse{Success: false, Message: "You do not own this startup"})
		return
	}

	if err := h.Startups.Update(ctx, id, partial); err != nil {
		if err == store.ErrNotFound {
			http.Error(w, "Startup not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update startup: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Approved listings are publicly visible; drop the stale cached list.
	if startup.Status == models.StatusApproved {
		services.Cache.Delete(approvedCacheKey)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Startup updated",
	})
}

// UpvoteStartup records the caller's vote. Voting twice is a no-op; the
// response always carries the current count.
func (h *Handler) UpvoteStartup(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(StartupResponse{Success: false, Message: "Authentication required"})
		return
	}

	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	startup, err := h.Startups.Upvote(ctx, id, user.ID.String())
	if err == store.ErrNotFound {
		http.Error(w, "Startup not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to upvote: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Best-effort live counter update; the vote itself is already durable.
	if err := services.PublishUpvoteEvent(ctx, services.UpvoteEvent{
		StartupID:    id,
		UpvotesCount: startup.UpvotesCount,
	}); err != nil {
		log.Printf("failed to publish upvote event for startup %s: %v", id, err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":       true,
		"upvotes_count": startup.UpvotesCount,
	})
}

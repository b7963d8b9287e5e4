package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/launchboard/launchboard-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux, h *handlers.Handler) {
	// Auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Post("/api/auth/signout", handlers.Signout)
	r.Get("/api/auth/me", handlers.GetMe)

	// Public directory routes
	r.Get("/api/startups", h.ListStartups)
	r.Get("/api/startups/slug/{slug}", h.GetStartupBySlug)

	// Owner routes
	r.Post("/api/startups", h.CreateStartup)
	r.Get("/api/startups/{id}", h.GetStartupByID)
	r.Put("/api/startups/{id}", h.UpdateStartup)
	r.Post("/api/startups/{id}/upvote", h.UpvoteStartup)

	// Founder profile routes
	r.Get("/api/me/founder", h.GetMyFounder)
	r.Put("/api/me/founder", h.UpsertMyFounder)
	r.Get("/api/me/startups", h.GetMyStartups)

	// File upload routes
	r.Post("/api/upload", handlers.UploadFile)

	// Admin moderation routes
	r.Get("/api/admin/startups/pending", h.GetPendingStartups)
	r.Put("/api/admin/startups/approve", h.ApproveStartup)
	r.Put("/api/admin/startups/reject", h.RejectStartup)

	// WebSocket endpoint for live upvote counters
	r.Get("/ws/startups/upvotes", h.UpvoteFeedWebSocket)
}

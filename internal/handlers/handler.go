package handlers

import (
	"github.com/launchboard/launchboard-backend/internal/services"
	"github.com/launchboard/launchboard-backend/internal/store"
)

// Handler carries the injected stores for the directory endpoints. Identity
// (sessions, users) stays in package-level services; the document store is
// passed in explicitly so tests can use in-memory doubles.
type Handler struct {
	Founders store.FounderStore
	Startups store.StartupStore
	Sync     *services.SyncService
}

func New(stores *store.Stores) *Handler {
	return &Handler{
		Founders: stores.Founders,
		Startups: stores.Startups,
		Sync:     services.NewSyncService(stores.Founders, stores.Startups),
	}
}

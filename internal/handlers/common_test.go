package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/launchboard/launchboard-backend/internal/mocks"
	"github.com/launchboard/launchboard-backend/internal/models"
	"github.com/launchboard/launchboard-backend/internal/services"
)

func newTestHandler() (*Handler, *mocks.FounderStore, *mocks.StartupStore) {
	founders := mocks.NewFounderStore()
	startups := mocks.NewStartupStore()
	h := &Handler{
		Founders: founders,
		Startups: startups,
		Sync:     services.NewSyncService(founders, startups),
	}
	return h, founders, startups
}

// asUser stubs session resolution for the duration of the test. nil means
// not signed in.
func asUser(t *testing.T, u *models.User) {
	t.Helper()
	prev := currentUser
	currentUser = func(*http.Request) (*models.User, bool) {
		if u == nil {
			return nil, false
		}
		return u, true
	}
	t.Cleanup(func() { currentUser = prev })
}

func testUser(name string, admin bool) *models.User {
	return &models.User{
		ID:       uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)),
		Email:    name + "@example.com",
		Name:     name,
		IsAdmin:  admin,
		IsActive: true,
	}
}

// serve routes a request through the same paths the server registers, so
// chi URL params resolve.
func serve(h *Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/startups", h.ListStartups)
	r.Get("/api/startups/slug/{slug}", h.GetStartupBySlug)
	r.Post("/api/startups", h.CreateStartup)
	r.Get("/api/startups/{id}", h.GetStartupByID)
	r.Put("/api/startups/{id}", h.UpdateStartup)
	r.Post("/api/startups/{id}/upvote", h.UpvoteStartup)
	r.Get("/api/me/founder", h.GetMyFounder)
	r.Put("/api/me/founder", h.UpsertMyFounder)
	r.Get("/api/me/startups", h.GetMyStartups)
	r.Get("/api/admin/startups/pending", h.GetPendingStartups)
	r.Put("/api/admin/startups/approve", h.ApproveStartup)
	r.Put("/api/admin/startups/reject", h.RejectStartup)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, target, body))
	return rr
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/launchboard/launchboard-backend/internal/models"
)

func TestGetPendingStartupsRequiresAdmin(t *testing.T) {
	h, _, _ := newTestHandler()

	asUser(t, nil)
	rr := serve(h, http.MethodGet, "/api/admin/startups/pending", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", rr.Code)
	}

	asUser(t, testUser("ada", false))
	rr = serve(h, http.MethodGet, "/api/admin/startups/pending", nil)
	if rr.Code != http.StatusForbidden {
		t.Errorf("non-admin status = %d, want 403", rr.Code)
	}
}

func TestGetPendingStartups(t *testing.T) {
	h, _, startups := newTestHandler()
	asUser(t, testUser("root", true))

	startups.Create(context.Background(), &models.Startup{
		Name: "Queued", OneLiner: "x", Slug: "queued",
		Status: models.StatusPending, OwnerIDs: []string{"u1"},
	})
	startups.Create(context.Background(), &models.Startup{
		Name: "Live", OneLiner: "x", Slug: "live",
		Status: models.StatusApproved, OwnerIDs: []string{"u2"},
	})

	rr := serve(h, http.MethodGet, "/api/admin/startups/pending", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var resp StartupListResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 1 || resp.Startups[0].Name != "Queued" {
		t.Errorf("queue = %+v, want only the pending startup", resp.Startups)
	}
}

func TestApproveStartup(t *testing.T) {
	h, _, startups := newTestHandler()

	id, _ := startups.Create(context.Background(), &models.Startup{
		Name: "Acme", OneLiner: "x", Slug: "acme",
		Status: models.StatusPending, OwnerIDs: []string{"u1"},
	})

	asUser(t, testUser("ada", false))
	rr := serve(h, http.MethodPut, "/api/admin/startups/approve?id="+id, nil)
	if rr.Code != http.StatusForbidden {
		t.Errorf("non-admin status = %d, want 403", rr.Code)
	}

	asUser(t, testUser("root", true))

	rr = serve(h, http.MethodPut, "/api/admin/startups/approve", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing id status = %d, want 400", rr.Code)
	}

	rr = serve(h, http.MethodPut, "/api/admin/startups/approve?id=000000000000000000000000", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", rr.Code)
	}

	rr = serve(h, http.MethodPut, "/api/admin/startups/approve?id="+id, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	st, _ := startups.FetchByID(context.Background(), id)
	if st.Status != models.StatusApproved {
		t.Errorf("status = %q, want approved", st.Status)
	}
	// The listing is now public.
	bySlug, _ := startups.FetchBySlug(context.Background(), "acme")
	if bySlug == nil {
		t.Error("approved startup not reachable by slug")
	}
}

func TestRejectStartup(t *testing.T) {
	h, _, startups := newTestHandler()
	asUser(t, testUser("root", true))

	id, _ := startups.Create(context.Background(), &models.Startup{
		Name: "Acme", OneLiner: "x", Slug: "acme",
		Status: models.StatusPending, OwnerIDs: []string{"u1"},
	})

	rr := serve(h, http.MethodPut, "/api/admin/startups/reject?id="+id, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	st, _ := startups.FetchByID(context.Background(), id)
	if st.Status != models.StatusRejected {
		t.Errorf("status = %q, want rejected", st.Status)
	}
	pending, _ := startups.FetchPending(context.Background())
	if len(pending) != 0 {
		t.Errorf("rejected startup still queued: %+v", pending)
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/launchboard/launchboard-backend/internal/mocks"
	"github.com/launchboard/launchboard-backend/internal/models"
)

func TestCreateStartupUnauthenticated(t *testing.T) {
	h, _, _ := newTestHandler()
	asUser(t, nil)

	rr := serve(h, http.MethodPost, "/api/startups", strings.NewReader(`{"name":"Acme","oneLiner":"x"}`))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestCreateStartup(t *testing.T) {
	h, founders, startups := newTestHandler()
	owner := testUser("ada", false)
	asUser(t, owner)
	uid := owner.ID.String()

	if err := founders.Upsert(context.Background(), uid, bson.M{"email": owner.Email, "name": "Ada"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	rr := serve(h, http.MethodPost, "/api/startups",
		strings.NewReader(`{"name":"Acme Rockets","oneLiner":"Reusable boosters","stage":"idea"}`))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
		Slug    string `json:"slug"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.ID == "" {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Slug != "acme-rockets" {
		t.Errorf("slug = %q, want acme-rockets", resp.Slug)
	}

	st, err := startups.FetchByID(context.Background(), resp.ID)
	if err != nil || st == nil {
		t.Fatalf("FetchByID: %v, %v", st, err)
	}
	if st.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", st.Status)
	}
	if len(st.OwnerIDs) != 1 || st.OwnerIDs[0] != uid {
		t.Errorf("ownerIds = %v, want [%s]", st.OwnerIDs, uid)
	}
	if len(st.OwnersPublic) != 1 || st.OwnersPublic[0].Name != "Ada" {
		t.Errorf("ownersPublic = %+v, want the creator's founder snapshot", st.OwnersPublic)
	}
}

func TestCreateStartupIgnoresClientStatus(t *testing.T) {
	h, _, startups := newTestHandler()
	asUser(t, testUser("ada", false))

	// A submission claiming to be approved still enters the review queue.
	rr := serve(h, http.MethodPost, "/api/startups",
		strings.NewReader(`{"name":"Acme","oneLiner":"x","status":"approved"}`))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rr.Code)
	}

	var resp struct {
		ID string `json:"id"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)

	st, _ := startups.FetchByID(context.Background(), resp.ID)
	if st.Status != models.StatusPending {
		t.Errorf("status = %q, want pending regardless of request body", st.Status)
	}
}

func TestCreateStartupRequiresNameAndOneLiner(t *testing.T) {
	h, _, _ := newTestHandler()
	asUser(t, testUser("ada", false))

	for _, body := range []string{`{"oneLiner":"x"}`, `{"name":"Acme"}`, `{}`} {
		rr := serve(h, http.MethodPost, "/api/startups", strings.NewReader(body))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rr.Code)
		}
	}
}

func TestCreateStartupSuffixesTakenSlug(t *testing.T) {
	h, _, startups := newTestHandler()
	asUser(t, testUser("ada", false))

	startups.Create(context.Background(), &models.Startup{
		Name: "Acme", OneLiner: "x", Slug: "acme",
		Status: models.StatusApproved, OwnerIDs: []string{"someone-else"},
	})

	rr := serve(h, http.MethodPost, "/api/startups", strings.NewReader(`{"name":"Acme","oneLiner":"y"}`))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rr.Code)
	}

	var resp struct {
		Slug string `json:"slug"`
	}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp.Slug != "acme-2" {
		t.Errorf("slug = %q, want acme-2", resp.Slug)
	}
}

// slugSaturatedStore reports every slug candidate as taken.
type slugSaturatedStore struct {
	*mocks.StartupStore
}

func (slugSaturatedStore) SlugInUse(context.Context, string, string) (bool, error) {
	return true, nil
}

func TestCreateStartupSlugExhausted(t *testing.T) {
	h, _, startups := newTestHandler()
	h.Startups = slugSaturatedStore{startups}
	asUser(t, testUser("ada", false))

	rr := serve(h, http.MethodPost, "/api/startups", strings.NewReader(`{"name":"Acme","oneLiner":"x"}`))
	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rr.Code)
	}
}

func TestUpdateStartupOwnerOnly(t *testing.T) {
	h, _, startups := newTestHandler()
	owner := testUser("ada", false)
	uid := owner.ID.String()

	id, _ := startups.Create(context.Background(), &models.Startup{
		Name: "Acme", OneLiner: "x", Slug: "acme",
		Status: models.StatusPending, OwnerIDs: []string{uid},
	})

	asUser(t, testUser("mallory", false))
	rr := serve(h, http.MethodPut, "/api/startups/"+id, strings.NewReader(`{"oneLiner":"hijacked"}`))
	if rr.Code != http.StatusForbidden {
		t.Errorf("non-owner status = %d, want 403", rr.Code)
	}

	asUser(t, owner)
	rr = serve(h, http.MethodPut, "/api/startups/"+id, strings.NewReader(`{"oneLiner":"Better rockets"}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("owner status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	st, _ := startups.FetchByID(context.Background(), id)
	if st.OneLiner != "Better rockets" {
		t.Errorf("oneLiner = %q, update not applied", st.OneLiner)
	}
}

func TestUpdateStartupWhitelistsFields(t *testing.T) {
	h, _, startups := newTestHandler()
	owner := testUser("ada", false)
	asUser(t, owner)
	uid := owner.ID.String()

	id, _ := startups.Create(context.Background(), &models.Startup{
		Name: "Acme", OneLiner: "x", Slug: "acme",
		Status: models.StatusPending, OwnerIDs: []string{uid},
	})

	// Slug, status and counters are system-managed; a body carrying only
	// those has nothing updatable in it.
	rr := serve(h, http.MethodPut, "/api/startups/"+id,
		strings.NewReader(`{"slug":"stolen","status":"approved","upvotesCount":99}`))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for no updatable fields", rr.Code)
	}

	// Mixed body: the allowed field lands, the managed ones do not.
	rr = serve(h, http.MethodPut, "/api/startups/"+id,
		strings.NewReader(`{"name":"Acme Labs","slug":"stolen","status":"approved"}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	st, _ := startups.FetchByID(context.Background(), id)
	if st.Name != "Acme Labs" {
		t.Errorf("name = %q, want updated", st.Name)
	}
	if st.Slug != "acme" || st.Status != models.StatusPending || st.UpvotesCount != 0 {
		t.Errorf("managed fields changed: slug=%q status=%q upvotes=%d", st.Slug, st.Status, st.UpvotesCount)
	}
}

func TestUpvoteStartupHandler(t *testing.T) {
	h, _, startups := newTestHandler()
	voter := testUser("ada", false)

	id, _ := startups.Create(context.Background(), &models.Startup{
		Name: "Acme", OneLiner: "x", Slug: "acme",
		Status: models.StatusApproved, OwnerIDs: []string{"owner"},
	})

	asUser(t, nil)
	rr := serve(h, http.MethodPost, "/api/startups/"+id+"/upvote", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", rr.Code)
	}

	asUser(t, voter)
	rr = serve(h, http.MethodPost, "/api/startups/000000000000000000000000/upvote", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("missing startup status = %d, want 404", rr.Code)
	}

	var resp struct {
		UpvotesCount int `json:"upvotes_count"`
	}
	for i := 0; i < 2; i++ {
		rr = serve(h, http.MethodPost, "/api/startups/"+id+"/upvote", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("vote %d status = %d, want 200: %s", i, rr.Code, rr.Body.String())
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		// Second vote from the same user is a no-op with the same count.
		if resp.UpvotesCount != 1 {
			t.Errorf("vote %d count = %d, want 1", i, resp.UpvotesCount)
		}
	}
}

func TestListStartupsApprovedOnly(t *testing.T) {
	h, _, startups := newTestHandler()

	startups.Create(context.Background(), &models.Startup{
		Name: "Acme", OneLiner: "x", Slug: "acme",
		Status: models.StatusApproved, Stage: models.StageLaunched, OwnerIDs: []string{"u1"},
	})
	startups.Create(context.Background(), &models.Startup{
		Name: "Hidden", OneLiner: "x", Slug: "hidden",
		Status: models.StatusPending, Stage: models.StageIdea, OwnerIDs: []string{"u2"},
	})

	rr := serve(h, http.MethodGet, "/api/startups", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var resp StartupListResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 1 || resp.Startups[0].Name != "Acme" {
		t.Errorf("list = %+v, want only the approved startup", resp.Startups)
	}

	rr = serve(h, http.MethodGet, "/api/startups?stage=idea", nil)
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp.Count != 0 {
		t.Errorf("stage filter leaked %d startups", resp.Count)
	}
}

func TestGetStartupBySlugApprovedOnly(t *testing.T) {
	h, _, startups := newTestHandler()

	startups.Create(context.Background(), &models.Startup{
		Name: "Acme", OneLiner: "x", Slug: "acme",
		Status: models.StatusPending, OwnerIDs: []string{"u1"},
	})

	rr := serve(h, http.MethodGet, "/api/startups/slug/acme", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("pending startup by slug: status = %d, want 404", rr.Code)
	}
}

package mocks

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/launchboard/launchboard-backend/internal/models"
	"github.com/launchboard/launchboard-backend/internal/store"
)

func TestStartupLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewStartupStore()

	id, err := s.Create(ctx, &models.Startup{
		Name:     "Acme",
		OneLiner: "Rockets",
		Slug:     "acme",
		Status:   models.StatusPending,
		OwnerIDs: []string{"user-1"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Fresh submissions sit in the review queue, not the public list.
	pending, err := s.FetchPending(ctx)
	if err != nil {
		t.Fatalf("FetchPending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID.Hex() != id {
		t.Fatalf("pending = %v, want the new startup", pending)
	}
	approved, _ := s.FetchApproved(ctx, store.ListOptions{})
	if len(approved) != 0 {
		t.Fatalf("approved = %v, want empty before moderation", approved)
	}
	if st, _ := s.FetchBySlug(ctx, "acme"); st != nil {
		t.Fatal("FetchBySlug returned a pending startup")
	}

	before, _ := s.FetchByID(ctx, id)

	if err := s.Approve(ctx, id); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	after, _ := s.FetchByID(ctx, id)
	if after.Status != models.StatusApproved {
		t.Errorf("status = %q, want approved", after.Status)
	}
	// Moderation flips status only.
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Errorf("updatedAt changed on approval: %v -> %v", before.UpdatedAt, after.UpdatedAt)
	}

	approved, _ = s.FetchApproved(ctx, store.ListOptions{})
	if len(approved) != 1 {
		t.Fatalf("approved count = %d, want 1", len(approved))
	}
	pending, _ = s.FetchPending(ctx)
	if len(pending) != 0 {
		t.Fatalf("pending count = %d after approval, want 0", len(pending))
	}
	if st, _ := s.FetchBySlug(ctx, "acme"); st == nil {
		t.Fatal("FetchBySlug missed an approved startup")
	}
}

func TestStartupReject(t *testing.T) {
	ctx := context.Background()
	s := NewStartupStore()

	id, _ := s.Create(ctx, &models.Startup{
		Name: "Acme", OneLiner: "x", Slug: "acme",
		Status: models.StatusPending, OwnerIDs: []string{"user-1"},
	})

	if err := s.Reject(ctx, id); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	st, _ := s.FetchByID(ctx, id)
	if st.Status != models.StatusRejected {
		t.Errorf("status = %q, want rejected", st.Status)
	}
	// Rejected startups stay visible to their owner.
	owned, _ := s.FetchOwned(ctx, "user-1")
	if len(owned) != 1 {
		t.Errorf("owner lost sight of rejected startup")
	}
}

func TestModerateMissingStartup(t *testing.T) {
	ctx := context.Background()
	s := NewStartupStore()

	if err := s.Approve(ctx, "000000000000000000000000"); err != store.ErrNotFound {
		t.Errorf("Approve missing = %v, want ErrNotFound", err)
	}
	if err := s.Reject(ctx, "000000000000000000000000"); err != store.ErrNotFound {
		t.Errorf("Reject missing = %v, want ErrNotFound", err)
	}
}

func TestUpvoteIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewStartupStore()

	id, _ := s.Create(ctx, &models.Startup{
		Name: "Acme", OneLiner: "x", Slug: "acme",
		Status: models.StatusApproved, OwnerIDs: []string{"user-1"},
	})

	first, err := s.Upvote(ctx, id, "voter-1")
	if err != nil {
		t.Fatalf("Upvote: %v", err)
	}
	if first.UpvotesCount != 1 || !first.HasUpvoted("voter-1") {
		t.Fatalf("after first vote: count=%d upvoters=%v", first.UpvotesCount, first.UpvoterIDs)
	}

	second, err := s.Upvote(ctx, id, "voter-1")
	if err != nil {
		t.Fatalf("repeat Upvote: %v", err)
	}
	if second.UpvotesCount != 1 {
		t.Errorf("repeat vote bumped count to %d", second.UpvotesCount)
	}
	if len(second.UpvoterIDs) != 1 {
		t.Errorf("repeat vote duplicated upvoter: %v", second.UpvoterIDs)
	}
}

func TestUpvoteMissingStartup(t *testing.T) {
	s := NewStartupStore()
	if _, err := s.Upvote(context.Background(), "nope", "voter-1"); err != store.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpvoteConcurrentDistinctVoters(t *testing.T) {
	ctx := context.Background()
	s := NewStartupStore()

	id, _ := s.Create(ctx, &models.Startup{
		Name: "Acme", OneLiner: "x", Slug: "acme",
		Status: models.StatusApproved, OwnerIDs: []string{"user-1"},
	})

	const voters = 50
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			uid := fmt.Sprintf("voter-%d", n)
			// Each goroutine votes with a distinct id; vote twice to mix
			// duplicates into the interleaving.
			if _, err := s.Upvote(ctx, id, uid); err != nil {
				t.Errorf("Upvote: %v", err)
			}
			if _, err := s.Upvote(ctx, id, uid); err != nil {
				t.Errorf("Upvote: %v", err)
			}
		}(i)
	}
	wg.Wait()

	st, _ := s.FetchByID(ctx, id)
	if st.UpvotesCount != len(st.UpvoterIDs) {
		t.Errorf("count %d != len(upvoterIds) %d", st.UpvotesCount, len(st.UpvoterIDs))
	}
	seen := map[string]bool{}
	for _, v := range st.UpvoterIDs {
		if seen[v] {
			t.Errorf("duplicate upvoter %q", v)
		}
		seen[v] = true
	}
}

func TestFounderUpsertMerge(t *testing.T) {
	ctx := context.Background()
	s := NewFounderStore()

	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.Now = func() time.Time { return fixed }

	const uid = "user-1"
	if err := s.Upsert(ctx, uid, bson.M{"email": "ada@example.com", "name": "Ada", "linkedin": "in/ada"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// Later partial update: new name, no email, no linkedin.
	s.Now = func() time.Time { return fixed.Add(time.Hour) }
	if err := s.Upsert(ctx, uid, bson.M{"name": "Ada L."}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	f, err := s.Get(ctx, uid)
	if err != nil || f == nil {
		t.Fatalf("Get: %v, %v", f, err)
	}
	if f.Name != "Ada L." {
		t.Errorf("name = %q, want updated", f.Name)
	}
	if f.Email != "ada@example.com" {
		t.Errorf("email = %q, want preserved", f.Email)
	}
	if f.Linkedin != "in/ada" {
		t.Errorf("linkedin = %q, want preserved", f.Linkedin)
	}
	if !f.CreatedAt.Equal(fixed) {
		t.Errorf("createdAt = %v, want first-write time %v", f.CreatedAt, fixed)
	}
}

func TestFounderGetMissing(t *testing.T) {
	s := NewFounderStore()
	f, err := s.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if f != nil {
		t.Errorf("f = %+v, want nil for missing profile", f)
	}
}

func TestSlugInUseScopes(t *testing.T) {
	ctx := context.Background()
	s := NewStartupStore()

	s.Create(ctx, &models.Startup{
		Name: "Acme", OneLiner: "x", Slug: "acme",
		Status: models.StatusApproved, OwnerIDs: []string{"other"},
	})
	s.Create(ctx, &models.Startup{
		Name: "My Draft", OneLiner: "x", Slug: "draft",
		Status: models.StatusPending, OwnerIDs: []string{"me"},
	})
	s.Create(ctx, &models.Startup{
		Name: "Their Draft", OneLiner: "x", Slug: "their-draft",
		Status: models.StatusPending, OwnerIDs: []string{"other"},
	})

	tests := []struct {
		name string
		slug string
		uid  string
		want bool
	}{
		{"approved blocks everyone", "acme", "me", true},
		{"own pending blocks me", "draft", "me", true},
		{"foreign pending does not block", "their-draft", "me", false},
		{"free slug", "fresh", "me", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.SlugInUse(ctx, tt.slug, tt.uid)
			if err != nil {
				t.Fatalf("SlugInUse: %v", err)
			}
			if got != tt.want {
				t.Errorf("SlugInUse(%q, %q) = %v, want %v", tt.slug, tt.uid, got, tt.want)
			}
		})
	}
}

func TestUpdateMergesAndStampsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewStartupStore()

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.Now = func() time.Time { return created }

	id, _ := s.Create(ctx, &models.Startup{
		Name: "Acme", OneLiner: "Rockets", Slug: "acme",
		Status: models.StatusPending, OwnerIDs: []string{"user-1"},
	})

	s.Now = func() time.Time { return created.Add(time.Hour) }
	if err := s.Update(ctx, id, bson.M{"oneLiner": "Reusable rockets", "hiring": true}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	st, _ := s.FetchByID(ctx, id)
	if st.OneLiner != "Reusable rockets" || !st.Hiring {
		t.Errorf("update not applied: %+v", st)
	}
	if st.Name != "Acme" || st.Slug != "acme" {
		t.Errorf("untouched fields changed: %+v", st)
	}
	if !st.UpdatedAt.After(st.CreatedAt) {
		t.Errorf("updatedAt = %v, want after createdAt %v", st.UpdatedAt, st.CreatedAt)
	}

	if err := s.Update(ctx, "missing", bson.M{"name": "x"}); err != store.ErrNotFound {
		t.Errorf("Update missing = %v, want ErrNotFound", err)
	}
}

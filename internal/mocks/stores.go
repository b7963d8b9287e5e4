// Package mocks provides in-memory store implementations for handler and
// service tests. They honor the same contracts as the Mongo-backed stores:
// merge-style updates, idempotent upvotes, and the two-scope slug probe.
package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/launchboard/launchboard-backend/internal/models"
	"github.com/launchboard/launchboard-backend/internal/store"
)

// FounderStore is a mutex-guarded in-memory models.Founder store.
type FounderStore struct {
	mu       sync.Mutex
	founders map[string]*models.Founder

	// Now is the clock used for createdAt stamps; tests may replace it.
	Now func() time.Time
}

func NewFounderStore() *FounderStore {
	return &FounderStore{
		founders: make(map[string]*models.Founder),
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *FounderStore) Get(_ context.Context, uid string) (*models.Founder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.founders[uid]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (s *FounderStore) Upsert(_ context.Context, uid string, partial bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.founders[uid]
	var next models.Founder
	if ok {
		next = *existing
	} else {
		next = models.Founder{UID: uid, CreatedAt: s.Now()}
	}

	for k, v := range partial {
		sv, _ := v.(string)
		switch k {
		case "email":
			if sv != "" {
				next.Email = sv
			}
		case "name":
			next.Name = sv
		case "avatarUrl":
			next.AvatarURL = sv
		case "linkedin":
			next.Linkedin = sv
		case "x":
			next.X = sv
		case "instagram":
			next.Instagram = sv
		case "website":
			next.Website = sv
		case "otherSocial":
			next.OtherSocial = sv
		}
	}

	s.founders[uid] = &next
	return nil
}

// StartupStore is a mutex-guarded in-memory models.Startup store.
type StartupStore struct {
	mu       sync.Mutex
	startups map[string]*models.Startup

	// Now is the clock used for timestamp stamps; tests may replace it.
	Now func() time.Time
}

func NewStartupStore() *StartupStore {
	return &StartupStore{
		startups: make(map[string]*models.Startup),
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *StartupStore) Create(_ context.Context, startup *models.Startup) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if startup.ID.IsZero() {
		startup.ID = primitive.NewObjectID()
	}
	now := s.Now()
	startup.CreatedAt = now
	startup.UpdatedAt = now

	cp := *startup
	s.startups[cp.ID.Hex()] = &cp
	return cp.ID.Hex(), nil
}

func (s *StartupStore) Update(_ context.Context, id string, partial bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.startups[id]
	if !ok {
		return store.ErrNotFound
	}

	// Merge through bson so the mock accepts the same partials the Mongo
	// store would ($set semantics on arbitrary fields).
	raw, err := bson.Marshal(existing)
	if err != nil {
		return err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return err
	}
	for k, v := range partial {
		doc[k] = v
	}
	doc["updatedAt"] = s.Now()

	merged, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	var next models.Startup
	if err := bson.Unmarshal(merged, &next); err != nil {
		return err
	}
	next.ID = existing.ID

	s.startups[id] = &next
	return nil
}

func (s *StartupStore) Approve(_ context.Context, id string) error {
	return s.setStatus(id, models.StatusApproved)
}

func (s *StartupStore) Reject(_ context.Context, id string) error {
	return s.setStatus(id, models.StatusRejected)
}

func (s *StartupStore) setStatus(id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.startups[id]
	if !ok {
		return store.ErrNotFound
	}
	// Status only; updatedAt stays put so moderation does not reorder
	// the owner's dashboard.
	existing.Status = status
	return nil
}

func (s *StartupStore) FetchApproved(_ context.Context, opts store.ListOptions) ([]models.Startup, error) {
	s.mu.Lock()
	items := s.snapshot(func(st *models.Startup) bool { return st.Status == models.StatusApproved })
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return store.FilterApproved(items, opts), nil
}

func (s *StartupStore) FetchBySlug(_ context.Context, slug string) (*models.Startup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.startups {
		if st.Slug == slug && st.Status == models.StatusApproved {
			cp := *st
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *StartupStore) FetchByID(_ context.Context, id string) (*models.Startup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.startups[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (s *StartupStore) FetchPending(_ context.Context) ([]models.Startup, error) {
	s.mu.Lock()
	items := s.snapshot(func(st *models.Startup) bool { return st.Status == models.StatusPending })
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (s *StartupStore) FetchOwned(_ context.Context, uid string) ([]models.Startup, error) {
	s.mu.Lock()
	items := s.snapshot(func(st *models.Startup) bool { return st.OwnedBy(uid) })
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].UpdatedAt.After(items[j].UpdatedAt) })
	return items, nil
}

func (s *StartupStore) Upvote(_ context.Context, id, uid string) (*models.Startup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.startups[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	if !st.HasUpvoted(uid) {
		st.UpvoterIDs = append(st.UpvoterIDs, uid)
		st.UpvotesCount++
		st.UpdatedAt = s.Now()
	}

	cp := *st
	return &cp, nil
}

func (s *StartupStore) SlugInUse(_ context.Context, slug, uid string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.startups {
		if st.Slug != slug {
			continue
		}
		if st.Status == models.StatusApproved || st.OwnedBy(uid) {
			return true, nil
		}
	}
	return false, nil
}

// snapshot copies matching startups; the caller must hold s.mu.
func (s *StartupStore) snapshot(keep func(*models.Startup) bool) []models.Startup {
	out := make([]models.Startup, 0, len(s.startups))
	for _, st := range s.startups {
		if keep(st) {
			out = append(out, *st)
		}
	}
	return out
}

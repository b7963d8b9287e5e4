package store

import (
	"context"
	"testing"
)

// fakeProber reports the slugs in taken as occupied and records every probe.
type fakeProber struct {
	taken  map[string]bool
	probed []string
}

func (f *fakeProber) SlugInUse(_ context.Context, slug, _ string) (bool, error) {
	f.probed = append(f.probed, slug)
	return f.taken[slug], nil
}

func TestResolveUniqueSlugBaseFree(t *testing.T) {
	p := &fakeProber{taken: map[string]bool{}}

	got, err := ResolveUniqueSlug(context.Background(), p, "Acme Rockets", "u1")
	if err != nil {
		t.Fatalf("ResolveUniqueSlug: %v", err)
	}
	if got != "acme-rockets" {
		t.Errorf("slug = %q, want %q", got, "acme-rockets")
	}
}

func TestResolveUniqueSlugFirstSuffix(t *testing.T) {
	p := &fakeProber{taken: map[string]bool{"acme": true}}

	got, err := ResolveUniqueSlug(context.Background(), p, "Acme", "u1")
	if err != nil {
		t.Fatalf("ResolveUniqueSlug: %v", err)
	}
	if got != "acme-2" {
		t.Errorf("slug = %q, want %q", got, "acme-2")
	}
}

func TestResolveUniqueSlugSuffixes(t *testing.T) {
	p := &fakeProber{taken: map[string]bool{"acme": true, "acme-2": true}}

	got, err := ResolveUniqueSlug(context.Background(), p, "Acme", "u1")
	if err != nil {
		t.Fatalf("ResolveUniqueSlug: %v", err)
	}
	if got != "acme-3" {
		t.Errorf("slug = %q, want %q", got, "acme-3")
	}

	wantProbes := []string{"acme", "acme-2", "acme-3"}
	if len(p.probed) != len(wantProbes) {
		t.Fatalf("probed %v, want %v", p.probed, wantProbes)
	}
	for i, w := range wantProbes {
		if p.probed[i] != w {
			t.Errorf("probe %d = %q, want %q", i, p.probed[i], w)
		}
	}
}

func TestResolveUniqueSlugFallbackForEmptyName(t *testing.T) {
	p := &fakeProber{taken: map[string]bool{}}

	got, err := ResolveUniqueSlug(context.Background(), p, "!!!", "u1")
	if err != nil {
		t.Fatalf("ResolveUniqueSlug: %v", err)
	}
	if got != "startup" {
		t.Errorf("slug = %q, want %q", got, "startup")
	}
}

func TestResolveUniqueSlugExhausted(t *testing.T) {
	// Every candidate reads as taken; the loop must give up, not spin.
	exhaust := &alwaysTaken{}

	_, err := ResolveUniqueSlug(context.Background(), exhaust, "Acme", "u1")
	if err != ErrSlugExhausted {
		t.Errorf("err = %v, want ErrSlugExhausted", err)
	}
	if exhaust.calls > maxSlugCandidates {
		t.Errorf("probe called %d times, cap is %d", exhaust.calls, maxSlugCandidates)
	}
}

type alwaysTaken struct{ calls int }

func (a *alwaysTaken) SlugInUse(context.Context, string, string) (bool, error) {
	a.calls++
	return true, nil
}

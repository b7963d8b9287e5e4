package store

import (
	"strings"

	"github.com/launchboard/launchboard-backend/internal/models"
)

// FilterApproved applies the home-page filters in memory. Search is a
// case-insensitive substring match against name or one-liner; stage, country
// and category are exact (category by membership). A full collection scan
// plus in-memory filtering only holds up while the directory is small; once
// listing volume grows this needs server-side filtered queries or a search
// index.
func FilterApproved(items []models.Startup, opts ListOptions) []models.Startup {
	search := strings.ToLower(strings.TrimSpace(opts.Search))
	if search == "" && opts.Stage == "" && opts.Country == "" && opts.Category == "" {
		return items
	}

	out := make([]models.Startup, 0, len(items))
	for _, s := range items {
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Name), search) &&
			!strings.Contains(strings.ToLower(s.OneLiner), search) {
			continue
		}
		if opts.Stage != "" && s.Stage != opts.Stage {
			continue
		}
		if opts.Country != "" && s.CountryCode != opts.Country {
			continue
		}
		if opts.Category != "" && !containsString(s.Categories, opts.Category) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

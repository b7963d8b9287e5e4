package store

import (
	"context"
	"fmt"

	"github.com/launchboard/launchboard-backend/pkg/utils"
)

// maxSlugCandidates caps the suffix probe loop. Without it a densely occupied
// suffix space would spin forever; past the cap we surface ErrSlugExhausted
// and let the user retry with a different name.
const maxSlugCandidates = 1000

// fallbackSlug stands in when a startup name has no alphanumeric characters
// at all (an empty slug would collide with every other empty slug).
const fallbackSlug = "startup"

// ResolveUniqueSlug allocates a slug for a new startup named name, created by
// uid. It probes base, base-2, base-3, ... until a candidate collides with
// neither an approved startup nor any startup owned by uid.
//
// There is a check-then-act window between the probe and the eventual Create;
// two concurrent creators with the same base name can both resolve to the
// same candidate. Accepted: the admin review queue catches duplicates before
// they become public.
func ResolveUniqueSlug(ctx context.Context, probe SlugProber, name, uid string) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = fallbackSlug
	}

	candidate := base
	for i := 2; i <= maxSlugCandidates+1; i++ {
		taken, err := probe.SlugInUse(ctx, candidate, uid)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", ErrSlugExhausted
}

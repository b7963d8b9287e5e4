package services

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/launchboard/launchboard-backend/internal/store"
)

// SyncService propagates founder profile changes into the denormalized
// ownersPublic snapshots of every startup the founder owns.
type SyncService struct {
	founders store.FounderStore
	startups store.StartupStore
}

func NewSyncService(founders store.FounderStore, startups store.StartupStore) *SyncService {
	return &SyncService{founders: founders, startups: startups}
}

// SyncOwnerProfile refreshes the ownersPublic entry for uid in every startup
// uid owns. Missing founder profile is a no-op. Each startup is written
// individually (no batch transaction); a crash mid-sync leaves some startups
// stale, which is acceptable: the data is display-only and self-heals on the
// next profile save.
func (s *SyncService) SyncOwnerProfile(ctx context.Context, uid string) error {
	founder, err := s.founders.Get(ctx, uid)
	if err != nil {
		return err
	}
	if founder == nil {
		return nil
	}

	owned, err := s.startups.FetchOwned(ctx, uid)
	if err != nil {
		return err
	}

	pub := founder.PublicInfo()
	for i := range owned {
		startup := &owned[i]

		next := append(startup.OwnersPublic[:0:0], startup.OwnersPublic...)
		replaced := false
		for j := range next {
			if next[j].UID == uid {
				next[j] = pub
				replaced = true
				break
			}
		}
		if !replaced {
			next = append(next, pub)
		}

		id := startup.ID.Hex()
		if err := s.startups.Update(ctx, id, bson.M{"ownersPublic": next}); err != nil {
			// Keep going; remaining startups should still get the update.
			log.Printf("sync: failed to update ownersPublic for startup %s: %v", id, err)
		}
	}
	return nil
}

package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-wellness/internal/domain/wellness"
)

type snapshotsRepo struct {
	mu    sync.RWMutex
	byPet map[string][]wellness.Snapshot
}

func NewSnapshotsRepo() wellness.SnapshotStore {
	return &snapshotsRepo{
		byPet: make(map[string][]wellness.Snapshot),
	}
}

func (r *snapshotsRepo) Save(ctx context.Context, s wellness.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" || s.PetID == "" {
		return errors.New("snapshot id and pet id required")
	}
	r.byPet[s.PetID] = append(r.byPet[s.PetID], s)
	return nil
}

func (r *snapshotsRepo) ListByPet(ctx context.Context, petID string, limit int) ([]wellness.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 30
	}

	out := append([]wellness.Snapshot(nil), r.byPet[petID]...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

package wellness

import (
	"context"
	"time"
)

// Snapshot es un puntaje persistido por el job diario, para graficar series
// largas sin recomputar todo el historial en cada request.
type Snapshot struct {
	ID    string
	PetID string

	WindowStart time.Time
	WindowEnd   time.Time

	Score      int
	Components Components

	RecordedAt time.Time
}

type SnapshotStore interface {
	Save(ctx context.Context, s Snapshot) error
	ListByPet(ctx context.Context, petID string, limit int) ([]Snapshot, error)
}

package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-wellness/internal/domain/wellness"
)

type SnapshotsRepo struct {
	db *sql.DB
}

func NewSnapshotsRepo(db *sql.DB) *SnapshotsRepo {
	return &SnapshotsRepo{db: db}
}

func (r *SnapshotsRepo) Save(ctx context.Context, s wellness.Snapshot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wellness_snapshots (
			id, pet_id,
			window_start, window_end,
			score,
			vital_parameters, emotional_wellness, medical_care, behavioral_health, activity,
			recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		s.ID,
		s.PetID,
		s.WindowStart,
		s.WindowEnd,
		s.Score,
		s.Components.VitalParameters,
		s.Components.EmotionalWellness,
		s.Components.MedicalCare,
		s.Components.BehavioralHealth,
		s.Components.Activity,
		s.RecordedAt,
	)
	return err
}

func (r *SnapshotsRepo) ListByPet(ctx context.Context, petID string, limit int) ([]wellness.Snapshot, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 30
	}
	if limit > 365 {
		limit = 365
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id,
			window_start, window_end,
			score,
			vital_parameters, emotional_wellness, medical_care, behavioral_health, activity,
			recorded_at
		FROM wellness_snapshots
		WHERE pet_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`, petID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]wellness.Snapshot, 0)
	for rows.Next() {
		var s wellness.Snapshot
		if err := rows.Scan(
			&s.ID,
			&s.PetID,
			&s.WindowStart,
			&s.WindowEnd,
			&s.Score,
			&s.Components.VitalParameters,
			&s.Components.EmotionalWellness,
			&s.Components.MedicalCare,
			&s.Components.BehavioralHealth,
			&s.Components.Activity,
			&s.RecordedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

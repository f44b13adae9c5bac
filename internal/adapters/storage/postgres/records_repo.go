package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-wellness/internal/domain/records"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

func (r *RecordsRepo) AddVital(ctx context.Context, v records.VitalMetric) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vital_metrics (id, pet_id, type, value, unit, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		v.ID, v.PetID, string(v.Type), v.Value, v.Unit, v.RecordedAt,
	)
	return err
}

func (r *RecordsRepo) AddMedical(ctx context.Context, m records.MedicalRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medical_records (id, pet_id, record_type, record_date, title, notes, cost)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		m.ID, m.PetID, string(m.RecordType), m.RecordDate, m.Title, m.Notes, toNullFloat(m.Cost),
	)
	return err
}

func (r *RecordsRepo) AddMedication(ctx context.Context, m records.Medication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (id, pet_id, name, dosage, start_date, end_date, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		m.ID, m.PetID, m.Name, m.Dosage, m.StartDate, toNullDate(m.EndDate), m.IsActive,
	)
	return err
}

func (r *RecordsRepo) AddAnalysis(ctx context.Context, a records.EmotionAnalysis) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO emotion_analyses (id, pet_id, primary_emotion, primary_confidence, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		a.ID, a.PetID, a.PrimaryEmotion, a.PrimaryConfidence, a.CreatedAt,
	)
	return err
}

func (r *RecordsRepo) AddDiaryEntry(ctx context.Context, d records.DiaryEntry) error {
	var mood sql.NullInt64
	if d.MoodScore != nil {
		mood = sql.NullInt64{Int64: int64(*d.MoodScore), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO diary_entries (id, pet_id, entry_date, text, mood_score, behavioral_tags)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		d.ID, d.PetID, d.EntryDate, d.Text, mood, joinTags(d.BehavioralTags),
	)
	return err
}

func (r *RecordsRepo) AddVisit(ctx context.Context, v records.VeterinaryVisit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO veterinary_visits (id, pet_id, category, status, start_time, clinic)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		v.ID, v.PetID, string(v.Category), string(v.Status), v.StartTime, v.Clinic,
	)
	return err
}

func (r *RecordsRepo) AddPolicy(ctx context.Context, p records.InsurancePolicy) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO insurance_policies (id, pet_id, provider, is_active, start_date, end_date)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		p.ID, p.PetID, p.Provider, p.IsActive, p.StartDate, toNullDate(p.EndDate),
	)
	return err
}

// History trae las siete colecciones en orden cronológico. Siete queries
// simples en vez de un join monstruoso: el motor recorta después en memoria.
func (r *RecordsRepo) History(ctx context.Context, petID string) (records.History, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return records.History{}, nil
	}

	var h records.History

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, type, value, unit, recorded_at
		FROM vital_metrics WHERE pet_id = $1 ORDER BY recorded_at ASC
	`, petID)
	if err != nil {
		return records.History{}, err
	}
	for rows.Next() {
		var v records.VitalMetric
		var typ string
		if err := rows.Scan(&v.ID, &v.PetID, &typ, &v.Value, &v.Unit, &v.RecordedAt); err != nil {
			rows.Close()
			return records.History{}, err
		}
		v.Type = records.VitalType(typ)
		h.Vitals = append(h.Vitals, v)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return records.History{}, err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT id, pet_id, record_type, record_date, title, notes, cost
		FROM medical_records WHERE pet_id = $1 ORDER BY record_date ASC
	`, petID)
	if err != nil {
		return records.History{}, err
	}
	for rows.Next() {
		var m records.MedicalRecord
		var typ string
		var cost sql.NullFloat64
		if err := rows.Scan(&m.ID, &m.PetID, &typ, &m.RecordDate, &m.Title, &m.Notes, &cost); err != nil {
			rows.Close()
			return records.History{}, err
		}
		m.RecordType = records.MedicalRecordType(typ)
		if cost.Valid {
			c := cost.Float64
			m.Cost = &c
		}
		h.Medical = append(h.Medical, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return records.History{}, err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT id, pet_id, name, dosage, start_date, end_date, is_active
		FROM medications WHERE pet_id = $1 ORDER BY start_date ASC
	`, petID)
	if err != nil {
		return records.History{}, err
	}
	for rows.Next() {
		var m records.Medication
		var end sql.NullTime
		if err := rows.Scan(&m.ID, &m.PetID, &m.Name, &m.Dosage, &m.StartDate, &end, &m.IsActive); err != nil {
			rows.Close()
			return records.History{}, err
		}
		if end.Valid {
			t := end.Time
			m.EndDate = &t
		}
		h.Medications = append(h.Medications, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return records.History{}, err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT id, pet_id, primary_emotion, primary_confidence, created_at
		FROM emotion_analyses WHERE pet_id = $1 ORDER BY created_at ASC
	`, petID)
	if err != nil {
		return records.History{}, err
	}
	for rows.Next() {
		var a records.EmotionAnalysis
		if err := rows.Scan(&a.ID, &a.PetID, &a.PrimaryEmotion, &a.PrimaryConfidence, &a.CreatedAt); err != nil {
			rows.Close()
			return records.History{}, err
		}
		h.Analyses = append(h.Analyses, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return records.History{}, err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT id, pet_id, entry_date, text, mood_score, behavioral_tags
		FROM diary_entries WHERE pet_id = $1 ORDER BY entry_date ASC
	`, petID)
	if err != nil {
		return records.History{}, err
	}
	for rows.Next() {
		var d records.DiaryEntry
		var mood sql.NullInt64
		var tags string
		if err := rows.Scan(&d.ID, &d.PetID, &d.EntryDate, &d.Text, &mood, &tags); err != nil {
			rows.Close()
			return records.History{}, err
		}
		if mood.Valid {
			m := int(mood.Int64)
			d.MoodScore = &m
		}
		d.BehavioralTags = splitTags(tags)
		h.Diary = append(h.Diary, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return records.History{}, err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT id, pet_id, category, status, start_time, clinic
		FROM veterinary_visits WHERE pet_id = $1 ORDER BY start_time ASC
	`, petID)
	if err != nil {
		return records.History{}, err
	}
	for rows.Next() {
		var v records.VeterinaryVisit
		var cat, st string
		if err := rows.Scan(&v.ID, &v.PetID, &cat, &st, &v.StartTime, &v.Clinic); err != nil {
			rows.Close()
			return records.History{}, err
		}
		v.Category = records.VisitCategory(cat)
		v.Status = records.VisitStatus(st)
		h.Visits = append(h.Visits, v)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return records.History{}, err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT id, pet_id, provider, is_active, start_date, end_date
		FROM insurance_policies WHERE pet_id = $1 ORDER BY start_date ASC
	`, petID)
	if err != nil {
		return records.History{}, err
	}
	for rows.Next() {
		var p records.InsurancePolicy
		var end sql.NullTime
		if err := rows.Scan(&p.ID, &p.PetID, &p.Provider, &p.IsActive, &p.StartDate, &end); err != nil {
			rows.Close()
			return records.History{}, err
		}
		if end.Valid {
			t := end.Time
			p.EndDate = &t
		}
		h.Policies = append(h.Policies, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return records.History{}, err
	}

	return h, nil
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// behavioral_tags se guarda como texto separado por comas (los tags ya vienen
// normalizados en minúsculas y sin comas desde el service).
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-wellness/internal/domain/records"
)

type recordsRepo struct {
	mu        sync.RWMutex
	histories map[string]*records.History // por pet id
}

func NewRecordsRepo() records.Repository {
	return &recordsRepo{
		histories: make(map[string]*records.History),
	}
}

func (r *recordsRepo) historyFor(petID string) (*records.History, error) {
	if petID == "" {
		return nil, errors.New("pet id required")
	}
	h, ok := r.histories[petID]
	if !ok {
		h = &records.History{}
		r.histories[petID] = h
	}
	return h, nil
}

func (r *recordsRepo) AddVital(ctx context.Context, v records.VitalMetric) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := r.historyFor(v.PetID)
	if err != nil {
		return err
	}
	h.Vitals = append(h.Vitals, v)
	return nil
}

func (r *recordsRepo) AddMedical(ctx context.Context, m records.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := r.historyFor(m.PetID)
	if err != nil {
		return err
	}
	h.Medical = append(h.Medical, m)
	return nil
}

func (r *recordsRepo) AddMedication(ctx context.Context, m records.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := r.historyFor(m.PetID)
	if err != nil {
		return err
	}
	h.Medications = append(h.Medications, m)
	return nil
}

func (r *recordsRepo) AddAnalysis(ctx context.Context, a records.EmotionAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := r.historyFor(a.PetID)
	if err != nil {
		return err
	}
	h.Analyses = append(h.Analyses, a)
	return nil
}

func (r *recordsRepo) AddDiaryEntry(ctx context.Context, d records.DiaryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := r.historyFor(d.PetID)
	if err != nil {
		return err
	}
	h.Diary = append(h.Diary, d)
	return nil
}

func (r *recordsRepo) AddVisit(ctx context.Context, v records.VeterinaryVisit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := r.historyFor(v.PetID)
	if err != nil {
		return err
	}
	h.Visits = append(h.Visits, v)
	return nil
}

func (r *recordsRepo) AddPolicy(ctx context.Context, p records.InsurancePolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := r.historyFor(p.PetID)
	if err != nil {
		return err
	}
	h.Policies = append(h.Policies, p)
	return nil
}

// History devuelve una copia: el motor promete no mutar entradas y el repo
// promete no compartir sus slices internos.
func (r *recordsRepo) History(ctx context.Context, petID string) (records.History, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.histories[petID]
	if !ok {
		return records.History{}, nil
	}

	out := records.History{
		Vitals:      append([]records.VitalMetric(nil), h.Vitals...),
		Medical:     append([]records.MedicalRecord(nil), h.Medical...),
		Medications: append([]records.Medication(nil), h.Medications...),
		Analyses:    append([]records.EmotionAnalysis(nil), h.Analyses...),
		Diary:       append([]records.DiaryEntry(nil), h.Diary...),
		Visits:      append([]records.VeterinaryVisit(nil), h.Visits...),
		Policies:    append([]records.InsurancePolicy(nil), h.Policies...),
	}

	// Orden cronológico estable por colección (consistencia en dev)
	sort.Slice(out.Vitals, func(i, j int) bool { return out.Vitals[i].RecordedAt.Before(out.Vitals[j].RecordedAt) })
	sort.Slice(out.Medical, func(i, j int) bool { return out.Medical[i].RecordDate.Before(out.Medical[j].RecordDate) })
	sort.Slice(out.Analyses, func(i, j int) bool { return out.Analyses[i].CreatedAt.Before(out.Analyses[j].CreatedAt) })
	sort.Slice(out.Diary, func(i, j int) bool { return out.Diary[i].EntryDate.Before(out.Diary[j].EntryDate) })
	sort.Slice(out.Visits, func(i, j int) bool { return out.Visits[i].StartTime.Before(out.Visits[j].StartTime) })

	return out, nil
}

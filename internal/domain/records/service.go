package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type VitalInput struct {
	Type       VitalType
	Value      float64
	Unit       string
	RecordedAt time.Time
}

func (s *Service) AddVital(ctx context.Context, petID string, in VitalInput) (VitalMetric, error) {
	if strings.TrimSpace(petID) == "" {
		return VitalMetric{}, ErrInvalidInput
	}
	switch in.Type {
	case VitalTemperature, VitalHeartRate, VitalRespiration:
	default:
		return VitalMetric{}, ErrInvalidInput
	}
	if in.Value <= 0 {
		return VitalMetric{}, ErrInvalidInput
	}
	if in.RecordedAt.IsZero() {
		in.RecordedAt = s.now()
	}

	v := VitalMetric{
		ID:         uuid.NewString(),
		PetID:      petID,
		Type:       in.Type,
		Value:      in.Value,
		Unit:       strings.TrimSpace(in.Unit),
		RecordedAt: in.RecordedAt,
	}
	if err := s.repo.AddVital(ctx, v); err != nil {
		return VitalMetric{}, err
	}
	return v, nil
}

type MedicalInput struct {
	RecordType MedicalRecordType
	RecordDate time.Time
	Title      string
	Notes      string
	Cost       *float64
}

func (s *Service) AddMedical(ctx context.Context, petID string, in MedicalInput) (MedicalRecord, error) {
	if strings.TrimSpace(petID) == "" {
		return MedicalRecord{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return MedicalRecord{}, ErrInvalidInput
	}
	if in.RecordDate.IsZero() {
		return MedicalRecord{}, ErrInvalidInput
	}
	typ := in.RecordType
	if typ == "" {
		typ = MedicalOther
	}

	m := MedicalRecord{
		ID:         uuid.NewString(),
		PetID:      petID,
		RecordType: typ,
		RecordDate: in.RecordDate,
		Title:      strings.TrimSpace(in.Title),
		Notes:      strings.TrimSpace(in.Notes),
		Cost:       in.Cost,
	}
	if err := s.repo.AddMedical(ctx, m); err != nil {
		return MedicalRecord{}, err
	}
	return m, nil
}

type MedicationInput struct {
	Name      string
	Dosage    string
	StartDate time.Time
	EndDate   *time.Time
	IsActive  bool
}

func (s *Service) AddMedication(ctx context.Context, petID string, in MedicationInput) (Medication, error) {
	if strings.TrimSpace(petID) == "" || strings.TrimSpace(in.Name) == "" {
		return Medication{}, ErrInvalidInput
	}
	if in.StartDate.IsZero() {
		return Medication{}, ErrInvalidInput
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return Medication{}, ErrInvalidInput
	}

	m := Medication{
		ID:        uuid.NewString(),
		PetID:     petID,
		Name:      strings.TrimSpace(in.Name),
		Dosage:    strings.TrimSpace(in.Dosage),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		IsActive:  in.IsActive,
	}
	if err := s.repo.AddMedication(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

type AnalysisInput struct {
	PrimaryEmotion    string
	PrimaryConfidence float64
	CreatedAt         time.Time
}

func (s *Service) AddAnalysis(ctx context.Context, petID string, in AnalysisInput) (EmotionAnalysis, error) {
	if strings.TrimSpace(petID) == "" {
		return EmotionAnalysis{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.PrimaryEmotion) == "" {
		return EmotionAnalysis{}, ErrInvalidInput
	}
	if in.PrimaryConfidence < 0 || in.PrimaryConfidence > 1 {
		return EmotionAnalysis{}, ErrInvalidInput
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = s.now()
	}

	a := EmotionAnalysis{
		ID:                uuid.NewString(),
		PetID:             petID,
		PrimaryEmotion:    strings.ToLower(strings.TrimSpace(in.PrimaryEmotion)),
		PrimaryConfidence: in.PrimaryConfidence,
		CreatedAt:         in.CreatedAt,
	}
	if err := s.repo.AddAnalysis(ctx, a); err != nil {
		return EmotionAnalysis{}, err
	}
	return a, nil
}

type DiaryInput struct {
	EntryDate      time.Time
	Text           string
	MoodScore      *int
	BehavioralTags []string
}

func (s *Service) AddDiaryEntry(ctx context.Context, petID string, in DiaryInput) (DiaryEntry, error) {
	if strings.TrimSpace(petID) == "" {
		return DiaryEntry{}, ErrInvalidInput
	}
	if in.EntryDate.IsZero() {
		in.EntryDate = s.now()
	}
	if in.MoodScore != nil && (*in.MoodScore < 1 || *in.MoodScore > 10) {
		return DiaryEntry{}, ErrInvalidInput
	}

	tags := make([]string, 0, len(in.BehavioralTags))
	for _, t := range in.BehavioralTags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			tags = append(tags, t)
		}
	}

	d := DiaryEntry{
		ID:             uuid.NewString(),
		PetID:          petID,
		EntryDate:      in.EntryDate,
		Text:           strings.TrimSpace(in.Text),
		MoodScore:      in.MoodScore,
		BehavioralTags: tags,
	}
	if err := s.repo.AddDiaryEntry(ctx, d); err != nil {
		return DiaryEntry{}, err
	}
	return d, nil
}

type VisitInput struct {
	Category  VisitCategory
	Status    VisitStatus
	StartTime time.Time
	Clinic    string
}

func (s *Service) AddVisit(ctx context.Context, petID string, in VisitInput) (VeterinaryVisit, error) {
	if strings.TrimSpace(petID) == "" {
		return VeterinaryVisit{}, ErrInvalidInput
	}
	if in.StartTime.IsZero() {
		return VeterinaryVisit{}, ErrInvalidInput
	}
	cat := in.Category
	if cat == "" {
		cat = VisitVeterinary
	}
	st := in.Status
	if st == "" {
		st = VisitScheduled
	}

	v := VeterinaryVisit{
		ID:        uuid.NewString(),
		PetID:     petID,
		Category:  cat,
		Status:    st,
		StartTime: in.StartTime,
		Clinic:    strings.TrimSpace(in.Clinic),
	}
	if err := s.repo.AddVisit(ctx, v); err != nil {
		return VeterinaryVisit{}, err
	}
	return v, nil
}

type PolicyInput struct {
	Provider  string
	IsActive  bool
	StartDate time.Time
	EndDate   *time.Time
}

func (s *Service) AddPolicy(ctx context.Context, petID string, in PolicyInput) (InsurancePolicy, error) {
	if strings.TrimSpace(petID) == "" || strings.TrimSpace(in.Provider) == "" {
		return InsurancePolicy{}, ErrInvalidInput
	}
	if in.StartDate.IsZero() {
		return InsurancePolicy{}, ErrInvalidInput
	}

	p := InsurancePolicy{
		ID:        uuid.NewString(),
		PetID:     petID,
		Provider:  strings.TrimSpace(in.Provider),
		IsActive:  in.IsActive,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
	if err := s.repo.AddPolicy(ctx, p); err != nil {
		return InsurancePolicy{}, err
	}
	return p, nil
}

func (s *Service) History(ctx context.Context, petID string) (History, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return History{}, ErrInvalidInput
	}
	return s.repo.History(ctx, petID)
}

package records

import "time"

// Los modelos llevan tags json porque se devuelven tal cual por la API y
// se persisten como parte del historial; el motor de wellness solo los lee.

// VitalMetric es una lectura puntual de un signo vital.
// Puede haber varias por día; el motor de wellness promedia por tipo.
type VitalMetric struct {
	ID    string `json:"id"`
	PetID string `json:"pet_id"`

	Type       VitalType `json:"type"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"` // "°C", "bpm", "rpm"
	RecordedAt time.Time `json:"recorded_at"`
}

// MedicalRecord es una entrada del historial médico (chequeo, vacuna, otro).
type MedicalRecord struct {
	ID    string `json:"id"`
	PetID string `json:"pet_id"`

	RecordType MedicalRecordType `json:"record_type"`
	RecordDate time.Time         `json:"record_date"`
	Title      string            `json:"title"`
	Notes      string            `json:"notes"`
	Cost       *float64          `json:"cost,omitempty"`
}

// Medication es un tratamiento con rango de vigencia.
// EndDate nil = tratamiento abierto.
type Medication struct {
	ID    string `json:"id"`
	PetID string `json:"pet_id"`

	Name      string     `json:"name"`
	Dosage    string     `json:"dosage"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	IsActive  bool       `json:"is_active"`
}

// EmotionAnalysis es el resultado de un análisis de emoción sobre la mascota.
// PrimaryConfidence va de 0 a 1 y modula el puntaje base de la emoción.
type EmotionAnalysis struct {
	ID    string `json:"id"`
	PetID string `json:"pet_id"`

	PrimaryEmotion    string    `json:"primary_emotion"`
	PrimaryConfidence float64   `json:"primary_confidence"`
	CreatedAt         time.Time `json:"created_at"`
}

// DiaryEntry es una entrada de diario del dueño.
// MoodScore (1..10) es opcional: nil no cuenta para el promedio.
type DiaryEntry struct {
	ID    string `json:"id"`
	PetID string `json:"pet_id"`

	EntryDate      time.Time `json:"entry_date"`
	Text           string    `json:"text"`
	MoodScore      *int      `json:"mood_score,omitempty"`
	BehavioralTags []string  `json:"behavioral_tags"`
}

// VeterinaryVisit es una visita agendada/completada en la agenda.
// Fuente alternativa de historial de cuidado, se une con MedicalRecord.
type VeterinaryVisit struct {
	ID    string `json:"id"`
	PetID string `json:"pet_id"`

	Category  VisitCategory `json:"category"`
	Status    VisitStatus   `json:"status"`
	StartTime time.Time     `json:"start_time"`
	Clinic    string        `json:"clinic"`
}

// InsurancePolicy es una póliza de seguro de la mascota.
type InsurancePolicy struct {
	ID    string `json:"id"`
	PetID string `json:"pet_id"`

	Provider  string     `json:"provider"`
	IsActive  bool       `json:"is_active"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// History agrupa todas las colecciones de una mascota.
// Es lo único que consume el motor de wellness: se trae una vez por request.
type History struct {
	Vitals      []VitalMetric     `json:"vitals"`
	Medical     []MedicalRecord   `json:"medical"`
	Medications []Medication      `json:"medications"`
	Analyses    []EmotionAnalysis `json:"analyses"`
	Diary       []DiaryEntry      `json:"diary"`
	Visits      []VeterinaryVisit `json:"visits"`
	Policies    []InsurancePolicy `json:"policies"`
}

package wellness

import "time"

// Window es el intervalo semiabierto [Start, End) que recorta el historial.
type Window struct {
	Start time.Time
	End   time.Time
}

// Empty reporta si la ventana no puede contener registros.
func (w Window) Empty() bool {
	return !w.End.After(w.Start)
}

// Contains reporta si t cae dentro de [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Components son los cinco sub-puntajes, cada uno ya recortado a su cap.
type Components struct {
	VitalParameters   float64 `json:"vital_parameters"`
	EmotionalWellness float64 `json:"emotional_wellness"`
	MedicalCare       float64 `json:"medical_care"`
	BehavioralHealth  float64 `json:"behavioral_health"`
	Activity          float64 `json:"activity"`
}

// Factors describe la calidad de los datos detrás del puntaje, no el puntaje.
type Factors struct {
	DataCompleteness       int    `json:"data_completeness"`
	RecentDataAvailability int    `json:"recent_data_availability"`
	TrendAnalysis          string `json:"trend_analysis"`
	VisitFrequency         string `json:"visit_frequency"`
}

// Score es el resultado completo de una evaluación de bienestar.
// Recommendations conserva el orden de descubrimiento, sin dedup.
type Score struct {
	Score           int        `json:"score"`
	Components      Components `json:"components"`
	Factors         Factors    `json:"factors"`
	Recommendations []string   `json:"recommendations"`
}

// TrendPoint es un punto de la serie para graficar.
type TrendPoint struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// Etiquetas de trendAnalysis.
const (
	TrendSignificantImprovement = "significant improvement"
	TrendSlightImprovement      = "slight improvement"
	TrendStable                 = "stable"
	TrendSlightDecline          = "slight decline"
	TrendSignificantDecline     = "significant decline"
	TrendInsufficientData       = "insufficient data"
)

// Etiquetas de visitFrequency.
const (
	VisitsVeryRegular   = "very regular"
	VisitsRegular       = "regular"
	VisitsInfrequent    = "infrequent"
	VisitsAbsent        = "absent"
	VisitsNeverRecorded = "never recorded"
)

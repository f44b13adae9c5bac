package wellness

import (
	"strings"

	"pet-wellness/internal/domain/records"
)

// Caps fijos por componente. Suman 100.
const (
	capVitals     = 25.0
	capEmotional  = 30.0
	capMedical    = 20.0
	capBehavioral = 15.0
	capActivity   = 10.0

	pointsTemperature = 8.0
	pointsHeartRate   = 8.0
	pointsRespiration = 9.0

	pointsRecentCheckup = 8.0
	bonusFrequentVisits = 2.0
	pointsOldCheckup    = 4.0
	pointsVaccination   = 5.0
	pointsMedication    = 3.0
	pointsInsurance     = 2.0
)

// emotionScores mapea la emoción primaria a un puntaje base 0-100.
// Las etiquetas llegan en inglés o italiano según el modelo de análisis usado.
var emotionScores = map[string]float64{
	"happy":      90,
	"felice":     90,
	"calm":       85,
	"calmo":      85,
	"relaxed":    80,
	"rilassato":  80,
	"excited":    75,
	"eccitato":   75,
	"curious":    70,
	"curioso":    70,
	"neutral":    50,
	"neutro":     50,
	"anxious":    35,
	"ansioso":    35,
	"sad":        30,
	"triste":     30,
	"fearful":    25,
	"spaventato": 25,
	"aggressive": 15,
	"aggressivo": 15,
}

const defaultEmotionScore = 50.0

func emotionScore(emotion string) float64 {
	if s, ok := emotionScores[strings.ToLower(strings.TrimSpace(emotion))]; ok {
		return s
	}
	return defaultEmotionScore
}

// activityTags son las etiquetas de diario que cuentan como actividad física.
var activityTags = map[string]struct{}{
	"active":      {},
	"attivo":      {},
	"playful":     {},
	"giocoso":     {},
	"energetic":   {},
	"energico":    {},
	"walk":        {},
	"passeggiata": {},
	"play":        {},
	"gioco":       {},
}

func isActivityTag(tag string) bool {
	_, ok := activityTags[strings.ToLower(strings.TrimSpace(tag))]
	return ok
}

// vitalRange define banda saludable y banda de precaución para un signo vital.
// Fuera de la banda de precaución se considera crítico.
type vitalRange struct {
	HealthyMin, HealthyMax float64
	CautionMin, CautionMax float64
}

func (r vitalRange) healthy(v float64) bool {
	return v >= r.HealthyMin && v <= r.HealthyMax
}

func (r vitalRange) caution(v float64) bool {
	return v >= r.CautionMin && v <= r.CautionMax
}

// Temperatura y respiración no dependen de la especie.
var (
	temperatureRange = vitalRange{HealthyMin: 37.5, HealthyMax: 39.2, CautionMin: 36.5, CautionMax: 40.0}
	respirationRange = vitalRange{HealthyMin: 10, HealthyMax: 35, CautionMin: 8, CautionMax: 45}

	heartRateDog = vitalRange{HealthyMin: 60, HealthyMax: 140, CautionMin: 50, CautionMax: 160}
	heartRateCat = vitalRange{HealthyMin: 140, HealthyMax: 220, CautionMin: 120, CautionMax: 240}
)

// rangeFor elige la tabla de rangos según el tipo de vital y la especie.
// Especie desconocida cae en los rangos de perro.
func rangeFor(typ records.VitalType, species string) vitalRange {
	switch typ {
	case records.VitalTemperature:
		return temperatureRange
	case records.VitalRespiration:
		return respirationRange
	default:
		s := strings.ToLower(species)
		if strings.Contains(s, "cat") || strings.Contains(s, "gatto") {
			return heartRateCat
		}
		return heartRateDog
	}
}

// Pesos de dataCompleteness por categoría presente (suman 100).
const (
	weightVitalsPresent   = 25
	weightAnalysesPresent = 25
	weightMedicalPresent  = 20
	weightDiaryPresent    = 20
	weightActivityPresent = 10
)

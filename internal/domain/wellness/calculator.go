package wellness

import (
	"fmt"
	"math"
	"sort"
	"time"

	"pet-wellness/internal/domain/records"
)

// Calculator computa el puntaje compuesto de bienestar.
// Es puro salvo por now, que se inyecta para poder fijarlo en tests:
// los chequeos de recencia de cuidado (último checkup / vacuna) miran el
// historial completo relativo a "ahora", no a la ventana.
type Calculator struct {
	now func() time.Time
}

func NewCalculator() *Calculator {
	return &Calculator{now: time.Now}
}

// NewCalculatorAt crea un Calculator con reloj fijo (tests, recomputes).
func NewCalculatorAt(now func() time.Time) *Calculator {
	if now == nil {
		now = time.Now
	}
	return &Calculator{now: now}
}

// Score evalúa el historial completo contra la ventana dada.
// Nunca falla: toda rama de "sin datos" vale 0 y agrega una recomendación.
func (c *Calculator) Score(h records.History, w Window, species string) Score {
	now := c.now()
	win := FilterWindow(h, w)

	// Una ventana inválida vale como vacía también para los lookups de
	// cuidado relativos a "ahora": todos los sub-puntajes quedan en 0.
	careHistory := h
	if w.Empty() {
		careHistory = records.History{}
	}

	var recs []string

	vitals, r := scoreVitals(win, species)
	recs = append(recs, r...)

	emotional, r := scoreEmotional(win)
	recs = append(recs, r...)

	medical, r := scoreMedicalCare(careHistory, win, now)
	recs = append(recs, r...)

	behavioral, r := scoreBehavioral(win)
	recs = append(recs, r...)

	activity, r := scoreActivity(win)
	recs = append(recs, r...)

	comp := Components{
		VitalParameters:   vitals,
		EmotionalWellness: emotional,
		MedicalCare:       medical,
		BehavioralHealth:  behavioral,
		Activity:          activity,
	}

	total := comp.VitalParameters + comp.EmotionalWellness + comp.MedicalCare +
		comp.BehavioralHealth + comp.Activity

	if recs == nil {
		recs = []string{}
	}

	return Score{
		Score:      int(math.Round(total)),
		Components: comp,
		Factors: Factors{
			DataCompleteness:       dataCompleteness(win),
			RecentDataAvailability: recentDataAvailability(win),
			TrendAnalysis:          trendAnalysis(h.Analyses),
			VisitFrequency:         visitFrequency(h, now),
		},
		Recommendations: recs,
	}
}

// vitalSplit fija el orden de evaluación y el puntaje pleno por vital.
// El orden importa: las recomendaciones salen en orden de descubrimiento.
var vitalSplit = []struct {
	Type   records.VitalType
	Name   string
	Points float64
}{
	{records.VitalTemperature, "temperature", pointsTemperature},
	{records.VitalHeartRate, "heart rate", pointsHeartRate},
	{records.VitalRespiration, "respiration", pointsRespiration},
}

func scoreVitals(win WindowedRecords, species string) (float64, []string) {
	if len(win.VitalAverages) == 0 {
		return 0, []string{"No vital signs recorded in this period: log temperature, heart rate and respiration"}
	}

	var total float64
	var recs []string

	for _, vs := range vitalSplit {
		avg, ok := win.VitalAverages[vs.Type]
		if !ok {
			// Vital ausente: no suma y no penaliza con recomendación propia.
			continue
		}

		rng := rangeFor(vs.Type, species)
		switch {
		case rng.healthy(avg):
			total += vs.Points
		case rng.caution(avg):
			total += vs.Points / 2
			recs = append(recs, fmt.Sprintf("Average %s is outside the ideal range: keep monitoring it", vs.Name))
		default:
			recs = append(recs, fmt.Sprintf("Average %s is at a critical level: consult a veterinarian as soon as possible", vs.Name))
		}
	}

	return clamp(total, 0, capVitals), recs
}

func scoreEmotional(win WindowedRecords) (float64, []string) {
	if len(win.Analyses) == 0 {
		return 0, []string{"No emotion analyses in this period: run one to track emotional wellness"}
	}

	var sum float64
	for _, a := range win.Analyses {
		sum += adjustedEmotionScore(a)
	}
	avg := sum / float64(len(win.Analyses))

	var recs []string
	switch {
	case avg < 40:
		recs = append(recs, "Emotional state looks concerning: consider a veterinary or behavioral consult")
	case avg < 60:
		recs = append(recs, "Emotional wellness is below average: keep monitoring with regular analyses")
	}

	return clamp(avg/100*capEmotional, 0, capEmotional), recs
}

// adjustedEmotionScore ajusta el puntaje base por la confianza del análisis:
// confianza > 0.5 sube, < 0.5 baja. Resultado siempre en 0..100.
func adjustedEmotionScore(a records.EmotionAnalysis) float64 {
	base := emotionScore(a.PrimaryEmotion)
	return clamp(base+(a.PrimaryConfidence-0.5)*20, 0, 100)
}

// careCategories son las categorías de visita que cuentan como chequeo.
var careCategories = map[records.VisitCategory]struct{}{
	records.VisitVeterinary:  {},
	records.VisitCheckup:     {},
	records.VisitVaccination: {},
	records.VisitTreatment:   {},
}

// careDates une fechas de chequeo de ambas fuentes: registros médicos de tipo
// checkup y visitas veterinarias completadas en categorías de cuidado.
// Mira el historial COMPLETO, no la ventana.
func careDates(h records.History) []time.Time {
	var out []time.Time
	for _, m := range h.Medical {
		if m.RecordType == records.MedicalCheckup && !m.RecordDate.IsZero() {
			out = append(out, m.RecordDate)
		}
	}
	for _, v := range h.Visits {
		if v.Status != records.VisitCompleted || v.StartTime.IsZero() {
			continue
		}
		if _, ok := careCategories[v.Category]; ok {
			out = append(out, v.StartTime)
		}
	}
	return out
}

func vaccinationDates(h records.History) []time.Time {
	var out []time.Time
	for _, m := range h.Medical {
		if m.RecordType == records.MedicalVaccination && !m.RecordDate.IsZero() {
			out = append(out, m.RecordDate)
		}
	}
	for _, v := range h.Visits {
		if v.Status == records.VisitCompleted && v.Category == records.VisitVaccination && !v.StartTime.IsZero() {
			out = append(out, v.StartTime)
		}
	}
	return out
}

func countSince(dates []time.Time, cutoff, now time.Time) int {
	n := 0
	for _, d := range dates {
		if !d.Before(cutoff) && !d.After(now) {
			n++
		}
	}
	return n
}

// scoreMedicalCare mezcla a propósito dos marcos temporales: la recencia de
// chequeos y vacunas se mide contra "ahora" sobre el historial completo,
// mientras que medicación y seguro se miran dentro de la ventana.
func scoreMedicalCare(h records.History, win WindowedRecords, now time.Time) (float64, []string) {
	var total float64
	var recs []string

	care := careDates(h)
	sixMonthsAgo := now.AddDate(0, -6, 0)
	twelveMonthsAgo := now.AddDate(0, -12, 0)

	switch n6 := countSince(care, sixMonthsAgo, now); {
	case n6 >= 2:
		total += pointsRecentCheckup + bonusFrequentVisits
	case n6 == 1:
		total += pointsRecentCheckup
	case countSince(care, twelveMonthsAgo, now) >= 1:
		total += pointsOldCheckup
		recs = append(recs, "It has been a while since the last checkup: schedule one")
	default:
		recs = append(recs, "No recent checkup on record: book a veterinary visit urgently")
	}

	if countSince(vaccinationDates(h), twelveMonthsAgo, now) >= 1 {
		total += pointsVaccination
	} else {
		recs = append(recs, "Verify vaccination status with your veterinarian")
	}

	if len(win.Medications) > 0 {
		total += pointsMedication
	}
	for _, m := range h.Medications {
		if m.IsActive && m.EndDate != nil && m.EndDate.Before(now) {
			recs = append(recs, "A medication marked active has already ended: update or renew the treatment")
			break
		}
	}

	if len(win.Policies) > 0 {
		total += pointsInsurance
	}

	return clamp(total, 0, capMedical), recs
}

func scoreBehavioral(win WindowedRecords) (float64, []string) {
	if len(win.Diary) == 0 {
		return 0, []string{"Keep a regular diary to track behavior and mood"}
	}

	var moodSum float64
	moodCount := 0
	for _, d := range win.Diary {
		// MoodScore nil no cuenta para el promedio (no es un cero).
		if d.MoodScore != nil {
			moodSum += float64(*d.MoodScore)
			moodCount++
		}
	}

	var total float64
	var recs []string

	if moodCount > 0 {
		avg := moodSum / float64(moodCount)
		total += avg // 1..10 mapea directo a 0..10 puntos
		if avg < 4 {
			recs = append(recs, "Mood has been low lately: consider a behavioral consult")
		}
	}

	switch n := len(win.Diary); {
	case n >= 7:
		total += 5
	case n >= 3:
		total += 3
	}

	return clamp(total, 0, capBehavioral), recs
}

func scoreActivity(win WindowedRecords) (float64, []string) {
	active := 0
	for _, d := range win.Diary {
		for _, tag := range d.BehavioralTags {
			if isActivityTag(tag) {
				active++
				break
			}
		}
	}

	switch {
	case active >= 5:
		return capActivity, nil
	case active >= 3:
		return 7, nil
	case active >= 1:
		return 4, []string{"Increase physical activity: aim for daily walks and play sessions"}
	default:
		return 0, []string{"Log physical activities in the diary (walks, play, exercise)"}
	}
}

// dataCompleteness es un indicador de cobertura 0-100, independiente de qué tan
// buenos sean los datos.
func dataCompleteness(win WindowedRecords) int {
	total := 0
	if len(win.Vitals) > 0 {
		total += weightVitalsPresent
	}
	if len(win.Analyses) > 0 {
		total += weightAnalysesPresent
	}
	if len(win.Medical) > 0 || len(win.Visits) > 0 {
		total += weightMedicalPresent
	}
	if len(win.Diary) > 0 {
		total += weightDiaryPresent
	}
	for _, d := range win.Diary {
		tagged := false
		for _, tag := range d.BehavioralTags {
			if isActivityTag(tag) {
				tagged = true
				break
			}
		}
		if tagged {
			total += weightActivityPresent
			break
		}
	}
	if total > 100 {
		total = 100
	}
	return total
}

// recentDataAvailability reparte en tercios iguales la presencia de vitales,
// análisis y diario dentro de la ventana.
func recentDataAvailability(win WindowedRecords) int {
	present := 0
	if len(win.Vitals) > 0 {
		present++
	}
	if len(win.Analyses) > 0 {
		present++
	}
	if len(win.Diary) > 0 {
		present++
	}
	return int(math.Round(float64(present) * 100 / 3))
}

// trendAnalysis compara los 5 análisis más recientes contra los 5 anteriores
// sobre el historial completo (no la ventana). Menos de 10 → sin datos.
func trendAnalysis(analyses []records.EmotionAnalysis) string {
	if len(analyses) < 10 {
		return TrendInsufficientData
	}

	sorted := make([]records.EmotionAnalysis, len(analyses))
	copy(sorted, analyses)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	avgOf := func(as []records.EmotionAnalysis) float64 {
		var sum float64
		for _, a := range as {
			sum += adjustedEmotionScore(a)
		}
		return sum / float64(len(as))
	}

	recent := avgOf(sorted[:5])
	older := avgOf(sorted[5:10])

	if older == 0 {
		if recent > 0 {
			return TrendSignificantImprovement
		}
		return TrendStable
	}

	delta := (recent - older) / older * 100
	switch {
	case delta > 10:
		return TrendSignificantImprovement
	case delta > 3:
		return TrendSlightImprovement
	case delta >= -3:
		return TrendStable
	case delta >= -10:
		return TrendSlightDecline
	default:
		return TrendSignificantDecline
	}
}

// visitFrequency clasifica la cadencia de cuidado sobre los últimos 3 y 6
// meses relativos a "ahora".
func visitFrequency(h records.History, now time.Time) string {
	care := careDates(h)
	if len(care) == 0 {
		return VisitsNeverRecorded
	}

	n3 := countSince(care, now.AddDate(0, -3, 0), now)
	n6 := countSince(care, now.AddDate(0, -6, 0), now)
	n12 := countSince(care, now.AddDate(0, -12, 0), now)

	switch {
	case n3 >= 1 && n6 >= 2:
		return VisitsVeryRegular
	case n6 >= 1:
		return VisitsRegular
	case n12 >= 1:
		return VisitsInfrequent
	default:
		return VisitsAbsent
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package wellness

import (
	"math"
	"reflect"
	"testing"
	"time"

	"pet-wellness/internal/domain/records"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func testCalc() *Calculator {
	return NewCalculatorAt(func() time.Time { return testNow })
}

func lastMonth() Window {
	return Window{Start: testNow.AddDate(0, -1, 0), End: testNow}
}

func intPtr(n int) *int { return &n }

func richHistory() records.History {
	inWindow := testNow.AddDate(0, 0, -10)
	endDate := testNow.AddDate(0, 2, 0)
	return records.History{
		Vitals: []records.VitalMetric{
			{Type: records.VitalTemperature, Value: 38.5, RecordedAt: inWindow},
			{Type: records.VitalHeartRate, Value: 90, RecordedAt: inWindow},
			{Type: records.VitalRespiration, Value: 20, RecordedAt: inWindow},
		},
		Medical: []records.MedicalRecord{
			{RecordType: records.MedicalCheckup, Title: "control anual", RecordDate: testNow.AddDate(0, -2, 0)},
			{RecordType: records.MedicalVaccination, Title: "rabia", RecordDate: testNow.AddDate(0, -4, 0)},
		},
		Medications: []records.Medication{
			{Name: "antiparasitario", StartDate: testNow.AddDate(0, -1, 0), EndDate: &endDate, IsActive: true},
		},
		Analyses: []records.EmotionAnalysis{
			{PrimaryEmotion: "happy", PrimaryConfidence: 0.9, CreatedAt: inWindow},
			{PrimaryEmotion: "calm", PrimaryConfidence: 0.8, CreatedAt: inWindow.Add(time.Hour)},
		},
		Diary: []records.DiaryEntry{
			{EntryDate: inWindow, MoodScore: intPtr(8), BehavioralTags: []string{"giocoso"}},
			{EntryDate: inWindow.AddDate(0, 0, 1), MoodScore: intPtr(7), BehavioralTags: []string{"walk"}},
			{EntryDate: inWindow.AddDate(0, 0, 2), MoodScore: intPtr(9), BehavioralTags: []string{"attivo"}},
		},
		Visits: []records.VeterinaryVisit{
			{Category: records.VisitCheckup, Status: records.VisitCompleted, StartTime: testNow.AddDate(0, -5, 0)},
		},
		Policies: []records.InsurancePolicy{
			{Provider: "segura", IsActive: true, StartDate: testNow.AddDate(-1, 0, 0)},
		},
	}
}

func TestScore_EmptyHistory(t *testing.T) {
	got := testCalc().Score(records.History{}, lastMonth(), "dog")

	if got.Score != 0 {
		t.Fatalf("expected score 0 on empty history, got %d", got.Score)
	}
	if got.Components != (Components{}) {
		t.Fatalf("expected all components at 0, got %+v", got.Components)
	}

	want := []string{
		"No vital signs recorded in this period: log temperature, heart rate and respiration",
		"No emotion analyses in this period: run one to track emotional wellness",
		"No recent checkup on record: book a veterinary visit urgently",
		"Verify vaccination status with your veterinarian",
		"Keep a regular diary to track behavior and mood",
		"Log physical activities in the diary (walks, play, exercise)",
	}
	if !reflect.DeepEqual(got.Recommendations, want) {
		t.Fatalf("recommendations mismatch:\n got  %v\n want %v", got.Recommendations, want)
	}

	if got.Factors.DataCompleteness != 0 || got.Factors.RecentDataAvailability != 0 {
		t.Fatalf("expected zero data factors, got %+v", got.Factors)
	}
	if got.Factors.TrendAnalysis != TrendInsufficientData {
		t.Fatalf("expected %q, got %q", TrendInsufficientData, got.Factors.TrendAnalysis)
	}
	if got.Factors.VisitFrequency != VisitsNeverRecorded {
		t.Fatalf("expected %q, got %q", VisitsNeverRecorded, got.Factors.VisitFrequency)
	}
}

func TestScore_RangeCapsAndRounding(t *testing.T) {
	got := testCalc().Score(richHistory(), lastMonth(), "dog")

	if got.Score < 0 || got.Score > 100 {
		t.Fatalf("score out of range: %d", got.Score)
	}

	c := got.Components
	sum := c.VitalParameters + c.EmotionalWellness + c.MedicalCare + c.BehavioralHealth + c.Activity
	if got.Score != int(math.Round(sum)) {
		t.Fatalf("score %d does not round component sum %v", got.Score, sum)
	}

	caps := []struct {
		name string
		v    float64
		cap  float64
	}{
		{"vitalParameters", c.VitalParameters, 25},
		{"emotionalWellness", c.EmotionalWellness, 30},
		{"medicalCare", c.MedicalCare, 20},
		{"behavioralHealth", c.BehavioralHealth, 15},
		{"activity", c.Activity, 10},
	}
	for _, tc := range caps {
		if tc.v < 0 || tc.v > tc.cap {
			t.Fatalf("%s = %v outside [0, %v]", tc.name, tc.v, tc.cap)
		}
	}
}

func TestScore_Idempotent(t *testing.T) {
	h := richHistory()
	w := lastMonth()
	calc := testCalc()

	first := calc.Score(h, w, "dog")
	second := calc.Score(h, w, "dog")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same inputs produced different results:\n %+v\n %+v", first, second)
	}
}

func TestScore_InvalidWindowZeroesEverything(t *testing.T) {
	// El historial tiene chequeos y vacunas recientes; con una ventana
	// inválida ni siquiera los lookups relativos a "ahora" deben sumar.
	got := testCalc().Score(richHistory(), Window{Start: testNow, End: testNow}, "dog")

	if got.Score != 0 {
		t.Fatalf("expected score 0 on invalid window, got %d", got.Score)
	}
	if got.Components != (Components{}) {
		t.Fatalf("expected all components at 0, got %+v", got.Components)
	}
}

func TestScoreVitals_HealthyDogTemperature(t *testing.T) {
	h := records.History{
		Vitals: []records.VitalMetric{
			{Type: records.VitalTemperature, Value: 38.5, RecordedAt: testNow.AddDate(0, 0, -1)},
		},
	}
	got := testCalc().Score(h, lastMonth(), "dog")

	if got.Components.VitalParameters != 8 {
		t.Fatalf("expected 8 points for healthy temperature, got %v", got.Components.VitalParameters)
	}
	for _, r := range got.Recommendations {
		if r == "No vital signs recorded in this period: log temperature, heart rate and respiration" {
			t.Fatalf("unexpected no-vitals recommendation")
		}
	}
}

func TestScoreVitals_CautionAndCritical(t *testing.T) {
	h := records.History{
		Vitals: []records.VitalMetric{
			// respiración 40: fuera de 10-35 pero dentro de 8-45 → mitad
			{Type: records.VitalRespiration, Value: 40, RecordedAt: testNow.AddDate(0, 0, -1)},
			// frecuencia cardíaca 200 en perro: fuera incluso de 50-160 → crítico
			{Type: records.VitalHeartRate, Value: 200, RecordedAt: testNow.AddDate(0, 0, -1)},
		},
	}
	got := testCalc().Score(h, lastMonth(), "dog")

	if got.Components.VitalParameters != 4.5 {
		t.Fatalf("expected 4.5 (half respiration, zero heart rate), got %v", got.Components.VitalParameters)
	}

	var caution, critical bool
	for _, r := range got.Recommendations {
		switch r {
		case "Average respiration is outside the ideal range: keep monitoring it":
			caution = true
		case "Average heart rate is at a critical level: consult a veterinarian as soon as possible":
			critical = true
		}
	}
	if !caution || !critical {
		t.Fatalf("missing vital recommendations, got %v", got.Recommendations)
	}
}

func TestScoreVitals_SpeciesHeartRate(t *testing.T) {
	h := records.History{
		Vitals: []records.VitalMetric{
			{Type: records.VitalHeartRate, Value: 150, RecordedAt: testNow.AddDate(0, 0, -1)},
		},
	}
	calc := testCalc()

	// 150 bpm es precaución para perro (sano 60-140) pero sano para gato.
	if got := calc.Score(h, lastMonth(), "dog").Components.VitalParameters; got != 4 {
		t.Fatalf("dog: expected 4, got %v", got)
	}
	if got := calc.Score(h, lastMonth(), "Gatto Europeo").Components.VitalParameters; got != 8 {
		t.Fatalf("cat: expected 8, got %v", got)
	}
}

func TestScoreEmotional_AddingHappyNeverLowers(t *testing.T) {
	h := records.History{
		Analyses: []records.EmotionAnalysis{
			{PrimaryEmotion: "sad", PrimaryConfidence: 0.9, CreatedAt: testNow.AddDate(0, 0, -3)},
			{PrimaryEmotion: "anxious", PrimaryConfidence: 0.7, CreatedAt: testNow.AddDate(0, 0, -2)},
		},
	}
	calc := testCalc()
	before := calc.Score(h, lastMonth(), "dog").Components.EmotionalWellness

	h.Analyses = append(h.Analyses, records.EmotionAnalysis{
		PrimaryEmotion: "happy", PrimaryConfidence: 1.0, CreatedAt: testNow.AddDate(0, 0, -1),
	})
	after := calc.Score(h, lastMonth(), "dog").Components.EmotionalWellness

	if after < before {
		t.Fatalf("adding a confident happy analysis lowered the component: %v -> %v", before, after)
	}
}

func TestScoreEmotional_LowAverageRecommendation(t *testing.T) {
	h := records.History{
		Analyses: []records.EmotionAnalysis{
			// aggressive con confianza 0.5 → 15, muy por debajo de 40
			{PrimaryEmotion: "aggressive", PrimaryConfidence: 0.5, CreatedAt: testNow.AddDate(0, 0, -1)},
		},
	}
	got := testCalc().Score(h, lastMonth(), "dog")

	found := false
	for _, r := range got.Recommendations {
		if r == "Emotional state looks concerning: consider a veterinary or behavioral consult" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected concerning-state recommendation, got %v", got.Recommendations)
	}
}

func TestScoreMedical_VisitCountsAsCheckup(t *testing.T) {
	// Sin registros médicos: una visita completada hace 2 meses debe
	// contar igual como chequeo reciente.
	h := records.History{
		Visits: []records.VeterinaryVisit{
			{Category: records.VisitVeterinary, Status: records.VisitCompleted, StartTime: testNow.AddDate(0, -2, 0)},
		},
	}
	got := testCalc().Score(h, lastMonth(), "dog")

	if got.Components.MedicalCare < 8 {
		t.Fatalf("expected at least 8 for a recent completed visit, got %v", got.Components.MedicalCare)
	}
	if got.Factors.VisitFrequency != VisitsRegular {
		t.Fatalf("expected %q, got %q", VisitsRegular, got.Factors.VisitFrequency)
	}
}

func TestScoreMedical_ScheduledVisitDoesNotCount(t *testing.T) {
	h := records.History{
		Visits: []records.VeterinaryVisit{
			{Category: records.VisitCheckup, Status: records.VisitScheduled, StartTime: testNow.AddDate(0, -2, 0)},
		},
	}
	got := testCalc().Score(h, lastMonth(), "dog")

	if got.Components.MedicalCare != 0 {
		t.Fatalf("scheduled visit must not score, got %v", got.Components.MedicalCare)
	}
	if got.Factors.VisitFrequency != VisitsNeverRecorded {
		t.Fatalf("expected %q, got %q", VisitsNeverRecorded, got.Factors.VisitFrequency)
	}
}

func TestScoreMedical_FrequentVisitsBonus(t *testing.T) {
	h := records.History{
		Medical: []records.MedicalRecord{
			{RecordType: records.MedicalCheckup, RecordDate: testNow.AddDate(0, -1, 0)},
			{RecordType: records.MedicalCheckup, RecordDate: testNow.AddDate(0, -4, 0)},
		},
	}
	got := testCalc().Score(h, lastMonth(), "dog")

	// 8 por chequeo reciente + 2 de bono por frecuencia
	if got.Components.MedicalCare != 10 {
		t.Fatalf("expected 10, got %v", got.Components.MedicalCare)
	}
	if got.Factors.VisitFrequency != VisitsVeryRegular {
		t.Fatalf("expected %q, got %q", VisitsVeryRegular, got.Factors.VisitFrequency)
	}
}

func TestScoreMedical_OldCheckupPartialCredit(t *testing.T) {
	h := records.History{
		Medical: []records.MedicalRecord{
			{RecordType: records.MedicalCheckup, RecordDate: testNow.AddDate(0, -9, 0)},
		},
	}
	got := testCalc().Score(h, lastMonth(), "dog")

	if got.Components.MedicalCare != 4 {
		t.Fatalf("expected 4 for a 9-month-old checkup, got %v", got.Components.MedicalCare)
	}

	found := false
	for _, r := range got.Recommendations {
		if r == "It has been a while since the last checkup: schedule one" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected stale-checkup recommendation, got %v", got.Recommendations)
	}
	if got.Factors.VisitFrequency != VisitsInfrequent {
		t.Fatalf("expected %q, got %q", VisitsInfrequent, got.Factors.VisitFrequency)
	}
}

func TestScoreMedical_ExpiredActiveMedication(t *testing.T) {
	ended := testNow.AddDate(0, -2, 0)
	h := records.History{
		Medications: []records.Medication{
			{Name: "x", StartDate: testNow.AddDate(0, -4, 0), EndDate: &ended, IsActive: true},
		},
	}
	got := testCalc().Score(h, lastMonth(), "dog")

	found := false
	for _, r := range got.Recommendations {
		if r == "A medication marked active has already ended: update or renew the treatment" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected expired-medication recommendation, got %v", got.Recommendations)
	}
}

func TestScoreActivity_FiveActiveDays(t *testing.T) {
	var diary []records.DiaryEntry
	for i := 0; i < 5; i++ {
		diary = append(diary, records.DiaryEntry{
			EntryDate:      testNow.AddDate(0, 0, -(i + 1)),
			BehavioralTags: []string{"giocoso"},
		})
	}
	got := testCalc().Score(records.History{Diary: diary}, lastMonth(), "dog")

	if got.Components.Activity != 10 {
		t.Fatalf("expected full activity score, got %v", got.Components.Activity)
	}
	for _, r := range got.Recommendations {
		if r == "Increase physical activity: aim for daily walks and play sessions" ||
			r == "Log physical activities in the diary (walks, play, exercise)" {
			t.Fatalf("unexpected activity recommendation: %q", r)
		}
	}
}

func TestScoreActivity_FewActiveDays(t *testing.T) {
	h := records.History{
		Diary: []records.DiaryEntry{
			{EntryDate: testNow.AddDate(0, 0, -1), BehavioralTags: []string{"passeggiata"}},
		},
	}
	got := testCalc().Score(h, lastMonth(), "dog")

	if got.Components.Activity != 4 {
		t.Fatalf("expected 4, got %v", got.Components.Activity)
	}
	found := false
	for _, r := range got.Recommendations {
		if r == "Increase physical activity: aim for daily walks and play sessions" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected increase-activity recommendation, got %v", got.Recommendations)
	}
}

func TestTrendAnalysis_SignificantImprovement(t *testing.T) {
	var analyses []records.EmotionAnalysis
	// 5 viejos neutrales, luego 5 recientes felices
	for i := 0; i < 5; i++ {
		analyses = append(analyses, records.EmotionAnalysis{
			PrimaryEmotion: "neutral", PrimaryConfidence: 0.5,
			CreatedAt: testNow.AddDate(0, 0, -20+i),
		})
	}
	for i := 0; i < 5; i++ {
		analyses = append(analyses, records.EmotionAnalysis{
			PrimaryEmotion: "happy", PrimaryConfidence: 0.5,
			CreatedAt: testNow.AddDate(0, 0, -5+i),
		})
	}

	got := testCalc().Score(records.History{Analyses: analyses}, lastMonth(), "dog")
	if got.Factors.TrendAnalysis != TrendSignificantImprovement {
		t.Fatalf("expected %q, got %q", TrendSignificantImprovement, got.Factors.TrendAnalysis)
	}
}

func TestTrendAnalysis_NeedsTenAnalyses(t *testing.T) {
	var analyses []records.EmotionAnalysis
	for i := 0; i < 9; i++ {
		analyses = append(analyses, records.EmotionAnalysis{
			PrimaryEmotion: "happy", PrimaryConfidence: 0.5,
			CreatedAt: testNow.AddDate(0, 0, -i-1),
		})
	}
	got := testCalc().Score(records.History{Analyses: analyses}, lastMonth(), "dog")
	if got.Factors.TrendAnalysis != TrendInsufficientData {
		t.Fatalf("expected %q, got %q", TrendInsufficientData, got.Factors.TrendAnalysis)
	}
}

func TestFactors_RecentDataAvailability(t *testing.T) {
	in := testNow.AddDate(0, 0, -1)
	cases := []struct {
		name string
		h    records.History
		want int
	}{
		{"none", records.History{}, 0},
		{"one of three", records.History{
			Vitals: []records.VitalMetric{{Type: records.VitalTemperature, Value: 38, RecordedAt: in}},
		}, 33},
		{"two of three", records.History{
			Vitals:   []records.VitalMetric{{Type: records.VitalTemperature, Value: 38, RecordedAt: in}},
			Analyses: []records.EmotionAnalysis{{PrimaryEmotion: "happy", PrimaryConfidence: 0.5, CreatedAt: in}},
		}, 67},
		{"all three", records.History{
			Vitals:   []records.VitalMetric{{Type: records.VitalTemperature, Value: 38, RecordedAt: in}},
			Analyses: []records.EmotionAnalysis{{PrimaryEmotion: "happy", PrimaryConfidence: 0.5, CreatedAt: in}},
			Diary:    []records.DiaryEntry{{EntryDate: in}},
		}, 100},
	}

	calc := testCalc()
	for _, tc := range cases {
		got := calc.Score(tc.h, lastMonth(), "dog").Factors.RecentDataAvailability
		if got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestFactors_DataCompleteness(t *testing.T) {
	got := testCalc().Score(richHistory(), lastMonth(), "dog").Factors.DataCompleteness
	// Los registros médicos y las visitas del historial rico caen fuera de la
	// ventana de un mes: cuentan vitales, análisis, diario y actividad.
	if got != 80 {
		t.Fatalf("expected 80, got %d", got)
	}
}

package wellness

import (
	"testing"
	"time"

	"pet-wellness/internal/domain/records"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFilterWindow_HalfOpenBoundaries(t *testing.T) {
	start := day(2026, 3, 1)
	end := day(2026, 3, 8)

	h := records.History{
		Vitals: []records.VitalMetric{
			{ID: "at-start", Type: records.VitalTemperature, Value: 38.0, RecordedAt: start},
			{ID: "at-end", Type: records.VitalTemperature, Value: 39.0, RecordedAt: end},
			{ID: "inside", Type: records.VitalTemperature, Value: 38.5, RecordedAt: start.Add(24 * time.Hour)},
		},
	}

	win := FilterWindow(h, Window{Start: start, End: end})

	if len(win.Vitals) != 2 {
		t.Fatalf("expected 2 vitals in window, got %d", len(win.Vitals))
	}
	for _, v := range win.Vitals {
		if v.ID == "at-end" {
			t.Fatalf("reading exactly at periodEnd must be excluded")
		}
	}
}

func TestFilterWindow_InvalidWindowYieldsEmpty(t *testing.T) {
	at := day(2026, 3, 1)
	h := records.History{
		Vitals: []records.VitalMetric{{Type: records.VitalTemperature, Value: 38, RecordedAt: at}},
		Diary:  []records.DiaryEntry{{EntryDate: at}},
	}

	// end == start
	win := FilterWindow(h, Window{Start: at, End: at})
	if len(win.Vitals) != 0 || len(win.Diary) != 0 {
		t.Fatalf("empty window must yield empty sets")
	}

	// end < start
	win = FilterWindow(h, Window{Start: at, End: at.Add(-time.Hour)})
	if len(win.Vitals) != 0 || len(win.Diary) != 0 {
		t.Fatalf("inverted window must yield empty sets")
	}
}

func TestFilterWindow_AveragesDuplicateReadings(t *testing.T) {
	start := day(2026, 3, 1)
	h := records.History{
		Vitals: []records.VitalMetric{
			{Type: records.VitalHeartRate, Value: 80, RecordedAt: start.Add(1 * time.Hour)},
			{Type: records.VitalHeartRate, Value: 120, RecordedAt: start.Add(2 * time.Hour)},
			{Type: records.VitalTemperature, Value: 38.5, RecordedAt: start.Add(3 * time.Hour)},
		},
	}

	win := FilterWindow(h, Window{Start: start, End: start.AddDate(0, 0, 1)})

	if got := win.VitalAverages[records.VitalHeartRate]; got != 100 {
		t.Fatalf("expected heart rate average 100, got %v", got)
	}
	if got := win.VitalAverages[records.VitalTemperature]; got != 38.5 {
		t.Fatalf("expected temperature average 38.5, got %v", got)
	}
}

func TestFilterWindow_SkipsRecordsWithZeroDate(t *testing.T) {
	start := day(2026, 3, 1)
	h := records.History{
		Vitals: []records.VitalMetric{
			{Type: records.VitalTemperature, Value: 38.5}, // sin RecordedAt
		},
		Medical: []records.MedicalRecord{
			{RecordType: records.MedicalCheckup, Title: "x"}, // sin RecordDate
		},
	}

	win := FilterWindow(h, Window{Start: start, End: start.AddDate(1, 0, 0)})
	if len(win.Vitals) != 0 || len(win.Medical) != 0 {
		t.Fatalf("records with zero dates must be skipped, got %d vitals %d medical", len(win.Vitals), len(win.Medical))
	}
}

func TestFilterWindow_MedicationOverlap(t *testing.T) {
	start := day(2026, 3, 1)
	end := day(2026, 4, 1)
	before := day(2026, 1, 10)
	endsInside := day(2026, 3, 15)
	endsBefore := day(2026, 2, 1)

	h := records.History{
		Medications: []records.Medication{
			{ID: "open-ended", Name: "a", StartDate: before, IsActive: true},
			{ID: "ends-inside", Name: "b", StartDate: before, EndDate: &endsInside, IsActive: true},
			{ID: "ended-before", Name: "c", StartDate: before, EndDate: &endsBefore, IsActive: true},
			{ID: "inactive", Name: "d", StartDate: before, IsActive: false},
			{ID: "starts-after", Name: "e", StartDate: end, IsActive: true},
		},
	}

	win := FilterWindow(h, Window{Start: start, End: end})

	got := map[string]bool{}
	for _, m := range win.Medications {
		got[m.ID] = true
	}
	if !got["open-ended"] || !got["ends-inside"] {
		t.Fatalf("expected overlapping medications in window, got %v", got)
	}
	if got["ended-before"] || got["inactive"] || got["starts-after"] {
		t.Fatalf("expected non-overlapping/inactive medications excluded, got %v", got)
	}
}

func TestFilterWindow_DoesNotMutateInput(t *testing.T) {
	start := day(2026, 3, 1)
	h := records.History{
		Vitals: []records.VitalMetric{
			{Type: records.VitalTemperature, Value: 38.5, RecordedAt: start.Add(time.Hour)},
		},
	}
	orig := h.Vitals[0]

	_ = FilterWindow(h, Window{Start: start, End: start.AddDate(0, 0, 1)})

	if h.Vitals[0] != orig || len(h.Vitals) != 1 {
		t.Fatalf("input collection was mutated")
	}
}

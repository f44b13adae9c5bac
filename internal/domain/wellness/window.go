package wellness

import "pet-wellness/internal/domain/records"

// WindowedRecords es la vista recortada del historial que consume el scorer.
// Los vitales vienen además agrupados por tipo para promediar una sola vez.
type WindowedRecords struct {
	Vitals      []records.VitalMetric
	Medical     []records.MedicalRecord
	Medications []records.Medication
	Analyses    []records.EmotionAnalysis
	Diary       []records.DiaryEntry
	Visits      []records.VeterinaryVisit
	Policies    []records.InsurancePolicy

	// VitalAverages colapsa lecturas repetidas del mismo tipo en un promedio.
	VitalAverages map[records.VitalType]float64
}

// FilterWindow recorta cada colección a la ventana [w.Start, w.End).
// Cada tipo de registro se filtra por su propia fecha relevante.
// Registros con fecha cero se descartan (datos cargados a mano pueden venir
// incompletos). Una ventana inválida (End <= Start) produce la vista vacía.
// Nunca muta las colecciones de entrada.
func FilterWindow(h records.History, w Window) WindowedRecords {
	out := WindowedRecords{
		VitalAverages: make(map[records.VitalType]float64),
	}
	if w.Empty() {
		return out
	}

	sums := make(map[records.VitalType]float64)
	counts := make(map[records.VitalType]int)
	for _, v := range h.Vitals {
		if v.RecordedAt.IsZero() || !w.Contains(v.RecordedAt) {
			continue
		}
		out.Vitals = append(out.Vitals, v)
		sums[v.Type] += v.Value
		counts[v.Type]++
	}
	for typ, n := range counts {
		out.VitalAverages[typ] = sums[typ] / float64(n)
	}

	for _, m := range h.Medical {
		if m.RecordDate.IsZero() || !w.Contains(m.RecordDate) {
			continue
		}
		out.Medical = append(out.Medical, m)
	}

	// Medicaciones: activas cuyo rango de vigencia se solapa con la ventana.
	// EndDate nil = tratamiento abierto.
	for _, m := range h.Medications {
		if !m.IsActive || m.StartDate.IsZero() {
			continue
		}
		if !m.StartDate.Before(w.End) {
			continue
		}
		if m.EndDate != nil && m.EndDate.Before(w.Start) {
			continue
		}
		out.Medications = append(out.Medications, m)
	}

	for _, a := range h.Analyses {
		if a.CreatedAt.IsZero() || !w.Contains(a.CreatedAt) {
			continue
		}
		out.Analyses = append(out.Analyses, a)
	}

	for _, d := range h.Diary {
		if d.EntryDate.IsZero() || !w.Contains(d.EntryDate) {
			continue
		}
		out.Diary = append(out.Diary, d)
	}

	for _, v := range h.Visits {
		if v.StartTime.IsZero() || !w.Contains(v.StartTime) {
			continue
		}
		out.Visits = append(out.Visits, v)
	}

	for _, p := range h.Policies {
		if !p.IsActive || p.StartDate.IsZero() {
			continue
		}
		if !p.StartDate.Before(w.End) {
			continue
		}
		if p.EndDate != nil && p.EndDate.Before(w.Start) {
			continue
		}
		out.Policies = append(out.Policies, p)
	}

	return out
}

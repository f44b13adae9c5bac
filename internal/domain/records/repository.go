package records

import "context"

type Repository interface {
	AddVital(ctx context.Context, v VitalMetric) error
	AddMedical(ctx context.Context, m MedicalRecord) error
	AddMedication(ctx context.Context, m Medication) error
	AddAnalysis(ctx context.Context, a EmotionAnalysis) error
	AddDiaryEntry(ctx context.Context, d DiaryEntry) error
	AddVisit(ctx context.Context, v VeterinaryVisit) error
	AddPolicy(ctx context.Context, p InsurancePolicy) error

	// History devuelve todas las colecciones de la mascota.
	// El recorte por ventana lo hace el motor, no el storage.
	History(ctx context.Context, petID string) (History, error)
}

package records

// VitalType define los signos vitales soportados.
// @Enum temperature, heart_rate, respiration
type VitalType string

const (
	VitalTemperature VitalType = "temperature"
	VitalHeartRate   VitalType = "heart_rate"
	VitalRespiration VitalType = "respiration"
)

// MedicalRecordType clasifica los registros médicos.
// @Enum checkup, vaccination, other
type MedicalRecordType string

const (
	MedicalCheckup     MedicalRecordType = "checkup"
	MedicalVaccination MedicalRecordType = "vaccination"
	MedicalOther       MedicalRecordType = "other"
)

// VisitCategory clasifica las visitas veterinarias.
type VisitCategory string

const (
	VisitVeterinary  VisitCategory = "veterinary"
	VisitCheckup     VisitCategory = "checkup"
	VisitVaccination VisitCategory = "vaccination"
	VisitTreatment   VisitCategory = "treatment"
	VisitGrooming    VisitCategory = "grooming"
	VisitOtherCat    VisitCategory = "other"
)

// VisitStatus es el estado de una visita.
// Solo las completadas cuentan para el historial de cuidado.
type VisitStatus string

const (
	VisitScheduled VisitStatus = "scheduled"
	VisitCompleted VisitStatus = "completed"
	VisitCancelled VisitStatus = "cancelled"
)

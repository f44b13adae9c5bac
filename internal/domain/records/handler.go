package records

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-wellness/internal/domain/pets"
	"pet-wellness/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/records", func(rr chi.Router) {
		rr.Get("/", getHistoryHandler(svc, petsSvc))

		rr.Post("/vitals", addVitalHandler(svc, petsSvc))
		rr.Post("/medical", addMedicalHandler(svc, petsSvc))
		rr.Post("/medications", addMedicationHandler(svc, petsSvc))
		rr.Post("/emotions", addAnalysisHandler(svc, petsSvc))
		rr.Post("/diary", addDiaryHandler(svc, petsSvc))
		rr.Post("/visits", addVisitHandler(svc, petsSvc))
		rr.Post("/insurance", addPolicyHandler(svc, petsSvc))
	})
}

// authorizePetOwner resuelve claims + ownership y escribe el error si falla.
// Devuelve el userID y ok=true solo si el request puede seguir.
func authorizePetOwner(w http.ResponseWriter, r *http.Request, petsSvc *pets.Service) (string, string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", "", false
	}

	petID := chi.URLParam(r, "petID")
	owner, err := petsSvc.OwnerOf(r.Context(), petID)
	if err != nil {
		http.Error(w, "pet not found", http.StatusNotFound)
		return "", "", false
	}
	if owner != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", "", false
	}

	return claims.UserID, petID, true
}

type vitalRequest struct {
	Type       VitalType `json:"type" enums:"temperature,heart_rate,respiration"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	RecordedAt string    `json:"recorded_at"` // RFC3339, opcional (default ahora)
}

// addVitalHandler godoc
// @Summary Registrar signo vital
// @Description Registra una lectura de temperatura, frecuencia cardíaca o respiración.
// @Tags records
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body vitalRequest true "Lectura; recorded_at en RFC3339"
// @Success 201 {object} VitalMetric
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/records/vitals [post]
func addVitalHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req vitalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		recordedAt, ok := parseOptionalTime(w, req.RecordedAt, "recorded_at")
		if !ok {
			return
		}

		v, err := svc.AddVital(r.Context(), petID, VitalInput{
			Type:       req.Type,
			Value:      req.Value,
			Unit:       req.Unit,
			RecordedAt: recordedAt,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, v)
	}
}

type medicalRequest struct {
	RecordType MedicalRecordType `json:"record_type" enums:"checkup,vaccination,other"`
	RecordDate string            `json:"record_date"` // RFC3339
	Title      string            `json:"title"`
	Notes      string            `json:"notes"`
	Cost       *float64          `json:"cost"`
}

// addMedicalHandler godoc
// @Summary Registrar entrada médica
// @Tags records
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body medicalRequest true "Registro médico"
// @Success 201 {object} MedicalRecord
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /pets/{petID}/records/medical [post]
func addMedicalHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req medicalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		recordDate, ok := parseRequiredTime(w, req.RecordDate, "record_date")
		if !ok {
			return
		}

		m, err := svc.AddMedical(r.Context(), petID, MedicalInput{
			RecordType: req.RecordType,
			RecordDate: recordDate,
			Title:      req.Title,
			Notes:      req.Notes,
			Cost:       req.Cost,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, m)
	}
}

type medicationRequest struct {
	Name      string  `json:"name"`
	Dosage    string  `json:"dosage"`
	StartDate string  `json:"start_date"` // RFC3339
	EndDate   *string `json:"end_date"`   // RFC3339, nil = abierto
	IsActive  bool    `json:"is_active"`
}

// addMedicationHandler godoc
// @Summary Registrar medicación
// @Tags records
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body medicationRequest true "Medicación con rango de vigencia"
// @Success 201 {object} Medication
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /pets/{petID}/records/medications [post]
func addMedicationHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req medicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, ok := parseRequiredTime(w, req.StartDate, "start_date")
		if !ok {
			return
		}

		var end *time.Time
		if req.EndDate != nil {
			t, ok := parseRequiredTime(w, *req.EndDate, "end_date")
			if !ok {
				return
			}
			end = &t
		}

		m, err := svc.AddMedication(r.Context(), petID, MedicationInput{
			Name:      req.Name,
			Dosage:    req.Dosage,
			StartDate: start,
			EndDate:   end,
			IsActive:  req.IsActive,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, m)
	}
}

type analysisRequest struct {
	PrimaryEmotion    string  `json:"primary_emotion"`
	PrimaryConfidence float64 `json:"primary_confidence"` // 0..1
	CreatedAt         string  `json:"created_at"`         // RFC3339, opcional
}

// addAnalysisHandler godoc
// @Summary Registrar análisis de emoción
// @Tags records
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body analysisRequest true "Resultado del análisis"
// @Success 201 {object} EmotionAnalysis
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /pets/{petID}/records/emotions [post]
func addAnalysisHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req analysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		createdAt, ok := parseOptionalTime(w, req.CreatedAt, "created_at")
		if !ok {
			return
		}

		a, err := svc.AddAnalysis(r.Context(), petID, AnalysisInput{
			PrimaryEmotion:    req.PrimaryEmotion,
			PrimaryConfidence: req.PrimaryConfidence,
			CreatedAt:         createdAt,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, a)
	}
}

type diaryRequest struct {
	EntryDate      string   `json:"entry_date"` // RFC3339, opcional
	Text           string   `json:"text"`
	MoodScore      *int     `json:"mood_score"` // 1..10, opcional
	BehavioralTags []string `json:"behavioral_tags"`
}

// addDiaryHandler godoc
// @Summary Registrar entrada de diario
// @Tags records
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body diaryRequest true "Entrada con mood y tags de comportamiento"
// @Success 201 {object} DiaryEntry
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /pets/{petID}/records/diary [post]
func addDiaryHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req diaryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		entryDate, ok := parseOptionalTime(w, req.EntryDate, "entry_date")
		if !ok {
			return
		}

		d, err := svc.AddDiaryEntry(r.Context(), petID, DiaryInput{
			EntryDate:      entryDate,
			Text:           req.Text,
			MoodScore:      req.MoodScore,
			BehavioralTags: req.BehavioralTags,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, d)
	}
}

type visitRequest struct {
	Category  VisitCategory `json:"category" enums:"veterinary,checkup,vaccination,treatment,grooming,other"`
	Status    VisitStatus   `json:"status" enums:"scheduled,completed,cancelled"`
	StartTime string        `json:"start_time"` // RFC3339
	Clinic    string        `json:"clinic"`
}

// addVisitHandler godoc
// @Summary Registrar visita veterinaria
// @Tags records
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body visitRequest true "Visita de agenda"
// @Success 201 {object} VeterinaryVisit
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /pets/{petID}/records/visits [post]
func addVisitHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req visitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, ok := parseRequiredTime(w, req.StartTime, "start_time")
		if !ok {
			return
		}

		v, err := svc.AddVisit(r.Context(), petID, VisitInput{
			Category:  req.Category,
			Status:    req.Status,
			StartTime: start,
			Clinic:    req.Clinic,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, v)
	}
}

type policyRequest struct {
	Provider  string  `json:"provider"`
	IsActive  bool    `json:"is_active"`
	StartDate string  `json:"start_date"` // RFC3339
	EndDate   *string `json:"end_date"`   // RFC3339, nil = vigente
}

// addPolicyHandler godoc
// @Summary Registrar póliza de seguro
// @Tags records
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body policyRequest true "Póliza"
// @Success 201 {object} InsurancePolicy
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /pets/{petID}/records/insurance [post]
func addPolicyHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		var req policyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, ok := parseRequiredTime(w, req.StartDate, "start_date")
		if !ok {
			return
		}

		var end *time.Time
		if req.EndDate != nil {
			t, ok := parseRequiredTime(w, *req.EndDate, "end_date")
			if !ok {
				return
			}
			end = &t
		}

		p, err := svc.AddPolicy(r.Context(), petID, PolicyInput{
			Provider:  req.Provider,
			IsActive:  req.IsActive,
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, p)
	}
}

// getHistoryHandler godoc
// @Summary Historial completo de la mascota
// @Description Devuelve las siete colecciones sin recorte de ventana.
// @Tags records
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} History
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/records [get]
func getHistoryHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := authorizePetOwner(w, r, petsSvc)
		if !ok {
			return
		}

		h, err := svc.History(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, h)
	}
}

func parseRequiredTime(w http.ResponseWriter, s, field string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		http.Error(w, field+" must be RFC3339", http.StatusBadRequest)
		return time.Time{}, false
	}
	return t, true
}

func parseOptionalTime(w http.ResponseWriter, s, field string) (time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, true
	}
	return parseRequiredTime(w, s, field)
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package wellness

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-wellness/internal/domain/pets"
	"pet-wellness/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/wellness", func(wr chi.Router) {
		wr.Get("/", getScoreHandler(svc, petsSvc))
		wr.Get("/trend", getTrendHandler(svc, petsSvc))
		wr.Get("/snapshots", listSnapshotsHandler(svc, petsSvc))
	})
}

// resolvePet autoriza al dueño y devuelve la mascota (la especie alimenta
// los rangos vitales del scorer).
func resolvePet(w http.ResponseWriter, r *http.Request, petsSvc *pets.Service) (pets.Pet, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return pets.Pet{}, false
	}

	petID := chi.URLParam(r, "petID")
	p, err := petsSvc.GetByID(r.Context(), petID)
	if err != nil {
		http.Error(w, "pet not found", http.StatusNotFound)
		return pets.Pet{}, false
	}
	if p.OwnerUserID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return pets.Pet{}, false
	}

	return p, true
}

// getScoreHandler godoc
// @Summary Puntaje de bienestar
// @Description Evalúa el historial de la mascota contra una ventana [from, to). Sin parámetros evalúa todo el historial hasta ahora.
// @Tags wellness
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param from query string false "Inicio de ventana, RFC3339"
// @Param to query string false "Fin de ventana (exclusivo), RFC3339"
// @Success 200 {object} Score
// @Failure 400 {string} string "from/to inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/wellness [get]
func getScoreHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := resolvePet(w, r, petsSvc)
		if !ok {
			return
		}

		var win Window
		if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "from must be RFC3339", http.StatusBadRequest)
				return
			}
			win.Start = t
		}
		if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "to must be RFC3339", http.StatusBadRequest)
				return
			}
			win.End = t
		}

		sc, err := svc.Evaluate(r.Context(), p.ID, p.Species, win)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, sc)
	}
}

// getTrendHandler godoc
// @Summary Serie de tendencia
// @Description Serie (label, score) por buckets del período: today (horas), week (días), month/year/all (meses).
// @Tags wellness
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param period query string false "today|week|month|year|all (default month)"
// @Success 200 {array} TrendPoint
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/wellness/trend [get]
func getTrendHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := resolvePet(w, r, petsSvc)
		if !ok {
			return
		}

		period := Period(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("period"))))
		if period == "" {
			period = PeriodMonth
		}

		series, err := svc.Trend(r.Context(), p.ID, p.Species, period)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, series)
	}
}

type snapshotResponse struct {
	ID          string     `json:"id"`
	PetID       string     `json:"pet_id"`
	WindowStart time.Time  `json:"window_start"`
	WindowEnd   time.Time  `json:"window_end"`
	Score       int        `json:"score"`
	Components  Components `json:"components"`
	RecordedAt  time.Time  `json:"recorded_at"`
}

// listSnapshotsHandler godoc
// @Summary Snapshots persistidos
// @Description Puntajes diarios guardados por el job de snapshots, más recientes primero.
// @Tags wellness
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param limit query int false "Máximo de snapshots (default 30)"
// @Success 200 {array} snapshotResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/wellness/snapshots [get]
func listSnapshotsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := resolvePet(w, r, petsSvc)
		if !ok {
			return
		}

		limit := 30
		if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		snaps, err := svc.Snapshots(r.Context(), p.ID, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]snapshotResponse, 0, len(snaps))
		for _, s := range snaps {
			out = append(out, snapshotResponse{
				ID:          s.ID,
				PetID:       s.PetID,
				WindowStart: s.WindowStart,
				WindowEnd:   s.WindowEnd,
				Score:       s.Score,
				Components:  s.Components,
				RecordedAt:  s.RecordedAt,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package history

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"symptom-drift/internal/domain/careteam"
	"symptom-drift/internal/domain/patients"
	"symptom-drift/internal/domain/severity"
	"symptom-drift/internal/middleware"
	"symptom-drift/internal/ports/extraction"

	"github.com/go-chi/chi/v5"
)

// maxFreeTextLen acota lo que se manda al proveedor de extracción.
const maxFreeTextLen = 2000

// RegisterRoutes monta el log de síntomas. extractor puede ser nil:
// la ruta de texto libre responde 503.
func RegisterRoutes(r chi.Router, svc *Service, patientsSvc *patients.Service, team *careteam.Service, extractor extraction.Extractor) {
	r.Route("/patients/{patientID}", func(pr chi.Router) {
		pr.Post("/symptoms", logSymptomsHandler(svc, patientsSvc, team))
		pr.Post("/symptoms/extract", extractSymptomsHandler(svc, patientsSvc, team, extractor))
		pr.Get("/history", listHistoryHandler(svc, patientsSvc, team))
	})
}

// logSymptomsRequest es el cuerpo para registrar síntomas del vocabulario.
type logSymptomsRequest struct {
	Symptoms  []string `json:"symptoms"`
	Intensity string   `json:"intensity" enums:"none,mild,severe"`
}

type extractSymptomsRequest struct {
	Text string `json:"text"`
}

// entryResponse es una entrada del historial de síntomas.
type entryResponse struct {
	ID          string             `json:"id"`
	PatientID   string             `json:"patient_id"`
	SymptomName string             `json:"symptom_name"`
	Severity    float64            `json:"severity"`
	RecordedAt  time.Time          `json:"date_recorded"`
	Intensity   severity.Intensity `json:"intensity"`
	Source      Source             `json:"source"`
}

// logSymptomsHandler godoc
// @Summary Registrar síntomas
// @Description Registra hasta MAX_SYMPTOMS_PER_LOG síntomas del vocabulario con la misma fecha. La severidad se ajusta por edad, condición crónica e intensidad. Requiere dueño o `history:create`.
// @Tags history
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param payload body logSymptomsRequest true "Síntomas e intensidad"
// @Success 201 {array} entryResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Failure 422 {string} string "no known symptoms in input"
// @Router /patients/{patientID}/symptoms [post]
func logSymptomsHandler(svc *Service, patientsSvc *patients.Service, team *careteam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := authorize(w, r, patientsSvc, team, careteam.ScopeHistoryCreate)
		if !ok {
			return
		}

		var req logSymptomsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		entries, err := svc.Log(r.Context(), p, LogInput{
			Symptoms:  req.Symptoms,
			Intensity: severity.ParseIntensity(req.Intensity),
			Source:    SourceManual,
		})
		if err != nil {
			writeLogError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toEntryResponses(entries))
	}
}

// extractSymptomsHandler godoc
// @Summary Registrar síntomas desde texto libre
// @Description Extrae síntomas e intensidad del texto con el proveedor configurado y los registra como en /symptoms. Requiere dueño o `history:create`.
// @Tags history
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param patientID path string true "ID del paciente"
// @Param payload body extractSymptomsRequest true "Descripción en texto libre"
// @Success 201 {array} entryResponse
// @Failure 400 {string} string "invalid json / text required"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Failure 422 {string} string "no known symptoms in input"
// @Failure 502 {string} string "extraction failed"
// @Failure 503 {string} string "symptom extraction not configured"
// @Router /patients/{patientID}/symptoms/extract [post]
func extractSymptomsHandler(svc *Service, patientsSvc *patients.Service, team *careteam.Service, extractor extraction.Extractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := authorize(w, r, patientsSvc, team, careteam.ScopeHistoryCreate)
		if !ok {
			return
		}
		if extractor == nil {
			http.Error(w, extraction.ErrNotConfigured.Error(), http.StatusServiceUnavailable)
			return
		}

		var req extractSymptomsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		text := strings.TrimSpace(req.Text)
		if text == "" {
			http.Error(w, "text required", http.StatusBadRequest)
			return
		}
		if len(text) > maxFreeTextLen {
			http.Error(w, "text too long", http.StatusBadRequest)
			return
		}

		ex, err := extractor.Extract(r.Context(), text)
		if err != nil {
			if errors.Is(err, extraction.ErrNotConfigured) {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
			http.Error(w, "extraction failed", http.StatusBadGateway)
			return
		}
		if len(ex.Symptoms) == 0 {
			http.Error(w, ErrNoKnownSymptoms.Error(), http.StatusUnprocessableEntity)
			return
		}

		entries, err := svc.Log(r.Context(), p, LogInput{
			Symptoms:  ex.Symptoms,
			Intensity: severity.ParseIntensity(ex.Intensity),
			Source:    SourceExtracted,
		})
		if err != nil {
			writeLogError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toEntryResponses(entries))
	}
}

// listHistoryHandler godoc
// @Summary Historial de síntomas
// @Description Lista el historial del paciente en orden cronológico. Requiere dueño o `history:read`.
// @Tags history
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param patientID path string true "ID del paciente"
// @Param symptoms query string false "Lista CSV de síntomas a incluir"
// @Param from query string false "Fecha mínima (RFC3339)"
// @Param to query string false "Fecha máxima (RFC3339)"
// @Param limit query int false "Máximo de entradas (1-500)"
// @Success 200 {array} entryResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID}/history [get]
func listHistoryHandler(svc *Service, patientsSvc *patients.Service, team *careteam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := authorize(w, r, patientsSvc, team, careteam.ScopeHistoryRead)
		if !ok {
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), p.ID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toEntryResponses(items))
	}
}

// authorize resuelve claims, paciente y permiso. Si devuelve false ya respondió.
func authorize(w http.ResponseWriter, r *http.Request, patientsSvc *patients.Service, team *careteam.Service, scope careteam.Scope) (patients.Patient, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return patients.Patient{}, false
	}

	p, err := patientsSvc.GetByID(r.Context(), chi.URLParam(r, "patientID"))
	if err != nil {
		if errors.Is(err, patients.ErrNotFound) {
			http.Error(w, "patient not found", http.StatusNotFound)
		} else {
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return patients.Patient{}, false
	}

	if !team.Allows(r.Context(), p.ID, p.OwnerUserID, claims.UserID, scope) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return patients.Patient{}, false
	}
	return p, true
}

func writeLogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNoKnownSymptoms):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	filter := ListFilter{}

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			filter.Limit = n
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("symptoms")); v != "" {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Symptoms = append(filter.Symptoms, s)
			}
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	return filter, nil
}

func toEntryResponses(items []Entry) []entryResponse {
	out := make([]entryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, entryResponse{
			ID:          e.ID,
			PatientID:   e.PatientID,
			SymptomName: e.SymptomName,
			Severity:    e.Severity,
			RecordedAt:  e.RecordedAt,
			Intensity:   e.Intensity,
			Source:      e.Source,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package assessments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"symptom-drift/internal/domain/careteam"
	"symptom-drift/internal/domain/patients"
	"symptom-drift/internal/domain/sdi"
	"symptom-drift/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, patientsSvc *patients.Service, team *careteam.Service) {
	r.Route("/patients/{patientID}/assessments", func(ar chi.Router) {
		ar.Post("/", assessHandler(svc, patientsSvc, team))
		ar.Get("/", listAssessmentsHandler(svc, patientsSvc, team))
	})

	// Cálculo ad-hoc sin persistencia
	r.Post("/score", previewHandler(svc))
}

// resultResponse es la salida del motor SDI.
type resultResponse struct {
	RawScore        float64   `json:"raw_score"`
	NormalizedScore float64   `json:"normalized_score"`
	Color           sdi.Color `json:"color" enums:"Green,Yellow,Orange,Red"`
	Alert           sdi.Alert `json:"alert"`
	Trend           sdi.Trend `json:"trend"`
	Critical        bool      `json:"critical"`
	Patterns        []string  `json:"patterns"`
}

// assessmentResponse es una evaluación persistida.
type assessmentResponse struct {
	ID          string         `json:"id"`
	PatientID   string         `json:"patient_id"`
	AssessedAt  time.Time      `json:"assessed_at"`
	HistorySize int            `json:"history_size"`
	Result      resultResponse `json:"result"`
}

type previewPatient struct {
	Age            int    `json:"age"`
	ChronicDisease string `json:"chronic_disease"`
}

// previewRequest: severity puede ser número o texto numérico;
// date_recorded es ISO-8601, sin zona se interpreta en UTC.
type previewRequest struct {
	History        []sdi.HistoryRow `json:"history"`
	Patient        previewPatient   `json:"patient"`
	PreviousScores []float64        `json:"previous_scores"`
}

// assessHandler godoc
// @Summary Evaluar riesgo del paciente
// @Description Calcula el Symptom Drift Index con todo el historial del paciente y los últimos scores como base de tendencia, y guarda el resultado. Requiere dueño o `assessments:create`.
// @Tags assessments
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Success 201 {object} assessmentResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Failure 500 {string} string "internal error"
// @Router /patients/{patientID}/assessments [post]
func assessHandler(svc *Service, patientsSvc *patients.Service, team *careteam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := authorize(w, r, patientsSvc, team, careteam.ScopeAssessmentsCreate)
		if !ok {
			return
		}

		rec, err := svc.Assess(r.Context(), p.ID)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "patient not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toAssessmentResponse(rec))
	}
}

// listAssessmentsHandler godoc
// @Summary Historial de evaluaciones
// @Description Evaluaciones del paciente, más recientes primero. Requiere dueño o `assessments:read`.
// @Tags assessments
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param patientID path string true "ID del paciente"
// @Param limit query int false "Máximo de evaluaciones (1-200). Por defecto 50"
// @Success 200 {array} assessmentResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID}/assessments [get]
func listAssessmentsHandler(svc *Service, patientsSvc *patients.Service, team *careteam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := authorize(w, r, patientsSvc, team, careteam.ScopeAssessmentsRead)
		if !ok {
			return
		}

		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
				limit = n
			}
		}

		items, err := svc.List(r.Context(), p.ID, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]assessmentResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toAssessmentResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// previewHandler godoc
// @Summary Calcular SDI ad-hoc
// @Description Calcula el Symptom Drift Index sobre un historial enviado en el cuerpo, sin guardar nada. Si alguna fila es inválida responde 422 y no hay score.
// @Tags assessments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body previewRequest true "Historial, contexto del paciente y scores previos"
// @Success 200 {object} resultResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 422 {string} string "could not compute risk score"
// @Router /score [post]
func previewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req previewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.Preview(r.Context(), PreviewInput{
			Rows: req.History,
			Patient: sdi.PatientContext{
				Age:            req.Patient.Age,
				ChronicDisease: req.Patient.ChronicDisease,
			},
			Previous: req.PreviousScores,
		})
		if err != nil {
			if errors.Is(err, sdi.ErrInvalidHistory) {
				http.Error(w, "could not compute risk score", http.StatusUnprocessableEntity)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toResultResponse(res))
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

func toResultResponse(res sdi.Result) resultResponse {
	patterns := res.Patterns
	if patterns == nil {
		patterns = []string{}
	}
	return resultResponse{
		RawScore:        res.RawScore,
		NormalizedScore: res.NormalizedScore,
		Color:           res.Color,
		Alert:           res.Alert,
		Trend:           res.Trend,
		Critical:        res.Critical,
		Patterns:        patterns,
	}
}

func toAssessmentResponse(rec Record) assessmentResponse {
	return assessmentResponse{
		ID:          rec.ID,
		PatientID:   rec.PatientID,
		AssessedAt:  rec.AssessedAt,
		HistorySize: rec.HistorySize,
		Result:      toResultResponse(rec.Result),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

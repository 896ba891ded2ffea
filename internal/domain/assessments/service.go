package assessments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"symptom-drift/internal/domain/history"
	"symptom-drift/internal/domain/patients"
	"symptom-drift/internal/domain/sdi"
	"symptom-drift/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("patient not found")
)

// DefaultPreviousWindow es cuántos scores previos se promedian para la tendencia.
const DefaultPreviousWindow = 5

// PatientGetter evita depender del servicio concreto en tests.
type PatientGetter interface {
	GetByID(ctx context.Context, id string) (patients.Patient, error)
}

// HistoryLister idem para el log de síntomas.
type HistoryLister interface {
	List(ctx context.Context, patientID string, filter history.ListFilter) ([]history.Entry, error)
}

// Recorder recibe cada resultado calculado (métricas).
type Recorder interface {
	ObserveAssessment(res sdi.Result)
}

type Options struct {
	PreviousWindow int
	Recorder       Recorder
	Logger         logger.Logger
}

type Service struct {
	repo     Repository
	patients PatientGetter
	history  HistoryLister

	window   int
	recorder Recorder
	log      logger.Logger

	now func() time.Time
}

func NewService(repo Repository, patientsSvc PatientGetter, historySvc HistoryLister, opts Options) *Service {
	window := opts.PreviousWindow
	if window <= 0 {
		window = DefaultPreviousWindow
	}
	return &Service{
		repo:     repo,
		patients: patientsSvc,
		history:  historySvc,
		window:   window,
		recorder: opts.Recorder,
		log:      opts.Logger,
		now:      time.Now,
	}
}

// Assess calcula el SDI del paciente con todo su historial y lo persiste.
func (s *Service) Assess(ctx context.Context, patientID string) (Record, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return Record{}, ErrInvalidInput
	}

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, patients.ErrNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("load patient: %w", err)
	}

	entries, err := s.history.List(ctx, patientID, history.ListFilter{})
	if err != nil {
		return Record{}, err
	}

	prevRecords, err := s.repo.ListByPatient(ctx, patientID, s.window)
	if err != nil {
		return Record{}, err
	}
	previous := make([]float64, 0, len(prevRecords))
	for _, r := range prevRecords {
		previous = append(previous, r.Result.NormalizedScore)
	}

	now := s.now()
	res := sdi.Calculate(history.ToHistory(entries), patients.Context(p), previous, now)

	rec := Record{
		ID:          uuid.NewString(),
		PatientID:   patientID,
		Result:      res,
		AssessedAt:  now,
		HistorySize: len(entries),
	}
	if err := s.repo.Append(ctx, rec); err != nil {
		return Record{}, err
	}

	if s.recorder != nil {
		s.recorder.ObserveAssessment(res)
	}
	if s.log != nil {
		s.log.Info("assessment computed", map[string]any{
			"patient_id": patientID,
			"raw":        res.RawScore,
			"score":      res.NormalizedScore,
			"color":      string(res.Color),
			"trend":      string(res.Trend),
			"critical":   res.Critical,
			"entries":    len(entries),
		})
	}

	return rec, nil
}

// PreviewInput es un cálculo ad-hoc sin persistencia, con el historial
// en el formato de filas que entregan otros sistemas.
type PreviewInput struct {
	Rows     []sdi.HistoryRow
	Patient  sdi.PatientContext
	Previous []float64
	Location *time.Location
}

// Preview valida las filas y calcula el SDI. Si alguna fila es inválida no
// hay resultado parcial: devuelve un error que envuelve sdi.ErrInvalidHistory.
func (s *Service) Preview(ctx context.Context, in PreviewInput) (sdi.Result, error) {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	entries, err := sdi.ParseHistoryRows(in.Rows, loc)
	if err != nil {
		if s.log != nil {
			s.log.Warn("history rejected", map[string]any{
				"rows":  len(in.Rows),
				"error": err.Error(),
			})
		}
		return sdi.Result{}, err
	}

	return sdi.Calculate(entries, in.Patient, in.Previous, s.now()), nil
}

// List devuelve las evaluaciones del paciente, más recientes primero.
func (s *Service) List(ctx context.Context, patientID string, limit int) ([]Record, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPatient(ctx, patientID, limit)
}

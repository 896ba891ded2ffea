package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"symptom-drift/internal/domain/patients"
	"symptom-drift/internal/domain/severity"
	"symptom-drift/internal/domain/symptoms"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNoKnownSymptoms = errors.New("no known symptoms in input")
)

// DefaultMaxSymptomsPerLog es el tope por registro si no se configura otro.
const DefaultMaxSymptomsPerLog = 3

type Service struct {
	repo    Repository
	catalog *symptoms.Catalog
	limit   int
	now     func() time.Time
}

func NewService(repo Repository, catalog *symptoms.Catalog, maxPerLog int) *Service {
	if maxPerLog <= 0 {
		maxPerLog = DefaultMaxSymptomsPerLog
	}
	return &Service{
		repo:    repo,
		catalog: catalog,
		limit:   maxPerLog,
		now:     time.Now,
	}
}

type LogInput struct {
	Symptoms  []string
	Intensity severity.Intensity
	Source    Source
}

// Log registra los síntomas reportados en un mismo instante.
// Los nombres desconocidos se descartan; si hay más del tope se priorizan
// los de mayor prioridad del catálogo.
func (s *Service) Log(ctx context.Context, p patients.Patient, in LogInput) ([]Entry, error) {
	if strings.TrimSpace(p.ID) == "" {
		return nil, ErrInvalidInput
	}
	if len(in.Symptoms) == 0 {
		return nil, ErrInvalidInput
	}

	resolved := s.catalog.Resolve(in.Symptoms, s.limit)
	if len(resolved) == 0 {
		return nil, ErrNoKnownSymptoms
	}

	intensity := in.Intensity
	if intensity == "" {
		intensity = severity.IntensityNone
	}
	src := in.Source
	if src == "" {
		src = SourceManual
	}

	now := s.now()
	entries := make([]Entry, 0, len(resolved))
	for _, sym := range resolved {
		entries = append(entries, Entry{
			ID:          uuid.NewString(),
			PatientID:   p.ID,
			SymptomName: sym.Name,
			Severity:    severity.Adjust(float64(sym.Priority), p.Age, p.HasChronicDisease(), intensity),
			RecordedAt:  now,
			Intensity:   intensity,
			Source:      src,
		})
	}

	if err := s.repo.Append(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Service) List(ctx context.Context, patientID string, filter ListFilter) ([]Entry, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPatient(ctx, patientID, filter)
}

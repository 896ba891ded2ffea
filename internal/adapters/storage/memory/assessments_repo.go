package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"symptom-drift/internal/domain/assessments"
)

type assessmentRepo struct {
	mu        sync.RWMutex
	byPatient map[string][]assessments.Record
}

func NewAssessmentRepo() assessments.Repository {
	return &assessmentRepo{
		byPatient: make(map[string][]assessments.Record),
	}
}

func (r *assessmentRepo) Append(ctx context.Context, rec assessments.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" || rec.PatientID == "" {
		return errors.New("assessment id and patient id required")
	}
	r.byPatient[rec.PatientID] = append(r.byPatient[rec.PatientID], rec)
	return nil
}

func (r *assessmentRepo) ListByPatient(ctx context.Context, patientID string, limit int) ([]assessments.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byPatient[patientID]
	out := make([]assessments.Record, 0, len(items))
	// más reciente primero; a igual fecha, el último insertado primero
	for i := len(items) - 1; i >= 0; i-- {
		out = append(out, items[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AssessedAt.After(out[j].AssessedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

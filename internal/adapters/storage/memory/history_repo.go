package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"symptom-drift/internal/domain/history"
)

// historyRepo guarda un slice por paciente en orden de inserción;
// el orden de inserción desempata entradas con la misma fecha.
type historyRepo struct {
	mu        sync.RWMutex
	byPatient map[string][]history.Entry
}

func NewHistoryRepo() history.Repository {
	return &historyRepo{
		byPatient: make(map[string][]history.Entry),
	}
}

func (r *historyRepo) Append(ctx context.Context, entries []history.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entries {
		if e.ID == "" || e.PatientID == "" {
			return errors.New("history entry id and patient id required")
		}
	}
	for _, e := range entries {
		r.byPatient[e.PatientID] = append(r.byPatient[e.PatientID], e)
	}
	return nil
}

func (r *historyRepo) ListByPatient(ctx context.Context, patientID string, filter history.ListFilter) ([]history.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var wanted map[string]struct{}
	if len(filter.Symptoms) > 0 {
		wanted = make(map[string]struct{}, len(filter.Symptoms))
		for _, s := range filter.Symptoms {
			wanted[s] = struct{}{}
		}
	}

	out := make([]history.Entry, 0)
	for _, e := range r.byPatient[patientID] {
		if wanted != nil {
			if _, ok := wanted[e.SymptomName]; !ok {
				continue
			}
		}
		if filter.From != nil && e.RecordedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.RecordedAt.After(*filter.To) {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.Before(out[j].RecordedAt)
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[len(out)-filter.Limit:]
	}
	return out, nil
}

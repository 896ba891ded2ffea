package memory

import (
	"context"
	"errors"
	"sync"

	"symptom-drift/internal/domain/careteam"
)

type grantRepo struct {
	mu   sync.RWMutex
	byID map[string]careteam.Grant
}

func NewGrantRepo() careteam.Repository {
	return &grantRepo{
		byID: make(map[string]careteam.Grant),
	}
}

func (r *grantRepo) Create(ctx context.Context, g careteam.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.ID == "" {
		return errors.New("grant id required")
	}
	if _, exists := r.byID[g.ID]; exists {
		return errors.New("grant already exists")
	}
	r.byID[g.ID] = g
	return nil
}

func (r *grantRepo) Update(ctx context.Context, g careteam.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[g.ID]; !exists {
		return ErrNotFound
	}
	r.byID[g.ID] = g
	return nil
}

func (r *grantRepo) GetByID(ctx context.Context, id string) (careteam.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[id]
	if !ok {
		return careteam.Grant{}, ErrNotFound
	}
	return g, nil
}

func (r *grantRepo) ListByPatient(ctx context.Context, patientID string) ([]careteam.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]careteam.Grant, 0)
	for _, g := range r.byID {
		if g.PatientID == patientID {
			out = append(out, g)
		}
	}
	return out, nil
}

// Si hubiera más de un grant activo devolvemos el más reciente por UpdatedAt
// (y en empate, por CreatedAt).
func (r *grantRepo) GetActiveGrant(ctx context.Context, patientID, granteeUserID string) (careteam.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var winner careteam.Grant
	has := false

	for _, g := range r.byID {
		if g.PatientID != patientID || g.GranteeUserID != granteeUserID || g.Status != careteam.StatusActive {
			continue
		}
		if !has ||
			g.UpdatedAt.After(winner.UpdatedAt) ||
			(g.UpdatedAt.Equal(winner.UpdatedAt) && g.CreatedAt.After(winner.CreatedAt)) {
			winner = g
			has = true
		}
	}

	if !has {
		return careteam.Grant{}, ErrNotFound
	}
	return winner, nil
}

func (r *grantRepo) ListByGrantee(ctx context.Context, granteeUserID string) ([]careteam.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]careteam.Grant, 0)
	for _, g := range r.byID {
		if g.GranteeUserID == granteeUserID {
			out = append(out, g)
		}
	}
	return out, nil
}

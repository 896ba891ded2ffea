package patients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("patient not found")
)

// maxAge acota valores absurdos; no es una regla clínica.
const maxAge = 130

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name           string
	Age            int
	ChronicDisease string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Patient, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Patient{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Patient{}, ErrInvalidInput
	}
	if !validAge(in.Age) {
		return Patient{}, ErrInvalidInput
	}

	now := s.now()
	p := Patient{
		ID:             uuid.NewString(),
		OwnerUserID:    ownerUserID,
		Name:           strings.TrimSpace(in.Name),
		Age:            in.Age,
		ChronicDisease: strings.TrimSpace(in.ChronicDisease),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Patient, error) {
	if strings.TrimSpace(id) == "" {
		return Patient{}, ErrNotFound
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Patient{}, ErrNotFound
		}
		return Patient{}, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Patient, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// UpdateProfileInput usa punteros para PATCH real: nil = no tocar.
// ChronicDisease en "" limpia la condición.
type UpdateProfileInput struct {
	Name           *string
	Age            *int
	ChronicDisease *string
}

func (s *Service) UpdateProfile(ctx context.Context, patientID string, in UpdateProfileInput) (Patient, error) {
	p, err := s.GetByID(ctx, patientID)
	if err != nil {
		return Patient{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Patient{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Age != nil {
		if !validAge(*in.Age) {
			return Patient{}, ErrInvalidInput
		}
		p.Age = *in.Age
	}
	if in.ChronicDisease != nil {
		p.ChronicDisease = strings.TrimSpace(*in.ChronicDisease)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Patient{}, ErrNotFound
		}
		return Patient{}, fmt.Errorf("update patient: %w", err)
	}
	return p, nil
}

func validAge(age int) bool {
	return age >= 0 && age <= maxAge
}

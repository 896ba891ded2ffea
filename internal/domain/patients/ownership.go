package patients

import (
	"context"

	"symptom-drift/internal/domain/sdi"
)

// OwnerOf expone el ownerUserID de un paciente.
// Se usa para evitar ciclos de imports entre módulos (patients <-> careteam).
func (s *Service) OwnerOf(ctx context.Context, patientID string) (string, error) {
	p, err := s.GetByID(ctx, patientID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

// Context proyecta el paciente sobre lo que consume el motor.
func Context(p Patient) sdi.PatientContext {
	return sdi.PatientContext{
		Age:            p.Age,
		ChronicDisease: p.ChronicDisease,
	}
}

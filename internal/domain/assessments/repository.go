package assessments

import "context"

type Repository interface {
	Append(ctx context.Context, rec Record) error
	// ListByPatient devuelve los más recientes primero. limit <= 0 = todos.
	ListByPatient(ctx context.Context, patientID string, limit int) ([]Record, error)
}

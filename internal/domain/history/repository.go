package history

import (
	"context"
	"time"
)

type Repository interface {
	Append(ctx context.Context, entries []Entry) error
	ListByPatient(ctx context.Context, patientID string, filter ListFilter) ([]Entry, error)
}

// ListFilter vacío = todo el historial. El orden es siempre RecordedAt ascendente;
// con Limit se devuelven las Limit entradas más recientes.
type ListFilter struct {
	Symptoms []string
	From     *time.Time
	To       *time.Time
	Limit    int
}

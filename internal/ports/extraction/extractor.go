package extraction

import (
	"context"
	"errors"
)

// ErrNotConfigured: no hay proveedor de extracción disponible.
var ErrNotConfigured = errors.New("symptom extraction not configured")

// Extraction es lo que se obtiene de un texto libre del paciente.
// Symptoms ya viene filtrado al vocabulario; Intensity es none, mild o severe.
type Extraction struct {
	Symptoms  []string
	Intensity string
}

// Extractor convierte texto libre en síntomas del vocabulario.
type Extractor interface {
	Extract(ctx context.Context, text string) (Extraction, error)
}

package assessments

import (
	"time"

	"symptom-drift/internal/domain/sdi"
)

// Record es una evaluación persistida. Los scores previos de un paciente
// salen de acá para la detección de tendencia.
type Record struct {
	ID         string
	PatientID  string
	Result     sdi.Result
	AssessedAt time.Time

	// Cantidad de entradas de historial usadas.
	HistorySize int
}

package history

import (
	"time"

	"symptom-drift/internal/domain/sdi"
	"symptom-drift/internal/domain/severity"
)

type Source string

const (
	SourceManual    Source = "manual"
	SourceExtracted Source = "extracted"
	SourceImport    Source = "import"
)

// Entry es una ocurrencia registrada de un síntoma. Se agrega y no se edita.
type Entry struct {
	ID        string
	PatientID string

	SymptomName string
	// Severity ya ajustada por edad, condición crónica e intensidad.
	Severity   float64
	RecordedAt time.Time

	Intensity severity.Intensity
	Source    Source
}

// ToHistory proyecta entradas del log sobre la entrada del motor.
func ToHistory(items []Entry) []sdi.HistoryEntry {
	out := make([]sdi.HistoryEntry, 0, len(items))
	for _, e := range items {
		out = append(out, sdi.HistoryEntry{
			SymptomName: e.SymptomName,
			Severity:    e.Severity,
			RecordedAt:  e.RecordedAt,
		})
	}
	return out
}

package sdi

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidHistory: la llamada completa falla, no hay resultado parcial.
var ErrInvalidHistory = errors.New("invalid history")

// HistoryRow es la forma en la que los colaboradores entregan el historial.
// Severity puede venir como número o como texto.
type HistoryRow struct {
	SymptomName  string `json:"symptom_name" yaml:"symptom_name"`
	Severity     any    `json:"severity" yaml:"severity"`
	DateRecorded string `json:"date_recorded" yaml:"date_recorded"`
}

// Formatos ISO-8601 aceptados, sin zona (fecha-hora local).
var localLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp interpreta una fecha-hora ISO-8601 local en loc.
// Fechas con zona (Z, +hh:mm) se rechazan: no se hace aritmética de zonas.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if _, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return time.Time{}, fmt.Errorf("timestamp %q has a zone offset, local date-time expected", s)
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// ParseSeverity acepta float/int o texto numérico. Negativos y NaN son inválidos.
func ParseSeverity(v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("non-numeric severity %q", x)
		}
		f = parsed
	case nil:
		return 0, errors.New("missing severity")
	default:
		return 0, fmt.Errorf("unsupported severity type %T", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("invalid severity %v", f)
	}
	return f, nil
}

// ParseHistoryRows valida y convierte todas las filas; ante el primer error corta.
func ParseHistoryRows(rows []HistoryRow, loc *time.Location) ([]HistoryEntry, error) {
	out := make([]HistoryEntry, 0, len(rows))
	for i, r := range rows {
		name := strings.TrimSpace(r.SymptomName)
		if name == "" {
			return nil, fmt.Errorf("%w: row %d: missing symptom_name", ErrInvalidHistory, i)
		}
		sev, err := ParseSeverity(r.Severity)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidHistory, i, err)
		}
		t, err := ParseTimestamp(r.DateRecorded, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidHistory, i, err)
		}
		out = append(out, HistoryEntry{
			SymptomName: name,
			Severity:    sev,
			RecordedAt:  t,
		})
	}
	return out, nil
}

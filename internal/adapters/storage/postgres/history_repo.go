package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"symptom-drift/internal/domain/history"
	"symptom-drift/internal/domain/severity"
)

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Append inserta todas las entradas en una transacción: un registro de
// síntomas entra completo o no entra.
func (r *HistoryRepo) Append(ctx context.Context, entries []history.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO symptom_history (
			id, patient_id,
			symptom_name, severity, recorded_at,
			intensity, source
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx,
			e.ID,
			e.PatientID,
			e.SymptomName,
			e.Severity,
			e.RecordedAt,
			string(e.Intensity),
			string(e.Source),
		); err != nil {
			return fmt.Errorf("insert history entry: %w", err)
		}
	}

	return tx.Commit()
}

// ListByPatient ordena por recorded_at y desempata por seq (orden de inserción).
func (r *HistoryRepo) ListByPatient(ctx context.Context, patientID string, filter history.ListFilter) ([]history.Entry, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, patient_id,
			symptom_name, severity, recorded_at,
			intensity, source
		FROM symptom_history
		WHERE patient_id = $1
	`)

	args := []any{patientID}
	argN := 2

	if len(filter.Symptoms) > 0 {
		placeholders := make([]string, 0, len(filter.Symptoms))
		for _, s := range filter.Symptoms {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, s)
			argN++
		}
		sb.WriteString(" AND symptom_name IN (" + strings.Join(placeholders, ",") + ")")
	}

	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND recorded_at >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND recorded_at <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	// Con limit: las N más recientes, devueltas en orden ascendente.
	if filter.Limit > 0 {
		sb.WriteString(" ORDER BY recorded_at DESC, seq DESC")
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, filter.Limit)
	} else {
		sb.WriteString(" ORDER BY recorded_at ASC, seq ASC")
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]history.Entry, 0)
	for rows.Next() {
		var e history.Entry
		var intensity, source string

		if err := rows.Scan(
			&e.ID,
			&e.PatientID,
			&e.SymptomName,
			&e.Severity,
			&e.RecordedAt,
			&intensity,
			&source,
		); err != nil {
			return nil, err
		}

		e.Intensity = severity.Intensity(intensity)
		e.Source = history.Source(source)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if filter.Limit > 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

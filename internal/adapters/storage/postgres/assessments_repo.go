package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"symptom-drift/internal/domain/assessments"
	"symptom-drift/internal/domain/sdi"
)

type AssessmentsRepo struct {
	db *sql.DB
}

func NewAssessmentsRepo(db *sql.DB) *AssessmentsRepo {
	return &AssessmentsRepo{db: db}
}

func (r *AssessmentsRepo) Append(ctx context.Context, rec assessments.Record) error {
	patterns := rec.Result.Patterns
	if patterns == nil {
		patterns = []string{}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO assessments (
			id, patient_id, assessed_at, history_size,
			raw_score, normalized_score,
			color, alert, trend, critical, patterns
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		rec.ID,
		rec.PatientID,
		rec.AssessedAt,
		rec.HistorySize,
		rec.Result.RawScore,
		rec.Result.NormalizedScore,
		string(rec.Result.Color),
		string(rec.Result.Alert),
		string(rec.Result.Trend),
		rec.Result.Critical,
		patterns,
	)
	return err
}

func (r *AssessmentsRepo) ListByPatient(ctx context.Context, patientID string, limit int) ([]assessments.Record, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return nil, nil
	}

	q := `
		SELECT
			id, patient_id, assessed_at, history_size,
			raw_score, normalized_score,
			color, alert, trend, critical, patterns
		FROM assessments
		WHERE patient_id = $1
		ORDER BY assessed_at DESC, seq DESC
	`
	args := []any{patientID}
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assessments.Record, 0)
	for rows.Next() {
		var rec assessments.Record
		var color, alert, trend string
		var patterns []string

		if err := rows.Scan(
			&rec.ID,
			&rec.PatientID,
			&rec.AssessedAt,
			&rec.HistorySize,
			&rec.Result.RawScore,
			&rec.Result.NormalizedScore,
			&color,
			&alert,
			&trend,
			&rec.Result.Critical,
			textArray(&patterns),
		); err != nil {
			return nil, err
		}

		rec.Result.Color = sdi.Color(color)
		rec.Result.Alert = sdi.Alert(alert)
		rec.Result.Trend = sdi.Trend(trend)
		if patterns == nil {
			patterns = []string{}
		}
		rec.Result.Patterns = patterns

		out = append(out, rec)
	}

	return out, rows.Err()
}

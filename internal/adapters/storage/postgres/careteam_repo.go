package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"symptom-drift/internal/domain/careteam"
)

type GrantsRepo struct {
	db *sql.DB
}

func NewGrantsRepo(db *sql.DB) *GrantsRepo {
	return &GrantsRepo{db: db}
}

const grantColumns = `
	id, patient_id, owner_user_id, grantee_user_id,
	scopes, status,
	created_at, updated_at, revoked_at
`

func (r *GrantsRepo) Create(ctx context.Context, g careteam.Grant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO care_team_grants (`+grantColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		g.ID,
		g.PatientID,
		g.OwnerUserID,
		g.GranteeUserID,
		scopesToTextArray(g.Scopes),
		string(g.Status),
		g.CreatedAt,
		g.UpdatedAt,
		toNullTime(g.RevokedAt),
	)
	return err
}

func (r *GrantsRepo) Update(ctx context.Context, g careteam.Grant) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE care_team_grants
		SET
			scopes = $2,
			status = $3,
			updated_at = $4,
			revoked_at = $5
		WHERE id = $1
	`,
		g.ID,
		scopesToTextArray(g.Scopes),
		string(g.Status),
		g.UpdatedAt,
		toNullTime(g.RevokedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GrantsRepo) GetByID(ctx context.Context, id string) (careteam.Grant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return careteam.Grant{}, ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+grantColumns+` FROM care_team_grants WHERE id = $1`, id)
}

func (r *GrantsRepo) GetActiveGrant(ctx context.Context, patientID, granteeUserID string) (careteam.Grant, error) {
	patientID = strings.TrimSpace(patientID)
	granteeUserID = strings.TrimSpace(granteeUserID)
	if patientID == "" || granteeUserID == "" {
		return careteam.Grant{}, ErrNotFound
	}

	return r.getOne(ctx, `
		SELECT `+grantColumns+`
		FROM care_team_grants
		WHERE patient_id = $1
		  AND grantee_user_id = $2
		  AND status = 'active'
		ORDER BY updated_at DESC, created_at DESC
		LIMIT 1
	`, patientID, granteeUserID)
}

func (r *GrantsRepo) ListByPatient(ctx context.Context, patientID string) ([]careteam.Grant, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return nil, nil
	}
	return r.list(ctx, `
		SELECT `+grantColumns+`
		FROM care_team_grants
		WHERE patient_id = $1
		ORDER BY created_at ASC
	`, patientID)
}

func (r *GrantsRepo) ListByGrantee(ctx context.Context, granteeUserID string) ([]careteam.Grant, error) {
	granteeUserID = strings.TrimSpace(granteeUserID)
	if granteeUserID == "" {
		return nil, nil
	}
	return r.list(ctx, `
		SELECT `+grantColumns+`
		FROM care_team_grants
		WHERE grantee_user_id = $1
		ORDER BY updated_at DESC
	`, granteeUserID)
}

func (r *GrantsRepo) getOne(ctx context.Context, query string, args ...any) (careteam.Grant, error) {
	g, err := scanGrant(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return careteam.Grant{}, ErrNotFound
		}
		return careteam.Grant{}, err
	}
	return g, nil
}

func (r *GrantsRepo) list(ctx context.Context, query string, args ...any) ([]careteam.Grant, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]careteam.Grant, 0)
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func scanGrant(s rowScanner) (careteam.Grant, error) {
	var g careteam.Grant
	var status string
	var scopes []string
	var revokedAt sql.NullTime

	if err := s.Scan(
		&g.ID,
		&g.PatientID,
		&g.OwnerUserID,
		&g.GranteeUserID,
		textArray(&scopes),
		&status,
		&g.CreatedAt,
		&g.UpdatedAt,
		&revokedAt,
	); err != nil {
		return careteam.Grant{}, err
	}

	g.Status = careteam.Status(status)
	g.Scopes = textArrayToScopes(scopes)
	if revokedAt.Valid {
		t := revokedAt.Time
		g.RevokedAt = &t
	}
	return g, nil
}

func scopesToTextArray(in []careteam.Scope) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}

func textArrayToScopes(in []string) []careteam.Scope {
	out := make([]careteam.Scope, 0, len(in))
	for _, s := range in {
		out = append(out, careteam.Scope(s))
	}
	return out
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

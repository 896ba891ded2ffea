package careteam

import "time"

type Scope string

const (
	ScopePatientRead        Scope = "patient:read"
	ScopePatientEditProfile Scope = "patient:edit_profile"
	ScopeHistoryRead        Scope = "history:read"
	ScopeHistoryCreate      Scope = "history:create"
	ScopeAssessmentsRead    Scope = "assessments:read"
	ScopeAssessmentsCreate  Scope = "assessments:create"
)

// AllScopes es el conjunto válido; el orden se usa en respuestas y docs.
var AllScopes = []Scope{
	ScopePatientRead,
	ScopePatientEditProfile,
	ScopeHistoryRead,
	ScopeHistoryCreate,
	ScopeAssessmentsRead,
	ScopeAssessmentsCreate,
}

type Status string

const (
	StatusInvited Status = "invited"
	StatusActive  Status = "active"
	StatusRevoked Status = "revoked"
)

// Grant da acceso a un profesional (grantee) sobre el registro de un paciente.
type Grant struct {
	ID string

	PatientID string

	OwnerUserID   string // dueño del registro del paciente
	GranteeUserID string // médico / cuidador

	Scopes []Scope
	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

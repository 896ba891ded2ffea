package patients

import "time"

// Patient es el perfil mínimo que el motor SDI necesita para ajustar el riesgo.
type Patient struct {
	ID          string
	OwnerUserID string

	Name string
	Age  int

	// Etiqueta libre; el motor solo aplica factor si coincide exacto con su tabla.
	ChronicDisease string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasChronicDisease se usa para el ajuste de severidad al registrar síntomas.
func (p Patient) HasChronicDisease() bool {
	return p.ChronicDisease != ""
}

package sdi

import "time"

// HistoryEntry es una ocurrencia registrada de un síntoma.
// Severity ya viene ajustada (ver paquete severity).
type HistoryEntry struct {
	SymptomName string
	Severity    float64
	RecordedAt  time.Time
}

// PatientContext son los datos del paciente que afectan el score.
// ChronicDisease vacío = sin condición crónica.
type PatientContext struct {
	Age            int
	ChronicDisease string
}

// Result es la salida del motor.
type Result struct {
	RawScore        float64
	NormalizedScore float64
	Color           Color
	Alert           Alert
	Trend           Trend
	Critical        bool
	Patterns        []string
}

func emptyResult() Result {
	return Result{
		RawScore:        0,
		NormalizedScore: 0,
		Color:           ColorGreen,
		Alert:           AlertLowRisk,
		Trend:           TrendNoData,
		Critical:        false,
		Patterns:        []string{},
	}
}

func criticalResult() Result {
	return Result{
		RawScore:        CriticalRawScore,
		NormalizedScore: 100,
		Color:           ColorRed,
		Alert:           AlertImmediateAttention,
		Trend:           TrendCritical,
		Critical:        true,
		Patterns:        []string{PatternCritical},
	}
}

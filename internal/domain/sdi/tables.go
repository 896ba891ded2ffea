package sdi

import "math"

const (
	// Lambda es la tasa de decaimiento diario.
	Lambda = 0.25

	// SigmoidK es la pendiente de la normalización logística.
	SigmoidK = 0.08

	CriticalRawScore = 120.0

	recurrenceThreshold = 3
	recurrenceBonus     = 2.0

	improvementFactor       = 0.5
	sustainedImprovementMin = 2
	sustainedDampening      = 0.85
)

// CriticalSymptoms: su sola presencia fuerza el resultado máximo.
var CriticalSymptoms = map[string]struct{}{
	"chest_pain":                {},
	"breathlessness":            {},
	"coma":                      {},
	"slurred_speech":            {},
	"weakness_of_one_body_side": {},
}

func IsCritical(symptom string) bool {
	_, ok := CriticalSymptoms[symptom]
	return ok
}

type ageBracket struct {
	below  int // límite superior exclusivo
	factor float64
}

// Orden importa: se evalúa de arriba hacia abajo.
var ageBrackets = []ageBracket{
	{below: 18, factor: 1.0},
	{below: 40, factor: 1.1},
	{below: 60, factor: 1.3},
}

const ageFactorSenior = 1.6

func AgeFactor(age int) float64 {
	for _, b := range ageBrackets {
		if age < b.below {
			return b.factor
		}
	}
	return ageFactorSenior
}

// ChronicFactors se compara por igualdad exacta (case-sensitive).
var ChronicFactors = map[string]float64{
	"Diabetes":      1.3,
	"Hypertension":  1.4,
	"Heart Disease": 1.8,
	"Asthma":        1.5,
}

func ChronicFactor(disease string) float64 {
	if f, ok := ChronicFactors[disease]; ok {
		return f
	}
	return 1.0
}

type tier struct {
	below float64 // límite superior exclusivo
	color Color
	alert Alert
}

var tiers = []tier{
	{below: 30, color: ColorGreen, alert: AlertLowRisk},
	{below: 55, color: ColorYellow, alert: AlertMonitor},
	{below: 75, color: ColorOrange, alert: AlertConsultDoctor},
}

// TierFor devuelve color y alerta para un score normalizado.
func TierFor(normalized float64) (Color, Alert) {
	for _, t := range tiers {
		if normalized < t.below {
			return t.color, t.alert
		}
	}
	return ColorRed, AlertImmediateAttention
}

// Normalize aplica la logística 100/(1+e^(-k·raw)). raw=0 da exactamente 50.
func Normalize(raw float64) float64 {
	return round2(100 / (1 + math.Exp(-SigmoidK*raw)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package sdi

// Color es el color del tier de riesgo.
type Color string

const (
	ColorGreen  Color = "Green"
	ColorYellow Color = "Yellow"
	ColorOrange Color = "Orange"
	ColorRed    Color = "Red"
)

// Alert es la etiqueta de alerta asociada al tier.
type Alert string

const (
	AlertLowRisk            Alert = "Low Risk"
	AlertMonitor            Alert = "Monitor"
	AlertConsultDoctor      Alert = "Consult Doctor"
	AlertImmediateAttention Alert = "Immediate Medical Attention"
)

// Trend describe la dirección del riesgo.
type Trend string

const (
	TrendNoData              Trend = "No Data"
	TrendCritical            Trend = "Critical"
	TrendRapidlyWorsening    Trend = "Rapidly Worsening"
	TrendIncreasing          Trend = "Increasing"
	TrendSeverityIncreasing  Trend = "Severity Increasing"
	TrendImproving           Trend = "Improving"
	TrendFrequencyIncreasing Trend = "Frequency Increasing"
	TrendStable              Trend = "Stable"
)

// Patrones detectados. Se comparan por igualdad exacta de string.
const (
	PatternCritical           = "Critical symptom detected"
	PatternIncreasingSeverity = "Increasing severity trend"
	PatternImprovingSeverity  = "Improving severity trend"
	PatternMoreFrequent       = "Symptoms occurring more frequently"
	patternRecurringPrefix    = "Recurring pattern: "
)

// RecurringPattern arma el patrón de recurrencia de un síntoma.
func RecurringPattern(symptom string) string {
	return patternRecurringPrefix + symptom
}

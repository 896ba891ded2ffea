package sdi

import (
	"math"
	"slices"
	"sort"
	"time"
)

const hoursPerDay = 24

// Engine envuelve Calculate con un reloj inyectable.
// Es seguro para uso concurrente: no guarda estado entre llamadas.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock se usa en tests y en el CLI.
func NewEngineWithClock(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Calculate lee el reloj una sola vez por llamada.
func (e *Engine) Calculate(history []HistoryEntry, patient PatientContext, previous []float64) Result {
	return Calculate(history, patient, previous, e.now())
}

// Calculate computa el Symptom Drift Index para un paciente.
// history no se modifica; se ordena una copia.
func Calculate(history []HistoryEntry, patient PatientContext, previous []float64, now time.Time) Result {
	if len(history) == 0 {
		return emptyResult()
	}

	sorted := slices.Clone(history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.Before(sorted[j].RecordedAt)
	})

	// El override crítico se evalúa antes que cualquier acumulación.
	for _, h := range sorted {
		if IsCritical(h.SymptomName) {
			return criticalResult()
		}
	}

	var (
		drift            float64
		improvementCount int
		gaps             []int
		patterns         = newPatternSet()
		frequency        = map[string]int{}
		order            []string
	)

	for i, h := range sorted {
		drift += h.Severity * DecayWeight(DaysSince(now, h.RecordedAt))

		if frequency[h.SymptomName] == 0 {
			order = append(order, h.SymptomName)
		}
		frequency[h.SymptomName]++

		if i == 0 {
			continue
		}
		prev := sorted[i-1]

		change := h.Severity - prev.Severity
		switch {
		case change > 0:
			patterns.add(PatternIncreasingSeverity)
		case change < 0:
			drift -= math.Abs(change) * improvementFactor
			improvementCount++
			patterns.add(PatternImprovingSeverity)
		}

		gaps = append(gaps, wholeDays(h.RecordedAt.Sub(prev.RecordedAt)))
	}

	for _, name := range order {
		if frequency[name] >= recurrenceThreshold {
			drift += recurrenceBonus
			patterns.add(RecurringPattern(name))
		}
	}

	if len(gaps) >= 2 && gaps[len(gaps)-1] < gaps[0] {
		patterns.add(PatternMoreFrequent)
	}

	if improvementCount >= sustainedImprovementMin {
		drift *= sustainedDampening
	}

	drift *= AgeFactor(patient.Age)
	drift *= ChronicFactor(patient.ChronicDisease)

	raw := round2(math.Max(drift, 0))
	normalized := Normalize(raw)
	color, alert := TierFor(normalized)

	return Result{
		RawScore:        raw,
		NormalizedScore: normalized,
		Color:           color,
		Alert:           alert,
		Trend:           DetectTrend(normalized, previous, patterns.list),
		Critical:        false,
		Patterns:        patterns.list,
	}
}

// DaysSince = días completos transcurridos + 1, nunca menor a 1.
func DaysSince(now, recordedAt time.Time) int {
	d := wholeDays(now.Sub(recordedAt)) + 1
	if d < 1 {
		return 1
	}
	return d
}

// DecayWeight = e^(-λ·días).
func DecayWeight(days int) float64 {
	return math.Exp(-Lambda * float64(days))
}

// DetectTrend prioriza los patrones detectados y, si no hay ninguno relevante,
// compara contra el promedio de los scores previos.
func DetectTrend(normalized float64, previous []float64, patterns []string) Trend {
	switch {
	case slices.Contains(patterns, PatternIncreasingSeverity):
		return TrendSeverityIncreasing
	case slices.Contains(patterns, PatternImprovingSeverity):
		return TrendImproving
	case slices.Contains(patterns, PatternMoreFrequent):
		return TrendFrequencyIncreasing
	}

	if len(previous) > 0 {
		var sum float64
		for _, p := range previous {
			sum += p
		}
		delta := normalized - sum/float64(len(previous))

		switch {
		case delta > 15:
			return TrendRapidlyWorsening
		case delta > 5:
			return TrendIncreasing
		case delta < -10:
			return TrendImproving
		}
	}

	return TrendStable
}

// wholeDays trunca hacia abajo (floor), también para duraciones negativas.
func wholeDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / hoursPerDay))
}

// patternSet conserva orden de inserción y descarta duplicados.
type patternSet struct {
	seen map[string]struct{}
	list []string
}

func newPatternSet() *patternSet {
	return &patternSet{seen: map[string]struct{}{}, list: []string{}}
}

func (p *patternSet) add(s string) {
	if _, ok := p.seen[s]; ok {
		return
	}
	p.seen[s] = struct{}{}
	p.list = append(p.list, s)
}

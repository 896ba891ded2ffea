package sdi

import (
	"errors"
	"math"
	"slices"
	"testing"
	"time"
)

var testNow = time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time {
	return testNow.Add(-time.Duration(d) * 24 * time.Hour)
}

func entry(name string, sev float64, at time.Time) HistoryEntry {
	return HistoryEntry{SymptomName: name, Severity: sev, RecordedAt: at}
}

func TestCalculate_EmptyHistory(t *testing.T) {
	cases := []struct {
		patient  PatientContext
		previous []float64
	}{
		{PatientContext{Age: 10}, nil},
		{PatientContext{Age: 80, ChronicDisease: "Heart Disease"}, []float64{90, 95}},
		{PatientContext{Age: 35, ChronicDisease: "Asthma"}, []float64{}},
	}

	for _, c := range cases {
		got := Calculate(nil, c.patient, c.previous, testNow)
		if got.RawScore != 0 || got.NormalizedScore != 0 {
			t.Fatalf("expected zero scores, got raw=%v normalized=%v", got.RawScore, got.NormalizedScore)
		}
		if got.Color != ColorGreen || got.Alert != AlertLowRisk {
			t.Fatalf("expected Green/Low Risk, got %s/%s", got.Color, got.Alert)
		}
		if got.Trend != TrendNoData || got.Critical {
			t.Fatalf("expected No Data / not critical, got %s critical=%v", got.Trend, got.Critical)
		}
		if got.Patterns == nil || len(got.Patterns) != 0 {
			t.Fatalf("expected empty (non-nil) patterns, got %#v", got.Patterns)
		}
	}
}

func TestCalculate_CriticalOverrideDominates(t *testing.T) {
	history := []HistoryEntry{
		entry("headache", 3, daysAgo(5)),
		entry("headache", 4, daysAgo(4)),
		entry("headache", 5, daysAgo(3)),
		entry("chest_pain", 0, daysAgo(20)),
		entry("fatigue", 1, daysAgo(0)),
	}

	for _, p := range []PatientContext{
		{Age: 5},
		{Age: 82, ChronicDisease: "Heart Disease"},
	} {
		got := Calculate(history, p, []float64{10, 20}, testNow)

		if got.RawScore != 120 || got.NormalizedScore != 100 {
			t.Fatalf("expected 120/100, got %v/%v", got.RawScore, got.NormalizedScore)
		}
		if got.Color != ColorRed || got.Alert != AlertImmediateAttention {
			t.Fatalf("expected Red/Immediate Medical Attention, got %s/%s", got.Color, got.Alert)
		}
		if got.Trend != TrendCritical || !got.Critical {
			t.Fatalf("expected Critical trend + flag, got %s %v", got.Trend, got.Critical)
		}
		if !slices.Equal(got.Patterns, []string{PatternCritical}) {
			t.Fatalf("expected only critical pattern, got %#v", got.Patterns)
		}
	}
}

func TestCalculate_EveryCriticalSymptomTriggersOverride(t *testing.T) {
	for name := range CriticalSymptoms {
		got := Calculate([]HistoryEntry{entry(name, 1, testNow)}, PatientContext{Age: 30}, nil, testNow)
		if !got.Critical {
			t.Fatalf("expected %s to be critical", name)
		}
	}
}

func TestNormalize_Midpoint(t *testing.T) {
	if got := Normalize(0); got != 50.0 {
		t.Fatalf("expected Normalize(0) == 50, got %v", got)
	}
}

func TestCalculate_ZeroSeverityScoresAtMidpoint(t *testing.T) {
	got := Calculate([]HistoryEntry{entry("headache", 0, testNow)}, PatientContext{Age: 12}, nil, testNow)

	if got.RawScore != 0 {
		t.Fatalf("expected raw 0, got %v", got.RawScore)
	}
	if got.NormalizedScore != 50 {
		t.Fatalf("expected normalized 50, got %v", got.NormalizedScore)
	}
	if got.Color != ColorYellow || got.Alert != AlertMonitor {
		t.Fatalf("expected Yellow/Monitor, got %s/%s", got.Color, got.Alert)
	}
}

func TestCalculate_EndToEndSingleEntry(t *testing.T) {
	history := []HistoryEntry{entry("headache", 5, testNow)}

	got := Calculate(history, PatientContext{Age: 25}, nil, testNow)

	wantRaw := round2(5 * math.Exp(-0.25*1) * 1.1 * 1.0)
	if got.RawScore != wantRaw || wantRaw != 4.28 {
		t.Fatalf("expected raw %v (4.28), got %v", wantRaw, got.RawScore)
	}
	wantNorm := round2(100 / (1 + math.Exp(-0.08*wantRaw)))
	if got.NormalizedScore != wantNorm || wantNorm != 58.48 {
		t.Fatalf("expected normalized %v (58.48), got %v", wantNorm, got.NormalizedScore)
	}
	if got.Color != ColorOrange || got.Alert != AlertConsultDoctor {
		t.Fatalf("expected Orange/Consult Doctor, got %s/%s", got.Color, got.Alert)
	}
	if got.Trend != TrendStable || got.Critical {
		t.Fatalf("expected Stable / not critical, got %s %v", got.Trend, got.Critical)
	}
	if len(got.Patterns) != 0 {
		t.Fatalf("expected no patterns, got %#v", got.Patterns)
	}
}

func TestCalculate_RecurrenceBonus(t *testing.T) {
	history := []HistoryEntry{
		entry("headache", 2, testNow),
		entry("headache", 2, testNow),
		entry("headache", 2, testNow),
	}

	got := Calculate(history, PatientContext{Age: 10}, nil, testNow)

	want := round2(3*2*math.Exp(-0.25) + 2)
	if got.RawScore != want {
		t.Fatalf("expected raw %v, got %v", want, got.RawScore)
	}
	if !slices.Equal(got.Patterns, []string{"Recurring pattern: headache"}) {
		t.Fatalf("expected single recurring pattern, got %#v", got.Patterns)
	}
}

func TestCalculate_RecurrenceOrderFollowsFirstOccurrence(t *testing.T) {
	history := []HistoryEntry{
		entry("nausea", 1, daysAgo(6)),
		entry("cough", 1, daysAgo(5)),
		entry("nausea", 1, daysAgo(4)),
		entry("cough", 1, daysAgo(3)),
		entry("nausea", 1, daysAgo(2)),
		entry("cough", 1, daysAgo(1)),
	}

	got := Calculate(history, PatientContext{Age: 10}, nil, testNow)

	want := []string{"Recurring pattern: nausea", "Recurring pattern: cough"}
	if !slices.Equal(got.Patterns, want) {
		t.Fatalf("expected %#v, got %#v", want, got.Patterns)
	}
}

func TestCalculate_IncreasingSeverityTrend(t *testing.T) {
	history := []HistoryEntry{
		entry("fatigue", 3, daysAgo(1)),
		entry("fatigue", 1, daysAgo(3)),
		entry("fatigue", 2, daysAgo(2)),
	}

	got := Calculate(history, PatientContext{Age: 30}, []float64{99}, testNow)

	// orden real: 1 -> 2 -> 3, un solo patrón pese a dos subidas
	want := []string{PatternIncreasingSeverity, "Recurring pattern: fatigue"}
	if !slices.Equal(got.Patterns, want) {
		t.Fatalf("expected %#v, got %#v", want, got.Patterns)
	}
	if got.Trend != TrendSeverityIncreasing {
		t.Fatalf("expected Severity Increasing, got %s", got.Trend)
	}
}

func TestCalculate_SustainedImprovement(t *testing.T) {
	history := []HistoryEntry{
		entry("cough", 3, daysAgo(2)),
		entry("nausea", 2, daysAgo(1)),
		entry("headache", 1, daysAgo(0)),
	}

	got := Calculate(history, PatientContext{Age: 30}, nil, testNow)

	drift := 3*math.Exp(-0.75) + 2*math.Exp(-0.5) - 0.5 + 1*math.Exp(-0.25) - 0.5
	drift *= 0.85
	want := round2(drift * 1.1)
	if got.RawScore != want {
		t.Fatalf("expected raw %v, got %v", want, got.RawScore)
	}
	if !slices.Equal(got.Patterns, []string{PatternImprovingSeverity}) {
		t.Fatalf("expected improving pattern only, got %#v", got.Patterns)
	}
	if got.Trend != TrendImproving {
		t.Fatalf("expected Improving, got %s", got.Trend)
	}
}

func TestCalculate_NegativeDriftIsClamped(t *testing.T) {
	history := []HistoryEntry{
		entry("fatigue", 10, daysAgo(30)),
		entry("fatigue", 0, testNow),
	}

	got := Calculate(history, PatientContext{Age: 70, ChronicDisease: "Asthma"}, nil, testNow)

	if got.RawScore != 0 || got.NormalizedScore != 50 {
		t.Fatalf("expected clamped raw 0 / normalized 50, got %v / %v", got.RawScore, got.NormalizedScore)
	}
}

func TestCalculate_FrequencyIncreasing(t *testing.T) {
	history := []HistoryEntry{
		entry("cough", 1, daysAgo(10)),
		entry("nausea", 1, daysAgo(4)),
		entry("fatigue", 1, daysAgo(3)),
	}

	got := Calculate(history, PatientContext{Age: 30}, nil, testNow)

	if !slices.Equal(got.Patterns, []string{PatternMoreFrequent}) {
		t.Fatalf("expected frequency pattern, got %#v", got.Patterns)
	}
	if got.Trend != TrendFrequencyIncreasing {
		t.Fatalf("expected Frequency Increasing, got %s", got.Trend)
	}
}

func TestCalculate_TrendFromPreviousScores(t *testing.T) {
	history := []HistoryEntry{entry("headache", 5, testNow)} // normalized 58.48

	cases := []struct {
		previous []float64
		want     Trend
	}{
		{nil, TrendStable},
		{[]float64{40}, TrendRapidlyWorsening},
		{[]float64{50}, TrendIncreasing},
		{[]float64{60, 80}, TrendImproving},
		{[]float64{55}, TrendStable},
		{[]float64{68}, TrendStable},
	}

	for _, c := range cases {
		got := Calculate(history, PatientContext{Age: 25}, c.previous, testNow)
		if got.Trend != c.want {
			t.Fatalf("previous=%v: expected %s, got %s", c.previous, c.want, got.Trend)
		}
	}
}

func TestCalculate_RecurringPatternDoesNotBlockScoreTrend(t *testing.T) {
	history := []HistoryEntry{
		entry("headache", 2, testNow),
		entry("headache", 2, testNow),
		entry("headache", 2, testNow),
	}

	got := Calculate(history, PatientContext{Age: 10}, []float64{10}, testNow)
	if got.Trend != TrendRapidlyWorsening {
		t.Fatalf("expected Rapidly Worsening, got %s", got.Trend)
	}
}

func TestCalculate_DoesNotMutateInput(t *testing.T) {
	history := []HistoryEntry{
		entry("nausea", 2, daysAgo(1)),
		entry("cough", 1, daysAgo(3)),
	}
	before := slices.Clone(history)

	_ = Calculate(history, PatientContext{Age: 30}, nil, testNow)

	if !slices.Equal(history, before) {
		t.Fatalf("input history was modified: %#v", history)
	}
}

func TestCalculate_RaisingLatestSeverityNeverLowersRaw(t *testing.T) {
	base := []HistoryEntry{
		entry("cough", 4, daysAgo(6)),
		entry("nausea", 2, daysAgo(3)),
		entry("fatigue", 3, daysAgo(1)),
	}
	p := PatientContext{Age: 45, ChronicDisease: "Diabetes"}

	prev := Calculate(base, p, nil, testNow).RawScore
	for _, sev := range []float64{3.5, 4, 6, 10} {
		h := slices.Clone(base)
		h[2].Severity = sev
		got := Calculate(h, p, nil, testNow).RawScore
		if got < prev {
			t.Fatalf("raising severity to %v lowered raw score: %v < %v", sev, got, prev)
		}
		prev = got
	}
}

// Subir una entrada vieja agranda la caída hacia la siguiente, y la
// penalización por mejora pesa más que lo que aporta la entrada decaída.
// La monotonía solo vale para la última entrada.
func TestCalculate_RaisingEarlierSeverityCanLowerRaw(t *testing.T) {
	p := PatientContext{Age: 10}

	base := Calculate([]HistoryEntry{
		entry("cough", 2, daysAgo(10)),
		entry("cough", 2, testNow),
	}, p, nil, testNow)

	raised := Calculate([]HistoryEntry{
		entry("cough", 4, daysAgo(10)),
		entry("cough", 2, testNow),
	}, p, nil, testNow)

	// 2·e^(-2.75) + 2·e^(-0.25)
	if base.RawScore != 1.69 {
		t.Fatalf("expected base raw 1.69, got %v", base.RawScore)
	}
	// 4·e^(-2.75) + 2·e^(-0.25) - 0.5·2
	if raised.RawScore != 0.81 {
		t.Fatalf("expected raised raw 0.81, got %v", raised.RawScore)
	}
	if raised.RawScore >= base.RawScore {
		t.Fatalf("expected raising the earlier entry to lower raw: %v >= %v", raised.RawScore, base.RawScore)
	}
	if raised.Trend != TrendImproving {
		t.Fatalf("expected Improving trend, got %s", raised.Trend)
	}
}

func TestCalculate_SingleEntryMonotonic(t *testing.T) {
	prev := -1.0
	for sev := 0.0; sev <= 20; sev += 0.5 {
		got := Calculate([]HistoryEntry{entry("cough", sev, daysAgo(2))}, PatientContext{Age: 50}, nil, testNow).RawScore
		if got < prev {
			t.Fatalf("severity %v: raw %v < previous %v", sev, got, prev)
		}
		prev = got
	}
}

func TestTierFor_Boundaries(t *testing.T) {
	cases := []struct {
		score float64
		color Color
		alert Alert
	}{
		{0, ColorGreen, AlertLowRisk},
		{29.99, ColorGreen, AlertLowRisk},
		{30, ColorYellow, AlertMonitor},
		{54.99, ColorYellow, AlertMonitor},
		{55, ColorOrange, AlertConsultDoctor},
		{74.99, ColorOrange, AlertConsultDoctor},
		{75, ColorRed, AlertImmediateAttention},
		{100, ColorRed, AlertImmediateAttention},
	}

	for _, c := range cases {
		color, alert := TierFor(c.score)
		if color != c.color || alert != c.alert {
			t.Fatalf("score %v: expected %s/%s, got %s/%s", c.score, c.color, c.alert, color, alert)
		}
	}
}

func TestAgeFactor_Brackets(t *testing.T) {
	cases := map[int]float64{
		0: 1.0, 17: 1.0,
		18: 1.1, 39: 1.1,
		40: 1.3, 59: 1.3,
		60: 1.6, 95: 1.6,
	}
	for age, want := range cases {
		if got := AgeFactor(age); got != want {
			t.Fatalf("age %d: expected %v, got %v", age, want, got)
		}
	}
}

func TestChronicFactor_ExactMatchOnly(t *testing.T) {
	cases := map[string]float64{
		"Diabetes":      1.3,
		"Hypertension":  1.4,
		"Heart Disease": 1.8,
		"Asthma":        1.5,
		"diabetes":      1.0,
		"Diabeates":     1.0,
		"":              1.0,
	}
	for label, want := range cases {
		if got := ChronicFactor(label); got != want {
			t.Fatalf("label %q: expected %v, got %v", label, want, got)
		}
	}
}

func TestDaysSince(t *testing.T) {
	if got := DaysSince(testNow, testNow); got != 1 {
		t.Fatalf("expected 1 for same instant, got %d", got)
	}
	if got := DaysSince(testNow, testNow.Add(-47*time.Hour)); got != 2 {
		t.Fatalf("expected 2 for 47h ago, got %d", got)
	}
	if got := DaysSince(testNow, testNow.Add(72*time.Hour)); got != 1 {
		t.Fatalf("expected future timestamps to clamp to 1, got %d", got)
	}
}

func TestEngine_UsesInjectedClock(t *testing.T) {
	e := NewEngineWithClock(func() time.Time { return testNow })

	got := e.Calculate([]HistoryEntry{entry("headache", 5, testNow)}, PatientContext{Age: 25}, nil)
	if got.RawScore != 4.28 {
		t.Fatalf("expected raw 4.28, got %v", got.RawScore)
	}
}

func TestParseHistoryRows(t *testing.T) {
	rows := []HistoryRow{
		{SymptomName: "headache", Severity: "1.3", DateRecorded: "2025-12-20 09:30:00"},
		{SymptomName: "cough", Severity: 2.0, DateRecorded: "2025-12-21T08:00:00"},
		{SymptomName: "nausea", Severity: 1, DateRecorded: "2025-12-21"},
	}

	got, err := ParseHistoryRows(rows, time.UTC)
	if err != nil {
		t.Fatalf("ParseHistoryRows returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Severity != 1.3 || !got[0].RecordedAt.Equal(time.Date(2025, 12, 20, 9, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected first entry: %#v", got[0])
	}
}

func TestParseHistoryRows_RejectsWholeCall(t *testing.T) {
	cases := []HistoryRow{
		{SymptomName: "headache", Severity: 1, DateRecorded: "20/12/2025"},
		{SymptomName: "headache", Severity: "high", DateRecorded: "2025-12-20"},
		{SymptomName: "headache", Severity: -1, DateRecorded: "2025-12-20"},
		{SymptomName: "headache", Severity: nil, DateRecorded: "2025-12-20"},
		{SymptomName: " ", Severity: 1, DateRecorded: "2025-12-20"},
		{SymptomName: "headache", Severity: 1, DateRecorded: "2025-12-20T10:00:00+05:00"},
		{SymptomName: "headache", Severity: 1, DateRecorded: "2025-12-20T10:00:00Z"},
		{SymptomName: "headache", Severity: 1, DateRecorded: "2025-12-20T10:00:00.5-03:00"},
	}

	for _, bad := range cases {
		rows := []HistoryRow{
			{SymptomName: "cough", Severity: 1, DateRecorded: "2025-12-19"},
			bad,
		}
		got, err := ParseHistoryRows(rows, time.UTC)
		if !errors.Is(err, ErrInvalidHistory) {
			t.Fatalf("row %#v: expected ErrInvalidHistory, got %v", bad, err)
		}
		if got != nil {
			t.Fatalf("expected no partial result, got %#v", got)
		}
	}
}

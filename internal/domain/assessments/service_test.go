package assessments

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"symptom-drift/internal/domain/history"
	"symptom-drift/internal/domain/patients"
	"symptom-drift/internal/domain/sdi"
)

type testRepo struct {
	records []Record
}

func (r *testRepo) Append(ctx context.Context, rec Record) error {
	r.records = append(r.records, rec)
	return nil
}

func (r *testRepo) ListByPatient(ctx context.Context, patientID string, limit int) ([]Record, error) {
	out := make([]Record, 0)
	for _, rec := range r.records {
		if rec.PatientID == patientID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AssessedAt.After(out[j].AssessedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type testPatients map[string]patients.Patient

func (t testPatients) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	p, ok := t[id]
	if !ok {
		return patients.Patient{}, patients.ErrNotFound
	}
	return p, nil
}

type failingPatients struct{ err error }

func (f failingPatients) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	return patients.Patient{}, f.err
}

type testHistory map[string][]history.Entry

func (t testHistory) List(ctx context.Context, patientID string, filter history.ListFilter) ([]history.Entry, error) {
	return t[patientID], nil
}

type testRecorder struct {
	seen []sdi.Result
}

func (t *testRecorder) ObserveAssessment(res sdi.Result) { t.seen = append(t.seen, res) }

var assessNow = time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)

func newTestService(hist testHistory, window int) (*Service, *testRepo, *testRecorder) {
	repo := &testRepo{}
	rec := &testRecorder{}
	pats := testPatients{
		"p-1": {ID: "p-1", OwnerUserID: "owner-1", Age: 30},
	}
	svc := NewService(repo, pats, hist, Options{PreviousWindow: window, Recorder: rec})
	svc.now = func() time.Time { return assessNow }
	return svc, repo, rec
}

func TestService_Assess_EmptyHistory(t *testing.T) {
	svc, repo, recorder := newTestService(testHistory{}, 5)

	rec, err := svc.Assess(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("Assess error: %v", err)
	}
	if rec.Result.Trend != sdi.TrendNoData || rec.Result.NormalizedScore != 0 {
		t.Fatalf("expected no-data result, got %+v", rec.Result)
	}
	if !rec.AssessedAt.Equal(assessNow) || rec.HistorySize != 0 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if len(repo.records) != 1 || len(recorder.seen) != 1 {
		t.Fatalf("expected record persisted and observed once")
	}
}

func TestService_Assess_UsesPreviousScoresForTrend(t *testing.T) {
	hist := testHistory{
		"p-1": {{PatientID: "p-1", SymptomName: "cough", Severity: 0, RecordedAt: assessNow.Add(-time.Hour)}},
	}
	svc, repo, _ := newTestService(hist, 2)

	// El más viejo queda fuera de la ventana de 2.
	for i, score := range []float64{10, 30, 32} {
		_ = repo.Append(context.Background(), Record{
			ID:         "r" + string(rune('a'+i)),
			PatientID:  "p-1",
			Result:     sdi.Result{NormalizedScore: score},
			AssessedAt: assessNow.Add(time.Duration(i-5) * time.Hour),
		})
	}

	rec, err := svc.Assess(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("Assess error: %v", err)
	}
	// severidad 0 -> raw 0 -> 50; media de {32, 30} = 31; delta 19 > 15
	if rec.Result.NormalizedScore != 50 {
		t.Fatalf("expected normalized 50, got %v", rec.Result.NormalizedScore)
	}
	if rec.Result.Trend != sdi.TrendRapidlyWorsening {
		t.Fatalf("expected Rapidly Worsening, got %s", rec.Result.Trend)
	}
	if rec.HistorySize != 1 {
		t.Fatalf("expected history size 1, got %d", rec.HistorySize)
	}
}

func TestService_Assess_CriticalSymptom(t *testing.T) {
	hist := testHistory{
		"p-1": {
			{PatientID: "p-1", SymptomName: "cough", Severity: 1, RecordedAt: assessNow.Add(-48 * time.Hour)},
			{PatientID: "p-1", SymptomName: "chest_pain", Severity: 3, RecordedAt: assessNow.Add(-time.Hour)},
		},
	}
	svc, _, recorder := newTestService(hist, 5)

	rec, err := svc.Assess(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("Assess error: %v", err)
	}
	if !rec.Result.Critical || rec.Result.Color != sdi.ColorRed || rec.Result.NormalizedScore != 100 {
		t.Fatalf("expected critical result, got %+v", rec.Result)
	}
	if !recorder.seen[0].Critical {
		t.Fatalf("recorder must see the critical result")
	}
}

func TestService_Assess_UnknownPatient(t *testing.T) {
	svc, repo, _ := newTestService(testHistory{}, 5)

	if _, err := svc.Assess(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Assess(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Fatalf("nothing must be persisted")
	}
}

func TestService_Assess_StorageFailureIsNotNotFound(t *testing.T) {
	repo := &testRepo{}
	boom := errors.New("connection reset")
	svc := NewService(repo, failingPatients{err: boom}, testHistory{}, Options{})

	_, err := svc.Assess(context.Background(), "p-1")
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("storage failure must not map to ErrNotFound")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Fatalf("nothing must be persisted")
	}
}

func TestService_Preview(t *testing.T) {
	svc, repo, _ := newTestService(testHistory{}, 5)

	res, err := svc.Preview(context.Background(), PreviewInput{
		Rows: []sdi.HistoryRow{
			{SymptomName: "fatigue", Severity: "0", DateRecorded: "2026-07-15 10:00:00"},
		},
		Patient: sdi.PatientContext{Age: 30},
	})
	if err != nil {
		t.Fatalf("Preview error: %v", err)
	}
	if res.NormalizedScore != 50 || res.Color != sdi.ColorYellow {
		t.Fatalf("unexpected preview %+v", res)
	}
	if len(repo.records) != 0 {
		t.Fatalf("preview must not persist")
	}

	_, err = svc.Preview(context.Background(), PreviewInput{
		Rows: []sdi.HistoryRow{
			{SymptomName: "fatigue", Severity: 2, DateRecorded: "2026-07-15 10:00:00"},
			{SymptomName: "cough", Severity: "high", DateRecorded: "2026-07-15 11:00:00"},
		},
	})
	if !errors.Is(err, sdi.ErrInvalidHistory) {
		t.Fatalf("expected ErrInvalidHistory, got %v", err)
	}
}

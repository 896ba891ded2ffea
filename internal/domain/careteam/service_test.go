package careteam

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Grant
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Grant{}}
}

func (r *testRepo) Create(ctx context.Context, g Grant) error {
	if g.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[g.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[g.ID] = g
	return nil
}

func (r *testRepo) Update(ctx context.Context, g Grant) error {
	if _, ok := r.byID[g.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[g.ID] = g
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Grant, error) {
	g, ok := r.byID[id]
	if !ok {
		return Grant{}, errRepoNotFound
	}
	return g, nil
}

func (r *testRepo) ListByPatient(ctx context.Context, patientID string) ([]Grant, error) {
	out := make([]Grant, 0)
	for _, g := range r.byID {
		if g.PatientID == patientID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *testRepo) GetActiveGrant(ctx context.Context, patientID, granteeUserID string) (Grant, error) {
	for _, g := range r.byID {
		if g.PatientID == patientID && g.GranteeUserID == granteeUserID && g.Status == StatusActive {
			return g, nil
		}
	}
	return Grant{}, errRepoNotFound
}

func (r *testRepo) ListByGrantee(ctx context.Context, granteeUserID string) ([]Grant, error) {
	out := make([]Grant, 0)
	for _, g := range r.byID {
		if g.GranteeUserID == granteeUserID {
			out = append(out, g)
		}
	}
	return out, nil
}

func fixedService(now time.Time) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestService_Invite_DefaultScopes_WhenEmpty(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	svc, _ := fixedService(now)

	g, err := svc.Invite(context.Background(), InviteInput{
		PatientID:     "patient-1",
		OwnerUserID:   "owner-1",
		GranteeUserID: "doctor-1",
	})
	if err != nil {
		t.Fatalf("Invite returned error: %v", err)
	}
	if g.Status != StatusInvited {
		t.Fatalf("expected status invited, got %s", g.Status)
	}
	if !g.CreatedAt.Equal(now) || !g.UpdatedAt.Equal(now) {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
	for _, s := range []Scope{ScopePatientRead, ScopeHistoryRead, ScopeAssessmentsRead} {
		if !HasScope(g, s) {
			t.Fatalf("expected default scope %s, got %#v", s, g.Scopes)
		}
	}
	if HasScope(g, ScopeHistoryCreate) {
		t.Fatalf("history:create must not be a default scope")
	}
}

func TestService_Invite_RejectsSelfAndUnknownScopes(t *testing.T) {
	svc, _ := fixedService(time.Now())

	_, err := svc.Invite(context.Background(), InviteInput{
		PatientID:     "patient-1",
		OwnerUserID:   "owner-1",
		GranteeUserID: "owner-1",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("self invite: expected ErrInvalidInput, got %v", err)
	}

	_, err = svc.Invite(context.Background(), InviteInput{
		PatientID:     "patient-1",
		OwnerUserID:   "owner-1",
		GranteeUserID: "doctor-1",
		Scopes:        []Scope{ScopeHistoryRead, Scope("bad:scope")},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown scope: expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Invite_Dedup_UpdatesSameGrant(t *testing.T) {
	svc, _ := fixedService(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	g1, err := svc.Invite(context.Background(), InviteInput{
		PatientID:     "patient-1",
		OwnerUserID:   "owner-1",
		GranteeUserID: "doctor-1",
		Scopes:        []Scope{ScopeHistoryRead},
	})
	if err != nil {
		t.Fatalf("Invite #1 error: %v", err)
	}

	later := time.Date(2026, 3, 2, 10, 5, 0, 0, time.UTC)
	svc.now = func() time.Time { return later }
	g2, err := svc.Invite(context.Background(), InviteInput{
		PatientID:     "patient-1",
		OwnerUserID:   "owner-1",
		GranteeUserID: "doctor-1",
		Scopes:        []Scope{ScopeHistoryRead, ScopeHistoryCreate, ScopeHistoryRead},
	})
	if err != nil {
		t.Fatalf("Invite #2 error: %v", err)
	}

	if g2.ID != g1.ID {
		t.Fatalf("expected same grant ID, got %s vs %s", g1.ID, g2.ID)
	}
	if !g2.UpdatedAt.Equal(later) {
		t.Fatalf("expected UpdatedAt to change on reinvite")
	}
	if len(g2.Scopes) != 2 {
		t.Fatalf("expected deduplicated scopes, got %#v", g2.Scopes)
	}
}

func TestService_Accept_OnlyGrantee(t *testing.T) {
	svc, _ := fixedService(time.Now())

	g, err := svc.Invite(context.Background(), InviteInput{
		PatientID:     "patient-1",
		OwnerUserID:   "owner-1",
		GranteeUserID: "doctor-1",
	})
	if err != nil {
		t.Fatalf("Invite error: %v", err)
	}

	if _, err := svc.Accept(context.Background(), g.ID, "someone-else"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Accept(context.Background(), "missing", "doctor-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	accepted, err := svc.Accept(context.Background(), g.ID, "doctor-1")
	if err != nil {
		t.Fatalf("Accept error: %v", err)
	}
	if accepted.Status != StatusActive {
		t.Fatalf("expected active, got %s", accepted.Status)
	}

	again, err := svc.Accept(context.Background(), g.ID, "doctor-1")
	if err != nil || again.Status != StatusActive {
		t.Fatalf("expected idempotent accept, got %v / %s", err, again.Status)
	}
}

func TestService_Accept_LeavesOnlyOneActive(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	svc, repo := fixedService(now)

	for i, id := range []string{"g1", "g2"} {
		_ = repo.Create(context.Background(), Grant{
			ID:            id,
			PatientID:     "patient-1",
			OwnerUserID:   "owner-1",
			GranteeUserID: "doctor-1",
			Scopes:        []Scope{ScopeHistoryRead},
			Status:        StatusInvited,
			CreatedAt:     now.Add(time.Duration(i-10) * time.Minute),
			UpdatedAt:     now.Add(time.Duration(i-10) * time.Minute),
		})
	}

	if _, err := svc.Accept(context.Background(), "g2", "doctor-1"); err != nil {
		t.Fatalf("Accept error: %v", err)
	}

	active := 0
	for _, g := range repo.byID {
		if g.Status == StatusActive {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("expected exactly 1 active grant, got %d", active)
	}
	if repo.byID["g1"].Status != StatusRevoked {
		t.Fatalf("expected g1 revoked, got %s", repo.byID["g1"].Status)
	}
}

func TestService_Revoke_OnlyOwner(t *testing.T) {
	svc, _ := fixedService(time.Now())

	g, _ := svc.Invite(context.Background(), InviteInput{
		PatientID:     "patient-1",
		OwnerUserID:   "owner-1",
		GranteeUserID: "doctor-1",
	})

	if _, err := svc.Revoke(context.Background(), g.ID, "doctor-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	revoked, err := svc.Revoke(context.Background(), g.ID, "owner-1")
	if err != nil {
		t.Fatalf("Revoke error: %v", err)
	}
	if revoked.Status != StatusRevoked || revoked.RevokedAt == nil {
		t.Fatalf("expected revoked with RevokedAt, got %+v", revoked)
	}

	if _, err := svc.Accept(context.Background(), g.ID, "doctor-1"); !errors.Is(err, ErrBadState) {
		t.Fatalf("accepting a revoked grant: expected ErrBadState, got %v", err)
	}
}

func TestService_Allows(t *testing.T) {
	svc, _ := fixedService(time.Now())
	ctx := context.Background()

	g, _ := svc.Invite(ctx, InviteInput{
		PatientID:     "patient-1",
		OwnerUserID:   "owner-1",
		GranteeUserID: "doctor-1",
		Scopes:        []Scope{ScopeHistoryRead},
	})

	if !svc.Allows(ctx, "patient-1", "owner-1", "owner-1", ScopeAssessmentsCreate) {
		t.Fatalf("owner must always be allowed")
	}
	if svc.Allows(ctx, "patient-1", "owner-1", "doctor-1", ScopeHistoryRead) {
		t.Fatalf("invited (not accepted) grant must not allow")
	}

	if _, err := svc.Accept(ctx, g.ID, "doctor-1"); err != nil {
		t.Fatalf("Accept error: %v", err)
	}
	if !svc.Allows(ctx, "patient-1", "owner-1", "doctor-1", ScopeHistoryRead) {
		t.Fatalf("active grant with scope must allow")
	}
	if svc.Allows(ctx, "patient-1", "owner-1", "doctor-1", ScopeHistoryCreate) {
		t.Fatalf("active grant without scope must not allow")
	}
	if svc.Allows(ctx, "patient-1", "owner-1", "", ScopeHistoryRead) {
		t.Fatalf("anonymous user must not be allowed")
	}
}

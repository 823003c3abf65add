package sprintstore

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/store"
	sprintbugstore "github.com/sprinthub/sprinthub/internal/app/store/sprintbugs"
	teamstore "github.com/sprinthub/sprinthub/internal/app/store/teams"
	"github.com/sprinthub/sprinthub/internal/app/system/indexes"
	"github.com/sprinthub/sprinthub/internal/domain/models"
	"github.com/sprinthub/sprinthub/internal/testutil"
)

func setup(t *testing.T) (*Store, *teamstore.Store, *sprintbugstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	return New(db, zap.NewNop()), teamstore.New(db), sprintbugstore.New(db, zap.NewNop())
}

func TestCreateRequiresTeam(t *testing.T) {
	sprints, _, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := sprints.Create(ctx, "no-such-team", "Sprint 12"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCreateDuplicateNameWithinTeam(t *testing.T) {
	sprints, teams, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := teams.Create(ctx, "Autofill")
	b, _ := teams.Create(ctx, "Credential Management")

	if _, err := sprints.Create(ctx, a.ID, "Sprint 12"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := sprints.Create(ctx, a.ID, "sprint 12"); !errors.Is(err, store.ErrDuplicateSprintName) {
		t.Errorf("same team: got %v, want ErrDuplicateSprintName", err)
	}
	if _, err := sprints.Create(ctx, b.ID, "Sprint 12"); err != nil {
		t.Errorf("other team: %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	sprints, teams, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	team, _ := teams.Create(ctx, "Autofill")
	first, _ := sprints.Create(ctx, team.ID, "Sprint 11")
	time.Sleep(5 * time.Millisecond)
	second, _ := sprints.Create(ctx, team.ID, "Sprint 12")

	got, err := sprints.List(ctx, team.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d sprints, want 2", len(got))
	}
	if got[0].ID != second.ID || got[1].ID != first.ID {
		t.Errorf("list not newest-first: %q then %q", got[0].Name, got[1].Name)
	}
}

func TestCloseOverwritesEndTime(t *testing.T) {
	sprints, teams, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	team, _ := teams.Create(ctx, "Autofill")
	sprint, _ := sprints.Create(ctx, team.ID, "Sprint 12")

	end := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	closed, err := sprints.Close(ctx, team.ID, sprint.ID, end)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !closed.Closed() {
		t.Error("sprint not closed after Close")
	}

	later := end.Add(24 * time.Hour)
	reclosed, err := sprints.Close(ctx, team.ID, sprint.ID, later)
	if err != nil {
		t.Fatalf("re-Close: %v", err)
	}
	if reclosed.EndTime == nil || !reclosed.EndTime.Equal(later) {
		t.Errorf("re-close did not overwrite end time: %+v", reclosed.EndTime)
	}
}

func TestDeleteCascadesAssociations(t *testing.T) {
	sprints, teams, bugs := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	team, _ := teams.Create(ctx, "Autofill")
	sprint, _ := sprints.Create(ctx, team.ID, "Sprint 12")
	if _, _, err := bugs.Add(ctx, team.ID, sprint.ID, []string{"101", "102"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := sprints.Delete(ctx, team.ID, sprint.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := sprints.Get(ctx, team.ID, sprint.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get after delete: got %v, want ErrNotFound", err)
	}
	if _, err := bugs.List(ctx, team.ID, sprint.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("List bugs after delete: got %v, want ErrNotFound", err)
	}
	if err := sprints.Delete(ctx, team.ID, sprint.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}
}

func TestReplaceBugsDerivesCounters(t *testing.T) {
	sprints, teams, bugs := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	team, _ := teams.Create(ctx, "Autofill")
	sprint, _ := sprints.Create(ctx, team.ID, "Sprint 12")
	bugs.Add(ctx, team.ID, sprint.ID, []string{"101", "102"})

	updated, err := sprints.ReplaceBugs(ctx, team.ID, sprint.ID, []models.SprintBug{
		{BugID: "201", ResolvedOrVerified: true},
		{BugID: "202"},
		{BugID: "203", ResolvedOrVerified: true},
	})
	if err != nil {
		t.Fatalf("ReplaceBugs: %v", err)
	}
	if updated.NumberOfBugs != 3 {
		t.Errorf("NumberOfBugs = %d, want 3", updated.NumberOfBugs)
	}
	if updated.ResolvedOrVerified != 2 {
		t.Errorf("ResolvedOrVerified = %d, want 2", updated.ResolvedOrVerified)
	}

	records, err := bugs.List(ctx, team.ID, sprint.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}
	for _, b := range records {
		if b.BugID == "101" || b.BugID == "102" {
			t.Errorf("old bug %s survived replace", b.BugID)
		}
	}
}

package sprintbugstore

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/store"
	sprintstore "github.com/sprinthub/sprinthub/internal/app/store/sprints"
	teamstore "github.com/sprinthub/sprinthub/internal/app/store/teams"
	"github.com/sprinthub/sprinthub/internal/app/system/indexes"
	"github.com/sprinthub/sprinthub/internal/domain/models"
	"github.com/sprinthub/sprinthub/internal/testutil"
)

func setup(t *testing.T) (*Store, string, string) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	teams := teamstore.New(db)
	sprints := sprintstore.New(db, zap.NewNop())
	team := testutil.CreateTeam(t, teams, "Autofill")
	sprint := testutil.CreateSprint(t, sprints, team.ID, "Sprint 12")
	return New(db, zap.NewNop()), team.ID, sprint.ID
}

func TestAddIsIdempotent(t *testing.T) {
	bugs, teamID, sprintID := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sprint, added, err := bugs.Add(ctx, teamID, sprintID, []string{"101", "102", "103"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added != 3 {
		t.Errorf("added = %d, want 3", added)
	}
	if sprint.NumberOfBugs != 3 {
		t.Errorf("NumberOfBugs = %d, want 3", sprint.NumberOfBugs)
	}

	sprint, added, err = bugs.Add(ctx, teamID, sprintID, []string{"102", "104"})
	if err != nil {
		t.Fatalf("overlapping Add: %v", err)
	}
	if added != 1 {
		t.Errorf("overlapping added = %d, want 1", added)
	}
	if sprint.NumberOfBugs != 4 {
		t.Errorf("NumberOfBugs = %d, want 4", sprint.NumberOfBugs)
	}

	_, added, err = bugs.Add(ctx, teamID, sprintID, []string{"101", "102"})
	if err != nil {
		t.Fatalf("duplicate Add: %v", err)
	}
	if added != 0 {
		t.Errorf("duplicate added = %d, want 0", added)
	}
}

func TestAddMissingSprint(t *testing.T) {
	bugs, teamID, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, _, err := bugs.Add(ctx, teamID, "no-such-sprint", []string{"101"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestRemoveRecountsAndIgnoresAbsent(t *testing.T) {
	bugs, teamID, sprintID := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	bugs.Add(ctx, teamID, sprintID, []string{"101", "102", "103"})

	if err := bugs.Remove(ctx, teamID, sprintID, []string{"102", "999"}); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	records, err := bugs.List(ctx, teamID, sprintID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2", len(records))
	}
	for _, b := range records {
		if b.BugID == "102" {
			t.Error("bug 102 survived removal")
		}
	}
}

func TestUpdateCategory(t *testing.T) {
	bugs, teamID, sprintID := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	bugs.Add(ctx, teamID, sprintID, []string{"101"})

	if err := bugs.UpdateCategory(ctx, teamID, sprintID, "101", "carryover"); err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	records, _ := bugs.List(ctx, teamID, sprintID)
	if len(records) != 1 || records[0].Category != "carryover" {
		t.Errorf("category not applied: %+v", records)
	}

	if err := bugs.UpdateCategory(ctx, teamID, sprintID, "999", "carryover"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("absent bug: got %v, want ErrNotFound", err)
	}
}

func TestRolloverCopiesAndOverwrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	teams := teamstore.New(db)
	sprints := sprintstore.New(db, zap.NewNop())
	bugs := New(db, zap.NewNop())

	team := testutil.CreateTeam(t, teams, "Autofill")
	source := testutil.CreateSprint(t, sprints, team.ID, "Sprint 11")
	target := testutil.CreateSprint(t, sprints, team.ID, "Sprint 12")

	bugs.Add(ctx, team.ID, source.ID, []string{"101", "102"})
	if err := bugs.UpdateCategory(ctx, team.ID, source.ID, "101", "carryover"); err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	bugs.Add(ctx, team.ID, target.ID, []string{"101"})

	copied, err := bugs.Rollover(ctx, team.ID, target.ID, source.ID, []string{"101", "102", "999"})
	if err != nil {
		t.Fatalf("Rollover: %v", err)
	}
	if copied != 2 {
		t.Errorf("copied = %d, want 2", copied)
	}

	records, err := bugs.List(ctx, team.ID, target.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records in target, want 2", len(records))
	}
	byID := make(map[string]models.SprintBug, len(records))
	for _, b := range records {
		byID[b.BugID] = b
	}
	if byID["101"].Category != "carryover" {
		t.Errorf("category not carried over: %+v", byID["101"])
	}
	if _, ok := byID["102"]; !ok {
		t.Error("bug 102 not copied")
	}

	sp, err := sprints.Get(ctx, team.ID, target.ID)
	if err != nil {
		t.Fatalf("Get target: %v", err)
	}
	if sp.NumberOfBugs != 2 {
		t.Errorf("target NumberOfBugs = %d, want 2", sp.NumberOfBugs)
	}
}

func TestRolloverErrors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	teams := teamstore.New(db)
	sprints := sprintstore.New(db, zap.NewNop())
	bugs := New(db, zap.NewNop())

	team := testutil.CreateTeam(t, teams, "Autofill")
	source := testutil.CreateSprint(t, sprints, team.ID, "Sprint 11")
	target := testutil.CreateSprint(t, sprints, team.ID, "Sprint 12")
	bugs.Add(ctx, team.ID, source.ID, []string{"101"})

	if _, err := bugs.Rollover(ctx, team.ID, "no-such-sprint", source.ID, []string{"101"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing target: got %v, want ErrNotFound", err)
	}
	if _, err := bugs.Rollover(ctx, team.ID, target.ID, source.ID, []string{"998", "999"}); !errors.Is(err, store.ErrNoBugsForRollover) {
		t.Errorf("all ids absent: got %v, want ErrNoBugsForRollover", err)
	}
	if _, err := bugs.Rollover(ctx, team.ID, target.ID, "no-such-sprint", []string{"101"}); !errors.Is(err, store.ErrNoBugsForRollover) {
		t.Errorf("missing source: got %v, want ErrNoBugsForRollover", err)
	}
}

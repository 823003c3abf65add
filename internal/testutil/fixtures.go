// internal/testutil/fixtures.go
package testutil

import (
	"testing"

	"github.com/sprinthub/sprinthub/internal/app/store"
	"github.com/sprinthub/sprinthub/internal/domain/models"
)

// CreateTeam inserts a team through the store, failing the test on error.
func CreateTeam(t *testing.T, teams store.TeamStore, name string) models.Team {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	team, err := teams.Create(ctx, name)
	if err != nil {
		t.Fatalf("create team %q: %v", name, err)
	}
	return team
}

// CreateSprint inserts a sprint through the store, failing the test on
// error.
func CreateSprint(t *testing.T, sprints store.SprintStore, teamID, name string) models.Sprint {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	sprint, err := sprints.Create(ctx, teamID, name)
	if err != nil {
		t.Fatalf("create sprint %q: %v", name, err)
	}
	return sprint
}

// AddBugs associates bug ids with a sprint, failing the test on error.
func AddBugs(t *testing.T, bugs store.SprintBugStore, teamID, sprintID string, ids ...string) models.Sprint {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	sprint, _, err := bugs.Add(ctx, teamID, sprintID, ids)
	if err != nil {
		t.Fatalf("add bugs %v: %v", ids, err)
	}
	return sprint
}

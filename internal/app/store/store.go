// internal/app/store/store.go
//
// Package store defines the persistence contracts for teams, sprints and
// sprint-bug associations, plus the sentinel errors shared by every
// implementation. Two substitutable backends exist: the Mongo stores under
// store/teams, store/sprints and store/sprintbugs, and the JSON-file
// backend under store/jsonfile. Handlers depend only on these interfaces
// so they never couple to a storage technology.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/sprinthub/sprinthub/internal/domain/models"
)

var (
	// ErrNotFound is returned when a referenced team, sprint or bug
	// record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateTeamName is returned when a team with the same name
	// (case-insensitive) already exists.
	ErrDuplicateTeamName = errors.New("a team with this name already exists")

	// ErrDuplicateSprintName is returned when a sprint with the same name
	// (case-insensitive) already exists within the team.
	ErrDuplicateSprintName = errors.New("a sprint with this name already exists in the team")

	// ErrNoBugsForRollover is returned when none of the requested bug ids
	// were present in the source sprint, so nothing was copied.
	ErrNoBugsForRollover = errors.New("no valid bugs found for rollover")
)

// TeamStore is CRUD over the teams collection.
type TeamStore interface {
	// Create persists a new team with a freshly generated opaque id.
	Create(ctx context.Context, name string) (models.Team, error)

	// List returns all teams in insertion order.
	List(ctx context.Context) ([]models.Team, error)

	// Get returns the team or ErrNotFound.
	Get(ctx context.Context, id string) (models.Team, error)
}

// SprintStore is CRUD over sprints nested under a team. The derived
// counters on Sprint are maintained by the implementations and recomputed
// on every mutation of the bug set.
type SprintStore interface {
	Create(ctx context.Context, teamID, name string) (models.Sprint, error)

	// List returns the team's sprints newest first.
	List(ctx context.Context, teamID string) ([]models.Sprint, error)

	Get(ctx context.Context, teamID, sprintID string) (models.Sprint, error)

	// Close sets the sprint's end time. Re-closing is an idempotent
	// overwrite; there is no validation against the creation time.
	Close(ctx context.Context, teamID, sprintID string, endTime time.Time) (models.Sprint, error)

	Delete(ctx context.Context, teamID, sprintID string) error

	// ReplaceBugs wholesale-replaces the sprint's bug set and recomputes
	// both derived counters.
	ReplaceBugs(ctx context.Context, teamID, sprintID string, bugs []models.SprintBug) (models.Sprint, error)
}

// SprintBugStore manages the association between a sprint and bug ids.
type SprintBugStore interface {
	// List returns the sprint's association records.
	List(ctx context.Context, teamID, sprintID string) ([]models.SprintBug, error)

	// Add writes one record per bug id not already associated, in a
	// single batch, and returns the updated sprint plus the number of
	// records actually added. Duplicate ids are silently dropped.
	Add(ctx context.Context, teamID, sprintID string, bugIDs []string) (models.Sprint, int, error)

	// Remove deletes each matching record; ids with no record are not
	// errors. The whole batch is reported failed if any single deletion
	// fails, even though earlier deletions may have taken effect.
	Remove(ctx context.Context, teamID, sprintID string, bugIDs []string) error

	// UpdateCategory updates just the category field of one record.
	UpdateCategory(ctx context.Context, teamID, sprintID, bugID, category string) error

	// Rollover copies the records for bugIDs from the source sprint to
	// the target sprint in one batch, overwriting records already present
	// under the same bug id. It returns the number of records copied;
	// ErrNotFound if the target sprint is absent, ErrNoBugsForRollover
	// when nothing was found to copy.
	Rollover(ctx context.Context, teamID, targetSprintID, sourceSprintID string, bugIDs []string) (int, error)
}

// Stores bundles one implementation of each contract, as wired by the
// bootstrap for the configured backend.
type Stores struct {
	Teams      TeamStore
	Sprints    SprintStore
	SprintBugs SprintBugStore
}

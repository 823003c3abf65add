// internal/app/store/jsonfile/bugstore.go
package jsonfile

import (
	"context"
	"errors"
	"time"

	"github.com/sprinthub/sprinthub/internal/app/store"
	"github.com/sprinthub/sprinthub/internal/domain/models"
	"go.uber.org/zap"
)

// SprintBugStore implements store.SprintBugStore over the bug snapshots
// embedded in the per-team sprint files.
type SprintBugStore struct {
	db *DB
}

func (s *SprintBugStore) List(ctx context.Context, teamID, sprintID string) ([]models.SprintBug, error) {
	var recs []sprintRecord
	if err := readFile(s.db.sprintsPath(teamID), &recs); err != nil {
		return nil, err
	}
	for _, r := range recs {
		if r.ID == sprintID {
			return r.Bugs, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *SprintBugStore) Add(ctx context.Context, teamID, sprintID string, bugIDs []string) (models.Sprint, int, error) {
	var out models.Sprint
	added := 0
	err := s.db.updateSprint(teamID, sprintID, func(rec *sprintRecord) error {
		existing := make(map[string]struct{}, len(rec.Bugs))
		for _, b := range rec.Bugs {
			existing[b.BugID] = struct{}{}
		}
		now := time.Now().UTC()
		for _, id := range bugIDs {
			if _, ok := existing[id]; ok {
				continue
			}
			existing[id] = struct{}{}
			rec.Bugs = append(rec.Bugs, models.SprintBug{BugID: id, AddedAt: now})
			added++
		}
		rec.recount()
		out = rec.Sprint
		return nil
	})
	if err != nil {
		return models.Sprint{}, 0, err
	}
	return out, added, nil
}

func (s *SprintBugStore) Remove(ctx context.Context, teamID, sprintID string, bugIDs []string) error {
	drop := make(map[string]struct{}, len(bugIDs))
	for _, id := range bugIDs {
		drop[id] = struct{}{}
	}
	err := s.db.updateSprint(teamID, sprintID, func(rec *sprintRecord) error {
		kept := rec.Bugs[:0]
		for _, b := range rec.Bugs {
			if _, ok := drop[b.BugID]; ok {
				continue
			}
			kept = append(kept, b)
		}
		rec.Bugs = kept
		rec.recount()
		return nil
	})
	// Deleting under an absent sprint is a no-op, matching the indexed
	// backend's delete-if-present semantics.
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

func (s *SprintBugStore) UpdateCategory(ctx context.Context, teamID, sprintID, bugID, category string) error {
	return s.db.updateSprint(teamID, sprintID, func(rec *sprintRecord) error {
		for i := range rec.Bugs {
			if rec.Bugs[i].BugID == bugID {
				rec.Bugs[i].Category = category
				return nil
			}
		}
		return store.ErrNotFound
	})
}

func (s *SprintBugStore) Rollover(ctx context.Context, teamID, targetSprintID, sourceSprintID string, bugIDs []string) (int, error) {
	path := s.db.sprintsPath(teamID)
	lock := s.db.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	var recs []sprintRecord
	if err := readFile(path, &recs); err != nil {
		return 0, err
	}

	target := -1
	source := -1
	for i := range recs {
		switch recs[i].ID {
		case targetSprintID:
			target = i
		case sourceSprintID:
			source = i
		}
	}
	if target == -1 {
		return 0, store.ErrNotFound
	}

	var sourceBugs map[string]models.SprintBug
	if source != -1 {
		sourceBugs = make(map[string]models.SprintBug, len(recs[source].Bugs))
		for _, b := range recs[source].Bugs {
			sourceBugs[b.BugID] = b
		}
	}

	copied := 0
	for _, id := range bugIDs {
		b, ok := sourceBugs[id]
		if !ok {
			s.db.log.Warn("bug not found in source sprint",
				zap.String("bug_id", id),
				zap.String("source_sprint_id", sourceSprintID))
			continue
		}
		replaced := false
		for i := range recs[target].Bugs {
			if recs[target].Bugs[i].BugID == id {
				recs[target].Bugs[i] = b
				replaced = true
				break
			}
		}
		if !replaced {
			recs[target].Bugs = append(recs[target].Bugs, b)
		}
		copied++
	}
	if copied == 0 {
		return 0, store.ErrNoBugsForRollover
	}

	recs[target].recount()
	if err := writeFile(path, recs); err != nil {
		return 0, err
	}
	return copied, nil
}

// internal/app/store/jsonfile/sprintstore.go
package jsonfile

import (
	"context"
	"sort"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"github.com/sprinthub/sprinthub/internal/app/store"
	"github.com/sprinthub/sprinthub/internal/domain/models"
)

// SprintStore implements store.SprintStore over the per-team sprint files.
type SprintStore struct {
	db *DB
}

func (s *SprintStore) Create(ctx context.Context, teamID, name string) (models.Sprint, error) {
	if _, err := (&TeamStore{db: s.db}).Get(ctx, teamID); err != nil {
		return models.Sprint{}, err
	}

	path := s.db.sprintsPath(teamID)
	lock := s.db.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	var recs []sprintRecord
	if err := readFile(path, &recs); err != nil {
		return models.Sprint{}, err
	}

	folded := text.Fold(name)
	for _, r := range recs {
		if text.Fold(r.Name) == folded {
			return models.Sprint{}, store.ErrDuplicateSprintName
		}
	}

	sp := models.Sprint{
		ID:        uuid.NewString(),
		TeamID:    teamID,
		Name:      name,
		NameCI:    folded,
		CreatedAt: time.Now().UTC(),
	}
	recs = append(recs, sprintRecord{Sprint: sp, Bugs: []models.SprintBug{}})
	if err := writeFile(path, recs); err != nil {
		return models.Sprint{}, err
	}
	return sp, nil
}

func (s *SprintStore) List(ctx context.Context, teamID string) ([]models.Sprint, error) {
	var recs []sprintRecord
	if err := readFile(s.db.sprintsPath(teamID), &recs); err != nil {
		return nil, err
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	sprints := make([]models.Sprint, 0, len(recs))
	for _, r := range recs {
		sprints = append(sprints, r.Sprint)
	}
	return sprints, nil
}

func (s *SprintStore) Get(ctx context.Context, teamID, sprintID string) (models.Sprint, error) {
	var recs []sprintRecord
	if err := readFile(s.db.sprintsPath(teamID), &recs); err != nil {
		return models.Sprint{}, err
	}
	for _, r := range recs {
		if r.ID == sprintID {
			return r.Sprint, nil
		}
	}
	return models.Sprint{}, store.ErrNotFound
}

func (s *SprintStore) Close(ctx context.Context, teamID, sprintID string, endTime time.Time) (models.Sprint, error) {
	var out models.Sprint
	err := s.db.updateSprint(teamID, sprintID, func(rec *sprintRecord) error {
		end := endTime.UTC()
		rec.EndTime = &end
		out = rec.Sprint
		return nil
	})
	return out, err
}

func (s *SprintStore) Delete(ctx context.Context, teamID, sprintID string) error {
	path := s.db.sprintsPath(teamID)
	lock := s.db.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	var recs []sprintRecord
	if err := readFile(path, &recs); err != nil {
		return err
	}
	kept := recs[:0]
	found := false
	for _, r := range recs {
		if r.ID == sprintID {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return store.ErrNotFound
	}
	return writeFile(path, kept)
}

func (s *SprintStore) ReplaceBugs(ctx context.Context, teamID, sprintID string, bugs []models.SprintBug) (models.Sprint, error) {
	var out models.Sprint
	err := s.db.updateSprint(teamID, sprintID, func(rec *sprintRecord) error {
		now := time.Now().UTC()
		replaced := make([]models.SprintBug, 0, len(bugs))
		for _, b := range bugs {
			b.SprintID = ""
			b.TeamID = ""
			if b.AddedAt.IsZero() {
				b.AddedAt = now
			}
			replaced = append(replaced, b)
		}
		rec.Bugs = replaced
		rec.recount()
		out = rec.Sprint
		return nil
	})
	return out, err
}

// updateSprint loads the team's sprint file, applies fn to the matching
// record and writes the file back, all under the per-file lock. Recounting
// is left to fn.
func (db *DB) updateSprint(teamID, sprintID string, fn func(rec *sprintRecord) error) error {
	path := db.sprintsPath(teamID)
	lock := db.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	var recs []sprintRecord
	if err := readFile(path, &recs); err != nil {
		return err
	}
	for i := range recs {
		if recs[i].ID == sprintID {
			if err := fn(&recs[i]); err != nil {
				return err
			}
			return writeFile(path, recs)
		}
	}
	return store.ErrNotFound
}

// internal/app/store/jsonfile/teamstore.go
package jsonfile

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"github.com/sprinthub/sprinthub/internal/app/store"
	"github.com/sprinthub/sprinthub/internal/domain/models"
)

// TeamStore implements store.TeamStore over teams.json. Teams are kept in
// insertion order, which is also the order List returns.
type TeamStore struct {
	db *DB
}

func (s *TeamStore) Create(ctx context.Context, name string) (models.Team, error) {
	path := s.db.teamsPath()
	lock := s.db.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	var teams []models.Team
	if err := readFile(path, &teams); err != nil {
		return models.Team{}, err
	}

	folded := text.Fold(name)
	for _, t := range teams {
		if text.Fold(t.Name) == folded {
			return models.Team{}, store.ErrDuplicateTeamName
		}
	}

	t := models.Team{
		ID:        uuid.NewString(),
		Name:      name,
		NameCI:    folded,
		CreatedAt: time.Now().UTC(),
	}
	teams = append(teams, t)
	if err := writeFile(path, teams); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

func (s *TeamStore) List(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := readFile(s.db.teamsPath(), &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *TeamStore) Get(ctx context.Context, id string) (models.Team, error) {
	var teams []models.Team
	if err := readFile(s.db.teamsPath(), &teams); err != nil {
		return models.Team{}, err
	}
	for _, t := range teams {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Team{}, store.ErrNotFound
}

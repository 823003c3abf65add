// internal/app/store/sprints/sprintstore.go
package sprintstore

import (
	"context"
	"time"

	"github.com/sprinthub/sprinthub/internal/app/store"
	"github.com/sprinthub/sprinthub/internal/app/system/txn"
	"github.com/sprinthub/sprinthub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Store struct {
	db      *mongo.Database
	teams   *mongo.Collection
	sprints *mongo.Collection
	bugs    *mongo.Collection
	log     *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		db:      db,
		teams:   db.Collection("teams"),
		sprints: db.Collection("sprints"),
		bugs:    db.Collection("sprint_bugs"),
		log:     logger,
	}
}

func (s *Store) Create(ctx context.Context, teamID, name string) (models.Sprint, error) {
	n, err := s.teams.CountDocuments(ctx, bson.M{"_id": teamID})
	if err != nil {
		return models.Sprint{}, err
	}
	if n == 0 {
		return models.Sprint{}, store.ErrNotFound
	}

	sp := models.Sprint{
		ID:        primitive.NewObjectID().Hex(),
		TeamID:    teamID,
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.sprints.InsertOne(ctx, sp); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Sprint{}, store.ErrDuplicateSprintName
		}
		return models.Sprint{}, err
	}
	return sp, nil
}

func (s *Store) List(ctx context.Context, teamID string) ([]models.Sprint, error) {
	cur, err := s.sprints.Find(ctx, bson.M{"team_id": teamID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sprints []models.Sprint
	if err := cur.All(ctx, &sprints); err != nil {
		return nil, err
	}
	return sprints, nil
}

func (s *Store) Get(ctx context.Context, teamID, sprintID string) (models.Sprint, error) {
	var sp models.Sprint
	err := s.sprints.FindOne(ctx, bson.M{"_id": sprintID, "team_id": teamID}).Decode(&sp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Sprint{}, store.ErrNotFound
		}
		return models.Sprint{}, err
	}
	return sp, nil
}

func (s *Store) Close(ctx context.Context, teamID, sprintID string, endTime time.Time) (models.Sprint, error) {
	after := options.After
	var sp models.Sprint
	err := s.sprints.FindOneAndUpdate(ctx,
		bson.M{"_id": sprintID, "team_id": teamID},
		bson.M{"$set": bson.M{"end_time": endTime.UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&sp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Sprint{}, store.ErrNotFound
		}
		return models.Sprint{}, err
	}
	return sp, nil
}

// Delete removes the sprint and all of its association records.
func (s *Store) Delete(ctx context.Context, teamID, sprintID string) error {
	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		res, err := s.sprints.DeleteOne(ctx, bson.M{"_id": sprintID, "team_id": teamID})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return store.ErrNotFound
		}
		_, err = s.bugs.DeleteMany(ctx, bson.M{"sprint_id": sprintID})
		return err
	})
}

func (s *Store) ReplaceBugs(ctx context.Context, teamID, sprintID string, bugs []models.SprintBug) (models.Sprint, error) {
	var sp models.Sprint
	if err := s.sprints.FindOne(ctx, bson.M{"_id": sprintID, "team_id": teamID}).Decode(&sp); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Sprint{}, store.ErrNotFound
		}
		return models.Sprint{}, err
	}

	now := time.Now().UTC()
	resolved := 0
	docs := make([]interface{}, 0, len(bugs))
	for _, b := range bugs {
		b.SprintID = sprintID
		b.TeamID = teamID
		if b.AddedAt.IsZero() {
			b.AddedAt = now
		}
		if b.ResolvedOrVerified {
			resolved++
		}
		docs = append(docs, b)
	}

	err := txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		if _, err := s.bugs.DeleteMany(ctx, bson.M{"sprint_id": sprintID}); err != nil {
			return err
		}
		if len(docs) > 0 {
			if _, err := s.bugs.InsertMany(ctx, docs); err != nil {
				return err
			}
		}
		_, err := s.sprints.UpdateOne(ctx, bson.M{"_id": sprintID}, bson.M{"$set": bson.M{
			"number_of_bugs":       len(bugs),
			"resolved_or_verified": resolved,
		}})
		return err
	})
	if err != nil {
		return models.Sprint{}, err
	}

	sp.NumberOfBugs = len(bugs)
	sp.ResolvedOrVerified = resolved
	return sp, nil
}

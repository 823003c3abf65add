// internal/app/store/sprintbugs/sprintbugstore.go
package sprintbugstore

import (
	"context"
	"time"

	"github.com/sprinthub/sprinthub/internal/app/store"
	"github.com/sprinthub/sprinthub/internal/app/system/txn"
	"github.com/sprinthub/sprinthub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Store struct {
	db      *mongo.Database
	sprints *mongo.Collection
	bugs    *mongo.Collection
	log     *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		db:      db,
		sprints: db.Collection("sprints"),
		bugs:    db.Collection("sprint_bugs"),
		log:     logger,
	}
}

func (s *Store) List(ctx context.Context, teamID, sprintID string) ([]models.SprintBug, error) {
	if _, err := s.getSprint(ctx, teamID, sprintID); err != nil {
		return nil, err
	}
	cur, err := s.bugs.Find(ctx, bson.M{"sprint_id": sprintID},
		options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bugs []models.SprintBug
	if err := cur.All(ctx, &bugs); err != nil {
		return nil, err
	}
	return bugs, nil
}

// Add inserts one record per bug id not already associated with the
// sprint. Ids already present are dropped silently; the insert runs as a
// single unordered batch and both derived counters are recomputed after.
func (s *Store) Add(ctx context.Context, teamID, sprintID string, bugIDs []string) (models.Sprint, int, error) {
	sp, err := s.getSprint(ctx, teamID, sprintID)
	if err != nil {
		return models.Sprint{}, 0, err
	}

	existing, err := s.existingIDs(ctx, sprintID)
	if err != nil {
		return models.Sprint{}, 0, err
	}

	now := time.Now().UTC()
	var writes []mongo.WriteModel
	for _, id := range bugIDs {
		if _, ok := existing[id]; ok {
			continue
		}
		existing[id] = struct{}{}
		writes = append(writes, mongo.NewInsertOneModel().SetDocument(models.SprintBug{
			SprintID: sprintID,
			TeamID:   teamID,
			BugID:    id,
			AddedAt:  now,
		}))
	}
	if len(writes) == 0 {
		return sp, 0, nil
	}

	err = txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		if _, err := s.bugs.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
			// A concurrent writer may have inserted one of the ids
			// between the read and the batch; the unique index makes
			// that a no-op rather than an error.
			if !wafflemongo.IsDup(err) {
				return err
			}
		}
		return s.recount(ctx, sprintID)
	})
	if err != nil {
		return models.Sprint{}, 0, err
	}

	sp, err = s.getSprint(ctx, teamID, sprintID)
	return sp, len(writes), err
}

// Remove deletes each matching record, fanning the deletions out
// concurrently and awaiting them jointly. A missing id is not an error.
// If any single deletion fails the whole batch is reported failed, even
// though deletions that already completed are not rolled back.
func (s *Store) Remove(ctx context.Context, teamID, sprintID string, bugIDs []string) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, id := range bugIDs {
		id := id
		g.Go(func() error {
			_, err := s.bugs.DeleteOne(gctx, bson.M{"sprint_id": sprintID, "bug_id": id})
			if err != nil {
				s.log.Error("sprint bug delete failed",
					zap.String("sprint_id", sprintID),
					zap.String("bug_id", id),
					zap.Error(err))
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return s.recount(ctx, sprintID)
}

func (s *Store) UpdateCategory(ctx context.Context, teamID, sprintID, bugID, category string) error {
	res, err := s.bugs.UpdateOne(ctx,
		bson.M{"sprint_id": sprintID, "bug_id": bugID},
		bson.M{"$set": bson.M{"category": category}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Rollover copies association records from the source sprint to the
// target sprint in one batch. Copies are upserts keyed by bug id, so
// rolling a bug over twice replaces the earlier copy instead of
// duplicating it. Ids absent from the source are skipped with a warning.
func (s *Store) Rollover(ctx context.Context, teamID, targetSprintID, sourceSprintID string, bugIDs []string) (int, error) {
	if _, err := s.getSprint(ctx, teamID, targetSprintID); err != nil {
		return 0, err
	}

	var writes []mongo.WriteModel
	for _, id := range bugIDs {
		var rec models.SprintBug
		err := s.bugs.FindOne(ctx, bson.M{"sprint_id": sourceSprintID, "bug_id": id}).Decode(&rec)
		if err == mongo.ErrNoDocuments {
			s.log.Warn("bug not found in source sprint",
				zap.String("bug_id", id),
				zap.String("source_sprint_id", sourceSprintID))
			continue
		}
		if err != nil {
			return 0, err
		}
		rec.SprintID = targetSprintID
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"sprint_id": targetSprintID, "bug_id": id}).
			SetReplacement(rec).
			SetUpsert(true))
	}
	if len(writes) == 0 {
		return 0, store.ErrNoBugsForRollover
	}

	err := txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		if _, err := s.bugs.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
			return err
		}
		return s.recount(ctx, targetSprintID)
	})
	if err != nil {
		return 0, err
	}
	return len(writes), nil
}

func (s *Store) getSprint(ctx context.Context, teamID, sprintID string) (models.Sprint, error) {
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

func (s *Store) existingIDs(ctx context.Context, sprintID string) (map[string]struct{}, error) {
	cur, err := s.bugs.Find(ctx, bson.M{"sprint_id": sprintID},
		options.Find().SetProjection(bson.M{"bug_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := make(map[string]struct{})
	for cur.Next(ctx) {
		var doc struct {
			BugID string `bson:"bug_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids[doc.BugID] = struct{}{}
	}
	return ids, cur.Err()
}

// recount re-derives both sprint counters from the association records.
func (s *Store) recount(ctx context.Context, sprintID string) error {
	total, err := s.bugs.CountDocuments(ctx, bson.M{"sprint_id": sprintID})
	if err != nil {
		return err
	}
	resolved, err := s.bugs.CountDocuments(ctx, bson.M{"sprint_id": sprintID, "resolved_or_verified": true})
	if err != nil {
		return err
	}
	_, err = s.sprints.UpdateOne(ctx, bson.M{"_id": sprintID}, bson.M{"$set": bson.M{
		"number_of_bugs":       total,
		"resolved_or_verified": resolved,
	}})
	return err
}

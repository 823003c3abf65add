// internal/domain/models/sprintbug.go
package models

import "time"

// SprintBug links a sprint to a bug id from the external bug tracker,
// together with the per-sprint metadata for that bug. A (sprint, bug id)
// pair appears at most once; re-adding an existing bug id is a no-op.
//
// The Mongo backend stores one document per record in the sprint_bugs
// collection (SprintID/TeamID set); the file backend embeds the same
// records inside the sprint document, where SprintID/TeamID stay empty.
type SprintBug struct {
	SprintID string `bson:"sprint_id,omitempty" json:"-"`
	TeamID   string `bson:"team_id,omitempty" json:"-"`

	BugID              string `bson:"bug_id" json:"bugId"`
	Category           string `bson:"category" json:"category"`
	ResolvedOrVerified bool   `bson:"resolved_or_verified" json:"resolvedOrVerified"`

	AddedAt time.Time `bson:"added_at" json:"addedAt"`
}

// internal/domain/models/team.go
package models

import "time"

// Team is the top-level grouping that owns sprints.
//
// NOTE:
//   - Team names are unique case-insensitively across all teams;
//     NameCI holds the folded form backing the unique index.
//   - Teams are never mutated after creation. Deletion is an
//     administrative action and is not exposed by this service.
type Team struct {
	ID     string `bson:"_id" json:"id"`
	Name   string `bson:"name" json:"name"`
	NameCI string `bson:"name_ci" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// internal/domain/models/sprint.go
package models

import "time"

// Sprint is a time-boxed collection of tracked bugs belonging to a team.
//
// NumberOfBugs and ResolvedOrVerified are derived counters: they are
// recomputed by the stores whenever the sprint's bug set changes and are
// never accepted from request input. A sprint is open while EndTime is
// nil and closed once it is set; closing is an idempotent overwrite and
// there is no transition back to open.
type Sprint struct {
	ID     string `bson:"_id" json:"id"`
	TeamID string `bson:"team_id" json:"teamId"`
	Name   string `bson:"name" json:"name"`
	NameCI string `bson:"name_ci" json:"-"`

	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	EndTime   *time.Time `bson:"end_time,omitempty" json:"endTime"`

	NumberOfBugs       int `bson:"number_of_bugs" json:"numberOfBugs"`
	ResolvedOrVerified int `bson:"resolved_or_verified" json:"resolvedOrVerified"`
}

// Closed reports whether the sprint has been closed.
func (s Sprint) Closed() bool { return s.EndTime != nil }

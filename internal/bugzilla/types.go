// internal/bugzilla/types.go
package bugzilla

// Bug is the subset of Bugzilla bug fields the service reads. Search
// endpoints request exactly these via include_fields; GetBug returns the
// full document and the extra fields are simply dropped on decode.
type Bug struct {
	ID             int      `json:"id"`
	Summary        string   `json:"summary"`
	Status         string   `json:"status"`
	Resolution     string   `json:"resolution,omitempty"`
	Type           string   `json:"type,omitempty"`
	Product        string   `json:"product,omitempty"`
	Component      string   `json:"component,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	Severity       string   `json:"severity,omitempty"`
	Whiteboard     string   `json:"whiteboard,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
	AssignedTo     string   `json:"assigned_to,omitempty"`
	LastChangeTime string   `json:"last_change_time,omitempty"`
	FxIteration    string   `json:"cf_fx_iteration,omitempty"`
	Flags          []Flag   `json:"flags,omitempty"`
}

// Flag is a review/needinfo request attached to a bug.
type Flag struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	Setter    string `json:"setter,omitempty"`
	Requestee string `json:"requestee,omitempty"`
}

// searchResponse is the envelope Bugzilla wraps bug lists in.
type searchResponse struct {
	Bugs []Bug `json:"bugs"`
}

// internal/app/system/normalize/normalize.go
//
// Package normalize holds the input normalization helpers shared by the
// HTTP handlers. Normalization happens once, at the handler boundary, so
// the stores only ever see clean values.
package normalize

import "strings"

// Name trims surrounding whitespace from a display name, preserving case.
func Name(s string) string { return strings.TrimSpace(s) }

// QueryParam trims surrounding whitespace from a query or form value.
func QueryParam(s string) string { return strings.TrimSpace(s) }

// BugID trims a raw bug id. The result may be empty, which callers must
// treat as invalid.
func BugID(s string) string { return strings.TrimSpace(s) }

// BugIDs normalizes a list of raw bug ids: each entry is trimmed and
// entries that are empty afterwards are dropped. It returns the valid ids
// in input order plus the entries that were dropped, so callers can log
// them without aborting the whole request.
func BugIDs(raw []string) (valid []string, dropped []string) {
	for _, r := range raw {
		id := BugID(r)
		if id == "" {
			dropped = append(dropped, r)
			continue
		}
		valid = append(valid, id)
	}
	return valid, dropped
}

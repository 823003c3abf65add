// internal/app/features/sprints/types.go
package sprints

import (
	"encoding/json"
	"fmt"
)

// bugIDList decodes a JSON array whose elements may be strings or bare
// numbers. Clients historically sent Bugzilla ids both ways, so numbers
// are coerced to their decimal string form.
type bugIDList []string

func (l *bugIDList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]string, 0, len(raw))
	for _, m := range raw {
		id, err := coerceBugID(m)
		if err != nil {
			return err
		}
		out = append(out, id)
	}
	*l = out
	return nil
}

// bugIDValue is the single-value counterpart of bugIDList.
type bugIDValue string

func (v *bugIDValue) UnmarshalJSON(data []byte) error {
	id, err := coerceBugID(data)
	if err != nil {
		return err
	}
	*v = bugIDValue(id)
	return nil
}

func coerceBugID(m json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(m, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(m, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("bug id must be a string or a number")
}

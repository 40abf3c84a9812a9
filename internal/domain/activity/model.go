package activity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Activity is an extracurricular offering and its current participants.
type Activity struct {
	Name            string   `json:"-" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	Schedule        string   `json:"schedule" yaml:"schedule"`
	MaxParticipants int      `json:"max_participants" yaml:"max_participants"`
	Participants    []string `json:"participants" yaml:"participants"`
}

// Clone returns a deep copy with a non-nil participant slice.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

// HasParticipant reports whether email is signed up.
func (a Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// Catalog is the ordered set of activities. It encodes as a JSON object
// keyed by activity name, preserving catalog order.
type Catalog []Activity

// Names lists activity names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for _, a := range c {
		names = append(names, a.Name)
	}
	return names
}

// MarshalJSON implements json.Marshaler.
func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, fmt.Errorf("encoding activity name: %w", err)
		}
		if a.Participants == nil {
			a.Participants = []string{}
		}
		val, err := json.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("encoding activity %q: %w", a.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

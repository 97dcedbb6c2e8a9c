package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Activity is one extracurricular activity keyed by its name in a Registry.
// Participants holds unique student emails; order carries no meaning.
//
// Members the service does not interpret are kept in Extra and written back
// unchanged, so the data file round-trips through a mutation.
type Activity struct {
	Description string `json:"description"`
	Schedule    string `json:"schedule"`
	// MaxParticipants is nil when the entry has no capacity.
	MaxParticipants *int                       `json:"max_participants,omitempty"`
	Participants    []string                   `json:"participants"`
	Extra           map[string]json.RawMessage `json:"-"`
}

var knownFields = []string{"description", "schedule", "max_participants", "participants"}

// activityFields has Activity's layout without its JSON methods.
type activityFields Activity

// MarshalJSON writes the known fields followed by Extra in key order.
func (a Activity) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(activityFields(a))
	if err != nil || len(a.Extra) == 0 {
		return base, err
	}

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])
	keys := make([]string, 0, len(a.Extra))
	for key := range a.Extra {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if slices.Contains(knownFields, key) {
			continue
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		value := a.Extra[key]
		if !json.Valid(value) {
			return nil, fmt.Errorf("activity field %s: invalid JSON value", key)
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the known fields and keeps every other member,
// compacted, in Extra.
func (a *Activity) UnmarshalJSON(data []byte) error {
	var fields activityFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	for _, key := range knownFields {
		delete(members, key)
	}
	fields.Extra = nil
	if len(members) > 0 {
		fields.Extra = make(map[string]json.RawMessage, len(members))
		for key, value := range members {
			var compact bytes.Buffer
			if err := json.Compact(&compact, value); err != nil {
				return fmt.Errorf("activity field %s: %w", key, err)
			}
			fields.Extra[key] = compact.Bytes()
		}
	}
	*a = Activity(fields)
	return nil
}


// HasParticipant reports whether email is signed up.
func (a *Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// AddParticipant appends email. Callers check HasParticipant first.
func (a *Activity) AddParticipant(email string) {
	a.Participants = append(a.Participants, email)
}

// RemoveParticipant deletes email and reports whether it was present.
func (a *Activity) RemoveParticipant(email string) bool {
	idx := slices.Index(a.Participants, email)
	if idx < 0 {
		return false
	}
	a.Participants = slices.Delete(a.Participants, idx, idx+1)
	return true
}

// Clone returns a deep copy; no slice, pointer or map is shared.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	if a.MaxParticipants != nil {
		capacity := *a.MaxParticipants
		out.MaxParticipants = &capacity
	}
	if a.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(a.Extra))
		for key, value := range a.Extra {
			out.Extra[key] = bytes.Clone(value)
		}
	}
	return out
}

// Registry maps activity name to activity.
type Registry map[string]Activity

// Clone returns a deep copy of the registry.
func (r Registry) Clone() Registry {
	out := make(Registry, len(r))
	for name, activity := range r {
		out[name] = activity.Clone()
	}
	return out
}

// ParticipantCount sums participants across all activities.
func (r Registry) ParticipantCount() int {
	total := 0
	for _, activity := range r {
		total += len(activity.Participants)
	}
	return total
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityParticipants(t *testing.T) {
	a := Activity{Description: "Chess", Schedule: "Fridays"}

	assert.False(t, a.HasParticipant("a@b.com"))
	a.AddParticipant("a@b.com")
	a.AddParticipant("c@d.com")
	assert.True(t, a.HasParticipant("a@b.com"))

	assert.True(t, a.RemoveParticipant("a@b.com"))
	assert.False(t, a.RemoveParticipant("a@b.com"))
	assert.Equal(t, []string{"c@d.com"}, a.Participants)
}

func TestRegistryCloneIsDeep(t *testing.T) {
	original := Registry{
		"Chess Club": {Description: "Chess", Schedule: "Fridays", Participants: []string{"a@b.com"}},
	}

	clone := original.Clone()
	chess := clone["Chess Club"]
	chess.Participants[0] = "mutated@b.com"
	chess.AddParticipant("x@y.com")
	clone["Chess Club"] = chess
	clone["Art"] = Activity{}

	require.Len(t, original, 1)
	assert.Equal(t, []string{"a@b.com"}, original["Chess Club"].Participants)
}

func TestCloneNilParticipantsBecomesEmpty(t *testing.T) {
	clone := Activity{}.Clone()
	assert.NotNil(t, clone.Participants)
	assert.Empty(t, clone.Participants)
}

func TestParticipantCount(t *testing.T) {
	r := Registry{
		"A": {Participants: []string{"1", "2"}},
		"B": {Participants: []string{"3"}},
		"C": {},
	}
	assert.Equal(t, 3, r.ParticipantCount())
}

func TestActivityJSONKeepsUnknownMembers(t *testing.T) {
	raw := `{"description":"d","schedule":"s","max_participants":0,"participants":["a@b.com"],"room":"B12","tags":["x", "y"]}`

	var a Activity
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	require.NotNil(t, a.MaxParticipants)
	assert.Equal(t, 0, *a.MaxParticipants)
	assert.Equal(t, []string{"a@b.com"}, a.Participants)
	require.Len(t, a.Extra, 2)
	assert.NotContains(t, a.Extra, "description")
	assert.Equal(t, json.RawMessage(`["x","y"]`), a.Extra["tags"])

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
	assert.Equal(t,
		`{"description":"d","schedule":"s","max_participants":0,"participants":["a@b.com"],"room":"B12","tags":["x","y"]}`,
		string(out))
}

func TestActivityJSONWithoutCapacity(t *testing.T) {
	raw := `{"description":"d","schedule":"s","participants":[]}`

	var a Activity
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	assert.Nil(t, a.MaxParticipants)
	assert.Nil(t, a.Extra)

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, raw, string(out))
}

func TestActivityJSONIndentsExtraMembers(t *testing.T) {
	a := Activity{
		Description:  "d",
		Schedule:     "s",
		Participants: []string{},
		Extra:        map[string]json.RawMessage{"room": json.RawMessage(`{ "building": "B" }`)},
	}

	out, err := json.MarshalIndent(Registry{"Chess Club": a}, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n    \"room\": {\n      \"building\": \"B\"\n    }\n")
}

func TestCloneCopiesCapacityAndExtra(t *testing.T) {
	capacity := 12
	original := Activity{
		MaxParticipants: &capacity,
		Extra:           map[string]json.RawMessage{"room": json.RawMessage(`"B12"`)},
	}

	clone := original.Clone()
	*clone.MaxParticipants = 99
	clone.Extra["room"][1] = 'X'
	clone.Extra["floor"] = json.RawMessage(`2`)

	assert.Equal(t, 12, *original.MaxParticipants)
	assert.Equal(t, json.RawMessage(`"B12"`), original.Extra["room"])
	assert.Len(t, original.Extra, 1)
}

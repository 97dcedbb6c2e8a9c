package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"mergington/internal/activities/models"
)

// TestEmails are stable participant addresses for tests.
var TestEmails = struct {
	Michael string
	Daniel  string
	Emma    string
	Sophia  string
}{
	Michael: "michael@mergington.edu",
	Daniel:  "daniel@mergington.edu",
	Emma:    "emma@mergington.edu",
	Sophia:  "sophia@mergington.edu",
}

// ActivityBuilder provides a fluent interface for building test activities.
type ActivityBuilder struct {
	activity models.Activity
}

// NewActivityBuilder creates a new ActivityBuilder with sensible defaults.
func NewActivityBuilder() *ActivityBuilder {
	capacity := 12
	return &ActivityBuilder{
		activity: models.Activity{
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: &capacity,
			Participants:    []string{},
		},
	}
}

func (b *ActivityBuilder) WithDescription(description string) *ActivityBuilder {
	b.activity.Description = description
	return b
}

func (b *ActivityBuilder) WithSchedule(schedule string) *ActivityBuilder {
	b.activity.Schedule = schedule
	return b
}

func (b *ActivityBuilder) WithMaxParticipants(n int) *ActivityBuilder {
	b.activity.MaxParticipants = &n
	return b
}

func (b *ActivityBuilder) WithoutMaxParticipants() *ActivityBuilder {
	b.activity.MaxParticipants = nil
	return b
}

func (b *ActivityBuilder) WithExtra(key, rawJSON string) *ActivityBuilder {
	if b.activity.Extra == nil {
		b.activity.Extra = map[string]json.RawMessage{}
	}
	b.activity.Extra[key] = json.RawMessage(rawJSON)
	return b
}

func (b *ActivityBuilder) WithParticipants(emails ...string) *ActivityBuilder {
	b.activity.Participants = append([]string{}, emails...)
	return b
}

// Build returns an independent copy, so a builder can be reused.
func (b *ActivityBuilder) Build() models.Activity {
	return b.activity.Clone()
}

// SeedRegistry returns the two-activity registry most tests start from.
func SeedRegistry() models.Registry {
	return models.Registry{
		"Chess Club": NewActivityBuilder().
			WithParticipants(TestEmails.Michael, TestEmails.Daniel).
			Build(),
		"Programming Class": NewActivityBuilder().
			WithDescription("Learn programming fundamentals and build software projects").
			WithSchedule("Tuesdays and Thursdays, 3:30 PM - 4:30 PM").
			WithMaxParticipants(20).
			WithParticipants(TestEmails.Emma).
			Build(),
	}
}

// WriteRegistryFile writes reg as JSON to path, creating parent directories.
func WriteRegistryFile(t testing.TB, path string, reg models.Registry) {
	t.Helper()
	raw, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		t.Fatalf("encode registry: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create registry dir: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write registry file: %v", err)
	}
}

// ReadRegistryFile decodes the registry stored at path.
func ReadRegistryFile(t testing.TB, path string) models.Registry {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read registry file: %v", err)
	}
	var reg models.Registry
	if err := json.Unmarshal(raw, &reg); err != nil {
		t.Fatalf("decode registry file: %v", err)
	}
	return reg
}

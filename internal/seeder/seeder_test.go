package seeder_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergington/internal/activities/store"
	"mergington/internal/seeder"
	"mergington/pkg/testutil"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSeedAllPopulatesEmptyRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "activities.json")
	s := store.Open(path, store.WithLogger(discard()))

	require.NoError(t, seeder.New(s, discard()).SeedAll(context.Background()))

	assert.Equal(t, seeder.DemoActivities(), s.ListAll())
	assert.Equal(t, seeder.DemoActivities(), testutil.ReadRegistryFile(t, path))
}

func TestSeedAllLeavesExistingRegistryAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	testutil.WriteRegistryFile(t, path, testutil.SeedRegistry())
	s := store.Open(path, store.WithLogger(discard()))

	require.NoError(t, seeder.New(s, discard()).SeedAll(context.Background()))

	assert.Equal(t, testutil.SeedRegistry(), s.ListAll())
}

func TestDemoActivitiesAreIndependentCopies(t *testing.T) {
	first := seeder.DemoActivities()
	chess := first["Chess Club"]
	chess.Participants[0] = "changed@mergington.edu"

	assert.Equal(t, "michael@mergington.edu", seeder.DemoActivities()["Chess Club"].Participants[0])
	assert.Len(t, first, 9)
}

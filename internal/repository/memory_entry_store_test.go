package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mansoorceksport/liftlog/internal/config"
	"github.com/mansoorceksport/liftlog/internal/domain"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryEntryStore(nil)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	entries := sampleEntries(t)
	require.NoError(t, store.Save(ctx, entries))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}

func TestMemoryStoreSeed(t *testing.T) {
	ctx := context.Background()
	seed := sampleEntries(t)
	store := NewMemoryEntryStore(seed)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed, loaded)
}

func TestMemoryStoreNoAliasing(t *testing.T) {
	ctx := context.Background()
	entries := sampleEntries(t)
	store := NewMemoryEntryStore(entries)

	// Mutating what Load returned must not leak into the store.
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	loaded[0].ExerciseName = "Tampered"
	loaded[0].Sets[0].Reps = 999

	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bench Press", again[0].ExerciseName)
	assert.Equal(t, 10, again[0].Sets[0].Reps)

	// Mutating the saved slice afterwards must not either.
	saved := sampleEntries(t)
	require.NoError(t, store.Save(ctx, saved))
	saved[1].ExerciseName = "Tampered"

	again, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Pull Up", again[1].ExerciseName)
}

func TestMemoryStoreExportWritesRealFile(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryEntryStore(nil)
	entries := sampleEntries(t)

	path, err := store.Export(ctx, entries)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var exported []domain.ExerciseEntry
	require.NoError(t, json.Unmarshal(data, &exported))
	assert.Equal(t, entries, exported)

	// Each call gets its own artifact.
	path2, err := store.Export(ctx, entries)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path2) })
	assert.NotEqual(t, path, path2)
}

func TestMemoryStoreExportFailureLeavesNothingBehind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryEntryStore(nil)

	tmp := t.TempDir()
	t.Setenv("TMPDIR", filepath.Join(tmp, "missing"))

	path, err := store.Export(ctx, sampleEntries(t))
	assert.ErrorIs(t, err, domain.ErrExportFailed)
	assert.Empty(t, path)

	leftovers, err := filepath.Glob(filepath.Join(tmp, "*", "workout_entries_*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestNewEntryStoreSelection(t *testing.T) {
	t.Run("production picks file store", func(t *testing.T) {
		store, err := NewEntryStore(config.StorageConfig{Dir: t.TempDir()}, config.ModeProduction)
		require.NoError(t, err)
		assert.IsType(t, &FileEntryStore{}, store)
	})

	t.Run("uitest picks empty memory store", func(t *testing.T) {
		store, err := NewEntryStore(config.StorageConfig{}, config.ModeUITest)
		require.NoError(t, err)
		require.IsType(t, &MemoryEntryStore{}, store)

		loaded, err := store.Load(context.Background())
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	for _, mode := range []config.Mode{config.ModeDemo, config.ModeScreenshot} {
		t.Run(string(mode)+" picks seeded memory store", func(t *testing.T) {
			store, err := NewEntryStore(config.StorageConfig{}, mode)
			require.NoError(t, err)
			require.IsType(t, &MemoryEntryStore{}, store)

			loaded, err := store.Load(context.Background())
			require.NoError(t, err)
			assert.NotEmpty(t, loaded)
		})
	}

	t.Run("production with traversal name fails construction", func(t *testing.T) {
		_, err := NewEntryStore(config.StorageConfig{
			Dir:      t.TempDir(),
			FileName: "../../etc/passwd",
		}, config.ModeProduction)
		assert.ErrorIs(t, err, domain.ErrPathTraversal)
	})
}

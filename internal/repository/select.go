package repository

import (
	"time"

	"github.com/mansoorceksport/liftlog/internal/config"
	"github.com/mansoorceksport/liftlog/internal/domain"
)

// NewEntryStore picks the adapter for the given runtime mode, once at
// startup. Production gets the file-backed store; every non-production mode
// stays in memory, with demo and screenshot runs seeded so there is
// something on screen.
func NewEntryStore(cfg config.StorageConfig, mode config.Mode) (domain.EntryStore, error) {
	if mode == config.ModeProduction {
		policy := LoadFailOpen
		if cfg.LoadPolicy == config.LoadPolicyFailClosed {
			policy = LoadFailClosed
		}
		return NewFileEntryStore(FileEntryStoreConfig{
			Dir:        cfg.Dir,
			FileName:   cfg.FileName,
			LoadPolicy: policy,
		})
	}

	var seed []domain.ExerciseEntry
	if mode == config.ModeDemo || mode == config.ModeScreenshot {
		seed = DemoEntries()
	}
	return NewMemoryEntryStore(seed), nil
}

// DemoEntries returns the fixture collection used by demo and screenshot
// runs.
func DemoEntries() []domain.ExerciseEntry {
	w := func(v float64) *float64 { return &v }
	today := time.Now().UTC().Truncate(24 * time.Hour)

	return []domain.ExerciseEntry{
		domain.NewExerciseEntry("Bench Press", today.Add(9*time.Hour), []domain.ExerciseSet{
			{Reps: 10, Weight: w(135), Notes: "warmup"},
			{Reps: 8, Weight: w(185)},
			{Reps: 5, Weight: w(205), Notes: "felt heavy"},
		}),
		domain.NewExerciseEntry("Squat", today.Add(10*time.Hour), []domain.ExerciseSet{
			{Reps: 5, Weight: w(225)},
			{Reps: 5, Weight: w(225)},
		}),
		domain.NewExerciseEntry("Pull Up", today.AddDate(0, 0, -1).Add(18*time.Hour), []domain.ExerciseSet{
			{Reps: 12},
			{Reps: 10},
			{Reps: 8, Notes: "grip gave out"},
		}),
	}
}

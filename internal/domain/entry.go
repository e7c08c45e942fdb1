package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExerciseSet is one unit of work within an entry. Weight is unit-less and
// client-defined; nil means no weight was recorded (bodyweight work).
type ExerciseSet struct {
	Reps   int      `json:"reps"`
	Weight *float64 `json:"weight"`
	Notes  string   `json:"notes"`
}

// ExerciseEntry is one logged exercise session. Sets keep insertion order,
// which is significant for display.
type ExerciseEntry struct {
	ID           string        `json:"id"`
	ExerciseName string        `json:"exerciseName"`
	Date         time.Time     `json:"date"`
	Sets         []ExerciseSet `json:"sets"`
}

// NewExerciseEntry builds an entry with a fresh UUID. The name is trimmed and
// a zero date is stamped with the current time.
func NewExerciseEntry(name string, date time.Time, sets []ExerciseSet) ExerciseEntry {
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return ExerciseEntry{
		ID:           uuid.NewString(),
		ExerciseName: strings.TrimSpace(name),
		Date:         date,
		Sets:         sets,
	}
}

// EntryStore persists the complete entry collection. Every call replaces or
// returns the whole collection; there is no delta persistence. Load on a
// missing store yields an empty slice, not an error.
type EntryStore interface {
	Load(ctx context.Context) ([]ExerciseEntry, error)
	// Save atomically replaces the stored collection.
	Save(ctx context.Context, entries []ExerciseEntry) error
	// Export writes entries to a shareable location distinct from the
	// primary store and returns its path. The primary store is untouched.
	Export(ctx context.Context, entries []ExerciseEntry) (string, error)
}

// ExportUploader pushes an export artifact to remote storage and returns its
// access URL.
type ExportUploader interface {
	Upload(ctx context.Context, file []byte, filename string, contentType string) (string, error)
}

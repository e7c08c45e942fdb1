package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/mansoorceksport/liftlog/internal/domain"
)

// MemoryEntryStore implements domain.EntryStore in process memory. It backs
// demo, screenshot and UI-test modes so those runs never touch the user's
// data directory.
type MemoryEntryStore struct {
	mu      sync.Mutex
	entries []domain.ExerciseEntry
}

// NewMemoryEntryStore creates a store pre-populated with seed entries.
func NewMemoryEntryStore(seed []domain.ExerciseEntry) *MemoryEntryStore {
	return &MemoryEntryStore{entries: cloneEntries(seed)}
}

func (s *MemoryEntryStore) Load(ctx context.Context) ([]domain.ExerciseEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEntries(s.entries), nil
}

func (s *MemoryEntryStore) Save(ctx context.Context, entries []domain.ExerciseEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = cloneEntries(entries)
	return nil
}

// Export still writes a real file so downstream consumers get the same
// contract as the file-backed store. Each call produces a uniquely named
// artifact in the system temp directory.
func (s *MemoryEntryStore) Export(ctx context.Context, entries []domain.ExerciseEntry) (string, error) {
	cid := domain.CorrelationID(ctx)

	data, err := marshalEntries(entries)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}

	f, err := os.CreateTemp("", "workout_entries_*.json")
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}

	log.Printf("[%s] exported %d entries to %s", cid, len(entries), f.Name())
	return f.Name(), nil
}

// cloneEntries copies the slice and each entry's sets so callers can never
// alias the store's internal state.
func cloneEntries(in []domain.ExerciseEntry) []domain.ExerciseEntry {
	out := make([]domain.ExerciseEntry, len(in))
	copy(out, in)
	for i := range out {
		out[i].Sets = append([]domain.ExerciseSet(nil), in[i].Sets...)
	}
	return out
}

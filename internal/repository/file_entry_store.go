package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mansoorceksport/liftlog/internal/domain"
)

const (
	defaultFileName = "workout_entries.json"
	exportFileName  = "workout_entries_export.json"
)

// LoadPolicy controls how the file store reacts to an unreadable or
// undecodable primary file.
type LoadPolicy int

const (
	// LoadFailOpen treats corrupt or unreadable data like a missing store
	// and returns an empty collection. This favors availability: the user
	// starts over instead of being blocked by a broken file.
	LoadFailOpen LoadPolicy = iota
	// LoadFailClosed surfaces domain.ErrLoadFailed instead.
	LoadFailClosed
)

// FileEntryStoreConfig configures a FileEntryStore.
type FileEntryStoreConfig struct {
	Dir        string // base directory, required
	FileName   string // primary file name, defaults to workout_entries.json
	LoadPolicy LoadPolicy
}

// FileEntryStore implements domain.EntryStore as a single pretty-printed JSON
// document on local disk. Saves are atomic (write temp, then rename) so an
// interrupted write leaves either the old or the new document, never a torn
// one. Exports go to a fixed sibling file that never collides with the
// primary store.
type FileEntryStore struct {
	dir        string
	path       string
	exportPath string
	policy     LoadPolicy
}

// NewFileEntryStore validates cfg and builds the store. File names carrying
// path separators or traversal sequences are rejected before any I/O
// happens; a traversal attempt is a distinct error from a malformed name.
func NewFileEntryStore(cfg FileEntryStoreConfig) (*FileEntryStore, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("%w: base directory is required", domain.ErrInvalidFileName)
	}
	name := cfg.FileName
	if name == "" {
		name = defaultFileName
	}
	if err := validateFileName(cfg.Dir, name); err != nil {
		return nil, err
	}
	return &FileEntryStore{
		dir:        cfg.Dir,
		path:       filepath.Join(cfg.Dir, name),
		exportPath: filepath.Join(cfg.Dir, exportFileName),
		policy:     cfg.LoadPolicy,
	}, nil
}

func validateFileName(dir, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", domain.ErrInvalidFileName)
	}
	// The export artifact lives next to the primary store; letting the
	// primary claim that name would make Export overwrite it.
	if name == exportFileName {
		return fmt.Errorf("%w: %q is reserved for export artifacts", domain.ErrInvalidFileName, name)
	}
	if name == ".." || strings.Contains(name, "../") || strings.Contains(name, `..\`) {
		return fmt.Errorf("%w: %q", domain.ErrPathTraversal, name)
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", domain.ErrInvalidFileName, name)
	}
	// Belt and braces: the joined path must stay inside dir.
	if filepath.Dir(filepath.Clean(filepath.Join(dir, name))) != filepath.Clean(dir) {
		return fmt.Errorf("%w: %q resolves outside %q", domain.ErrPathTraversal, name, dir)
	}
	return nil
}

// Path returns the full path of the primary store file.
func (s *FileEntryStore) Path() string {
	return s.path
}

// ExportPath returns the full path of the export artifact.
func (s *FileEntryStore) ExportPath() string {
	return s.exportPath
}

// Load reads the full collection. A missing file yields an empty slice.
// Under LoadFailOpen an unreadable or undecodable file does too, logged with
// the correlation ID so the reset is at least visible to an operator.
func (s *FileEntryStore) Load(ctx context.Context) ([]domain.ExerciseEntry, error) {
	cid := domain.CorrelationID(ctx)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.ExerciseEntry{}, nil
		}
		if s.policy == LoadFailClosed {
			return nil, fmt.Errorf("%w: %v", domain.ErrLoadFailed, err)
		}
		log.Printf("[%s] entry store unreadable, starting empty: %v", cid, err)
		return []domain.ExerciseEntry{}, nil
	}

	var entries []domain.ExerciseEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		if s.policy == LoadFailClosed {
			return nil, fmt.Errorf("%w: %v", domain.ErrLoadFailed, err)
		}
		log.Printf("[%s] entry store undecodable, starting empty: %v", cid, err)
		return []domain.ExerciseEntry{}, nil
	}
	if entries == nil {
		entries = []domain.ExerciseEntry{}
	}
	return entries, nil
}

// Save replaces the stored collection. The document is written to a temp
// file in the same directory and renamed over the primary path, so a crash
// mid-write cannot leave a half-written store.
func (s *FileEntryStore) Save(ctx context.Context, entries []domain.ExerciseEntry) error {
	cid := domain.CorrelationID(ctx)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return wrapWriteErr(domain.ErrSaveFailed, err)
	}

	data, err := marshalEntries(entries)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return wrapWriteErr(domain.ErrSaveFailed, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return wrapWriteErr(domain.ErrSaveFailed, err)
	}

	log.Printf("[%s] saved %d entries to %s", cid, len(entries), s.path)
	return nil
}

// Export writes the given collection to the sibling export file and returns
// its path. Repeated exports overwrite the previous artifact. The primary
// store is never touched.
func (s *FileEntryStore) Export(ctx context.Context, entries []domain.ExerciseEntry) (string, error) {
	cid := domain.CorrelationID(ctx)

	data, err := marshalEntries(entries)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", wrapWriteErr(domain.ErrExportFailed, err)
	}
	if err := os.WriteFile(s.exportPath, data, 0o644); err != nil {
		return "", wrapWriteErr(domain.ErrExportFailed, err)
	}

	log.Printf("[%s] exported %d entries to %s", cid, len(entries), s.exportPath)
	return s.exportPath, nil
}

// marshalEntries keeps the document a JSON array even for a nil slice.
func marshalEntries(entries []domain.ExerciseEntry) ([]byte, error) {
	if entries == nil {
		entries = []domain.ExerciseEntry{}
	}
	return json.MarshalIndent(entries, "", "  ")
}

func wrapWriteErr(kind, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %v", domain.ErrInsufficientPermissions, err)
	}
	return fmt.Errorf("%w: %v", kind, err)
}

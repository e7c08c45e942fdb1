package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/mansoorceksport/liftlog/internal/domain"
)

// LogService is the single writer over the entry collection. It loads the
// collection once at construction, keeps the authoritative in-memory copy,
// and saves the whole collection through to the store after every mutation.
// There is no batching and no write-behind: call order is save order.
type LogService struct {
	mu       sync.Mutex
	store    domain.EntryStore
	uploader domain.ExportUploader // optional export backup, may be nil
	entries  []domain.ExerciseEntry
}

// DayGroup is the day-bucketed view of the collection, newest day first.
type DayGroup struct {
	Day     string                 `json:"day"` // YYYY-MM-DD
	Entries []domain.ExerciseEntry `json:"entries"`
}

// ExportResult locates an export artifact. URL is set only when a backup
// target is configured and the upload succeeded.
type ExportResult struct {
	File string `json:"file"`
	URL  string `json:"url,omitempty"`
}

// NewLogService loads the stored collection. A load failure is logged and
// treated as "start empty"; it never propagates.
func NewLogService(ctx context.Context, store domain.EntryStore, uploader domain.ExportUploader) *LogService {
	entries, err := store.Load(ctx)
	if err != nil {
		log.Printf("[%s] failed to load entries, starting empty: %v", domain.CorrelationID(ctx), err)
		entries = []domain.ExerciseEntry{}
	}
	return &LogService{
		store:    store,
		uploader: uploader,
		entries:  entries,
	}
}

// AddEntry appends the entry and persists the full collection. On a save
// failure the entry stays in memory; the error is returned for logging.
func (s *LogService) AddEntry(ctx context.Context, entry domain.ExerciseEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	return s.saveLocked(ctx)
}

// DeleteByID removes the entry with the given ID and persists. Returns
// domain.ErrEntryNotFound for unknown IDs.
func (s *LogService) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.entries {
		if s.entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrEntryNotFound
	}

	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	return s.saveLocked(ctx)
}

// DeleteAt removes the entries at the given positions in the current order
// and persists. Out-of-range indices return domain.ErrEntryNotFound without
// mutating anything.
func (s *LogService) DeleteAt(ctx context.Context, indices []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, i := range indices {
		if i < 0 || i >= len(s.entries) {
			return domain.ErrEntryNotFound
		}
	}

	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}

	kept := s.entries[:0]
	for i := range s.entries {
		if !drop[i] {
			kept = append(kept, s.entries[i])
		}
	}
	s.entries = kept
	return s.saveLocked(ctx)
}

// Entries returns a copy of the collection in insertion order.
func (s *LogService) Entries() []domain.ExerciseEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ExerciseEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// GroupedByDay buckets the collection by calendar day, days newest first and
// entries within a day newest first. Pure presentation, no persistence.
func (s *LogService) GroupedByDay() []DayGroup {
	entries := s.Entries()

	buckets := make(map[string][]domain.ExerciseEntry)
	for _, e := range entries {
		day := e.Date.Format("2006-01-02")
		buckets[day] = append(buckets[day], e)
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	groups := make([]DayGroup, 0, len(days))
	for _, day := range days {
		group := buckets[day]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.After(group[j].Date)
		})
		groups = append(groups, DayGroup{Day: day, Entries: group})
	}
	return groups
}

// ExportSnapshot exports the current collection through the adapter and, when
// a backup target is configured, uploads the artifact too. An empty
// collection is domain.ErrNothingToExport. A backup failure only costs the
// remote URL; the local artifact is still returned.
func (s *LogService) ExportSnapshot(ctx context.Context) (*ExportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return nil, domain.ErrNothingToExport
	}

	path, err := s.store.Export(ctx, s.entries)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{File: path}
	if s.uploader != nil {
		result.URL = s.backupExport(ctx, path)
	}
	return result, nil
}

func (s *LogService) backupExport(ctx context.Context, path string) string {
	cid := domain.CorrelationID(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[%s] export backup skipped, cannot read artifact: %v", cid, err)
		return ""
	}

	name := fmt.Sprintf("%s-%s", time.Now().UTC().Format("20060102T150405Z"), filepath.Base(path))
	url, err := s.uploader.Upload(ctx, data, name, "application/json")
	if err != nil {
		log.Printf("[%s] export backup failed: %v", cid, err)
		return ""
	}

	log.Printf("[%s] export backed up to %s", cid, url)
	return url
}

func (s *LogService) saveLocked(ctx context.Context) error {
	if err := s.store.Save(ctx, s.entries); err != nil {
		log.Printf("[%s] save-through failed, in-memory state kept: %v", domain.CorrelationID(ctx), err)
		return err
	}
	return nil
}

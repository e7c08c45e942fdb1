package tests

import (
	"context"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/mansoorceksport/liftlog/internal/config"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/repository"
	"github.com/mansoorceksport/liftlog/internal/server"
)

// SetupTestApp builds the full application against a file-backed store in the
// given data directory (use a t.TempDir()). Uploader may be nil.
func SetupTestApp(t *testing.T, dataDir string, uploader domain.ExportUploader) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		Mode: config.ModeProduction,
		Storage: config.StorageConfig{
			Dir:        dataDir,
			LoadPolicy: config.LoadPolicyFailOpen,
		},
	}

	store, err := repository.NewEntryStore(cfg.Storage, cfg.Mode)
	if err != nil {
		t.Fatalf("failed to build entry store: %v", err)
	}

	return server.NewApp(server.AppDependencies{
		Config:   cfg,
		Store:    store,
		Uploader: uploader,
	})
}

// SetupTestAppWithStore builds the full application around a caller-supplied
// store, for exercising failure modes the real adapters do not produce.
func SetupTestAppWithStore(t *testing.T, store domain.EntryStore) *fiber.App {
	t.Helper()

	cfg := &config.Config{Mode: config.ModeUITest}

	return server.NewApp(server.AppDependencies{
		Config: cfg,
		Store:  store,
	})
}

// BrokenExportStore wraps a real store and refuses every export.
type BrokenExportStore struct {
	domain.EntryStore
}

func (b BrokenExportStore) Export(ctx context.Context, entries []domain.ExerciseEntry) (string, error) {
	return "", fmt.Errorf("%w: disk full", domain.ErrExportFailed)
}

// MockUploader implements domain.ExportUploader for testing
type MockUploader struct {
	Uploads map[string][]byte
	Fail    bool
}

func NewMockUploader() *MockUploader {
	return &MockUploader{Uploads: make(map[string][]byte)}
}

func (m *MockUploader) Upload(ctx context.Context, file []byte, filename string, contentType string) (string, error) {
	if m.Fail {
		return "", fmt.Errorf("mock upload refused")
	}
	m.Uploads[filename] = file
	return "http://backup.local/exports/" + filename, nil
}

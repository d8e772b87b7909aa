package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Repository is the persistence boundary for content documents.
type Repository interface {
	LoadSiteContent(ctx context.Context) (*SiteContent, error)
	LoadSettings(ctx context.Context) (*Settings, error)
	SaveSiteContent(ctx context.Context, doc *SiteContent) error
	SaveSettings(ctx context.Context, doc *Settings) error
}

const (
	siteContentFile = "site-content.json"
	settingsFile    = "settings.json"
)

// FileRepository persists content documents as JSON files in one directory.
// Missing or corrupt files load as zero documents, logged but never fatal.
type FileRepository struct {
	dir    string
	logger *slog.Logger
}

var _ Repository = (*FileRepository)(nil)

// NewFileRepository creates a repository writing to dir.
func NewFileRepository(dir string, logger *slog.Logger) *FileRepository {
	return &FileRepository{dir: dir, logger: logger.With("component", "content_repository")}
}

func (r *FileRepository) LoadSiteContent(_ context.Context) (*SiteContent, error) {
	var doc SiteContent
	r.load(siteContentFile, &doc)
	return &doc, nil
}

func (r *FileRepository) LoadSettings(_ context.Context) (*Settings, error) {
	var doc Settings
	r.load(settingsFile, &doc)
	return &doc, nil
}

func (r *FileRepository) SaveSiteContent(_ context.Context, doc *SiteContent) error {
	return r.persist(siteContentFile, doc)
}

func (r *FileRepository) SaveSettings(_ context.Context, doc *Settings) error {
	return r.persist(settingsFile, doc)
}

// load fills out from the named file, falling back to the zero document.
func (r *FileRepository) load(name string, out any) {
	path := filepath.Join(r.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Warn("content file unreadable, using empty document", "path", path, "error", err)
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		r.logger.Warn("content file corrupt, using empty document", "path", path, "error", err)
	}
}

// persist writes the document to a temp file and renames it into place.
func (r *FileRepository) persist(name string, doc any) error {
	path := filepath.Join(r.dir, name)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode content document: %w", err)
	}
	tmp, err := os.CreateTemp(r.dir, ".content-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp content file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write content document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp content file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace content file: %w", err)
	}
	return nil
}

// SimulatedRepository reads through to the wrapped repository but its
// saves wait the configured delay and drop the write. This mirrors the
// original admin panel, whose "save" only pretended to persist; it stays
// an explicit stub here. Honors ctx cancellation during the delay.
type SimulatedRepository struct {
	Wrapped Repository
	Delay   time.Duration
}

var _ Repository = (*SimulatedRepository)(nil)

func (r *SimulatedRepository) LoadSiteContent(ctx context.Context) (*SiteContent, error) {
	return r.Wrapped.LoadSiteContent(ctx)
}

func (r *SimulatedRepository) LoadSettings(ctx context.Context) (*Settings, error) {
	return r.Wrapped.LoadSettings(ctx)
}

func (r *SimulatedRepository) SaveSiteContent(ctx context.Context, _ *SiteContent) error {
	return r.pretend(ctx)
}

func (r *SimulatedRepository) SaveSettings(ctx context.Context, _ *Settings) error {
	return r.pretend(ctx)
}

func (r *SimulatedRepository) pretend(ctx context.Context) error {
	timer := time.NewTimer(r.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

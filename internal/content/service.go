package content

import (
	"context"
	"fmt"
	"log/slog"
)

// Service serves the content documents and routes admin edits through an
// EditBuffer per document.
type Service interface {
	// SiteContent returns the last saved site copy document.
	SiteContent() SiteContent

	// Settings returns the last saved settings document.
	Settings() Settings

	// UpdateSiteContent saves a new site copy document.
	UpdateSiteContent(ctx context.Context, doc SiteContent) error

	// UpdateSettings saves a new settings document.
	UpdateSettings(ctx context.Context, doc Settings) error
}

type contentService struct {
	site     *EditBuffer[SiteContent]
	settings *EditBuffer[Settings]
	logger   *slog.Logger
}

// NewService loads both documents from the repository and seeds an edit
// buffer for each. Load never fails hard; unreadable documents come back
// empty.
func NewService(ctx context.Context, repo Repository, logger *slog.Logger) (Service, error) {
	site, err := repo.LoadSiteContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load site content: %w", err)
	}
	settings, err := repo.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &contentService{
		site:     NewEditBuffer(*site, func(ctx context.Context, doc SiteContent) error { return repo.SaveSiteContent(ctx, &doc) }),
		settings: NewEditBuffer(*settings, func(ctx context.Context, doc Settings) error { return repo.SaveSettings(ctx, &doc) }),
		logger:   logger.With("component", "content"),
	}, nil
}

func (s *contentService) SiteContent() SiteContent {
	return s.site.Current()
}

func (s *contentService) Settings() Settings {
	return s.settings.Current()
}

func (s *contentService) UpdateSiteContent(ctx context.Context, doc SiteContent) error {
	s.site.Set(func(SiteContent) SiteContent { return doc })
	if err := s.site.Save(ctx); err != nil {
		return fmt.Errorf("failed to update site content: %w", err)
	}
	s.logger.InfoContext(ctx, "site content updated")
	return nil
}

func (s *contentService) UpdateSettings(ctx context.Context, doc Settings) error {
	s.settings.Set(func(Settings) Settings { return doc })
	if err := s.settings.Save(ctx); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	s.logger.InfoContext(ctx, "settings updated")
	return nil
}

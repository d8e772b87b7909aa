package content

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func Test_FileRepository_RoundTrip(t *testing.T) {
	// given
	ctx := context.Background()
	repo := NewFileRepository(t.TempDir(), testLogger())
	settings := &Settings{
		SiteName: "Spaeth Farms",
		Shipping: ShippingSettings{
			FreeShippingThresholdCents: 19900,
			FlatRateCents:              2999,
			TaxRate:                    0.055,
		},
	}
	// when
	require.NoError(t, repo.SaveSettings(ctx, settings))
	loaded, err := repo.LoadSettings(ctx)
	// then
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func Test_FileRepository_MissingFileLoadsEmpty(t *testing.T) {
	// given an empty directory
	repo := NewFileRepository(t.TempDir(), testLogger())
	// when
	doc, err := repo.LoadSiteContent(context.Background())
	// then
	require.NoError(t, err)
	assert.Equal(t, &SiteContent{}, doc)
}

func Test_FileRepository_CorruptFileLoadsEmpty(t *testing.T) {
	// given a settings file that is not JSON
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte("not json"), 0o644))
	repo := NewFileRepository(dir, testLogger())
	// when
	doc, err := repo.LoadSettings(context.Background())
	// then
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, doc)
}

func Test_SimulatedRepository_SaveLeavesFileUntouched(t *testing.T) {
	// given a simulated repository over a file-backed one
	ctx := context.Background()
	dir := t.TempDir()
	fileRepo := NewFileRepository(dir, testLogger())
	require.NoError(t, fileRepo.SaveSettings(ctx, &Settings{SiteName: "Spaeth Farms"}))
	repo := &SimulatedRepository{Wrapped: fileRepo, Delay: time.Millisecond}
	// when a save goes through the simulation
	require.NoError(t, repo.SaveSettings(ctx, &Settings{SiteName: "Renamed Farms"}))
	// then reads still see the original document on disk
	loaded, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Spaeth Farms", loaded.SiteName)
}

func Test_SimulatedRepository_SaveHonorsCancellation(t *testing.T) {
	// given an abandoned request
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := &SimulatedRepository{Wrapped: NewFileRepository(t.TempDir(), testLogger()), Delay: time.Minute}
	// when
	err := repo.SaveSiteContent(ctx, &SiteContent{})
	// then
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Service_UpdateSettings(t *testing.T) {
	// given a service over a file repository
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewFileRepository(dir, testLogger())
	service, err := NewService(ctx, repo, testLogger())
	require.NoError(t, err)
	// when
	updated := Settings{
		SiteName: "Spaeth Farms",
		Shipping: ShippingSettings{FreeShippingThresholdCents: 25000, FlatRateCents: 1999, TaxRate: 0.05},
	}
	require.NoError(t, service.UpdateSettings(ctx, updated))
	// then the service and the disk both see the new document
	assert.Equal(t, updated, service.Settings())
	reloaded, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, &updated, reloaded)
}

func Test_Service_UpdateSiteContent(t *testing.T) {
	// given
	ctx := context.Background()
	service, err := NewService(ctx, NewFileRepository(t.TempDir(), testLogger()), testLogger())
	require.NoError(t, err)
	// when
	doc := SiteContent{Hero: HeroContent{Headline: "Premium Wisconsin Beef"}}
	require.NoError(t, service.UpdateSiteContent(ctx, doc))
	// then
	assert.Equal(t, "Premium Wisconsin Beef", service.SiteContent().Hero.Headline)
}

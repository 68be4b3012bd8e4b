// Package seed loads fixture documents from YAML or JSONC files and writes
// them through the domain services, so fixtures get the same validation
// and reference checks as editor writes.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/rpggio/signage/internal/domain/buildingupdate"
	"github.com/rpggio/signage/internal/domain/category"
	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/domain/playlist"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/domain/provider"
	"github.com/rpggio/signage/internal/validator"
)

// Fixture is the content of one seed file. Timestamps are RFC3339.
type Fixture struct {
	Projects   []Project               `json:"projects"`
	Providers  []provider.Provider     `json:"providers"`
	Categories []category.Config       `json:"category_configs"`
	Media      []Media                 `json:"media"`
	Slots      []Slot                  `json:"slots"`
	Updates    []buildingupdate.Update `json:"building_updates"`
}

// Project is a project fixture.
type Project struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Code           string `json:"code"`
	HandoffBaseURL string `json:"handoff_base_url"`
	Inactive       bool   `json:"inactive"`
}

// Media is a media fixture. Enabled defaults to true.
type Media struct {
	media.Media
	Enabled *bool `json:"enabled"`
}

// Slot is a playlist item fixture. Enabled defaults to true.
type Slot struct {
	playlist.Item
	Enabled *bool `json:"enabled"`
}

// Parse decodes fixture data. YAML is converted to JSON first so both
// formats share the documents' JSON field names.
func Parse(data []byte, format string) (*Fixture, error) {
	var raw []byte
	switch format {
	case "yaml", "yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("converting yaml: %w", err)
		}
		raw = converted
	case "json", "jsonc":
		raw = jsonc.ToJSON(data)
	default:
		return nil, fmt.Errorf("unsupported fixture format %q", format)
	}

	var fixture Fixture
	if err := json.Unmarshal(raw, &fixture); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fixture, nil
}

// ReadFile reads and parses a fixture file. The format follows the extension.
func ReadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	fixture, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fixture, nil
}

// ProjectService creates projects.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	GetByCode(ctx context.Context, code string) (*project.Project, error)
}

// ProviderService saves providers.
type ProviderService interface {
	Save(ctx context.Context, p *provider.Provider) (*provider.Provider, error)
}

// CategoryService saves category configs.
type CategoryService interface {
	Save(ctx context.Context, cfg *category.Config) (*category.Config, error)
}

// MediaService saves media.
type MediaService interface {
	Save(ctx context.Context, m *media.Media) (*media.SaveResult, error)
}

// PlaylistService saves slots.
type PlaylistService interface {
	SaveItem(ctx context.Context, item *playlist.Item) (*playlist.Item, error)
}

// BuildingUpdateService saves building updates.
type BuildingUpdateService interface {
	Save(ctx context.Context, u *buildingupdate.Update) (*buildingupdate.Update, error)
}

// Services are the write paths a fixture is applied through.
type Services struct {
	Projects   ProjectService
	Providers  ProviderService
	Categories CategoryService
	Media      MediaService
	Playlist   PlaylistService
	Updates    BuildingUpdateService
}

// Summary counts what Apply wrote.
type Summary struct {
	Projects        int
	ProjectsSkipped int
	Providers       int
	Categories      int
	Media           int
	Unverified      int
	Slots           int
	Updates         int
}

// Apply writes the fixture in dependency order. Projects whose code
// already exists are left untouched; every other document is upserted by
// ID, so applying the same fixture twice is harmless.
func Apply(ctx context.Context, svc Services, fixture *Fixture, logger *slog.Logger) (Summary, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	var sum Summary

	for _, p := range fixture.Projects {
		code := project.Slugify(p.Code)
		if code == "" {
			code = project.Slugify(p.Title)
		}
		if _, err := svc.Projects.GetByCode(ctx, code); err == nil {
			sum.ProjectsSkipped++
			continue
		} else if !errors.Is(err, project.ErrProjectNotFound) {
			return sum, fmt.Errorf("project %s: %w", code, err)
		}
		if _, err := svc.Projects.Create(ctx, project.CreateRequest{
			ID:             p.ID,
			Title:          p.Title,
			Code:           p.Code,
			HandoffBaseURL: p.HandoffBaseURL,
			Inactive:       p.Inactive,
		}); err != nil {
			return sum, fmt.Errorf("project %s: %w", code, err)
		}
		sum.Projects++
	}

	for i := range fixture.Providers {
		p := fixture.Providers[i]
		if _, err := svc.Providers.Save(ctx, &p); err != nil {
			return sum, fmt.Errorf("provider %s: %w", p.ID, err)
		}
		sum.Providers++
	}

	for i := range fixture.Categories {
		cfg := fixture.Categories[i]
		if _, err := svc.Categories.Save(ctx, &cfg); err != nil {
			return sum, fmt.Errorf("category config for %s: %w", cfg.ProjectID, err)
		}
		sum.Categories++
	}

	for _, mf := range fixture.Media {
		m := mf.Media
		m.Enabled = mf.Enabled == nil || *mf.Enabled
		result, err := svc.Media.Save(ctx, &m)
		if err != nil {
			return sum, fmt.Errorf("media %s: %w", m.ID, err)
		}
		if result.Outcome.Status == validator.StatusUnverified {
			sum.Unverified++
			logger.Warn("seeded media unverified", "media_id", result.Media.ID, "warning", result.Outcome.Warning)
		}
		sum.Media++
	}

	for _, sf := range fixture.Slots {
		item := sf.Item
		item.Enabled = sf.Enabled == nil || *sf.Enabled
		if _, err := svc.Playlist.SaveItem(ctx, &item); err != nil {
			return sum, fmt.Errorf("slot %s: %w", item.ID, err)
		}
		sum.Slots++
	}

	for i := range fixture.Updates {
		u := fixture.Updates[i]
		if _, err := svc.Updates.Save(ctx, &u); err != nil {
			return sum, fmt.Errorf("building update %s: %w", u.ID, err)
		}
		sum.Updates++
	}

	logger.Info("fixture applied",
		"projects", sum.Projects,
		"projects_skipped", sum.ProjectsSkipped,
		"providers", sum.Providers,
		"category_configs", sum.Categories,
		"media", sum.Media,
		"slots", sum.Slots,
		"building_updates", sum.Updates,
	)
	return sum, nil
}

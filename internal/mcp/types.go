package mcp

import (
	"time"

	"github.com/rpggio/signage/internal/domain/activity"
	"github.com/rpggio/signage/internal/domain/buildingupdate"
	"github.com/rpggio/signage/internal/domain/category"
	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/domain/playlist"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/domain/provider"
	"github.com/rpggio/signage/internal/precedence"
	"github.com/rpggio/signage/internal/validator"
)

type ListProjectsParams struct{}

type GetProjectParams struct {
	ID   string `json:"id,omitempty" jsonschema:"Project ID"`
	Code string `json:"code,omitempty" jsonschema:"Project routing code (used when id is omitted)"`
}

type CreateProjectParams struct {
	ID             string `json:"id,omitempty" jsonschema:"Project ID (generated when omitted)"`
	Title          string `json:"title" jsonschema:"Project display title"`
	Code           string `json:"code,omitempty" jsonschema:"Routing code kiosks use (slugified from title when omitted)"`
	HandoffBaseURL string `json:"handoff_base_url,omitempty" jsonschema:"Base URL for handoff and QR links"`
	Inactive       bool   `json:"inactive,omitempty" jsonschema:"Create the project inactive"`
}

type SetProjectActiveParams struct {
	ID     string `json:"id" jsonschema:"Project ID"`
	Active bool   `json:"active" jsonschema:"Whether the project is active"`
}

type SaveProviderParams struct {
	ID             string            `json:"id,omitempty" jsonschema:"Provider ID (generated when omitted)"`
	ProjectID      string            `json:"project_id" jsonschema:"Owning project ID"`
	NameEN         string            `json:"name_en" jsonschema:"English name"`
	NameTH         string            `json:"name_th,omitempty" jsonschema:"Thai name"`
	Slug           string            `json:"slug,omitempty" jsonschema:"URL slug (derived from name_en when omitted)"`
	Category       string            `json:"category" jsonschema:"One of food, groceries, services, rent, sale"`
	SubCategoryIDs []string          `json:"sub_category_ids,omitempty" jsonschema:"Subcategory IDs from the project's category config"`
	Icon           string            `json:"icon,omitempty"`
	CoverColor     string            `json:"cover_color,omitempty"`
	Description    string            `json:"description,omitempty"`
	Details        []provider.Detail `json:"details,omitempty" jsonschema:"Label/value rows shown in the kiosk popup"`
	Media          []provider.Promo  `json:"media,omitempty" jsonschema:"Promotional images or videos shown on the provider page"`
}

type ListProvidersParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
}

type MediaParams struct {
	ID                   string   `json:"id,omitempty" jsonschema:"Media ID (generated when omitted)"`
	Title                string   `json:"title" jsonschema:"Media title"`
	Kind                 string   `json:"kind" jsonschema:"video or image"`
	VideoURL             string   `json:"video_url,omitempty" jsonschema:"Video asset URL (kind=video)"`
	ImageURL             string   `json:"image_url,omitempty" jsonschema:"Image asset URL (kind=image)"`
	AssetMIMEType        string   `json:"asset_mime_type,omitempty" jsonschema:"Asset MIME type, e.g. video/mp4"`
	ProjectIDs           []string `json:"project_ids" jsonschema:"Projects the media is shared into"`
	ProviderID           string   `json:"provider_id,omitempty" jsonschema:"Provider the media advertises"`
	Category             string   `json:"category" jsonschema:"Media category"`
	Enabled              *bool    `json:"enabled,omitempty" jsonschema:"Whether the media can play (default true)"`
	StartAt              string   `json:"start_at,omitempty" jsonschema:"Inclusive start (RFC3339)"`
	EndAt                string   `json:"end_at,omitempty" jsonschema:"Exclusive end (RFC3339)"`
	DefaultImageDuration *int     `json:"default_image_duration,omitempty" jsonschema:"Seconds an image plays when the slot sets no override (1-300)"`
	Notes                string   `json:"notes,omitempty"`
}

type SearchMediaParams struct {
	Query          string `json:"query,omitempty" jsonschema:"Full-text query over title and notes"`
	ProjectID      string `json:"project_id,omitempty" jsonschema:"Restrict to media shared into this project"`
	Category       string `json:"category,omitempty" jsonschema:"Restrict to a category"`
	AssignableOnly bool   `json:"assignable_only,omitempty" jsonschema:"Only enabled media that can fill a slot of project_id"`
	Limit          int    `json:"limit,omitempty" jsonschema:"Maximum number of results"`
}

type SavePlaylistItemParams struct {
	ID                    string `json:"id,omitempty" jsonschema:"Slot ID (generated when omitted)"`
	ProjectID             string `json:"project_id" jsonschema:"Project the slot belongs to"`
	Order                 int    `json:"order" jsonschema:"Play order (1-based)"`
	Enabled               *bool  `json:"enabled,omitempty" jsonschema:"Whether the slot plays (default true)"`
	MediaID               string `json:"media_id" jsonschema:"Media the slot plays"`
	ImageDurationOverride *int   `json:"image_duration_override,omitempty" jsonschema:"Seconds for image media (1-300)"`
	StartAt               string `json:"start_at,omitempty" jsonschema:"Inclusive start (RFC3339)"`
	EndAt                 string `json:"end_at,omitempty" jsonschema:"Exclusive end (RFC3339)"`
}

type DeletePlaylistItemParams struct {
	ID string `json:"id" jsonschema:"Slot ID"`
}

type ListPlaylistItemsParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
}

type SaveCategoryConfigParams struct {
	ID         string           `json:"id,omitempty" jsonschema:"Config ID (generated when omitted)"`
	ProjectID  string           `json:"project_id" jsonschema:"Project ID"`
	Categories []category.Entry `json:"categories" jsonschema:"Category tree with labels and CTAs"`
}

type GetCategoryConfigParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
}

type SaveBuildingUpdateParams struct {
	ID             string   `json:"id,omitempty" jsonschema:"Update ID (generated when omitted)"`
	ProjectID      string   `json:"project_id" jsonschema:"Project ID"`
	Title          string   `json:"title" jsonschema:"Headline"`
	Subtitle       string   `json:"subtitle,omitempty"`
	Slug           string   `json:"slug,omitempty" jsonschema:"URL slug (derived from title when omitted)"`
	Icon           string   `json:"icon,omitempty"`
	BgColor        string   `json:"bg_color,omitempty" jsonschema:"Background color as #rgb or #rrggbb"`
	Description    string   `json:"description,omitempty"`
	SubCategoryIDs []string `json:"sub_category_ids,omitempty" jsonschema:"Any of most_recent, alert"`
	PublishedAt    string   `json:"published_at,omitempty" jsonschema:"Publish time (RFC3339, default now)"`
}

type DeleteBuildingUpdateParams struct {
	ID string `json:"id" jsonschema:"Update ID"`
}

type ListBuildingUpdatesParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
}

type CompilePlaylistParams struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"Project ID"`
	Code      string `json:"code,omitempty" jsonschema:"Project routing code (used when project_id is omitted)"`
	At        string `json:"at,omitempty" jsonschema:"Instant to compile at (RFC3339, default now)"`
}

type GetRecentActivityParams struct {
	ProjectID  string   `json:"project_id,omitempty" jsonschema:"Project ID to filter by"`
	DocumentID string   `json:"document_id,omitempty" jsonschema:"Media, slot, provider or config ID to filter by"`
	Types      []string `json:"types,omitempty" jsonschema:"Activity types to include"`
	Since      string   `json:"since,omitempty" jsonschema:"Only entries at or after this time (RFC3339)"`
	Limit      int      `json:"limit,omitempty" jsonschema:"Maximum number of entries"`
	Offset     int      `json:"offset,omitempty" jsonschema:"Offset for pagination"`
}

type ProjectListResponse struct {
	Projects []project.ProjectSummary `json:"projects"`
}

type ProviderListResponse struct {
	Providers []provider.Provider `json:"providers"`
}

type BuildingUpdatesResponse struct {
	Updates []buildingupdate.Update `json:"updates"`
}

type ValidateMediaResponse struct {
	Status  validator.Status `json:"status"`
	Warning string           `json:"warning,omitempty"`
	Error   *APIError        `json:"error,omitempty"`
}

type SaveMediaResponse struct {
	Media   *media.Media     `json:"media"`
	Status  validator.Status `json:"status"`
	Warning string           `json:"warning,omitempty"`
}

type MediaSearchResponse struct {
	Results []media.SearchResult `json:"results"`
}

type PlaylistItemsResponse struct {
	Items []playlist.Item `json:"items"`
}

type DeleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type CompileResponse struct {
	ProjectID string                    `json:"project_id"`
	At        time.Time                 `json:"at"`
	Items     []precedence.ResolvedItem `json:"items"`
}

type ActivityResponse struct {
	Entries []activity.Entry `json:"entries"`
}

package media

import (
	"slices"
	"time"

	"github.com/rpggio/signage/internal/schedule"
)

// Kind selects which asset a media item plays.
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

// Media categories. Provider categories are the same set minus building updates.
const (
	CategoryFood            = "food"
	CategoryGroceries       = "groceries"
	CategoryServices        = "services"
	CategoryRent            = "rent"
	CategorySale            = "sale"
	CategoryBuildingUpdates = "building-updates"
)

var validCategories = map[string]bool{
	CategoryFood:            true,
	CategoryGroceries:       true,
	CategoryServices:        true,
	CategoryRent:            true,
	CategorySale:            true,
	CategoryBuildingUpdates: true,
}

// Limits for image display durations, in seconds.
const (
	MinImageDuration = 1
	MaxImageDuration = 300
)

// Media is a playable asset shared across one or more projects.
type Media struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Kind                 Kind       `json:"kind"`
	VideoURL             string     `json:"video_url,omitempty"`
	ImageURL             string     `json:"image_url,omitempty"`
	AssetMIMEType        string     `json:"asset_mime_type,omitempty"`
	ProjectIDs           []string   `json:"project_ids"`
	ProviderID           *string    `json:"provider_id,omitempty"`
	Category             string     `json:"category"`
	Enabled              bool       `json:"enabled"`
	StartAt              *time.Time `json:"start_at,omitempty"`
	EndAt                *time.Time `json:"end_at,omitempty"`
	DefaultImageDuration *int       `json:"default_image_duration,omitempty"`
	Notes                string     `json:"notes,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (m *Media) IsEnabled() bool {
	return m.Enabled
}

func (m *Media) Window() schedule.Window {
	return schedule.Window{Start: m.StartAt, End: m.EndAt}
}

// HasProject reports whether the media is shared into the project.
func (m *Media) HasProject(projectID string) bool {
	return slices.Contains(m.ProjectIDs, projectID)
}

// Provider returns the provider reference or "".
func (m *Media) Provider() string {
	if m.ProviderID == nil {
		return ""
	}
	return *m.ProviderID
}

// SearchResult is a media search hit.
type SearchResult struct {
	Media   Media   `json:"media"`
	Snippet string  `json:"snippet,omitempty"`
	Rank    float64 `json:"rank"`
}

// SearchOptions narrows a media search.
type SearchOptions struct {
	ProjectID string
	Category  string
	Limit     int
}

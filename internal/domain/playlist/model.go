package playlist

import (
	"time"

	"github.com/rpggio/signage/internal/schedule"
)

// Item is one slot in a project's playlist. It references media by ID and
// carries no source or CTA fields of its own.
type Item struct {
	ID                    string     `json:"id"`
	ProjectID             string     `json:"project_id"`
	Order                 int        `json:"order"`
	Enabled               bool       `json:"enabled"`
	MediaID               string     `json:"media_id"`
	ImageDurationOverride *int       `json:"image_duration_override,omitempty"`
	StartAt               *time.Time `json:"start_at,omitempty"`
	EndAt                 *time.Time `json:"end_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (i *Item) IsEnabled() bool {
	return i.Enabled
}

func (i *Item) Window() schedule.Window {
	return schedule.Window{Start: i.StartAt, End: i.EndAt}
}

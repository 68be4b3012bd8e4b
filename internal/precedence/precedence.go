// Package precedence turns a (slot, media) pair into the item a kiosk plays.
package precedence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/signage/internal/domain/category"
	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/domain/playlist"
	"github.com/rpggio/signage/internal/schedule"
)

// DefaultImageDuration is used when neither the slot nor the media sets one.
const DefaultImageDuration = 10

var (
	// ErrNoSource indicates the media has neither a video nor an image URL.
	ErrNoSource = errors.New("media has no playable source")
	// ErrKindMismatch indicates the chosen source contradicts the media's
	// declared kind.
	ErrKindMismatch = errors.New("media source does not match its kind")
)

// ResolvedItem is a fully resolved playlist entry.
type ResolvedItem struct {
	SlotID      string          `json:"slot_id"`
	MediaID     string          `json:"media_id"`
	Title       string          `json:"title"`
	SourceURL   string          `json:"source_url"`
	Kind        media.Kind      `json:"kind"`
	Duration    *int            `json:"duration_seconds,omitempty"`
	Category    string          `json:"category"`
	CTA         *category.Label `json:"cta,omitempty"`
	ProviderID  string          `json:"provider_id,omitempty"`
	Order       int             `json:"order"`
	ActiveFrom  *time.Time      `json:"active_from,omitempty"`
	ActiveUntil *time.Time      `json:"active_until,omitempty"`
}

// Window returns the effective window the item was resolved under.
func (r ResolvedItem) Window() schedule.Window {
	return schedule.Window{Start: r.ActiveFrom, End: r.ActiveUntil}
}

// Resolve applies field precedence. cfg may be nil.
func Resolve(slot *playlist.Item, m *media.Media, cfg *category.Config) (ResolvedItem, error) {
	source, kind := pickSource(m)
	if source == "" {
		return ResolvedItem{}, ErrNoSource
	}
	if m.Kind != "" && m.Kind != kind {
		return ResolvedItem{}, fmt.Errorf("%w: kind %s, source is %s", ErrKindMismatch, m.Kind, kind)
	}

	effective := schedule.Intersect(m.Window(), slot.Window())
	item := ResolvedItem{
		SlotID:      slot.ID,
		MediaID:     m.ID,
		Title:       m.Title,
		SourceURL:   source,
		Kind:        kind,
		Category:    m.Category,
		ProviderID:  m.Provider(),
		Order:       slot.Order,
		ActiveFrom:  effective.Start,
		ActiveUntil: effective.End,
	}
	if kind == media.KindImage {
		d := imageDuration(slot.ImageDurationOverride, m.DefaultImageDuration)
		item.Duration = &d
	}
	if cta, ok := cfg.CTA(m.Category); ok {
		item.CTA = &cta
	}
	return item, nil
}

// pickSource prefers the video URL. The kind follows the chosen URL;
// Resolve then checks it against the declared kind, which documents
// written before kind existed leave empty.
func pickSource(m *media.Media) (string, media.Kind) {
	if u := strings.TrimSpace(m.VideoURL); u != "" {
		return u, media.KindVideo
	}
	if u := strings.TrimSpace(m.ImageURL); u != "" {
		return u, media.KindImage
	}
	return "", ""
}

func imageDuration(override, fallback *int) int {
	for _, d := range []*int{override, fallback} {
		if d != nil && *d >= media.MinImageDuration && *d <= media.MaxImageDuration {
			return *d
		}
	}
	return DefaultImageDuration
}

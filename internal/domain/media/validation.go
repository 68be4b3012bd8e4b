package media

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Validate checks media fields. Reference checks against other documents
// are done by the service.
func Validate(m *Media) error {
	if m == nil {
		return ErrInvalidInput
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !validCategories[m.Category] {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, m.Category)
	}
	if len(m.ProjectIDs) == 0 {
		return fmt.Errorf("%w: at least one project is required", ErrInvalidInput)
	}
	seen := make(map[string]bool, len(m.ProjectIDs))
	for _, id := range m.ProjectIDs {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: empty project id", ErrInvalidInput)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate project %q", ErrInvalidInput, id)
		}
		seen[id] = true
	}
	if err := m.Window().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if d := m.DefaultImageDuration; d != nil && (*d < MinImageDuration || *d > MaxImageDuration) {
		return fmt.Errorf("%w: default_image_duration must be between %d and %d", ErrInvalidInput, MinImageDuration, MaxImageDuration)
	}
	return validateAsset(m)
}

func validateAsset(m *Media) error {
	var want, other string
	switch m.Kind {
	case KindVideo:
		want, other = m.VideoURL, m.ImageURL
	case KindImage:
		want, other = m.ImageURL, m.VideoURL
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, m.Kind)
	}
	if strings.TrimSpace(want) == "" {
		return fmt.Errorf("%w: %s_url is required for %s media", ErrInvalidAsset, m.Kind, m.Kind)
	}
	if strings.TrimSpace(other) != "" {
		return fmt.Errorf("%w: %s media must not carry another asset", ErrInvalidAsset, m.Kind)
	}
	u, err := url.Parse(want)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q is not an http(s) URL", ErrInvalidAsset, want)
	}

	if m.AssetMIMEType == "" {
		return nil
	}
	mt := mimetype.Lookup(m.AssetMIMEType)
	if mt == nil {
		return fmt.Errorf("%w: unknown mime type %q", ErrInvalidAsset, m.AssetMIMEType)
	}
	if !strings.HasPrefix(mt.String(), string(m.Kind)+"/") {
		return fmt.Errorf("%w: mime type %q is not a %s type", ErrInvalidAsset, m.AssetMIMEType, m.Kind)
	}
	return nil
}

package playlist

import (
	"fmt"
	"strings"

	"github.com/rpggio/signage/internal/domain/media"
)

// Validate checks slot fields.
func Validate(item *Item) error {
	if item == nil {
		return ErrInvalidInput
	}
	if strings.TrimSpace(item.ProjectID) == "" {
		return fmt.Errorf("%w: project is required", ErrInvalidInput)
	}
	if strings.TrimSpace(item.MediaID) == "" {
		return fmt.Errorf("%w: media is required", ErrInvalidInput)
	}
	if item.Order < 1 {
		return fmt.Errorf("%w: order must be at least 1", ErrInvalidInput)
	}
	if d := item.ImageDurationOverride; d != nil && (*d < media.MinImageDuration || *d > media.MaxImageDuration) {
		return fmt.Errorf("%w: image_duration_override must be between %d and %d", ErrInvalidInput, media.MinImageDuration, media.MaxImageDuration)
	}
	if err := item.Window().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

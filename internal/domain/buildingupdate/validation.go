package buildingupdate

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks update fields. Save derives a missing slug and publish
// time before validating.
func Validate(u *Update) error {
	if u == nil {
		return ErrInvalidInput
	}
	if strings.TrimSpace(u.ProjectID) == "" {
		return fmt.Errorf("%w: project is required", ErrInvalidInput)
	}
	if strings.TrimSpace(u.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(u.Slug) == "" {
		return fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}
	if u.BgColor != "" && !hexColor.MatchString(u.BgColor) {
		return fmt.Errorf("%w: bg_color must be a hex color", ErrInvalidInput)
	}
	for _, id := range u.SubCategoryIDs {
		if !validSubCategories[id] {
			return fmt.Errorf("%w: unknown sub-category %q", ErrInvalidInput, id)
		}
	}
	return nil
}

package provider

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks provider fields. Save derives a missing slug before
// validating.
func Validate(p *Provider) error {
	if p == nil {
		return ErrInvalidInput
	}
	if strings.TrimSpace(p.ProjectID) == "" {
		return fmt.Errorf("%w: project is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.NameEN) == "" {
		return fmt.Errorf("%w: name_en is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}
	if !validCategories[p.Category] {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, p.Category)
	}
	if p.CoverColor != "" && !hexColor.MatchString(p.CoverColor) {
		return fmt.Errorf("%w: cover_color must be a hex color", ErrInvalidInput)
	}
	for i, promo := range p.Media {
		if err := validatePromo(promo); err != nil {
			return fmt.Errorf("%w: media[%d]: %v", ErrInvalidInput, i, err)
		}
	}
	return nil
}

func validatePromo(promo Promo) error {
	u, err := url.Parse(promo.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an http(s) URL", promo.URL)
	}
	if promo.MIMEType == "" {
		return nil
	}
	mt := mimetype.Lookup(promo.MIMEType)
	if mt == nil {
		return fmt.Errorf("unknown mime type %q", promo.MIMEType)
	}
	if !strings.HasPrefix(mt.String(), "image/") && !strings.HasPrefix(mt.String(), "video/") {
		return fmt.Errorf("mime type %q is not an image or video", promo.MIMEType)
	}
	return nil
}

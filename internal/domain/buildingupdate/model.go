package buildingupdate

import (
	"slices"
	"strings"
	"time"
)

// Sub-categories an update can be filed under.
const (
	SubCategoryMostRecent = "most_recent"
	SubCategoryAlert      = "alert"
)

var validSubCategories = map[string]bool{
	SubCategoryMostRecent: true,
	SubCategoryAlert:      true,
}

// IsValidSubCategory reports whether id is a known sub-category.
func IsValidSubCategory(id string) bool {
	return validSubCategories[id]
}

// Update is a building announcement shown in the kiosk's building-updates
// section. It is scoped to one project.
type Update struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	Title          string    `json:"title"`
	Subtitle       string    `json:"subtitle,omitempty"`
	Slug           string    `json:"slug"`
	Icon           string    `json:"icon,omitempty"`
	BgColor        string    `json:"bg_color,omitempty"`
	Description    string    `json:"description,omitempty"`
	SubCategoryIDs []string  `json:"sub_category_ids,omitempty"`
	PublishedAt    time.Time `json:"published_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasSubCategory reports whether the update is filed under id.
func (u *Update) HasSubCategory(id string) bool {
	return slices.Contains(u.SubCategoryIDs, id)
}

// SortNewestFirst orders updates by publish time, newest first. Ties fall
// back to the newer creation time, then the ID.
func SortNewestFirst(list []Update) {
	slices.SortStableFunc(list, func(a, b Update) int {
		if c := b.PublishedAt.Compare(a.PublishedAt); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// Published returns the updates published at or before now, newest first.
// A non-empty subCategory keeps only updates filed under it.
func Published(list []Update, now time.Time, subCategory string) []Update {
	out := make([]Update, 0, len(list))
	for _, u := range list {
		if u.PublishedAt.After(now) {
			continue
		}
		if subCategory != "" && !u.HasSubCategory(subCategory) {
			continue
		}
		out = append(out, u)
	}
	SortNewestFirst(out)
	return out
}

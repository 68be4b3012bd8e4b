package category

import (
	"sort"
	"time"
)

// Label is a bilingual display string.
type Label struct {
	EN string `json:"en,omitempty"`
	TH string `json:"th,omitempty"`
}

// IsZero reports whether both languages are empty.
func (l Label) IsZero() bool {
	return l.EN == "" && l.TH == ""
}

// Subcategory is a second-level routing target under a category.
type Subcategory struct {
	ID    string `json:"id"`
	Label Label  `json:"label"`
	Order int    `json:"order"`
}

// Entry is one category in a project's taxonomy.
type Entry struct {
	ID                    string        `json:"id"`
	Label                 Label         `json:"label"`
	CTA                   Label         `json:"cta"`
	FallbackSubcategoryID string        `json:"fallback_subcategory_id,omitempty"`
	Subcategories         []Subcategory `json:"subcategories,omitempty"`
}

// SortedSubcategories returns subcategories by display order, then ID.
func (e Entry) SortedSubcategories() []Subcategory {
	out := make([]Subcategory, len(e.Subcategories))
	copy(out, e.Subcategories)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Config is the per-project category tree.
type Config struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Categories []Entry   `json:"categories"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Lookup returns the entry for a category ID. A nil config finds nothing.
func (c *Config) Lookup(id string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	for _, e := range c.Categories {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// CTA returns the call-to-action label for a category, if configured.
func (c *Config) CTA(id string) (Label, bool) {
	e, ok := c.Lookup(id)
	if !ok || e.CTA.IsZero() {
		return Label{}, false
	}
	return e.CTA, true
}

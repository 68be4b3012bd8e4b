package provider

import "time"

// Category values a provider can be listed under.
const (
	CategoryFood      = "food"
	CategoryGroceries = "groceries"
	CategoryServices  = "services"
	CategoryRent      = "rent"
	CategorySale      = "sale"
)

var validCategories = map[string]bool{
	CategoryFood:      true,
	CategoryGroceries: true,
	CategoryServices:  true,
	CategoryRent:      true,
	CategorySale:      true,
}

// IsValidCategory reports whether c is a known provider category.
func IsValidCategory(c string) bool {
	return validCategories[c]
}

// Provider is a directory entry scoped to one project. Media may reference it.
type Provider struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	NameEN         string    `json:"name_en"`
	NameTH         string    `json:"name_th,omitempty"`
	Slug           string    `json:"slug"`
	Category       string    `json:"category"`
	SubCategoryIDs []string  `json:"sub_category_ids,omitempty"`
	Icon           string    `json:"icon,omitempty"`
	CoverColor     string    `json:"cover_color,omitempty"`
	Description    string    `json:"description,omitempty"`
	Details        []Detail  `json:"details,omitempty"`
	Media          []Promo   `json:"media,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Detail is a label/value row shown in the kiosk popup.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Promo is a promotional file listed on the provider's kiosk page. It is
// separate from playlist media and never enters a playlist.
type Promo struct {
	Title    string `json:"title,omitempty"`
	URL      string `json:"url"`
	MIMEType string `json:"mime_type,omitempty"`
}

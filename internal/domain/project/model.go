package project

import "time"

// DefaultHandoffBaseURL is used for handoff and QR links when a project sets none.
const DefaultHandoffBaseURL = "https://aquamax.co"

// Project is a tenant scope. All signage content is partitioned by project.
type Project struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Code           string    `json:"code"`
	HandoffBaseURL string    `json:"handoff_base_url,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HandoffURL returns the configured handoff base or the default.
func (p *Project) HandoffURL() string {
	if p.HandoffBaseURL == "" {
		return DefaultHandoffBaseURL
	}
	return p.HandoffBaseURL
}

// ProjectSummary is a lightweight representation for listing
type ProjectSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Code       string    `json:"code"`
	IsActive   bool      `json:"is_active"`
	MediaCount int       `json:"media_count"`
	SlotCount  int       `json:"slot_count"`
	CreatedAt  time.Time `json:"created_at"`
}

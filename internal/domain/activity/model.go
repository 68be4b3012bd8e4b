package activity

import "time"

// Type represents the type of editor activity
type Type string

const (
	TypeProviderSaved       Type = "provider_saved"
	TypeMediaSaved          Type = "media_saved"
	TypeMediaRejected       Type = "media_rejected"
	TypeMediaUnverified     Type = "media_unverified"
	TypeSlotSaved           Type = "slot_saved"
	TypeSlotDeleted         Type = "slot_deleted"
	TypeCategoryConfigSaved Type = "category_config_saved"
	TypeUpdateSaved         Type = "building_update_saved"
	TypeUpdateDeleted       Type = "building_update_deleted"
)

// Entry represents an event in the activity log
type Entry struct {
	ID         int64     `json:"id"`
	ProjectID  string    `json:"project_id"`
	DocumentID string    `json:"document_id,omitempty"`
	Type       Type      `json:"type"`
	Summary    string    `json:"summary"`
	Details    string    `json:"details,omitempty"` // JSON string
	Actor      string    `json:"actor,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

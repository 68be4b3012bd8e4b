package activity

import "time"

// ListOptions provides filtering options for listing activity.
type ListOptions struct {
	ProjectID  string
	DocumentID string
	Types      []Type
	Since      *time.Time
	Limit      int
	Offset     int
}

package buildingupdate

import "context"

// Reader is the read side used by the kiosk directory.
type Reader interface {
	// ListByProject returns every update of a project, newest first.
	ListByProject(ctx context.Context, projectID string) ([]Update, error)
}

// Repository defines building update persistence operations.
type Repository interface {
	Reader
	Get(ctx context.Context, id string) (*Update, error)
	Save(ctx context.Context, u *Update) error
	Delete(ctx context.Context, id string) error
}

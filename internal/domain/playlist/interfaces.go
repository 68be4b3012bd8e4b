package playlist

import "context"

// Reader is the read side used by the compiler.
type Reader interface {
	// ListByProject returns the slots whose project_id equals projectID,
	// in storage order.
	ListByProject(ctx context.Context, projectID string) ([]Item, error)
}

// Repository defines slot persistence operations.
type Repository interface {
	Reader
	Get(ctx context.Context, id string) (*Item, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error
}

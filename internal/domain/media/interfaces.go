package media

import "context"

// Reader is the read side used by the compiler.
type Reader interface {
	Get(ctx context.Context, id string) (*Media, error)
	// ListByProject returns media whose project set contains projectID.
	ListByProject(ctx context.Context, projectID string) ([]Media, error)
}

// Repository defines media persistence operations.
type Repository interface {
	Reader
	Save(ctx context.Context, m *Media) error
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

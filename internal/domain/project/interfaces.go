package project

import "context"

// Reader provides read access to projects.
type Reader interface {
	Get(ctx context.Context, id string) (*Project, error)
	GetByCode(ctx context.Context, code string) (*Project, error)
	List(ctx context.Context) ([]ProjectSummary, error)
}

// Repository provides persistence for projects.
type Repository interface {
	Reader
	Create(ctx context.Context, proj *Project) error
	Update(ctx context.Context, proj *Project) error
}

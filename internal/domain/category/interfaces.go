package category

import "context"

// Reader looks up the category config for a project.
type Reader interface {
	GetByProject(ctx context.Context, projectID string) (*Config, error)
}

// Repository provides persistence for category configs.
type Repository interface {
	Reader
	Save(ctx context.Context, cfg *Config) error
}

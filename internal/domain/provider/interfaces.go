package provider

import "context"

// Reader provides read access to providers.
type Reader interface {
	Get(ctx context.Context, id string) (*Provider, error)
	ListByProject(ctx context.Context, projectID string) ([]Provider, error)
}

// Repository provides persistence for providers.
type Repository interface {
	Reader
	Save(ctx context.Context, p *Provider) error
}

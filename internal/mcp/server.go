package mcp

import (
	"context"
	"io"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/signage/internal/domain/activity"
	"github.com/rpggio/signage/internal/domain/buildingupdate"
	"github.com/rpggio/signage/internal/domain/category"
	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/domain/playlist"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/domain/provider"
	"github.com/rpggio/signage/internal/precedence"
	"github.com/rpggio/signage/internal/validator"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	List(ctx context.Context) ([]project.ProjectSummary, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	GetByCode(ctx context.Context, code string) (*project.Project, error)
	SetActive(ctx context.Context, id string, active bool) (*project.Project, error)
}

// ProviderService defines provider operations needed by MCP.
type ProviderService interface {
	Save(ctx context.Context, p *provider.Provider) (*provider.Provider, error)
	ListByProject(ctx context.Context, projectID string) ([]provider.Provider, error)
}

// MediaService defines media operations needed by MCP.
type MediaService interface {
	Check(ctx context.Context, m *media.Media) (validator.Outcome, error)
	Save(ctx context.Context, m *media.Media) (*media.SaveResult, error)
	ListAssignable(ctx context.Context, projectID string) ([]media.Media, error)
	Search(ctx context.Context, query string, opts media.SearchOptions) ([]media.SearchResult, error)
}

// PlaylistService defines slot operations needed by MCP.
type PlaylistService interface {
	SaveItem(ctx context.Context, item *playlist.Item) (*playlist.Item, error)
	Delete(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string) ([]playlist.Item, error)
}

// CategoryService defines category config operations needed by MCP.
type CategoryService interface {
	Save(ctx context.Context, cfg *category.Config) (*category.Config, error)
	GetByProject(ctx context.Context, projectID string) (*category.Config, error)
}

// BuildingUpdateService defines building update operations needed by MCP.
type BuildingUpdateService interface {
	Save(ctx context.Context, u *buildingupdate.Update) (*buildingupdate.Update, error)
	Delete(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string) ([]buildingupdate.Update, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// Compiler previews a project's playlist.
type Compiler interface {
	Compile(ctx context.Context, projectID string, now time.Time) ([]precedence.ResolvedItem, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects   ProjectService
	Providers  ProviderService
	Media      MediaService
	Playlist   PlaylistService
	Categories CategoryService
	Updates    BuildingUpdateService
	Activity   ActivityService
	Compiler   Compiler
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      ActorResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
	Now           func() time.Time
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "signage",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Later middleware wraps earlier middleware, so auth runs before logging
	// and the actor is known when traffic is logged.
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))
	// Stdio is local-only and never authenticates.
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	} else {
		server.AddReceivingMiddleware(noAuthMiddleware(localActor))
	}

	registerTools(server, NewHandler(cfg.Services, cfg.Now))

	return server
}

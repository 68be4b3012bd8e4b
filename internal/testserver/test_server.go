// Package testserver runs the full HTTP stack over an in-memory database.
package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/signage/internal/compiler"
	"github.com/rpggio/signage/internal/delivery"
	"github.com/rpggio/signage/internal/directory"
	"github.com/rpggio/signage/internal/domain/activity"
	"github.com/rpggio/signage/internal/domain/buildingupdate"
	"github.com/rpggio/signage/internal/domain/category"
	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/domain/playlist"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/domain/provider"
	"github.com/rpggio/signage/internal/lastgood"
	"github.com/rpggio/signage/internal/mcp"
	"github.com/rpggio/signage/internal/seed"
	"github.com/rpggio/signage/internal/sqlite"
	"github.com/rpggio/signage/internal/transport"
	"github.com/rpggio/signage/internal/validator"
)

// TestServer is a running kiosk and MCP server.
type TestServer struct {
	Server     *httptest.Server
	DB         *sqlite.DB
	Cache      *lastgood.Store
	Token      string
	KioskToken string
	Seed       seed.Services

	clock *Clock
}

// Clock is a settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock.
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// New starts a server. Editor calls authenticate with token as actor;
// kiosk calls authenticate with kioskToken.
func New(t *testing.T, token, actor, kioskToken string) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	cache, err := lastgood.Open("", nil)
	require.NoError(t, err)

	projectRepo := sqlite.NewProjectRepository(db)
	mediaRepo := sqlite.NewMediaRepository(db)
	playlistRepo := sqlite.NewPlaylistRepository(db)
	providerRepo := sqlite.NewProviderRepository(db)
	categoryRepo := sqlite.NewCategoryRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	updateRepo := sqlite.NewBuildingUpdateRepository(db)
	apiKeys := sqlite.NewAPIKeyRepository(db)

	activitySvc := activity.NewService(activityRepo, nil)
	projectSvc := project.NewService(projectRepo, nil)
	providerSvc := provider.NewService(providerRepo, projectRepo, activitySvc, nil)
	categorySvc := category.NewService(categoryRepo, projectRepo, activitySvc, nil)
	refs := validator.New(providerRepo, projectRepo, validator.DefaultLookupTimeout, nil)
	mediaSvc := media.NewService(mediaRepo, projectRepo, refs, activitySvc, nil)
	playlistSvc := playlist.NewService(playlistRepo, mediaRepo, projectRepo, activitySvc, nil)
	updateSvc := buildingupdate.NewService(updateRepo, projectRepo, activitySvc, nil)

	engine := compiler.New(compiler.Sources{
		Projects:   projectRepo,
		Slots:      playlistRepo,
		Media:      mediaRepo,
		Categories: categoryRepo,
	}, compiler.DefaultFetchTimeout, nil)
	deliverySvc := delivery.NewService(projectRepo, engine, cache, delivery.Options{}, nil)
	directorySvc := directory.NewService(projectRepo, providerRepo, updateRepo, nil)

	clock := &Clock{now: time.Now().UTC()}
	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects:   projectSvc,
			Providers:  providerSvc,
			Media:      mediaSvc,
			Playlist:   playlistSvc,
			Categories: categorySvc,
			Updates:    updateSvc,
			Activity:   activitySvc,
			Compiler:   engine,
		},
		Resolver:      apiKeys,
		AuthEnabled:   true,
		TransportMode: "http",
		Now:           clock.Now,
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)

	server := httptest.NewServer(transport.NewServer(transport.Options{
		Playlists: deliverySvc,
		Directory: directorySvc,
		KioskAuth: transport.AuthMiddleware(transport.StaticToken(kioskToken)),
		MCP:       mcpHandler,
		Now:       clock.Now,
	}))

	require.NoError(t, apiKeys.Create(context.Background(), token, actor, "test"))

	t.Cleanup(func() {
		server.Close()
		_ = cache.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:     server,
		DB:         db,
		Cache:      cache,
		Token:      token,
		KioskToken: kioskToken,
		Seed: seed.Services{
			Projects:   projectSvc,
			Providers:  providerSvc,
			Categories: categorySvc,
			Media:      mediaSvc,
			Playlist:   playlistSvc,
			Updates:    updateSvc,
		},
		clock: clock,
	}
}

// SetNow moves the server clock.
func (ts *TestServer) SetNow(now time.Time) {
	ts.clock.Set(now)
}

// Get issues an authenticated kiosk request.
func (ts *TestServer) Get(t *testing.T, path string, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.Server.URL+path, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Authorization", "Bearer "+ts.KioskToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// Connect opens an authenticated MCP client session over streamable HTTP.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: &http.Client{Transport: bearer{token: ts.Token}},
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

type bearer struct {
	token string
}

func (b bearer) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return http.DefaultTransport.RoundTrip(req)
}

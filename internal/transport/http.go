// Package transport exposes compiled playlists and the provider directory
// to kiosks over HTTP.
package transport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rpggio/signage/internal/delivery"
	"github.com/rpggio/signage/internal/directory"
	"github.com/rpggio/signage/internal/repository"
)

// PlaylistService builds kiosk playlists.
type PlaylistService interface {
	PlaylistByCode(ctx context.Context, code string, now time.Time) (*delivery.Playlist, error)
	PreviewByCode(ctx context.Context, code string, at time.Time) (*delivery.Playlist, error)
}

// DirectoryService serves providers and building updates.
type DirectoryService interface {
	ProvidersByCode(ctx context.Context, code, category string) (*directory.Providers, error)
	UpdatesByCode(ctx context.Context, code string, now time.Time, subCategory string) (*directory.Updates, error)
}

// Options configure the HTTP server.
type Options struct {
	Playlists PlaylistService
	// Directory adds the provider and building update routes when set.
	Directory DirectoryService
	// KioskAuth guards the kiosk routes when set.
	KioskAuth func(http.Handler) http.Handler
	// MCP is mounted at /mcp when set.
	MCP    http.Handler
	Logger *slog.Logger
	Now    func() time.Time
}

// Server wires HTTP handlers.
type Server struct {
	playlists PlaylistService
	directory DirectoryService
	logger    *slog.Logger
	now       func() time.Time
}

// NewServer creates the HTTP router.
func NewServer(opts Options) *chi.Mux {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	srv := &Server{playlists: opts.Playlists, directory: opts.Directory, logger: opts.Logger, now: opts.Now}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", srv.handleHealth)

	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}

	r.Group(func(r chi.Router) {
		if opts.KioskAuth != nil {
			r.Use(opts.KioskAuth)
		}
		r.Use(DeviceMiddleware)
		r.Get("/v1/projects/{code}/playlist", srv.handlePlaylist)
		r.Get("/v1/playlist", srv.handlePlaylist)
		if opts.Directory != nil {
			r.Get("/v1/projects/{code}/providers", srv.handleProviders)
			r.Get("/v1/projects/{code}/updates", srv.handleUpdates)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handlePlaylist(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		code = r.URL.Query().Get("project")
	}
	if code == "" {
		WriteError(w, http.StatusBadRequest, CodeInvalidRequest, "project code is required")
		return
	}

	at, preview, err := parseAt(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, CodeInvalidRequest, "at must be an RFC3339 timestamp")
		return
	}

	var pl *delivery.Playlist
	if preview {
		pl, err = s.playlists.PreviewByCode(r.Context(), code, at)
	} else {
		pl, err = s.playlists.PlaylistByCode(r.Context(), code, s.now())
	}
	if err != nil {
		if errors.Is(err, delivery.ErrProjectNotFound) {
			WriteError(w, http.StatusNotFound, CodeProjectNotFound, "unknown project code")
			return
		}
		s.logger.Error("playlist request failed", "code", code, "error", err)
		WriteError(w, http.StatusInternalServerError, CodeInternal, "internal error")
		return
	}

	deviceID, _ := DeviceIDFromContext(r.Context())
	s.logger.Debug("playlist served",
		"code", code,
		"device_id", deviceID,
		"items", len(pl.Items),
		"degraded", pl.Degraded,
		"preview", preview,
	)

	w.Header().Set("Cache-Control", "no-cache")
	if pl.ETag != "" {
		w.Header().Set("ETag", pl.ETag)
		if etagMatches(r.Header.Get("If-None-Match"), pl.ETag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	WriteJSON(w, http.StatusOK, pl)
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	list, err := s.directory.ProvidersByCode(r.Context(), code, r.URL.Query().Get("category"))
	if err != nil {
		s.writeDirectoryError(w, code, err)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	WriteJSON(w, http.StatusOK, list)
}

func (s *Server) handleUpdates(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	at, preview, err := parseAt(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, CodeInvalidRequest, "at must be an RFC3339 timestamp")
		return
	}
	if !preview {
		at = s.now()
	}
	list, err := s.directory.UpdatesByCode(r.Context(), code, at, r.URL.Query().Get("sub"))
	if err != nil {
		s.writeDirectoryError(w, code, err)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	WriteJSON(w, http.StatusOK, list)
}

func (s *Server) writeDirectoryError(w http.ResponseWriter, code string, err error) {
	switch {
	case errors.Is(err, directory.ErrProjectNotFound):
		WriteError(w, http.StatusNotFound, CodeProjectNotFound, "unknown project code")
	case errors.Is(err, directory.ErrInvalidFilter):
		WriteError(w, http.StatusBadRequest, CodeInvalidRequest, err.Error())
	case errors.Is(err, repository.ErrUnavailable):
		s.logger.Warn("directory store unavailable", "code", code, "error", err)
		WriteError(w, http.StatusServiceUnavailable, CodeUnavailable, "directory temporarily unavailable")
	default:
		s.logger.Error("directory request failed", "code", code, "error", err)
		WriteError(w, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}

// parseAt reads the optional at query parameter. ok is false when absent.
func parseAt(r *http.Request) (at time.Time, ok bool, err error) {
	raw := r.URL.Query().Get("at")
	if raw == "" {
		return time.Time{}, false, nil
	}
	at, err = time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return at, true, nil
}

// etagMatches implements the weak comparison If-None-Match uses.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == want {
			return true
		}
	}
	return false
}

package mcp

import (
	"context"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/signage/internal/domain/activity"
	"github.com/rpggio/signage/internal/domain/buildingupdate"
	"github.com/rpggio/signage/internal/domain/category"
	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/domain/playlist"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/domain/provider"
	"github.com/rpggio/signage/internal/validator"
)

// Handler implements the MCP tools on top of the domain services.
type Handler struct {
	svc Services
	now func() time.Time
}

// NewHandler creates a new MCP handler.
func NewHandler(svc Services, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{svc: svc, now: now}
}

func (h *Handler) ListProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListProjectsParams) (*sdkmcp.CallToolResult, any, error) {
	projects, err := h.svc.Projects.List(ctx)
	if err != nil {
		return nil, nil, toolError(err)
	}
	if projects == nil {
		projects = []project.ProjectSummary{}
	}
	return nil, ProjectListResponse{Projects: projects}, nil
}

func (h *Handler) GetProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetProjectParams) (*sdkmcp.CallToolResult, any, error) {
	proj, err := h.resolveProject(ctx, in.ID, in.Code)
	if err != nil {
		return nil, nil, err
	}
	return nil, proj, nil
}

func (h *Handler) CreateProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateProjectParams) (*sdkmcp.CallToolResult, any, error) {
	proj, err := h.svc.Projects.Create(ctx, project.CreateRequest{
		ID:             in.ID,
		Title:          in.Title,
		Code:           in.Code,
		HandoffBaseURL: in.HandoffBaseURL,
		Inactive:       in.Inactive,
	})
	if err != nil {
		return nil, nil, toolError(err)
	}
	return nil, proj, nil
}

func (h *Handler) SetProjectActive(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetProjectActiveParams) (*sdkmcp.CallToolResult, any, error) {
	if in.ID == "" {
		return nil, nil, invalidInput("id is required")
	}
	proj, err := h.svc.Projects.SetActive(ctx, in.ID, in.Active)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return nil, proj, nil
}

func (h *Handler) SaveProvider(ctx context.Context, _ *sdkmcp.CallToolRequest, in SaveProviderParams) (*sdkmcp.CallToolResult, any, error) {
	saved, err := h.svc.Providers.Save(ctx, &provider.Provider{
		ID:             in.ID,
		ProjectID:      in.ProjectID,
		NameEN:         in.NameEN,
		NameTH:         in.NameTH,
		Slug:           in.Slug,
		Category:       in.Category,
		SubCategoryIDs: in.SubCategoryIDs,
		Icon:           in.Icon,
		CoverColor:     in.CoverColor,
		Description:    in.Description,
		Details:        in.Details,
		Media:          in.Media,
	})
	if err != nil {
		return nil, nil, toolError(err)
	}
	return nil, saved, nil
}

func (h *Handler) ListProviders(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListProvidersParams) (*sdkmcp.CallToolResult, any, error) {
	if in.ProjectID == "" {
		return nil, nil, invalidInput("project_id is required")
	}
	list, err := h.svc.Providers.ListByProject(ctx, in.ProjectID)
	if err != nil {
		return nil, nil, toolError(err)
	}
	if list == nil {
		list = []provider.Provider{}
	}
	return nil, ProviderListResponse{Providers: list}, nil
}

// ValidateMedia runs field and reference checks without writing. A
// rejected reference is reported in the response, not as a tool error.
func (h *Handler) ValidateMedia(ctx context.Context, _ *sdkmcp.CallToolRequest, in MediaParams) (*sdkmcp.CallToolResult, any, error) {
	m, err := in.toMedia()
	if err != nil {
		return nil, nil, err
	}
	outcome, err := h.svc.Media.Check(ctx, m)
	if err != nil {
		return nil, nil, toolError(err)
	}
	resp := ValidateMediaResponse{Status: outcome.Status, Warning: outcome.Warning}
	if outcome.Status == validator.StatusRejected {
		resp.Error = MapError(outcome.Err)
	}
	return nil, resp, nil
}

func (h *Handler) SaveMedia(ctx context.Context, _ *sdkmcp.CallToolRequest, in MediaParams) (*sdkmcp.CallToolResult, any, error) {
	m, err := in.toMedia()
	if err != nil {
		return nil, nil, err
	}
	result, err := h.svc.Media.Save(ctx, m)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return nil, SaveMediaResponse{
		Media:   result.Media,
		Status:  result.Outcome.Status,
		Warning: result.Outcome.Warning,
	}, nil
}

func (h *Handler) SearchMedia(ctx context.Context, _ *sdkmcp.CallToolRequest, in SearchMediaParams) (*sdkmcp.CallToolResult, any, error) {
	if in.AssignableOnly && in.ProjectID == "" {
		return nil, nil, invalidInput("assignable_only requires project_id")
	}

	if strings.TrimSpace(in.Query) == "" {
		if !in.AssignableOnly {
			return nil, nil, invalidInput("query is required unless assignable_only is set")
		}
		list, err := h.svc.Media.ListAssignable(ctx, in.ProjectID)
		if err != nil {
			return nil, nil, toolError(err)
		}
		results := make([]media.SearchResult, 0, len(list))
		for _, m := range list {
			if in.Category != "" && m.Category != in.Category {
				continue
			}
			results = append(results, media.SearchResult{Media: m})
			if in.Limit > 0 && len(results) == in.Limit {
				break
			}
		}
		return nil, MediaSearchResponse{Results: results}, nil
	}

	hits, err := h.svc.Media.Search(ctx, in.Query, media.SearchOptions{
		ProjectID: in.ProjectID,
		Category:  in.Category,
		Limit:     in.Limit,
	})
	if err != nil {
		return nil, nil, toolError(err)
	}
	results := make([]media.SearchResult, 0, len(hits))
	for _, hit := range hits {
		if in.AssignableOnly && !hit.Media.Enabled {
			continue
		}
		results = append(results, hit)
	}
	return nil, MediaSearchResponse{Results: results}, nil
}

func (h *Handler) SavePlaylistItem(ctx context.Context, _ *sdkmcp.CallToolRequest, in SavePlaylistItemParams) (*sdkmcp.CallToolResult, any, error) {
	start, err := parseTime("start_at", in.StartAt)
	if err != nil {
		return nil, nil, err
	}
	end, err := parseTime("end_at", in.EndAt)
	if err != nil {
		return nil, nil, err
	}
	saved, err := h.svc.Playlist.SaveItem(ctx, &playlist.Item{
		ID:                    in.ID,
		ProjectID:             in.ProjectID,
		Order:                 in.Order,
		Enabled:               boolOr(in.Enabled, true),
		MediaID:               in.MediaID,
		ImageDurationOverride: in.ImageDurationOverride,
		StartAt:               start,
		EndAt:                 end,
	})
	if err != nil {
		return nil, nil, toolError(err)
	}
	return nil, saved, nil
}

func (h *Handler) DeletePlaylistItem(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeletePlaylistItemParams) (*sdkmcp.CallToolResult, any, error) {
	if err := h.svc.Playlist.Delete(ctx, in.ID); err != nil {
		return nil, nil, toolError(err)
	}
	return nil, DeleteResponse{ID: in.ID, Deleted: true}, nil
}

func (h *Handler) ListPlaylistItems(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListPlaylistItemsParams) (*sdkmcp.CallToolResult, any, error) {
	items, err := h.svc.Playlist.ListByProject(ctx, in.ProjectID)
	if err != nil {
		return nil, nil, toolError(err)
	}
	if items == nil {
		items = []playlist.Item{}
	}
	return nil, PlaylistItemsResponse{Items: items}, nil
}

func (h *Handler) SaveCategoryConfig(ctx context.Context, _ *sdkmcp.CallToolRequest, in SaveCategoryConfigParams) (*sdkmcp.CallToolResult, any, error) {
	saved, err := h.svc.Categories.Save(ctx, &category.Config{
		ID:         in.ID,
		ProjectID:  in.ProjectID,
		Categories: in.Categories,
	})
	if err != nil {
		return nil, nil, toolError(err)
	}
	return nil, saved, nil
}

func (h *Handler) GetCategoryConfig(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetCategoryConfigParams) (*sdkmcp.CallToolResult, any, error) {
	if in.ProjectID == "" {
		return nil, nil, invalidInput("project_id is required")
	}
	cfg, err := h.svc.Categories.GetByProject(ctx, in.ProjectID)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return nil, cfg, nil
}

func (h *Handler) SaveBuildingUpdate(ctx context.Context, _ *sdkmcp.CallToolRequest, in SaveBuildingUpdateParams) (*sdkmcp.CallToolResult, any, error) {
	published, err := parseTime("published_at", in.PublishedAt)
	if err != nil {
		return nil, nil, err
	}
	u := &buildingupdate.Update{
		ID:             in.ID,
		ProjectID:      in.ProjectID,
		Title:          in.Title,
		Subtitle:       in.Subtitle,
		Slug:           in.Slug,
		Icon:           in.Icon,
		BgColor:        in.BgColor,
		Description:    in.Description,
		SubCategoryIDs: in.SubCategoryIDs,
	}
	if published != nil {
		u.PublishedAt = *published
	}
	saved, err := h.svc.Updates.Save(ctx, u)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return nil, saved, nil
}

func (h *Handler) DeleteBuildingUpdate(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteBuildingUpdateParams) (*sdkmcp.CallToolResult, any, error) {
	if err := h.svc.Updates.Delete(ctx, in.ID); err != nil {
		return nil, nil, toolError(err)
	}
	return nil, DeleteResponse{ID: in.ID, Deleted: true}, nil
}

func (h *Handler) ListBuildingUpdates(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListBuildingUpdatesParams) (*sdkmcp.CallToolResult, any, error) {
	if in.ProjectID == "" {
		return nil, nil, invalidInput("project_id is required")
	}
	list, err := h.svc.Updates.ListByProject(ctx, in.ProjectID)
	if err != nil {
		return nil, nil, toolError(err)
	}
	if list == nil {
		list = []buildingupdate.Update{}
	}
	return nil, BuildingUpdatesResponse{Updates: list}, nil
}

// CompilePlaylist previews what a kiosk would play. Store failures surface
// to the editor instead of degrading.
func (h *Handler) CompilePlaylist(ctx context.Context, _ *sdkmcp.CallToolRequest, in CompilePlaylistParams) (*sdkmcp.CallToolResult, any, error) {
	proj, err := h.resolveProject(ctx, in.ProjectID, in.Code)
	if err != nil {
		return nil, nil, err
	}
	at := h.now().UTC()
	if in.At != "" {
		parsed, err := parseTime("at", in.At)
		if err != nil {
			return nil, nil, err
		}
		at = *parsed
	}
	items, err := h.svc.Compiler.Compile(ctx, proj.ID, at)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return nil, CompileResponse{ProjectID: proj.ID, At: at, Items: items}, nil
}

func (h *Handler) GetRecentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetRecentActivityParams) (*sdkmcp.CallToolResult, any, error) {
	since, err := parseTime("since", in.Since)
	if err != nil {
		return nil, nil, err
	}
	types := make([]activity.Type, 0, len(in.Types))
	for _, t := range in.Types {
		types = append(types, activity.Type(t))
	}
	entries, err := h.svc.Activity.GetRecentActivity(ctx, activity.ListOptions{
		ProjectID:  in.ProjectID,
		DocumentID: in.DocumentID,
		Types:      types,
		Since:      since,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, nil, toolError(err)
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	return nil, ActivityResponse{Entries: entries}, nil
}

func (h *Handler) resolveProject(ctx context.Context, id, code string) (*project.Project, error) {
	var (
		proj *project.Project
		err  error
	)
	switch {
	case id != "":
		proj, err = h.svc.Projects.Get(ctx, id)
	case code != "":
		proj, err = h.svc.Projects.GetByCode(ctx, code)
	default:
		return nil, invalidInput("id or code is required")
	}
	if err != nil {
		return nil, toolError(err)
	}
	return proj, nil
}

func (p MediaParams) toMedia() (*media.Media, error) {
	start, err := parseTime("start_at", p.StartAt)
	if err != nil {
		return nil, err
	}
	end, err := parseTime("end_at", p.EndAt)
	if err != nil {
		return nil, err
	}
	m := &media.Media{
		ID:                   p.ID,
		Title:                p.Title,
		Kind:                 media.Kind(p.Kind),
		VideoURL:             p.VideoURL,
		ImageURL:             p.ImageURL,
		AssetMIMEType:        p.AssetMIMEType,
		ProjectIDs:           p.ProjectIDs,
		Category:             p.Category,
		Enabled:              boolOr(p.Enabled, true),
		StartAt:              start,
		EndAt:                end,
		DefaultImageDuration: p.DefaultImageDuration,
		Notes:                p.Notes,
	}
	if p.ProviderID != "" {
		providerID := p.ProviderID
		m.ProviderID = &providerID
	}
	return m, nil
}

func parseTime(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, invalidInput("%s must be an RFC3339 timestamp", field)
	}
	t = t.UTC()
	return &t, nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

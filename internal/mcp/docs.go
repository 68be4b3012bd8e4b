package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `signage manages what building kiosks play: Projects, Media, Providers, Playlist slots, Category configs and Building updates.

Core concepts:
- Project: a building or site. Kiosks address it by its routing code.
- Media: a video or image shared into one or more projects, optionally advertising one provider.
- Provider: a directory entry that belongs to exactly one project.
- Slot (playlist item): references media by ID and sets order, schedule and an optional image duration.
- Category config: per-project labels and calls to action; a media item's CTA comes from its category.
- Building update: a per-project announcement (most_recent or alert) kiosks list newest first once published.

Rules of engagement:
1) Orient: list_projects, then get_project.
2) Media: call validate_media before save_media when the provider is new to you.
   - rejected: the provider belongs to none of the media's projects; nothing is saved.
   - unverified: the provider check could not complete; the save proceeds with a warning.
3) Slots: find candidates with search_media (assignable_only=true, project_id) then save_playlist_item.
4) Preview: compile_playlist shows exactly what kiosks play at an instant (pass at for future dates).
5) Announcements: save_building_update; list_building_updates shows scheduled ones too.
6) Audit: get_recent_activity lists saves, rejections and unverified warnings.

Docs:
- signage://docs/index
- signage://docs/resolution
- signage://docs/integrity
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "signage://docs/index",
		Name:        "docs_index",
		Title:       "signage docs index",
		Description: "Entry point for editor docs: what exists and what to read.",
		Content: `# signage: Editor Docs Index

## Quick start

1. ` + "`list_projects`" + ` to find the project and its routing code.
2. ` + "`save_provider`" + ` / ` + "`save_category_config`" + ` for directory data; ` + "`list_providers`" + ` and ` + "`get_category_config`" + ` read it back.
3. ` + "`save_media`" + ` to add an asset, then ` + "`save_playlist_item`" + ` to schedule it.
4. ` + "`compile_playlist`" + ` to preview the kiosk output.
5. ` + "`save_building_update`" + ` for announcements; ` + "`set_project_active`" + ` to take a site offline.

## Docs

- ` + "`signage://docs/resolution`" + ` how a slot becomes a played item.
- ` + "`signage://docs/integrity`" + ` provider reference rules and the unverified state.
`,
	},
	{
		URI:         "signage://docs/resolution",
		Name:        "docs_resolution",
		Title:       "Playlist resolution",
		Description: "Scheduling, ordering and field precedence used by compile_playlist and kiosks.",
		Content: `# Playlist resolution

A slot plays at instant T when the slot and its media are both enabled and T falls
inside both windows. Windows are start-inclusive and end-exclusive; an unset bound is open.

Order: slot ` + "`order`" + ` ascending, then slot creation time, then slot ID.

Fields of a played item:
- Source: the media's video URL when present, otherwise its image URL.
- Duration: images only. The slot override, else the media default, else 10 seconds.
- CTA: from the project's category config for the media's category.
- Schedule: the intersection of the media and slot windows.

Slots whose media was deleted or no longer includes the project are skipped silently.
`,
	},
	{
		URI:         "signage://docs/integrity",
		Name:        "docs_integrity",
		Title:       "Provider reference integrity",
		Description: "When save_media rejects a provider and what unverified means.",
		Content: `# Provider reference integrity

A media item that names a provider must include the provider's project in its
` + "`project_ids`" + `. Otherwise save_media fails with INTEGRITY_VIOLATION and nothing is written.

If the provider or project lookup times out or the store is unreachable, the save
proceeds and the outcome is ` + "`unverified`" + `. The warning is recorded in the activity
log as ` + "`media_unverified`" + `; fix it by saving the media again once the store is healthy.

Adding a project to media requires the project to be active.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}

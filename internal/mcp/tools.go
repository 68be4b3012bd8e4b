package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *sdkmcp.Server, h *Handler) {
	// Projects
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects with media and slot counts",
	}, h.ListProjects)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a project by ID or routing code",
	}, h.GetProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a project (a building or site with its own kiosks)",
	}, h.CreateProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_project_active",
		Description: "Activate or deactivate a project. Kiosks of an inactive project get an empty playlist",
	}, h.SetProjectActive)

	// Directory
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_provider",
		Description: "Create or replace a provider in a project's directory",
	}, h.SaveProvider)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_providers",
		Description: "List a project's providers by English name",
	}, h.ListProviders)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_category_config",
		Description: "Replace a project's category tree, labels and calls to action",
	}, h.SaveCategoryConfig)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_category_config",
		Description: "Get a project's category tree, labels and calls to action",
	}, h.GetCategoryConfig)

	// Building updates
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_building_update",
		Description: "Create or replace a building update shown in the kiosk announcements",
	}, h.SaveBuildingUpdate)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_building_update",
		Description: "Delete a building update",
	}, h.DeleteBuildingUpdate)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_building_updates",
		Description: "List a project's building updates newest first, including scheduled ones",
	}, h.ListBuildingUpdates)

	// Media
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "validate_media",
		Description: "Check a media document without saving it. Reports accepted, rejected or unverified",
	}, h.ValidateMedia)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_media",
		Description: "Create or replace media. Rejected when its provider belongs to none of its projects",
	}, h.SaveMedia)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_media",
		Description: "Search media by text, or list media assignable to a project's slots",
	}, h.SearchMedia)

	// Playlist
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_playlist_item",
		Description: "Create or replace a playlist slot referencing media",
	}, h.SavePlaylistItem)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_playlist_item",
		Description: "Delete a playlist slot",
	}, h.DeletePlaylistItem)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_playlist_items",
		Description: "List a project's playlist slots as stored, before scheduling",
	}, h.ListPlaylistItems)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "compile_playlist",
		Description: "Preview the resolved playlist a kiosk would play at an instant",
	}, h.CompilePlaylist)

	// History
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_activity",
		Description: "Get recent editor activity for a project or document",
	}, h.GetRecentActivity)
}

package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/signage/internal/compiler"
	"github.com/rpggio/signage/internal/domain/buildingupdate"
	"github.com/rpggio/signage/internal/domain/category"
	"github.com/rpggio/signage/internal/domain/media"
	"github.com/rpggio/signage/internal/domain/playlist"
	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/domain/provider"
	"github.com/rpggio/signage/internal/repository"
	"github.com/rpggio/signage/internal/schedule"
	"github.com/rpggio/signage/internal/validator"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// IntegrityDetails describes a rejected provider reference.
type IntegrityDetails struct {
	MediaID           string   `json:"media_id,omitempty"`
	ProviderID        string   `json:"provider_id"`
	ProviderProjectID string   `json:"provider_project_id,omitempty"`
	ProjectIDs        []string `json:"project_ids"`
	Reason            string   `json:"reason"`
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var integrity *validator.IntegrityError
	if errors.As(err, &integrity) {
		return &APIError{
			Code:    "INTEGRITY_VIOLATION",
			Message: integrity.Reason,
			Details: IntegrityDetails{
				MediaID:           integrity.MediaID,
				ProviderID:        integrity.ProviderID,
				ProviderProjectID: integrity.ProviderProjectID,
				ProjectIDs:        integrity.ProjectIDs,
				Reason:            integrity.Reason,
			},
			RecoveryHint: "Pick a provider from one of the media's projects or add that project",
		}
	}

	var fetch *compiler.FetchError
	if errors.As(err, &fetch) {
		hint := "Check the store configuration"
		if fetch.Retryable {
			hint = "Retry shortly"
		}
		return &APIError{Code: "STORE_UNAVAILABLE", Message: err.Error(), RecoveryHint: hint}
	}

	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call list_projects"}
	case errors.Is(err, project.ErrProjectInactive):
		return &APIError{Code: "PROJECT_INACTIVE", Message: err.Error(), RecoveryHint: "Reference an active project"}
	case errors.Is(err, project.ErrDuplicateCode):
		return &APIError{Code: "DUPLICATE_CODE", Message: err.Error(), RecoveryHint: "Choose another code"}
	case errors.Is(err, media.ErrMediaNotFound), errors.Is(err, playlist.ErrMediaNotFound):
		return &APIError{Code: "MEDIA_NOT_FOUND", Message: err.Error(), RecoveryHint: "Use search_media to find the media ID"}
	case errors.Is(err, playlist.ErrMediaNotInProject):
		return &APIError{Code: "MEDIA_NOT_IN_PROJECT", Message: err.Error(), RecoveryHint: "Add the project to the media first"}
	case errors.Is(err, playlist.ErrMediaDisabled):
		return &APIError{Code: "MEDIA_DISABLED", Message: err.Error(), RecoveryHint: "Enable the media first"}
	case errors.Is(err, playlist.ErrItemNotFound):
		return &APIError{Code: "SLOT_NOT_FOUND", Message: err.Error()}
	case errors.Is(err, provider.ErrProviderNotFound):
		return &APIError{Code: "PROVIDER_NOT_FOUND", Message: err.Error()}
	case errors.Is(err, category.ErrConfigNotFound):
		return &APIError{Code: "CATEGORY_CONFIG_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call save_category_config"}
	case errors.Is(err, buildingupdate.ErrUpdateNotFound):
		return &APIError{Code: "BUILDING_UPDATE_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call list_building_updates"}
	case errors.Is(err, media.ErrInvalidInput),
		errors.Is(err, media.ErrInvalidAsset),
		errors.Is(err, playlist.ErrInvalidInput),
		errors.Is(err, provider.ErrInvalidInput),
		errors.Is(err, category.ErrInvalidInput),
		errors.Is(err, buildingupdate.ErrInvalidInput),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, schedule.ErrInvalidWindow),
		errors.Is(err, repository.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, repository.ErrUnavailable):
		return &APIError{Code: "STORE_UNAVAILABLE", Message: err.Error(), RecoveryHint: "Retry shortly"}
	default:
		return nil
	}
}

// toolError converts a service error into the error returned from a tool.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

func invalidInput(format string, args ...any) error {
	return &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf(format, args...)}
}

// Package validator guards media writes against cross-document reference
// violations: a media item may only name a provider that belongs to one of
// the media's projects.
package validator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/rpggio/signage/internal/domain/project"
	"github.com/rpggio/signage/internal/domain/provider"
	"github.com/rpggio/signage/internal/repository"
)

// DefaultLookupTimeout bounds the remote provider/project check.
const DefaultLookupTimeout = 3 * time.Second

// Status is the result class of a validation.
type Status string

const (
	StatusAccepted   Status = "accepted"
	StatusRejected   Status = "rejected"
	StatusUnverified Status = "unverified"
)

// ErrIntegrity is the sentinel wrapped by every IntegrityError.
var ErrIntegrity = errors.New("reference integrity violation")

// IntegrityError describes a provider/project mismatch. The write must be rejected.
type IntegrityError struct {
	MediaID           string
	ProviderID        string
	ProviderProjectID string
	ProjectIDs        []string
	Reason            string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: provider %s: %s", ErrIntegrity, e.ProviderID, e.Reason)
}

func (e *IntegrityError) Unwrap() error {
	return ErrIntegrity
}

// Candidate is the reference-bearing part of a media document under edit.
type Candidate struct {
	MediaID    string
	ProviderID string
	ProjectIDs []string
}

// Outcome is the result of a validation. Err is set only when rejected.
// Warning is set only when unverified and must be surfaced to the editor.
type Outcome struct {
	Status  Status `json:"status"`
	Warning string `json:"warning,omitempty"`
	Err     error  `json:"-"`
}

// Accepted reports whether the write may proceed. Unverified writes proceed.
func (o Outcome) Accepted() bool {
	return o.Status != StatusRejected
}

// Validator checks provider membership against the store.
type Validator struct {
	providers provider.Reader
	projects  project.Reader
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a validator. A zero timeout uses DefaultLookupTimeout.
func New(providers provider.Reader, projects project.Reader, timeout time.Duration, logger *slog.Logger) *Validator {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Validator{providers: providers, projects: projects, timeout: timeout, logger: logger}
}

// Validate checks the candidate's provider reference. It never returns
// Rejected because of store unavailability; such cases are Unverified.
func (v *Validator) Validate(ctx context.Context, c Candidate) Outcome {
	providerID := strings.TrimSpace(c.ProviderID)
	if providerID == "" {
		return Outcome{Status: StatusAccepted}
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	prov, err := v.providers.Get(ctx, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return v.reject(c, providerID, "", "provider does not exist")
		}
		return v.unverified(c, providerID, err)
	}

	if !slices.Contains(c.ProjectIDs, prov.ProjectID) {
		return v.reject(c, providerID, prov.ProjectID, "provider does not belong to any of the media's projects")
	}

	if _, err := v.projects.Get(ctx, prov.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return v.reject(c, providerID, prov.ProjectID, "provider's project does not exist")
		}
		return v.unverified(c, providerID, err)
	}

	return Outcome{Status: StatusAccepted}
}

func (v *Validator) reject(c Candidate, providerID, providerProjectID, reason string) Outcome {
	v.logger.Info("media reference rejected", "media_id", c.MediaID, "provider_id", providerID, "reason", reason)
	return Outcome{
		Status: StatusRejected,
		Err: &IntegrityError{
			MediaID:           c.MediaID,
			ProviderID:        providerID,
			ProviderProjectID: providerProjectID,
			ProjectIDs:        slices.Clone(c.ProjectIDs),
			Reason:            reason,
		},
	}
}

func (v *Validator) unverified(c Candidate, providerID string, err error) Outcome {
	v.logger.Warn("media reference unverified", "media_id", c.MediaID, "provider_id", providerID, "error", err)
	return Outcome{
		Status:  StatusUnverified,
		Warning: fmt.Sprintf("could not verify provider %s belongs to the selected projects: %v", providerID, err),
	}
}

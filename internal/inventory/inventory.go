// Package inventory enumerates the repositories whose history is scanned: those owned by the
// authenticated user, then organization repositories the user can push to.
package inventory

import (
	"context"
	"log/slog"

	ghctl "github.com/isometry/gh-email-finder/internal/controllers/github"
	"github.com/isometry/gh-email-finder/internal/helpers"
	"github.com/isometry/gh-email-finder/internal/models"
)

// RepositoryLister fetches single pages of repository listings.
type RepositoryLister interface {
	ListOwnedRepositories(ctx context.Context, page int) ([]models.Repository, error)
	ListOrganizations(ctx context.Context) ([]string, error)
	ListOrganizationRepositories(ctx context.Context, org string, page int) ([]models.Repository, error)
}

// Inventory holds the enumerated repositories.
type Inventory struct {
	Owned        []models.Repository
	Organization []models.Repository
}

// All returns owned repositories followed by organization repositories.
// Repositories present in both lists appear twice.
func (i Inventory) All() []models.Repository {
	all := make([]models.Repository, 0, len(i.Owned)+len(i.Organization))
	all = append(all, i.Owned...)
	return append(all, i.Organization...)
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithLogger sets the logger used by the Enumerator.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enumerator) {
		e.logger = logger
	}
}

// Enumerator walks repository listings page by page until an empty page.
type Enumerator struct {
	lister RepositoryLister
	logger *slog.Logger
}

// NewEnumerator returns an Enumerator reading from lister.
func NewEnumerator(lister RepositoryLister, opts ...Option) *Enumerator {
	_inst := &Enumerator{lister: lister}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	return _inst
}

// ListOwned returns every repository owned by the authenticated user. Any error aborts the listing.
func (e *Enumerator) ListOwned(ctx context.Context) ([]models.Repository, error) {
	var repos []models.Repository
	for page := 1; ; page++ {
		batch, err := e.lister.ListOwnedRepositories(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		repos = append(repos, batch...)
	}
	e.logger.Debug("listed owned repositories", slog.Int("count", len(repos)))
	return repos, nil
}

// ListOrganization returns the repositories, across the user's organizations, that grant push access.
// An HTTP error on an organization's listing ends that organization only; transport errors abort.
func (e *Enumerator) ListOrganization(ctx context.Context) ([]models.Repository, error) {
	orgs, err := e.lister.ListOrganizations(ctx)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("listed organizations", slog.Any("organizations", orgs))

	var repos []models.Repository
	for _, org := range orgs {
		orgRepos, err := e.listOrganization(ctx, org)
		if err != nil {
			return nil, err
		}
		repos = append(repos, orgRepos...)
	}
	return repos, nil
}

func (e *Enumerator) listOrganization(ctx context.Context, org string) ([]models.Repository, error) {
	logger := e.logger.With(slog.String("organization", org))
	var repos []models.Repository
	for page := 1; ; page++ {
		batch, err := e.lister.ListOrganizationRepositories(ctx, org, page)
		if err != nil {
			if !ghctl.IsResponseError(err) {
				return nil, err
			}
			logger.Info("organization listing ended early", slog.Int("page", page), slog.Any("error", err))
			return repos, nil
		}
		if len(batch) == 0 {
			break
		}
		for _, repo := range batch {
			if repo.Push {
				repos = append(repos, repo)
			}
		}
	}
	logger.Debug("listed organization repositories with push access", slog.Int("count", len(repos)))
	return repos, nil
}

// Package handler wires the GitHub client, the repository enumerator, the contribution scanner
// and the reporter into a single sequential run.
package handler

import (
	"context"
	"io"
	"log/slog"

	ghctl "github.com/isometry/gh-email-finder/internal/controllers/github"
	"github.com/isometry/gh-email-finder/internal/helpers"
	"github.com/isometry/gh-email-finder/internal/inventory"
	"github.com/isometry/gh-email-finder/internal/report"
	"github.com/isometry/gh-email-finder/internal/scanner"
	"github.com/pkg/errors"
)

// Option is a functional option for the Handler.
type Option func(*Handler)

// Handler runs the email discovery pipeline.
type Handler struct {
	logger    *slog.Logger
	token     string
	baseURL   string
	userAgent string
	pageSize  int
	output    io.Writer

	githubController *ghctl.Controller
	enumerator       *inventory.Enumerator
	scanner          *scanner.Scanner
	reporter         *report.Reporter
}

// NewHandler builds a Handler. No request is sent until Run.
func NewHandler(options ...Option) (*Handler, error) {
	_inst := &Handler{
		logger: helpers.NewNoopLogger(),
		output: io.Discard,
	}
	for _, opt := range options {
		opt(_inst)
	}
	if _inst.token == "" {
		return nil, &NoCredentialsError{}
	}

	ctl, err := ghctl.NewController(
		ghctl.WithLogger(_inst.logger.With("component", "github-controller")),
		ghctl.WithToken(_inst.token),
		ghctl.WithBaseURL(_inst.baseURL),
		ghctl.WithUserAgent(_inst.userAgent),
		ghctl.WithPageSize(_inst.pageSize))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create the GitHub controller")
	}
	_inst.githubController = ctl
	_inst.enumerator = inventory.NewEnumerator(ctl,
		inventory.WithLogger(_inst.logger.With("component", "inventory")))
	_inst.scanner = scanner.NewScanner(ctl,
		scanner.WithLogger(_inst.logger.With("component", "scanner")))
	_inst.reporter = report.NewReporter(_inst.output)

	return _inst, nil
}

// Run authenticates, enumerates repositories, scans them one at a time in enumeration order
// and prints the summary.
func (h *Handler) Run(ctx context.Context) (*report.Result, error) {
	login, err := h.githubController.AuthenticatedLogin(ctx)
	if err != nil {
		return nil, err
	}
	h.reporter.Authenticated(login)
	logger := h.logger.With(slog.String("login", login))

	h.reporter.FetchingOwned()
	owned, err := h.enumerator.ListOwned(ctx)
	if err != nil {
		return nil, err
	}
	h.reporter.OwnedFound(len(owned))

	h.reporter.FetchingOrganization()
	organization, err := h.enumerator.ListOrganization(ctx)
	if err != nil {
		return nil, err
	}
	h.reporter.OrganizationFound(len(organization))

	repos := inventory.Inventory{Owned: owned, Organization: organization}.All()
	h.reporter.Analyzing(len(repos))

	agg := report.NewAggregator()
	for i, repo := range repos {
		h.reporter.Checking(i+1, len(repos), repo.Key())
		emails, err := h.scanner.Scan(ctx, repo, login)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan %s", repo.Key())
		}
		agg.Add(repo.Key(), emails)
	}

	result := agg.Result(login, len(owned), len(organization))
	logger.Info("scan complete",
		slog.Int("repositories", result.Scanned()),
		slog.Int("emails", result.Emails.Len()))
	h.reporter.Summary(result)
	return result, nil
}

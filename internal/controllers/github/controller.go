// Package github provides a Controller for the GitHub REST calls used to discover repositories and contribution emails.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v84/github"
	"github.com/google/go-querystring/query"
	"github.com/isometry/gh-email-finder/internal/helpers"
	"github.com/isometry/gh-email-finder/internal/models"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// DefaultPageSize is the largest page the REST API serves.
const DefaultPageSize = 100

// Option is a functional option used to configure or modify the properties of a Controller instance.
type Option func(*Controller)

// Controller wraps an authenticated go-github client.
type Controller struct {
	token     string
	baseURL   string
	userAgent string
	pageSize  int
	logger    *slog.Logger
	transport http.RoundTripper

	client *github.Client
}

// NewController initializes a new Controller with the provided options, setting defaults where necessary.
func NewController(opts ...Option) (*Controller, error) {
	_inst := &Controller{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.token == "" {
		return nil, errors.New("missing GitHub token")
	}
	if _inst.pageSize <= 0 {
		_inst.pageSize = DefaultPageSize
	}
	if _inst.transport == nil {
		_inst.transport = http.DefaultTransport
	}

	roundTripper := &loggingRoundTripper{logger: _inst.logger, next: _inst.transport}
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: _inst.token}),
			Base:   roundTripper,
		},
	}
	_inst.client = github.NewClient(httpClient)
	if _inst.userAgent != "" {
		_inst.client.UserAgent = _inst.userAgent
	}
	if _inst.baseURL != "" {
		u, err := url.Parse(_inst.baseURL)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid API base URL %q", _inst.baseURL)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		_inst.client.BaseURL = u
	}
	_inst.logger.Debug("GitHub client ready", slog.String("baseURL", _inst.client.BaseURL.String()), slog.String("userAgent", _inst.client.UserAgent))
	return _inst, nil
}

// Get issues an authenticated GET against path, relative to the API base URL.
// opts is encoded as the query string and the JSON body is decoded into v.
// Non-2xx responses are returned as go-github errors alongside the response.
func (g *Controller) Get(ctx context.Context, path string, opts any, v any) (*github.Response, error) {
	if opts != nil {
		qs, err := query.Values(opts)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode query parameters")
		}
		if encoded := qs.Encode(); encoded != "" {
			path += "?" + encoded
		}
	}
	req, err := g.client.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", path)
	}
	resp, err := g.client.Do(ctx, req, v)
	g.observeRate(resp)
	return resp, err
}

// AuthenticatedLogin returns the login of the token owner.
func (g *Controller) AuthenticatedLogin(ctx context.Context) (string, error) {
	user, resp, err := g.client.Users.Get(ctx, "")
	g.observeRate(resp)
	if err != nil {
		return "", errors.Wrap(err, "failed to fetch the authenticated user")
	}
	return user.GetLogin(), nil
}

// ListOwnedRepositories returns one page of the repositories owned by the authenticated user.
func (g *Controller) ListOwnedRepositories(ctx context.Context, page int) ([]models.Repository, error) {
	var payload []models.CommonRepository
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Affiliation: "owner",
		ListOptions: g.listOptions(page),
	}
	if _, err := g.Get(ctx, "user/repos", opts, &payload); err != nil {
		return nil, errors.Wrapf(err, "failed to list owned repositories (page %d)", page)
	}
	return toRepositories(payload), nil
}

// ListOrganizations returns the logins of the organizations the authenticated user belongs to.
// Only the first page is requested.
func (g *Controller) ListOrganizations(ctx context.Context) ([]string, error) {
	orgs, resp, err := g.client.Organizations.List(ctx, "", nil)
	g.observeRate(resp)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list organizations")
	}
	logins := make([]string, 0, len(orgs))
	for _, org := range orgs {
		logins = append(logins, org.GetLogin())
	}
	return logins, nil
}

// ListOrganizationRepositories returns one page of an organization's repositories, permissions included.
func (g *Controller) ListOrganizationRepositories(ctx context.Context, org string, page int) ([]models.Repository, error) {
	var payload []models.CommonRepository
	opts := &github.RepositoryListByOrgOptions{ListOptions: g.listOptions(page)}
	if _, err := g.Get(ctx, fmt.Sprintf("orgs/%v/repos", org), opts, &payload); err != nil {
		return nil, errors.Wrapf(err, "failed to list repositories of %s (page %d)", org, page)
	}
	return toRepositories(payload), nil
}

// ListCommitsByAuthor returns one page of the repository commits attributed to author.
func (g *Controller) ListCommitsByAuthor(ctx context.Context, owner, repo, author string, page int) ([]*github.RepositoryCommit, error) {
	commits, resp, err := g.client.Repositories.ListCommits(ctx, owner, repo, &github.CommitsListOptions{
		Author:      author,
		ListOptions: g.listOptions(page),
	})
	g.observeRate(resp)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list commits of %s/%s (page %d)", owner, repo, page)
	}
	return commits, nil
}

// ListPullRequests returns one page of the repository pull requests in any state.
func (g *Controller) ListPullRequests(ctx context.Context, owner, repo string, page int) ([]*github.PullRequest, error) {
	prs, resp, err := g.client.PullRequests.List(ctx, owner, repo, &github.PullRequestListOptions{
		State:       "all",
		ListOptions: g.listOptions(page),
	})
	g.observeRate(resp)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list pull requests of %s/%s (page %d)", owner, repo, page)
	}
	return prs, nil
}

// ListPullRequestCommits returns the first page of commits of a pull request.
func (g *Controller) ListPullRequestCommits(ctx context.Context, owner, repo string, number int) ([]*github.RepositoryCommit, error) {
	commits, resp, err := g.client.PullRequests.ListCommits(ctx, owner, repo, number, nil)
	g.observeRate(resp)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list commits of %s/%s#%d", owner, repo, number)
	}
	return commits, nil
}

func (g *Controller) listOptions(page int) github.ListOptions {
	return github.ListOptions{Page: page, PerPage: g.pageSize}
}

func (g *Controller) observeRate(resp *github.Response) {
	if resp == nil {
		return
	}
	helpers.OnceAMinute.Do(func() {
		g.logger.Debug("rate limits",
			slog.Int("limit", resp.Rate.Limit),
			slog.Int("remaining", resp.Rate.Remaining),
			slog.Time("reset", resp.Rate.Reset.Time))
	})
}

func toRepositories(payload []models.CommonRepository) []models.Repository {
	repos := make([]models.Repository, 0, len(payload))
	for _, p := range payload {
		repos = append(repos, p.ToRepository())
	}
	return repos
}

// Package scanner collects the email addresses attached to a user's commits and pull requests in a repository.
package scanner

import (
	"context"
	"log/slog"

	"github.com/google/go-github/v84/github"
	ghctl "github.com/isometry/gh-email-finder/internal/controllers/github"
	"github.com/isometry/gh-email-finder/internal/helpers"
	"github.com/isometry/gh-email-finder/internal/models"
)

// ContributionSource fetches the commit and pull-request listings of a repository.
type ContributionSource interface {
	ListCommitsByAuthor(ctx context.Context, owner, repo, author string, page int) ([]*github.RepositoryCommit, error)
	ListPullRequests(ctx context.Context, owner, repo string, page int) ([]*github.PullRequest, error)
	ListPullRequestCommits(ctx context.Context, owner, repo string, number int) ([]*github.RepositoryCommit, error)
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used by the Scanner.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// Scanner extracts contribution emails from a repository.
type Scanner struct {
	source ContributionSource
	logger *slog.Logger
}

// NewScanner returns a Scanner reading from source.
func NewScanner(source ContributionSource, opts ...Option) *Scanner {
	_inst := &Scanner{source: source}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	return _inst
}

// Scan returns the emails found on commits authored by login and on commits of pull requests opened by login.
// HTTP errors end the affected scan without failing; transport errors and cancellation are returned.
func (s *Scanner) Scan(ctx context.Context, repo models.Repository, login string) (models.EmailSet, error) {
	logger := s.logger.With(slog.String("repository", repo.Key()))
	emails := models.EmailSet{}

	if err := s.scanCommits(ctx, logger, repo, login, emails); err != nil {
		return nil, err
	}
	if err := s.scanPullRequests(ctx, logger, repo, login, emails); err != nil {
		return nil, err
	}
	logger.Debug("repository scanned", slog.Int("emails", emails.Len()))
	return emails, nil
}

func (s *Scanner) scanCommits(ctx context.Context, logger *slog.Logger, repo models.Repository, login string, emails models.EmailSet) error {
	for page := 1; ; page++ {
		commits, err := s.source.ListCommitsByAuthor(ctx, repo.Owner, repo.Name, login, page)
		if err != nil {
			return tolerate(logger, "commit scan ended early", page, err)
		}
		if len(commits) == 0 {
			return nil
		}
		for _, c := range commits {
			addCommitEmails(emails, c)
		}
	}
}

func (s *Scanner) scanPullRequests(ctx context.Context, logger *slog.Logger, repo models.Repository, login string, emails models.EmailSet) error {
	for page := 1; ; page++ {
		prs, err := s.source.ListPullRequests(ctx, repo.Owner, repo.Name, page)
		if err != nil {
			return tolerate(logger, "pull request scan ended early", page, err)
		}
		if len(prs) == 0 {
			return nil
		}
		for _, pr := range prs {
			if pr.GetUser().GetLogin() != login {
				continue
			}
			commits, err := s.source.ListPullRequestCommits(ctx, repo.Owner, repo.Name, pr.GetNumber())
			if err != nil {
				if !ghctl.IsResponseError(err) {
					return err
				}
				logger.Info("skipping pull request commits", slog.Int("number", pr.GetNumber()), slog.Any("error", err))
				continue
			}
			for _, c := range commits {
				addCommitEmails(emails, c)
			}
		}
	}
}

// CommitEmails returns the author and committer emails present on a commit.
// An email key present with an empty value is still returned.
func CommitEmails(c *github.RepositoryCommit) []string {
	var emails []string
	commit := c.GetCommit()
	for _, signature := range []*github.CommitAuthor{commit.GetAuthor(), commit.GetCommitter()} {
		if signature != nil && signature.Email != nil {
			emails = append(emails, *signature.Email)
		}
	}
	return emails
}

func addCommitEmails(emails models.EmailSet, c *github.RepositoryCommit) {
	for _, e := range CommitEmails(c) {
		emails.Add(e)
	}
}

func tolerate(logger *slog.Logger, msg string, page int, err error) error {
	if !ghctl.IsResponseError(err) {
		return err
	}
	logger.Info(msg, slog.Int("page", page), slog.Any("error", err))
	return nil
}

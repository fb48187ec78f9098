// Package report aggregates per-repository email sets and renders the console output.
package report

import "github.com/isometry/gh-email-finder/internal/models"

// RepositoryEmails pairs a repository key with the emails found in it.
type RepositoryEmails struct {
	Repository string
	Emails     models.EmailSet
}

// Result is the outcome of a complete run.
type Result struct {
	Login string
	// Owned and Organization count the enumerated repositories.
	Owned        int
	Organization int
	// Emails is the union of every per-repository set.
	Emails models.EmailSet
	// Repositories lists repositories that yielded emails, in scan order.
	Repositories []RepositoryEmails
}

// Scanned returns the number of repositories scanned.
func (r *Result) Scanned() int {
	return r.Owned + r.Organization
}

// Aggregator accumulates scan results.
type Aggregator struct {
	emails models.EmailSet
	repos  []RepositoryEmails
	// index maps a repository key to its position in repos.
	index map[string]int
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{emails: models.EmailSet{}, index: map[string]int{}}
}

// Add records the emails found in a repository. Empty sets are ignored.
// A repository recorded again keeps its position and takes the latest set.
// It reports whether the repository was recorded.
func (a *Aggregator) Add(repository string, emails models.EmailSet) bool {
	if emails.Len() == 0 {
		return false
	}
	if i, ok := a.index[repository]; ok {
		a.repos[i].Emails = emails
	} else {
		a.index[repository] = len(a.repos)
		a.repos = append(a.repos, RepositoryEmails{Repository: repository, Emails: emails})
	}
	a.emails.Merge(emails)
	return true
}

// Result returns the aggregated emails for the given run metadata.
func (a *Aggregator) Result(login string, owned, organization int) *Result {
	return &Result{
		Login:        login,
		Owned:        owned,
		Organization: organization,
		Emails:       a.emails,
		Repositories: a.repos,
	}
}

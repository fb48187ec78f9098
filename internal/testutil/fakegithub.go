// Package testutil provides an in-memory GitHub REST API for exercising the scan pipeline end to end.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Repo is a repository served by the fake API.
type Repo struct {
	Owner string
	Name  string
	// Permissions is omitted from the payload when nil.
	Permissions map[string]bool
}

// Commit is a commit served by the fake API. A nil email omits the key; a nil
// object is rendered as JSON null.
type Commit struct {
	AuthorEmail    *string
	CommitterEmail *string
	NullAuthor     bool
	NullCommitter  bool
}

// Pull is a pull request served by the fake API.
type Pull struct {
	Number int
	Login  string
}

// FakeGitHub serves the subset of the REST API used by the email finder.
type FakeGitHub struct {
	*httptest.Server

	Login string
	Owned []Repo
	// Orgs lists organizations in the order /user/orgs returns them.
	Orgs     []string
	OrgRepos map[string][]Repo
	// Commits, keyed by "owner/name", are the commits authored by Login.
	Commits map[string][]Commit
	Pulls   map[string][]Pull
	// PullCommits is keyed by "owner/name#number".
	PullCommits map[string][]Commit
	// Status forces a response status for a path, e.g. "/repos/acme/tool/commits".
	Status map[string]int
	// StatusOnPage forces a response status for a path on a specific page, keyed by "path?page=N".
	StatusOnPage map[string]int

	mu       sync.Mutex
	requests []*http.Request
}

// NewFakeGitHub starts a fake API authenticated as login. The server is closed with the test.
func NewFakeGitHub(t *testing.T, login string) *FakeGitHub {
	t.Helper()
	f := &FakeGitHub{
		Login:        login,
		OrgRepos:     map[string][]Repo{},
		Commits:      map[string][]Commit{},
		Pulls:        map[string][]Pull{},
		PullCommits:  map[string][]Commit{},
		Status:       map[string]int{},
		StatusOnPage: map[string]int{},
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// Requests returns every request received so far.
func (f *FakeGitHub) Requests() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Request(nil), f.requests...)
}

// Paths returns the path of every request received so far.
func (f *FakeGitHub) Paths() []string {
	var paths []string
	for _, r := range f.Requests() {
		paths = append(paths, r.URL.Path)
	}
	return paths
}

// CountPath returns how many requests hit path.
func (f *FakeGitHub) CountPath(path string) int {
	n := 0
	for _, p := range f.Paths() {
		if p == path {
			n++
		}
	}
	return n
}

func (f *FakeGitHub) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Clone(r.Context()))
	f.mu.Unlock()

	if r.Header.Get("Authorization") == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Requires authentication"})
		return
	}

	page, perPage := pagination(r)
	if status, ok := f.StatusOnPage[fmt.Sprintf("%s?page=%d", r.URL.Path, page)]; ok {
		writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
		return
	}
	if status, ok := f.Status[r.URL.Path]; ok {
		writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case r.URL.Path == "/user":
		writeJSON(w, http.StatusOK, map[string]any{"login": f.Login})
	case r.URL.Path == "/user/repos":
		writeJSON(w, http.StatusOK, paged(repoPayloads(f.Owned), page, perPage))
	case r.URL.Path == "/user/orgs":
		orgs := make([]map[string]any, 0, len(f.Orgs))
		for _, o := range f.Orgs {
			orgs = append(orgs, map[string]any{"login": o})
		}
		writeJSON(w, http.StatusOK, orgs)
	case len(parts) == 3 && parts[0] == "orgs" && parts[2] == "repos":
		writeJSON(w, http.StatusOK, paged(repoPayloads(f.OrgRepos[parts[1]]), page, perPage))
	case len(parts) == 4 && parts[0] == "repos" && parts[3] == "commits":
		commits := f.Commits[parts[1]+"/"+parts[2]]
		if r.URL.Query().Get("author") != f.Login {
			commits = nil
		}
		writeJSON(w, http.StatusOK, paged(commitPayloads(commits), page, perPage))
	case len(parts) == 4 && parts[0] == "repos" && parts[3] == "pulls":
		writeJSON(w, http.StatusOK, paged(pullPayloads(f.Pulls[parts[1]+"/"+parts[2]]), page, perPage))
	case len(parts) == 6 && parts[0] == "repos" && parts[3] == "pulls" && parts[5] == "commits":
		key := fmt.Sprintf("%s/%s#%s", parts[1], parts[2], parts[4])
		writeJSON(w, http.StatusOK, commitPayloads(f.PullCommits[key]))
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
	}
}

func pagination(r *http.Request) (page, perPage int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ = strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 30
	}
	return page, perPage
}

func paged[T any](items []T, page, perPage int) []T {
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := min(start+perPage, len(items))
	return items[start:end]
}

func repoPayloads(repos []Repo) []map[string]any {
	out := make([]map[string]any, 0, len(repos))
	for _, r := range repos {
		p := map[string]any{
			"name":      r.Name,
			"full_name": r.Owner + "/" + r.Name,
			"owner":     map[string]any{"login": r.Owner},
		}
		if r.Permissions != nil {
			p["permissions"] = r.Permissions
		}
		out = append(out, p)
	}
	return out
}

func commitPayloads(commits []Commit) []map[string]any {
	out := make([]map[string]any, 0, len(commits))
	for i, c := range commits {
		out = append(out, map[string]any{
			"sha": fmt.Sprintf("%040d", i),
			"commit": map[string]any{
				"author":    signature(c.AuthorEmail, c.NullAuthor),
				"committer": signature(c.CommitterEmail, c.NullCommitter),
			},
		})
	}
	return out
}

func signature(email *string, null bool) any {
	if null {
		return nil
	}
	s := map[string]any{"name": "someone"}
	if email != nil {
		s["email"] = *email
	}
	return s
}

func pullPayloads(pulls []Pull) []map[string]any {
	out := make([]map[string]any, 0, len(pulls))
	for _, p := range pulls {
		out = append(out, map[string]any{
			"number": p.Number,
			"user":   map[string]any{"login": p.Login},
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

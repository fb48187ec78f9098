package report

import (
	"fmt"
	"io"
	"strings"
)

var rule = strings.Repeat("=", 60)

// Reporter writes the line-oriented progress and summary output.
type Reporter struct {
	w io.Writer
}

// NewReporter returns a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

// Authenticated announces the identity.
func (r *Reporter) Authenticated(login string) {
	r.printf("Authenticated as: %s\n", login)
}

// FetchingOwned announces the owned-repository listing.
func (r *Reporter) FetchingOwned() {
	r.printf("\nFetching your repositories...\n")
}

// OwnedFound reports the owned-repository count.
func (r *Reporter) OwnedFound(n int) {
	r.printf("Found %d repositories owned by you\n", n)
}

// FetchingOrganization announces the organization-repository listing.
func (r *Reporter) FetchingOrganization() {
	r.printf("\nFetching organization repositories...\n")
}

// OrganizationFound reports the organization-repository count after push filtering.
func (r *Reporter) OrganizationFound(n int) {
	r.printf("Found %d organization repositories where you have push access\n", n)
}

// Analyzing announces the scan of n repositories.
func (r *Reporter) Analyzing(n int) {
	r.printf("\nAnalyzing contributions across %d repositories...\n", n)
}

// Checking reports progress on the i-th of n repositories.
func (r *Reporter) Checking(i, n int, repository string) {
	r.printf("[%d/%d] Checking %s...\n", i, n, repository)
}

// Summary renders the sorted global list followed by the per-repository breakdown.
func (r *Reporter) Summary(result *Result) {
	r.printf("\n%s\n", rule)
	r.printf("Found %d unique email addresses across %d repositories:\n", result.Emails.Len(), len(result.Repositories))
	r.printf("%s\n", rule)
	for _, email := range result.Emails.Sorted() {
		r.printf("%s\n", email)
	}

	r.printf("\nRepository breakdown:\n")
	for _, repo := range result.Repositories {
		r.printf("\n%s:\n", repo.Repository)
		for _, email := range repo.Emails.Sorted() {
			r.printf("  - %s\n", email)
		}
	}
}

// MissingToken prompts for the token flag.
func (r *Reporter) MissingToken() {
	r.printf("Please provide a token using the --token argument.\n")
}

// Cancelled reports a user interrupt.
func (r *Reporter) Cancelled() {
	r.printf("\nOperation cancelled by user\n")
}

// Error reports a fatal error.
func (r *Reporter) Error(err error) {
	r.printf("Error: %v\n", err)
}

package github

import (
	"github.com/google/go-github/v84/github"
	"github.com/pkg/errors"
)

// IsResponseError reports whether err carries an HTTP response from the API.
// Transport failures and context cancellation are not response errors.
func IsResponseError(err error) bool {
	var (
		errResponse *github.ErrorResponse
		rateLimit   *github.RateLimitError
		abuse       *github.AbuseRateLimitError
		accepted    *github.AcceptedError
	)
	return errors.As(err, &errResponse) ||
		errors.As(err, &rateLimit) ||
		errors.As(err, &abuse) ||
		errors.As(err, &accepted)
}

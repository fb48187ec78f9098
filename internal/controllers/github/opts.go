package github

import (
	"log/slog"
	"net/http"
)

// WithToken sets the personal access token sent as a bearer credential.
func WithToken(token string) Option {
	return func(g *Controller) {
		g.token = token
	}
}

// WithBaseURL overrides the REST API base URL, e.g. for GitHub Enterprise Server.
func WithBaseURL(baseURL string) Option {
	return func(g *Controller) {
		g.baseURL = baseURL
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(g *Controller) {
		g.userAgent = userAgent
	}
}

// WithPageSize sets the per_page value of paginated listings.
func WithPageSize(size int) Option {
	return func(g *Controller) {
		g.pageSize = size
	}
}

// WithLogger sets a custom logger for the Controller instance to use for logging operations.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Controller) {
		g.logger = logger
	}
}

// WithTransport sets the innermost transport. Defaults to http.DefaultTransport.
func WithTransport(transport http.RoundTripper) Option {
	return func(g *Controller) {
		g.transport = transport
	}
}

package handler

import (
	"io"
	"log/slog"
)

// WithLogger sets the logger instance for the handler.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithToken sets the GitHub token used for authentication in the handler.
func WithToken(token string) Option {
	return func(h *Handler) {
		h.token = token
	}
}

// WithBaseURL sets the GitHub REST API base URL.
func WithBaseURL(baseURL string) Option {
	return func(h *Handler) {
		h.baseURL = baseURL
	}
}

// WithUserAgent sets the User-Agent sent to GitHub.
func WithUserAgent(userAgent string) Option {
	return func(h *Handler) {
		h.userAgent = userAgent
	}
}

// WithPageSize sets the page size of paginated listings.
func WithPageSize(size int) Option {
	return func(h *Handler) {
		h.pageSize = size
	}
}

// WithOutput sets where progress and the summary are printed.
func WithOutput(w io.Writer) Option {
	return func(h *Handler) {
		h.output = w
	}
}

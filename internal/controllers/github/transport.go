package github

import (
	"log/slog"
	"net/http"
)

type loggingRoundTripper struct {
	logger *slog.Logger
	next   http.RoundTripper
}

// RoundTrip logs the request and response.
func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	l.logger.Log(req.Context(), slog.Level(-8), "sending request", slog.String("method", req.Method), slog.String("url", req.URL.String()))
	resp, err := l.next.RoundTrip(req)
	if err != nil {
		l.logger.Log(req.Context(), slog.Level(-8), "request failed", slog.Any("error", err))
		return resp, err
	}
	l.logger.Log(req.Context(), slog.Level(-8), "received response", slog.String("status", resp.Status))
	return resp, nil
}

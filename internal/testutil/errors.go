package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/google/go-github/v84/github"
)

// ResponseError builds the error go-github returns for a non-2xx response.
func ResponseError(status int) error {
	return &github.ErrorResponse{
		Response: &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
			Request:    httptest.NewRequest(http.MethodGet, "https://api.github.com/", nil),
		},
		Message: http.StatusText(status),
	}
}

package helpers_test

import (
	"testing"

	"github.com/isometry/gh-email-finder/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	testCases := []struct {
		Name  string
		Input any
	}{
		{
			Name:  "nil",
			Input: nil,
		},
		{
			Name:  "string",
			Input: "octocat",
		},
		{
			Name:  "int",
			Input: 100,
		},
		{
			Name:  "bool",
			Input: true,
		},
		{
			Name:  "map",
			Input: map[string]bool{"push": true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			if tc.Input == nil {
				assert.Nil(t, helpers.Ptr(tc.Input))
			} else {
				assert.Equal(t, &tc.Input, helpers.Ptr(tc.Input))
			}
		})
	}
}

func TestOnceAMinute(t *testing.T) {
	calls := 0
	for range 3 {
		helpers.OnceAMinute.Do(func() { calls++ })
	}
	assert.Equal(t, 1, calls)
}

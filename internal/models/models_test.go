package models_test

import (
	"testing"

	"github.com/isometry/gh-email-finder/internal/helpers"
	"github.com/isometry/gh-email-finder/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestEmailSetSorted(t *testing.T) {
	s := models.NewEmailSet("b@x.com", "a@x.com", "b@x.com")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, s.Sorted())
	assert.True(t, s.Contains("a@x.com"))
	assert.False(t, s.Contains("c@x.com"))
}

func TestEmailSetMerge(t *testing.T) {
	s := models.NewEmailSet("a@x.com")
	s.Merge(models.NewEmailSet("a@x.com", "c@x.com"))
	assert.Equal(t, []string{"a@x.com", "c@x.com"}, s.Sorted())
}

func TestToRepository(t *testing.T) {
	owner := &struct {
		Login *string `json:"login,omitempty"`
	}{Login: helpers.Ptr("acme")}

	testCases := []struct {
		Name     string
		Input    models.CommonRepository
		Expected models.Repository
	}{
		{
			Name:     "push_granted",
			Input:    models.CommonRepository{Name: helpers.Ptr("tool"), Owner: owner, Permissions: map[string]bool{"push": true}},
			Expected: models.Repository{Owner: "acme", Name: "tool", Push: true},
		},
		{
			Name:     "push_denied",
			Input:    models.CommonRepository{Name: helpers.Ptr("tool"), Owner: owner, Permissions: map[string]bool{"push": false, "pull": true}},
			Expected: models.Repository{Owner: "acme", Name: "tool"},
		},
		{
			Name:     "missing_permissions",
			Input:    models.CommonRepository{Name: helpers.Ptr("tool"), Owner: owner},
			Expected: models.Repository{Owner: "acme", Name: "tool"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			repo := tc.Input.ToRepository()
			assert.Equal(t, tc.Expected, repo)
			assert.Equal(t, "acme/tool", repo.Key())
		})
	}
}

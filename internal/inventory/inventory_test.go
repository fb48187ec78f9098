package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/isometry/gh-email-finder/internal/inventory"
	"github.com/isometry/gh-email-finder/internal/models"
	"github.com/isometry/gh-email-finder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	owned      [][]models.Repository
	ownedErr   map[int]error
	orgs       []string
	orgsErr    error
	orgPages   map[string][][]models.Repository
	orgErr     map[string]error
	ownedCalls int
	orgCalls   map[string]int
}

func (f *fakeLister) ListOwnedRepositories(_ context.Context, page int) ([]models.Repository, error) {
	f.ownedCalls++
	if err := f.ownedErr[page]; err != nil {
		return nil, err
	}
	if page > len(f.owned) {
		return nil, nil
	}
	return f.owned[page-1], nil
}

func (f *fakeLister) ListOrganizations(context.Context) ([]string, error) {
	return f.orgs, f.orgsErr
}

func (f *fakeLister) ListOrganizationRepositories(_ context.Context, org string, page int) ([]models.Repository, error) {
	if f.orgCalls == nil {
		f.orgCalls = map[string]int{}
	}
	f.orgCalls[org]++
	if err := f.orgErr[fmt.Sprintf("%s:%d", org, page)]; err != nil {
		return nil, err
	}
	pages := f.orgPages[org]
	if page > len(pages) {
		return nil, nil
	}
	return pages[page-1], nil
}

func repos(owner string, push bool, names ...string) []models.Repository {
	out := make([]models.Repository, 0, len(names))
	for _, n := range names {
		out = append(out, models.Repository{Owner: owner, Name: n, Push: push})
	}
	return out
}

func TestListOwnedPaginatesUntilEmptyPage(t *testing.T) {
	lister := &fakeLister{owned: [][]models.Repository{
		repos("alice", false, "a", "b"),
		repos("alice", false, "c"),
	}}
	owned, err := inventory.NewEnumerator(lister).ListOwned(context.Background())
	require.NoError(t, err)

	assert.Equal(t, repos("alice", false, "a", "b", "c"), owned)
	// two non-empty pages plus the terminating empty page
	assert.Equal(t, 3, lister.ownedCalls)
}

func TestListOwnedAbortsOnAnyError(t *testing.T) {
	testCases := []struct {
		Name string
		Err  error
	}{
		{Name: "http_error", Err: testutil.ResponseError(http.StatusInternalServerError)},
		{Name: "transport_error", Err: errors.New("connection refused")},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			lister := &fakeLister{
				owned:    [][]models.Repository{repos("alice", false, "a"), repos("alice", false, "b")},
				ownedErr: map[int]error{2: tc.Err},
			}
			owned, err := inventory.NewEnumerator(lister).ListOwned(context.Background())
			assert.ErrorIs(t, err, tc.Err)
			assert.Nil(t, owned)
		})
	}
}

func TestListOrganizationFiltersPushAccess(t *testing.T) {
	lister := &fakeLister{
		orgs: []string{"acme", "globex"},
		orgPages: map[string][][]models.Repository{
			"acme": {
				append(repos("acme", true, "tool"), repos("acme", false, "docs")...),
				repos("acme", true, "api"),
			},
			"globex": {repos("globex", false, "secret")},
		},
	}
	org, err := inventory.NewEnumerator(lister).ListOrganization(context.Background())
	require.NoError(t, err)

	assert.Equal(t, repos("acme", true, "tool", "api"), org)
	assert.Equal(t, 3, lister.orgCalls["acme"])
	assert.Equal(t, 2, lister.orgCalls["globex"])
}

func TestListOrganizationToleratesHTTPErrors(t *testing.T) {
	lister := &fakeLister{
		orgs: []string{"acme", "globex"},
		orgPages: map[string][][]models.Repository{
			"acme":   {repos("acme", true, "tool"), repos("acme", true, "lost")},
			"globex": {repos("globex", true, "app")},
		},
		orgErr: map[string]error{"acme:2": testutil.ResponseError(http.StatusForbidden)},
	}
	org, err := inventory.NewEnumerator(lister).ListOrganization(context.Background())
	require.NoError(t, err)

	assert.Equal(t, append(repos("acme", true, "tool"), repos("globex", true, "app")...), org)
	assert.Equal(t, 2, lister.orgCalls["acme"])
}

func TestListOrganizationAbortsOnTransportError(t *testing.T) {
	transportErr := errors.New("connection reset by peer")
	lister := &fakeLister{
		orgs:     []string{"acme"},
		orgPages: map[string][][]models.Repository{"acme": {repos("acme", true, "tool")}},
		orgErr:   map[string]error{"acme:1": transportErr},
	}
	_, err := inventory.NewEnumerator(lister).ListOrganization(context.Background())
	assert.ErrorIs(t, err, transportErr)
}

func TestListOrganizationMembershipFailureIsFatal(t *testing.T) {
	orgsErr := testutil.ResponseError(http.StatusUnauthorized)
	_, err := inventory.NewEnumerator(&fakeLister{orgsErr: orgsErr}).ListOrganization(context.Background())
	assert.ErrorIs(t, err, orgsErr)
}

func TestInventoryAllKeepsOrderAndDuplicates(t *testing.T) {
	inv := inventory.Inventory{
		Owned:        repos("alice", false, "proj", "shared"),
		Organization: []models.Repository{{Owner: "alice", Name: "shared", Push: true}},
	}
	all := inv.All()
	require.Len(t, all, 3)
	assert.Equal(t, "alice/proj", all[0].Key())
	assert.Equal(t, "alice/shared", all[1].Key())
	assert.Equal(t, "alice/shared", all[2].Key())
}

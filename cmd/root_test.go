package cmd_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/isometry/gh-email-finder/cmd"
	"github.com/isometry/gh-email-finder/internal/config"
	"github.com/isometry/gh-email-finder/internal/helpers"
	"github.com/isometry/gh-email-finder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, ctx context.Context, args ...string) (int, string) {
	t.Helper()
	config.GitHub.APIURL = ""
	config.GitHub.UserAgent = ""

	var out bytes.Buffer
	root := cmd.New()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(ctx)
	code := cmd.ExitCode(ctx, &out, err)
	return code, out.String()
}

func TestMissingToken(t *testing.T) {
	fake := testutil.NewFakeGitHub(t, "alice")
	t.Setenv("GITHUB_API_URL", fake.URL)
	t.Setenv("TOKEN", "from-env")

	code, out := execute(t, context.Background())

	assert.Equal(t, 1, code)
	assert.Equal(t, "Please provide a token using the --token argument.\n", out)
	assert.Empty(t, fake.Requests())
}

func TestRun(t *testing.T) {
	fake := testutil.NewFakeGitHub(t, "alice")
	fake.Owned = []testutil.Repo{{Owner: "alice", Name: "proj"}}
	fake.Commits["alice/proj"] = []testutil.Commit{
		{AuthorEmail: helpers.Ptr("alice@x.com"), CommitterEmail: helpers.Ptr("alice@x.com")},
	}
	t.Setenv("GITHUB_API_URL", fake.URL)

	code, out := execute(t, context.Background(), "--token", "t0ken")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Authenticated as: alice\n")
	assert.Contains(t, out, "Found 1 unique email addresses across 1 repositories:\n")
	assert.Contains(t, out, "\nalice/proj:\n  - alice@x.com\n")
	require.NotEmpty(t, fake.Requests())
	assert.Equal(t, "Bearer t0ken", fake.Requests()[0].Header.Get("Authorization"))
}

func TestRunFatalError(t *testing.T) {
	fake := testutil.NewFakeGitHub(t, "alice")
	fake.Status["/user/repos"] = http.StatusInternalServerError
	t.Setenv("GITHUB_API_URL", fake.URL)

	code, out := execute(t, context.Background(), "-t", "t0ken")

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Authenticated as: alice\n")
	assert.Contains(t, out, "Error: ")
}

func TestRunCancelled(t *testing.T) {
	fake := testutil.NewFakeGitHub(t, "alice")
	t.Setenv("GITHUB_API_URL", fake.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code, out := execute(t, ctx, "--token", "t0ken")

	assert.Equal(t, 0, code)
	assert.Equal(t, "\nOperation cancelled by user\n", out)
}

func TestConfigFile(t *testing.T) {
	fake := testutil.NewFakeGitHub(t, "alice")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("github:\n  apiURL: "+fake.URL+"\n  userAgent: custom-agent\n"), 0o600))
	t.Setenv(config.FileEnv, path)

	var out bytes.Buffer
	root := cmd.New()
	root.SetArgs([]string{"--token", "t0ken"})
	root.SetOut(&out)
	require.NoError(t, root.Execute())

	require.NotEmpty(t, fake.Requests())
	assert.Equal(t, "custom-agent", fake.Requests()[0].Header.Get("User-Agent"))
}

func TestEnvironmentNamesArePrefixed(t *testing.T) {
	testCases := []struct {
		Name     string
		Env      map[string]string
		Expected string
	}{
		{Name: "unrelated", Env: map[string]string{"USER_AGENT": "intruder"}, Expected: "GitHub-Email-Finder"},
		{Name: "prefixed", Env: map[string]string{"GH_EMAIL_FINDER_USER_AGENT": "custom-agent"}, Expected: "custom-agent"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			fake := testutil.NewFakeGitHub(t, "alice")
			t.Setenv("GITHUB_API_URL", fake.URL)
			for k, v := range tc.Env {
				t.Setenv(k, v)
			}

			code, _ := execute(t, context.Background(), "--token", "t0ken")

			assert.Equal(t, 0, code)
			require.NotEmpty(t, fake.Requests())
			assert.Equal(t, tc.Expected, fake.Requests()[0].Header.Get("User-Agent"))
		})
	}
}

func TestExitCode(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	testCases := []struct {
		Name     string
		Ctx      context.Context
		Err      error
		Expected int
	}{
		{Name: "success", Ctx: context.Background(), Expected: 0},
		{Name: "failure", Ctx: context.Background(), Err: errors.New("boom"), Expected: 1},
		{Name: "interrupted", Ctx: cancelled, Err: context.Canceled, Expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, tc.Expected, cmd.ExitCode(tc.Ctx, &out, tc.Err))
		})
	}
}

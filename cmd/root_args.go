package cmd

import (
	"github.com/isometry/gh-email-finder/internal/config"
	"github.com/isometry/gh-email-finder/internal/helpers"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.GitHub.Token: {
		Name:        "token",
		Description: "GitHub personal access token",
		Short:       helpers.Ptr("t"),
		NoEnv:       true,
	},
	&config.GitHub.APIURL: {
		Name:        "github-api-url",
		Description: "The GitHub REST API base URL",
		Env:         helpers.Ptr("GITHUB_API_URL"),
	},
	&config.GitHub.UserAgent: {
		Name:        "user-agent",
		Description: "The User-Agent sent with every API request",
		Hidden:      true,
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       helpers.Ptr("V"),
	},
}

var envMapCount = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       helpers.Ptr("v"),
	},
}

// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"go.yaml.in/yaml/v3"
)

// FileEnv names the environment variable holding the optional configuration file path.
const FileEnv = "GH_EMAIL_FINDER_CONFIG"

var (
	// Global is a struct that contains the global configuration.
	Global global
	// GitHub is a struct that contains the configuration for the GitHub API.
	GitHub github
)

type global struct {
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
}

type github struct {
	// Token is the personal access token. It is only ever set from the command line.
	Token string `yaml:"-"`
	// APIURL is the REST API base URL.
	APIURL string `yaml:"apiURL,omitempty" default:"https://api.github.com/"`
	// UserAgent is sent with every request.
	UserAgent string `yaml:"userAgent,omitempty" default:"GitHub-Email-Finder"`
	// PageSize is the number of entries requested per page on paginated listings.
	PageSize int `yaml:"pageSize,omitempty" default:"100"`
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&GitHub),
	)
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global global `yaml:"global,omitempty"`
		GitHub github `yaml:"github,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	GitHub = a.GitHub

	return nil
}

// File: strata/discovery.go
package strata

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoveryOptions configures how an explicit config file override is
// discovered before the layer catalog runs.
type DiscoveryOptions struct {
	// CLIFlag to check (e.g., "--config").
	CLIFlag string

	// Environment variable to check for an explicit path.
	EnvVar string
}

// DefaultDiscoveryOptions returns sensible defaults for an application.
func DefaultDiscoveryOptions(appName string) DiscoveryOptions {
	envVar := "CONFIG"
	if appName != "" {
		envVar = strings.ToUpper(strings.ReplaceAll(appName, "-", "_")) + "_CONFIG"
	}
	return DiscoveryOptions{
		CLIFlag: "--config",
		EnvVar:  envVar,
	}
}

// DiscoverConfigFile looks for an explicit config file path, CLI flag
// first, then the environment variable. It returns "" when neither names
// one; running with the standard search paths is not an error.
func DiscoverConfigFile(args []string, opts DiscoveryOptions) string {
	if opts.CLIFlag != "" {
		for i, arg := range args {
			if arg == opts.CLIFlag && i+1 < len(args) {
				return args[i+1]
			}
			if strings.HasPrefix(arg, opts.CLIFlag+"=") {
				return strings.TrimPrefix(arg, opts.CLIFlag+"=")
			}
		}
	}

	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path
		}
	}

	return ""
}

// defaultGlobalDir computes the global config directory for an app:
// $XDG_CONFIG_HOME/<app> when set, else <home>/.config/<app>. An empty
// app name falls back to "app".
func defaultGlobalDir(appName string) string {
	if appName == "" {
		appName = "app"
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", appName)
}

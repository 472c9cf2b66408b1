// File: strata/discovery_test.go
package strata

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscoverConfigFile(t *testing.T) {
	opts := DefaultDiscoveryOptions("myapp")

	t.Run("CLIFlagSpaceForm", func(t *testing.T) {
		path := DiscoverConfigFile([]string{"--verbose", "--config", "/etc/myapp.toml"}, opts)
		assert.Equal(t, "/etc/myapp.toml", path)
	})

	t.Run("CLIFlagEqualsForm", func(t *testing.T) {
		path := DiscoverConfigFile([]string{"--config=/tmp/o.yaml"}, opts)
		assert.Equal(t, "/tmp/o.yaml", path)
	})

	t.Run("CLIFlagBeatsEnvVar", func(t *testing.T) {
		t.Setenv("MYAPP_CONFIG", "/from/env.toml")
		path := DiscoverConfigFile([]string{"--config", "/from/cli.toml"}, opts)
		assert.Equal(t, "/from/cli.toml", path)
	})

	t.Run("EnvVarFallback", func(t *testing.T) {
		t.Setenv("MYAPP_CONFIG", "/from/env.toml")
		path := DiscoverConfigFile(nil, opts)
		assert.Equal(t, "/from/env.toml", path)
	})

	t.Run("NothingFound", func(t *testing.T) {
		assert.Equal(t, "", DiscoverConfigFile([]string{"--other", "x"}, opts))
	})

	t.Run("DashedAppName", func(t *testing.T) {
		d := DefaultDiscoveryOptions("my-app")
		assert.Equal(t, "MY_APP_CONFIG", d.EnvVar)
	})
}

func TestDefaultGlobalDir(t *testing.T) {
	t.Run("XDGConfigHome", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		assert.Equal(t, filepath.Join("/xdg", "myapp"), defaultGlobalDir("myapp"))
	})

	t.Run("HomeFallback", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", "/home/u")
		assert.Equal(t, filepath.Join("/home/u", ".config", "myapp"), defaultGlobalDir("myapp"))
	})

	t.Run("EmptyAppNameUsesApp", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		assert.Equal(t, filepath.Join("/xdg", "app"), defaultGlobalDir(""))
	})
}

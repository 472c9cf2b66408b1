// File: strata/builder_test.go
package strata_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataconf/strata"
)

func TestBuilder(t *testing.T) {
	t.Run("OptionsCarryEverySetting", func(t *testing.T) {
		props := map[string]string{"app.x": "1"}

		opts := strata.NewBuilder().
			WithAppName("myapp").
			WithArgs([]string{"--port", "1"}).
			WithEnvPrefix("MYAPP_").
			WithProperties("app.", props).
			WithLocalDir("/local").
			WithGlobalDir("/global").
			WithConfigFile("/override.toml").
			WithFailFast().
			WithFailOnMissingFile().
			WithStrictCoercion().
			WithLenientParsing().
			WithIgnoreUnknownKeys().
			Options()

		assert.Equal(t, "myapp", opts.AppName)
		assert.Equal(t, []string{"--port", "1"}, opts.Args)
		assert.Equal(t, "MYAPP_", opts.EnvPrefix)
		assert.Equal(t, "app.", opts.PropertyPrefix)
		assert.Equal(t, props, opts.Properties)
		assert.Equal(t, "/local", opts.LocalDir)
		assert.Equal(t, "/global", opts.GlobalDir)
		assert.Equal(t, "/override.toml", opts.ConfigFile)
		assert.True(t, opts.FailFast)
		assert.True(t, opts.FailOnMissingFile)
		assert.True(t, opts.StrictCoercion)
		assert.True(t, opts.LenientParsing)
		assert.True(t, opts.IgnoreUnknownKeys)
	})

	t.Run("FileDiscoveryFillsConfigFile", func(t *testing.T) {
		opts := strata.NewBuilder().
			WithAppName("myapp").
			WithArgs([]string{"--config", "/found.toml"}).
			WithFileDiscovery(strata.DefaultDiscoveryOptions("myapp")).
			Options()

		assert.Equal(t, "/found.toml", opts.ConfigFile)
	})

	t.Run("ExplicitConfigFileWinsOverDiscovery", func(t *testing.T) {
		opts := strata.NewBuilder().
			WithArgs([]string{"--config", "/found.toml"}).
			WithConfigFile("/explicit.toml").
			WithFileDiscovery(strata.DefaultDiscoveryOptions("myapp")).
			Options()

		assert.Equal(t, "/explicit.toml", opts.ConfigFile)
	})

	t.Run("ResolveWith", func(t *testing.T) {
		localDir := t.TempDir()
		require.NoError(t, os.WriteFile(
			filepath.Join(localDir, "config.toml"),
			[]byte("host = \"from-file\"\nport = 4000\n"), 0644))

		b := strata.NewBuilder().
			WithArgs([]string{"--port", "5000"}).
			WithLocalDir(localDir).
			WithGlobalDir(filepath.Join(t.TempDir(), "global"))

		schema := strata.Schema{Fields: []strata.Field{
			{Name: "host", Type: strata.TypeString, Required: true},
			{Name: "port", Type: strata.TypeInt, Required: true},
		}}

		res := strata.ResolveWith(b, schema, strata.StructFactory[serverConfig](b.Options()))
		require.True(t, res.OK(), "resolution failed: %v", res.Err())

		cfg := res.Value()
		assert.Equal(t, "from-file", cfg.Host)
		assert.Equal(t, 5000, cfg.Port)
	})
}

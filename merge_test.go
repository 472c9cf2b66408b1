// File: strata/merge_test.go
package strata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMergeLayers(t *testing.T) {
	t.Run("FirstLayerWins", func(t *testing.T) {
		results := []layerResult{
			found(LayerCommandLine, map[string]Value{"port": Int(9090)}),
			found(LayerEnvironment, map[string]Value{"port": Int(1234), "host": String("env-host")}),
			found(LayerLocalTOML, map[string]Value{"host": String("file-host"), "debug": Bool(true)}),
		}

		m := mergeLayers(results)

		v, ok := m.Value("port")
		require.True(t, ok)
		assert.True(t, v.Equal(Int(9090)))

		v, _ = m.Value("host")
		assert.True(t, v.Equal(String("env-host")))

		v, _ = m.Value("debug")
		assert.True(t, v.Equal(Bool(true)))

		src, _ := m.Source("port")
		assert.Equal(t, LayerCommandLine, src)
		src, _ = m.Source("host")
		assert.Equal(t, LayerEnvironment, src)
		src, _ = m.Source("debug")
		assert.Equal(t, LayerLocalTOML, src)
	})

	t.Run("AbsentAndErrorLayersExcluded", func(t *testing.T) {
		results := []layerResult{
			absent(LayerCommandLine),
			failed(LayerLocalTOML, assert.AnError),
			found(LayerEnvironment, map[string]Value{"a": Int(1)}),
		}

		m := mergeLayers(results)
		assert.Equal(t, []Layer{LayerEnvironment}, m.Loaded())
		assert.Len(t, m.Provenance(), 1)
	})

	t.Run("ProvenanceCoversEveryKey", func(t *testing.T) {
		results := []layerResult{
			found(LayerEnvironment, map[string]Value{"a": Int(1)}),
			found(LayerLocalJSON, map[string]Value{"nested": Map(map[string]Value{"b": Int(2)})}),
		}

		m := mergeLayers(results)
		for _, key := range m.Keys() {
			_, ok := m.Source(key)
			assert.True(t, ok, "key %q has no provenance", key)
		}
	})

	t.Run("HigherLayerLeafOverridesOneLeafOfTable", func(t *testing.T) {
		results := []layerResult{
			found(LayerEnvironment, map[string]Value{"db.host": String("env-host")}),
			found(LayerLocalJSON, map[string]Value{
				"db": Map(map[string]Value{"host": String("file-host"), "port": Int(5432)}),
			}),
		}

		m := mergeLayers(results)

		v, _ := m.Value("db.host")
		assert.True(t, v.Equal(String("env-host")))
		v, _ = m.Value("db.port")
		assert.True(t, v.Equal(Int(5432)))

		src, _ := m.Source("db.host")
		assert.Equal(t, LayerEnvironment, src)
		src, _ = m.Source("db.port")
		assert.Equal(t, LayerLocalJSON, src)

		// The reconstructed tree reflects per-leaf precedence.
		nested := m.NestedMap()
		db := nested["db"].(map[string]any)
		assert.Equal(t, "env-host", db["host"])
		assert.Equal(t, int64(5432), db["port"])
	})

	t.Run("Idempotence", func(t *testing.T) {
		build := func() Merged {
			return mergeLayers([]layerResult{
				found(LayerCommandLine, map[string]Value{"x": Int(1)}),
				found(LayerEnvironment, map[string]Value{"x": Int(2), "y": String("v")}),
			})
		}

		first, second := build(), build()
		assert.Equal(t, first.values, second.values)
		assert.Equal(t, first.provenance, second.provenance)
		assert.Equal(t, first.loaded, second.loaded)
	})
}

func TestMergePrecedenceProperty(t *testing.T) {
	keyGen := rapid.StringMatching(`[a-z]{1,8}`)
	rapid.Check(t, func(t *rapid.T) {
		high := rapid.MapOfN(keyGen, rapid.Int64(), 0, 8).Draw(t, "high")
		low := rapid.MapOfN(keyGen, rapid.Int64(), 0, 8).Draw(t, "low")

		highMapping := make(map[string]Value, len(high))
		for k, v := range high {
			highMapping[k] = Int(v)
		}
		lowMapping := make(map[string]Value, len(low))
		for k, v := range low {
			lowMapping[k] = Int(v)
		}

		m := mergeLayers([]layerResult{
			found(LayerCommandLine, highMapping),
			found(LayerEnvironment, lowMapping),
		})

		for k, v := range high {
			got, ok := m.Value(k)
			if !ok || !got.Equal(Int(v)) {
				t.Fatalf("high-precedence key %q lost: got %v", k, got)
			}
			if src, _ := m.Source(k); src != LayerCommandLine {
				t.Fatalf("provenance of %q = %v, want command-line", k, src)
			}
		}
		for k, v := range low {
			if _, shadowed := high[k]; shadowed {
				continue
			}
			got, ok := m.Value(k)
			if !ok || !got.Equal(Int(v)) {
				t.Fatalf("low-precedence key %q missing: got %v", k, got)
			}
			if src, _ := m.Source(k); src != LayerEnvironment {
				t.Fatalf("provenance of %q = %v, want environment", k, src)
			}
		}
	})
}

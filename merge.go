// File: strata/merge.go
package strata

import "sort"

// Merged is the outcome of combining every successfully-loaded layer: one
// mapping of dotted paths to loose values, a parallel provenance mapping
// recording which layer won each path, and the list of layers that loaded.
// It is built once per resolution run and never mutated afterwards.
type Merged struct {
	values     map[string]Value
	provenance map[string]Layer
	loaded     []Layer
}

// mergeLayers combines per-layer mappings in ascending priority order; the
// first layer to define a path wins it and later layers never override.
// Nested maps are expanded so each interior node and leaf contends at its
// own dotted path, letting a higher-precedence scalar override one leaf of
// a lower-precedence table without discarding its siblings. Absent and
// failed layers contribute nothing.
func mergeLayers(results []layerResult) Merged {
	m := Merged{
		values:     make(map[string]Value),
		provenance: make(map[string]Layer),
	}

	for _, r := range results {
		if r.status != statusFound {
			continue
		}
		m.loaded = append(m.loaded, r.layer)
		for key, v := range r.mapping {
			m.set(key, v, r.layer)
		}
	}

	return m
}

func (m *Merged) set(path string, v Value, l Layer) {
	if _, exists := m.values[path]; !exists {
		m.values[path] = v
		m.provenance[path] = l
	}
	// Recurse even when this node lost: a lower-precedence table may still
	// win leaves the higher layer never defined.
	if v.kind == KindMap {
		for k, child := range v.m {
			m.set(path+"."+k, child, l)
		}
	}
}

// Value returns the merged value for a dotted path.
func (m Merged) Value(path string) (Value, bool) {
	v, ok := m.values[path]
	return v, ok
}

// Source returns the layer that supplied a dotted path.
func (m Merged) Source(path string) (Layer, bool) {
	l, ok := m.provenance[path]
	return l, ok
}

// Keys returns every merged path in sorted order.
func (m Merged) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Loaded returns the layers that successfully loaded, highest precedence
// first.
func (m Merged) Loaded() []Layer {
	out := make([]Layer, len(m.loaded))
	copy(out, m.loaded)
	return out
}

// Provenance returns a copy of the path -> winning layer mapping.
func (m Merged) Provenance() map[string]Layer {
	out := make(map[string]Layer, len(m.provenance))
	for k, l := range m.provenance {
		out[k] = l
	}
	return out
}

// NestedMap reconstructs the merged state as a nested tree of plain Go
// values. Map nodes are written before their leaves so every leaf carries
// its winning layer's value even when the enclosing table came from a
// lower-precedence layer.
func (m Merged) NestedMap() map[string]any {
	nested := make(map[string]any)
	for _, path := range m.Keys() {
		setNestedValue(nested, path, m.values[path].Interface())
	}
	return nested
}

// File: strata/inspect.go
package strata

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Explain writes a key -> value -> source report of the merged state, one
// leaf per line in sorted key order. Paths listed in sensitive render as a
// fixed mask. Interior map nodes are omitted; their leaves tell the story.
func (m Merged) Explain(w io.Writer, sensitive ...string) error {
	masked := make(map[string]bool, len(sensitive))
	for _, path := range sensitive {
		masked[path] = true
	}

	for _, key := range m.Keys() {
		v := m.values[key]
		if v.kind == KindMap && len(v.m) > 0 {
			continue
		}
		display := v.String()
		if masked[key] {
			display = secretMask
		}
		if _, err := fmt.Fprintf(w, "%s = %s  (%s)\n", key, display, m.provenance[key]); err != nil {
			return err
		}
	}
	return nil
}

// DumpTOML encodes the merged state as a TOML document. Null placeholders
// from the defaults layer are omitted; they mark absence, not values.
func (m Merged) DumpTOML(w io.Writer) error {
	nested := make(map[string]any)
	for _, path := range m.Keys() {
		v := m.values[path]
		if v.IsNull() {
			continue
		}
		setNestedValue(nested, path, v.Interface())
	}
	scrubNulls(nested)
	return toml.NewEncoder(w).Encode(nested)
}

// scrubNulls removes nil entries nested inside document values; TOML has
// no null and the encoder rejects them, in tables and arrays alike.
func scrubNulls(nested map[string]any) {
	for k, v := range nested {
		switch t := v.(type) {
		case nil:
			delete(nested, k)
		case map[string]any:
			scrubNulls(t)
		case []any:
			nested[k] = scrubList(t)
		}
	}
}

// scrubList drops nil elements and scrubs nested containers.
func scrubList(list []any) []any {
	out := make([]any, 0, len(list))
	for _, v := range list {
		switch t := v.(type) {
		case nil:
			continue
		case map[string]any:
			scrubNulls(t)
		case []any:
			v = scrubList(t)
		}
		out = append(out, v)
	}
	return out
}

// WriteResolved writes the merged state to a TOML file atomically, via a
// temporary file renamed into place.
func (m Merged) WriteResolved(path string) error {
	var buf bytes.Buffer
	if err := m.DumpTOML(&buf); err != nil {
		return fmt.Errorf("failed to marshal resolved config to TOML: %w", err)
	}
	return atomicWriteFile(path, buf.Bytes())
}

// atomicWriteFile performs an atomic file write.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

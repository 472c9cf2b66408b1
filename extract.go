// File: strata/extract.go
package strata

import (
	"fmt"
	"os"
	"strings"
)

// extractStatus reports the outcome of one layer extraction.
type extractStatus int

const (
	statusFound extractStatus = iota
	statusAbsent
	statusError
)

// layerResult is the outcome of extracting one layer: a flat-or-nested
// mapping of loose values on success, absence when the source does not
// apply, or an error when the source exists but cannot be read.
type layerResult struct {
	layer   Layer
	status  extractStatus
	mapping map[string]Value
	err     error
}

func found(l Layer, mapping map[string]Value) layerResult {
	return layerResult{layer: l, status: statusFound, mapping: mapping}
}

func absent(l Layer) layerResult {
	return layerResult{layer: l, status: statusAbsent}
}

func failed(l Layer, err error) layerResult {
	return layerResult{layer: l, status: statusError, err: err}
}

// extractArgs parses command-line tokens into a layer mapping. Keys are
// introduced by a "--" prefix in "--key value", "--key=value", or bare
// "--flag" form; a bare flag is boolean true. Unprefixed tokens are
// skipped. Values pass through scalar inference.
func extractArgs(args []string) layerResult {
	if len(args) == 0 {
		return absent(LayerCommandLine)
	}

	mapping := make(map[string]Value)
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			i++
			continue
		}

		argContent := strings.TrimPrefix(arg, "--")
		if argContent == "" {
			// Bare "--" separator.
			i++
			continue
		}

		var keyPath string
		var valueStr string

		if strings.Contains(argContent, "=") {
			parts := strings.SplitN(argContent, "=", 2)
			keyPath = parts[0]
			valueStr = parts[1]
			i++
		} else {
			keyPath = argContent
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				valueStr = "true"
				i++
			} else {
				valueStr = args[i+1]
				i += 2
			}
		}

		if keyPath == "" {
			continue
		}

		for _, segment := range strings.Split(keyPath, ".") {
			if !isValidKeySegment(segment) {
				return failed(LayerCommandLine,
					fmt.Errorf("%w: invalid key segment %q in %q", ErrCLIParse, segment, keyPath))
			}
		}

		mapping[keyPath] = Infer(valueStr)
	}

	return found(LayerCommandLine, mapping)
}

// extractEnv scans the environment for variables carrying the configured
// prefix. The layer is opt-in: without a prefix it is absent regardless of
// what the environment holds. Matching keys have the prefix stripped, are
// lowercased, and underscores become dots ("APP_DB_HOST" -> "db.host").
func extractEnv(prefix string, environ []string) layerResult {
	if prefix == "" {
		return absent(LayerEnvironment)
	}
	if environ == nil {
		environ = os.Environ()
	}

	mapping := make(map[string]Value)
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		key := strings.TrimPrefix(name, prefix)
		if key == "" {
			continue
		}
		key = strings.ReplaceAll(strings.ToLower(key), "_", ".")
		mapping[key] = Infer(value)
	}

	return found(LayerEnvironment, mapping)
}

// extractProperties scans a caller-supplied property table for keys
// carrying the configured prefix. Opt-in like the environment layer. The
// prefix is stripped with no case change ("app.db.host" keeps its form).
func extractProperties(prefix string, props map[string]string) layerResult {
	if prefix == "" || len(props) == 0 {
		return absent(LayerProperties)
	}

	mapping := make(map[string]Value)
	for name, value := range props {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		key := strings.TrimPrefix(name, prefix)
		if key == "" {
			continue
		}
		mapping[key] = Infer(value)
	}

	return found(LayerProperties, mapping)
}

// extractDefaults derives the lowest-precedence layer from the schema
// itself: every optional field contributes a null placeholder entry, which
// the instance builder later replaces with the field default. Required
// fields contribute nothing so their absence stays observable.
func extractDefaults(schema Schema) layerResult {
	mapping := make(map[string]Value)
	addDefaultPlaceholders(schema, "", mapping)
	if len(mapping) == 0 {
		return absent(LayerDefaults)
	}
	return found(LayerDefaults, mapping)
}

func addDefaultPlaceholders(schema Schema, prefix string, mapping map[string]Value) {
	for _, f := range schema.Fields {
		path := joinPath(prefix, f.Name)
		if f.Type == TypeNested && f.Nested != nil {
			addDefaultPlaceholders(*f.Nested, path, mapping)
			continue
		}
		if !f.Required {
			mapping[path] = Null()
		}
	}
}

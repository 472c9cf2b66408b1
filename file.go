// File: strata/file.go
package strata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// fileRef names one file-backed layer: where the document lives and what
// format it is expected to be. A nil fsys means the host filesystem.
type fileRef struct {
	layer  Layer
	path   string
	fsys   fs.FS
	format string
}

// fileLayers maps the file-backed portion of the catalog to concrete
// locations. An explicit Options.ConfigFile replaces both local layers
// with one document whose format is detected from its extension.
func fileLayers(opts Options) []fileRef {
	localDir := opts.LocalDir
	if localDir == "" {
		localDir = "."
	}
	globalDir := opts.GlobalDir
	if globalDir == "" {
		globalDir = defaultGlobalDir(opts.AppName)
	}

	var refs []fileRef

	if opts.ConfigFile != "" {
		format := detectFileFormat(opts.ConfigFile)
		layer := LayerLocalJSON
		if format == "toml" {
			layer = LayerLocalTOML
		}
		refs = append(refs, fileRef{layer: layer, path: opts.ConfigFile, format: format})
	} else {
		refs = append(refs,
			fileRef{layer: LayerLocalJSON, path: filepath.Join(localDir, "config.json"), format: "json"},
			fileRef{layer: LayerLocalTOML, path: filepath.Join(localDir, "config.toml"), format: "toml"},
		)
	}

	refs = append(refs,
		fileRef{layer: LayerGlobalJSON, path: filepath.Join(globalDir, "config.json"), format: "json"},
		fileRef{layer: LayerGlobalTOML, path: filepath.Join(globalDir, "config.toml"), format: "toml"},
	)

	if opts.Packaged != nil {
		refs = append(refs,
			fileRef{layer: LayerPackagedJSON, path: "config.json", fsys: opts.Packaged, format: "json"},
			fileRef{layer: LayerPackagedTOML, path: "config.toml", fsys: opts.Packaged, format: "toml"},
			fileRef{layer: LayerPackagedDefaultJSON, path: "defaults.json", fsys: opts.Packaged, format: "json"},
			fileRef{layer: LayerPackagedDefaultTOML, path: "defaults.toml", fsys: opts.Packaged, format: "toml"},
		)
	}

	return refs
}

// extractFile reads and parses one file-backed layer. A missing file is
// Absent unless the caller promoted missing files to errors; a file that
// exists but fails to parse is always an error, never skipped silently.
func extractFile(ref fileRef, opts Options) layerResult {
	var data []byte
	var err error
	if ref.fsys != nil {
		data, err = fs.ReadFile(ref.fsys, ref.path)
	} else {
		data, err = os.ReadFile(ref.path)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if opts.FailOnMissingFile {
				return failed(ref.layer, fmt.Errorf("%w: %s", ErrNotFound, ref.path))
			}
			return absent(ref.layer)
		}
		return failed(ref.layer, fmt.Errorf("failed to read config file '%s': %w", ref.path, err))
	}

	doc, err := parseDocument(data, ref.format, opts.LenientParsing)
	if err != nil {
		return failed(ref.layer, fmt.Errorf("failed to parse config file '%s': %w", ref.path, err))
	}

	mapping := make(map[string]Value, len(doc))
	for key, raw := range doc {
		v, convErr := FromDecoded(raw)
		if convErr != nil {
			return failed(ref.layer, fmt.Errorf("failed to interpret config file '%s': %w", ref.path, convErr))
		}
		mapping[key] = v
	}

	return found(ref.layer, mapping)
}

// parseDocument decodes raw file content into a generic key/value tree.
// When lenient parsing is on, a document that fails its declared format is
// re-tried with content-based detection before being rejected.
func parseDocument(data []byte, format string, lenient bool) (map[string]any, error) {
	doc, err := parseAs(data, format)
	if err == nil {
		return doc, nil
	}
	if lenient {
		if detected := detectFormatFromContent(data); detected != "" && detected != format {
			if doc, retryErr := parseAs(data, detected); retryErr == nil {
				return doc, nil
			}
		}
	}
	return nil, err
}

func parseAs(data []byte, format string) (map[string]any, error) {
	doc := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&doc); err != nil {
			return nil, err
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case "":
		detected := detectFormatFromContent(data)
		if detected == "" {
			return nil, errors.New("unable to determine config format")
		}
		return parseAs(data, detected)
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	return doc, nil
}

// detectFileFormat determines format from file extension.
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing. JSON is
// tried first (strict), then YAML (a JSON superset), then TOML.
func detectFormatFromContent(data []byte) string {
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	return ""
}

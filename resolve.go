// File: strata/resolve.go
package strata

import (
	"io/fs"
	"time"
)

// Options are the caller-recognized tunables for one resolution run.
// The zero value resolves from the current directory, the global config
// directory for app name "app", and schema defaults only: the argument,
// environment, property, and packaged layers are all opt-in.
type Options struct {
	// AppName affects the global config directory (<home>/.config/<AppName>).
	AppName string

	// Args enables the command-line layer (typically os.Args[1:]).
	Args []string

	// EnvPrefix enables the environment layer; without it the layer
	// contributes nothing regardless of the actual environment.
	EnvPrefix string

	// Environ overrides the scanned environment; nil means os.Environ().
	Environ []string

	// PropertyPrefix enables the properties layer.
	PropertyPrefix string

	// Properties is the caller-supplied property table for that layer.
	Properties map[string]string

	// LocalDir overrides the local config search directory (default ".").
	LocalDir string

	// GlobalDir overrides the global config search directory.
	GlobalDir string

	// Packaged holds resources bundled with the program (config.json,
	// config.toml, defaults.json, defaults.toml), typically an embed.FS.
	Packaged fs.FS

	// ConfigFile is an explicit document replacing the local file layers;
	// usually produced by DiscoverConfigFile.
	ConfigFile string

	// FailOnMissingFile promotes a missing config file to a layer error.
	FailOnMissingFile bool

	// FailFast turns any accumulated error into a Failure instead of a
	// best-effort Success.
	FailFast bool

	// StrictCoercion makes a present-but-malformed value an error instead
	// of silently falling back to the field default.
	StrictCoercion bool

	// LenientParsing retries a file that fails its declared format with
	// content-based format detection.
	LenientParsing bool

	// IgnoreUnknownKeys lets Merged.Scan tolerate merged keys the target
	// struct does not declare.
	IgnoreUnknownKeys bool
}

// extractAll runs every layer extractor in catalog order. Extraction of
// distinct layers is independent and side-effect-free, so the strictly
// ordered loop is a correctness choice, not a constraint: results must be
// merged in fixed priority order no matter how they were gathered.
func extractAll(schema Schema, opts Options) []layerResult {
	files := make(map[Layer]fileRef, 8)
	for _, ref := range fileLayers(opts) {
		files[ref.layer] = ref
	}

	results := make([]layerResult, 0, layerCount)
	for _, layer := range Layers() {
		switch layer {
		case LayerCommandLine:
			results = append(results, extractArgs(opts.Args))
		case LayerProperties:
			results = append(results, extractProperties(opts.PropertyPrefix, opts.Properties))
		case LayerEnvironment:
			results = append(results, extractEnv(opts.EnvPrefix, opts.Environ))
		case LayerDefaults:
			results = append(results, extractDefaults(schema))
		default:
			ref, ok := files[layer]
			if !ok {
				results = append(results, absent(layer))
				continue
			}
			results = append(results, extractFile(ref, opts))
		}
	}
	return results
}

// layerErrors collects the per-layer failures in catalog order.
func layerErrors(results []layerResult) []ConfigError {
	var errs []ConfigError
	for _, r := range results {
		if r.status != statusError {
			continue
		}
		errs = append(errs, ConfigError{
			Layer:   r.layer,
			Kind:    ErrorLayerLoad,
			Message: "layer failed to load",
			Cause:   r.err,
		})
	}
	return errs
}

// ResolveLayers runs extraction and merging without a schema, returning
// the merged state plus any per-layer errors. This is the schemaless face
// of the engine, used for provenance inspection and dumping.
func ResolveLayers(opts Options) (Merged, []ConfigError) {
	results := extractAll(Schema{}, opts)
	return mergeLayers(results), layerErrors(results)
}

// Resolve runs the full pipeline: layer catalog, per-layer extraction,
// precedence merge, instance building through the factory, and the
// validator post-step. Per-layer errors never abort the run; they
// accumulate and force a Failure only under FailFast. A missing required
// field or a construction/validation failure forces Failure regardless.
func Resolve[T any](schema Schema, factory Factory[T], opts Options) Result[T] {
	results := extractAll(schema, opts)
	merged := mergeLayers(results)
	errs := layerErrors(results)

	values, buildErrs := buildValues(merged, schema, "", opts)
	errs = append(errs, buildErrs...)
	hardFailure := len(buildErrs) > 0

	var value T
	if !hardFailure {
		built, err := factory(values)
		if err != nil {
			errs = append(errs, ConfigError{
				Layer:   LayerDefaults,
				Kind:    ErrorConstruction,
				Message: "failed to construct configuration value",
				Cause:   err,
			})
			hardFailure = true
		} else {
			value = built
			if vErrs := runValidators(schema, values, ""); len(vErrs) > 0 {
				errs = append(errs, vErrs...)
				hardFailure = true
			}
		}
	}

	if hardFailure || (len(errs) > 0 && opts.FailFast) {
		return failure[T](errs)
	}

	meta := Metadata{
		Sources:    merged.Provenance(),
		Loaded:     merged.Loaded(),
		ResolvedAt: time.Now().UTC(),
	}
	return success(value, meta, errs)
}

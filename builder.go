// File: strata/builder.go
package strata

import (
	"io/fs"
	"os"
)

// Builder provides a fluent interface for assembling resolution options.
type Builder struct {
	opts      Options
	discovery *DiscoveryOptions
}

// NewBuilder creates a builder seeded with the process arguments.
func NewBuilder() *Builder {
	return &Builder{
		opts: Options{Args: os.Args[1:]},
	}
}

// WithAppName sets the application name used for the global directory and
// discovery defaults.
func (b *Builder) WithAppName(name string) *Builder {
	b.opts.AppName = name
	return b
}

// WithArgs replaces the command-line arguments.
func (b *Builder) WithArgs(args []string) *Builder {
	b.opts.Args = args
	return b
}

// WithEnvPrefix enables the environment layer.
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.opts.EnvPrefix = prefix
	return b
}

// WithProperties enables the properties layer.
func (b *Builder) WithProperties(prefix string, props map[string]string) *Builder {
	b.opts.PropertyPrefix = prefix
	b.opts.Properties = props
	return b
}

// WithLocalDir overrides the local config search directory.
func (b *Builder) WithLocalDir(dir string) *Builder {
	b.opts.LocalDir = dir
	return b
}

// WithGlobalDir overrides the global config search directory.
func (b *Builder) WithGlobalDir(dir string) *Builder {
	b.opts.GlobalDir = dir
	return b
}

// WithPackaged sets the bundled-resource filesystem.
func (b *Builder) WithPackaged(fsys fs.FS) *Builder {
	b.opts.Packaged = fsys
	return b
}

// WithConfigFile sets an explicit document replacing the local file layers.
func (b *Builder) WithConfigFile(path string) *Builder {
	b.opts.ConfigFile = path
	return b
}

// WithFileDiscovery enables --config / <APP>_CONFIG override discovery at
// build time.
func (b *Builder) WithFileDiscovery(opts DiscoveryOptions) *Builder {
	b.discovery = &opts
	return b
}

// WithFailFast makes any accumulated error force a Failure.
func (b *Builder) WithFailFast() *Builder {
	b.opts.FailFast = true
	return b
}

// WithFailOnMissingFile promotes missing config files to layer errors.
func (b *Builder) WithFailOnMissingFile() *Builder {
	b.opts.FailOnMissingFile = true
	return b
}

// WithStrictCoercion makes present-but-malformed values hard errors.
func (b *Builder) WithStrictCoercion() *Builder {
	b.opts.StrictCoercion = true
	return b
}

// WithLenientParsing enables content-based format fallback for files.
func (b *Builder) WithLenientParsing() *Builder {
	b.opts.LenientParsing = true
	return b
}

// WithIgnoreUnknownKeys lets Scan tolerate undeclared merged keys.
func (b *Builder) WithIgnoreUnknownKeys() *Builder {
	b.opts.IgnoreUnknownKeys = true
	return b
}

// Options finalizes the builder, running file discovery when enabled.
func (b *Builder) Options() Options {
	opts := b.opts
	if b.discovery != nil && opts.ConfigFile == "" {
		opts.ConfigFile = DiscoverConfigFile(opts.Args, *b.discovery)
	}
	return opts
}

// ResolveWith runs a full resolution with the builder's options.
// Method-style resolution needs a free function because Go methods cannot
// introduce type parameters.
func ResolveWith[T any](b *Builder, schema Schema, factory Factory[T]) Result[T] {
	return Resolve(schema, factory, b.Options())
}

// Quick resolves a schema into T with one call using the standard layer
// stack, struct decoding, and the process arguments. This is the
// recommended entry point for most applications.
func Quick[T any](schema Schema, appName, envPrefix string) Result[T] {
	opts := NewBuilder().
		WithAppName(appName).
		WithEnvPrefix(envPrefix).
		WithFileDiscovery(DefaultDiscoveryOptions(appName)).
		Options()
	return Resolve(schema, StructFactory[T](opts), opts)
}

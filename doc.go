// File: strata/doc.go

// Package strata resolves application configuration from multiple,
// differently-trusted sources into a single strongly-typed value, with a
// fixed precedence order and per-key provenance tracking.
//
// Twelve layers are consulted, highest precedence first:
//
//  1. Command-line arguments (--server.port 9090)
//  2. Caller-supplied properties (prefix stripped, case preserved)
//  3. Environment variables (MYAPP_SERVER_PORT=9090)
//  4. ./config.json
//  5. ./config.toml
//  6. <home>/.config/<app>/config.json
//  7. <home>/.config/<app>/config.toml
//  8. Packaged config.json
//  9. Packaged config.toml
//  10. Packaged defaults.json
//  11. Packaged defaults.toml
//  12. Schema field defaults
//
// The first layer to define a key wins it; later layers never override.
// Every resolved key remembers which layer supplied it, so a bad value can
// be traced to its source without re-running at higher verbosity.
//
// Quick start:
//
//	schema := strata.Schema{Fields: []strata.Field{
//	    {Name: "host", Type: strata.TypeString, Default: "localhost"},
//	    {Name: "port", Type: strata.TypeInt, Required: true},
//	}}
//
//	type Server struct {
//	    Host string `toml:"host"`
//	    Port int    `toml:"port"`
//	}
//
//	opts := strata.Options{AppName: "myapp", EnvPrefix: "MYAPP_"}
//	res := strata.Resolve(schema, strata.StructFactory[Server](opts), opts)
//	if !res.OK() {
//	    log.Fatal(res.Err())
//	}
//	srv := res.Value()
//
// Error handling is best-effort by default: a layer that fails to load is
// reported but does not abort the run, and a missing optional file is not
// an error at all. Set Options.FailFast or Options.FailOnMissingFile to
// tighten either policy. A required schema field left unset by every layer
// always fails the run.
//
// A resolution run executes on one goroutine and the returned result is an
// immutable snapshot; it may be shared freely without locking.
package strata

// File: strata/schema.go
package strata

import "fmt"

// FieldType tags the supported destination types for a schema field.
type FieldType int

const (
	TypeString FieldType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeList
	TypeMap
	TypeNested
)

func (t FieldType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeList:
		return "list"
	case TypeMap:
		return "map"
	case TypeNested:
		return "nested"
	default:
		return "invalid"
	}
}

// ValidatorFunc checks a coerced field value after the instance has been
// constructed. Returning an error marks the whole run as failed.
type ValidatorFunc func(value any) error

// Field describes one destination field of the target configuration type:
// the lookup key, the declared type, whether a value must come from some
// layer, the default used otherwise, and optional extras (nested schema
// for TypeNested, sensitivity masking for strings, a validator).
type Field struct {
	Name      string
	Type      FieldType
	Required  bool
	Default   any
	Sensitive bool
	Nested    *Schema
	Validate  ValidatorFunc
}

// Schema is the externally-supplied description of the destination type:
// an ordered list of fields, walked in declaration order by the instance
// builder. It replaces any runtime inspection of the target type.
type Schema struct {
	Fields []Field
}

// Factory constructs the final typed value from the per-field coerced
// values keyed by field name (nested schemas appear as nested maps).
type Factory[T any] func(values map[string]any) (T, error)

// buildValues walks schema fields in order, pulls each from the merged
// state, coerces it, and falls back to the field default when permitted.
// It returns the assembled value map plus one error per missing required
// field (and, under strict coercion, per malformed present value).
func buildValues(m Merged, schema Schema, prefix string, opts Options) (map[string]any, []ConfigError) {
	values := make(map[string]any, len(schema.Fields))
	var errs []ConfigError

	for _, f := range schema.Fields {
		path := joinPath(prefix, f.Name)

		if f.Type == TypeNested {
			if f.Nested == nil {
				errs = append(errs, ConfigError{
					Layer:   LayerDefaults,
					Kind:    ErrorConstruction,
					Path:    path,
					Message: "nested field declared without a schema",
				})
				continue
			}
			sub, subErrs := buildValues(m, *f.Nested, path, opts)
			values[f.Name] = sub
			errs = append(errs, subErrs...)
			continue
		}

		raw, present := m.Value(path)
		if present {
			coerced, ok := coerce(raw, f.Type)
			if ok {
				if f.Sensitive && f.Type == TypeString {
					coerced = NewSecret(coerced.(string))
				}
				values[f.Name] = coerced
				continue
			}
			if !raw.IsNull() && opts.StrictCoercion {
				layer := LayerDefaults
				if l, okSrc := m.Source(path); okSrc {
					layer = l
				}
				errs = append(errs, ConfigError{
					Layer:   layer,
					Kind:    ErrorConstruction,
					Path:    path,
					Message: fmt.Sprintf("cannot coerce %s value to %s", raw.Kind(), f.Type),
				})
				continue
			}
			// Malformed or placeholder value: fall through to the default
			// mechanism as if the key were absent.
		}

		if f.Required {
			errs = append(errs, ConfigError{
				Layer:   LayerDefaults,
				Kind:    ErrorMissingRequired,
				Path:    path,
				Message: "required field missing",
			})
			continue
		}

		values[f.Name] = f.Default
	}

	return values, errs
}

// runValidators invokes per-field validators against the assembled value
// map, after successful construction. Validation is a post-step: it never
// alters values, only appends errors.
func runValidators(schema Schema, values map[string]any, prefix string) []ConfigError {
	var errs []ConfigError

	for _, f := range schema.Fields {
		path := joinPath(prefix, f.Name)

		if f.Type == TypeNested && f.Nested != nil {
			if sub, ok := values[f.Name].(map[string]any); ok {
				errs = append(errs, runValidators(*f.Nested, sub, path)...)
			}
			continue
		}

		if f.Validate == nil {
			continue
		}
		if err := f.Validate(values[f.Name]); err != nil {
			errs = append(errs, ConfigError{
				Layer:   LayerDefaults,
				Kind:    ErrorConstruction,
				Path:    path,
				Message: "validation failed",
				Cause:   err,
			})
		}
	}

	return errs
}

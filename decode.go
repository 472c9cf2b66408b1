// File: strata/decode.go
package strata

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// tagName is the struct tag consulted when decoding value maps into
// caller structs.
const tagName = "toml"

// StructFactory returns a Factory that decodes the built value map into T
// using mapstructure with the full decode-hook set. This is the ordinary
// path for callers whose target is a plain struct; callers with invariants
// a flat decode cannot express supply their own Factory instead. A value
// the struct declares no field for is an error unless IgnoreUnknownKeys
// is set.
func StructFactory[T any](opts Options) Factory[T] {
	return func(values map[string]any) (T, error) {
		var target T
		if err := decodeMap(values, &target, !opts.IgnoreUnknownKeys); err != nil {
			return target, err
		}
		return target, nil
	}
}

// Scan decodes the merged state under basePath into the target struct or
// map, bypassing any schema. The target must be a non-nil pointer.
func (m Merged) Scan(basePath string, target any, opts Options) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	section := navigateToPath(m.NestedMap(), basePath)
	sectionMap, ok := section.(map[string]any)
	if !ok {
		if section == nil {
			sectionMap = make(map[string]any)
		} else {
			return fmt.Errorf("path %q refers to non-map value (type %T)", basePath, section)
		}
	}

	return decodeMap(sectionMap, target, !opts.IgnoreUnknownKeys)
}

func decodeMap(data map[string]any, target any, errorUnused bool) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          tagName,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
		ZeroFields:       true,
		ErrorUnused:      errorUnused,
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	return nil
}

// decodeHook returns the composite decode hook for all type conversions.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		// Network types
		stringToNetIPHookFunc(),
		stringToNetIPNetHookFunc(),
		stringToURLHookFunc(),

		// Sensitive values
		secretHookFunc(),

		// Standard hooks
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// secretHookFunc converts between Secret and plain strings at decode
// boundaries: a string landing in a Secret field is wrapped, and a Secret
// landing in a string field reveals itself (the caller asked for it by
// declaring the field type).
func secretHookFunc() mapstructure.DecodeHookFunc {
	secretType := reflect.TypeOf(Secret{})
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() == reflect.String && t == secretType {
			return NewSecret(data.(string)), nil
		}
		if f == secretType && t.Kind() == reflect.String {
			return data.(Secret).Reveal(), nil
		}
		return data, nil
	}
}

// stringToNetIPHookFunc handles net.IP conversion.
func stringToNetIPHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(net.IP{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 45 { // Max IPv6 length
			return nil, fmt.Errorf("invalid IP length: %d", len(str))
		}

		ip := net.ParseIP(str)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address: %s", str)
		}

		return ip, nil
	}
}

// stringToNetIPNetHookFunc handles net.IPNet conversion.
func stringToNetIPNetHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(net.IPNet{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 49 { // Max IPv6 CIDR length
			return nil, fmt.Errorf("invalid CIDR length: %d", len(str))
		}
		_, ipnet, err := net.ParseCIDR(str)
		if err != nil {
			return nil, fmt.Errorf("invalid CIDR: %w", err)
		}
		if isPtr {
			return ipnet, nil
		}
		return *ipnet, nil
	}
}

// stringToURLHookFunc handles url.URL conversion.
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(url.URL{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 2048 {
			return nil, fmt.Errorf("URL too long: %d bytes", len(str))
		}
		u, err := url.Parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}

// navigateToPath traverses a nested map to reach the specified path.
func navigateToPath(nested map[string]any, path string) any {
	if path == "" {
		return nested
	}

	current := any(nested)
	for _, segment := range splitPath(path) {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		value, exists := currentMap[segment]
		if !exists {
			return nil
		}
		current = value
	}

	return current
}

// File: strata/secret.go
package strata

// secretMask is the fixed display form of every sensitive value.
const secretMask = "*****"

// Secret wraps a string that must not leak into logs, dumps, or encoded
// output. Every textual rendering produces a fixed mask; the real value is
// reachable only through Reveal. Fields flagged Sensitive in the schema
// arrive as Secret values.
type Secret struct {
	value string
}

// NewSecret wraps a raw string.
func NewSecret(value string) Secret { return Secret{value: value} }

// Reveal returns the wrapped value.
func (s Secret) Reveal() string { return s.value }

func (s Secret) String() string { return secretMask }

// GoString keeps %#v formatting from exposing the value.
func (s Secret) GoString() string { return "strata.Secret(" + secretMask + ")" }

// MarshalText masks the value in any text-based encoding.
func (s Secret) MarshalText() ([]byte, error) { return []byte(secretMask), nil }

// MarshalJSON masks the value in JSON output.
func (s Secret) MarshalJSON() ([]byte, error) { return []byte(`"` + secretMask + `"`), nil }

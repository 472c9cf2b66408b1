// File: strata/coerce_test.go
package strata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name   string
		value  Value
		target FieldType
		want   any
		ok     bool
	}{
		{"StringFromString", String("x"), TypeString, "x", true},
		{"StringFromInt", Int(8080), TypeString, "8080", true},
		{"StringFromBool", Bool(true), TypeString, "true", true},
		{"StringFromFloat", Float(1.5), TypeString, "1.5", true},

		{"IntFromInt", Int(42), TypeInt, int64(42), true},
		{"IntFromFloatTruncates", Float(3.9), TypeInt, int64(3), true},
		{"IntFromNumericString", String("1234"), TypeInt, int64(1234), true},
		{"IntFromBadString", String("n/a"), TypeInt, nil, false},
		{"IntFromBool", Bool(true), TypeInt, nil, false},

		{"FloatFromFloat", Float(0.5), TypeFloat, 0.5, true},
		{"FloatFromInt", Int(2), TypeFloat, 2.0, true},
		{"FloatFromString", String("2.75"), TypeFloat, 2.75, true},
		{"FloatFromBadString", String("two"), TypeFloat, nil, false},

		{"BoolFromBool", Bool(false), TypeBool, false, true},
		{"BoolFromTokenUpper", String("TRUE"), TypeBool, true, true},
		{"BoolFromTokenFalse", String("false"), TypeBool, false, true},
		{"BoolFromNumericString", String("1"), TypeBool, nil, false},
		{"BoolFromInt", Int(1), TypeBool, nil, false},

		{"ListFromList", List(Int(1)), TypeList, []any{int64(1)}, true},
		{"ListFromString", String("a,b"), TypeList, nil, false},

		{"MapFromMap", Map(map[string]Value{"k": Int(1)}), TypeMap, map[string]any{"k": int64(1)}, true},
		{"MapFromList", List(Int(1)), TypeMap, nil, false},

		{"NullNeverCoerces", Null(), TypeString, nil, false},
		{"NullNeverCoercesToInt", Null(), TypeInt, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerce(tt.value, tt.target)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// File: strata/coerce.go
package strata

import (
	"strconv"
	"strings"
)

// coerce converts a merged loose value into a field's declared type.
// Coercion never panics or errors; a combination that cannot be converted
// yields no value, which the instance builder treats as missing. The
// switch over field types is exhaustive because both Kind and FieldType
// are closed sets.
func coerce(v Value, t FieldType) (any, bool) {
	if v.kind == KindNull {
		// Null is the defaults-layer placeholder: never a usable value.
		return nil, false
	}

	switch t {
	case TypeString:
		return v.String(), true

	case TypeInt:
		switch v.kind {
		case KindInt:
			return v.i, true
		case KindFloat:
			return int64(v.f), true
		case KindString:
			if i, err := strconv.ParseInt(v.s, 10, 64); err == nil {
				return i, true
			}
		}

	case TypeFloat:
		switch v.kind {
		case KindFloat:
			return v.f, true
		case KindInt:
			return float64(v.i), true
		case KindString:
			if f, err := strconv.ParseFloat(v.s, 64); err == nil {
				return f, true
			}
		}

	case TypeBool:
		switch v.kind {
		case KindBool:
			return v.b, true
		case KindString:
			if strings.EqualFold(v.s, "true") {
				return true, true
			}
			if strings.EqualFold(v.s, "false") {
				return false, true
			}
		}

	case TypeList:
		if v.kind == KindList {
			return v.Interface(), true
		}

	case TypeMap:
		if v.kind == KindMap {
			return v.Interface(), true
		}
	}

	return nil, false
}

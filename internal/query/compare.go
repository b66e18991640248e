package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okra-platform/arrgh/enumerable"
)

// Kind ranks used to order values of different types
const (
	kindNull = iota
	kindBool
	kindNumber
	kindString
	kindOther
)

// CompareValues orders decoded record values: nil first, then booleans
// (false < true), numbers, strings and finally anything else by its
// printed form.
func CompareValues(a, b any) int {
	ka, kb := kindOf(a), kindOf(b)
	if ka != kb {
		return enumerable.Compare(ka, kb)
	}

	switch ka {
	case kindNull:
		return 0
	case kindBool:
		return enumerable.Compare(boolRank(a.(bool)), boolRank(b.(bool)))
	case kindNumber:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return enumerable.Compare(fa, fb)
	case kindString:
		return strings.Compare(a.(string), b.(string))
	default:
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}

// ValuesEqual reports whether two decoded values are equal, treating
// numbers of different Go types as equal when their values are.
func ValuesEqual(a, b any) bool {
	if kindOf(a) == kindOther || kindOf(b) == kindOther {
		return enumerable.DefaultEqual(a, b)
	}
	return CompareValues(a, b) == 0 && kindOf(a) == kindOf(b)
}

func kindOf(v any) int {
	switch v.(type) {
	case nil:
		return kindNull
	case bool:
		return kindBool
	case string:
		return kindString
	}
	if _, ok := toFloat(v); ok {
		return kindNumber
	}
	return kindOther
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

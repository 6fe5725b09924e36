package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind is the primitive tag of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Badge returns the short label displayed next to a value of this kind.
func (k Kind) Badge() string {
	switch k {
	case KindString:
		return "a-Z"
	case KindNumber:
		return "0-9"
	case KindBoolean:
		return " "
	case KindObject:
		return "{ }"
	default:
		return "NaN"
	}
}

// Value is a single cell value. The zero Value is Null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// Null is the explicit absent value.
var Null = Value{}

func String(s string) Value { return Value{kind: KindString, str: s} }

func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

func Boolean(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Object wraps a nested array or map by its compact json text.
func Object(raw string) Value { return Value{kind: KindObject, str: raw} }

// ValueOf converts a go value into a Value. Nested slices and maps
// are json encoded into an Object.
func ValueOf(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null
	case Value:
		return val
	case string:
		return String(val)
	case []byte:
		return String(string(val))
	case bool:
		return Boolean(val)
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case int:
		return Number(float64(val))
	case int8:
		return Number(float64(val))
	case int16:
		return Number(float64(val))
	case int32:
		return Number(float64(val))
	case int64:
		return Number(float64(val))
	case uint:
		return Number(float64(val))
	case uint8:
		return Number(float64(val))
	case uint16:
		return Number(float64(val))
	case uint32:
		return Number(float64(val))
	case uint64:
		return Number(float64(val))
	case json.Number:
		n, err := val.Float64()
		if err != nil {
			return String(val.String())
		}
		return Number(n)
	case json.RawMessage:
		return Object(string(val))
	}

	b, err := json.Marshal(v)
	if err != nil {
		return Null
	}
	return Object(string(b))
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Raw returns the underlying go value (nil for Null).
func (v Value) Raw() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBoolean:
		return v.b
	case KindObject:
		return json.RawMessage(v.str)
	default:
		return nil
	}
}

// String returns the display form of the value. Null displays as
// an empty string.
func (v Value) String() string {
	switch v.kind {
	case KindString, KindObject:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Compare orders two values: Null first, then by kind rank, then by
// the native order of the kind. NaN sorts before other numbers.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		if v.kind < o.kind {
			return -1
		}
		return 1
	}

	switch v.kind {
	case KindNumber:
		// NaN ranks below every other number
		vNaN, oNaN := math.IsNaN(v.num), math.IsNaN(o.num)
		switch {
		case vNaN && oNaN:
			return 0
		case vNaN:
			return -1
		case oNaN:
			return 1
		case v.num < o.num:
			return -1
		case v.num > o.num:
			return 1
		}
		return 0
	case KindBoolean:
		switch {
		case v.b == o.b:
			return 0
		case !v.b:
			return -1
		}
		return 1
	case KindString, KindObject:
		return strings.Compare(v.str, o.str)
	default:
		return 0
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindObject {
		return []byte(v.str), nil
	}
	return json.Marshal(v.Raw())
}

package conftree

import (
	"fmt"
	"sort"
	"strconv"
)

// Object maps field names to desired values for one configuration node.
// Field names are unique; storage order carries no meaning.
type Object map[string]Value

// Value is a single field value: either a scalar (carried in its canonical
// wire string form) or a nested Object addressing a child configuration node.
// The zero Value is an empty scalar.
type Value struct {
	scalar string
	object Object
}

// Str returns a string-scalar value.
func Str(s string) Value {
	return Value{scalar: s}
}

// Int returns an integer-scalar value.
func Int(n int64) Value {
	return Value{scalar: strconv.FormatInt(n, 10)}
}

// Uint returns an unsigned-integer-scalar value.
func Uint(n uint64) Value {
	return Value{scalar: strconv.FormatUint(n, 10)}
}

// Float returns a floating-point-scalar value. The canonical form uses the
// shortest representation that round-trips.
func Float(f float64) Value {
	return Value{scalar: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Bool returns a boolean-scalar value, encoded as "1" or "0" on the wire.
func Bool(b bool) Value {
	if b {
		return Value{scalar: "1"}
	}
	return Value{scalar: "0"}
}

// Sub returns a subtree value addressing a child configuration node.
func Sub(obj Object) Value {
	if obj == nil {
		obj = Object{}
	}
	return Value{object: obj}
}

// IsObject reports whether the value is a nested Object.
func (v Value) IsObject() bool {
	return v.object != nil
}

// Object returns the nested Object, or nil for scalar values.
func (v Value) Object() Object {
	return v.object
}

// Scalar returns the canonical wire string form of a scalar value.
// For subtree values it returns "".
func (v Value) Scalar() string {
	return v.scalar
}

// Fields returns the object's field names in lexical order.
func (o Object) Fields() []string {
	fields := make([]string, 0, len(o))
	for name := range o {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

// FromMap converts a freshly decoded YAML/JSON mapping into an Object.
// Supported leaf kinds are strings, booleans, integers, and floats; nested
// mappings become subtree values. Anything else (lists, nulls, binary)
// has no representation in the configuration tree and is rejected.
func FromMap(m map[string]any) (Object, error) {
	obj := make(Object, len(m))
	for name, raw := range m {
		v, err := fromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		obj[name] = v
	}
	return obj, nil
}

func fromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case string:
		return Str(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint64:
		return Uint(t), nil
	case float64:
		return Float(t), nil
	case map[string]any:
		sub, err := FromMap(t)
		if err != nil {
			return Value{}, err
		}
		return Sub(sub), nil
	default:
		return Value{}, fmt.Errorf("unsupported value of type %T", raw)
	}
}

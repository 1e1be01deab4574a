package entities

import "encoding/json"

// ValueKind discriminates the recursive Value union.
type ValueKind int

const (
	// KindAbsent marks a state that does not exist at a revision
	// (file missing, entity deleted).
	KindAbsent ValueKind = iota
	// KindScalar holds a JSON scalar: string, number, bool or null.
	KindScalar
	// KindSequence holds a JSON array.
	KindSequence
	// KindObject holds a JSON object.
	KindObject
)

// Value is a JSON-like tree modelled as a tagged union so that the diff
// engine can branch explicitly on shape instead of runtime type switches
// scattered across the walk. Exactly one of Scalar, Sequence or Object is
// meaningful, selected by Kind.
type Value struct {
	Kind     ValueKind
	Scalar   any
	Sequence []Value
	Object   map[string]Value
}

// Absent returns the value representing a missing state.
func Absent() Value {
	return Value{Kind: KindAbsent}
}

// IsAbsent reports whether the value represents a missing state.
func (v Value) IsAbsent() bool {
	return v.Kind == KindAbsent
}

// FromAny builds a Value from the result of a json.Unmarshal into any.
// Scalars are kept as decoded (string, float64, bool, nil).
func FromAny(raw any) Value {
	switch typed := raw.(type) {
	case map[string]any:
		obj := make(map[string]Value, len(typed))
		for key, item := range typed {
			obj[key] = FromAny(item)
		}
		return Value{Kind: KindObject, Object: obj}
	case []any:
		seq := make([]Value, 0, len(typed))
		for _, item := range typed {
			seq = append(seq, FromAny(item))
		}
		return Value{Kind: KindSequence, Sequence: seq}
	default:
		return Value{Kind: KindScalar, Scalar: typed}
	}
}

// ParseValue decodes raw JSON into a Value. Empty input yields Absent.
func ParseValue(data []byte) (Value, error) {
	if len(data) == 0 {
		return Absent(), nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Absent(), err
	}
	return FromAny(raw), nil
}

// ToAny converts the value back to the plain form used by encoding/json.
// Absent converts to nil.
func (v Value) ToAny() any {
	switch v.Kind {
	case KindObject:
		obj := make(map[string]any, len(v.Object))
		for key, item := range v.Object {
			obj[key] = item.ToAny()
		}
		return obj
	case KindSequence:
		seq := make([]any, 0, len(v.Sequence))
		for _, item := range v.Sequence {
			seq = append(seq, item.ToAny())
		}
		return seq
	case KindScalar:
		return v.Scalar
	default:
		return nil
	}
}

// Equal reports deep equality. Comparisons are exact: no numeric tolerance,
// whitespace-only string differences count as a change.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindObject:
		if len(v.Object) != len(other.Object) {
			return false
		}
		for key, item := range v.Object {
			counterpart, ok := other.Object[key]
			if !ok || !item.Equal(counterpart) {
				return false
			}
		}
		return true
	case KindSequence:
		if len(v.Sequence) != len(other.Sequence) {
			return false
		}
		for i, item := range v.Sequence {
			if !item.Equal(other.Sequence[i]) {
				return false
			}
		}
		return true
	case KindScalar:
		return v.Scalar == other.Scalar
	default:
		return true
	}
}

// Field returns the named member of an object value, or Absent when the
// value is not an object or has no such member.
func (v Value) Field(name string) Value {
	if v.Kind != KindObject {
		return Absent()
	}
	member, ok := v.Object[name]
	if !ok {
		return Absent()
	}
	return member
}

// StringField returns the named member as a string, or "" when the member
// is missing or not a string.
func (v Value) StringField(name string) string {
	member := v.Field(name)
	if member.Kind != KindScalar {
		return ""
	}
	str, _ := member.Scalar.(string)
	return str
}

// MarshalJSON encodes the value in plain JSON form. encoding/json sorts
// object keys, which keeps every serialized artifact deterministic.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToAny())
}

// UnmarshalJSON decodes plain JSON into the tagged form.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Kind identifies the concrete type stored in a Value.
type Kind int

const (
	Null Kind = iota
	String
	Number
	Bool
	ObjectKind
	Array
)

// Value represents an arbitrary JSON value. Objects keep their key order so a
// document can be rewritten without reshuffling fields.
type Value struct {
	Kind   Kind
	String string
	Number json.Number
	Bool   bool
	Object *Object
	Array  []Value
}

// Object is a JSON object that remembers key insertion order.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{values: map[string]Value{}}
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set stores a value, appending the key when it is new.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// StringValue wraps s.
func StringValue(s string) Value {
	return Value{Kind: String, String: s}
}

// IntValue wraps n.
func IntValue(n int64) Value {
	return Value{Kind: Number, Number: json.Number(fmt.Sprintf("%d", n))}
}

// ObjectValue wraps o.
func ObjectValue(o *Object) Value {
	return Value{Kind: ObjectKind, Object: o}
}

// ArrayValue wraps items.
func ArrayValue(items []Value) Value {
	return Value{Kind: Array, Array: items}
}

// StringsValue wraps a list of strings as an array.
func StringsValue(items []string) Value {
	out := make([]Value, 0, len(items))
	for _, item := range items {
		out = append(out, StringValue(item))
	}
	return ArrayValue(out)
}

// Parse decodes a single JSON document.
func Parse(data []byte) (Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	v, err := decodeValue(decoder)
	if err != nil {
		return Value{}, err
	}
	if _, err := decoder.Token(); err != io.EOF {
		if err == nil {
			return Value{}, errors.New("unexpected data after top-level value")
		}
		return Value{}, err
	}
	return v, nil
}

// UnmarshalJSON decodes a JSON value preserving object key order.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func decodeValue(decoder *json.Decoder) (Value, error) {
	token, err := decoder.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := token.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for decoder.More() {
				keyToken, err := decoder.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyToken.(string)
				if !ok {
					return Value{}, fmt.Errorf("invalid object key %v", keyToken)
				}
				child, err := decodeValue(decoder)
				if err != nil {
					return Value{}, err
				}
				obj.Set(key, child)
			}
			if _, err := decoder.Token(); err != nil {
				return Value{}, err
			}
			return ObjectValue(obj), nil
		case '[':
			items := []Value{}
			for decoder.More() {
				child, err := decodeValue(decoder)
				if err != nil {
					return Value{}, err
				}
				items = append(items, child)
			}
			if _, err := decoder.Token(); err != nil {
				return Value{}, err
			}
			return ArrayValue(items), nil
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return StringValue(t), nil
	case json.Number:
		return Value{Kind: Number, Number: t}, nil
	case bool:
		return Value{Kind: Bool, Bool: t}, nil
	case nil:
		return Value{Kind: Null}, nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", token)
	}
}

// MarshalJSON encodes the value with object keys in their stored order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeTo(buf *bytes.Buffer) error {
	switch v.Kind {
	case Null:
		buf.WriteString("null")
	case String:
		return writeString(buf, v.String)
	case Number:
		if v.Number == "" {
			buf.WriteString("0")
			return nil
		}
		buf.WriteString(v.Number.String())
	case Bool:
		if v.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case ObjectKind:
		buf.WriteByte('{')
		if v.Object != nil {
			for i, key := range v.Object.keys {
				if i > 0 {
					buf.WriteByte(',')
				}
				if err := writeString(buf, key); err != nil {
					return err
				}
				buf.WriteByte(':')
				if err := v.Object.values[key].writeTo(buf); err != nil {
					return err
				}
			}
		}
		buf.WriteByte('}')
	case Array:
		buf.WriteByte('[')
		for i, item := range v.Array {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeTo(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("unknown json kind %d", v.Kind)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	encoded, err := marshalNoEscape(s)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}

// ObjectField returns the object stored under key when v is an object.
func (v Value) ObjectField(key string) (Value, bool) {
	if v.Kind != ObjectKind || v.Object == nil {
		return Value{}, false
	}
	return v.Object.Get(key)
}

// AsString returns the string when the value is a string.
func (v Value) AsString() (string, bool) {
	if v.Kind != String {
		return "", false
	}
	return v.String, true
}

// AsInt returns the integer when the value is an integral number.
func (v Value) AsInt() (int64, bool) {
	if v.Kind != Number {
		return 0, false
	}
	n, err := v.Number.Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

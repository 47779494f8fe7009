package schema

import (
	"errors"
	"fmt"
	"strings"
)

// FieldType describes how a token is decoded.
type FieldType int

const (
	String FieldType = iota + 1
	Integer
	Timestamp
)

// String returns the layout-file name of the type.
func (t FieldType) String() string {
	switch t {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Timestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// ParseFieldType converts a layout-file type name to a FieldType.
func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string", "str":
		return String, nil
	case "integer", "int":
		return Integer, nil
	case "timestamp", "epoch":
		return Timestamp, nil
	default:
		return 0, fmt.Errorf("unknown field type %q", s)
	}
}

// FieldSpec maps one token position to a label and a type.
type FieldSpec struct {
	Label string
	Type  FieldType
}

// Schema is an ordered, immutable list of field specs.
type Schema struct {
	fields []FieldSpec
}

var (
	ErrEmptyLabel     = errors.New("schema: empty field label")
	ErrDuplicateLabel = errors.New("schema: duplicate field label")
	ErrInvalidType    = errors.New("schema: invalid field type")
)

// New validates and copies the given fields into a Schema.
func New(fields ...FieldSpec) (Schema, error) {
	seen := make(map[string]struct{}, len(fields))
	cp := make([]FieldSpec, len(fields))
	for i, f := range fields {
		if f.Label == "" {
			return Schema{}, fmt.Errorf("%w at position %d", ErrEmptyLabel, i)
		}
		if _, dup := seen[f.Label]; dup {
			return Schema{}, fmt.Errorf("%w %q", ErrDuplicateLabel, f.Label)
		}
		switch f.Type {
		case String, Integer, Timestamp:
		default:
			return Schema{}, fmt.Errorf("%w for %q: %d", ErrInvalidType, f.Label, int(f.Type))
		}
		seen[f.Label] = struct{}{}
		cp[i] = f
	}
	return Schema{fields: cp}, nil
}

// MustNew is like New but panics on an invalid schema.
func MustNew(fields ...FieldSpec) Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of fields.
func (s Schema) Len() int { return len(s.fields) }

// At returns the field at position i.
func (s Schema) At(i int) FieldSpec { return s.fields[i] }

// Fields returns a copy of the field list.
func (s Schema) Fields() []FieldSpec {
	out := make([]FieldSpec, len(s.fields))
	copy(out, s.fields)
	return out
}

// Labels returns the labels in schema order.
func (s Schema) Labels() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Label
	}
	return out
}

var defaultSchema = MustNew(
	FieldSpec{Label: "timestamp", Type: Timestamp},
	FieldSpec{Label: "header_size", Type: Integer},
	FieldSpec{Label: "ip", Type: String},
	FieldSpec{Label: "resp_code", Type: String},
	FieldSpec{Label: "resp_size", Type: Integer},
	FieldSpec{Label: "method", Type: String},
	FieldSpec{Label: "url", Type: String},
	FieldSpec{Label: "username", Type: String},
	FieldSpec{Label: "access_destination", Type: String},
	FieldSpec{Label: "resp_type", Type: String},
)

// Default returns the 10-field access log schema.
// The returned value shares no mutable state with other callers.
func Default() Schema { return defaultSchema }

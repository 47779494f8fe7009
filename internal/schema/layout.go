package schema

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Layout is the full description of one log line format.
type Layout struct {
	Schema    Schema
	Separator string // "" means a single space
	SkipEmpty bool
}

// DefaultLayout returns the default schema, space separator and
// empty-field skipping.
func DefaultLayout() Layout {
	return Layout{Schema: Default(), SkipEmpty: true}
}

// layoutFile is the TOML shape of a layout definition.
type layoutFile struct {
	Separator string
	SkipEmpty bool `toml:"skip_empty"`
	Fields    []struct {
		Label string
		Type  string
	}
}

// ParseLayout decodes a TOML layout definition.
// Missing fields fall back to the default schema, a missing skip_empty to true.
func ParseLayout(data string) (Layout, error) {
	var lf layoutFile
	md, err := toml.Decode(data, &lf)
	if err != nil {
		return Layout{}, fmt.Errorf("layout: decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Layout{}, fmt.Errorf("layout: unknown keys: %s", strings.Join(keys, ", "))
	}

	l := DefaultLayout()
	l.Separator = lf.Separator
	if md.IsDefined("skip_empty") {
		l.SkipEmpty = lf.SkipEmpty
	}

	if len(lf.Fields) > 0 {
		specs := make([]FieldSpec, len(lf.Fields))
		for i, f := range lf.Fields {
			typ, err := ParseFieldType(f.Type)
			if err != nil {
				return Layout{}, fmt.Errorf("layout: field %q: %w", f.Label, err)
			}
			specs[i] = FieldSpec{Label: f.Label, Type: typ}
		}
		s, err := New(specs...)
		if err != nil {
			return Layout{}, fmt.Errorf("layout: %w", err)
		}
		l.Schema = s
	}
	return l, nil
}

// LoadLayout reads and decodes a TOML layout file.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("layout: read %s: %w", path, err)
	}
	l, err := ParseLayout(string(data))
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

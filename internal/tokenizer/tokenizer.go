package tokenizer

import (
	"strconv"
	"strings"

	"github.com/crimson-sun/loganalyze/internal/model"
	"github.com/crimson-sun/loganalyze/internal/schema"
)

// DefaultSeparator is used when the configured separator is empty.
const DefaultSeparator = " "

// Tokenizer splits lines according to a fixed layout.
type Tokenizer struct {
	schema    schema.Schema
	separator string
	skipEmpty bool
}

// New creates a Tokenizer for the given layout.
func New(l schema.Layout) *Tokenizer {
	sep := l.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	return &Tokenizer{schema: l.Schema, separator: sep, skipEmpty: l.SkipEmpty}
}

// Schema returns the schema the tokenizer decodes against.
func (t *Tokenizer) Schema() schema.Schema { return t.schema }

// Tokenize decodes one line into a Record.
func (t *Tokenizer) Tokenize(line string) model.Record {
	return tokenize(line, t.schema, t.separator, t.skipEmpty)
}

// Tokenize decodes one line against s. An empty separator splits on a
// single space. Empty tokens are skipped without consuming a field when
// skipEmpty is set, a bare "\n" token ends the line, and tokens beyond
// the schema are dropped. The line terminator is not part of the last field.
func Tokenize(line string, s schema.Schema, separator string, skipEmpty bool) model.Record {
	if separator == "" {
		separator = DefaultSeparator
	}
	return tokenize(line, s, separator, skipEmpty)
}

func tokenize(line string, s schema.Schema, separator string, skipEmpty bool) model.Record {
	body, terminated := trimTerminator(line)
	tokens := strings.Split(body, separator)
	// A separator right before the terminator leaves a bare "\n" token.
	if terminated && tokens[len(tokens)-1] == "" {
		tokens = tokens[:len(tokens)-1]
	}

	rec := make(model.Record, s.Len())
	cursor := 0
	for _, tok := range tokens {
		if tok == "" && skipEmpty {
			continue
		}
		if tok == "\n" {
			break
		}
		if cursor >= s.Len() {
			break
		}
		f := s.At(cursor)
		rec[f.Label] = Decode(tok, f.Type)
		cursor++
	}
	return rec
}

// trimTerminator removes a trailing "\n" or "\r\n".
func trimTerminator(line string) (string, bool) {
	if !strings.HasSuffix(line, "\n") {
		return line, false
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), true
}

// Decode converts a token to the Go value for typ. Numeric tokens that
// do not parse are returned unchanged as strings. Surrounding whitespace,
// such as the line terminator on the last token, is ignored when parsing.
func Decode(tok string, typ schema.FieldType) any {
	switch typ {
	case schema.Integer:
		if n, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64); err == nil {
			return n
		}
	case schema.Timestamp:
		if f, err := strconv.ParseFloat(strings.TrimSpace(tok), 64); err == nil {
			return f
		}
	}
	return tok
}

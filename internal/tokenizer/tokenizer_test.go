package tokenizer

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/loganalyze/internal/model"
	"github.com/crimson-sun/loganalyze/internal/schema"
)

var abc = schema.MustNew(
	schema.FieldSpec{Label: "a", Type: schema.String},
	schema.FieldSpec{Label: "b", Type: schema.String},
	schema.FieldSpec{Label: "c", Type: schema.String},
)

func TestTokenizeDefaultLine(t *testing.T) {
	line := "1157689312.049 5006 10.105.21.199 TCP_MISS/200 19763 CONNECT login.yahoo.com:443 badeyek DIRECT/209.73.177.115 -\n"
	rec := New(schema.DefaultLayout()).Tokenize(line)

	assert.Equal(t, model.Record{
		"timestamp":          1157689312.049,
		"header_size":        int64(5006),
		"ip":                 "10.105.21.199",
		"resp_code":          "TCP_MISS/200",
		"resp_size":          int64(19763),
		"method":             "CONNECT",
		"url":                "login.yahoo.com:443",
		"username":           "badeyek",
		"access_destination": "DIRECT/209.73.177.115",
		"resp_type":          "-",
	}, rec)
}

func TestTokenizeEmptySeparatorMeansSpace(t *testing.T) {
	rec := Tokenize("x y z", abc, "", true)
	assert.Equal(t, model.Record{"a": "x", "b": "y", "c": "z"}, rec)
}

func TestTokenizeFewerTokens(t *testing.T) {
	rec := Tokenize("x y", abc, " ", true)

	require.Len(t, rec, 2)
	assert.Contains(t, rec, "a")
	assert.Contains(t, rec, "b")
	assert.NotContains(t, rec, "c")
}

func TestTokenizeExcessTokensDropped(t *testing.T) {
	rec := Tokenize("1 2 3 4 5", abc, " ", true)
	assert.Equal(t, model.Record{"a": "1", "b": "2", "c": "3"}, rec)
}

func TestTokenizeSkipEmpty(t *testing.T) {
	rec := Tokenize("a,,b", abc, ",", true)
	assert.Equal(t, model.Record{"a": "a", "b": "b"}, rec)

	rec = Tokenize("a,,b", abc, ",", false)
	assert.Equal(t, model.Record{"a": "a", "b": "", "c": "b"}, rec)
}

func TestTokenizeRepeatedSpaces(t *testing.T) {
	rec := Tokenize("x    y", abc, " ", true)
	assert.Equal(t, model.Record{"a": "x", "b": "y"}, rec)
}

func TestTokenizeNewlineTokenStops(t *testing.T) {
	rec := Tokenize("x y \n", abc, " ", false)
	assert.Equal(t, model.Record{"a": "x", "b": "y"}, rec)

	rec = Tokenize("x,\n,z", abc, ",", true)
	assert.Equal(t, model.Record{"a": "x"}, rec)
}

func TestTokenizeTerminatorNotInLastField(t *testing.T) {
	assert.Equal(t, model.Record{"a": "x", "b": "y"}, Tokenize("x y\n", abc, " ", true))
	assert.Equal(t, model.Record{"a": "x", "b": "y"}, Tokenize("x y\r\n", abc, " ", true))
	assert.Equal(t, model.Record{"a": "x", "b": "y", "c": ""}, Tokenize("x,y,,\n", abc, ",", false))
}

func TestTokenizeEmptyLines(t *testing.T) {
	assert.Empty(t, Tokenize("", abc, " ", true))
	assert.Empty(t, Tokenize("   ", abc, " ", true))
	assert.Empty(t, Tokenize("\n", abc, " ", true))
	assert.Empty(t, Tokenize("x", schema.MustNew(), " ", true))
}

func TestDecodeFallback(t *testing.T) {
	tests := []struct {
		tok  string
		typ  schema.FieldType
		want any
	}{
		{"42", schema.Integer, int64(42)},
		{"-7", schema.Integer, int64(-7)},
		{"42\n", schema.Integer, int64(42)},
		{"4.2", schema.Integer, "4.2"},
		{"abc", schema.Integer, "abc"},
		{"", schema.Integer, ""},
		{"100.5", schema.Timestamp, 100.5},
		{"100", schema.Timestamp, 100.0},
		{"1e3\n", schema.Timestamp, 1000.0},
		{"yesterday", schema.Timestamp, "yesterday"},
		{"42", schema.String, "42"},
		{" padded ", schema.String, " padded "},
	}
	for _, tt := range tests {
		got := Decode(tt.tok, tt.typ)
		assert.Equal(t, tt.want, got, "Decode(%q, %s)", tt.tok, tt.typ)
	}
}

func TestTokenizeFallbackChangesType(t *testing.T) {
	s := schema.MustNew(
		schema.FieldSpec{Label: "ts", Type: schema.Timestamp},
		schema.FieldSpec{Label: "n", Type: schema.Integer},
	)
	rec := Tokenize("-- n/a", s, " ", true)

	assert.IsType(t, "", rec["ts"])
	assert.IsType(t, "", rec["n"])
	assert.Equal(t, "--", rec["ts"])
	assert.Equal(t, "n/a", rec["n"])
}

func TestTokenizeRejoinReconstructsTokens(t *testing.T) {
	s := schema.MustNew(
		schema.FieldSpec{Label: "ts", Type: schema.Timestamp},
		schema.FieldSpec{Label: "n", Type: schema.Integer},
		schema.FieldSpec{Label: "s", Type: schema.String},
	)
	for _, sep := range []string{" ", ",", " | "} {
		tokens := []string{"1700000000.5", "512", "GET"}
		line := strings.Join(tokens, sep)
		rec := Tokenize(line, s, sep, true)

		parts := make([]string, 0, s.Len())
		for _, f := range s.Fields() {
			switch v := rec[f.Label].(type) {
			case float64:
				parts = append(parts, strconv.FormatFloat(v, 'f', -1, 64))
			case int64:
				parts = append(parts, strconv.FormatInt(v, 10))
			case string:
				parts = append(parts, v)
			}
		}
		assert.Equal(t, line, strings.Join(parts, sep), "separator %q", sep)
	}
}

func TestTokenizerSchema(t *testing.T) {
	tk := New(schema.Layout{Schema: abc, Separator: ","})
	assert.Equal(t, abc.Labels(), tk.Schema().Labels())
	assert.Equal(t, model.Record{"a": "1", "b": "2"}, tk.Tokenize("1,2"))
}

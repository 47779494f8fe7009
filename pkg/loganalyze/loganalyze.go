package loganalyze

import (
	"errors"
	"fmt"
	"io"

	"github.com/crimson-sun/loganalyze/internal/model"
	"github.com/crimson-sun/loganalyze/internal/operation"
	"github.com/crimson-sun/loganalyze/internal/pipeline"
	"github.com/crimson-sun/loganalyze/internal/schema"
	"github.com/crimson-sun/loganalyze/internal/source"
	"github.com/crimson-sun/loganalyze/internal/tokenizer"
)

// Report maps result keys such as "mostfrequentip" or "total_bytes" to
// primitives or one-level nested maps.
type Report = model.Report

// FieldType selects how a field's token is decoded.
type FieldType = schema.FieldType

const (
	String    = schema.String
	Integer   = schema.Integer
	Timestamp = schema.Timestamp
)

// Field is one positional field of a log line.
type Field struct {
	Label string
	Type  FieldType
}

// DefaultFields returns the default access log layout.
func DefaultFields() []Field {
	specs := schema.Default().Fields()
	out := make([]Field, len(specs))
	for i, s := range specs {
		out[i] = Field{Label: s.Label, Type: s.Type}
	}
	return out
}

// Analyzer runs a fixed set of operations over log files.
type Analyzer struct {
	tokenizer *tokenizer.Tokenizer
	kinds     []operation.Kind
	opts      options
}

// New creates an Analyzer. At least one operation must be selected.
func New(opts ...Option) (*Analyzer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	layout, err := resolveLayout(o)
	if err != nil {
		return nil, fmt.Errorf("loganalyze: %w", err)
	}

	if len(o.operations) == 0 {
		return nil, errors.New("loganalyze: no operations selected")
	}
	kinds := make([]operation.Kind, len(o.operations))
	seen := make(map[operation.Kind]bool, len(o.operations))
	for i, name := range o.operations {
		k, err := operation.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("loganalyze: %w", err)
		}
		if seen[k] {
			return nil, fmt.Errorf("loganalyze: %q: %w", name, ErrDuplicateOperation)
		}
		seen[k] = true
		kinds[i] = k
	}

	return &Analyzer{
		tokenizer: tokenizer.New(layout),
		kinds:     kinds,
		opts:      o,
	}, nil
}

// Analyze reads the given log files in order and returns the merged report.
// Compressed files (.gz, .zst, .lz4) are decompressed transparently.
func (a *Analyzer) Analyze(paths ...string) (Report, error) {
	p, err := a.pipeline()
	if err != nil {
		return nil, err
	}
	return p.RunPaths(paths...)
}

// AnalyzeReader is like Analyze for a single in-memory or streamed source.
// name is used in error messages.
func (a *Analyzer) AnalyzeReader(name string, r io.Reader) (Report, error) {
	p, err := a.pipeline()
	if err != nil {
		return nil, err
	}
	return p.Run(source.FromReader(name, io.NopCloser(r)))
}

// pipeline builds a pipeline with fresh operation state.
func (a *Analyzer) pipeline() (*pipeline.Pipeline, error) {
	ops := make([]operation.Operation, len(a.kinds))
	for i, k := range a.kinds {
		op, err := operation.New(k)
		if err != nil {
			return nil, fmt.Errorf("loganalyze: %w", err)
		}
		ops[i] = op
	}
	return pipeline.New(a.tokenizer, ops, pipeline.WithLogger(a.opts.logger)), nil
}

// resolveLayout starts from the layout file (or the default layout) and
// applies explicit overrides.
func resolveLayout(o options) (schema.Layout, error) {
	layout := schema.DefaultLayout()
	if o.layoutPath != "" {
		l, err := schema.LoadLayout(o.layoutPath)
		if err != nil {
			return schema.Layout{}, err
		}
		layout = l
	}
	if o.fields != nil {
		specs := make([]schema.FieldSpec, len(o.fields))
		for i, f := range o.fields {
			specs[i] = schema.FieldSpec{Label: f.Label, Type: f.Type}
		}
		s, err := schema.New(specs...)
		if err != nil {
			return schema.Layout{}, err
		}
		layout.Schema = s
	}
	if o.separator != nil {
		layout.Separator = *o.separator
	}
	if o.skipEmpty != nil {
		layout.SkipEmpty = *o.skipEmpty
	}
	return layout, nil
}

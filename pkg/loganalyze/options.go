package loganalyze

import (
	"io"
	"log/slog"
)

type options struct {
	layoutPath string
	fields     []Field
	separator  *string
	skipEmpty  *bool
	operations []string
	logger     *slog.Logger
}

// Option configures an Analyzer.
type Option func(*options)

// WithLayoutFile loads the line layout from a TOML file.
// WithFields, WithSeparator and WithSkipEmpty override values from the file.
func WithLayoutFile(path string) Option {
	return func(o *options) {
		o.layoutPath = path
	}
}

// WithFields replaces the default 10-field schema.
func WithFields(fields ...Field) Option {
	return func(o *options) {
		o.fields = append([]Field(nil), fields...)
	}
}

// WithSeparator sets the field separator. Default: a single space.
func WithSeparator(sep string) Option {
	return func(o *options) {
		o.separator = &sep
	}
}

// WithSkipEmpty controls whether empty fields between repeated separators
// are ignored. Default: true.
func WithSkipEmpty(skip bool) Option {
	return func(o *options) {
		o.skipEmpty = &skip
	}
}

// WithOperations selects operations by name: "mostfreqip", "lessfreqip",
// "events", "totalbytes". Results are merged in the order given.
func WithOperations(names ...string) Option {
	return func(o *options) {
		o.operations = append(o.operations, names...)
	}
}

// WithLogger sets the logger for progress messages. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func defaultOptions() options {
	return options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

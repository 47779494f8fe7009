package operation

import (
	"errors"
	"fmt"

	"github.com/crimson-sun/loganalyze/internal/model"
)

// Operation is a streaming aggregator. Consume is called once per decoded
// record, Finalize once after all input has been read.
type Operation interface {
	// Name identifies the operation in errors and logs.
	Name() string

	// Consume folds one record into the operation's private state.
	Consume(rec model.Record) error

	// Finalize returns a copy of report extended with this operation's keys.
	// The input report is never modified.
	Finalize(report model.Report) (model.Report, error)
}

var (
	ErrMissingField    = errors.New("missing required field")
	ErrFieldType       = errors.New("unexpected field type")
	ErrEmptyAggregate  = errors.New("no records consumed")
	ErrDegenerateRange = errors.New("zero-length time range")
	ErrKeyCollision    = errors.New("report key already set")
)

// FieldError reports a record field an operation could not use.
type FieldError struct {
	Op    string
	Field string
	Err   error // ErrMissingField or ErrFieldType
	Value any   // offending value, nil when missing
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrFieldType) {
		return fmt.Sprintf("%s: field %q: %v (%T %v)", e.Op, e.Field, e.Err, e.Value, e.Value)
	}
	return fmt.Sprintf("%s: field %q: %v", e.Op, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// extend copies report and adds the given keys, refusing to overwrite.
func extend(op string, report model.Report, kv map[string]any) (model.Report, error) {
	for k := range kv {
		if _, ok := report[k]; ok {
			return nil, fmt.Errorf("%s: %w: %q", op, ErrKeyCollision, k)
		}
	}
	out := report.Clone()
	for k, v := range kv {
		out[k] = v
	}
	return out, nil
}

// intField returns the integer value of a field.
func intField(op string, rec model.Record, field string) (int64, error) {
	v, ok := rec[field]
	if !ok {
		return 0, &FieldError{Op: op, Field: field, Err: ErrMissingField}
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, &FieldError{Op: op, Field: field, Err: ErrFieldType, Value: v}
	}
}

package multi

import (
	"errors"
	"fmt"

	"github.com/crimson-sun/loganalyze/internal/model"
	"github.com/crimson-sun/loganalyze/internal/output"
)

// Multi writes one report to several destinations, for example the report
// file plus a stdout echo. Every destination gets the report even when an
// earlier one fails.
type Multi struct {
	outputs []output.Output
	closed  bool
}

// New creates a Multi over outputs. Nil entries are ignored so callers can
// pass optional destinations directly.
func New(outputs ...output.Output) *Multi {
	m := &Multi{outputs: make([]output.Output, 0, len(outputs))}
	for _, o := range outputs {
		if o != nil {
			m.outputs = append(m.outputs, o)
		}
	}
	return m
}

// Write hands report to each destination in order. Failures are tagged
// with the destination's position and joined.
func (m *Multi) Write(report model.Report) error {
	return m.each(func(o output.Output) error { return o.Write(report) })
}

// Close closes every destination once. Later calls return nil.
func (m *Multi) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	return m.each(output.Output.Close)
}

func (m *Multi) each(fn func(output.Output) error) error {
	var errs []error
	for i, o := range m.outputs {
		if err := fn(o); err != nil {
			errs = append(errs, fmt.Errorf("output %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

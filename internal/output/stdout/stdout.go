package stdout

import (
	"fmt"
	"io"
	"os"

	"github.com/crimson-sun/loganalyze/internal/model"
	"github.com/crimson-sun/loganalyze/internal/output"
)

// Output writes the JSON report to a stream, normally the process's stdout.
type Output struct {
	w      io.Writer
	pretty bool
}

// New creates an Output writing to w, or to os.Stdout when w is nil.
func New(w io.Writer, pretty bool) *Output {
	if w == nil {
		w = os.Stdout
	}
	return &Output{w: w, pretty: pretty}
}

func (o *Output) Write(report model.Report) error {
	data, err := output.Encode(report, o.pretty)
	if err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	if _, err := o.w.Write(data); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}

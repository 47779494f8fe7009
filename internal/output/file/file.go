package file

import (
	"bufio"
	"fmt"
	"os"

	"github.com/crimson-sun/loganalyze/internal/model"
	"github.com/crimson-sun/loganalyze/internal/output"
)

const defaultBufSize = 64 * 1024 // 64KB

// Option configures a file Output.
type Option func(*Output)

// WithPretty indents the JSON report.
func WithPretty(pretty bool) Option {
	return func(o *Output) { o.pretty = pretty }
}

// WithKeep keeps up to n previous reports as {path}.1 .. {path}.n.
// 0 (default) overwrites the existing report.
func WithKeep(n int) Option {
	return func(o *Output) { o.keep = n }
}

// Output writes a JSON report to a file. Nothing is created until Write is
// called, so a failed run leaves any existing report untouched.
type Output struct {
	path   string
	pretty bool
	keep   int
}

// New creates a file output for the given path.
func New(path string, opts ...Option) *Output {
	o := &Output{path: path}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Write encodes the report, shifts previous reports if configured, and
// writes the new one through a temporary file renamed into place.
func (o *Output) Write(report model.Report) error {
	data, err := output.Encode(report, o.pretty)
	if err != nil {
		return fmt.Errorf("file output: %w", err)
	}

	tmp := o.path + ".tmp"
	if err := o.writeFile(tmp, data); err != nil {
		os.Remove(tmp)
		return err
	}
	if o.keep > 0 {
		if err := o.rotate(); err != nil {
			os.Remove(tmp)
			return fmt.Errorf("file output: rotate: %w", err)
		}
	}
	if err := os.Rename(tmp, o.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("file output: rename %s: %w", o.path, err)
	}
	return nil
}

// Close is a no-op; every Write closes its file.
func (o *Output) Close() error {
	return nil
}

func (o *Output) writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("file output: open %s: %w", path, err)
	}
	w := bufio.NewWriterSize(f, defaultBufSize)
	if _, err := w.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("file output: write: %w", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("file output: flush: %w", err)
	}
	return f.Close()
}

// rotate renames the current report to {path}.1, shifting older ones up
// and dropping anything beyond keep.
func (o *Output) rotate() error {
	if _, err := os.Stat(o.path); os.IsNotExist(err) {
		return nil
	}

	os.Remove(fmt.Sprintf("%s.%d", o.path, o.keep))
	for i := o.keep - 1; i >= 1; i-- {
		from := fmt.Sprintf("%s.%d", o.path, i)
		to := fmt.Sprintf("%s.%d", o.path, i+1)
		os.Rename(from, to) // the file may not exist yet
	}
	return os.Rename(o.path, o.path+".1")
}

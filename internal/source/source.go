package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// ErrIO marks every failure to open or read a log source.
var ErrIO = errors.New("log source I/O failure")

// Error reports a failure on a named log source.
type Error struct {
	Path string
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("source %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both ErrIO and the underlying cause to errors.Is.
func (e *Error) Unwrap() []error { return []error{ErrIO, e.Err} }

// Source is a readable, decoded log stream. Close releases every
// underlying resource, innermost last.
type Source struct {
	name    string
	r       io.Reader
	closers []io.Closer
}

// Name returns the path or label the source was opened with.
func (s *Source) Name() string { return s.name }

func (s *Source) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		return n, &Error{Path: s.name, Op: "read", Err: err}
	}
	return n, err
}

// Close closes decoders and the file in reverse order of opening.
func (s *Source) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	if len(errs) > 0 {
		return &Error{Path: s.name, Op: "close", Err: errors.Join(errs...)}
	}
	return nil
}

// FromReader wraps r as a Source. A UTF-8 byte order mark is dropped and
// UTF-16 input with a byte order mark is decoded to UTF-8.
// Closing the Source closes r if it implements io.Closer.
func FromReader(name string, r io.Reader) *Source {
	s := &Source{name: name}
	if c, ok := r.(io.Closer); ok {
		s.closers = append(s.closers, c)
	}
	s.r = transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	return s
}

// Open opens a log file, decompressing by extension: .gz, .zst/.zstd, .lz4.
// Any other file is read as plain text. Path "-" reads standard input.
func Open(path string) (*Source, error) {
	if path == Stdin {
		return FromReader("stdin", io.NopCloser(os.Stdin)), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Path: path, Op: "open", Err: err}
	}

	s := &Source{name: path, closers: []io.Closer{f}}
	r, err := decompress(s, path, f)
	if err != nil {
		s.Close()
		return nil, &Error{Path: path, Op: "open", Err: err}
	}
	s.r = transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	return s, nil
}

// decompress wraps f in a decoder chosen by extension and registers the
// decoder's closer on s.
func decompress(s *Source, path string, f io.Reader) (io.Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		s.closers = append(s.closers, gz)
		return gz, nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		rc := zr.IOReadCloser()
		s.closers = append(s.closers, rc)
		return rc, nil
	case ".lz4":
		return lz4.NewReader(f), nil
	default:
		return f, nil
	}
}

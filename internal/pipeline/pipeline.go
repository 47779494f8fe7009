package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/crimson-sun/loganalyze/internal/model"
	"github.com/crimson-sun/loganalyze/internal/operation"
	"github.com/crimson-sun/loganalyze/internal/source"
	"github.com/crimson-sun/loganalyze/internal/tokenizer"
)

const defaultBufSize = 64 * 1024 // 64KB

// Stats counts what a run has seen so far.
type Stats struct {
	Sources    int
	Lines      int64
	Records    int64
	Skipped    int64 // lines that decoded to no fields
	Operations int
}

// Pipeline connects a tokenizer to an ordered list of operations.
// A Pipeline is single-use: operations keep their state after Run.
type Pipeline struct {
	tokenizer *tokenizer.Tokenizer
	ops       []operation.Operation
	logger    *slog.Logger
	stats     Stats
	ran       bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for progress messages. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a Pipeline. Operations receive records and finalize in the
// order given.
func New(tk *tokenizer.Tokenizer, ops []operation.Operation, opts ...Option) *Pipeline {
	p := &Pipeline{
		tokenizer: tk,
		ops:       ops,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.stats.Operations = len(ops)
	return p
}

// ErrAlreadyRan is returned when Run is called a second time.
var ErrAlreadyRan = errors.New("pipeline: already ran")

// Run reads every source in order, dispatches each decoded record to all
// operations, then folds their results into one report. No report is
// returned if any step fails. Run does not close the sources.
func (p *Pipeline) Run(sources ...*source.Source) (model.Report, error) {
	if p.ran {
		return nil, ErrAlreadyRan
	}
	p.ran = true
	p.logStart()

	for _, src := range sources {
		if err := p.consume(src.Name(), src); err != nil {
			return nil, err
		}
	}
	return p.finalize()
}

// RunPaths opens each path with source.Open, reads it and closes it before
// opening the next one.
func (p *Pipeline) RunPaths(paths ...string) (model.Report, error) {
	if p.ran {
		return nil, ErrAlreadyRan
	}
	p.ran = true
	p.logStart()

	for _, path := range paths {
		if err := p.consumePath(path); err != nil {
			return nil, err
		}
	}
	return p.finalize()
}

// Stats returns counters for the current run.
func (p *Pipeline) Stats() Stats { return p.stats }

func (p *Pipeline) logStart() {
	names := make([]string, len(p.ops))
	for i, op := range p.ops {
		names[i] = op.Name()
	}
	p.logger.Debug("starting run", "fields", p.tokenizer.Schema().Labels(), "operations", names)
}

func (p *Pipeline) consumePath(path string) (err error) {
	src, err := source.Open(path)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	p.logger.Debug("opened log source", "path", path)
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("pipeline: %w", cerr)
		}
	}()
	return p.consume(path, src)
}

// consume reads r line by line, keeping line terminators.
func (p *Pipeline) consume(name string, r io.Reader) error {
	p.stats.Sources++
	br := bufio.NewReaderSize(r, defaultBufSize)
	var lineNo int64
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			lineNo++
			if perr := p.dispatch(line); perr != nil {
				return fmt.Errorf("pipeline: %s:%d: %w", name, lineNo, perr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("pipeline: %w", err)
		}
	}
	p.logger.Debug("finished log source", "source", name, "lines", lineNo)
	return nil
}

func (p *Pipeline) dispatch(line string) error {
	p.stats.Lines++
	rec := p.tokenizer.Tokenize(line)
	if len(rec) == 0 {
		p.stats.Skipped++
		return nil
	}
	p.stats.Records++
	for _, op := range p.ops {
		if err := op.Consume(rec); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) finalize() (model.Report, error) {
	report := model.Report{}
	for _, op := range p.ops {
		next, err := op.Finalize(report)
		if err != nil {
			return nil, fmt.Errorf("pipeline finalize: %w", err)
		}
		report = next
	}
	p.logger.Info("analysis complete",
		"sources", p.stats.Sources,
		"lines", p.stats.Lines,
		"records", p.stats.Records,
		"skipped", p.stats.Skipped,
		"operations", p.stats.Operations,
	)
	return report, nil
}

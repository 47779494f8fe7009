package operation

import (
	"fmt"
	"slices"

	"github.com/crimson-sun/loganalyze/internal/model"
)

const (
	MostFrequentKey  = "mostfrequentip"
	LeastFrequentKey = "lessfrequentip"

	defaultFrequencyField = "ip"
)

// FrequencyOption configures a frequency operation.
type FrequencyOption func(*counter)

// WithField counts the given record field instead of "ip".
func WithField(label string) FrequencyOption {
	return func(c *counter) { c.field = label }
}

// MostFrequent reports the most common value of a field.
// Ties go to the value seen first.
type MostFrequent struct {
	c counter
}

// NewMostFrequent creates a MostFrequent operation counting "ip".
func NewMostFrequent(opts ...FrequencyOption) *MostFrequent {
	m := &MostFrequent{c: newCounter(defaultFrequencyField)}
	for _, opt := range opts {
		opt(&m.c)
	}
	return m
}

func (m *MostFrequent) Name() string { return "mostfrequent" }

func (m *MostFrequent) Consume(rec model.Record) error {
	return m.c.consume(m.Name(), rec)
}

func (m *MostFrequent) Finalize(report model.Report) (model.Report, error) {
	r := m.c.ranking()
	if len(r) == 0 {
		return nil, fmt.Errorf("%s: %w", m.Name(), ErrEmptyAggregate)
	}
	top := r[0]
	return extend(m.Name(), report, map[string]any{
		MostFrequentKey: map[string]int64{top.key: top.count},
	})
}

// LeastFrequent reports the least common value of a field. It picks the
// first entry of the reversed most-frequent ranking, so ties go to the
// value seen last among those with the lowest count.
type LeastFrequent struct {
	c counter
}

// NewLeastFrequent creates a LeastFrequent operation counting "ip".
func NewLeastFrequent(opts ...FrequencyOption) *LeastFrequent {
	l := &LeastFrequent{c: newCounter(defaultFrequencyField)}
	for _, opt := range opts {
		opt(&l.c)
	}
	return l
}

func (l *LeastFrequent) Name() string { return "leastfrequent" }

func (l *LeastFrequent) Consume(rec model.Record) error {
	return l.c.consume(l.Name(), rec)
}

func (l *LeastFrequent) Finalize(report model.Report) (model.Report, error) {
	r := l.c.ranking()
	if len(r) == 0 {
		return nil, fmt.Errorf("%s: %w", l.Name(), ErrEmptyAggregate)
	}
	slices.Reverse(r)
	low := r[0]
	return extend(l.Name(), report, map[string]any{
		LeastFrequentKey: map[string]int64{low.key: low.count},
	})
}

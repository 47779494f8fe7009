package operation

import (
	"fmt"
	"slices"

	"github.com/crimson-sun/loganalyze/internal/model"
)

// counter is a frequency counter that remembers first-seen order.
type counter struct {
	field  string
	counts map[string]int64
	order  []string
}

// entry is one (value, count) pair of a ranking.
type entry struct {
	key   string
	count int64
}

func newCounter(field string) counter {
	return counter{field: field, counts: make(map[string]int64)}
}

func (c *counter) consume(op string, rec model.Record) error {
	v, ok := rec[c.field]
	if !ok {
		return &FieldError{Op: op, Field: c.field, Err: ErrMissingField}
	}
	key, ok := v.(string)
	if !ok {
		key = fmt.Sprint(v)
	}
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
	return nil
}

// ranking returns all entries by descending count. Equal counts keep
// first-seen order.
func (c *counter) ranking() []entry {
	out := make([]entry, len(c.order))
	for i, k := range c.order {
		out[i] = entry{key: k, count: c.counts[k]}
	}
	slices.SortStableFunc(out, func(a, b entry) int {
		switch {
		case a.count > b.count:
			return -1
		case a.count < b.count:
			return 1
		default:
			return 0
		}
	})
	return out
}

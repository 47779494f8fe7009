package operation

import (
	"fmt"
	"math"

	"github.com/crimson-sun/loganalyze/internal/model"
)

const (
	EventsPerSecondKey = "events_per_second"

	timestampField = "timestamp"
)

// RatePerSecond computes the average number of events per second between
// the earliest and latest whole-second timestamps. Input may be unordered.
type RatePerSecond struct {
	first, last int64
	total       int64
	seen        bool
}

// NewRatePerSecond creates an empty RatePerSecond.
func NewRatePerSecond() *RatePerSecond { return &RatePerSecond{} }

func (r *RatePerSecond) Name() string { return "events" }

func (r *RatePerSecond) Consume(rec model.Record) error {
	epoch, err := r.epoch(rec)
	if err != nil {
		return err
	}
	// The first record seeds both bounds.
	if !r.seen {
		r.first, r.last, r.seen = epoch, epoch, true
	}
	if epoch < r.first {
		r.first = epoch
	}
	if epoch > r.last {
		r.last = epoch
	}
	r.total++
	return nil
}

func (r *RatePerSecond) epoch(rec model.Record) (int64, error) {
	v, ok := rec[timestampField]
	if !ok {
		return 0, &FieldError{Op: r.Name(), Field: timestampField, Err: ErrMissingField}
	}
	switch ts := v.(type) {
	case float64:
		// Non-finite values and values outside int64 have no whole-second epoch.
		f := math.Floor(ts)
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, &FieldError{Op: r.Name(), Field: timestampField, Err: ErrFieldType, Value: v}
		}
		return int64(f), nil
	case int64:
		return ts, nil
	case int:
		return int64(ts), nil
	default:
		return 0, &FieldError{Op: r.Name(), Field: timestampField, Err: ErrFieldType, Value: v}
	}
}

func (r *RatePerSecond) Finalize(report model.Report) (model.Report, error) {
	span := r.last - r.first
	if span == 0 {
		return nil, fmt.Errorf("%s: %w: %d events within second %d", r.Name(), ErrDegenerateRange, r.total, r.first)
	}
	if span < 0 {
		return nil, fmt.Errorf("%s: %w: range %d..%d overflows int64", r.Name(), ErrFieldType, r.first, r.last)
	}
	return extend(r.Name(), report, map[string]any{
		EventsPerSecondKey: float64(r.total) / float64(span),
	})
}

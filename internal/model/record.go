package model

// Record is one decoded log line, keyed by field label.
// Values are string, int64 (integer fields) or float64 (timestamp fields).
// A label is only present if a token was assigned to it.
type Record map[string]any

// Report is the merged output of all operations in a run. Values are
// primitives or one-level nested maps, so any encoder can consume it.
type Report map[string]any

// Clone returns a shallow copy of the report.
func (r Report) Clone() Report {
	out := make(Report, len(r)+3)
	for k, v := range r {
		out[k] = v
	}
	return out
}

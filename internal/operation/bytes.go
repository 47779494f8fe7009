package operation

import "github.com/crimson-sun/loganalyze/internal/model"

const (
	TotalBytesKey   = "total_bytes"
	HeadersBytesKey = "headers_bytes"
	BodyBytesKey    = "body_bytes"

	headerSizeField = "header_size"
	respSizeField   = "resp_size"
)

// ByteTotals sums header and body sizes across all records.
type ByteTotals struct {
	total, headers, bodies int64
}

// NewByteTotals creates an empty ByteTotals.
func NewByteTotals() *ByteTotals { return &ByteTotals{} }

func (b *ByteTotals) Name() string { return "totalbytes" }

// Consume validates both fields before touching state, so a failed record
// leaves the totals unchanged.
func (b *ByteTotals) Consume(rec model.Record) error {
	header, err := intField(b.Name(), rec, headerSizeField)
	if err != nil {
		return err
	}
	body, err := intField(b.Name(), rec, respSizeField)
	if err != nil {
		return err
	}
	b.total += header + body
	b.headers += header
	b.bodies += body
	return nil
}

func (b *ByteTotals) Finalize(report model.Report) (model.Report, error) {
	return extend(b.Name(), report, map[string]any{
		TotalBytesKey:   b.total,
		HeadersBytesKey: b.headers,
		BodyBytesKey:    b.bodies,
	})
}

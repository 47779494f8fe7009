package output

import "github.com/crimson-sun/loganalyze/internal/model"

// Output defines the interface for report destinations.
type Output interface {
	Write(report model.Report) error
	Close() error
}

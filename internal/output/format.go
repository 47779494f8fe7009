package output

import (
	"encoding/json"
	"fmt"

	"github.com/crimson-sun/loganalyze/internal/model"
)

// Encode renders a report as a single JSON object followed by a newline.
// Keys are sorted. With pretty set the object is indented by two spaces.
func Encode(report model.Report, pretty bool) ([]byte, error) {
	if report == nil {
		report = model.Report{}
	}
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return append(data, '\n'), nil
}

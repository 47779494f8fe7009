package output

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/loganalyze/internal/model"
)

func TestEncodeCompact(t *testing.T) {
	data, err := Encode(model.Report{
		"total_bytes":    int64(610),
		"mostfrequentip": map[string]int64{"10.0.0.5": 42},
	}, false)
	require.NoError(t, err)

	assert.Equal(t, `{"mostfrequentip":{"10.0.0.5":42},"total_bytes":610}`+"\n", string(data))
}

func TestEncodePretty(t *testing.T) {
	data, err := Encode(model.Report{"events_per_second": 1.5}, true)
	require.NoError(t, err)

	assert.Contains(t, string(data), "\n  \"events_per_second\": 1.5\n")
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
}

func TestEncodeNilReport(t *testing.T) {
	data, err := Encode(nil, false)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestEncodeRejectsNaN(t *testing.T) {
	_, err := Encode(model.Report{"events_per_second": math.NaN()}, false)
	assert.Error(t, err)
}

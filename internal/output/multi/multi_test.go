package multi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/loganalyze/internal/model"
)

type recorder struct {
	reports  []model.Report
	closes   int
	writeErr error
	closeErr error
}

func (r *recorder) Write(report model.Report) error {
	r.reports = append(r.reports, report)
	return r.writeErr
}

func (r *recorder) Close() error {
	r.closes++
	return r.closeErr
}

func sample() model.Report {
	return model.Report{"total_bytes": int64(610)}
}

func TestWriteReachesEveryDestination(t *testing.T) {
	dst := []*recorder{{}, {}, {}}
	m := New(dst[0], dst[1], dst[2])

	require.NoError(t, m.Write(sample()))
	for i, r := range dst {
		assert.Equal(t, []model.Report{sample()}, r.reports, "destination %d", i)
	}
}

func TestWriteFailureIsTaggedAndDoesNotStopDelivery(t *testing.T) {
	diskFull := errors.New("disk full")
	failing := &recorder{writeErr: diskFull}
	healthy := &recorder{}

	err := New(healthy, failing).Write(sample())
	require.ErrorIs(t, err, diskFull)
	assert.Contains(t, err.Error(), "output 1")
	assert.Len(t, healthy.reports, 1)
	assert.Len(t, failing.reports, 1)
}

func TestNilDestinationsSkipped(t *testing.T) {
	r := &recorder{}
	m := New(nil, r, nil)

	require.NoError(t, m.Write(sample()))
	require.NoError(t, m.Close())
	assert.Len(t, r.reports, 1)
	assert.Equal(t, 1, r.closes)
}

func TestCloseJoinsErrorsAndRunsOnce(t *testing.T) {
	errA := errors.New("err-a")
	errB := errors.New("err-b")
	a := &recorder{closeErr: errA}
	b := &recorder{closeErr: errB}
	m := New(a, b)

	err := m.Close()
	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errB)
	require.NoError(t, m.Close(), "second Close")
	assert.Equal(t, 1, a.closes)
	assert.Equal(t, 1, b.closes)
}

func TestEmpty(t *testing.T) {
	m := New()
	assert.NoError(t, m.Write(sample()))
	assert.NoError(t, m.Close())
}

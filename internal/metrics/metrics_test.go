package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/vanshika/degrees/internal/dataset"
)

func TestRecordSearch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordSearch(OutcomeConnected, time.Millisecond, 12, 3)
	m.RecordSearch(OutcomeNotConnected, time.Millisecond, 40, 0)
	m.RecordSearch(OutcomeError, time.Millisecond, 0, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues(OutcomeConnected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues(OutcomeNotConnected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues(OutcomeError)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SearchDegrees))
}

func TestRecordLookupAndDataset(t *testing.T) {
	m := New(nil)

	m.RecordLookup(0)
	m.RecordLookup(1)
	m.RecordLookup(3)
	m.RecordLookup(2)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.NameLookupsTotal.WithLabelValues(LookupAmbiguous)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NameLookupsTotal.WithLabelValues(LookupNone)))

	m.SetDataset(dataset.Stats{People: 4, Movies: 2, Stars: 5})
	assert.Equal(t, 4.0, testutil.ToFloat64(m.DatasetPeople))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.DatasetStars))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordSearch(OutcomeConnected, time.Second, 1, 1)
		m.RecordLookup(1)
		m.SetDataset(dataset.Stats{})
		m.RecordHTTPRequest("/degrees", 200, time.Second)
	})
}

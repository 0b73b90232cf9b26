package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIntentLabel(t *testing.T) {
	assert.Equal(t, IntentService, IntentLabel(true))
	assert.Equal(t, IntentNotService, IntentLabel(false))
}

func TestSearchesTotal_Increments(t *testing.T) {
	before := testutil.ToFloat64(SearchesTotal.WithLabelValues(IntentNotService))
	SearchesTotal.WithLabelValues(IntentNotService).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(SearchesTotal.WithLabelValues(IntentNotService)))
}

func TestWorkerCounters(t *testing.T) {
	before := testutil.ToFloat64(WorkerJobsFailed.WithLabelValues("rank-providers", "PARSE_ERROR"))
	WorkerJobsFailed.WithLabelValues("rank-providers", "PARSE_ERROR").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(WorkerJobsFailed.WithLabelValues("rank-providers", "PARSE_ERROR")))
}

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters_Increment(t *testing.T) {
	before := testutil.ToFloat64(AnalysesTotal.WithLabelValues("success"))
	AnalysesTotal.WithLabelValues("success").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(AnalysesTotal.WithLabelValues("success")))

	beforeMiss := testutil.ToFloat64(RecordCacheLookups.WithLabelValues(CacheMiss))
	RecordCacheLookups.WithLabelValues(CacheMiss).Add(2)
	assert.Equal(t, beforeMiss+2, testutil.ToFloat64(RecordCacheLookups.WithLabelValues(CacheMiss)))
}

package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsExposesCountersViaHandler(t *testing.T) {
	m := New("stageA")
	m.Decoded.WithLabelValues("Track").Inc()
	m.Dropped.WithLabelValues("decode failure").Inc()
	m.Overflowed.WithLabelValues("outbound").Inc()
	m.DelayMicros.WithLabelValues("firstHop").Observe(4500)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "trackrelay_stageA_records_decoded_total")
	assert.Contains(t, body, "trackrelay_stageA_records_dropped_total")
	assert.Contains(t, body, "trackrelay_stageA_queue_overflow_total")
	assert.Contains(t, body, "trackrelay_stageA_delay_microseconds")
}

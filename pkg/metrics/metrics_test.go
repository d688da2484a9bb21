package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/x", 200, time.Millisecond)
		m.ObserveDBCall("exec", time.Millisecond, nil)
		m.SetDBConnections(1, 1, 0)
		m.RecordSettlement("confirmed")
		m.RecordProcessorCall("create_intent", nil)
	})
}

func TestMetrics_RecordSettlement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("rooms", reg)

	m.RecordSettlement("confirmed")
	m.RecordSettlement("confirmed")
	m.RecordSettlement("rejected")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.settlementTransitions.WithLabelValues("rooms", "confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.settlementTransitions.WithLabelValues("rooms", "rejected")))
}

func TestMetrics_RecordProcessorCallOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("rooms", reg)

	m.RecordProcessorCall("update_intent", errors.New("boom"))
	m.RecordProcessorCall("update_intent", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.processorCalls.WithLabelValues("rooms", "update_intent", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.processorCalls.WithLabelValues("rooms", "update_intent", "ok")))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "2xx", statusLabel(201))
	assert.Equal(t, "3xx", statusLabel(302))
	assert.Equal(t, "4xx", statusLabel(409))
	assert.Equal(t, "5xx", statusLabel(502))
}

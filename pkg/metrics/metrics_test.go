package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_ObserveDispatch(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.ObserveDispatch("lost_items", "sent", true, 3, 2, 1)
	r.ObserveDispatch("lost_items", "skipped", true, 0, 0, 0)
	r.ObserveDispatch("notifications", "sent", false, 1, 1, 0)

	assert.Equal(t, float64(1), testutil.ToFloat64(r.dispatches.WithLabelValues("lost_items", "sent")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.dispatches.WithLabelValues("lost_items", "skipped")))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.messages.WithLabelValues("lost_items", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.messages.WithLabelValues("lost_items", "failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.messages.WithLabelValues("notifications", "success")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.tokens))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())
	r.ObserveDispatch("events", "failed", true, 4, 0, 0)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `notifier_dispatch_total{collection="events",outcome="failed"} 1`)
}

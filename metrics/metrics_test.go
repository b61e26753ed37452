package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_CountsByLabel(t *testing.T) {
	c := NewCollector()

	c.ObserveAI("search_chefs", 0.5, nil)
	c.ObserveAI("search_chefs", 0.7, errors.New("429"))
	c.ObserveAI("market_discovery", 1.2, nil)
	c.BookingCreated("CONFIRMED")
	c.PaymentAttempt("sandbox", errors.New("declined"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.aiRequests.WithLabelValues("search_chefs", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.aiRequests.WithLabelValues("search_chefs", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.bookings.WithLabelValues("CONFIRMED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.payments.WithLabelValues("sandbox", "error")))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveAI("x", 1, nil)
		c.BookingCreated("CONFIRMED")
		c.PaymentAttempt("sandbox", nil)
		c.StatusChanged("COMPLETED", "ADMIN")
		c.NotifyFailed("email")
	})
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.BookingCreated("CONFIRMED")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `luxeplate_bookings_total{status="CONFIRMED"} 1`)
}

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObserveRemoteCall(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveRemoteCall("add_to_cart", "ok", 20*time.Millisecond)
	c.ObserveRemoteCall("add_to_cart", "ok", 30*time.Millisecond)
	c.ObserveRemoteCall("add_to_cart", "conflict", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.remoteRequests.WithLabelValues("add_to_cart", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.remoteRequests.WithLabelValues("add_to_cart", "conflict")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.remoteLatency))
}

func TestCollector_ObserveResolution(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveResolution("ok")
	c.ObserveResolution("no_session")
	c.ObserveResolution("ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.resolutions.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.resolutions.WithLabelValues("no_session")))
}

func TestNewRouter_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.ObserveResolution("ok")

	w := httptest.NewRecorder()
	NewRouter(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `bookswap_session_resolutions_total{result="ok"} 1`)
}

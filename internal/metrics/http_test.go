package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_ExposesProviderMetrics(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	RegisterMetrics(logger)

	ObserveProviderRequest("lifi", "quote", 25*time.Millisecond, nil)
	ObserveRelayFallback("lifi", "quote")
	ObserveCacheMiss("lifi")
	ObserveCacheHit("lifi")

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, `swap_provider_requests_total{operation="quote",outcome="success",provider="lifi"}`)
	assert.Contains(t, out, "swap_provider_request_duration_seconds")
	assert.Contains(t, out, `swap_provider_relay_fallbacks_total{operation="quote",provider="lifi"}`)
	assert.Contains(t, out, `swap_cache_hits_total{provider="lifi"}`)
	assert.Contains(t, out, `swap_cache_misses_total{provider="lifi"}`)
}

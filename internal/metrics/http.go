package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve mounts /metrics on addr and blocks until the listener fails.
// Callers that only want scraping as a side effect run it in a goroutine.
func Serve(addr string, logger *logrus.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	logger.WithField("addr", addr).Info("metrics endpoint enabled: /metrics")
	return http.ListenAndServe(addr, mux)
}

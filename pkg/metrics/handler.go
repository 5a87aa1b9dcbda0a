package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PrometheusMetricsHandler struct{}

func NewPrometheusMetricsHandler() *PrometheusMetricsHandler {
	return &PrometheusMetricsHandler{}
}

// Handler serves every collector registered with the default registry.
func (h *PrometheusMetricsHandler) Handler() http.Handler {
	return promhttp.Handler()
}

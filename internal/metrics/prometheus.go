package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Watch engine metrics
	Detections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenwatch_detections_total",
			Help: "Total number of mint address detections",
		},
		[]string{"outcome"}, // outcome: watched|duplicate|fetch_failed|send_failed
	)

	Refreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenwatch_refreshes_total",
			Help: "Total number of refresh button presses",
		},
		[]string{"outcome"}, // outcome: ok|unknown_entry|fetch_failed|edit_failed
	)

	// Provider metrics
	ProviderCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenwatch_provider_calls_total",
			Help: "Total number of successful market data provider calls",
		},
		[]string{"provider"},
	)

	ProviderErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenwatch_provider_errors_total",
			Help: "Total number of market data provider failures",
		},
		[]string{"provider", "kind"}, // kind: transport|status|decode
	)

	InvalidMarketCaps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tokenwatch_invalid_market_caps_total",
			Help: "Total number of non-positive market caps substituted with the last known-good value",
		},
	)
)

// Init registers all metrics with Prometheus
func Init() {
	prometheus.MustRegister(Detections)
	prometheus.MustRegister(Refreshes)
	prometheus.MustRegister(ProviderCalls)
	prometheus.MustRegister(ProviderErrors)
	prometheus.MustRegister(InvalidMarketCaps)
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

package api

import (
	"log"
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics with bounded cardinality: room ids and seat ids never become
// labels.
var (
	matchesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "match_rooms_active",
		Help: "Currently running match rooms",
	})

	matchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "match_rooms_total",
		Help: "Total match rooms started",
	}, []string{"mode"}) // bounded: "solo", "pvp"

	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "websocket_connections_active",
		Help: "Currently active WebSocket connections",
	})

	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connection_rejected_total",
		Help: "Connections rejected by rate limiter or origin check",
	}, []string{"reason"}) // bounded: "rate_limit", "origin", "room_cap", "upgrade"

	previewRenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "preview_render_duration_seconds",
		Help:    "Time spent rendering a debug preview frame",
		Buckets: []float64{0.005, 0.01, 0.02, 0.05, 0.1, 0.25},
	})

	requestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})
)

// RecordRequest increments the HTTP request counter. endpoint must be a
// route pattern, never a raw path, to keep cardinality bounded.
func RecordRequest(method, endpoint string, status int) {
	requestTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
}

// RecordConnectionRejected increments the rejection counter for a bounded
// reason label.
func RecordConnectionRejected(reason string) {
	connectionRejected.WithLabelValues(reason).Inc()
}

// RecordMatchStart tracks a new room.
func RecordMatchStart(solo bool) {
	matchesActive.Inc()
	if solo {
		matchesTotal.WithLabelValues("solo").Inc()
	} else {
		matchesTotal.WithLabelValues("pvp").Inc()
	}
}

// RecordMatchEnd tracks a finished room.
func RecordMatchEnd() {
	matchesActive.Dec()
}

// ObservePreviewRender records one preview render duration.
func ObservePreviewRender(d time.Duration) {
	previewRenderDuration.Observe(d.Seconds())
}

// ObservabilityConfig configures the debug server.
type ObservabilityConfig struct {
	Enabled    bool
	ListenAddr string // keep on localhost in production
}

// DefaultObservabilityConfig returns safe defaults.
func DefaultObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		Enabled:    true,
		ListenAddr: "127.0.0.1:6060",
	}
}

// StartDebugServer starts the internal observability server with pprof and
// the Prometheus metrics endpoint. It must stay on localhost.
func StartDebugServer(cfg ObservabilityConfig) {
	if !cfg.Enabled {
		log.Println("debug server disabled")
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	go func() {
		log.Printf("debug server on %s (pprof + metrics)", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
			log.Printf("debug server: %v", err)
		}
	}()
}

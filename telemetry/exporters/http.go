package exporters

import (
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// httpHandler wraps a PrometheusExporter with bearer-token auth and
// request-rate limiting, so a long verifier race loop can leave its
// /metrics endpoint open to an untrusted network without it becoming a
// scrape-storm vector.
//
// Grounded on the teacher's exporters/http.go; the golang.org/x/time/rate
// limiter is carried over unchanged.
type httpHandler struct {
	exporter  *PrometheusExporter
	config    *PrometheusConfig
	limiter   *rate.Limiter
	quietMode atomic.Bool
	requests  atomic.Int64
	errors    atomic.Int64
}

func newHTTPHandler(exporter *PrometheusExporter, config *PrometheusConfig) *httpHandler {
	h := &httpHandler{exporter: exporter, config: config}
	if config.RateLimitPerMinute > 0 {
		perSecond := float64(config.RateLimitPerMinute) / 60.0
		h.limiter = rate.NewLimiter(rate.Limit(perSecond), config.RateLimitBurst)
	}
	h.quietMode.Store(config.QuietMode)
	return h
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	client := h.clientIdentifier(r)

	if h.config.BearerToken != "" {
		if r.Header.Get("Authorization") != "Bearer "+h.config.BearerToken {
			h.reject(w, http.StatusUnauthorized, "unauthorized", client)
			return
		}
	}
	if h.limiter != nil && !h.limiter.Allow() {
		h.reject(w, http.StatusTooManyRequests, "rate limit exceeded", client)
		return
	}

	h.requests.Add(1)
	if !h.quietMode.Load() {
		fmt.Printf("[prometheus-exporter] %s %s from %s\n", r.Method, r.URL.Path, client)
	}

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	h.exporter.writeMetrics(w)
}

func (h *httpHandler) reject(w http.ResponseWriter, status int, message, client string) {
	h.requests.Add(1)
	h.errors.Add(1)
	if !h.quietMode.Load() {
		fmt.Printf("[prometheus-exporter] %d %s (client=%s)\n", status, message, client)
	}
	http.Error(w, message, status)
}

func (h *httpHandler) clientIdentifier(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if parts := strings.Split(xff, ","); len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	return r.RemoteAddr
}

// Stats returns the request/error counters accumulated since Start,
// for the CLI's exit summary. Exists so metrics.ExporterHTTPRequestsTotal
// has a concrete source without requiring the handler itself to depend
// on an Emitter (it would otherwise need one just to report on its own
// request handling, a circular concern the teacher's version has).
func (h *httpHandler) Stats() (requests, errors int64) {
	return h.requests.Load(), h.errors.Load()
}

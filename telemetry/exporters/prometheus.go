// Package exporters serves a module's recorded telemetry events as a
// Prometheus text-exposition endpoint.
//
// Grounded on the teacher's exporters/prometheus.go, trimmed to the
// counter/gauge/single-valued-histogram shapes telemetry.Event actually
// carries (the teacher's HistogramSummary bucket rendering is dropped
// along with HistogramSummary itself — see telemetry.go's package doc
// for why that method was trimmed from the Emitter interface).
package exporters

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/shadowdp-go/shadowdp/telemetry"
)

// PrometheusExporter serves a Recorder's events over HTTP in Prometheus
// text-exposition format.
type PrometheusExporter struct {
	mu     sync.RWMutex
	source *telemetry.Recorder
	config *PrometheusConfig

	server      *http.Server
	httpHandler *httpHandler
}

// NewPrometheusExporter wraps source, serving its recorded events at
// config's endpoint. A nil config applies DefaultPrometheusConfig.
func NewPrometheusExporter(source *telemetry.Recorder, config *PrometheusConfig) *PrometheusExporter {
	if config == nil {
		config = DefaultPrometheusConfig()
	}
	if err := config.Validate(); err != nil {
		config = DefaultPrometheusConfig()
	}
	return &PrometheusExporter{source: source, config: config}
}

// Start begins serving /metrics on a background listener and returns
// once the listener is bound (not once the server has served its first
// request).
func (e *PrometheusExporter) Start() error {
	e.httpHandler = newHTTPHandler(e, e.config)

	mux := http.NewServeMux()
	mux.Handle("/metrics", e.httpHandler)

	listener, err := net.Listen("tcp", e.config.Endpoint)
	if err != nil {
		return fmt.Errorf("exporters: start prometheus listener: %w", err)
	}

	e.mu.Lock()
	e.server = &http.Server{
		Addr:              listener.Addr().String(),
		Handler:           mux,
		ReadHeaderTimeout: e.config.ReadHeaderTimeout,
	}
	e.mu.Unlock()

	go func() {
		if serveErr := e.server.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			fmt.Fprintf(io.Discard, "prometheus exporter stopped: %v\n", serveErr)
		}
	}()
	return nil
}

// Addr returns the address the exporter is bound to, resolving a
// configured ":0" to the actual ephemeral port once Start has run.
func (e *PrometheusExporter) Addr() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.server != nil {
		return e.server.Addr
	}
	return e.config.Endpoint
}

// Stop closes the HTTP listener.
func (e *PrometheusExporter) Stop() error {
	e.mu.RLock()
	server := e.server
	e.mu.RUnlock()
	if server != nil {
		return server.Close()
	}
	return nil
}

func (e *PrometheusExporter) writeMetrics(w io.Writer) {
	events := e.source.Events()
	for _, event := range events {
		name := e.formatName(event.Name)
		labels := e.formatLabels(event.Tags)
		if labels != "" {
			fmt.Fprintf(w, "%s{%s} %g\n", name, labels, event.Value)
		} else {
			fmt.Fprintf(w, "%s %g\n", name, event.Value)
		}
	}
}

func (e *PrometheusExporter) formatName(name string) string {
	if e.config.Prefix != "" {
		name = e.config.Prefix + "_" + name
	}
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.ReplaceAll(name, ".", "_")
	return strings.ToLower(name)
}

// formatLabels renders tags sorted by key for deterministic output
// (Go map iteration order is randomized).
func (e *PrometheusExporter) formatLabels(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	labels := make([]string, 0, len(tags))
	for _, key := range keys {
		value := strings.ReplaceAll(tags[key], `"`, `\"`)
		labels = append(labels, fmt.Sprintf(`%s="%s"`, key, value))
	}
	return strings.Join(labels, ",")
}

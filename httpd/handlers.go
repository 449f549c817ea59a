// Package httpd is the HTTP boundary: thin chi handlers binding query
// parameters to the harvesting engine and the exporter. No protocol
// logic lives here.
package httpd

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/earthmeta/lodserver/entity"
	"github.com/earthmeta/lodserver/harvest"
	"github.com/earthmeta/lodserver/health"
	"github.com/earthmeta/lodserver/mapping"
	"github.com/earthmeta/lodserver/metric"
	"github.com/earthmeta/lodserver/rdf"
	"github.com/earthmeta/lodserver/vocabulary"
)

// oaiArguments are the query parameters the protocol defines. Anything
// else is forwarded as an unknown argument for the engine to reject.
var oaiArguments = map[string]struct{}{
	"verb":            {},
	"identifier":      {},
	"metadataPrefix":  {},
	"set":             {},
	"from":            {},
	"until":           {},
	"resumptionToken": {},
}

var errorCodeRe = regexp.MustCompile(`<error code="([^"]+)"`)

// Handler holds the route handlers.
type Handler struct {
	engine   *harvest.Engine
	exporter *mapping.Exporter
	monitor  *health.Monitor
	metrics  *metric.Metrics
	logger   *slog.Logger
}

// NewHandler wires the handlers. Monitor and metrics may be nil.
func NewHandler(engine *harvest.Engine, exporter *mapping.Exporter, monitor *health.Monitor, metrics *metric.Metrics, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		engine:   engine,
		exporter: exporter,
		monitor:  monitor,
		metrics:  metrics,
		logger:   logger,
	}
}

// OAI handles GET/POST /oai: it binds the request arguments and hands
// them to the engine, which always answers with a protocol document.
func (h *Handler) OAI(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}

	req := harvest.Request{
		Verb:            r.Form.Get("verb"),
		Identifier:      r.Form.Get("identifier"),
		MetadataPrefix:  r.Form.Get("metadataPrefix"),
		Set:             r.Form.Get("set"),
		From:            r.Form.Get("from"),
		Until:           r.Form.Get("until"),
		ResumptionToken: r.Form.Get("resumptionToken"),
	}
	for name := range r.Form {
		if _, ok := oaiArguments[name]; !ok {
			req.Extra = append(req.Extra, name)
		}
	}

	start := time.Now()
	body, err := h.engine.Handle(r.Context(), req)
	if err != nil {
		h.logger.Error("harvest request failed", "verb", req.Verb, "error", err)
		h.observeHarvest(req.Verb, "backend_error", start)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	outcome := "ok"
	if m := errorCodeRe.FindSubmatch(body); m != nil {
		outcome = string(m[1])
	}
	h.observeHarvest(req.Verb, outcome, start)

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.Write(body)
}

func (h *Handler) observeHarvest(verb, outcome string, start time.Time) {
	if h.metrics == nil {
		return
	}
	if verb == "" {
		verb = "(none)"
	}
	h.metrics.HarvestRequests.WithLabelValues(verb, outcome).Inc()
	h.metrics.HarvestDuration.WithLabelValues(verb).Observe(time.Since(start).Seconds())
}

// Export handles GET /export: on-demand RDF serialization of the
// entity repositories.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format, err := rdf.ParseFormat(q.Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	version, err := vocabulary.ParseVersion(q.Get("version"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := mapping.ExportRequest{Format: format, Version: version}
	if ts := q.Get("type"); ts != "" {
		tag, err := entity.ParseTypeTag(ts)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.Type = tag
	}
	if ids := q.Get("ids"); ids != "" {
		req.IDs = strings.Split(ids, ",")
	}

	start := time.Now()
	doc, err := h.exporter.Export(r.Context(), req)
	if h.metrics != nil {
		h.metrics.ExportDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if h.metrics != nil {
			h.metrics.ExportRequests.WithLabelValues(string(format), "error").Inc()
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.metrics != nil {
		h.metrics.ExportRequests.WithLabelValues(string(format), "ok").Inc()
	}

	switch format {
	case rdf.FormatJSONLD:
		w.Header().Set("Content-Type", "application/ld+json")
	default:
		w.Header().Set("Content-Type", "text/turtle; charset=utf-8")
	}
	w.Write([]byte(doc))
}

// Healthz handles GET /healthz: the aggregated component report, 503
// only when some component is unhealthy.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	agg := h.monitor.Aggregate("lodserver")

	w.Header().Set("Content-Type", "application/json")
	if agg.IsUnhealthy() {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(agg)
}

// Readyz handles GET /readyz: ready only when no component is
// unhealthy, so a service whose initial dataset build failed stays out
// of rotation until a refresh succeeds.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !h.monitor.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(h.monitor.Aggregate("lodserver"))
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
}

// Package refresh rebuilds the materialized RDF dataset: it maps the
// full entity closure to a graph, uploads the serialization to the
// triple store under a fresh graph name, and swaps the harvesting
// engine's active graph. Rebuilds run on a cron schedule and on
// repository change events.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/earthmeta/lodserver/harvest"
	"github.com/earthmeta/lodserver/health"
	"github.com/earthmeta/lodserver/mapping"
	"github.com/earthmeta/lodserver/metric"
	"github.com/earthmeta/lodserver/rdf"
	"github.com/earthmeta/lodserver/triplestore"
	"github.com/earthmeta/lodserver/vocabulary"
)

// datasetComponent is the health component name the manager reports
// under.
const datasetComponent = "dataset"

// Manager coordinates dataset rebuilds. Runs are serialized: a
// triggered rebuild waits for an in-flight one to finish.
type Manager struct {
	exporter *mapping.Exporter
	store    triplestore.Store
	engine   *harvest.Engine
	monitor  *health.Monitor
	metrics  *metric.Metrics
	logger   *slog.Logger

	version   vocabulary.Version
	graphBase string
	schedule  string

	mu          sync.Mutex
	everSucceed bool
}

// Config tunes the manager.
type Config struct {
	// Version is the vocabulary version the dataset is built with.
	Version vocabulary.Version
	// GraphBase prefixes the per-build named graph URIs.
	GraphBase string
	// Schedule is a cron expression for periodic rebuilds. Empty
	// disables the schedule.
	Schedule string
}

// NewManager wires a manager. Monitor and metrics may be nil.
func NewManager(exporter *mapping.Exporter, store triplestore.Store, engine *harvest.Engine, monitor *health.Monitor, metrics *metric.Metrics, cfg Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.GraphBase == "" {
		cfg.GraphBase = "urn:lodserver:snapshot"
	}
	return &Manager{
		exporter:  exporter,
		store:     store,
		engine:    engine,
		monitor:   monitor,
		metrics:   metrics,
		logger:    logger,
		version:   cfg.Version,
		graphBase: cfg.GraphBase,
		schedule:  cfg.Schedule,
	}
}

// Run performs one full rebuild: collect, map, serialize, upload,
// swap. A failure before the first successful build marks the dataset
// unhealthy (service not ready); a failure after it marks the dataset
// degraded, since the previous snapshot keeps serving.
func (m *Manager) Run(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := time.Now()
	err := m.rebuild(ctx)
	duration := time.Since(start)

	if m.metrics != nil {
		m.metrics.RefreshDuration.Observe(duration.Seconds())
	}

	if err != nil {
		m.logger.Error("dataset refresh failed", "error", err, "duration", duration)
		if m.metrics != nil {
			m.metrics.RefreshRuns.WithLabelValues("failure").Inc()
		}
		if m.monitor != nil {
			if m.everSucceed {
				m.monitor.UpdateDegraded(datasetComponent, "refresh failed, serving previous snapshot: "+err.Error())
			} else {
				m.monitor.UpdateUnhealthy(datasetComponent, "no dataset snapshot built: "+err.Error())
			}
		}
		return err
	}

	m.everSucceed = true
	if m.metrics != nil {
		m.metrics.RefreshRuns.WithLabelValues("success").Inc()
		m.metrics.DatasetAge.Set(float64(time.Now().Unix()))
	}
	if m.monitor != nil {
		m.monitor.UpdateHealthy(datasetComponent, "snapshot active")
	}
	return nil
}

func (m *Manager) rebuild(ctx context.Context) error {
	graph, err := m.exporter.Graph(ctx, m.version)
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}

	doc, err := graph.Serialize(rdf.FormatTurtle)
	if err != nil {
		return fmt.Errorf("serialize graph: %w", err)
	}

	graphURI := fmt.Sprintf("%s/%s", m.graphBase, uuid.New().String())
	if err := m.store.Replace(ctx, graphURI, triplestore.FormatTurtle, []byte(doc)); err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}

	previous := m.engine.ActiveGraph()
	m.engine.SetActiveGraph(graphURI)

	if m.metrics != nil {
		m.metrics.DatasetTriples.Set(float64(graph.Len()))
	}
	m.logger.Info("dataset snapshot swapped",
		"graph", graphURI,
		"previous", previous,
		"triples", graph.Len())
	return nil
}

// Start runs the initial build, then keeps rebuilding on the cron
// schedule until the context is cancelled. The initial build failing
// does not abort the service; the next scheduled run retries.
func (m *Manager) Start(ctx context.Context) error {
	if err := m.Run(ctx); err != nil {
		m.logger.Warn("initial dataset build failed, starting not ready", "error", err)
	}

	if m.schedule == "" {
		<-ctx.Done()
		return ctx.Err()
	}

	c := cron.New()
	_, err := c.AddFunc(m.schedule, func() {
		if err := m.Run(ctx); err != nil {
			m.logger.Warn("scheduled refresh failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", m.schedule, err)
	}

	c.Start()
	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()
	return ctx.Err()
}

// Trigger requests an immediate rebuild, typically from a repository
// change event. Errors are logged, not returned; the caller fires and
// forgets.
func (m *Manager) Trigger(ctx context.Context) {
	if err := m.Run(ctx); err != nil {
		m.logger.Warn("triggered refresh failed", "error", err)
	}
}

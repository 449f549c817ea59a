package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/earthmeta/lodserver/config"
	"github.com/earthmeta/lodserver/entity"
	"github.com/earthmeta/lodserver/harvest"
	"github.com/earthmeta/lodserver/health"
	"github.com/earthmeta/lodserver/httpd"
	"github.com/earthmeta/lodserver/mapping"
	"github.com/earthmeta/lodserver/metric"
	"github.com/earthmeta/lodserver/refresh"
	"github.com/earthmeta/lodserver/triplestore"
	"github.com/earthmeta/lodserver/vocabulary"
)

// storePingInterval is how often the triple store's health is probed.
const storePingInterval = 30 * time.Second

func runServe(configPath, logLevel string) error {
	cfg, err := config.Load(configPath, nil)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logger := config.NewLogger(cfg.Log)
	slog.SetDefault(logger)

	version, err := vocabulary.ParseVersion(cfg.Repository.VocabularyVersion)
	if err != nil {
		return fmt.Errorf("vocabulary version: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// entity repositories
	fileStore := entity.NewFileStore(cfg.Entities.Dir, logger)
	monitor := health.NewMonitor()
	registry := metric.NewRegistry()

	if err := fileStore.Load(); err != nil {
		// a broken repository is recoverable through the watcher, the
		// service still starts not ready
		logger.Error("entity load failed", "dir", cfg.Entities.Dir, "error", err)
		monitor.UpdateUnhealthy("entities", "load failed: "+err.Error())
	} else {
		monitor.UpdateHealthy("entities", fmt.Sprintf("%d entities loaded", fileStore.Count()))
		registry.Metrics.EntityCount.Set(float64(fileStore.Count()))
	}
	repos := entity.NewRegistry()
	fileStore.RegisterAll(repos)

	// mapping pipeline and triple store
	exporter := mapping.NewExporter(mapping.NewRegistry(logger), repos, logger)
	store := triplestore.NewClient(cfg.Store.QueryURL, cfg.Store.GraphURL,
		triplestore.WithLogger(logger),
		triplestore.WithHTTPClient(&http.Client{Timeout: cfg.Store.Timeout}))

	// harvesting engine over the active snapshot
	engine := harvest.NewEngine(store, version, harvest.Config{
		RepositoryName:    cfg.Repository.Name,
		BaseURL:           cfg.Repository.BaseURL,
		AdminEmail:        cfg.Repository.AdminEmail,
		RepositoryID:      cfg.Repository.ID,
		EarliestDatestamp: cfg.Repository.EarliestDatestamp,
		PageSize:          cfg.Repository.PageSize,
	}, logger)

	manager := refresh.NewManager(exporter, store, engine, monitor, registry.Metrics, refresh.Config{
		Version:   version,
		GraphBase: cfg.Refresh.GraphBase,
		Schedule:  cfg.Refresh.Schedule,
	}, logger)

	handler := httpd.NewHandler(engine, exporter, monitor, registry.Metrics, logger)
	server := httpd.NewServer(cfg.Server, httpd.NewRouter(handler, registry), logger)

	logger.Info("lodserver starting",
		"version", Version,
		"vocabulary", cfg.Repository.VocabularyVersion,
		"base_url", cfg.Repository.BaseURL)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Start(ctx) })
	g.Go(func() error { return manager.Start(ctx) })
	g.Go(func() error {
		pingStore(ctx, store, monitor)
		return nil
	})

	if cfg.Entities.Watch {
		g.Go(func() error {
			return entity.Watch(ctx, cfg.Entities.Dir, cfg.Entities.Debounce, logger, func() {
				if err := fileStore.Load(); err != nil {
					logger.Error("entity reload failed", "error", err)
					monitor.UpdateDegraded("entities", "reload failed, serving previous set: "+err.Error())
					return
				}
				monitor.UpdateHealthy("entities", fmt.Sprintf("%d entities loaded", fileStore.Count()))
				registry.Metrics.EntityCount.Set(float64(fileStore.Count()))
				manager.Trigger(ctx)
			})
		})
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	logger.Info("lodserver stopped")
	return nil
}

// pingStore keeps the triple store health component current.
func pingStore(ctx context.Context, store triplestore.Store, monitor *health.Monitor) {
	probe := func() {
		probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := store.Ping(probeCtx); err != nil {
			monitor.UpdateUnhealthy("triplestore", "ping failed: "+err.Error())
			return
		}
		monitor.UpdateHealthy("triplestore", "store answering")
	}

	probe()
	ticker := time.NewTicker(storePingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe()
		}
	}
}

// Package app wires the data store, the coordinator, the intent router and
// their supporting infrastructure into a runnable service.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apiaudit "github.com/kilianp07/skylark/api/audit"
	"github.com/kilianp07/skylark/api/chat"
	apifleet "github.com/kilianp07/skylark/api/fleet"
	"github.com/kilianp07/skylark/config"
	"github.com/kilianp07/skylark/core/audit"
	"github.com/kilianp07/skylark/core/coordinator"
	"github.com/kilianp07/skylark/core/fleet"
	"github.com/kilianp07/skylark/core/intent"
	coremetrics "github.com/kilianp07/skylark/core/metrics"
	"github.com/kilianp07/skylark/core/store"
	"github.com/kilianp07/skylark/infra/logger"
	"github.com/kilianp07/skylark/infra/metrics"
	"github.com/kilianp07/skylark/infra/mqtt"
	"github.com/kilianp07/skylark/internal/eventbus"

	// data store backends
	_ "github.com/kilianp07/skylark/infra/memstore"
	_ "github.com/kilianp07/skylark/infra/redisstore"
	_ "github.com/kilianp07/skylark/infra/sheets"
)

// Service holds the dispatcher and its collaborators.
type Service struct {
	Router *intent.Router
	Fleet  *fleet.Repository

	cfg      *config.Config
	store    store.DataStore
	audit    audit.LogStore
	sink     coremetrics.MetricsSink
	bus      *eventbus.Bus
	notifier *mqtt.Notifier
	log      logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logger.SetLevel(cfg.Logging.Level)
	logg := logger.New("service")

	ds, err := store.New(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("data store %s: %w", cfg.Store.Type, err)
	}
	// undo releases what was built before a failing step, newest first.
	undo := []func(){func() { _ = store.Close(ds) }}
	fail := func(err error) (*Service, error) {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
		return nil, err
	}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return fail(fmt.Errorf("metrics sink: %w", err))
	}
	undo = append(undo, func() { closeSink(sink) })
	auditStore, err := audit.Open(cfg.Audit)
	if err != nil {
		return fail(fmt.Errorf("audit store: %w", err))
	}
	undo = append(undo, func() { _ = auditStore.Close() })

	bus := eventbus.New()
	undo = append(undo, bus.Close)
	coord, err := coordinator.New(ds, bus, logger.New("coordinator"))
	if err != nil {
		return fail(fmt.Errorf("coordinator: %w", err))
	}
	router, err := intent.NewRouter(coord, sink, auditStore, logger.New("intent"))
	if err != nil {
		return fail(fmt.Errorf("intent router: %w", err))
	}

	svc := &Service{
		Router: router,
		Fleet:  fleet.NewRepository(ds),
		cfg:    cfg,
		store:  ds,
		audit:  auditStore,
		sink:   sink,
		bus:    bus,
		log:    logg,
	}
	if cfg.MQTT.Enabled {
		n, err := mqtt.NewNotifier(cfg.MQTT)
		if err != nil {
			_ = svc.Close()
			return nil, fmt.Errorf("mqtt notifier: %w", err)
		}
		svc.notifier = n
	}
	return svc, nil
}

// Handler returns the HTTP routes of the service.
func (s *Service) Handler() http.Handler {
	r := mux.NewRouter()
	chat.Register(r, s.Router)
	apifleet.Register(r, s.Fleet)
	r.Handle("/api/audit", apiaudit.NewHandler(s.audit, s.cfg.HTTP.AuditToken)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	return r
}

func (s *Service) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":         "ok",
		"store":          s.cfg.Store.Type,
		"events_dropped": s.bus.Dropped(),
	})
}

// Start subscribes the background consumers to the event bus.
func (s *Service) Start(ctx context.Context) {
	metrics.StartEventCollector(ctx, s.bus, s.sink)
	if s.notifier != nil {
		s.notifier.Start(ctx, s.bus)
	}
}

// Run serves HTTP and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	s.Start(ctx)
	srv := &http.Server{Addr: s.cfg.HTTP.Addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		timeout := time.Duration(s.cfg.HTTP.ShutdownSeconds) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
		cancel()
	}()
	s.log.Infof("listening on %s (store=%s)", s.cfg.HTTP.Addr, s.cfg.Store.Type)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Ask handles a single utterance outside of HTTP.
func (s *Service) Ask(ctx context.Context, utterance string) intent.Reply {
	return s.Router.Handle(ctx, utterance)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.notifier != nil {
		s.notifier.Disconnect()
	}
	closeSink(s.sink)
	return errors.Join(s.audit.Close(), store.Close(s.store))
}

func closeSink(sink coremetrics.MetricsSink) {
	switch v := sink.(type) {
	case *coremetrics.MultiSink:
		for _, s := range v.Sinks {
			closeSink(s)
		}
	case interface{ Close() }:
		v.Close()
	}
}

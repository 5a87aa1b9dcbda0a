package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mozark/roi-planner/internal/benchmark"
	"github.com/mozark/roi-planner/internal/config"
	"github.com/mozark/roi-planner/internal/events"
	handlers "github.com/mozark/roi-planner/internal/handlers/v1alpha1"
	"github.com/mozark/roi-planner/internal/service"
	"github.com/mozark/roi-planner/internal/store"
	"github.com/mozark/roi-planner/pkg/metrics"
	"github.com/mozark/roi-planner/pkg/middleware"
	"go.uber.org/zap"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg         *config.Config
	store       store.Store
	listener    net.Listener
	table       benchmark.Table
	eventWriter *events.EventProducer
}

// New returns a new instance of a roi-planner server. eventWriter may be nil, in which
// case analysis requests are stored without notification.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
	table benchmark.Table,
	eventWriter *events.EventProducer,
) *Server {
	return &Server{
		cfg:         cfg,
		store:       store,
		listener:    listener,
		table:       table,
		eventWriter: eventWriter,
	}
}

// Router builds the API router with its middleware chain.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		middleware.StripPathPrefix(s.cfg.Service.PathPrefix),
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Service.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			ExposedHeaders:   []string{"Content-Disposition", "X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		chiMiddleware.RequestID,
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	calculatorService := service.NewCalculatorService(s.table)
	scenarioService := service.NewScenarioService(s.store, s.table, s.eventWriter)

	h := handlers.NewServiceHandler(
		calculatorService,
		scenarioService,
		service.NewAnalysisRequestService(s.store, scenarioService, s.eventWriter),
		service.NewReportService(scenarioService),
	)
	h.Routes(router)

	return router
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: s.Router()}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// Serve returns as soon as Shutdown starts, in-flight requests finish after that.
	<-shutdownDone

	return nil
}

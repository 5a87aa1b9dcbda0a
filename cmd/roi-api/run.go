package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	apiserver "github.com/mozark/roi-planner/internal/api_server"
	"github.com/mozark/roi-planner/internal/benchmark"
	"github.com/mozark/roi-planner/internal/config"
	"github.com/mozark/roi-planner/internal/events"
	"github.com/mozark/roi-planner/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the roi planner api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, teardown, err := setup()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		defer teardown()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		store := store.NewStore(db)
		defer store.Close()

		if err := migrate(cfg, db, store); err != nil {
			zap.S().Fatalw("running migrations", "error", err)
		}

		eventWriter, err := newEventProducer(cfg)
		if err != nil {
			zap.S().Fatalw("creating event producer", "error", err)
		}
		defer func() {
			if err := eventWriter.Close(); err != nil {
				zap.S().Warnw("failed to flush events", "error", err)
			}
		}()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		apiListener, err := newListener(cfg.Service.Address)
		if err != nil {
			zap.S().Fatalw("creating listener", "error", err)
		}
		metricsListener, err := newListener(cfg.Service.MetricsAddress)
		if err != nil {
			zap.S().Fatalw("creating listener", "error", err)
		}

		// Wait returns after both servers finished their graceful shutdown, the deferred
		// event producer and store closes run after it.
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			server := apiserver.New(cfg, store, apiListener, benchmark.Default(), eventWriter)
			if err := server.Run(gctx); err != nil {
				return fmt.Errorf("running api server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, metricsListener)
			if err := metricsServer.Run(gctx); err != nil {
				return fmt.Errorf("running metrics server: %w", err)
			}
			return nil
		})

		if err := g.Wait(); err != nil {
			zap.S().Errorw("server stopped", "error", err)
			return err
		}
		return nil
	},
}

func newEventProducer(cfg *config.Config) (*events.EventProducer, error) {
	var w events.Writer = &events.StdoutWriter{}
	if cfg.Service.Notify.Writer == config.NotifyWriterHTTP {
		httpWriter, err := events.NewHTTPWriter(cfg.Service.Notify.URL)
		if err != nil {
			return nil, err
		}
		w = httpWriter
	}
	zap.S().Infow("event producer created", "writer", cfg.Service.Notify.Writer, "topic", cfg.Service.Notify.Topic)
	return events.NewEventProducer(w, events.WithOutputTopic(cfg.Service.Notify.Topic)), nil
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}

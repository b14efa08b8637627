package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/internal/logging"
	"github.com/aretw0/canopy/pkg/adapters/httpapi"
	"github.com/aretw0/canopy/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the support pipeline in server mode, exposing a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if addr, _ := cmd.Flags().GetString("addr"); cmd.Flags().Changed("addr") {
			cfg.ListenAddr = addr
		}

		logger := logging.NewJSON(slog.LevelInfo)
		metrics := observability.NewMetrics()
		store := buildStore(cfg)

		engine, retriever, err := buildEngine(cfg, store,
			canopy.WithLogger(logger),
			canopy.WithLifecycleHooks(metrics.Hooks()),
		)
		if err != nil {
			fmt.Printf("Error initializing canopy: %v\n", err)
			os.Exit(1)
		}
		defer retriever.Close()

		handler := httpapi.NewHandler(engine,
			httpapi.WithStore(store),
			httpapi.WithMetricsRegistry(metrics.Registry()),
			httpapi.WithServerLogger(logger),
		)

		srv := &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting canopy server", "addr", srv.Addr, "model", cfg.Model)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutdown started", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("canopy server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
}

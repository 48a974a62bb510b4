package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aretw0/morphfst"
	httpAdapter "github.com/aretw0/morphfst/internal/adapters/http"
	"github.com/aretw0/morphfst/internal/cli"
	"github.com/aretw0/morphfst/pkg/observability"
	"github.com/aretw0/morphfst/pkg/persistence/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Builds the transducer if needed and serves realizations over HTTP:
GET /realize?q=, POST /realize, GET /stats, GET /healthz and GET /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		metrics := observability.NewMetrics()
		if err := metrics.Register(reg); err != nil {
			return err
		}
		storeMetrics := middleware.NewStoreMetrics(reg)

		cfg, eng, err := setup(cmd, cli.EngineOptions{
			Hooks:       metrics.Hooks(),
			Middlewares: []middleware.Middleware{middleware.NewMetricsMiddleware(storeMetrics)},
			Cache:       true,
		})
		if err != nil {
			return err
		}
		defer eng.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}

		if _, err := eng.EnsureBuilt(cmd.Context(), cfg.Rules, cfg.FST); err != nil {
			return err
		}

		handler := httpAdapter.NewHandler(eng.Bind(cfg.FST),
			httpAdapter.WithLogger(eng.Logger()),
			httpAdapter.WithVersion(strings.TrimSpace(morphfst.Version)),
			httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})),
		)

		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting morphfst server on %s\n", srv.Addr)
			fmt.Printf("Serving transducer: %s\n", cfg.FST)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			return err

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("morphfst server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default from config, :8080)")
}

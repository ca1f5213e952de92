package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/navfocus/internal/cli"
	"github.com/aretw0/navfocus/internal/presentation/tui"
	httpAdapter "github.com/aretw0/navfocus/pkg/adapters/http"
	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [scenario]",
	Short: "Start the HTTP inspector",
	Long: `Mounts a container over the initial state of a scenario (or a single
"home" route) and exposes dispatch, trace, focus and a live event stream over
HTTP, with Prometheus metrics on /metrics.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := globalOptions(cmd)
		port, _ := cmd.Flags().GetString("port")

		logger, err := cli.NewLogger(opts.LogLevel)
		if err != nil {
			return err
		}

		initial := &domain.NavigationState{Routes: []domain.Route{{Key: "home"}}}
		if len(args) == 1 {
			// The publisher is attached to the inspector, not the workspace.
			wsOpts := opts
			wsOpts.RedisAddr = ""
			ws, closeWs, err := cli.OpenWorkspace(cmd.Context(), wsOpts, logger)
			if err != nil {
				return err
			}
			sc, err := ws.Load(cmd.Context(), args[0])
			closeWs()
			if err != nil {
				return err
			}
			initial = sc.Initial
		}

		inspectorOpts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
		pub, closePub, err := cli.RedisObserver(cmd.Context(), opts.RedisAddr, logger)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer closePub()
		if pub != nil {
			inspectorOpts = append(inspectorOpts, httpAdapter.WithObserver(pub))
		}

		inspector, err := httpAdapter.NewInspector(initial, inspectorOpts...)
		if err != nil {
			return err
		}
		defer inspector.Close()

		handler, err := inspector.Handler()
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			tui.PrintBanner(os.Stdout, cli.ColorEnabled(os.Stdout))
			cli.PrintSystemMessage(os.Stdout, "inspector listening on "+srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			cli.PrintSystemMessage(os.Stdout, fmt.Sprintf("shutting down (%v)", sig))

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			cli.PrintSystemMessage(os.Stdout, "inspector stopped")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}

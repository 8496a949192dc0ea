package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"puzzle-service/internal/app"
	"puzzle-service/internal/config"
	"puzzle-service/internal/content"
	"puzzle-service/internal/engine"
	"puzzle-service/internal/infra/gemini"
	"puzzle-service/internal/store"
	transport "puzzle-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the puzzle server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

// newProvider wires the generator client and credential lookup into a
// content provider.
func newProvider(cfg config.Config, kv store.KV) *content.Provider {
	client := gemini.New(gemini.Config{
		Endpoint:   cfg.Generator.Endpoint,
		Model:      cfg.Generator.Model,
		HTTPClient: &http.Client{},
	})
	credentials := store.Credentials{KV: kv, Fallback: cfg.Generator.APIKey}
	return content.NewProvider(client, credentials,
		content.WithTimeout(config.Duration(cfg.Generator.Timeout, content.DefaultTimeout)),
	)
}

func engineDelays(cfg config.Engine) engine.Delays {
	def := engine.DefaultDelays()
	return engine.Delays{
		Mismatch: config.Duration(cfg.MismatchDelay, def.Mismatch),
		Correct:  config.Duration(cfg.CorrectDelay, def.Correct),
		Wrong:    config.Duration(cfg.WrongDelay, def.Wrong),
		Math:     config.Duration(cfg.MathDelay, def.Math),
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	setupLogging(cfg.Log.Level)

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	service := app.NewPuzzleService(b.kv, b.sessions, newProvider(cfg, b.kv), app.Options{
		Delays:    engineDelays(cfg.Engine),
		Preschool: cfg.Menu.Preschool,
	})
	if user, ok := service.Restore(ctx); ok {
		log.Info().Str("user", user).Msg("restored identity")
	}
	defer service.EndActive()

	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           transport.NewRouter(service),
		ReadHeaderTimeout: 15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Str("driver", cfg.Driver()).Msg("starting puzzle service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"shembeldon-league/internal/app"
	"shembeldon-league/internal/config"
	"shembeldon-league/internal/scheduler"
	"shembeldon-league/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogger(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l, st, err := app.OpenLeague(ctx, cfg, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open league")
	}
	defer st.Close()

	jobs, err := scheduler.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	if _, err := jobs.Every("flush-league", cfg.Storage.RetryInterval, l.Flush); err != nil {
		log.Fatal().Err(err).Msg("Failed to register save retry")
	}
	jobs.Start()
	defer jobs.Stop()

	server := web.NewServer(l, web.NewRenderer(cfg.IsDevelopment()))
	handler := server.Routes()

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		log.Info().Msg("Starting in Lambda mode")
		adapter := httpadapter.New(handler)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	httpServer := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.App.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("storage", cfg.Storage.Driver).Msg("Starting server")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		if err := l.Flush(); err != nil {
			log.Error().Err(err).Msg("Unsaved league changes lost on shutdown")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	databridge "github.com/opendatakr/databridge"
	"github.com/opendatakr/databridge/config"
	"github.com/opendatakr/databridge/server"
	"github.com/opendatakr/databridge/tourism"
	"github.com/opendatakr/databridge/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		flagConfig    = flag.String("config", "", "path to an optional YAML config file")
		flagTransport = flag.String("transport", "", "transport protocol: stdio, sse, or streamable-http")
		flagHost      = flag.String("host", "", "host address for HTTP transports")
		flagPort      = flag.Int("port", 0, "port for HTTP transports")
		flagPath      = flag.String("path", "", "endpoint path for the streamable-http transport")
		flagLogLevel  = flag.String("log-level", "", "log level: debug, info, warn, or error")
	)
	flag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		return err
	}
	// Flags beat both the file and the environment.
	if *flagTransport != "" {
		cfg.Transport = *flagTransport
	}
	if *flagHost != "" {
		cfg.Host = *flagHost
	}
	if *flagPort != 0 {
		cfg.Port = *flagPort
	}
	if *flagPath != "" {
		cfg.Path = *flagPath
	}
	if *flagLogLevel != "" {
		cfg.LogLevel = *flagLogLevel
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	pool := databridge.NewPool(databridge.DefaultRequestTimeout)
	metrics := databridge.NewMetrics("databridge", prometheus.DefaultRegisterer)

	tourismClient := tourism.New(cfg.ClientConfig(), pool, logger, metrics)
	var weatherClient *weather.Client
	if cfg.Weather.APIKey != "" {
		weatherClient = weather.New(cfg.Weather.APIKey, "", pool, logger)
	} else {
		logger.Info("weather API key not set, weather tools disabled")
	}

	var shutdownOnce sync.Once
	shutdown := func() {
		shutdownOnce.Do(func() {
			tourismClient.Close()
			if weatherClient != nil {
				weatherClient.Close()
			}
			pool.Close()
			logger.Info("resources released")
		})
	}
	defer shutdown()

	srv := server.New(tourismClient, weatherClient, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server",
		zap.String("transport", cfg.Transport),
		zap.String("version", server.Version),
	)

	switch cfg.Transport {
	case config.TransportStdio:
		return serveStdio(ctx, srv)
	case config.TransportSSE, config.TransportStreamable:
		return serveHTTP(ctx, cfg, srv, logger)
	default:
		return fmt.Errorf("unsupported transport %q", cfg.Transport)
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(parsed)
	// On stdio the protocol owns stdout, so logs must stay on stderr.
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}

func serveStdio(ctx context.Context, srv *server.Server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ServeStdio() }()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func serveHTTP(ctx context.Context, cfg config.Config, srv *server.Server, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", srv.HealthHandler())
	mux.Handle("/metrics", promhttp.Handler())

	switch cfg.Transport {
	case config.TransportSSE:
		mux.Handle("/", srv.SSEHandler())
	default:
		mux.Handle(cfg.Path, srv.StreamableHandler(cfg.Path))
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr()), zap.String("path", cfg.Path))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cbodonnell/simon/pkg/api"
	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/log"
	"github.com/cbodonnell/simon/pkg/network"
	"github.com/cbodonnell/simon/pkg/repositories"
	"github.com/cbodonnell/simon/pkg/session"
	"github.com/cbodonnell/simon/pkg/version"
	"github.com/cbodonnell/simon/pkg/workers"
)

func main() {
	port := flag.Int("port", 9090, "port to listen on")
	allowOrigin := flag.String("allow-origin", "*", "value of the Access-Control-Allow-Origin header")
	originPatterns := flag.String("origin-patterns", "", "comma-separated list of cross origin hosts allowed to open game sessions")
	tickInterval := flag.Duration("tick-interval", session.DefaultTickInterval, "interval between session ticks")
	maxSessions := flag.Int("max-sessions", session.DefaultMaxSessions, "maximum number of concurrent game sessions")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting server version %s", version.Get())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connStr := os.Getenv("SIMON_DATABASE_URL")
	if connStr == "" {
		connStr = "sqlite://simon.db"
	}
	migrationsDir := os.Getenv("SIMON_MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "./migrations"
	}
	repository, err := repositories.Open(ctx, connStr, migrationsDir)
	if err != nil {
		panic(fmt.Sprintf("Failed to open repository: %v", err))
	}
	defer repository.Close(ctx)

	resultChannelSize := 100
	resultChan := make(chan *types.Result, resultChannelSize)

	saveResultWorker := workers.NewSaveResultWorker(workers.NewSaveResultWorkerOptions{
		Repository: repository,
		ResultChan: resultChan,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		saveResultWorker.Start(ctx)
	}()

	sessionManager := session.NewManager(session.NewManagerOptions{
		MaxSessions:  *maxSessions,
		Results:      resultChan,
		TickInterval: *tickInterval,
	})

	var patterns []string
	if *originPatterns != "" {
		patterns = strings.Split(*originPatterns, ",")
	}
	wsHandler := network.NewWSHandler(network.NewWSHandlerOptions{
		Ctx:            ctx,
		Sessions:       sessionManager,
		OriginPatterns: patterns,
	})

	apiServerOpts := api.NewAPIServerOptions{
		Port:        *port,
		AllowOrigin: *allowOrigin,
		Repository:  repository,
		WSHandler:   wsHandler,
	}
	tlsCertFile := os.Getenv("SIMON_TLS_CERT_FILE")
	tlsKeyFile := os.Getenv("SIMON_TLS_KEY_FILE")
	if tlsCertFile != "" && tlsKeyFile != "" {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: tlsCertFile,
			KeyFile:  tlsKeyFile,
		}
	}
	server := api.NewAPIServer(apiServerOpts)
	go server.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	log.Info("Shutting down with %d active sessions", sessionManager.Count())

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}
	<-workerDone
}

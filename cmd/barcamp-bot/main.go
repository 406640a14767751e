// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/barcamp-bot/lib/barcamp"
	"github.com/bureau-foundation/barcamp-bot/lib/clock"
	"github.com/bureau-foundation/barcamp-bot/lib/config"
	"github.com/bureau-foundation/barcamp-bot/lib/process"
	"github.com/bureau-foundation/barcamp-bot/lib/ref"
	"github.com/bureau-foundation/barcamp-bot/lib/schema"
	"github.com/bureau-foundation/barcamp-bot/lib/service"
	"github.com/bureau-foundation/barcamp-bot/lib/telemetry"
	"github.com/bureau-foundation/barcamp-bot/lib/version"
	"github.com/bureau-foundation/barcamp-bot/messaging"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		configPath  string
		envFile     string
		showVersion bool
	)
	flagSet := pflag.NewFlagSet("barcamp-bot", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "path to the config file (default: $"+config.EnvConfigPath+")")
	flagSet.StringVar(&envFile, "env-file", "", "load environment variables from this .env file before reading the config")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return &process.ExitError{Code: 2, Err: err}
	}
	if showVersion {
		version.Print(os.Stdout, "barcamp-bot")
		return nil
	}
	if flagSet.NArg() > 0 {
		return &process.ExitError{Code: 2, Err: fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))}
	}

	if envFile != "" {
		if err := config.LoadEnvFile(envFile); err != nil {
			return err
		}
	}

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := service.NewLogger(cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		ServiceName: cfg.Tracing.ServiceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("flushing traces", "error", err)
		}
	}()

	client, err := messaging.NewClient(messaging.ClientConfig{
		HomeserverURL:     cfg.Homeserver,
		Logger:            logger,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	if err != nil {
		return err
	}

	versions, err := client.ServerVersions(ctx)
	if err != nil {
		return fmt.Errorf("contacting homeserver %s: %w", cfg.Homeserver, err)
	}
	logger.Info("homeserver reachable", "homeserver", cfg.Homeserver, "versions", versions.Versions)

	session, userID, err := service.OpenSession(ctx, service.OpenSessionConfig{
		Client:   client,
		Path:     cfg.SessionStoredFile,
		Username: cfg.Username,
		Password: passwordSource(cfg),
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	dispatcher := barcamp.NewDispatcher(barcamp.DispatcherConfig{
		Client:    session,
		BotUserID: userID,
		Prefix:    cfg.Prefix,
		Clock:     clock.Real(),
		Metrics:   barcamp.NewMetrics(registry),
		Logger:    logger,
	})

	metricsDone := make(chan error, 1)
	if cfg.Metrics.Address != "" {
		metricsServer := service.NewHTTPServer(service.HTTPServerConfig{
			Address: cfg.Metrics.Address,
			Handler: service.NewMetricsHandler(registry),
			Logger:  logger,
		})
		go func() {
			metricsDone <- metricsServer.Serve(ctx)
		}()
		select {
		case <-metricsServer.Ready():
			logger.Info("metrics endpoint ready", "address", metricsServer.Addr().String())
		case err := <-metricsDone:
			return err
		}
	} else {
		close(metricsDone)
	}

	filter := messaging.SyncFilter{
		TimelineTypes: []ref.EventType{schema.MatrixEventTypeMessage},
	}.Inline()

	// Only invites are taken from the initial sync. Its timeline is
	// backlog from before startup and is not answered.
	since, initial, err := service.InitialSync(ctx, session, filter)
	if err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.MaxConcurrentHandlers)

	host := &bot{
		session:      session,
		dispatcher:   dispatcher,
		joinOnInvite: cfg.JoinOnInvite,
		group:        group,
		logger:       logger,
	}
	host.acceptInvites(groupCtx, initial.Rooms.Invite)

	logger.Info("barcamp bot running",
		"user_id", userID,
		"prefix", cfg.Prefix,
		"join_on_invite", cfg.JoinOnInvite,
		"version", version.Info(),
	)

	service.RunSyncLoop(groupCtx, session, service.SyncConfig{Filter: filter}, since,
		host.handleSync, clock.Real(), logger)

	err = group.Wait()
	if ctx.Err() != nil {
		logger.Info("received shutdown signal, exiting")
		err = nil
	}
	if metricsErr := <-metricsDone; metricsErr != nil {
		logger.Error("metrics server error", "error", metricsErr)
	}
	return err
}

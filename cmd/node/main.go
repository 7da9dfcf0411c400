// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-hybrid-sync/internal/adapter"
	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/handler"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/server"
	"github.com/MKhiriev/go-hybrid-sync/internal/service"
	"github.com/MKhiriev/go-hybrid-sync/internal/store"
	"github.com/MKhiriev/go-hybrid-sync/internal/workers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	boot := logger.NewLogger("hybrid-node")
	cfg, err := config.GetNodeConfig(os.Args[1:])
	if err != nil {
		boot.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	log, logFile, err := logger.NewFileLogger("hybrid-node", logger.FileOptions{
		Dir:        cfg.LogDir(),
		FileName:   config.NodeLogFileName,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		boot.Fatal().Err(err).Msg("error opening node log")
	}
	defer logFile.Close()

	if err = run(cfg, log); err != nil {
		log.Error().Err(err).Msg("node stopped with error")
		logFile.Close()
		os.Exit(1)
	}
}

func run(cfg *config.NodeConfig, log *logger.Logger) error {
	if cfg.Log.Level != "" {
		if err := logger.SetLevel(cfg.Log.Level); err != nil {
			log.Warn().Err(err).Str("level", cfg.Log.Level).Msg("unknown log level, keeping default")
		}
	}
	log.Info().
		Str("node_id", cfg.App.NodeID).
		Str("version", cfg.App.Version).
		Str("data_path", cfg.LocalDataPath).
		Msg("starting field node")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	audit, err := logger.NewAuditLogger(logger.FileOptions{
		Dir:        cfg.LogDir(),
		FileName:   config.AuditLogFileName,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("error opening audit log: %w", err)
	}
	defer audit.Close()

	storages, err := store.NewLocalStorages(ctx, cfg.DatabasePath(), log)
	if err != nil {
		return fmt.Errorf("error creating local storage: %w", err)
	}
	defer storages.Close()

	cloud, err := adapter.NewHTTPCloudAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		return fmt.Errorf("error creating cloud adapter: %w", err)
	}

	settings, err := config.NewSettingsStore(cfg.SettingsPath(), cfg.DefaultSettings())
	if err != nil {
		return fmt.Errorf("error loading settings: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	services := service.NewNodeServices(storages, cloud, settings, cfg, registry, audit, log)

	handlers, err := handler.NewNodeHandlers(services, cfg.Server, registry, cfg.App.Version, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server.HTTPAddress, cfg.Server.RequestTimeout, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	err = workers.New(log).
		Add("connectivity", services.Monitor).
		Add("scheduler", services.Scheduler).
		Add("backup", services.BackupJob).
		Add("settings", config.NewSettingsWatcher(settings, log)).
		Add("http", srv).
		Run(ctx)

	log.Info().Msg("field node shut down")
	return err
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

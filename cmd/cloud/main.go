// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

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

	log := logger.NewLogger("hybrid-cloud")
	cfg, err := config.GetCloudConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.Version == "" {
		cfg.Version = buildVersion
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewCloudStorages(ctx, cfg.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handlers, err := handler.NewCloudHandlers(service.NewCloudServices(storages, cfg, log), cfg, registry, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.HTTPAddress, cfg.RequestTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = workers.New(log).Add("http", srv).Run(ctx); err != nil {
		log.Error().Err(err).Msg("cloud store stopped with error")
		storages.Close()
		os.Exit(1)
	}
	log.Info().Msg("cloud store shut down")
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

/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carverauto/pfchistoryd/pkg/config"
	"github.com/carverauto/pfchistoryd/pkg/flexcounter"
	"github.com/carverauto/pfchistoryd/pkg/lifecycle"
	"github.com/carverauto/pfchistoryd/pkg/logger"
	"github.com/carverauto/pfchistoryd/pkg/natsutil"
	"github.com/carverauto/pfchistoryd/pkg/pfchistory"
	"github.com/carverauto/pfchistoryd/pkg/ports"
	"github.com/carverauto/pfchistoryd/pkg/swss"
	"github.com/carverauto/pfchistoryd/pkg/version"
)

var (
	errFailedToLoadConfig = errors.New("failed to load config")
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/sonic/pfchistoryd.json", "Path to pfchistoryd config file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Fprintln(os.Stdout, version.GetFullVersion())

		return nil
	}

	ctx := context.Background()

	// Step 1: Load configuration on top of the defaults
	cfg := pfchistory.DefaultConfig()

	if err := config.NewConfig(nil).LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	// Step 2: Create logger from loaded config
	mainLogger, err := lifecycle.CreateComponentLogger("pfchistoryd", cfg.Logging)
	if err != nil {
		return err
	}

	mainLogger.Info().Str("version", version.GetFullVersion()).Msg("Starting pfchistoryd")

	if safe, err := config.SanitizeForLogging(&cfg); err == nil {
		mainLogger.Debug().RawJSON("config", safe).Msg("Effective configuration")
	}

	// Step 3: Connect to the switch databases
	dbs, err := connectDatabases(ctx, &cfg, mainLogger)
	if err != nil {
		return err
	}

	defer dbs.close(mainLogger)

	// Step 4: Optional registration event publisher
	var publisher pfchistory.EventPublisher

	if cfg.NATS.Enabled() {
		eventPublisher, nc, err := natsutil.Connect(ctx, cfg.NATS, mainLogger.WithComponent("events"))
		if err != nil {
			return err
		}

		defer nc.Close()

		publisher = eventPublisher
	}

	// Step 5: Build the orchestrator; this clears stale history and sets up the group
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics := pfchistory.NewMetrics(registry)

	inventory := ports.NewRedisInventory(dbs.appl, dbs.counters, mainLogger.WithComponent("ports"))
	if err := inventory.Refresh(ctx); err != nil {
		mainLogger.Warn().Err(err).Msg("Port inventory not available yet")
	}

	orch, err := pfchistory.New(ctx, &pfchistory.Dependencies{
		HistoryTable:      dbs.counters.Table(pfchistory.HistoryTableName),
		FlexCounterConfig: dbs.config.Table(pfchistory.FlexCounterConfigTable),
		FlexCounter: flexcounter.NewRedisManager(
			dbs.flex, dbs.counters, cfg.PluginDir, mainLogger.WithComponent("flexcounter")),
		Inventory: inventory,
		Publisher: publisher,
		Metrics:   metrics,
		Logger:    mainLogger.WithComponent("pfchistory"),
	})
	if err != nil {
		return err
	}

	// Step 6: Run the task loop with lifecycle management
	svc := pfchistory.NewService(&pfchistory.ServiceConfig{
		Orch:           orch,
		Consumer:       swss.NewConsumer(swss.ConfigDB, pfchistory.ConfigTableName, cfg.QueueCapacity),
		Source:         swss.NewSubscriberStateTable(dbs.config, pfchistory.ConfigTableName, mainLogger.WithComponent("subscriber")),
		Refresher:      inventory,
		TaskInterval:   time.Duration(cfg.TaskInterval),
		MetricsAddr:    cfg.MetricsAddr,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Logger:         mainLogger,
	})

	return lifecycle.Run(ctx, &lifecycle.ServiceOptions{
		ServiceName: "pfchistoryd",
		Service:     svc,
		Logger:      mainLogger,
	})
}

type databases struct {
	appl     *swss.DB
	counters *swss.DB
	config   *swss.DB
	flex     *swss.DB
}

func connectDatabases(ctx context.Context, cfg *pfchistory.Config, log logger.Logger) (*databases, error) {
	dbs := &databases{}

	targets := []struct {
		dst  **swss.DB
		name string
		id   int
	}{
		{&dbs.appl, swss.ApplDB, cfg.Databases.ApplDB},
		{&dbs.counters, swss.CountersDB, cfg.Databases.CountersDB},
		{&dbs.config, swss.ConfigDB, cfg.Databases.ConfigDB},
		{&dbs.flex, swss.FlexCounterDB, cfg.Databases.FlexCounterDB},
	}

	for _, target := range targets {
		db, err := swss.ConnectWithRetry(ctx, &cfg.Redis, target.name, target.id, log)
		if err != nil {
			dbs.close(nil)

			return nil, err
		}

		*target.dst = db
	}

	return dbs, nil
}

func (d *databases) close(log logger.Logger) {
	for _, db := range []*swss.DB{d.appl, d.counters, d.config, d.flex} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil && log != nil {
			log.Warn().Err(err).Str("db", db.Name()).Msg("Error closing database")
		}
	}
}

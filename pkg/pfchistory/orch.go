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

// Package pfchistory enables and disables PFC receive-pause history polling per port.
//
// An Orch clears stale history records and prepares the PFC_STAT_HISTORY polling
// group when constructed, then turns CONFIG_DB PFC_STAT_HISTORY rows into flex
// counter subscriptions through its Registrar.
package pfchistory

import (
	"context"
	"fmt"
	"time"

	"github.com/carverauto/pfchistoryd/pkg/flexcounter"
	"github.com/carverauto/pfchistoryd/pkg/logger"
	"github.com/carverauto/pfchistoryd/pkg/ports"
	"github.com/carverauto/pfchistoryd/pkg/sai"
	"github.com/carverauto/pfchistoryd/pkg/swss"
)

const (
	// GroupName is the flex counter group and key prefix for history polling.
	GroupName = "PFC_STAT_HISTORY"
	// ConfigTableName is the CONFIG_DB table whose rows enable history per port.
	ConfigTableName = "PFC_STAT_HISTORY"
	// HistoryTableName is the COUNTERS_DB table the plugin writes history into.
	HistoryTableName = "PFC_STAT_HISTORY"
	// FlexCounterConfigTable holds operator-facing group settings in CONFIG_DB.
	FlexCounterConfigTable = "FLEX_COUNTER_TABLE"
	// PluginScript is the per-sample plugin bound to the group.
	PluginScript = "pfc_stat_history.lua"
	// DefaultPollInterval is the group poll interval configured at startup.
	DefaultPollInterval = 1000 * time.Millisecond
	defaultPollMillis   = "1000"
)

// Dependencies are the collaborators an Orch is built from.
type Dependencies struct {
	// HistoryTable is COUNTERS_DB PFC_STAT_HISTORY.
	HistoryTable swss.Table
	// FlexCounterConfig is CONFIG_DB FLEX_COUNTER_TABLE.
	FlexCounterConfig swss.Table
	FlexCounter       flexcounter.Manager
	Inventory         ports.Inventory
	Publisher         EventPublisher // optional
	Metrics           *Metrics       // optional
	Logger            logger.Logger
	// PortStats overrides the counters each port is subscribed to. Nil selects
	// sai.PFCRxPktsStats.
	PortStats sai.PortStatList
}

// Orch is the PFC stat history orchestrator.
type Orch struct {
	historyTable      swss.Table
	flexCounterConfig swss.Table
	flexCounter       flexcounter.Manager
	inventory         ports.Inventory
	metrics           *Metrics
	logger            logger.Logger
	portStats         sai.PortStatList
	registrar         *Registrar
	hook              *flexcounter.Hook
}

// New clears stale history records and initializes the polling group. Store
// failures during either step are returned; the Orch must not be used then.
func New(ctx context.Context, deps *Dependencies) (*Orch, error) {
	if deps.HistoryTable == nil || deps.FlexCounterConfig == nil || deps.FlexCounter == nil ||
		deps.Inventory == nil || deps.Logger == nil {
		return nil, errMissingDependency
	}

	portStats := deps.PortStats
	if portStats == nil {
		portStats = sai.PFCRxPktsStats()
	}

	o := &Orch{
		historyTable:      deps.HistoryTable,
		flexCounterConfig: deps.FlexCounterConfig,
		flexCounter:       deps.FlexCounter,
		inventory:         deps.Inventory,
		metrics:           deps.Metrics,
		logger:            deps.Logger,
		portStats:         portStats,
		registrar:         NewRegistrar(GroupName, deps.FlexCounter, deps.Publisher, deps.Metrics, deps.Logger),
	}

	if err := o.removeAllStatHistoryCounters(ctx); err != nil {
		return nil, err
	}

	if err := o.initializeGroup(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// Registrar returns the registrar driven by DoTask.
func (o *Orch) Registrar() *Registrar {
	return o.registrar
}

// Hook returns the plugin bound to the group, or nil when none could be loaded.
func (o *Orch) Hook() *flexcounter.Hook {
	return o.hook
}

// DoTask processes the pending entries of consumer in order.
//
// Nothing is consumed while ports are not ready. A key that does not resolve to a
// port stops the pass and leaves that entry and every later one pending. Every other
// entry is acknowledged once handled, whether it was applied or rejected.
func (o *Orch) DoTask(ctx context.Context, consumer *swss.Consumer) {
	if !o.inventory.AllPortsReady() {
		o.metrics.deferredPass()
		o.logger.Debug().Int("pending", consumer.Len()).Msg("Ports not ready, deferring")

		return
	}

	if consumer.DBName() != swss.ConfigDB || consumer.TableName() != ConfigTableName {
		o.logger.Error().Str("db", consumer.DBName()).Str("table", consumer.TableName()).
			Msg("Unexpected consumer")

		return
	}

	for {
		entry, ok := consumer.Front()
		if !ok {
			return
		}

		port, found := o.inventory.GetPort(entry.Key)
		if !found {
			o.metrics.abortedPass()
			o.logger.Error().Str("key", entry.Key).Str("op", entry.Op).Int("pending", consumer.Len()).
				Msg("Failed to get port, aborting pass")

			return
		}

		o.apply(ctx, entry, port)
		consumer.Pop()
	}
}

func (o *Orch) apply(ctx context.Context, entry swss.KeyOpFieldsValues, port ports.Port) {
	switch entry.Op {
	case swss.SetCommand:
		if port.Type != ports.Phy {
			o.reject(entry, port, "port is not a physical interface")

			return
		}

		if len(o.portStats) == 0 {
			o.reject(entry, port, "no port stat ids configured")

			return
		}

		if err := o.registrar.Start(ctx, port.ID, o.portStats); err != nil {
			o.fail(entry, port, err)

			return
		}
	case swss.DelCommand:
		if err := o.registrar.Stop(ctx, port.ID); err != nil {
			o.fail(entry, port, err)

			return
		}
	default:
		o.reject(entry, port, fmt.Sprintf("unknown operation type %q", entry.Op))

		return
	}

	o.metrics.observeEvent(entry.Op, outcomeApplied)
}

func (o *Orch) reject(entry swss.KeyOpFieldsValues, port ports.Port, reason string) {
	o.metrics.observeEvent(entry.Op, outcomeRejected)
	o.logger.Error().
		Str("key", entry.Key).
		Str("op", entry.Op).
		Str("port", port.ID.String()).
		Str("type", port.Type.String()).
		Str("reason", reason).
		Msg("Dropping PFC stat history entry")
}

func (o *Orch) fail(entry swss.KeyOpFieldsValues, port ports.Port, err error) {
	o.metrics.observeEvent(entry.Op, outcomeFailed)
	o.logger.Error().
		Err(err).
		Str("key", entry.Key).
		Str("op", entry.Op).
		Str("port", port.ID.String()).
		Msg("Failed to apply PFC stat history entry")
}

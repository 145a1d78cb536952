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

//go:generate mockgen -destination=mock_flexcounter.go -package=flexcounter github.com/carverauto/pfchistoryd/pkg/flexcounter Manager

// Package flexcounter is the control-plane side of the flex counter polling engine.
// Groups and per-object counter subscriptions are written to FLEX_COUNTER_DB; the
// engine (syncd) picks them up and samples on its own schedule.
package flexcounter

import (
	"context"
	"time"
)

const (
	GroupTable   = "FLEX_COUNTER_GROUP_TABLE"
	CounterTable = "FLEX_COUNTER_TABLE"

	PollIntervalField = "POLL_INTERVAL"
	StatusField       = "FLEX_COUNTER_STATUS"
	StatsModeField    = "STATS_MODE"
	PortPluginField   = "PORT_PLUGIN_LIST"
	PortCounterIDList = "PORT_COUNTER_ID_LIST"

	StatsModeRead         = "STATS_MODE_READ"
	StatsModeReadAndClear = "STATS_MODE_READ_AND_CLEAR"

	StatusEnable  = "enable"
	StatusDisable = "disable"
)

// Hook is a per-sample Lua plugin loaded into COUNTERS_DB.
type Hook struct {
	Name string
	SHA  string
}

// GroupConfig parameterizes one polling group. A nil Hook leaves the group without
// a post-processing plugin.
type GroupConfig struct {
	Name         string
	PollInterval time.Duration
	StatsMode    string
	PluginField  string
	Hook         *Hook
}

// Manager drives the polling engine. Calls return once the request is recorded;
// they never wait for sampling.
type Manager interface {
	// RegisterHook loads the named plugin script and returns its handle.
	RegisterHook(ctx context.Context, scriptName string) (*Hook, error)
	ConfigureGroup(ctx context.Context, cfg GroupConfig) error
	// StartPolling subscribes key (GROUP:oid) to the counters listed in counterIDs,
	// stored under field.
	StartPolling(ctx context.Context, key, field, counterIDs string) error
	// StopPolling removes the subscription for key. Removing an absent key succeeds.
	StopPolling(ctx context.Context, key string) error
}

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

package pfchistory

import (
	"context"
	"fmt"

	"github.com/carverauto/pfchistoryd/pkg/flexcounter"
)

// initializeGroup seeds the operator-facing group settings, loads the history
// plugin and pushes the group parameters to the polling engine.
//
// The engine is always configured with DefaultPollInterval; operator overrides of
// POLL_INTERVAL reach it through the flex counter config handler, not from here.
func (o *Orch) initializeGroup(ctx context.Context) error {
	defaults := []struct{ field, value string }{
		{flexcounter.PollIntervalField, defaultPollMillis},
		{flexcounter.StatusField, flexcounter.StatusDisable},
	}

	for _, d := range defaults {
		if err := o.setDefault(ctx, d.field, d.value); err != nil {
			return err
		}
	}

	hook, err := o.flexCounter.RegisterHook(ctx, PluginScript)
	if err != nil {
		o.logger.Error().Err(err).Str("script", PluginScript).
			Msg("Failed to load PFC stat history plugin, continuing without it")

		hook = nil
	}

	o.hook = hook
	o.metrics.setHookLoaded(hook != nil)

	cfg := flexcounter.GroupConfig{
		Name:         GroupName,
		PollInterval: DefaultPollInterval,
		StatsMode:    flexcounter.StatsModeRead,
		PluginField:  flexcounter.PortPluginField,
		Hook:         hook,
	}

	if err := o.flexCounter.ConfigureGroup(ctx, cfg); err != nil {
		o.logger.Error().Err(err).Str("group", GroupName).Msg("Failed to configure polling group")
	}

	return nil
}

// setDefault writes value into field of the group's CONFIG_DB row unless the field
// already has a value.
func (o *Orch) setDefault(ctx context.Context, field, value string) error {
	_, ok, err := o.flexCounterConfig.HGet(ctx, GroupName, field)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrGroupInitFailed, field, err)
	}

	if ok {
		return nil
	}

	if err := o.flexCounterConfig.HSet(ctx, GroupName, field, value); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrGroupInitFailed, field, err)
	}

	o.logger.Debug().Str("field", field).Str("value", value).Msg("Seeded polling group default")

	return nil
}

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
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/carverauto/pfchistoryd/pkg/flexcounter"
	"github.com/carverauto/pfchistoryd/pkg/logger"
	"github.com/carverauto/pfchistoryd/pkg/models"
	"github.com/carverauto/pfchistoryd/pkg/sai"
)

// Registrar subscribes ports to, and unsubscribes them from, one flex counter group.
// It remembers which ports it has subscribed so repeated starts are dropped.
//
// A Registrar is driven by a single goroutine and is not safe for concurrent use.
type Registrar struct {
	group     string
	manager   flexcounter.Manager
	events    *eventQueue
	metrics   *Metrics
	logger    logger.Logger
	clock     Clock

	registered map[sai.ObjectID]struct{}
}

// NewRegistrar creates a registrar for group. publisher and metrics may be nil.
// Registration events are only published while RunPublisher is running.
func NewRegistrar(
	group string,
	manager flexcounter.Manager,
	publisher EventPublisher,
	metrics *Metrics,
	log logger.Logger,
) *Registrar {
	var events *eventQueue
	if publisher != nil {
		events = newEventQueue(publisher, metrics, log)
	}

	return &Registrar{
		group:      group,
		manager:    manager,
		events:     events,
		metrics:    metrics,
		logger:     log,
		clock:      realClock{},
		registered: make(map[sai.ObjectID]struct{}),
	}
}

// Key returns the flex counter key for portID, "<group>:oid:0x<hex>".
func (r *Registrar) Key(portID sai.ObjectID) string {
	return r.group + ":" + portID.String()
}

// Start subscribes portID to the group with the given counters.
func (r *Registrar) Start(ctx context.Context, portID sai.ObjectID, counters sai.PortStatList) error {
	if len(counters) == 0 {
		return ErrEmptyCounterSet
	}

	key := r.Key(portID)

	if r.IsRegistered(portID) {
		r.logger.Debug().Str("key", key).Msg("Port already registered, skipping")

		return nil
	}

	if err := r.manager.StartPolling(ctx, key, flexcounter.PortCounterIDList, counters.String()); err != nil {
		return fmt.Errorf("failed to start polling %s: %w", key, err)
	}

	r.registered[portID] = struct{}{}
	r.metrics.setRegistered(len(r.registered))

	r.logger.Info().Str("key", key).Int("counters", len(counters)).Msg("Started PFC stat history polling")

	r.publish(portID, models.RegistrationStarted, counters)

	return nil
}

// Stop unsubscribes portID. The engine is always told, even when this registrar never
// subscribed the port, so registrations left by an earlier run are removed too.
func (r *Registrar) Stop(ctx context.Context, portID sai.ObjectID) error {
	key := r.Key(portID)

	if err := r.manager.StopPolling(ctx, key); err != nil {
		return fmt.Errorf("failed to stop polling %s: %w", key, err)
	}

	delete(r.registered, portID)
	r.metrics.setRegistered(len(r.registered))

	r.logger.Info().Str("key", key).Msg("Stopped PFC stat history polling")

	r.publish(portID, models.RegistrationStopped, nil)

	return nil
}

// IsRegistered reports whether portID is currently subscribed by this registrar.
func (r *Registrar) IsRegistered(portID sai.ObjectID) bool {
	_, ok := r.registered[portID]

	return ok
}

// Registered returns the subscribed ports in ascending order.
func (r *Registrar) Registered() []sai.ObjectID {
	ids := lo.Keys(r.registered)
	slices.SortFunc(ids, cmp.Compare[sai.ObjectID])

	return ids
}

// RunPublisher publishes registration events until ctx is done. It returns at once
// when the registrar has no publisher.
func (r *Registrar) RunPublisher(ctx context.Context) error {
	if r.events == nil {
		return nil
	}

	return r.events.run(ctx)
}

func (r *Registrar) publish(portID sai.ObjectID, action models.RegistrationAction, counters sai.PortStatList) {
	if r.events == nil {
		return
	}

	r.events.offer(models.RegistrationEvent{
		Group:     r.group,
		Key:       r.Key(portID),
		ObjectID:  portID.String(),
		Action:    action,
		Counters:  counters.String(),
		Timestamp: r.clock.Now(),
	})
}

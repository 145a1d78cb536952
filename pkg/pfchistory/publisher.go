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
	"time"

	"github.com/carverauto/pfchistoryd/pkg/logger"
	"github.com/carverauto/pfchistoryd/pkg/models"
)

const (
	publishQueueSize = 1024
	publishTimeout   = 2 * time.Second
)

// eventQueue hands registration events to an EventPublisher from its own goroutine.
// offer never blocks: when the queue is full the event is dropped and counted.
type eventQueue struct {
	publisher EventPublisher
	events    chan models.RegistrationEvent
	timeout   time.Duration
	metrics   *Metrics
	logger    logger.Logger
}

func newEventQueue(publisher EventPublisher, metrics *Metrics, log logger.Logger) *eventQueue {
	return &eventQueue{
		publisher: publisher,
		events:    make(chan models.RegistrationEvent, publishQueueSize),
		timeout:   publishTimeout,
		metrics:   metrics,
		logger:    log,
	}
}

func (q *eventQueue) offer(event models.RegistrationEvent) {
	select {
	case q.events <- event:
	default:
		q.metrics.droppedEvent()
		q.logger.Warn().Str("key", event.Key).Str("action", string(event.Action)).
			Msg("Registration event queue full, dropping event")
	}
}

// run publishes queued events until ctx is done.
func (q *eventQueue) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-q.events:
			q.publish(ctx, event)
		}
	}
}

func (q *eventQueue) publish(ctx context.Context, event models.RegistrationEvent) {
	pubCtx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	if err := q.publisher.PublishRegistration(pubCtx, event); err != nil {
		q.logger.Warn().Err(err).Str("key", event.Key).Str("action", string(event.Action)).
			Msg("Failed to publish registration event")
	}
}

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

//go:generate mockgen -destination=mock_pfchistory.go -package=pfchistory github.com/carverauto/pfchistoryd/pkg/pfchistory EventPublisher,EventSource,Clock,Ticker

package pfchistory

import (
	"context"
	"time"

	"github.com/carverauto/pfchistoryd/pkg/models"
	"github.com/carverauto/pfchistoryd/pkg/swss"
)

// EventPublisher receives registration transitions. Publishing is best effort.
type EventPublisher interface {
	PublishRegistration(ctx context.Context, event models.RegistrationEvent) error
}

// EventSource feeds configuration changes for the PFC stat history table.
// Subscribe is called before Snapshot so no change between the two is lost.
type EventSource interface {
	// Subscribe starts listening for changes and returns once the listener is live.
	Subscribe(ctx context.Context) error
	// Snapshot returns the rows that already exist.
	Snapshot(ctx context.Context) ([]swss.KeyOpFieldsValues, error)
	// Run delivers changes observed since Subscribe to out until ctx is done.
	Run(ctx context.Context, out chan<- swss.KeyOpFieldsValues) error
	// Close releases the subscription.
	Close() error
}

// Clock abstracts time-related operations.
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker abstracts the ticker behavior.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

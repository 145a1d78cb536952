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

// Package natsutil publishes pfchistoryd events to NATS JetStream.
package natsutil

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/pfchistoryd/pkg/logger"
	"github.com/carverauto/pfchistoryd/pkg/models"
)

const (
	eventSource = "pfchistoryd"
	eventType   = "com.carverauto.pfchistory.registration"
)

// streamPublisher is the part of jetstream.JetStream the publisher uses.
type streamPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// EventPublisher publishes registration CloudEvents to a JetStream subject.
type EventPublisher struct {
	js      streamPublisher
	subject string
	logger  logger.Logger
}

// NewEventPublisher creates a new EventPublisher for the given subject.
func NewEventPublisher(js streamPublisher, subject string, log logger.Logger) *EventPublisher {
	return &EventPublisher{
		js:      js,
		subject: subject,
		logger:  log,
	}
}

// PublishRegistration wraps event in a CloudEvent and publishes it.
func (p *EventPublisher) PublishRegistration(ctx context.Context, event models.RegistrationEvent) error {
	ts := event.Timestamp

	ce := models.CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          eventSource,
		Type:            eventType + "." + string(event.Action),
		DataContentType: "application/json",
		Subject:         p.subject,
		Time:            &ts,
		Data:            event,
	}

	payload, err := json.Marshal(ce)
	if err != nil {
		return fmt.Errorf("failed to marshal registration event: %w", err)
	}

	ack, err := p.js.Publish(ctx, p.subject, payload)
	if err != nil {
		return fmt.Errorf("failed to publish registration event: %w", err)
	}

	p.logger.Debug().
		Str("event_id", ce.ID).
		Str("key", event.Key).
		Uint64("seq", ack.Sequence).
		Msg("Published registration event")

	return nil
}

// Connect dials NATS, ensures the stream exists and returns a publisher bound to it.
// The caller owns the returned connection.
func Connect(ctx context.Context, cfg *models.NATSConfig, log logger.Logger) (*EventPublisher, *nats.Conn, error) {
	cfg.ApplyDefaults()

	opts := []nats.Option{
		nats.Name(eventSource),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	if cfg.TLS != nil {
		tlsConf, err := TLSConfig(cfg.TLS)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build NATS TLS config: %w", err)
		}

		opts = append(opts, nats.Secure(tlsConf))
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if _, err := js.Stream(ctx, cfg.Stream); err != nil {
		_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:     cfg.Stream,
			Subjects: []string{cfg.Subject},
		})
		if err != nil {
			nc.Close()
			return nil, nil, fmt.Errorf("failed to create or get stream %s: %w", cfg.Stream, err)
		}

		log.Info().Str("stream", cfg.Stream).Msg("Created NATS JetStream stream")
	}

	return NewEventPublisher(js, cfg.Subject, log), nc, nil
}

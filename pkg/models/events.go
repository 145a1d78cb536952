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

package models

import (
	"time"
)

const (
	defaultEventsStream  = "pfc_history_events"
	defaultEventsSubject = "events.pfchistory.registration"
)

// NATSConfig enables publishing registration events to JetStream. An empty URL
// disables the publisher.
type NATSConfig struct {
	URL     string     `json:"url,omitempty"`
	Stream  string     `json:"stream,omitempty"`
	Subject string     `json:"subject,omitempty"`
	TLS     *TLSConfig `json:"tls,omitempty"`
}

// TLSConfig holds mTLS material for a client connection.
type TLSConfig struct {
	CertFile   string `json:"cert_file"`
	KeyFile    string `json:"key_file"`
	CAFile     string `json:"ca_file"`
	ServerName string `json:"server_name,omitempty"`
}

// Enabled reports whether a NATS URL is configured.
func (c *NATSConfig) Enabled() bool {
	return c != nil && c.URL != ""
}

// ApplyDefaults fills in the stream and subject names when unset.
func (c *NATSConfig) ApplyDefaults() {
	if c.Stream == "" {
		c.Stream = defaultEventsStream
	}

	if c.Subject == "" {
		c.Subject = defaultEventsSubject
	}
}

// CloudEvent represents a CloudEvents v1.0 compliant event.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	ID              string      `json:"id"`
	Source          string      `json:"source"`
	Type            string      `json:"type"`
	DataContentType string      `json:"datacontenttype"`
	Subject         string      `json:"subject,omitempty"`
	Time            *time.Time  `json:"time,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}

// RegistrationAction is the polling transition a RegistrationEvent reports.
type RegistrationAction string

const (
	RegistrationStarted RegistrationAction = "started"
	RegistrationStopped RegistrationAction = "stopped"
)

// RegistrationEvent records a port entering or leaving a counter polling group.
type RegistrationEvent struct {
	Group     string             `json:"group"`
	Key       string             `json:"key"`
	ObjectID  string             `json:"object_id"`
	Action    RegistrationAction `json:"action"`
	Counters  string             `json:"counters,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

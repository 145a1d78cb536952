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
	"strings"
	"time"

	"github.com/carverauto/pfchistoryd/pkg/logger"
	"github.com/carverauto/pfchistoryd/pkg/models"
)

const (
	defaultPluginDir      = "/usr/share/swss"
	defaultTaskInterval   = time.Second
	defaultConnectTimeout = 30 * time.Second
)

// Config is the pfchistoryd configuration.
type Config struct {
	Redis         models.RedisConfig `json:"redis"`
	Databases     models.DatabaseIDs `json:"databases"`
	PluginDir     string             `json:"plugin_dir"`
	TaskInterval  models.Duration    `json:"task_interval"`
	QueueCapacity int                `json:"queue_capacity"`
	MetricsAddr   string             `json:"metrics_addr,omitempty"` // empty disables the metrics listener
	NATS          *models.NATSConfig `json:"nats,omitempty"`
	Logging       *logger.Config     `json:"logging,omitempty"`
}

// DefaultConfig returns a configuration that talks to the local redis socket.
func DefaultConfig() Config {
	return Config{
		Redis: models.RedisConfig{
			Network:        "unix",
			Address:        "/var/run/redis/redis.sock",
			ConnectTimeout: models.Duration(defaultConnectTimeout),
		},
		Databases:    models.DefaultDatabaseIDs(),
		PluginDir:    defaultPluginDir,
		TaskInterval: models.Duration(defaultTaskInterval),
	}
}

// Validate implements config.Validator interface.
func (c *Config) Validate() error {
	if c.Redis.Address == "" {
		return errRedisAddrRequired
	}

	if c.Redis.Network == "" {
		if strings.HasPrefix(c.Redis.Address, "/") {
			c.Redis.Network = "unix"
		} else {
			c.Redis.Network = "tcp"
		}
	}

	if c.PluginDir == "" {
		c.PluginDir = defaultPluginDir
	}

	if c.TaskInterval == 0 {
		c.TaskInterval = models.Duration(defaultTaskInterval)
	}

	if c.TaskInterval < 0 {
		return errInvalidInterval
	}

	if c.QueueCapacity < 0 {
		return errInvalidCapacity
	}

	if c.NATS != nil {
		c.NATS.ApplyDefaults()
	}

	return nil
}

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

import "errors"

var (
	// ErrEmptyCounterSet is returned by Registrar.Start when no counters are given.
	ErrEmptyCounterSet = errors.New("no port stat ids provided")
	// ErrCleanupFailed wraps store failures while clearing stale history records.
	ErrCleanupFailed = errors.New("failed to clear PFC stat history counters")
	// ErrGroupInitFailed wraps store failures while seeding polling group defaults.
	ErrGroupInitFailed = errors.New("failed to initialize PFC stat history group")

	errMissingDependency = errors.New("missing dependency")
	errRedisAddrRequired = errors.New("redis address is required")
	errInvalidInterval   = errors.New("task_interval must be positive")
	errInvalidCapacity   = errors.New("queue_capacity must not be negative")
)

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

package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sys/unix"

	"github.com/carverauto/pfchistoryd/pkg/logger"
)

const defaultShutdownTimeout = 10 * time.Second

var errShutdownTimeout = errors.New("service did not exit before shutdown timeout")

// Service is a long-running component driven by Run.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// ServiceOptions configures Run.
type ServiceOptions struct {
	ServiceName     string
	Service         Service
	Logger          logger.Logger
	ShutdownTimeout time.Duration
	Signals         []os.Signal
}

// Run starts the service and blocks until it returns or a termination signal arrives,
// then calls Stop with a bounded context.
func Run(ctx context.Context, opts *ServiceOptions) error {
	signals := opts.Signals
	if len(signals) == 0 {
		signals = []os.Signal{unix.SIGINT, unix.SIGTERM}
	}

	timeout := opts.ShutdownTimeout
	if timeout == 0 {
		timeout = defaultShutdownTimeout
	}

	runCtx, stop := signal.NotifyContext(ctx, signals...)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		errCh <- opts.Service.Start(runCtx)
	}()

	var (
		startErr error
		exited   bool
	)

	select {
	case startErr = <-errCh:
		exited = true
	case <-runCtx.Done():
		opts.Logger.Info().Str("service", opts.ServiceName).Msg("Shutdown requested")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := opts.Service.Stop(stopCtx); err != nil {
		opts.Logger.Error().Err(err).Str("service", opts.ServiceName).Msg("Error stopping service")
	}

	if !exited {
		// Start returns once runCtx is cancelled.
		select {
		case startErr = <-errCh:
		case <-stopCtx.Done():
			return fmt.Errorf("%w: %s after %s", errShutdownTimeout, opts.ServiceName, timeout)
		}
	}

	if startErr != nil && !errors.Is(startErr, context.Canceled) {
		return startErr
	}

	return nil
}

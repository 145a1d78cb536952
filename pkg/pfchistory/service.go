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
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/carverauto/pfchistoryd/pkg/logger"
	"github.com/carverauto/pfchistoryd/pkg/swss"
)

const (
	eventBuffer         = 256
	metricsReadTimeout  = 5 * time.Second
	metricsStopTimeout  = 5 * time.Second
	defaultServiceDelay = time.Second
)

// Refresher is implemented by inventories that reload their view before each pass.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// ServiceConfig wires a Service.
type ServiceConfig struct {
	Orch     *Orch
	Consumer *swss.Consumer
	Source   EventSource
	// Refresher, when set, is refreshed before every task pass.
	Refresher    Refresher
	TaskInterval time.Duration
	// MetricsAddr enables a /metrics listener. MetricsHandler defaults to promhttp.Handler.
	MetricsAddr    string
	MetricsHandler http.Handler
	Clock          Clock
	Logger         logger.Logger
}

// Service feeds configuration changes into the Orch and runs task passes from a
// single goroutine.
type Service struct {
	orch      *Orch
	consumer  *swss.Consumer
	source    EventSource
	refresher Refresher
	interval  time.Duration
	addr      string
	handler   http.Handler
	clock     Clock
	logger    logger.Logger

	done      chan struct{}
	closeOnce sync.Once
	running   sync.WaitGroup
}

func NewService(cfg *ServiceConfig) *Service {
	interval := cfg.TaskInterval
	if interval <= 0 {
		interval = defaultServiceDelay
	}

	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}

	handler := cfg.MetricsHandler
	if handler == nil {
		handler = promhttp.Handler()
	}

	return &Service{
		orch:      cfg.Orch,
		consumer:  cfg.Consumer,
		source:    cfg.Source,
		refresher: cfg.Refresher,
		interval:  interval,
		addr:      cfg.MetricsAddr,
		handler:   handler,
		clock:     clock,
		logger:    cfg.Logger,
		done:      make(chan struct{}),
	}
}

// Start replays the existing configuration, then processes changes until ctx is
// cancelled or Stop is called.
func (s *Service) Start(ctx context.Context) error {
	s.running.Add(1)
	defer s.running.Done()

	if err := s.source.Subscribe(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to configuration changes: %w", err)
	}

	defer s.closeSource()

	// Taken after Subscribe, so a row removed once it has been read still arrives
	// as a DEL.
	snapshot, err := s.source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read existing configuration: %w", err)
	}

	s.enqueue(snapshot...)

	s.logger.Info().
		Int("existing", len(snapshot)).
		Dur("interval", s.interval).
		Msg("Starting PFC stat history service")

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	events := make(chan swss.KeyOpFieldsValues, eventBuffer)

	g.Go(func() error {
		return s.source.Run(gctx, events)
	})

	g.Go(func() error {
		return s.orch.Registrar().RunPublisher(gctx)
	})

	if s.addr != "" {
		s.serveMetrics(gctx, g)
	}

	g.Go(func() error {
		defer cancel()

		return s.loop(gctx, events)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// Stop ends the task loop and waits for Start to return.
func (s *Service) Stop(ctx context.Context) error {
	s.closeOnce.Do(func() {
		close(s.done)
	})

	stopped := make(chan struct{})

	go func() {
		s.running.Wait()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) closeSource() {
	if err := s.source.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to close configuration subscription")
	}
}

func (s *Service) loop(ctx context.Context, events <-chan swss.KeyOpFieldsValues) error {
	ticker := s.clock.Ticker(s.interval)
	defer ticker.Stop()

	s.runPass(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case entry := <-events:
			s.enqueue(entry)
			s.drain(events)
			s.runPass(ctx)
		case <-ticker.Chan():
			if s.consumer.Len() > 0 {
				s.runPass(ctx)
			}
		}
	}
}

// drain moves entries that are already buffered into the consumer so they are
// handled in one pass.
func (s *Service) drain(events <-chan swss.KeyOpFieldsValues) {
	for {
		select {
		case entry := <-events:
			s.enqueue(entry)
		default:
			return
		}
	}
}

func (s *Service) enqueue(entries ...swss.KeyOpFieldsValues) {
	for _, entry := range entries {
		if err := s.consumer.Push(entry); err != nil {
			s.logger.Error().Err(err).Str("key", entry.Key).Str("op", entry.Op).Msg("Dropping configuration change")
		}
	}
}

func (s *Service) runPass(ctx context.Context) {
	if s.refresher != nil {
		if err := s.refresher.Refresh(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to refresh port inventory")
		}
	}

	s.orch.DoTask(ctx, s.consumer)
}

func (s *Service) serveMetrics(ctx context.Context, g *errgroup.Group) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.handler)

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadTimeout,
	}

	g.Go(func() error {
		s.logger.Info().Str("addr", s.addr).Msg("Serving metrics")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics listener: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsStopTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})
}

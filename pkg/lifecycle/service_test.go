package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/pfchistoryd/pkg/logger"
)

var errBoom = errors.New("boom")

type fakeService struct {
	startErr error
	block    bool
	stopped  chan struct{}
}

func (f *fakeService) Start(ctx context.Context) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}

	return f.startErr
}

func (f *fakeService) Stop(context.Context) error {
	close(f.stopped)
	return nil
}

func TestRun_StartErrorIsReturned(t *testing.T) {
	svc := &fakeService{startErr: errBoom, stopped: make(chan struct{})}

	err := Run(context.Background(), &ServiceOptions{
		ServiceName: "test",
		Service:     svc,
		Logger:      logger.NewTestLogger(),
	})

	require.ErrorIs(t, err, errBoom)
	<-svc.stopped
}

func TestRun_ContextCancelStopsService(t *testing.T) {
	svc := &fakeService{block: true, stopped: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- Run(ctx, &ServiceOptions{
			ServiceName:     "test",
			Service:         svc,
			Logger:          logger.NewTestLogger(),
			ShutdownTimeout: time.Second,
		})
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	<-svc.stopped
}

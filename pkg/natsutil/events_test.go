package natsutil

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/pfchistoryd/pkg/logger"
	"github.com/carverauto/pfchistoryd/pkg/models"
)

var errTestFixture = errors.New("fixture error")

type fakeStream struct {
	subject string
	payload []byte
	err     error
}

func (f *fakeStream) Publish(
	_ context.Context, subject string, payload []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.subject = subject
	f.payload = payload

	return &jetstream.PubAck{Stream: "pfc_history_events", Sequence: 7}, nil
}

func TestEventPublisher_PublishRegistration(t *testing.T) {
	stream := &fakeStream{}
	pub := NewEventPublisher(stream, "events.pfchistory.registration", logger.NewTestLogger())

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	err := pub.PublishRegistration(context.Background(), models.RegistrationEvent{
		Group:     "PFC_STAT_HISTORY",
		Key:       "PFC_STAT_HISTORY:oid:0x1",
		ObjectID:  "oid:0x1",
		Action:    models.RegistrationStarted,
		Counters:  "SAI_PORT_STAT_PFC_0_RX_PKTS",
		Timestamp: ts,
	})
	require.NoError(t, err)
	assert.Equal(t, "events.pfchistory.registration", stream.subject)

	var ce struct {
		SpecVersion string                   `json:"specversion"`
		ID          string                   `json:"id"`
		Type        string                   `json:"type"`
		Source      string                   `json:"source"`
		Time        time.Time                `json:"time"`
		Data        models.RegistrationEvent `json:"data"`
	}

	require.NoError(t, json.Unmarshal(stream.payload, &ce))
	assert.Equal(t, "1.0", ce.SpecVersion)
	assert.NotEmpty(t, ce.ID)
	assert.Equal(t, "com.carverauto.pfchistory.registration.started", ce.Type)
	assert.Equal(t, "pfchistoryd", ce.Source)
	assert.True(t, ts.Equal(ce.Time))
	assert.Equal(t, "oid:0x1", ce.Data.ObjectID)
	assert.Equal(t, models.RegistrationStarted, ce.Data.Action)
}

func TestEventPublisher_PublishError(t *testing.T) {
	pub := NewEventPublisher(&fakeStream{err: errTestFixture}, "s", logger.NewTestLogger())

	err := pub.PublishRegistration(context.Background(), models.RegistrationEvent{Action: models.RegistrationStopped})
	require.ErrorIs(t, err, errTestFixture)
}

func TestTLSConfig_RequiresMaterial(t *testing.T) {
	_, err := TLSConfig(nil)
	require.ErrorIs(t, err, ErrTLSMaterialRequired)

	_, err = TLSConfig(&models.TLSConfig{CertFile: "a", KeyFile: "b"})
	require.ErrorIs(t, err, ErrTLSMaterialRequired)
}

func TestTLSConfig_MissingFiles(t *testing.T) {
	_, err := TLSConfig(&models.TLSConfig{CertFile: "/nope/cert.pem", KeyFile: "/nope/key.pem", CAFile: "/nope/ca.pem"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load client certificate")
}

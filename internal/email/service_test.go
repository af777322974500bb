package email

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/labfetch/labfetch-api/internal/model"
)

type captureSender struct {
	from   string
	to     []string
	body   bytes.Buffer
	closed bool
}

func (s *captureSender) Send(from string, to []string, msg io.WriterTo) error {
	s.from = from
	s.to = to
	_, err := msg.WriteTo(&s.body)
	return err
}

func (s *captureSender) Close() error {
	s.closed = true
	return nil
}

func newTestAlerter(s *captureSender) *Alerter {
	a := NewAlerter(Config{Host: "smtp.test", Port: 25, From: "noreply@labfetch.test", To: []string{"lab@labfetch.test"}})
	a.sender = func() (gomail.SendCloser, error) { return s, nil }
	return a
}

func TestDeliverNewPickup(t *testing.T) {
	s := &captureSender{}
	a := newTestAlerter(s)

	p := &model.Pickup{ID: 12, PetName: "Luna", City: "MEDELLIN", FullAddress: "Carrera 43A # 1 - 50 MEDELLIN, ANTIOQUIA"}
	require.NoError(t, a.Deliver(context.Background(), model.NewPickupEvent(p)))

	assert.Equal(t, "noreply@labfetch.test", s.from)
	assert.Equal(t, []string{"lab@labfetch.test"}, s.to)
	assert.True(t, s.closed)
	assert.Contains(t, s.body.String(), "Luna")
}

func TestDeliverIgnoresOtherEvents(t *testing.T) {
	s := &captureSender{}
	a := newTestAlerter(s)

	require.NoError(t, a.Deliver(context.Background(), model.Event{Type: model.EventPing}))
	assert.Empty(t, s.from)
}

func TestConfigEnabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{Host: "h", From: "f", To: []string{"t"}}.Enabled())
}

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("labfetch", reg)

	m.HubSubscribers.Set(3)
	m.PickupsCreated.Inc()
	m.HubBroadcasts.WithLabelValues("new_pickup").Inc()

	assert.Equal(t, float64(3), testutil.ToFloat64(m.HubSubscribers))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.PickupsCreated))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "labfetch_hub_subscribers")
	assert.Contains(t, names, "labfetch_pickups_created_total")
}

func TestNewNopIsIsolated(t *testing.T) {
	a := NewNop()
	b := NewNop()
	a.PickupsCreated.Inc()
	assert.Equal(t, float64(0), testutil.ToFloat64(b.PickupsCreated))
}

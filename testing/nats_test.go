package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartEmbeddedNATS(t *testing.T) {
	ns, nc := StartEmbeddedNATS(t)

	require.NotNil(t, ns)
	require.True(t, nc.IsConnected())
	require.True(t, ns.ReadyForConnections(time.Second))
}

func TestStartEmbeddedNATS_ParallelTests(t *testing.T) {
	t.Parallel()

	for range 3 {
		t.Run("parallel", func(t *testing.T) {
			t.Parallel()

			_, nc := StartEmbeddedNATS(t)
			require.True(t, nc.IsConnected())
		})
	}
}

func TestCreateJetStreamKV(t *testing.T) {
	_, nc := StartEmbeddedNATS(t)
	kv := CreateJetStreamKV(t, nc, "dishes-test")

	require.Equal(t, "dishes-test", kv.Bucket())

	_, err := kv.Put(t.Context(), "dish.SKA001", []byte(`{"dish_id":"SKA001","vcc_id":1,"k":100}`))
	require.NoError(t, err)

	entry, err := kv.Get(t.Context(), "dish.SKA001")
	require.NoError(t, err)
	require.Contains(t, string(entry.Value()), "SKA001")

	status, err := kv.Status(t.Context())
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), status.TTL())
}

func TestNewTestLogger(t *testing.T) {
	l := NewTestLogger(t)
	l.Info("registry loaded", "dishes", 3)
}

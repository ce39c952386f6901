package persistence_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaioVictor3/Bus-Manager-App/internal/persistence"
)

func TestMemory_GetMissingKey(t *testing.T) {
	kv := persistence.NewMemory()

	_, err := kv.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, persistence.ErrKeyNotFound)
}

func TestMemory_PutGetDelete(t *testing.T) {
	kv := persistence.NewMemory()
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "k", []byte("v")))

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, kv.Delete(ctx, "k"))
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, persistence.ErrKeyNotFound)
}

func TestMemory_DeleteMissingKeyIsNoop(t *testing.T) {
	kv := persistence.NewMemory()

	assert.NoError(t, kv.Delete(context.Background(), "nope"))
}

func TestPutJSON_WritesVersionedEnvelope(t *testing.T) {
	kv := persistence.NewMemory()
	ctx := context.Background()

	require.NoError(t, persistence.PutJSON(ctx, kv, "k", map[string]string{"a": "b"}))

	raw, err := kv.Get(ctx, "k")
	require.NoError(t, err)

	var env struct {
		Version int             `json:"version"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, persistence.SchemaVersion, env.Version)
}

func TestGetJSON_RoundTrip(t *testing.T) {
	kv := persistence.NewMemory()
	ctx := context.Background()

	in := map[string]int{"x": 1, "y": 2}
	require.NoError(t, persistence.PutJSON(ctx, kv, "k", in))

	var out map[string]int
	require.NoError(t, persistence.GetJSON(ctx, kv, "k", &out))
	assert.Equal(t, in, out)
}

// Records written by the app before envelope tagging are raw JSON; they
// must still decode.
func TestGetJSON_ReadsLegacyUnversionedRecord(t *testing.T) {
	kv := persistence.NewMemory()
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "k", []byte(`{"name":"Ana"}`)))

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, persistence.GetJSON(ctx, kv, "k", &out))
	assert.Equal(t, "Ana", out.Name)
}

func TestGetJSON_RejectsFutureSchemaVersion(t *testing.T) {
	kv := persistence.NewMemory()
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "k", []byte(`{"version":99,"data":{}}`)))

	var out map[string]any
	assert.Error(t, persistence.GetJSON(ctx, kv, "k", &out))
}

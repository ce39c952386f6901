package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Logical keys of the durable store. Each store owns a disjoint subset:
// the session store owns KeyUser, the roster store owns the other two.
const (
	KeyUser          = "user"
	KeyStudents      = "students"
	KeyRouteSettings = "routeSettings"
)

// SchemaVersion tags every persisted envelope so future readers can
// migrate old records instead of failing on them.
const SchemaVersion = 1

// ErrKeyNotFound is returned by Get when the key has never been written
// or has been deleted.
var ErrKeyNotFound = errors.New("key not found")

// KeyValue is the durable key-value collaborator both stores persist to.
// Values are opaque serialized records; implementations must not inspect
// them.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Pinger reports backend connectivity for readiness probes. All three
// KeyValue implementations satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// envelope wraps every persisted record with a schema version tag.
type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// PutJSON marshals v into a versioned envelope and writes it under key.
func PutJSON(ctx context.Context, kv KeyValue, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	raw, err := json.Marshal(envelope{Version: SchemaVersion, Data: data})
	if err != nil {
		return fmt.Errorf("encode %s envelope: %w", key, err)
	}
	return kv.Put(ctx, key, raw)
}

// GetJSON reads key and unmarshals its envelope payload into v.
// Records written before envelope tagging existed are decoded as-is.
func GetJSON(ctx context.Context, kv KeyValue, key string, v any) error {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Version > 0 {
		if env.Version > SchemaVersion {
			return fmt.Errorf("decode %s: unsupported schema version %d", key, env.Version)
		}
		return json.Unmarshal(env.Data, v)
	}
	return json.Unmarshal(raw, v)
}

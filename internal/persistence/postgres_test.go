package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/CaioVictor3/Bus-Manager-App/internal/config"
	"github.com/CaioVictor3/Bus-Manager-App/internal/persistence"
)

// A missing DSN must fail construction; handing back a backend whose
// first Get would dereference a nil pool is not an option for the
// durable store.
func TestNewPostgres_RequiresDSN(t *testing.T) {
	pg, err := persistence.NewPostgres(context.Background(), config.PostgresConfig{DSN: ""}, zap.NewNop())

	assert.Error(t, err)
	assert.Nil(t, pg)
}

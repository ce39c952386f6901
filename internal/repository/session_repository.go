package repository

import (
	"context"
	"errors"

	"github.com/CaioVictor3/Bus-Manager-App/internal/domain"
	"github.com/CaioVictor3/Bus-Manager-App/internal/persistence"
)

// ErrNoUser is returned by LoadUser when no driver record has been
// persisted yet.
var ErrNoUser = errors.New("no persisted user")

// SessionRepository defines persistence access for the single driver
// record under the "user" key.
type SessionRepository interface {
	LoadUser(ctx context.Context) (*domain.User, error)
	SaveUser(ctx context.Context, user *domain.User) error
	ClearUser(ctx context.Context) error
}

type sessionRepository struct {
	kv persistence.KeyValue
}

// NewSessionRepository returns a KeyValue-backed implementation.
func NewSessionRepository(kv persistence.KeyValue) SessionRepository {
	return &sessionRepository{kv: kv}
}

func (r *sessionRepository) LoadUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := persistence.GetJSON(ctx, r.kv, persistence.KeyUser, &user); err != nil {
		if errors.Is(err, persistence.ErrKeyNotFound) {
			return nil, ErrNoUser
		}
		return nil, err
	}
	return &user, nil
}

func (r *sessionRepository) SaveUser(ctx context.Context, user *domain.User) error {
	return persistence.PutJSON(ctx, r.kv, persistence.KeyUser, user)
}

func (r *sessionRepository) ClearUser(ctx context.Context) error {
	return r.kv.Delete(ctx, persistence.KeyUser)
}

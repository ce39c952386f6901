package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaioVictor3/Bus-Manager-App/internal/domain"
	"github.com/CaioVictor3/Bus-Manager-App/internal/persistence"
	"github.com/CaioVictor3/Bus-Manager-App/internal/repository"
)

func TestSessionRepository_UserRoundTrip(t *testing.T) {
	repo := repository.NewSessionRepository(persistence.NewMemory())
	ctx := context.Background()

	user := &domain.User{
		ID:    "u1",
		Name:  "Carlos",
		Email: "a@b.com",
		Phone: "11 97777-1234",
		Vehicle: domain.Vehicle{
			Model: "Sprinter", Plate: "ABC1D23", Capacity: 15, Color: "white",
		},
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.SaveUser(ctx, user))

	loaded, err := repo.LoadUser(ctx)

	require.NoError(t, err)
	assert.Equal(t, user, loaded)
}

func TestSessionRepository_LoadUser_NoRecord(t *testing.T) {
	repo := repository.NewSessionRepository(persistence.NewMemory())

	_, err := repo.LoadUser(context.Background())

	assert.ErrorIs(t, err, repository.ErrNoUser)
}

func TestSessionRepository_ClearUser(t *testing.T) {
	repo := repository.NewSessionRepository(persistence.NewMemory())
	ctx := context.Background()

	require.NoError(t, repo.SaveUser(ctx, &domain.User{ID: "u1", Email: "a@b.com"}))
	require.NoError(t, repo.ClearUser(ctx))

	_, err := repo.LoadUser(ctx)
	assert.ErrorIs(t, err, repository.ErrNoUser)
}

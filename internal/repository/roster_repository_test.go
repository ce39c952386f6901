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

func sampleStudents() []domain.Student {
	returnAddr := domain.Address{
		CEP:        "04538133",
		Street:     "Av. Faria Lima",
		Number:     "4440",
		City:       "São Paulo",
		State:      "SP",
		Complement: "bloco B",
	}
	return []domain.Student{
		{
			ID:    "s1",
			Name:  "Ana",
			Phone: "11 98888-7777",
			AddressGo: domain.Address{
				CEP: "01001000", Street: "Praça da Sé", Number: "1",
				Neighborhood: "Sé", City: "São Paulo", State: "SP",
			},
			AddressReturn: &returnAddr,
			IsPresent:     true,
			CreatedAt:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:   "s2",
			Name: "Bruno",
			AddressGo: domain.Address{
				CEP: "01310100", Street: "Av. Paulista", Number: "900",
				City: "São Paulo", State: "SP",
			},
			IsPresent: false,
			CreatedAt: time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC),
		},
	}
}

func TestRosterRepository_StudentsRoundTripIsLossless(t *testing.T) {
	repo := repository.NewRosterRepository(persistence.NewMemory())
	ctx := context.Background()

	original := sampleStudents()
	require.NoError(t, repo.SaveStudents(ctx, original))

	loaded, err := repo.LoadStudents(ctx)

	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestRosterRepository_LoadStudents_EmptyWhenNeverWritten(t *testing.T) {
	repo := repository.NewRosterRepository(persistence.NewMemory())

	students, err := repo.LoadStudents(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestRosterRepository_RouteSettingsRoundTrip(t *testing.T) {
	repo := repository.NewRosterRepository(persistence.NewMemory())
	ctx := context.Background()

	settings := &domain.RouteSettings{
		StartAddress: domain.Address{CEP: "01001000", Street: "Praça da Sé", City: "São Paulo", State: "SP"},
		EndAddress:   domain.Address{CEP: "04538133", Street: "Av. Faria Lima", City: "São Paulo", State: "SP"},
	}
	require.NoError(t, repo.SaveRouteSettings(ctx, settings))

	loaded, err := repo.LoadRouteSettings(ctx)

	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestRosterRepository_LoadRouteSettings_NilWhenAbsent(t *testing.T) {
	repo := repository.NewRosterRepository(persistence.NewMemory())

	settings, err := repo.LoadRouteSettings(context.Background())

	require.NoError(t, err)
	assert.Nil(t, settings)
}

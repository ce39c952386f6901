package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CaioVictor3/Bus-Manager-App/internal/config"
	"github.com/CaioVictor3/Bus-Manager-App/internal/domain"
	"github.com/CaioVictor3/Bus-Manager-App/internal/persistence"
	"github.com/CaioVictor3/Bus-Manager-App/internal/repository"
	"github.com/CaioVictor3/Bus-Manager-App/internal/service"
	apperrors "github.com/CaioVictor3/Bus-Manager-App/pkg/util"
)

// ---- test doubles ----------------------------------------------------------

// failingRosterRepo rejects every read and write.
type failingRosterRepo struct{}

func (failingRosterRepo) LoadStudents(context.Context) ([]domain.Student, error) {
	return nil, errors.New("disk on fire")
}
func (failingRosterRepo) SaveStudents(context.Context, []domain.Student) error {
	return errors.New("disk on fire")
}
func (failingRosterRepo) LoadRouteSettings(context.Context) (*domain.RouteSettings, error) {
	return nil, errors.New("disk on fire")
}
func (failingRosterRepo) SaveRouteSettings(context.Context, *domain.RouteSettings) error {
	return errors.New("disk on fire")
}

var _ repository.RosterRepository = failingRosterRepo{}

// ---- helpers ---------------------------------------------------------------

func newRoster(t *testing.T, repo repository.RosterRepository) *service.RosterService {
	t.Helper()
	svc := service.NewRosterService(config.Config{}, service.RosterDependencies{
		Repo:   repo,
		Logger: zap.NewNop(),
	})
	svc.Initialize(context.Background())
	return svc
}

func memoryRoster(t *testing.T) *service.RosterService {
	t.Helper()
	return newRoster(t, repository.NewRosterRepository(persistence.NewMemory()))
}

func studentInput(name string) domain.NewStudentInput {
	return domain.NewStudentInput{
		Name:  name,
		Phone: "11 98888-7777",
		AddressGo: domain.Address{
			CEP:          "01001000",
			Street:       "Praça da Sé",
			Number:       "100",
			Neighborhood: "Sé",
			City:         "São Paulo",
			State:        "SP",
		},
	}
}

func validSettings() domain.RouteSettings {
	return domain.RouteSettings{
		StartAddress: domain.Address{
			CEP: "01001000", Street: "Praça da Sé", City: "São Paulo", State: "SP",
		},
		EndAddress: domain.Address{
			CEP: "04538133", Street: "Av. Faria Lima", City: "São Paulo", State: "SP",
		},
	}
}

// ---- AddStudent ------------------------------------------------------------

func TestRosterService_AddStudent_StartsPresent(t *testing.T) {
	svc := memoryRoster(t)

	student, err := svc.AddStudent(context.Background(), studentInput("Ana"))

	require.NoError(t, err)
	assert.True(t, student.IsPresent)
	assert.NotEmpty(t, student.ID)
	assert.False(t, student.CreatedAt.IsZero())
}

func TestRosterService_AddStudent_PartitionSumMatchesTotal(t *testing.T) {
	svc := memoryRoster(t)
	ctx := context.Background()

	for _, name := range []string{"Ana", "Bruno", "Clara", "Davi"} {
		_, err := svc.AddStudent(ctx, studentInput(name))
		require.NoError(t, err)
	}
	first := svc.Students()[0]
	_, err := svc.ToggleStudentPresence(ctx, first.ID)
	require.NoError(t, err)

	present := svc.PresentStudents()
	absent := svc.AbsentStudents()
	assert.Equal(t, len(svc.Students()), len(present)+len(absent))
	assert.Len(t, absent, 1)
}

func TestRosterService_AddStudent_RequiresOutboundAddress(t *testing.T) {
	svc := memoryRoster(t)

	input := studentInput("Ana")
	input.AddressGo = domain.Address{}

	_, err := svc.AddStudent(context.Background(), input)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRosterService_AddStudent_PersistFailureLeavesMemoryUnchanged(t *testing.T) {
	svc := newRoster(t, failingRosterRepo{})

	_, err := svc.AddStudent(context.Background(), studentInput("Ana"))

	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.Empty(t, svc.Students())
}

// ---- UpdateStudent ---------------------------------------------------------

func TestRosterService_UpdateStudent_PartialMergeRetainsFields(t *testing.T) {
	svc := memoryRoster(t)
	ctx := context.Background()

	student, err := svc.AddStudent(ctx, studentInput("Ana"))
	require.NoError(t, err)

	phone := "11 90000-0000"
	updated, err := svc.UpdateStudent(ctx, student.ID, domain.StudentPatch{Phone: &phone})

	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, student.AddressGo, updated.AddressGo)
	assert.Equal(t, student.CreatedAt, updated.CreatedAt)
}

func TestRosterService_UpdateStudent_NotFound(t *testing.T) {
	svc := memoryRoster(t)

	_, err := svc.UpdateStudent(context.Background(), "nonexistent-id", domain.StudentPatch{})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ---- DeleteStudent ---------------------------------------------------------

func TestRosterService_DeleteStudent_UnknownIDSucceeds(t *testing.T) {
	svc := memoryRoster(t)
	ctx := context.Background()

	_, err := svc.AddStudent(ctx, studentInput("Ana"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStudent(ctx, "nonexistent-id"))
	assert.Len(t, svc.Students(), 1)
}

func TestRosterService_DeleteStudent_RemovesRecord(t *testing.T) {
	svc := memoryRoster(t)
	ctx := context.Background()

	ana, err := svc.AddStudent(ctx, studentInput("Ana"))
	require.NoError(t, err)
	_, err = svc.AddStudent(ctx, studentInput("Bruno"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStudent(ctx, ana.ID))

	students := svc.Students()
	require.Len(t, students, 1)
	assert.Equal(t, "Bruno", students[0].Name)
}

// ---- ToggleStudentPresence -------------------------------------------------

func TestRosterService_TogglePresence_Involution(t *testing.T) {
	svc := memoryRoster(t)
	ctx := context.Background()

	student, err := svc.AddStudent(ctx, studentInput("Ana"))
	require.NoError(t, err)

	once, err := svc.ToggleStudentPresence(ctx, student.ID)
	require.NoError(t, err)
	assert.False(t, once.IsPresent)

	twice, err := svc.ToggleStudentPresence(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.IsPresent, twice.IsPresent)
}

func TestRosterService_TogglePresence_NotFound(t *testing.T) {
	svc := memoryRoster(t)

	_, err := svc.ToggleStudentPresence(context.Background(), "nonexistent-id")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRosterService_TogglePresence_PreservesPartitionOrder(t *testing.T) {
	svc := memoryRoster(t)
	ctx := context.Background()

	ana, err := svc.AddStudent(ctx, studentInput("Ana"))
	require.NoError(t, err)
	bruno, err := svc.AddStudent(ctx, studentInput("Bruno"))
	require.NoError(t, err)

	_, err = svc.ToggleStudentPresence(ctx, ana.ID)
	require.NoError(t, err)

	present := svc.PresentStudents()
	require.Len(t, present, 1)
	assert.Equal(t, bruno.ID, present[0].ID)
}

// ---- SetRouteSettings ------------------------------------------------------

func TestRosterService_SetRouteSettings_RejectsIncompletePair(t *testing.T) {
	kv := persistence.NewMemory()
	svc := newRoster(t, repository.NewRosterRepository(kv))

	settings := validSettings()
	settings.EndAddress = domain.Address{}

	err := svc.SetRouteSettings(context.Background(), settings)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, svc.RouteSettings())

	_, getErr := kv.Get(context.Background(), persistence.KeyRouteSettings)
	assert.ErrorIs(t, getErr, persistence.ErrKeyNotFound)
}

func TestRosterService_SetRouteSettings_ReplacesWholesale(t *testing.T) {
	svc := memoryRoster(t)
	ctx := context.Background()

	require.NoError(t, svc.SetRouteSettings(ctx, validSettings()))

	replacement := validSettings()
	replacement.StartAddress.Street = "Rua Augusta"
	require.NoError(t, svc.SetRouteSettings(ctx, replacement))

	got := svc.RouteSettings()
	require.NotNil(t, got)
	assert.Equal(t, "Rua Augusta", got.StartAddress.Street)
}

func TestRosterService_SetRouteSettings_PersistFailure(t *testing.T) {
	svc := newRoster(t, failingRosterRepo{})

	err := svc.SetRouteSettings(context.Background(), validSettings())

	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.Nil(t, svc.RouteSettings())
}

// ---- RouteStops ------------------------------------------------------------

func TestRosterService_RouteStops_LengthAndOrder(t *testing.T) {
	svc := memoryRoster(t)
	ctx := context.Background()

	require.NoError(t, svc.SetRouteSettings(ctx, validSettings()))

	ana, err := svc.AddStudent(ctx, studentInput("Ana"))
	require.NoError(t, err)
	bruno, err := svc.AddStudent(ctx, studentInput("Bruno"))
	require.NoError(t, err)
	clara, err := svc.AddStudent(ctx, studentInput("Clara"))
	require.NoError(t, err)

	_, err = svc.ToggleStudentPresence(ctx, bruno.ID)
	require.NoError(t, err)

	stops := svc.RouteStops()

	require.Len(t, stops, 2+len(svc.PresentStudents()))
	assert.Equal(t, domain.StopKindStart, stops[0].Kind)
	assert.Equal(t, domain.StopKindEnd, stops[len(stops)-1].Kind)

	require.NotNil(t, stops[1].Student)
	require.NotNil(t, stops[2].Student)
	assert.Equal(t, ana.ID, stops[1].Student.ID)
	assert.Equal(t, clara.ID, stops[2].Student.ID)
}

func TestRosterService_RouteStops_UnconfiguredSettings(t *testing.T) {
	svc := memoryRoster(t)

	stops := svc.RouteStops()

	require.Len(t, stops, 2)
	assert.Nil(t, stops[0].Address)
	assert.Nil(t, stops[1].Address)
}

// ---- Initialize ------------------------------------------------------------

func TestRosterService_Initialize_FallsBackToEmptyOnReadFailure(t *testing.T) {
	svc := newRoster(t, failingRosterRepo{})

	assert.Empty(t, svc.Students())
	assert.Nil(t, svc.RouteSettings())
}

func TestRosterService_Initialize_LoadsPersistedState(t *testing.T) {
	kv := persistence.NewMemory()
	repo := repository.NewRosterRepository(kv)

	seeded := newRoster(t, repo)
	ctx := context.Background()
	_, err := seeded.AddStudent(ctx, studentInput("Ana"))
	require.NoError(t, err)
	require.NoError(t, seeded.SetRouteSettings(ctx, validSettings()))

	reloaded := newRoster(t, repo)

	require.Len(t, reloaded.Students(), 1)
	assert.Equal(t, "Ana", reloaded.Students()[0].Name)
	require.NotNil(t, reloaded.RouteSettings())
}

package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CaioVictor3/Bus-Manager-App/internal/config"
	"github.com/CaioVictor3/Bus-Manager-App/internal/domain"
	"github.com/CaioVictor3/Bus-Manager-App/internal/events"
	"github.com/CaioVictor3/Bus-Manager-App/internal/repository"
	apperrors "github.com/CaioVictor3/Bus-Manager-App/pkg/util"
)

// RosterService is the roster store: it owns the ordered student
// collection and the route-settings singleton, and derives the presence
// partitions and the route-stop sequence. Mutations are serialized by a
// per-store mutex held across persist-then-commit, so readers never see
// in-memory state that is ahead of the durable record.
type RosterService struct {
	repo       repository.RosterRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	ioTimeout  time.Duration

	mu          sync.Mutex
	initialized bool
	students    []domain.Student
	settings    *domain.RouteSettings
}

// RosterDependencies encapsulates collaborator requirements.
type RosterDependencies struct {
	Repo       repository.RosterRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewRosterService builds the store.
func NewRosterService(cfg config.Config, deps RosterDependencies) *RosterService {
	return &RosterService{
		repo:       deps.Repo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		ioTimeout:  cfg.Storage.PersistTimeout(),
		students:   []domain.Student{},
	}
}

// Initialize loads the student collection and route settings in parallel.
// Either read failing falls back to empty/absent state; failures are
// logged as observability data, never returned to the caller. Calling
// again after resolution is a no-op.
func (s *RosterService) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}

	ioCtx, cancel := s.ioContext(ctx)
	defer cancel()

	var (
		wg          sync.WaitGroup
		students    []domain.Student
		settings    *domain.RouteSettings
		studentsErr error
		settingsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		students, studentsErr = s.repo.LoadStudents(ioCtx)
	}()
	go func() {
		defer wg.Done()
		settings, settingsErr = s.repo.LoadRouteSettings(ioCtx)
	}()
	wg.Wait()

	if studentsErr != nil {
		s.logger.Error("failed to load students", zap.Error(studentsErr))
		students = []domain.Student{}
	}
	if settingsErr != nil {
		s.logger.Error("failed to load route settings", zap.Error(settingsErr))
		settings = nil
	}

	s.students = students
	s.settings = settings
	s.initialized = true
}

// AddStudent enrolls a student: a fresh id and creation timestamp are
// assigned and the presence flag starts true. The full collection is
// persisted before the in-memory append; on a write failure nothing
// changes.
func (s *RosterService) AddStudent(ctx context.Context, input domain.NewStudentInput) (domain.Student, error) {
	if input.Name == "" {
		return domain.Student{}, apperrors.NewValidationError("name is required", nil)
	}
	if input.AddressGo.IsZero() {
		return domain.Student{}, apperrors.NewValidationError("outbound address is required", nil)
	}

	student := domain.Student{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Phone:     input.Phone,
		AddressGo: input.AddressGo,
		IsPresent: true,
		CreatedAt: time.Now().UTC(),
	}
	if input.AddressReturn != nil {
		addr := *input.AddressReturn
		student.AddressReturn = &addr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Student, len(s.students), len(s.students)+1)
	copy(next, s.students)
	next = append(next, student)

	if err := s.persistStudents(ctx, next); err != nil {
		return domain.Student{}, err
	}

	s.students = next
	s.publish(ctx, events.EventStudentAdded, events.StudentPayload{StudentID: student.ID, Name: student.Name})
	return student, nil
}

// UpdateStudent merges the patch into the stored record. Fields the patch
// does not carry are retained. Returns NOT_FOUND when no record has the
// given id; the collection is unchanged on any failure.
func (s *RosterService) UpdateStudent(ctx context.Context, id string, patch domain.StudentPatch) (domain.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Student{}, apperrors.NewNotFound("student", map[string]any{"id": id})
	}

	merged := patch.Apply(s.students[idx])

	next := make([]domain.Student, len(s.students))
	copy(next, s.students)
	next[idx] = merged

	if err := s.persistStudents(ctx, next); err != nil {
		return domain.Student{}, err
	}

	s.students = next
	s.publish(ctx, events.EventStudentUpdated, events.StudentPayload{StudentID: merged.ID, Name: merged.Name})
	return merged, nil
}

// DeleteStudent removes the record with the given id. Deleting an absent
// id is not an error: removal is idempotent and skips the durable write.
func (s *RosterService) DeleteStudent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	next := make([]domain.Student, 0, len(s.students)-1)
	next = append(next, s.students[:idx]...)
	next = append(next, s.students[idx+1:]...)

	if err := s.persistStudents(ctx, next); err != nil {
		return err
	}

	s.students = next
	s.publish(ctx, events.EventStudentDeleted, events.StudentPayload{StudentID: id})
	return nil
}

// ToggleStudentPresence flips the presence flag for exactly the matching
// id. Returns NOT_FOUND when no record has the given id.
func (s *RosterService) ToggleStudentPresence(ctx context.Context, id string) (domain.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Student{}, apperrors.NewNotFound("student", map[string]any{"id": id})
	}

	toggled := s.students[idx]
	toggled.IsPresent = !toggled.IsPresent

	next := make([]domain.Student, len(s.students))
	copy(next, s.students)
	next[idx] = toggled

	if err := s.persistStudents(ctx, next); err != nil {
		return domain.Student{}, err
	}

	s.students = next
	present := toggled.IsPresent
	s.publish(ctx, events.EventPresenceToggled, events.StudentPayload{StudentID: toggled.ID, Name: toggled.Name, IsPresent: &present})
	return toggled, nil
}

// SetRouteSettings replaces the singleton wholesale. Both addresses must
// be complete; a partial pair is rejected before anything is written.
func (s *RosterService) SetRouteSettings(ctx context.Context, settings domain.RouteSettings) error {
	if !settings.Complete() {
		return apperrors.NewValidationError("start and end addresses must both be complete", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ioCtx, cancel := s.ioContext(ctx)
	defer cancel()

	if err := s.repo.SaveRouteSettings(ioCtx, &settings); err != nil {
		return apperrors.NewPersistenceError(err)
	}

	s.settings = &settings
	s.publish(ctx, events.EventRouteSettingsSet, events.RouteSettingsPayload{
		StartCEP: settings.StartAddress.CEP,
		EndCEP:   settings.EndAddress.CEP,
	})
	return nil
}

// Students returns a copy of the full collection in registry order.
func (s *RosterService) Students() []domain.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneStudents(s.students)
}

// PresentStudents returns the students marked present, preserving
// registry insertion order. Pure projection, no I/O.
func (s *RosterService) PresentStudents() []domain.Student {
	return s.filterStudents(true)
}

// AbsentStudents returns the students marked absent, preserving registry
// insertion order. Pure projection, no I/O.
func (s *RosterService) AbsentStudents() []domain.Student {
	return s.filterStudents(false)
}

// RouteSettings returns the configured settings, or nil when absent.
func (s *RosterService) RouteSettings() *domain.RouteSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		return nil
	}
	copied := *s.settings
	return &copied
}

// RouteStops derives the ordered stop sequence: the start point, one stop
// per present student in registry order, then the end point. When route
// settings are absent the start and end stops carry no address and the
// consumer renders a "not configured" placeholder.
func (s *RosterService) RouteStops() []domain.RouteStop {
	s.mu.Lock()
	defer s.mu.Unlock()

	stops := make([]domain.RouteStop, 0, len(s.students)+2)

	start := domain.RouteStop{Kind: domain.StopKindStart}
	end := domain.RouteStop{Kind: domain.StopKindEnd}
	if s.settings != nil {
		startAddr := s.settings.StartAddress
		endAddr := s.settings.EndAddress
		start.Address = &startAddr
		end.Address = &endAddr
	}

	stops = append(stops, start)
	for _, student := range s.students {
		if !student.IsPresent {
			continue
		}
		copied := cloneStudent(student)
		stops = append(stops, domain.RouteStop{
			Kind:    domain.StopKindStudent,
			Address: &copied.AddressGo,
			Student: &copied,
		})
	}
	stops = append(stops, end)
	return stops
}

func (s *RosterService) filterStudents(present bool) []domain.Student {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Student, 0, len(s.students))
	for _, student := range s.students {
		if student.IsPresent == present {
			out = append(out, cloneStudent(student))
		}
	}
	return out
}

// indexOf returns the position of the student with the given id, or -1.
// Callers must hold s.mu.
func (s *RosterService) indexOf(id string) int {
	for i, student := range s.students {
		if student.ID == id {
			return i
		}
	}
	return -1
}

// persistStudents writes the candidate collection under a bounded
// timeout. Callers must hold s.mu and only commit to memory on success.
func (s *RosterService) persistStudents(ctx context.Context, students []domain.Student) error {
	ioCtx, cancel := s.ioContext(ctx)
	defer cancel()

	if err := s.repo.SaveStudents(ioCtx, students); err != nil {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

func (s *RosterService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func (s *RosterService) ioContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.ioTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.ioTimeout)
}

func cloneStudent(s domain.Student) domain.Student {
	copied := s
	if s.AddressReturn != nil {
		addr := *s.AddressReturn
		copied.AddressReturn = &addr
	}
	return copied
}

func cloneStudents(students []domain.Student) []domain.Student {
	out := make([]domain.Student, len(students))
	for i, s := range students {
		out[i] = cloneStudent(s)
	}
	return out
}

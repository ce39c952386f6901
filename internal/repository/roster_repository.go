package repository

import (
	"context"
	"errors"

	"github.com/CaioVictor3/Bus-Manager-App/internal/domain"
	"github.com/CaioVictor3/Bus-Manager-App/internal/persistence"
)

// RosterRepository defines persistence access for the student collection
// and the route-settings singleton. The student list is persisted whole
// on every change; ordering is preserved losslessly.
type RosterRepository interface {
	LoadStudents(ctx context.Context) ([]domain.Student, error)
	SaveStudents(ctx context.Context, students []domain.Student) error
	LoadRouteSettings(ctx context.Context) (*domain.RouteSettings, error)
	SaveRouteSettings(ctx context.Context, settings *domain.RouteSettings) error
}

type rosterRepository struct {
	kv persistence.KeyValue
}

// NewRosterRepository returns a KeyValue-backed implementation.
func NewRosterRepository(kv persistence.KeyValue) RosterRepository {
	return &rosterRepository{kv: kv}
}

// LoadStudents returns the persisted ordered collection, or an empty
// slice when the key has never been written.
func (r *rosterRepository) LoadStudents(ctx context.Context) ([]domain.Student, error) {
	var students []domain.Student
	if err := persistence.GetJSON(ctx, r.kv, persistence.KeyStudents, &students); err != nil {
		if errors.Is(err, persistence.ErrKeyNotFound) {
			return []domain.Student{}, nil
		}
		return nil, err
	}
	if students == nil {
		students = []domain.Student{}
	}
	return students, nil
}

func (r *rosterRepository) SaveStudents(ctx context.Context, students []domain.Student) error {
	return persistence.PutJSON(ctx, r.kv, persistence.KeyStudents, students)
}

// LoadRouteSettings returns nil without error when settings were never
// configured.
func (r *rosterRepository) LoadRouteSettings(ctx context.Context) (*domain.RouteSettings, error) {
	var settings domain.RouteSettings
	if err := persistence.GetJSON(ctx, r.kv, persistence.KeyRouteSettings, &settings); err != nil {
		if errors.Is(err, persistence.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *rosterRepository) SaveRouteSettings(ctx context.Context, settings *domain.RouteSettings) error {
	return persistence.PutJSON(ctx, r.kv, persistence.KeyRouteSettings, settings)
}

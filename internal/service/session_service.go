package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CaioVictor3/Bus-Manager-App/internal/auth"
	"github.com/CaioVictor3/Bus-Manager-App/internal/config"
	"github.com/CaioVictor3/Bus-Manager-App/internal/domain"
	"github.com/CaioVictor3/Bus-Manager-App/internal/events"
	"github.com/CaioVictor3/Bus-Manager-App/internal/repository"
	apperrors "github.com/CaioVictor3/Bus-Manager-App/pkg/util"
)

// SessionState models the identity lifecycle.
type SessionState int

const (
	// SessionUnresolved is the initial state before the persisted record
	// has been consulted.
	SessionUnresolved SessionState = iota
	// SessionAnonymous means no driver is logged in.
	SessionAnonymous
	// SessionAuthenticated means exactly one driver is logged in.
	SessionAuthenticated
)

// SessionService is the session store: it holds zero-or-one authenticated
// driver and exposes the identity lifecycle. Mutations are serialized by a
// per-store mutex held across the persist-then-commit sequence, so the
// in-memory state never runs ahead of the durable record.
type SessionService struct {
	repo       repository.SessionRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	logger     *zap.Logger

	bcryptCost  int
	legacyLogin bool
	ioTimeout   time.Duration

	mu    sync.Mutex
	state SessionState
	user  *domain.User
}

// SessionDependencies encapsulates collaborator requirements.
type SessionDependencies struct {
	Repo       repository.SessionRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewSessionService builds the store.
func NewSessionService(cfg config.Config, deps SessionDependencies) *SessionService {
	return &SessionService{
		repo:        deps.Repo,
		dispatcher:  deps.Dispatcher,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		logger:      deps.Logger,
		bcryptCost:  cfg.Auth.BcryptCost,
		legacyLogin: cfg.Auth.AllowLegacyLogin,
		ioTimeout:   cfg.Storage.PersistTimeout(),
		state:       SessionUnresolved,
	}
}

// Initialize resolves the session from the persisted record exactly once.
// A missing record or a read failure resolves to Anonymous; read failures
// are logged, never propagated. Calling again after resolution is a no-op.
func (s *SessionService) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionUnresolved {
		return
	}

	ioCtx, cancel := s.ioContext(ctx)
	defer cancel()

	user, err := s.repo.LoadUser(ioCtx)
	if err != nil {
		if err != repository.ErrNoUser {
			s.logger.Error("failed to load persisted user", zap.Error(err))
		}
		s.state = SessionAnonymous
		return
	}

	s.user = user
	s.state = SessionAuthenticated
}

// Register creates the driver account, persists it (overwriting any prior
// record) and logs the driver in. Email and password are both required;
// nothing is written when either is missing.
func (s *SessionService) Register(ctx context.Context, profile domain.Profile, password string) (*domain.User, string, time.Time, error) {
	if profile.Email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("email and password are required", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         profile.Name,
		Email:        profile.Email,
		Phone:        profile.Phone,
		Vehicle:      profile.Vehicle,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ioCtx, cancel := s.ioContext(ctx)
	defer cancel()

	if err := s.repo.SaveUser(ioCtx, user); err != nil {
		return nil, "", time.Time{}, apperrors.NewPersistenceError(err)
	}

	s.user = user
	s.state = SessionAuthenticated
	s.publishSessionChanged(ctx)

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// Login authenticates against the persisted driver record. The password
// is verified against the stored bcrypt hash unless legacy login is
// enabled, in which case only the email has to match (the historical
// demo behavior).
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	if email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("email and password are required", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ioCtx, cancel := s.ioContext(ctx)
	defer cancel()

	user, err := s.repo.LoadUser(ioCtx)
	if err != nil {
		if err == repository.ErrNoUser {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.NewPersistenceError(err)
	}

	if user.Email != email {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if !s.legacyLogin {
		if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
	}

	s.user = user
	s.state = SessionAuthenticated
	s.publishSessionChanged(ctx)

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// Logout clears the persisted record and transitions to Anonymous. It
// always succeeds: a persistence failure is logged as a warning while the
// in-memory session is still cleared.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ioCtx, cancel := s.ioContext(ctx)
	defer cancel()

	if err := s.repo.ClearUser(ioCtx); err != nil {
		s.logger.Warn("failed to clear persisted user", zap.Error(err))
	}

	s.user = nil
	s.state = SessionAnonymous
	s.publishSessionChanged(ctx)
}

// CurrentUser returns the authenticated driver, if any.
func (s *SessionService) CurrentUser() (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionAuthenticated || s.user == nil {
		return nil, false
	}
	copied := *s.user
	return &copied, true
}

// State returns the current lifecycle state.
func (s *SessionService) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *SessionService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *SessionService) publishSessionChanged(ctx context.Context) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.NewSessionChanged(uuid.NewString(), s.user))
}

func (s *SessionService) ioContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.ioTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.ioTimeout)
}

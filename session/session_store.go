package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"time"

	"github.com/cristalhq/jwt/v4"
	"github.com/sirupsen/logrus"

	"rental_frontend/domain"
	"rental_frontend/errors"
	application "rental_frontend/service"
)

var ErrIncompleteAuthResponse = stderrors.New(errors.IncompleteAuthResponse)

// Authenticator is the part of the auth service the store drives.
type Authenticator interface {
	Login(ctx context.Context, input domain.LoginInput) (*domain.AuthResponse, error)
	RegisterTenant(ctx context.Context, input domain.TenantRegistration) (*domain.AuthResponse, error)
	RegisterLandlord(ctx context.Context, input domain.LandlordRegistration) (*domain.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) (*application.MessageResult, error)
	ResetPassword(ctx context.Context, input domain.ResetPasswordInput) (*application.MessageResult, error)
}

// Store owns the process wide session. Nothing else mutates it; readers get
// copies.
type Store struct {
	auth    Authenticator
	storage domain.SessionStorage
	logger  *logrus.Logger

	once        sync.Once
	mu          sync.RWMutex
	session     domain.Session
	initialized bool

	subscribersMu sync.Mutex
	subscribers   map[int]func(domain.Session)
	nextID        int
}

func NewStore(auth Authenticator, storage domain.SessionStorage, logger *logrus.Logger) *Store {
	return &Store{
		auth:        auth,
		storage:     storage,
		logger:      logger,
		subscribers: map[int]func(domain.Session){},
	}
}

// Init restores the persisted session. Only the first call does anything.
func (s *Store) Init(ctx context.Context) {
	s.once.Do(func() {
		restored := s.restore(ctx)

		s.mu.Lock()
		s.session = restored
		s.initialized = true
		s.mu.Unlock()

		if restored.IsAuthenticated() {
			if expiry, ok := s.TokenExpiry(); ok && expiry.Before(time.Now()) {
				s.logger.Warnf("restored token expired at %s", expiry.Format(time.RFC3339))
			}
		}
		s.notify()
	})
}

func (s *Store) restore(ctx context.Context) domain.Session {
	persisted, err := s.storage.Load(ctx)
	if err != nil {
		s.logger.Warnf("could not load persisted session: %v", err)
		return domain.Session{}
	}
	if !persisted.Complete() {
		return domain.Session{}
	}

	var user domain.UserSummary
	if err := json.Unmarshal([]byte(persisted.User), &user); err != nil {
		s.logger.Warnf("discarding unreadable persisted user: %v", err)
		return domain.Session{}
	}
	return domain.Session{Token: persisted.Token, User: &user}
}

func (s *Store) Login(ctx context.Context, email, password string, role domain.Role) (*domain.AuthResponse, error) {
	input := domain.LoginInput{Email: email, Password: password, Role: role}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	response, err := s.auth.Login(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.establish(ctx, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (s *Store) RegisterTenant(ctx context.Context, input domain.TenantRegistration) (*domain.AuthResponse, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	response, err := s.auth.RegisterTenant(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.establish(ctx, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (s *Store) RegisterLandlord(ctx context.Context, input domain.LandlordRegistration) (*domain.AuthResponse, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	response, err := s.auth.RegisterLandlord(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.establish(ctx, response); err != nil {
		return nil, err
	}
	return response, nil
}

// establish persists the pair and only then swaps it in. Any failure leaves
// the current session as it was.
func (s *Store) establish(ctx context.Context, response *domain.AuthResponse) error {
	if response == nil || response.Token == "" || response.User == nil {
		return ErrIncompleteAuthResponse
	}

	user, err := json.Marshal(response.User)
	if err != nil {
		return err
	}
	if err := s.storage.Save(ctx, domain.PersistedSession{Token: response.Token, User: string(user)}); err != nil {
		s.logger.Errorf("%s: %v", errors.SessionPersistenceError, err)
		return err
	}

	copied := *response.User
	s.mu.Lock()
	s.session = domain.Session{Token: response.Token, User: &copied}
	s.mu.Unlock()

	s.logger.WithField("role", copied.Role).Info("session established")
	s.notify()
	return nil
}

// Logout never calls the server and never fails. Clearing storage is
// retried once; a session left on disk comes back on the next Init.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.session = domain.Session{}
	s.mu.Unlock()

	err := s.storage.Clear(ctx)
	if err != nil {
		err = s.storage.Clear(ctx)
	}
	if err != nil {
		s.logger.WithError(err).Error("persisted session could not be cleared, it will be restored on next start")
	}
	s.notify()
}

func (s *Store) ForgotPassword(ctx context.Context, email string) (*application.MessageResult, error) {
	input := domain.ForgotPasswordInput{Email: email}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.auth.ForgotPassword(ctx, email)
}

func (s *Store) ResetPassword(ctx context.Context, input domain.ResetPasswordInput) (*application.MessageResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.auth.ResetPassword(ctx, input)
}

func (s *Store) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySession(s.session)
}

func (s *Store) IsAuthenticated() bool {
	return s.Snapshot().IsAuthenticated()
}

func (s *Store) CurrentUser() *domain.UserSummary {
	return s.Snapshot().User
}

func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Token makes the store the API client's token source.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// TokenExpiry reads the exp claim without verifying the signature; the
// backend remains the judge of validity.
func (s *Store) TokenExpiry() (time.Time, bool) {
	raw := s.Token()
	if raw == "" {
		return time.Time{}, false
	}

	token, err := jwt.ParseNoVerify([]byte(raw))
	if err != nil {
		return time.Time{}, false
	}

	var claims jwt.RegisteredClaims
	if err := json.Unmarshal(token.Claims(), &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Subscribe registers fn for every session change. The returned func removes it.
func (s *Store) Subscribe(fn func(domain.Session)) func() {
	s.subscribersMu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.subscribersMu.Unlock()

	return func() {
		s.subscribersMu.Lock()
		delete(s.subscribers, id)
		s.subscribersMu.Unlock()
	}
}

func (s *Store) notify() {
	snapshot := s.Snapshot()

	s.subscribersMu.Lock()
	listeners := make([]func(domain.Session), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.subscribersMu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

func copySession(session domain.Session) domain.Session {
	if session.User == nil {
		return session
	}
	user := *session.User
	return domain.Session{Token: session.Token, User: &user}
}

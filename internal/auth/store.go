// ABOUTME: Auth store managing the user directory and the current session.
// ABOUTME: Business failures are returned as Result values; errors mean storage failed.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/healthlog/internal/kv"
	"github.com/harperreed/healthlog/internal/logging"
	"github.com/harperreed/healthlog/internal/models"
)

// Messages reported in Result.Error.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgEmailRegistered    = "Email already registered"
	MsgMissingFields      = "Please fill in all fields"
)

// Result reports the outcome of Login or Signup.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func failure(msg string) Result {
	return Result{Success: false, Error: msg}
}

// Store owns the user directory and the session record.
type Store struct {
	mu     sync.Mutex
	kv     kv.Store
	hasher PasswordHasher
	now    func() time.Time
	logger *log.Logger
	user   *models.User
}

// Option configures a Store.
type Option func(*Store)

// WithHasher sets the password hasher. Defaults to PlainText.
func WithHasher(h PasswordHasher) Option {
	return func(s *Store) { s.hasher = h }
}

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore returns an auth store over store. Call RestoreSession to pick
// up a persisted session.
func NewStore(store kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:     store,
		hasher: PlainText{},
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RestoreSession loads the persisted session. Absent, unreadable, or
// malformed values all mean "no session".
func (s *Store) RestoreSession() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	data, err := s.kv.Get(kv.SessionKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Warn("read session", "err", err)
		}
		return
	}

	var u models.User
	if err := json.Unmarshal(data, &u); err != nil || u.ID == "" {
		s.logger.Warn("ignoring malformed session record")
		return
	}
	s.user = &u
}

// User returns the session user, or nil when nobody is logged in.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	return s.User() != nil
}

// Login authenticates email and password. Email matching is exact and
// case-sensitive.
func (s *Store) Login(email, password string) (Result, error) {
	if email == "" || password == "" {
		return failure(MsgMissingFields), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadDirectory()
	if err != nil {
		return Result{}, err
	}

	for i := range users {
		if users[i].Email != email {
			continue
		}
		ok, err := s.hasher.Verify(password, users[i].Password)
		if err != nil {
			s.logger.Warn("verify password", "user", users[i].ID, "err", err)
			continue
		}
		if !ok {
			continue
		}
		if err := s.activate(users[i].Public()); err != nil {
			return Result{}, err
		}
		s.logger.Info("login", "user", users[i].ID)
		return Result{Success: true}, nil
	}

	s.logger.Debug("login rejected", "email", email)
	return failure(MsgInvalidCredentials), nil
}

// Signup registers a new user and logs them in.
func (s *Store) Signup(email, password, name string) (Result, error) {
	if email == "" || password == "" || name == "" {
		return failure(MsgMissingFields), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadDirectory()
	if err != nil {
		return Result{}, err
	}
	for _, u := range users {
		if u.Email == email {
			return failure(MsgEmailRegistered), nil
		}
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		return Result{}, fmt.Errorf("hash password: %w", err)
	}

	rec := models.NewUserRecord(email, stored, name, s.now())
	users = append(users, *rec)

	data, err := json.Marshal(users)
	if err != nil {
		return Result{}, fmt.Errorf("encode users: %w", err)
	}
	if err := s.kv.Set(kv.UsersKey, data); err != nil {
		return Result{}, fmt.Errorf("save users: %w", err)
	}

	if err := s.activate(rec.Public()); err != nil {
		return Result{}, err
	}
	s.logger.Info("signup", "user", rec.ID)
	return Result{Success: true}, nil
}

// Logout clears the session. It is safe to call when nobody is logged in.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	if err := s.kv.Remove(kv.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Users returns the public view of every registered user.
func (s *Store) Users() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadDirectory()
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(records))
	for i := range records {
		out = append(out, records[i].Public())
	}
	return out, nil
}

// activate persists u as the session and makes it current. Caller holds mu.
func (s *Store) activate(u models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(kv.SessionKey, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.user = &u
	return nil
}

// loadDirectory reads the user directory. Caller holds mu.
func (s *Store) loadDirectory() ([]models.UserRecord, error) {
	data, err := s.kv.Get(kv.UsersKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	var users []models.UserRecord
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/robolab-go/internal/auth"
	"github.com/linskybing/robolab-go/internal/domain/account"
	"github.com/linskybing/robolab-go/internal/repository"
	"github.com/linskybing/robolab-go/pkg/apperr"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthenticated)

const minPasswordLength = 8

type SessionEventType string

const (
	SessionSignedIn  SessionEventType = "signed_in"
	SessionSignedOut SessionEventType = "signed_out"
)

type SessionEvent struct {
	Type    SessionEventType
	Session account.Session
}

// AuthService owns accounts and sessions. A session token is only valid
// while its session row exists and has not expired.
type AuthService struct {
	Repos  *repository.Repos
	tokens *auth.TokenManager
	ttl    time.Duration
	now    func() time.Time

	mu        sync.Mutex
	listeners map[int]func(SessionEvent)
	nextID    int
}

func NewAuthService(repos *repository.Repos, tokens *auth.TokenManager, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		Repos:     repos,
		tokens:    tokens,
		ttl:       ttl,
		now:       utcNow,
		listeners: make(map[int]func(SessionEvent)),
	}
}

// CreateAccount registers credentials. The email must be unused.
func (s *AuthService) CreateAccount(ctx context.Context, email, password string) (account.Account, error) {
	email = account.NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return account.Account{}, apperr.Invalid("email", "must be a valid email address")
	}
	if len(password) < minPasswordLength {
		return account.Account{}, apperr.Invalid("password", "must be at least 8 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return account.Account{}, err
	}
	now := s.now()
	acct := account.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repos.Account.CreateAccount(ctx, &acct); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return account.Account{}, apperr.Invalid("email", "already registered")
		}
		return account.Account{}, err
	}
	return acct, nil
}

// ResetPassword replaces the password of the account registered under email.
func (s *AuthService) ResetPassword(ctx context.Context, email, password string) error {
	if len(password) < minPasswordLength {
		return apperr.Invalid("password", "must be at least 8 characters")
	}
	acct, err := s.Repos.Account.GetAccountByEmail(ctx, email)
	if err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Repos.Account.UpdatePassword(ctx, acct.ID, string(hashed), s.now())
}

// Bootstrap ensures an account exists for email. An existing account is left untouched.
func (s *AuthService) Bootstrap(ctx context.Context, email, password string) (account.Account, error) {
	acct, err := s.Repos.Account.GetAccountByEmail(ctx, email)
	if err == nil {
		return acct, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return account.Account{}, err
	}
	acct, err = s.CreateAccount(ctx, email, password)
	if err != nil {
		return account.Account{}, err
	}
	log.Printf("Bootstrapped account %s", acct.Email)
	return acct, nil
}

func (s *AuthService) GetAccountByEmail(ctx context.Context, email string) (account.Account, error) {
	return s.Repos.Account.GetAccountByEmail(ctx, email)
}

// SignIn verifies credentials and opens a session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, account.Session, error) {
	acct, err := s.Repos.Account.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", account.Session{}, ErrInvalidCredentials
		}
		return "", account.Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", account.Session{}, ErrInvalidCredentials
	}

	now := s.now()
	sess := account.Session{
		ID:        uuid.NewString(),
		AccountID: acct.ID,
		Email:     acct.Email,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.Repos.Session.CreateSession(ctx, &sess); err != nil {
		return "", account.Session{}, err
	}
	token, err := s.tokens.Issue(sess.ID, acct.ID, acct.Email, sess.ExpiresAt)
	if err != nil {
		return "", account.Session{}, err
	}
	s.emit(SessionEvent{Type: SessionSignedIn, Session: sess})
	return token, sess, nil
}

// SignOut ends a session. Signing out an unknown session is not an error.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	sess, err := s.Repos.Session.GetSessionByID(ctx, sessionID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.Repos.Session.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	s.emit(SessionEvent{Type: SessionSignedOut, Session: sess})
	return nil
}

// GetSession validates token and returns its live session.
func (s *AuthService) GetSession(ctx context.Context, token string) (account.Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return account.Session{}, apperr.ErrUnauthenticated
	}
	sess, err := s.Repos.Session.GetSessionByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return account.Session{}, apperr.ErrUnauthenticated
		}
		return account.Session{}, err
	}
	if sess.AccountID != claims.AccountID || sess.Expired(s.now()) {
		return account.Session{}, apperr.ErrUnauthenticated
	}
	return sess, nil
}

// OnSessionChange registers fn for sign-in and sign-out events and returns
// a func that removes it.
func (s *AuthService) OnSessionChange(fn func(SessionEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *AuthService) emit(ev SessionEvent) {
	s.mu.Lock()
	fns := make([]func(SessionEvent), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// CleanupExpiredSessions deletes sessions past their expiry.
func (s *AuthService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return s.Repos.Session.DeleteExpiredSessions(ctx, s.now())
}

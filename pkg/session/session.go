// Package session holds the signed-in staff identity and bearer credential,
// persisted through a storage.Store so it survives restarts.
//
// A Store is created with Open, passed to whatever needs it, and released with
// Close. There is no package-level session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/megaloja/fidelidade/pkg/domain"
	"github.com/megaloja/fidelidade/pkg/storage"
)

// Durable keys. Both are written and cleared together.
const (
	TokenKey   = "token"
	UsuarioKey = "usuario"
)

// ErrInvalidLogin is returned by Login when the identity or credential is empty.
var ErrInvalidLogin = errors.New("session: identity login and credential are required")

// Store is the single source of truth for who is signed in.
type Store struct {
	kv  storage.Store
	log zerolog.Logger

	mu       sync.RWMutex
	usuario  *domain.Usuario
	token    string
	onExpire []func()
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards output.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open rehydrates the session from kv. A stored identity that does not parse,
// or stored state that cannot be read, is treated as a corrupted session: both
// keys are deleted and the store starts signed out. An error is returned only
// when that reset fails.
func Open(ctx context.Context, kv storage.Store, opts ...Option) (*Store, error) {
	s := &Store{kv: kv, log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}

	token, raw, err := s.readPair(ctx)
	if err != nil {
		return s.discard(ctx, err)
	}
	if token == "" || raw == "" {
		return s, nil
	}

	u, err := decodeUsuario(raw)
	if err != nil {
		return s.discard(ctx, err)
	}
	s.usuario = &u
	s.token = token
	s.log.Debug().Str("login", u.Login).Msg("session restored")
	return s, nil
}

func (s *Store) readPair(ctx context.Context) (token, raw string, err error) {
	if token, err = s.read(ctx, TokenKey); err != nil {
		return "", "", err
	}
	if raw, err = s.read(ctx, UsuarioKey); err != nil {
		return "", "", err
	}
	return token, raw, nil
}

// discard resets an unreadable stored session so the store starts signed out.
// It fails only when the reset itself fails.
func (s *Store) discard(ctx context.Context, cause error) (*Store, error) {
	s.log.Warn().Err(cause).Msg("discarding unreadable stored session")
	if err := s.kv.Delete(ctx, TokenKey, UsuarioKey); err != nil {
		return nil, fmt.Errorf("session.Open: %w (reset failed: %v)", cause, err)
	}
	return s, nil
}

// Login records the identity and credential in memory and durable storage.
// Memory is only updated once the durable write succeeded.
func (s *Store) Login(ctx context.Context, u domain.Usuario, token string) error {
	if strings.TrimSpace(u.Login) == "" || strings.TrimSpace(token) == "" {
		return ErrInvalidLogin
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("session.Login: encode identity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.SetMany(ctx, map[string]string{
		TokenKey:   token,
		UsuarioKey: string(raw),
	}); err != nil {
		return fmt.Errorf("session.Login: %w", err)
	}
	s.usuario = &u
	s.token = token
	s.log.Info().Str("login", u.Login).Str("tipo", string(u.Tipo)).Msg("signed in")
	return nil
}

// Logout clears the session from memory and durable storage. Calling it when
// already signed out is a no-op apart from the storage delete.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx)
}

// Expire tears the session down after the backend rejected the credential,
// then notifies OnExpire listeners. Memory is cleared even when the storage
// delete fails.
func (s *Store) Expire(ctx context.Context) error {
	s.mu.Lock()
	err := s.clearLocked(ctx)
	listeners := append([]func(){}, s.onExpire...)
	s.mu.Unlock()

	s.log.Warn().Msg("credential rejected, session expired")
	for _, fn := range listeners {
		fn()
	}
	return err
}

// OnExpire registers fn to run after every Expire.
func (s *Store) OnExpire(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpire = append(s.onExpire, fn)
}

func (s *Store) clearLocked(ctx context.Context) error {
	s.usuario = nil
	s.token = ""
	if err := s.kv.Delete(ctx, TokenKey, UsuarioKey); err != nil {
		return fmt.Errorf("session: clear storage: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether an identity is loaded and a non-empty
// credential can be read back from durable storage. A credential held only in
// memory does not count.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	s.mu.RLock()
	has := s.usuario != nil
	s.mu.RUnlock()
	if !has {
		return false
	}
	token, err := s.read(ctx, TokenKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("reading stored credential")
		return false
	}
	return token != ""
}

// IsAdmin reports whether the session is authenticated as an Administrator.
func (s *Store) IsAdmin(ctx context.Context) bool {
	if !s.IsAuthenticated(ctx) {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usuario != nil && s.usuario.Tipo.IsAdmin()
}

// Identity returns the signed-in staff account.
func (s *Store) Identity() (domain.Usuario, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.usuario == nil {
		return domain.Usuario{}, false
	}
	return *s.usuario, true
}

// Token returns the in-memory bearer credential, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ExpiresAt reads the exp claim of a JWT credential without verifying it.
// It is for display; the backend remains the authority on expiry.
func (s *Store) ExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	// MapClaims tolerates the numeric sub the backend issues.
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Close releases the underlying storage.
func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) read(ctx context.Context, key string) (string, error) {
	v, err := s.kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func decodeUsuario(raw string) (domain.Usuario, error) {
	var u domain.Usuario
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return domain.Usuario{}, fmt.Errorf("decode identity: %w", err)
	}
	if strings.TrimSpace(u.Login) == "" {
		return domain.Usuario{}, errors.New("decode identity: missing login")
	}
	return u, nil
}

package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/megaloja/fidelidade/pkg/domain"
)

// Credentials is the login payload.
type Credentials struct {
	Login string `json:"login" validate:"required"`
	Senha string `json:"senha" validate:"required"`
}

// NovoUsuario is the payload for creating a staff account.
type NovoUsuario struct {
	Login string      `json:"login" validate:"required"`
	Nome  string      `json:"nome" validate:"required"`
	Email string      `json:"email,omitempty" validate:"omitempty,email"`
	Senha string      `json:"senha" validate:"required"`
	Tipo  domain.Role `json:"tipo,omitempty" validate:"omitempty,oneof=Administrador Operador Visualizador"`
}

// UsuarioUpdate carries only the fields to change. An empty Senha keeps the
// current password.
type UsuarioUpdate struct {
	Nome  *string      `json:"nome,omitempty" validate:"omitempty,min=1"`
	Email *string      `json:"email,omitempty" validate:"omitempty,email"`
	Tipo  *domain.Role `json:"tipo,omitempty" validate:"omitempty,oneof=Administrador Operador Visualizador"`
	Ativo *bool        `json:"ativo,omitempty"`
	Senha string       `json:"senha,omitempty"`
}

// Login exchanges credentials for a token. A 401 here means wrong
// credentials and comes back as a RequestError; the session is untouched.
func (c *Client) Login(ctx context.Context, creds Credentials) (*domain.LoginResult, error) {
	if err := validatePayload(creds); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	var res domain.LoginResult
	if err := c.Request(ctx, http.MethodPost, "/auth/login", creds, &res, keepSessionOn401()); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &res, nil
}

// Authenticate logs in and stores the returned identity and token in the
// session.
func (c *Client) Authenticate(ctx context.Context, login, senha string) (*domain.Usuario, error) {
	if c.session == nil {
		return nil, errors.New("client.Authenticate: no session configured")
	}
	res, err := c.Login(ctx, Credentials{Login: login, Senha: senha})
	if err != nil {
		return nil, err
	}
	if err := c.session.Login(ctx, res.Usuario, res.AccessToken); err != nil {
		return nil, fmt.Errorf("client.Authenticate: %w", err)
	}
	return &res.Usuario, nil
}

// Me returns the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (*domain.Usuario, error) {
	var u domain.Usuario
	if err := c.get(ctx, "/auth/me", &u); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &u, nil
}

// Logout tells the backend and then clears the local session. The local
// session is cleared even when the backend call fails.
func (c *Client) Logout(ctx context.Context) error {
	remoteErr := c.post(ctx, "/auth/logout", nil, nil)
	if errors.Is(remoteErr, ErrSessionExpired) {
		// Expire already cleared everything.
		remoteErr = nil
	}
	var localErr error
	if c.session != nil {
		localErr = c.session.Logout(ctx)
	}
	if err := errors.Join(remoteErr, localErr); err != nil {
		return fmt.Errorf("client.Logout: %w", err)
	}
	return nil
}

// ListUsuarios returns all staff accounts. Administrators only.
func (c *Client) ListUsuarios(ctx context.Context) ([]domain.Usuario, error) {
	var us []domain.Usuario
	if err := c.get(ctx, "/auth/usuarios", &us); err != nil {
		return nil, fmt.Errorf("client.ListUsuarios: %w", err)
	}
	return us, nil
}

// CreateUsuario creates a staff account.
func (c *Client) CreateUsuario(ctx context.Context, u NovoUsuario) (*domain.Usuario, error) {
	if err := validatePayload(u); err != nil {
		return nil, fmt.Errorf("client.CreateUsuario: %w", err)
	}
	var out domain.Usuario
	if err := c.post(ctx, "/auth/usuarios", u, &out); err != nil {
		return nil, fmt.Errorf("client.CreateUsuario: %w", err)
	}
	return &out, nil
}

// UpdateUsuario patches a staff account.
func (c *Client) UpdateUsuario(ctx context.Context, id int64, u UsuarioUpdate) (*domain.Usuario, error) {
	if err := validatePayload(u); err != nil {
		return nil, fmt.Errorf("client.UpdateUsuario: %w", err)
	}
	var out domain.Usuario
	if err := c.put(ctx, idPath("/auth/usuarios", id), u, &out); err != nil {
		return nil, fmt.Errorf("client.UpdateUsuario: %w", err)
	}
	return &out, nil
}

// DeleteUsuario removes a staff account.
func (c *Client) DeleteUsuario(ctx context.Context, id int64) error {
	if err := c.delete(ctx, idPath("/auth/usuarios", id)); err != nil {
		return fmt.Errorf("client.DeleteUsuario: %w", err)
	}
	return nil
}

package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/megaloja/fidelidade/pkg/domain"
)

// ClienteInput is the payload for registering or editing a customer. CPF must
// be sent as 11 bare digits; use domain.StripCPF on user input.
type ClienteInput struct {
	Nome     string `json:"nome" validate:"required"`
	CPF      string `json:"cpf" validate:"required,len=11,numeric"`
	Telefone string `json:"telefone" validate:"required"`
	Email    string `json:"email,omitempty" validate:"required_without=SemEmail,omitempty,email"`
	SemEmail bool   `json:"sem_email"`
}

// ListClientes returns one page of customers. Recognized keys include
// "page", "per_page" and "search".
func (c *Client) ListClientes(ctx context.Context, q Query) (*domain.ClientePage, error) {
	var page domain.ClientePage
	if err := c.get(ctx, withQuery("/clientes", q), &page); err != nil {
		return nil, fmt.Errorf("client.ListClientes: %w", err)
	}
	return &page, nil
}

// GetCliente returns a customer by id.
func (c *Client) GetCliente(ctx context.Context, id int64) (*domain.Cliente, error) {
	var cl domain.Cliente
	if err := c.get(ctx, idPath("/clientes", id), &cl); err != nil {
		return nil, fmt.Errorf("client.GetCliente: %w", err)
	}
	return &cl, nil
}

// ClienteByCPF looks a customer up by CPF. Punctuation is stripped first.
func (c *Client) ClienteByCPF(ctx context.Context, cpf string) (*domain.Cliente, error) {
	var cl domain.Cliente
	path := "/clientes/buscar-cpf/" + url.PathEscape(domain.StripCPF(cpf))
	if err := c.get(ctx, path, &cl); err != nil {
		return nil, fmt.Errorf("client.ClienteByCPF: %w", err)
	}
	return &cl, nil
}

// CreateCliente registers a customer.
func (c *Client) CreateCliente(ctx context.Context, in ClienteInput) (*domain.Cliente, error) {
	in = normalizeCliente(in)
	if err := validatePayload(in); err != nil {
		return nil, fmt.Errorf("client.CreateCliente: %w", err)
	}
	var cl domain.Cliente
	if err := c.post(ctx, "/clientes", in, &cl); err != nil {
		return nil, fmt.Errorf("client.CreateCliente: %w", err)
	}
	return &cl, nil
}

// UpdateCliente replaces a customer's registration data.
func (c *Client) UpdateCliente(ctx context.Context, id int64, in ClienteInput) (*domain.Cliente, error) {
	in = normalizeCliente(in)
	if err := validatePayload(in); err != nil {
		return nil, fmt.Errorf("client.UpdateCliente: %w", err)
	}
	var cl domain.Cliente
	if err := c.put(ctx, idPath("/clientes", id), in, &cl); err != nil {
		return nil, fmt.Errorf("client.UpdateCliente: %w", err)
	}
	return &cl, nil
}

// DeleteCliente removes a customer.
func (c *Client) DeleteCliente(ctx context.Context, id int64) error {
	if err := c.delete(ctx, idPath("/clientes", id)); err != nil {
		return fmt.Errorf("client.DeleteCliente: %w", err)
	}
	return nil
}

// normalizeCliente strips CPF punctuation and drops the e-mail of customers
// registered without one.
func normalizeCliente(in ClienteInput) ClienteInput {
	in.CPF = domain.StripCPF(in.CPF)
	if in.SemEmail {
		in.Email = ""
	}
	return in
}

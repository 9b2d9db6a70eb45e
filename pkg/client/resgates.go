package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/megaloja/fidelidade/pkg/domain"
)

// ResgateInput asks for a reward on behalf of a customer.
type ResgateInput struct {
	ClienteID int64 `json:"cliente_id" validate:"required,gt=0"`
	BrindeID  int64 `json:"brinde_id" validate:"required,gt=0"`
}

// ListResgates returns one page of redemptions. "status" filters by
// domain.ResgateStatus.
func (c *Client) ListResgates(ctx context.Context, q Query) (*domain.ResgatePage, error) {
	var page domain.ResgatePage
	if err := c.get(ctx, withQuery("/resgates", q), &page); err != nil {
		return nil, fmt.Errorf("client.ListResgates: %w", err)
	}
	return &page, nil
}

// ListResgatesCliente returns one page of a customer's redemptions.
func (c *Client) ListResgatesCliente(ctx context.Context, clienteID int64, q Query) (*domain.ResgatePage, error) {
	var page domain.ResgatePage
	if err := c.get(ctx, withQuery(idPath("/resgates/cliente", clienteID), q), &page); err != nil {
		return nil, fmt.Errorf("client.ListResgatesCliente: %w", err)
	}
	return &page, nil
}

// CreateResgate redeems a reward. The backend checks eligibility and issues
// the voucher.
func (c *Client) CreateResgate(ctx context.Context, in ResgateInput) (*domain.Resgate, error) {
	if err := validatePayload(in); err != nil {
		return nil, fmt.Errorf("client.CreateResgate: %w", err)
	}
	var r domain.Resgate
	if err := c.post(ctx, "/resgates", in, &r); err != nil {
		return nil, fmt.Errorf("client.CreateResgate: %w", err)
	}
	return &r, nil
}

// EntregarResgate marks a pending redemption as delivered.
func (c *Client) EntregarResgate(ctx context.Context, id int64) (*domain.Resgate, error) {
	var r domain.Resgate
	if err := c.put(ctx, idPath("/resgates", id, "entregar"), nil, &r); err != nil {
		return nil, fmt.Errorf("client.EntregarResgate: %w", err)
	}
	return &r, nil
}

// CancelarResgate cancels a pending redemption.
func (c *Client) CancelarResgate(ctx context.Context, id int64) (*domain.Resgate, error) {
	var r domain.Resgate
	if err := c.put(ctx, idPath("/resgates", id, "cancelar"), nil, &r); err != nil {
		return nil, fmt.Errorf("client.CancelarResgate: %w", err)
	}
	return &r, nil
}

// VerificarElegibilidade asks whether a customer may redeem a reward without
// redeeming it.
func (c *Client) VerificarElegibilidade(ctx context.Context, in ResgateInput) (*domain.Elegibilidade, error) {
	if err := validatePayload(in); err != nil {
		return nil, fmt.Errorf("client.VerificarElegibilidade: %w", err)
	}
	var e domain.Elegibilidade
	if err := c.post(ctx, "/resgates/verificar-elegibilidade", in, &e); err != nil {
		return nil, fmt.Errorf("client.VerificarElegibilidade: %w", err)
	}
	return &e, nil
}

// BrindesDisponiveis lists the rewards a customer can redeem right now.
func (c *Client) BrindesDisponiveis(ctx context.Context, clienteID int64) ([]domain.Brinde, error) {
	var out struct {
		Brindes []domain.Brinde `json:"brindes"`
	}
	if err := c.get(ctx, idPath("/resgates/brindes-disponiveis", clienteID), &out); err != nil {
		return nil, fmt.Errorf("client.BrindesDisponiveis: %w", err)
	}
	return out.Brindes, nil
}

// ResgateByVoucher looks a redemption up by its voucher code.
func (c *Client) ResgateByVoucher(ctx context.Context, voucher string) (*domain.Resgate, error) {
	var r domain.Resgate
	if err := c.get(ctx, "/resgates/voucher/"+url.PathEscape(voucher), &r); err != nil {
		return nil, fmt.Errorf("client.ResgateByVoucher: %w", err)
	}
	return &r, nil
}

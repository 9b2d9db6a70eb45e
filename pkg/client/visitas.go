package client

import (
	"context"
	"fmt"

	"github.com/megaloja/fidelidade/pkg/domain"
)

// VisitaInput is the payload for logging a purchase visit. DataVisita is
// optional; the backend stamps the current time when it is zero.
type VisitaInput struct {
	ClienteID   int64            `json:"cliente_id" validate:"required,gt=0"`
	ValorCompra float64          `json:"valor_compra" validate:"gte=0"`
	Loja        string           `json:"loja" validate:"required"`
	DataVisita  domain.Timestamp `json:"data_visita"`
}

// ListVisitas returns one page of visits.
func (c *Client) ListVisitas(ctx context.Context, q Query) (*domain.VisitaPage, error) {
	var page domain.VisitaPage
	if err := c.get(ctx, withQuery("/visitas", q), &page); err != nil {
		return nil, fmt.Errorf("client.ListVisitas: %w", err)
	}
	return &page, nil
}

// ListVisitasCliente returns one page of a customer's visits.
func (c *Client) ListVisitasCliente(ctx context.Context, clienteID int64, q Query) (*domain.VisitaPage, error) {
	var page domain.VisitaPage
	if err := c.get(ctx, withQuery(idPath("/visitas/cliente", clienteID), q), &page); err != nil {
		return nil, fmt.Errorf("client.ListVisitasCliente: %w", err)
	}
	return &page, nil
}

// CreateVisita logs a visit. Points are computed by the backend.
func (c *Client) CreateVisita(ctx context.Context, in VisitaInput) (*domain.Visita, error) {
	if err := validatePayload(in); err != nil {
		return nil, fmt.Errorf("client.CreateVisita: %w", err)
	}
	var v domain.Visita
	if err := c.post(ctx, "/visitas", in, &v); err != nil {
		return nil, fmt.Errorf("client.CreateVisita: %w", err)
	}
	return &v, nil
}

// UpdateVisita edits a visit.
func (c *Client) UpdateVisita(ctx context.Context, id int64, in VisitaInput) (*domain.Visita, error) {
	if err := validatePayload(in); err != nil {
		return nil, fmt.Errorf("client.UpdateVisita: %w", err)
	}
	var v domain.Visita
	if err := c.put(ctx, idPath("/visitas", id), in, &v); err != nil {
		return nil, fmt.Errorf("client.UpdateVisita: %w", err)
	}
	return &v, nil
}

// DeleteVisita removes a visit.
func (c *Client) DeleteVisita(ctx context.Context, id int64) error {
	if err := c.delete(ctx, idPath("/visitas", id)); err != nil {
		return fmt.Errorf("client.DeleteVisita: %w", err)
	}
	return nil
}

// PontosCliente returns a customer's point balance as the backend sees it.
func (c *Client) PontosCliente(ctx context.Context, clienteID int64) (*domain.Pontos, error) {
	var p domain.Pontos
	if err := c.get(ctx, idPath("/pontos/cliente", clienteID), &p); err != nil {
		return nil, fmt.Errorf("client.PontosCliente: %w", err)
	}
	return &p, nil
}

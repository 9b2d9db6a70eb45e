package client

import (
	"context"
	"fmt"

	"github.com/megaloja/fidelidade/pkg/domain"
)

// DashboardResumo returns the headline counters.
func (c *Client) DashboardResumo(ctx context.Context) (*domain.Resumo, error) {
	var r domain.Resumo
	if err := c.get(ctx, "/dashboard/resumo", &r); err != nil {
		return nil, fmt.Errorf("client.DashboardResumo: %w", err)
	}
	return &r, nil
}

// TopClientes returns the customers ranked by points and by visits.
func (c *Client) TopClientes(ctx context.Context) (*domain.TopClientes, error) {
	var t domain.TopClientes
	if err := c.get(ctx, "/dashboard/top-clientes", &t); err != nil {
		return nil, fmt.Errorf("client.TopClientes: %w", err)
	}
	return &t, nil
}

// VisitasPorPeriodo returns visit totals per day. "dias" sets the window.
func (c *Client) VisitasPorPeriodo(ctx context.Context, q Query) ([]domain.PeriodoVisitas, error) {
	var out []domain.PeriodoVisitas
	if err := c.get(ctx, withQuery("/dashboard/visitas-periodo", q), &out); err != nil {
		return nil, fmt.Errorf("client.VisitasPorPeriodo: %w", err)
	}
	return out, nil
}

// DistribuicaoNiveis returns how many customers sit in each tier.
func (c *Client) DistribuicaoNiveis(ctx context.Context) ([]domain.NivelCount, error) {
	var out []domain.NivelCount
	if err := c.get(ctx, "/dashboard/distribuicao-niveis", &out); err != nil {
		return nil, fmt.Errorf("client.DistribuicaoNiveis: %w", err)
	}
	return out, nil
}

// ResgatesPorStatus returns redemption counts per status.
func (c *Client) ResgatesPorStatus(ctx context.Context) ([]domain.StatusCount, error) {
	var out []domain.StatusCount
	if err := c.get(ctx, "/dashboard/resgates-status", &out); err != nil {
		return nil, fmt.Errorf("client.ResgatesPorStatus: %w", err)
	}
	return out, nil
}

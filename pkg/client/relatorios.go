package client

import (
	"context"
	"fmt"

	"github.com/megaloja/fidelidade/pkg/domain"
)

// RelatorioClientesDetalhado returns the detailed customer report.
func (c *Client) RelatorioClientesDetalhado(ctx context.Context, q Query) ([]domain.ReportRow, error) {
	var rows []domain.ReportRow
	if err := c.get(ctx, withQuery("/relatorios/clientes-detalhado", q), &rows); err != nil {
		return nil, fmt.Errorf("client.RelatorioClientesDetalhado: %w", err)
	}
	return rows, nil
}

// RelatorioCampanhasPerformance returns per-campaign results.
func (c *Client) RelatorioCampanhasPerformance(ctx context.Context) ([]domain.ReportRow, error) {
	var rows []domain.ReportRow
	if err := c.get(ctx, "/relatorios/campanhas-performance", &rows); err != nil {
		return nil, fmt.Errorf("client.RelatorioCampanhasPerformance: %w", err)
	}
	return rows, nil
}

// RelatorioVisitas returns the visits report. The backend serves this one
// under /relatorio, singular.
func (c *Client) RelatorioVisitas(ctx context.Context, q Query) ([]domain.ReportRow, error) {
	var rows []domain.ReportRow
	if err := c.get(ctx, withQuery("/relatorio/visitas", q), &rows); err != nil {
		return nil, fmt.Errorf("client.RelatorioVisitas: %w", err)
	}
	return rows, nil
}

package client

import (
	"context"
	"fmt"

	"github.com/megaloja/fidelidade/pkg/domain"
)

// CampanhaInput is the payload for creating or editing a campaign.
type CampanhaInput struct {
	Nome             string           `json:"nome" validate:"required"`
	Loja             string           `json:"loja" validate:"required"`
	DataInicio       domain.Timestamp `json:"data_inicio"`
	DataFim          domain.Timestamp `json:"data_fim"`
	Ativa            bool             `json:"ativa"`
	ThresholdVisitas int              `json:"threshold_visitas" validate:"gte=0"`
	FatorPontuacao   float64          `json:"fator_pontuacao" validate:"gt=0"`
}

// ProdutoInput is the payload for creating a product.
type ProdutoInput struct {
	SKU       string `json:"sku" validate:"required"`
	Nome      string `json:"nome" validate:"required"`
	Descricao string `json:"descricao,omitempty"`
	URLImagem string `json:"url_imagem,omitempty" validate:"omitempty,url"`
}

// BrindeInput is the payload for creating or editing a reward.
type BrindeInput struct {
	ProdutoID            int64       `json:"produto_id" validate:"required,gt=0"`
	CampanhaID           int64       `json:"campanha_id" validate:"required,gt=0"`
	Nivel                domain.Tier `json:"nivel" validate:"required,oneof=Bronze Prata Ouro"`
	QuantidadeDisponivel int         `json:"quantidade_disponivel" validate:"gte=0"`
}

// ListCampanhas returns one page of campaigns.
func (c *Client) ListCampanhas(ctx context.Context, q Query) (*domain.CampanhaPage, error) {
	var page domain.CampanhaPage
	if err := c.get(ctx, withQuery("/campanhas", q), &page); err != nil {
		return nil, fmt.Errorf("client.ListCampanhas: %w", err)
	}
	return &page, nil
}

// GetCampanha returns a campaign by id.
func (c *Client) GetCampanha(ctx context.Context, id int64) (*domain.Campanha, error) {
	var cp domain.Campanha
	if err := c.get(ctx, idPath("/campanhas", id), &cp); err != nil {
		return nil, fmt.Errorf("client.GetCampanha: %w", err)
	}
	return &cp, nil
}

// CreateCampanha creates a campaign.
func (c *Client) CreateCampanha(ctx context.Context, in CampanhaInput) (*domain.Campanha, error) {
	if err := validatePayload(in); err != nil {
		return nil, fmt.Errorf("client.CreateCampanha: %w", err)
	}
	var cp domain.Campanha
	if err := c.post(ctx, "/campanhas", in, &cp); err != nil {
		return nil, fmt.Errorf("client.CreateCampanha: %w", err)
	}
	return &cp, nil
}

// UpdateCampanha edits a campaign.
func (c *Client) UpdateCampanha(ctx context.Context, id int64, in CampanhaInput) (*domain.Campanha, error) {
	if err := validatePayload(in); err != nil {
		return nil, fmt.Errorf("client.UpdateCampanha: %w", err)
	}
	var cp domain.Campanha
	if err := c.put(ctx, idPath("/campanhas", id), in, &cp); err != nil {
		return nil, fmt.Errorf("client.UpdateCampanha: %w", err)
	}
	return &cp, nil
}

// DeleteCampanha removes a campaign.
func (c *Client) DeleteCampanha(ctx context.Context, id int64) error {
	if err := c.delete(ctx, idPath("/campanhas", id)); err != nil {
		return fmt.Errorf("client.DeleteCampanha: %w", err)
	}
	return nil
}

// ListProdutos returns one page of products.
func (c *Client) ListProdutos(ctx context.Context, q Query) (*domain.ProdutoPage, error) {
	var page domain.ProdutoPage
	if err := c.get(ctx, withQuery("/produtos", q), &page); err != nil {
		return nil, fmt.Errorf("client.ListProdutos: %w", err)
	}
	return &page, nil
}

// CreateProduto creates a product.
func (c *Client) CreateProduto(ctx context.Context, in ProdutoInput) (*domain.Produto, error) {
	if err := validatePayload(in); err != nil {
		return nil, fmt.Errorf("client.CreateProduto: %w", err)
	}
	var p domain.Produto
	if err := c.post(ctx, "/produtos", in, &p); err != nil {
		return nil, fmt.Errorf("client.CreateProduto: %w", err)
	}
	return &p, nil
}

// ListBrindes returns one page of rewards.
func (c *Client) ListBrindes(ctx context.Context, q Query) (*domain.BrindePage, error) {
	var page domain.BrindePage
	if err := c.get(ctx, withQuery("/brindes", q), &page); err != nil {
		return nil, fmt.Errorf("client.ListBrindes: %w", err)
	}
	return &page, nil
}

// CreateBrinde creates a reward.
func (c *Client) CreateBrinde(ctx context.Context, in BrindeInput) (*domain.Brinde, error) {
	if err := validatePayload(in); err != nil {
		return nil, fmt.Errorf("client.CreateBrinde: %w", err)
	}
	var b domain.Brinde
	if err := c.post(ctx, "/brindes", in, &b); err != nil {
		return nil, fmt.Errorf("client.CreateBrinde: %w", err)
	}
	return &b, nil
}

// UpdateBrinde edits a reward.
func (c *Client) UpdateBrinde(ctx context.Context, id int64, in BrindeInput) (*domain.Brinde, error) {
	if err := validatePayload(in); err != nil {
		return nil, fmt.Errorf("client.UpdateBrinde: %w", err)
	}
	var b domain.Brinde
	if err := c.put(ctx, idPath("/brindes", id), in, &b); err != nil {
		return nil, fmt.Errorf("client.UpdateBrinde: %w", err)
	}
	return &b, nil
}

// DeleteBrinde removes a reward.
func (c *Client) DeleteBrinde(ctx context.Context, id int64) error {
	if err := c.delete(ctx, idPath("/brindes", id)); err != nil {
		return fmt.Errorf("client.DeleteBrinde: %w", err)
	}
	return nil
}

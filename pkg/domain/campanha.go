package domain

// Campanha is a points campaign run by a store.
type Campanha struct {
	ID               int64     `json:"id"`
	Nome             string    `json:"nome"`
	Loja             string    `json:"loja"`
	DataInicio       Timestamp `json:"data_inicio"`
	DataFim          Timestamp `json:"data_fim"`
	Ativa            bool      `json:"ativa"`
	ThresholdVisitas int       `json:"threshold_visitas"`
	FatorPontuacao   float64   `json:"fator_pontuacao"`
}

// CampanhaPage is the paginated /campanhas listing.
type CampanhaPage struct {
	Campanhas   []Campanha `json:"campanhas"`
	Total       int        `json:"total,omitempty"`
	Pages       int        `json:"pages,omitempty"`
	CurrentPage int        `json:"current_page,omitempty"`
}

// Produto is a catalogue item that can be offered as a reward.
type Produto struct {
	ID        int64  `json:"id"`
	SKU       string `json:"sku"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao,omitempty"`
	URLImagem string `json:"url_imagem,omitempty"`
}

// ProdutoPage is the paginated /produtos listing.
type ProdutoPage struct {
	Produtos    []Produto `json:"produtos"`
	Total       int       `json:"total,omitempty"`
	Pages       int       `json:"pages,omitempty"`
	CurrentPage int       `json:"current_page,omitempty"`
}

// Brinde is a reward offered to one tier within a campaign.
type Brinde struct {
	ID                   int64  `json:"id"`
	ProdutoID            int64  `json:"produto_id"`
	ProdutoNome          string `json:"produto_nome,omitempty"`
	CampanhaID           int64  `json:"campanha_id"`
	CampanhaNome         string `json:"campanha_nome,omitempty"`
	Nivel                Tier   `json:"nivel"`
	QuantidadeDisponivel int    `json:"quantidade_disponivel"`
}

// BrindePage is the paginated /brindes listing.
type BrindePage struct {
	Brindes     []Brinde `json:"brindes"`
	Total       int      `json:"total,omitempty"`
	Pages       int      `json:"pages,omitempty"`
	CurrentPage int      `json:"current_page,omitempty"`
}

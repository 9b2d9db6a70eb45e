package domain

// Cliente is a loyalty-program customer.
type Cliente struct {
	ID           int64     `json:"id"`
	CPF          string    `json:"cpf"`
	Nome         string    `json:"nome"`
	Telefone     string    `json:"telefone"`
	Email        string    `json:"email,omitempty"`
	SemEmail     bool      `json:"sem_email"`
	DataCadastro Timestamp `json:"data_cadastro"`
	TotalVisitas int       `json:"total_visitas"`
	PontosTotais int       `json:"pontos_totais"`
	NivelAtual   Tier      `json:"nivel_atual,omitempty"`
}

// Tier derives the customer's tier from accumulated points. The backend's
// nivel_atual is not trusted for display.
func (c Cliente) Tier() Tier {
	return TierFor(c.PontosTotais)
}

// ClientePage is the paginated /clientes listing.
type ClientePage struct {
	Clientes    []Cliente `json:"clientes"`
	Total       int       `json:"total,omitempty"`
	Pages       int       `json:"pages,omitempty"`
	CurrentPage int       `json:"current_page,omitempty"`
}

// Pontos is a customer's point balance from /pontos/cliente/{id}.
type Pontos struct {
	ID               int64     `json:"id,omitempty"`
	ClienteID        int64     `json:"cliente_id"`
	PontosAcumulados int       `json:"pontos_acumulados"`
	NivelAtual       Tier      `json:"nivel_atual"`
	DataAtualizacao  Timestamp `json:"data_atualizacao"`
}

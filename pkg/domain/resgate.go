package domain

// ResgateStatus is the lifecycle state of a redemption.
type ResgateStatus string

const (
	ResgatePendente  ResgateStatus = "Pendente"
	ResgateEntregue  ResgateStatus = "Entregue"
	ResgateCancelado ResgateStatus = "Cancelado"
)

// Resgate is a customer's redemption of points for a reward.
type Resgate struct {
	ID            int64         `json:"id"`
	ClienteID     int64         `json:"cliente_id"`
	ClienteNome   string        `json:"cliente_nome,omitempty"`
	BrindeID      int64         `json:"brinde_id"`
	ProdutoNome   string        `json:"produto_nome,omitempty"`
	DataResgate   Timestamp     `json:"data_resgate"`
	Status        ResgateStatus `json:"status"`
	VoucherCodigo string        `json:"voucher_codigo"`
	DataEntrega   Timestamp     `json:"data_entrega"`
}

// Pending reports whether the redemption can still be delivered or cancelled.
func (r Resgate) Pending() bool {
	return r.Status == ResgatePendente
}

// ResgatePage is the paginated /resgates listing.
type ResgatePage struct {
	Resgates    []Resgate `json:"resgates"`
	Total       int       `json:"total,omitempty"`
	Pages       int       `json:"pages,omitempty"`
	CurrentPage int       `json:"current_page,omitempty"`
}

// Elegibilidade is the answer to a redemption eligibility check.
type Elegibilidade struct {
	Elegivel      bool   `json:"elegivel"`
	Motivo        string `json:"motivo,omitempty"`
	PontosCliente int    `json:"pontos_cliente,omitempty"`
	NivelCliente  Tier   `json:"nivel_cliente,omitempty"`
}

package domain

// EstatisticasGerais are all-time totals on the dashboard.
type EstatisticasGerais struct {
	TotalClientes   int `json:"total_clientes"`
	TotalVisitas    int `json:"total_visitas"`
	TotalResgates   int `json:"total_resgates"`
	CampanhasAtivas int `json:"campanhas_ativas"`
}

// EstatisticasMes are current-month totals on the dashboard.
type EstatisticasMes struct {
	VisitasMes       int     `json:"visitas_mes"`
	NovosClientesMes int     `json:"novos_clientes_mes"`
	ResgatesMes      int     `json:"resgates_mes"`
	ValorTotalMes    float64 `json:"valor_total_mes"`
}

// Resumo is the /dashboard/resumo aggregate.
type Resumo struct {
	EstatisticasGerais EstatisticasGerais `json:"estatisticas_gerais"`
	EstatisticasMes    EstatisticasMes    `json:"estatisticas_mes"`
}

// ClienteRef is the abbreviated customer embedded in rankings.
type ClienteRef struct {
	ID   int64  `json:"id,omitempty"`
	Nome string `json:"nome"`
	CPF  string `json:"cpf"`
}

// RankedCliente is one row of a top-customers ranking.
type RankedCliente struct {
	Cliente      ClienteRef `json:"cliente"`
	Pontos       int        `json:"pontos,omitempty"`
	Nivel        Tier       `json:"nivel,omitempty"`
	TotalVisitas int        `json:"total_visitas,omitempty"`
}

// TopClientes is the /dashboard/top-clientes aggregate.
type TopClientes struct {
	TopPontos  []RankedCliente `json:"top_pontos"`
	TopVisitas []RankedCliente `json:"top_visitas"`
}

// NivelCount is one bucket of /dashboard/distribuicao-niveis.
type NivelCount struct {
	Nivel      Tier `json:"nivel"`
	Quantidade int  `json:"quantidade"`
}

// StatusCount is one bucket of /dashboard/resgates-status.
type StatusCount struct {
	Status     ResgateStatus `json:"status"`
	Quantidade int           `json:"quantidade"`
}

// PeriodoVisitas is one day of /dashboard/visitas-periodo.
type PeriodoVisitas struct {
	Data       string  `json:"data"`
	Quantidade int     `json:"quantidade"`
	ValorTotal float64 `json:"valor_total"`
}

// EmptyResumo is the zeroed placeholder shown when the aggregate endpoints
// are unreachable.
func EmptyResumo() Resumo {
	return Resumo{}
}

// EmptyTopClientes is the empty-rankings placeholder for the same case.
// Slices are non-nil so they encode as [] rather than null.
func EmptyTopClientes() TopClientes {
	return TopClientes{
		TopPontos:  []RankedCliente{},
		TopVisitas: []RankedCliente{},
	}
}

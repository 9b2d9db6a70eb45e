package domain

import "strings"

// Visita is one purchase visit at a store.
type Visita struct {
	ID            int64     `json:"id"`
	ClienteID     int64     `json:"cliente_id"`
	ClienteNome   string    `json:"cliente_nome,omitempty"`
	DataVisita    Timestamp `json:"data_visita"`
	ValorCompra   float64   `json:"valor_compra"`
	Loja          string    `json:"loja"`
	PontosGerados int       `json:"pontos_gerados"`
}

// VisitaPage is the paginated /visitas listing.
type VisitaPage struct {
	Visitas     []Visita `json:"visitas"`
	Total       int      `json:"total,omitempty"`
	Pages       int      `json:"pages,omitempty"`
	CurrentPage int      `json:"current_page,omitempty"`
}

// Lojas are the store labels staff pick from when logging a visit.
var Lojas = []string{
	"Mega Loja Jabaquara",
	"Indianópolis",
	"Mascote",
	"Tatuapé",
	"Praia Grande",
	"Osasco",
}

// LojaByName resolves a store label typed by staff. Matching ignores case and
// a unique prefix is enough, so "tatu" finds "Tatuapé".
func LojaByName(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	for _, l := range Lojas {
		if strings.ToLower(l) == s {
			return l, true
		}
	}
	match := ""
	for _, l := range Lojas {
		if strings.HasPrefix(strings.ToLower(l), s) {
			if match != "" {
				return "", false
			}
			match = l
		}
	}
	return match, match != ""
}

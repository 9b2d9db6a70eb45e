package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/megaloja/fidelidade/pkg/client"
	"github.com/megaloja/fidelidade/pkg/domain"
)

// -- messages --

type painelLoadedMsg struct {
	resumo domain.Resumo
	top    domain.TopClientes
	niveis []domain.NivelCount
	err    error
}

// -- model --

type painelModel struct {
	client  *client.Client
	resumo  domain.Resumo
	top     domain.TopClientes
	niveis  []domain.NivelCount
	loaded  bool
	loading bool
	// degraded is set when any aggregate failed and zeroes are shown instead.
	degraded string
	width    int
	height   int
}

func newPainelModel(c *client.Client) painelModel {
	return painelModel{
		client: c,
		resumo: domain.EmptyResumo(),
		top:    domain.EmptyTopClientes(),
	}
}

func (m painelModel) Init() tea.Cmd {
	if m.client == nil {
		return nil
	}
	return loadPainel(m.client)
}

// loadPainel fetches the dashboard aggregates concurrently. If the summary
// or the ranking fails, both fall back to zeroed placeholders. The tier
// distribution is optional and a failure only hides its section.
func loadPainel(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		var (
			resumo *domain.Resumo
			top    *domain.TopClientes
			niveis []domain.NivelCount
		)
		ctx := context.Background()

		// A plain group: one failed aggregate must not cancel its siblings.
		var g errgroup.Group
		g.Go(func() error {
			var err error
			resumo, err = c.DashboardResumo(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			top, err = c.TopClientes(ctx)
			return err
		})
		g.Go(func() error {
			n, err := c.DistribuicaoNiveis(ctx)
			if err == nil {
				niveis = n
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return painelLoadedMsg{
				resumo: domain.EmptyResumo(),
				top:    domain.EmptyTopClientes(),
				niveis: niveis,
				err:    err,
			}
		}
		return painelLoadedMsg{resumo: *resumo, top: *top, niveis: niveis}
	}
}

func (m painelModel) Update(msg tea.Msg) (painelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case painelLoadedMsg:
		m.loading = false
		m.loaded = true
		m.resumo = msg.resumo
		m.top = msg.top
		m.niveis = msg.niveis
		m.degraded = ""
		if msg.err != nil {
			m.degraded = errText(msg.err)
		}

	case tea.KeyMsg:
		if msg.String() == "r" && m.client != nil {
			m.loading = true
			return m, loadPainel(m.client)
		}
	}
	return m, nil
}

func (m painelModel) View() string {
	var b strings.Builder

	if !m.loaded {
		b.WriteString(" " + dimStyle.Render("carregando...") + "\n")
		return b.String()
	}
	if m.degraded != "" {
		b.WriteString(" " + errStyle.Render("dados indisponíveis: "+m.degraded) + "\n")
	}

	g := m.resumo.EstatisticasGerais
	mes := m.resumo.EstatisticasMes

	b.WriteString("\n " + sectionHeaderStyle.Render("Geral") + "\n")
	b.WriteString(statLine("clientes", domain.FormatCount(g.TotalClientes)))
	b.WriteString(statLine("visitas", domain.FormatCount(g.TotalVisitas)))
	b.WriteString(statLine("resgates", domain.FormatCount(g.TotalResgates)))
	b.WriteString(statLine("campanhas ativas", domain.FormatCount(g.CampanhasAtivas)))

	b.WriteString("\n " + sectionHeaderStyle.Render("Este mês") + "\n")
	b.WriteString(statLine("visitas", domain.FormatCount(mes.VisitasMes)))
	b.WriteString(statLine("novos clientes", domain.FormatCount(mes.NovosClientesMes)))
	b.WriteString(statLine("resgates", domain.FormatCount(mes.ResgatesMes)))
	b.WriteString(statLine("faturamento", domain.FormatCurrency(mes.ValorTotalMes)))

	if len(m.niveis) > 0 {
		b.WriteString("\n " + sectionHeaderStyle.Render("Clientes por nível") + "\n")
		for _, n := range m.niveis {
			b.WriteString("   " + TierBadge(n.Nivel) + " " + statValueStyle.Render(domain.FormatCount(n.Quantidade)) + "\n")
		}
	}

	b.WriteString("\n " + sectionHeaderStyle.Render("Top clientes por pontos") + "\n")
	if len(m.top.TopPontos) == 0 {
		b.WriteString("   " + dimStyle.Render("nenhum cliente ainda") + "\n")
	}
	for i, r := range m.top.TopPontos {
		tier := domain.TierFor(r.Pontos)
		fmt.Fprintf(&b, "   %s %s  %s  %s\n",
			metaStyle.Render(fmt.Sprintf("%2d.", i+1)),
			normalStyle.Render(padRight(r.Cliente.Nome, 24)),
			TierBadge(tier),
			statValueStyle.Render(domain.FormatCount(r.Pontos)+" pts"))
	}

	if len(m.top.TopVisitas) > 0 {
		b.WriteString("\n " + sectionHeaderStyle.Render("Top clientes por visitas") + "\n")
		for i, r := range m.top.TopVisitas {
			fmt.Fprintf(&b, "   %s %s  %s\n",
				metaStyle.Render(fmt.Sprintf("%2d.", i+1)),
				normalStyle.Render(padRight(r.Cliente.Nome, 24)),
				statValueStyle.Render(domain.FormatCount(r.TotalVisitas)+" visitas"))
		}
	}

	if m.loading {
		b.WriteString("\n " + dimStyle.Render("atualizando...") + "\n")
	}
	return b.String()
}

func statLine(label, value string) string {
	return "   " + dimStyle.Render(padRight(label, 18)) + statValueStyle.Render(value) + "\n"
}

func (m painelModel) helpKeys() string {
	return helpBar("1-4", "abas", "r", "recarregar", "L", "sair", "h", "ajuda", "q", "fechar")
}

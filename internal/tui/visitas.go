package tui

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/megaloja/fidelidade/pkg/client"
	"github.com/megaloja/fidelidade/pkg/domain"
)

// -- messages --

type visitasLoadedMsg struct {
	visitas []domain.Visita
	err     error
}

type visitaSavedMsg struct {
	visita  *domain.Visita
	cliente string
	err     error
}

// -- model --

const (
	visitaCPF = iota
	visitaValor
	visitaLoja
)

type visitasModel struct {
	client    *client.Client
	visitas   []domain.Visita
	cursor    int
	role      domain.Role
	searching bool
	search    string
	loading   bool
	err       string
	statusMsg string
	editing   bool
	form      form
	width     int
	height    int
}

func newVisitasModel(c *client.Client) visitasModel {
	return visitasModel{client: c}
}

func (m visitasModel) Init() tea.Cmd {
	if m.client == nil {
		return nil
	}
	return m.load()
}

func (m visitasModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		page, err := c.ListVisitas(context.Background(), client.Query{"per_page": pageSize})
		if err != nil {
			return visitasLoadedMsg{err: err}
		}
		return visitasLoadedMsg{visitas: page.Visitas}
	}
}

func visitaForm() form {
	return newForm("Registrar visita",
		formField{label: "cpf", placeholder: "CPF do cliente"},
		formField{label: "valor", placeholder: "0,00"},
		formField{label: "loja", options: domain.Lojas},
	)
}

// register looks the customer up by CPF and logs the visit against them.
func (m visitasModel) register(cpf string, valor float64, loja string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx := context.Background()
		cl, err := c.ClienteByCPF(ctx, cpf)
		if client.IsStatus(err, http.StatusNotFound) {
			return visitaSavedMsg{err: errClienteNaoEncontrado}
		}
		if err != nil {
			return visitaSavedMsg{err: err}
		}
		v, err := c.CreateVisita(ctx, client.VisitaInput{ClienteID: cl.ID, ValorCompra: valor, Loja: loja})
		if err != nil {
			return visitaSavedMsg{err: err}
		}
		return visitaSavedMsg{visita: v, cliente: cl.Nome}
	}
}

func (m visitasModel) submit() (visitasModel, tea.Cmd) {
	cpf := domain.StripCPF(m.form.value(visitaCPF))
	if !domain.ValidCPFLength(cpf) {
		m.form.err = "CPF deve ter 11 dígitos"
		return m, nil
	}
	valor, err := domain.ParseCurrency(m.form.value(visitaValor))
	if err != nil {
		m.form.err = "valor da compra inválido"
		return m, nil
	}
	if m.client == nil {
		return m, nil
	}
	m.form.busy = true
	m.form.err = ""
	return m, m.register(cpf, valor, m.form.value(visitaLoja))
}

// visible filters by customer name or store, case-insensitively.
func (m visitasModel) visible() []domain.Visita {
	term := strings.ToLower(strings.TrimSpace(m.search))
	if term == "" {
		return m.visitas
	}
	out := make([]domain.Visita, 0, len(m.visitas))
	for _, v := range m.visitas {
		if strings.Contains(strings.ToLower(v.ClienteNome), term) ||
			strings.Contains(strings.ToLower(v.Loja), term) {
			out = append(out, v)
		}
	}
	return out
}

func (m visitasModel) Update(msg tea.Msg) (visitasModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case visitasLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = errText(msg.err)
			return m, nil
		}
		m.err = ""
		m.visitas = msg.visitas
		if m.cursor >= len(m.visible()) {
			m.cursor = 0
		}

	case visitaSavedMsg:
		m.form.busy = false
		if msg.err != nil {
			m.form.err = errText(msg.err)
			return m, nil
		}
		m.editing = false
		m.statusMsg = fmt.Sprintf("visita registrada: +%s pontos para %s",
			domain.FormatCount(msg.visita.PontosGerados), msg.cliente)
		if m.client != nil {
			m.loading = true
			return m, m.load()
		}

	case tea.KeyMsg:
		if m.editing {
			var action formAction
			m.form, action = m.form.update(msg)
			switch action {
			case formCancel:
				m.editing = false
			case formSubmit:
				return m.submit()
			}
			return m, nil
		}
		if m.searching {
			switch msg.String() {
			case "esc":
				m.searching = false
				m.search = ""
			case "enter":
				m.searching = false
			default:
				m.search = editRune(m.search, msg.String())
			}
			m.cursor = 0
			return m, nil
		}
		m.statusMsg = ""
		switch msg.String() {
		case "n":
			if !m.role.CanWrite() {
				m.statusMsg = "seu perfil não pode registrar visitas"
				return m, nil
			}
			m.editing = true
			m.form = visitaForm()
		case "j", "down":
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "/":
			m.searching = true
		case "esc":
			m.search = ""
			m.cursor = 0
		case "r":
			if m.client != nil {
				m.loading = true
				return m, m.load()
			}
		}
	}
	return m, nil
}

func (m visitasModel) View() string {
	if m.editing {
		return m.form.View()
	}
	var b strings.Builder

	if m.searching || m.search != "" {
		line := searchStyle.Render("/") + " " + normalStyle.Render(m.search)
		if m.searching {
			line += accentStyle.Render("█")
		}
		b.WriteString(" " + line + "\n")
	}

	if m.loading && len(m.visitas) == 0 {
		b.WriteString(" " + dimStyle.Render("carregando...") + "\n")
		return b.String()
	}
	if m.err != "" {
		b.WriteString(" " + errStyle.Render("erro: "+m.err) + "\n")
		return b.String()
	}

	list := m.visible()
	if len(list) == 0 {
		b.WriteString("\n " + dimStyle.Render("nenhuma visita registrada") + "\n")
		if m.statusMsg != "" {
			b.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
		}
		return b.String()
	}

	header := fmt.Sprintf("   %s %s %s %s %s",
		padRight("data", 19), padRight("cliente", 24), padRight("valor", 14), padRight("loja", 16), "pontos")
	b.WriteString(sectionHeaderStyle.Render(header) + "\n")

	var total float64
	for i, v := range list {
		cursor := " "
		nameStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			nameStyle = selectedStyle
		}
		total += v.ValorCompra
		fmt.Fprintf(&b, " %s %s %s %s %s %s\n",
			cursor,
			dimStyle.Render(padRight(domain.FormatDateTime(v.DataVisita.Time), 19)),
			nameStyle.Render(padRight(v.ClienteNome, 24)),
			statValueStyle.Render(padRight(domain.FormatCurrency(v.ValorCompra), 14)),
			dimStyle.Render(padRight(v.Loja, 16)),
			okStyle.Render("+"+domain.FormatCount(v.PontosGerados)))
	}
	fmt.Fprintf(&b, "\n %s %s\n", dimStyle.Render("total:"), statValueStyle.Render(domain.FormatCurrency(total)))
	if m.statusMsg != "" {
		b.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m visitasModel) helpKeys() string {
	switch {
	case m.editing:
		return m.form.helpKeys()
	case m.searching:
		return helpBar("enter", "aplicar", "esc", "limpar")
	case m.role.CanWrite():
		return helpBar("1-4", "abas", "j/k", "nav", "/", "buscar", "n", "nova visita", "r", "recarregar", "q", "fechar")
	}
	return helpBar("1-4", "abas", "j/k", "nav", "/", "buscar", "r", "recarregar", "h", "ajuda", "q", "fechar")
}

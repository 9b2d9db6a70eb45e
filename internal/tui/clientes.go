package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/megaloja/fidelidade/pkg/client"
	"github.com/megaloja/fidelidade/pkg/domain"
)

// -- messages --

type clientesLoadedMsg struct {
	clientes []domain.Cliente
	total    int
	err      error
}

type copyResultMsg struct {
	what string
	err  error
}

type clienteSavedMsg struct {
	cliente *domain.Cliente
	updated bool
	err     error
}

type clienteDeletedMsg struct {
	nome string
	err  error
}

// -- model --

const (
	clienteNome = iota
	clienteCPF
	clienteTelefone
	clienteEmail
	clienteSemEmail
)

var simNao = []string{"não", "sim"}

type clientesModel struct {
	client    *client.Client
	clientes  []domain.Cliente
	total     int
	cursor    int
	role      domain.Role
	searching bool
	search    string
	loading   bool
	err       string
	statusMsg string

	// editing is true while form is shown; editID is 0 for a new customer.
	editing bool
	editID  int64
	form    form
	// deleting holds the customer awaiting delete confirmation.
	deleting *domain.Cliente

	width  int
	height int
}

func newClientesModel(c *client.Client) clientesModel {
	return clientesModel{client: c}
}

func (m clientesModel) Init() tea.Cmd {
	if m.client == nil {
		return nil
	}
	return m.load()
}

func (m clientesModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		page, err := c.ListClientes(context.Background(), client.Query{"per_page": pageSize})
		if err != nil {
			return clientesLoadedMsg{err: err}
		}
		return clientesLoadedMsg{clientes: page.Clientes, total: page.Total}
	}
}

// visible returns the customers matching the current search.
func (m clientesModel) visible() []domain.Cliente {
	if strings.TrimSpace(m.search) == "" {
		return m.clientes
	}
	out := make([]domain.Cliente, 0, len(m.clientes))
	for _, c := range m.clientes {
		if matchesCliente(c, m.search) {
			out = append(out, c)
		}
	}
	return out
}

func (m clientesModel) Update(msg tea.Msg) (clientesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case clientesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = errText(msg.err)
			return m, nil
		}
		m.err = ""
		m.clientes = msg.clientes
		m.total = msg.total
		if m.cursor >= len(m.visible()) {
			m.cursor = 0
		}

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("falha ao copiar: %v", msg.err)
		} else {
			m.statusMsg = msg.what + " copiado!"
		}

	case clienteSavedMsg:
		m.form.busy = false
		if msg.err != nil {
			m.form.err = errText(msg.err)
			return m, nil
		}
		m.editing = false
		if msg.updated {
			m.statusMsg = "cliente atualizado!"
		} else {
			m.statusMsg = "cliente " + msg.cliente.Nome + " cadastrado!"
		}
		return m.reload()

	case clienteDeletedMsg:
		if msg.err != nil {
			m.statusMsg = "exclusão falhou: " + errText(msg.err)
			return m, nil
		}
		m.statusMsg = "cliente " + msg.nome + " excluído!"
		return m.reload()

	case tea.KeyMsg:
		switch {
		case m.editing:
			return m.handleFormKey(msg)
		case m.deleting != nil:
			return m.handleConfirmKey(msg)
		case m.searching:
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m clientesModel) reload() (clientesModel, tea.Cmd) {
	if m.client == nil {
		return m, nil
	}
	m.loading = true
	return m, m.load()
}

// clienteForm builds the registration form, prefilled when c is not nil.
func clienteForm(c *domain.Cliente) form {
	f := newForm("Novo cliente",
		formField{label: "nome", placeholder: "nome completo"},
		formField{label: "cpf", placeholder: "000.000.000-00"},
		formField{label: "telefone", placeholder: "(11) 99999-9999"},
		formField{label: "e-mail", placeholder: "cliente@email.com"},
		formField{label: "sem e-mail", options: simNao},
	)
	if c != nil {
		f.title = "Editar cliente"
		f.fields[clienteNome].value = c.Nome
		f.fields[clienteCPF].value = domain.FormatCPF(c.CPF)
		f.fields[clienteTelefone].value = c.Telefone
		f.fields[clienteEmail].value = c.Email
		if c.SemEmail {
			f.fields[clienteSemEmail].value = "sim"
		}
	}
	return f
}

func (m clientesModel) handleFormKey(msg tea.KeyMsg) (clientesModel, tea.Cmd) {
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

func (m clientesModel) submit() (clientesModel, tea.Cmd) {
	f := m.form
	in := client.ClienteInput{
		Nome:     f.value(clienteNome),
		CPF:      domain.StripCPF(f.value(clienteCPF)),
		Telefone: f.value(clienteTelefone),
		Email:    f.value(clienteEmail),
		SemEmail: f.value(clienteSemEmail) == "sim",
	}
	switch {
	case in.Nome == "" || in.Telefone == "":
		m.form.err = "informe nome e telefone"
		return m, nil
	case !domain.ValidCPFLength(in.CPF):
		m.form.err = "CPF deve ter 11 dígitos"
		return m, nil
	case in.Email == "" && !in.SemEmail:
		m.form.err = "informe o e-mail ou marque sem e-mail"
		return m, nil
	}
	if m.client == nil {
		return m, nil
	}
	m.form.busy = true
	m.form.err = ""
	c, id := m.client, m.editID
	return m, func() tea.Msg {
		ctx := context.Background()
		if id == 0 {
			out, err := c.CreateCliente(ctx, in)
			return clienteSavedMsg{cliente: out, err: err}
		}
		out, err := c.UpdateCliente(ctx, id, in)
		return clienteSavedMsg{cliente: out, updated: true, err: err}
	}
}

func (m clientesModel) handleConfirmKey(msg tea.KeyMsg) (clientesModel, tea.Cmd) {
	target := *m.deleting
	m.deleting = nil
	if k := msg.String(); k != "s" && k != "y" {
		m.statusMsg = "exclusão cancelada"
		return m, nil
	}
	if m.client == nil {
		return m, nil
	}
	c := m.client
	return m, func() tea.Msg {
		return clienteDeletedMsg{nome: target.Nome, err: c.DeleteCliente(context.Background(), target.ID)}
	}
}

func (m clientesModel) handleSearchKey(msg tea.KeyMsg) (clientesModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search = ""
		m.cursor = 0
	case "enter":
		m.searching = false
	default:
		m.search = editRune(m.search, msg.String())
		m.cursor = 0
	}
	return m, nil
}

func (m clientesModel) handleKey(msg tea.KeyMsg) (clientesModel, tea.Cmd) {
	m.statusMsg = ""
	list := m.visible()
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(list)-1 {
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
	case "n", "e", "d":
		if !m.role.CanWrite() {
			m.statusMsg = "seu perfil não pode alterar clientes"
			return m, nil
		}
		if msg.String() == "n" {
			m.editing, m.editID, m.form = true, 0, clienteForm(nil)
			return m, nil
		}
		if m.cursor >= len(list) {
			return m, nil
		}
		sel := list[m.cursor]
		if msg.String() == "e" {
			m.editing, m.editID, m.form = true, sel.ID, clienteForm(&sel)
			return m, nil
		}
		m.deleting = &sel
	case "c":
		if m.cursor < len(list) {
			cpf := domain.FormatCPF(list[m.cursor].CPF)
			return m, func() tea.Msg {
				return copyResultMsg{what: "CPF", err: clipboard.WriteAll(cpf)}
			}
		}
	case "r":
		if m.client != nil {
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m clientesModel) View() string {
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

	if m.loading && len(m.clientes) == 0 {
		b.WriteString(" " + dimStyle.Render("carregando...") + "\n")
		return b.String()
	}
	if m.err != "" {
		b.WriteString(" " + errStyle.Render("erro: "+m.err) + "\n")
		return b.String()
	}

	list := m.visible()
	if len(list) == 0 {
		if m.search != "" {
			b.WriteString("\n " + dimStyle.Render("nenhum cliente encontrado para \""+m.search+"\"") + "\n")
		} else {
			b.WriteString("\n " + dimStyle.Render("nenhum cliente cadastrado") + "\n")
		}
		if m.statusMsg != "" {
			b.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
		}
		return b.String()
	}

	header := fmt.Sprintf("   %s %s %s %s %s",
		padRight("nome", 26), padRight("cpf", 15), padRight("nível", 6), padRight("pontos", 8), "visitas")
	b.WriteString(sectionHeaderStyle.Render(header) + "\n")

	for i, c := range list {
		cursor := " "
		nameStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			nameStyle = selectedStyle
		}
		fmt.Fprintf(&b, " %s %s %s %s %s %s\n",
			cursor,
			nameStyle.Render(padRight(c.Nome, 26)),
			dimStyle.Render(padRight(domain.FormatCPF(c.CPF), 15)),
			TierBadge(c.Tier()),
			statValueStyle.Render(padRight(domain.FormatCount(c.PontosTotais), 8)),
			dimStyle.Render(domain.FormatCount(c.TotalVisitas)))
	}

	if m.cursor < len(list) {
		b.WriteString("\n" + clienteDetail(list[m.cursor]))
	}

	if m.total > len(m.clientes) {
		fmt.Fprintf(&b, "\n %s\n", metaStyle.Render(fmt.Sprintf("mostrando %d de %d", len(m.clientes), m.total)))
	}
	if m.deleting != nil {
		b.WriteString("\n " + errStyle.Render("excluir o cliente "+m.deleting.Nome+"? (s/n)") + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

// clienteDetail renders the selected customer's card.
func clienteDetail(c domain.Cliente) string {
	var b strings.Builder
	tier := c.Tier()
	fmt.Fprintf(&b, " %s  %s (%s)\n", selectedStyle.Render(c.Nome), TierStyle(tier).Render(string(tier)), dimStyle.Render(tier.English()))
	contato := c.Telefone
	if c.Email != "" && !c.SemEmail {
		contato += " · " + c.Email
	}
	if contato != "" {
		b.WriteString(" " + dimStyle.Render(contato) + "\n")
	}
	if missing, ok := domain.PointsToNext(c.PontosTotais); ok {
		b.WriteString(" " + metaStyle.Render(fmt.Sprintf("faltam %s pontos para o próximo nível", domain.FormatCount(missing))) + "\n")
	} else {
		b.WriteString(" " + metaStyle.Render("nível máximo") + "\n")
	}
	if !c.DataCadastro.IsZero() {
		b.WriteString(" " + metaStyle.Render("cliente desde "+domain.FormatDate(c.DataCadastro.Time)) + "\n")
	}
	return b.String()
}

func (m clientesModel) helpKeys() string {
	switch {
	case m.editing:
		return m.form.helpKeys()
	case m.deleting != nil:
		return helpBar("s", "excluir", "n", "cancelar")
	case m.searching:
		return helpBar("enter", "aplicar", "esc", "limpar")
	case m.role.CanWrite():
		return helpBar("j/k", "nav", "/", "buscar", "n", "novo", "e", "editar", "d", "excluir", "c", "copiar CPF", "r", "recarregar", "q", "fechar")
	}
	return helpBar("1-4", "abas", "j/k", "nav", "/", "buscar", "c", "copiar CPF", "r", "recarregar", "h", "ajuda", "q", "fechar")
}

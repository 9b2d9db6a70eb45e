package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/megaloja/fidelidade/pkg/client"
	"github.com/megaloja/fidelidade/pkg/domain"
)

// -- messages --

type resgatesLoadedMsg struct {
	resgates []domain.Resgate
	err      error
}

type resgateActionMsg struct {
	resgate *domain.Resgate
	action  string
	err     error
}

type brindesLoadedMsg struct {
	cliente *domain.Cliente
	brindes []domain.Brinde
	err     error
}

type resgateCriadoMsg struct {
	resgate *domain.Resgate
	err     error
}

// -- model --

// statusOrder is the cycle order for the status filter; "" means all.
var statusOrder = []domain.ResgateStatus{"", domain.ResgatePendente, domain.ResgateEntregue, domain.ResgateCancelado}

// resgatePick is the reward choice step of a new redemption.
type resgatePick struct {
	cliente domain.Cliente
	brindes []domain.Brinde
	cursor  int
	err     string
}

type resgatesModel struct {
	client      *client.Client
	resgates    []domain.Resgate
	cursor      int
	statusCycle int
	role        domain.Role
	loading     bool
	busy        bool
	err         string
	statusMsg   string

	// A new redemption asks for the CPF in form, then picks a reward.
	editing bool
	form    form
	picking *resgatePick

	width  int
	height int
}

func newResgatesModel(c *client.Client) resgatesModel {
	return resgatesModel{client: c}
}

func (m resgatesModel) status() domain.ResgateStatus {
	return statusOrder[m.statusCycle]
}

func (m resgatesModel) Init() tea.Cmd {
	if m.client == nil {
		return nil
	}
	return m.load()
}

func (m resgatesModel) load() tea.Cmd {
	c := m.client
	q := client.Query{"per_page": pageSize}
	if s := m.status(); s != "" {
		q["status"] = string(s)
	}
	return func() tea.Msg {
		page, err := c.ListResgates(context.Background(), q)
		if err != nil {
			return resgatesLoadedMsg{err: err}
		}
		return resgatesLoadedMsg{resgates: page.Resgates}
	}
}

func (m resgatesModel) Update(msg tea.Msg) (resgatesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case resgatesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = errText(msg.err)
			return m, nil
		}
		m.err = ""
		m.resgates = msg.resgates
		if m.cursor >= len(m.resgates) {
			m.cursor = 0
		}

	case resgateActionMsg:
		m.busy = false
		if msg.err != nil {
			m.statusMsg = msg.action + " falhou: " + errText(msg.err)
			return m, nil
		}
		for i := range m.resgates {
			if m.resgates[i].ID == msg.resgate.ID {
				m.resgates[i].Status = msg.resgate.Status
				m.resgates[i].DataEntrega = msg.resgate.DataEntrega
			}
		}
		m.statusMsg = "voucher " + msg.resgate.VoucherCodigo + ": " + strings.ToLower(string(msg.resgate.Status))

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("falha ao copiar: %v", msg.err)
		} else {
			m.statusMsg = msg.what + " copiado!"
		}

	case brindesLoadedMsg:
		m.form.busy = false
		if msg.err != nil {
			m.form.err = errText(msg.err)
			return m, nil
		}
		m.editing = false
		if len(msg.brindes) == 0 {
			m.statusMsg = "nenhum brinde disponível para " + msg.cliente.Nome
			return m, nil
		}
		m.picking = &resgatePick{cliente: *msg.cliente, brindes: msg.brindes}

	case resgateCriadoMsg:
		m.busy = false
		if msg.err != nil {
			if m.picking != nil {
				m.picking.err = errText(msg.err)
			}
			return m, nil
		}
		nome := ""
		if m.picking != nil {
			nome = m.picking.cliente.Nome
		}
		m.picking = nil
		m.statusMsg = "voucher " + msg.resgate.VoucherCodigo + " emitido para " + nome
		if m.client != nil {
			m.loading = true
			return m, m.load()
		}

	case tea.KeyMsg:
		switch {
		case m.editing:
			return m.handleFormKey(msg)
		case m.picking != nil:
			return m.handlePickKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m resgatesModel) handleFormKey(msg tea.KeyMsg) (resgatesModel, tea.Cmd) {
	var action formAction
	m.form, action = m.form.update(msg)
	switch action {
	case formCancel:
		m.editing = false
	case formSubmit:
		cpf := domain.StripCPF(m.form.value(0))
		if !domain.ValidCPFLength(cpf) {
			m.form.err = "CPF deve ter 11 dígitos"
			return m, nil
		}
		if m.client == nil {
			return m, nil
		}
		m.form.busy = true
		m.form.err = ""
		return m, loadBrindes(m.client, cpf)
	}
	return m, nil
}

// loadBrindes finds the customer by CPF and the rewards open to them.
func loadBrindes(c *client.Client, cpf string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		cl, err := c.ClienteByCPF(ctx, cpf)
		if client.IsStatus(err, http.StatusNotFound) {
			return brindesLoadedMsg{err: errClienteNaoEncontrado}
		}
		if err != nil {
			return brindesLoadedMsg{err: err}
		}
		brindes, err := c.BrindesDisponiveis(ctx, cl.ID)
		return brindesLoadedMsg{cliente: cl, brindes: brindes, err: err}
	}
}

func (m resgatesModel) handlePickKey(msg tea.KeyMsg) (resgatesModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	p := *m.picking
	switch msg.String() {
	case "esc":
		m.picking = nil
		return m, nil
	case "j", "down":
		if p.cursor < len(p.brindes)-1 {
			p.cursor++
		}
	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
		}
	case "enter":
		if m.client == nil {
			return m, nil
		}
		p.err = ""
		m.picking = &p
		m.busy = true
		return m, redeem(m.client, client.ResgateInput{ClienteID: p.cliente.ID, BrindeID: p.brindes[p.cursor].ID})
	}
	m.picking = &p
	return m, nil
}

// redeem checks eligibility first so the refusal reason reaches the
// operator, then issues the voucher.
func redeem(c *client.Client, in client.ResgateInput) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		e, err := c.VerificarElegibilidade(ctx, in)
		if err != nil {
			return resgateCriadoMsg{err: err}
		}
		if !e.Elegivel {
			motivo := e.Motivo
			if motivo == "" {
				motivo = "cliente não elegível"
			}
			return resgateCriadoMsg{err: errors.New(motivo)}
		}
		r, err := c.CreateResgate(ctx, in)
		return resgateCriadoMsg{resgate: r, err: err}
	}
}

func (m resgatesModel) handleKey(msg tea.KeyMsg) (resgatesModel, tea.Cmd) {
	key := msg.String()
	if key != "e" && key != "x" {
		m.statusMsg = ""
	}
	switch key {
	case "j", "down":
		if m.cursor < len(m.resgates)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "s":
		m.statusCycle = (m.statusCycle + 1) % len(statusOrder)
		m.cursor = 0
		if m.client != nil {
			m.loading = true
			return m, m.load()
		}
	case "c":
		if m.cursor < len(m.resgates) {
			code := m.resgates[m.cursor].VoucherCodigo
			return m, func() tea.Msg {
				return copyResultMsg{what: "voucher", err: clipboard.WriteAll(code)}
			}
		}
	case "e", "x":
		return m.act(key)
	case "n":
		if !m.role.CanWrite() {
			m.statusMsg = "seu perfil não pode alterar resgates"
			return m, nil
		}
		m.editing = true
		m.form = newForm("Novo resgate", formField{label: "cpf", placeholder: "CPF do cliente"})
	case "r":
		if m.client != nil {
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

// act delivers ("e") or cancels ("x") the selected redemption. Read-only
// roles and non-pending redemptions are refused locally.
func (m resgatesModel) act(key string) (resgatesModel, tea.Cmd) {
	if m.cursor >= len(m.resgates) || m.busy {
		return m, nil
	}
	if !m.role.CanWrite() {
		m.statusMsg = "seu perfil não pode alterar resgates"
		return m, nil
	}
	r := m.resgates[m.cursor]
	if !r.Pending() {
		m.statusMsg = "resgate já " + strings.ToLower(string(r.Status))
		return m, nil
	}
	if m.client == nil {
		return m, nil
	}
	m.busy = true
	c := m.client
	if key == "e" {
		return m, func() tea.Msg {
			out, err := c.EntregarResgate(context.Background(), r.ID)
			return resgateActionMsg{resgate: out, action: "entrega", err: err}
		}
	}
	return m, func() tea.Msg {
		out, err := c.CancelarResgate(context.Background(), r.ID)
		return resgateActionMsg{resgate: out, action: "cancelamento", err: err}
	}
}

func (m resgatesModel) View() string {
	if m.editing {
		return m.form.View()
	}
	if m.picking != nil {
		return m.pickView()
	}
	var b strings.Builder

	if s := m.status(); s != "" {
		b.WriteString(" " + dimStyle.Render("status: ") + StatusStyle(s).Render(string(s)) + "\n")
	}

	if m.loading && len(m.resgates) == 0 {
		b.WriteString(" " + dimStyle.Render("carregando...") + "\n")
		return b.String()
	}
	if m.err != "" {
		b.WriteString(" " + errStyle.Render("erro: "+m.err) + "\n")
		return b.String()
	}
	if len(m.resgates) == 0 {
		b.WriteString("\n " + dimStyle.Render("nenhum resgate") + "\n")
		if m.statusMsg != "" {
			b.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
		}
		return b.String()
	}

	header := fmt.Sprintf("   %s %s %s %s %s",
		padRight("voucher", 12), padRight("cliente", 22), padRight("brinde", 22), padRight("data", 10), "status")
	b.WriteString(sectionHeaderStyle.Render(header) + "\n")

	for i, r := range m.resgates {
		cursor := " "
		nameStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			nameStyle = selectedStyle
		}
		fmt.Fprintf(&b, " %s %s %s %s %s %s\n",
			cursor,
			searchStyle.Render(padRight(r.VoucherCodigo, 12)),
			nameStyle.Render(padRight(r.ClienteNome, 22)),
			dimStyle.Render(padRight(r.ProdutoNome, 22)),
			dimStyle.Render(padRight(domain.FormatDate(r.DataResgate.Time), 10)),
			StatusStyle(r.Status).Render(string(r.Status)))
	}

	if m.cursor < len(m.resgates) {
		if r := m.resgates[m.cursor]; !r.DataEntrega.IsZero() {
			b.WriteString("\n " + metaStyle.Render("entregue "+formatTime(r.DataEntrega.Time)+" ("+domain.FormatDateTime(r.DataEntrega.Time)+")") + "\n")
		}
	}
	if m.busy {
		b.WriteString("\n " + dimStyle.Render("enviando...") + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m resgatesModel) pickView() string {
	p := m.picking
	var b strings.Builder
	tier := p.cliente.Tier()
	fmt.Fprintf(&b, "\n %s  %s %s\n\n",
		sectionHeaderStyle.Render("Novo resgate"),
		selectedStyle.Render(p.cliente.Nome),
		TierStyle(tier).Render(fmt.Sprintf("%s · %s pts", tier, domain.FormatCount(p.cliente.PontosTotais))))
	for i, br := range p.brindes {
		cursor := " "
		nameStyle := normalStyle
		if i == p.cursor {
			cursor = accentStyle.Render("▸")
			nameStyle = selectedStyle
		}
		fmt.Fprintf(&b, " %s %s %s %s\n",
			cursor,
			nameStyle.Render(padRight(br.ProdutoNome, 26)),
			dimStyle.Render(padRight(br.CampanhaNome, 22)),
			metaStyle.Render(fmt.Sprintf("%d disponíveis", br.QuantidadeDisponivel)))
	}
	switch {
	case m.busy:
		b.WriteString("\n " + dimStyle.Render("enviando...") + "\n")
	case p.err != "":
		b.WriteString("\n " + errStyle.Render(p.err) + "\n")
	}
	return b.String()
}

func (m resgatesModel) helpKeys() string {
	switch {
	case m.editing:
		return m.form.helpKeys()
	case m.picking != nil:
		return helpBar("j/k", "nav", "enter", "resgatar", "esc", "cancelar")
	case m.role.CanWrite():
		return helpBar("j/k", "nav", "n", "novo", "e", "entregar", "x", "cancelar", "c", "copiar voucher", "s", "status", "r", "recarregar", "q", "fechar")
	}
	return helpBar("1-4", "abas", "j/k", "nav", "c", "copiar voucher", "s", "status", "r", "recarregar", "q", "fechar")
}

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/megaloja/fidelidade/pkg/client"
	"github.com/megaloja/fidelidade/pkg/domain"
)

// -- messages --

type usuariosLoadedMsg struct {
	usuarios []domain.Usuario
	err      error
}

type usuarioSavedMsg struct {
	usuario *domain.Usuario
	err     error
}

type usuarioUpdatedMsg struct {
	usuario *domain.Usuario
	err     error
}

type usuarioDeletedMsg struct {
	login string
	err   error
}

// -- model --

const (
	usuarioLogin = iota
	usuarioNome
	usuarioEmail
	usuarioSenha
	usuarioTipo
)

// usuariosModel is the staff account screen. The app only shows it to
// administrators.
type usuariosModel struct {
	client    *client.Client
	usuarios  []domain.Usuario
	cursor    int
	self      string
	loading   bool
	busy      bool
	err       string
	statusMsg string
	editing   bool
	form      form
	deleting  *domain.Usuario
	width     int
	height    int
}

func newUsuariosModel(c *client.Client) usuariosModel {
	return usuariosModel{client: c}
}

func (m usuariosModel) Init() tea.Cmd {
	if m.client == nil {
		return nil
	}
	return m.load()
}

func (m usuariosModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		us, err := c.ListUsuarios(context.Background())
		return usuariosLoadedMsg{usuarios: us, err: err}
	}
}

func (m usuariosModel) reload() (usuariosModel, tea.Cmd) {
	if m.client == nil {
		return m, nil
	}
	m.loading = true
	return m, m.load()
}

func usuarioForm() form {
	tipos := make([]string, len(domain.Roles))
	for i, r := range domain.Roles {
		tipos[i] = string(r)
	}
	return newForm("Novo usuário",
		formField{label: "login", placeholder: "login de acesso"},
		formField{label: "nome", placeholder: "nome completo"},
		formField{label: "e-mail", placeholder: "opcional"},
		formField{label: "senha", placeholder: "senha inicial", masked: true},
		formField{label: "tipo", options: tipos, value: string(domain.RoleOperador)},
	)
}

func (m usuariosModel) Update(msg tea.Msg) (usuariosModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case usuariosLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = "erro ao carregar usuários: " + errText(msg.err)
			return m, nil
		}
		m.err = ""
		m.usuarios = msg.usuarios
		if m.usuarios == nil {
			m.usuarios = []domain.Usuario{}
		}
		if m.cursor >= len(m.usuarios) {
			m.cursor = 0
		}

	case usuarioSavedMsg:
		m.form.busy = false
		if msg.err != nil {
			m.form.err = errText(msg.err)
			return m, nil
		}
		m.editing = false
		m.statusMsg = "usuário " + msg.usuario.Login + " criado!"
		return m.reload()

	case usuarioUpdatedMsg:
		m.busy = false
		if msg.err != nil {
			m.statusMsg = "alteração falhou: " + errText(msg.err)
			return m, nil
		}
		for i := range m.usuarios {
			if m.usuarios[i].ID == msg.usuario.ID {
				m.usuarios[i] = *msg.usuario
			}
		}
		if msg.usuario.Ativo {
			m.statusMsg = "usuário " + msg.usuario.Login + " ativado"
		} else {
			m.statusMsg = "usuário " + msg.usuario.Login + " desativado"
		}

	case usuarioDeletedMsg:
		if msg.err != nil {
			m.statusMsg = "exclusão falhou: " + errText(msg.err)
			return m, nil
		}
		m.statusMsg = "usuário " + msg.login + " excluído!"
		return m.reload()

	case tea.KeyMsg:
		switch {
		case m.editing:
			return m.handleFormKey(msg)
		case m.deleting != nil:
			return m.handleConfirmKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m usuariosModel) handleKey(msg tea.KeyMsg) (usuariosModel, tea.Cmd) {
	m.statusMsg = ""
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.usuarios)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "n":
		m.editing = true
		m.form = usuarioForm()
	case "a", "d":
		if m.cursor >= len(m.usuarios) || m.busy {
			return m, nil
		}
		u := m.usuarios[m.cursor]
		if u.Login == m.self {
			m.statusMsg = "você não pode alterar a própria conta aqui"
			return m, nil
		}
		if msg.String() == "d" {
			m.deleting = &u
			return m, nil
		}
		return m.toggleAtivo(u)
	case "r":
		return m.reload()
	}
	return m, nil
}

func (m usuariosModel) toggleAtivo(u domain.Usuario) (usuariosModel, tea.Cmd) {
	if m.client == nil {
		return m, nil
	}
	m.busy = true
	c := m.client
	ativo := !u.Ativo
	return m, func() tea.Msg {
		out, err := c.UpdateUsuario(context.Background(), u.ID, client.UsuarioUpdate{Ativo: &ativo})
		return usuarioUpdatedMsg{usuario: out, err: err}
	}
}

func (m usuariosModel) handleFormKey(msg tea.KeyMsg) (usuariosModel, tea.Cmd) {
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

func (m usuariosModel) submit() (usuariosModel, tea.Cmd) {
	f := m.form
	u := client.NovoUsuario{
		Login: f.value(usuarioLogin),
		Nome:  f.value(usuarioNome),
		Email: f.value(usuarioEmail),
		Senha: f.fields[usuarioSenha].value,
		Tipo:  domain.Role(f.value(usuarioTipo)),
	}
	if u.Login == "" || u.Nome == "" || u.Senha == "" {
		m.form.err = "informe login, nome e senha"
		return m, nil
	}
	if m.client == nil {
		return m, nil
	}
	m.form.busy = true
	m.form.err = ""
	c := m.client
	return m, func() tea.Msg {
		out, err := c.CreateUsuario(context.Background(), u)
		return usuarioSavedMsg{usuario: out, err: err}
	}
}

func (m usuariosModel) handleConfirmKey(msg tea.KeyMsg) (usuariosModel, tea.Cmd) {
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
		return usuarioDeletedMsg{login: target.Login, err: c.DeleteUsuario(context.Background(), target.ID)}
	}
}

func (m usuariosModel) View() string {
	if m.editing {
		return m.form.View()
	}
	var b strings.Builder
	if m.loading && len(m.usuarios) == 0 {
		b.WriteString(" " + dimStyle.Render("carregando...") + "\n")
		return b.String()
	}
	if m.err != "" {
		b.WriteString(" " + errStyle.Render(m.err) + "\n")
		return b.String()
	}

	if len(m.usuarios) == 0 {
		b.WriteString("\n " + dimStyle.Render("nenhum usuário") + "\n")
	} else {
		header := fmt.Sprintf("   %s %s %s %s",
			padRight("login", 14), padRight("nome", 24), padRight("tipo", 14), "situação")
		b.WriteString(sectionHeaderStyle.Render(header) + "\n")
	}
	for i, u := range m.usuarios {
		cursor := " "
		nameStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			nameStyle = selectedStyle
		}
		situacao := okStyle.Render("ativo")
		if !u.Ativo {
			situacao = dimStyle.Render("inativo")
		}
		fmt.Fprintf(&b, " %s %s %s %s %s\n",
			cursor,
			searchStyle.Render(padRight(u.Login, 14)),
			nameStyle.Render(padRight(u.Nome, 24)),
			dimStyle.Render(padRight(string(u.Tipo), 14)),
			situacao)
	}

	if m.cursor < len(m.usuarios) {
		if u := m.usuarios[m.cursor]; !u.UltimoLogin.IsZero() {
			b.WriteString("\n " + metaStyle.Render("último acesso "+formatTime(u.UltimoLogin.Time)) + "\n")
		}
	}
	if m.deleting != nil {
		b.WriteString("\n " + errStyle.Render("excluir o usuário "+m.deleting.Login+"? (s/n)") + "\n")
	}
	if m.busy {
		b.WriteString("\n " + dimStyle.Render("enviando...") + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m usuariosModel) helpKeys() string {
	switch {
	case m.editing:
		return m.form.helpKeys()
	case m.deleting != nil:
		return helpBar("s", "excluir", "n", "cancelar")
	}
	return helpBar("j/k", "nav", "n", "novo", "a", "ativar/desativar", "d", "excluir", "r", "recarregar", "q", "fechar")
}

package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/megaloja/fidelidade/pkg/client"
	"github.com/megaloja/fidelidade/pkg/domain"
)

// -- messages --

type loginResultMsg struct {
	usuario *domain.Usuario
	err     error
}

// -- model --

const (
	fieldLogin = iota
	fieldSenha
)

type loginModel struct {
	client     *client.Client
	focus      int
	login      string
	senha      string
	err        string
	notice     string
	submitting bool
	width      int
	height     int
}

func newLoginModel(c *client.Client, login string) loginModel {
	m := loginModel{client: c, login: login}
	if login != "" {
		m.focus = fieldSenha
	}
	return m
}

func (m loginModel) submit() tea.Cmd {
	c := m.client
	login := strings.TrimSpace(m.login)
	senha := m.senha
	return func() tea.Msg {
		u, err := c.Authenticate(context.Background(), login, senha)
		return loginResultMsg{usuario: u, err: err}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = loginErrText(msg.err)
			m.senha = ""
			m.focus = fieldSenha
		} else {
			m.err = ""
		}

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down", "shift+tab", "up":
			m.focus = 1 - m.focus
		case "enter":
			if m.focus == fieldLogin {
				m.focus = fieldSenha
				return m, nil
			}
			if strings.TrimSpace(m.login) == "" || m.senha == "" {
				m.err = "informe login e senha"
				return m, nil
			}
			if m.client == nil {
				return m, nil
			}
			m.submitting = true
			m.err = ""
			m.notice = ""
			return m, m.submit()
		default:
			if m.focus == fieldLogin {
				m.login = editRune(m.login, msg.String())
			} else {
				m.senha = editRune(m.senha, msg.String())
			}
		}
	}
	return m, nil
}

// loginErrText maps a failed sign-in to what the operator should read.
func loginErrText(err error) string {
	if client.IsStatus(err, 401) {
		return "credenciais inválidas"
	}
	return errText(err)
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + sectionHeaderStyle.Render("Entrar") + "\n\n")
	if m.notice != "" {
		b.WriteString(" " + searchStyle.Render(m.notice) + "\n\n")
	}
	b.WriteString(renderField("login", m.login, "seu login", m.focus == fieldLogin, false) + "\n")
	b.WriteString(renderField("senha", m.senha, "sua senha", m.focus == fieldSenha, true) + "\n\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("entrando...") + "\n")
	case m.err != "":
		b.WriteString(" " + errStyle.Render(m.err) + "\n")
	}
	return b.String()
}

func (m loginModel) helpKeys() string {
	return helpBar("tab", "campo", "enter", "entrar", "ctrl+c", "fechar")
}

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/megaloja/fidelidade/internal/browser"
	"github.com/megaloja/fidelidade/pkg/client"
	"github.com/megaloja/fidelidade/pkg/domain"
)

type view int

const (
	viewLogin view = iota
	viewPainel
	viewClientes
	viewVisitas
	viewResgates
	viewUsuarios
)

// Session is the part of the session store the TUI reads.
type Session interface {
	Identity() (domain.Usuario, bool)
	IsAuthenticated(ctx context.Context) bool
	IsAdmin(ctx context.Context) bool
	ExpiresAt() (time.Time, bool)
}

// SessionExpiredMsg tells the app the backend rejected the credential. Send
// it from the session's expiry listener.
type SessionExpiredMsg struct{}

type loggedOutMsg struct {
	err error
}

// App is the root Bubbletea model.
type App struct {
	client     *client.Client
	session    Session
	webURL     string
	view       view
	login      loginModel
	painel     painelModel
	clientes   clientesModel
	visitas    visitasModel
	resgates   resgatesModel
	usuarios   usuariosModel
	helpOpen   bool
	helpCursor int
	me         *domain.Usuario
	// admin unlocks the staff accounts tab.
	admin  bool
	width  int
	height int
}

// NewApp creates a new TUI application. It starts on the dashboard when the
// session is already authenticated and on the login form otherwise.
func NewApp(c *client.Client, sess Session, webURL string) App {
	a := App{
		client:   c,
		session:  sess,
		webURL:   webURL,
		login:    newLoginModel(c, ""),
		painel:   newPainelModel(c),
		clientes: newClientesModel(c),
		visitas:  newVisitasModel(c),
		resgates: newResgatesModel(c),
		usuarios: newUsuariosModel(c),
	}
	if sess != nil && sess.IsAuthenticated(context.Background()) {
		if u, ok := sess.Identity(); ok {
			a.signedIn(u)
		}
	}
	return a
}

func (a *App) signedIn(u domain.Usuario) {
	a.me = &u
	a.clientes.role = u.Tipo
	a.visitas.role = u.Tipo
	a.resgates.role = u.Tipo
	a.usuarios.self = u.Login
	a.admin = a.session != nil && a.session.IsAdmin(context.Background())
	a.view = viewPainel
}

func (a App) Init() tea.Cmd {
	if a.view == viewLogin {
		return nil
	}
	return a.painel.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + status(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.login, _ = a.login.Update(bodyMsg)
		a.painel, _ = a.painel.Update(bodyMsg)
		a.clientes, _ = a.clientes.Update(bodyMsg)
		a.visitas, _ = a.visitas.Update(bodyMsg)
		a.resgates, _ = a.resgates.Update(bodyMsg)
		a.usuarios, _ = a.usuarios.Update(bodyMsg)
		return a, nil

	case SessionExpiredMsg:
		// Several requests can fail with 401 at once; the first one already
		// showed the login form and the rest must not wipe what was typed.
		if a.view == viewLogin {
			return a, nil
		}
		return a.toLogin("sessão expirada, entre novamente"), nil

	case loggedOutMsg:
		a = a.toLogin("")
		if msg.err != nil {
			a.login.notice = "sessão local encerrada; servidor respondeu: " + errText(msg.err)
		}
		return a, nil

	case loginResultMsg:
		a.login, _ = a.login.Update(msg)
		if msg.err != nil || msg.usuario == nil {
			return a, nil
		}
		a.signedIn(*msg.usuario)
		return a, a.painel.Init()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.helpOpen {
			return a.updateHelp(msg)
		}
		if !a.isEditing() {
			switch msg.String() {
			case "h", "?":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "q":
				return a, tea.Quit
			case "1":
				return a.switchTo(viewPainel)
			case "2":
				return a.switchTo(viewClientes)
			case "3":
				return a.switchTo(viewVisitas)
			case "4":
				return a.switchTo(viewResgates)
			case "5":
				if a.admin {
					return a.switchTo(viewUsuarios)
				}
			case "L":
				return a, a.logout()
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewPainel:
		a.painel, cmd = a.painel.Update(msg)
	case viewClientes:
		a.clientes, cmd = a.clientes.Update(msg)
	case viewVisitas:
		a.visitas, cmd = a.visitas.Update(msg)
	case viewResgates:
		a.resgates, cmd = a.resgates.Update(msg)
	case viewUsuarios:
		a.usuarios, cmd = a.usuarios.Update(msg)
	}
	return a, cmd
}

func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := helpItems(a.webURL)
	switch msg.String() {
	case "h", "?", "esc":
		a.helpOpen = false
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.helpCursor < len(items)-1 {
			a.helpCursor++
		}
	case "k", "up":
		if a.helpCursor > 0 {
			a.helpCursor--
		}
	case "enter":
		if a.helpCursor < len(items) {
			browser.Open(items[a.helpCursor].url) //nolint:errcheck // best-effort browser open
		}
	}
	return a, nil
}

// switchTo changes tab, loading the tab the first time it is shown.
func (a App) switchTo(v view) (tea.Model, tea.Cmd) {
	if a.view == v {
		return a, nil
	}
	a.view = v
	switch v {
	case viewPainel:
		if !a.painel.loaded {
			return a, a.painel.Init()
		}
	case viewClientes:
		if a.clientes.clientes == nil {
			a.clientes.loading = true
			return a, a.clientes.Init()
		}
	case viewVisitas:
		if a.visitas.visitas == nil {
			a.visitas.loading = true
			return a, a.visitas.Init()
		}
	case viewResgates:
		if a.resgates.resgates == nil {
			a.resgates.loading = true
			return a, a.resgates.Init()
		}
	case viewUsuarios:
		if a.usuarios.usuarios == nil {
			a.usuarios.loading = true
			return a, a.usuarios.Init()
		}
	}
	return a, nil
}

func (a App) logout() tea.Cmd {
	c := a.client
	if c == nil {
		return func() tea.Msg { return loggedOutMsg{} }
	}
	return func() tea.Msg {
		return loggedOutMsg{err: c.Logout(context.Background())}
	}
}

// toLogin drops everything loaded under the previous identity and shows the
// login form, keeping the last login name for convenience.
func (a App) toLogin(notice string) App {
	last := ""
	if a.me != nil {
		last = a.me.Login
	}
	a.me = nil
	a.admin = false
	a.helpOpen = false
	a.view = viewLogin
	a.login = newLoginModel(a.client, last)
	a.login.notice = notice
	a.login.width, a.login.height = a.width, a.height-5
	a.painel = newPainelModel(a.client)
	a.clientes = newClientesModel(a.client)
	a.visitas = newVisitasModel(a.client)
	a.resgates = newResgatesModel(a.client)
	a.usuarios = newUsuariosModel(a.client)
	return a
}

func (a App) isEditing() bool {
	switch a.view {
	case viewLogin:
		return true
	case viewClientes:
		return a.clientes.searching || a.clientes.editing || a.clientes.deleting != nil
	case viewVisitas:
		return a.visitas.searching || a.visitas.editing
	case viewResgates:
		return a.resgates.editing || a.resgates.picking != nil
	case viewUsuarios:
		return a.usuarios.editing || a.usuarios.deleting != nil
	}
	return false
}

func (a App) View() string {
	logo := renderLogo()
	logoPad := max((a.width-lipgloss.Width(logo))/2, 0)
	header := strings.Repeat(" ", logoPad) + logo

	// Identity line below logo
	if a.me != nil {
		parts := []string{a.me.Nome, string(a.me.Tipo)}
		if a.session != nil {
			if exp, ok := a.session.ExpiresAt(); ok {
				parts = append(parts, "sessão até "+exp.Local().Format("15:04"))
			}
		}
		line := metaStyle.Render(strings.Join(parts, " · "))
		pad := max((a.width-lipgloss.Width(line))/2, 0)
		header += "\n" + strings.Repeat(" ", pad) + line
	} else {
		header += "\n"
	}

	tabBar := ""
	if a.view != viewLogin {
		tabBar = a.renderTabs()
	}

	var body, help string
	switch a.view {
	case viewLogin:
		body = a.login.View()
		help = a.login.helpKeys()
	case viewPainel:
		body = a.painel.View()
		help = a.painel.helpKeys()
	case viewClientes:
		body = a.clientes.View()
		help = a.clientes.helpKeys()
	case viewVisitas:
		body = a.visitas.View()
		help = a.visitas.helpKeys()
	case viewResgates:
		body = a.resgates.View()
		help = a.resgates.helpKeys()
	case viewUsuarios:
		body = a.usuarios.View()
		help = a.usuarios.helpKeys()
	}

	if a.helpOpen {
		body = helpView(a.helpCursor, helpItems(a.webURL))
		help = helpBar("j/k", "nav", "enter", "abrir", "esc", "fechar")
	}

	status := ""
	if a.me != nil && !a.me.Tipo.CanWrite() {
		status = " " + dimStyle.Render("perfil somente leitura")
	}

	chrome := 5
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", header, tabBar, body, status, help)
}

func (a App) renderTabs() string {
	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Painel", viewPainel},
		{"2", "Clientes", viewClientes},
		{"3", "Visitas", viewVisitas},
		{"4", "Resgates", viewResgates},
	}
	if a.admin {
		tabs = append(tabs, tabEntry{"5", "Usuários", viewUsuarios})
	}

	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := max((colWidth-labelWidth)/2, 0)
		rightPad := max(colWidth-labelWidth-leftPad, 0)
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	return tabBar.String()
}

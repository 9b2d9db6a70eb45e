package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang-jwt/jwt/v5"

	"github.com/megaloja/fidelidade/pkg/domain"
	"github.com/megaloja/fidelidade/pkg/session"
	"github.com/megaloja/fidelidade/pkg/storage"
)

func newTestSession(t *testing.T, u *domain.Usuario, token string) *session.Store {
	t.Helper()
	s, err := session.Open(context.Background(), storage.NewMemory())
	if err != nil {
		t.Fatalf("session.Open() error: %v", err)
	}
	if u != nil {
		if err := s.Login(context.Background(), *u, token); err != nil {
			t.Fatalf("Login() error: %v", err)
		}
	}
	return s
}

func newTestApp(t *testing.T, tipo domain.Role) App {
	t.Helper()
	u := &domain.Usuario{ID: 1, Login: "ana", Nome: "Ana Paula", Tipo: tipo}
	a := NewApp(nil, newTestSession(t, u, "opaque-token"), "")
	a.width = 100
	a.height = 40
	return a
}

func press(t *testing.T, a App, k string) (App, tea.Cmd) {
	t.Helper()
	model, cmd := a.Update(key(k))
	return model.(App), cmd
}

func TestAppStartsOnLoginWhenSignedOut(t *testing.T) {
	a := NewApp(nil, newTestSession(t, nil, ""), "")
	if a.view != viewLogin {
		t.Fatalf("view = %d, want login", a.view)
	}
	if a.Init() != nil {
		t.Error("login view should not load anything on init")
	}

	// q is typed into the login field rather than quitting.
	a, cmd := press(t, a, "q")
	if cmd != nil {
		t.Error("q on the login form returned a command")
	}
	if a.login.login != "q" {
		t.Errorf("login field = %q, want %q", a.login.login, "q")
	}
}

func TestAppStartsOnPainelWhenSignedIn(t *testing.T) {
	a := newTestApp(t, domain.RoleOperador)
	if a.view != viewPainel {
		t.Fatalf("view = %d, want painel", a.view)
	}
	if a.me == nil || a.me.Nome != "Ana Paula" {
		t.Errorf("me = %+v", a.me)
	}
	if a.resgates.role != domain.RoleOperador {
		t.Errorf("resgates role = %q", a.resgates.role)
	}
}

func TestAppTabSwitching(t *testing.T) {
	tests := []struct {
		key      string
		wantView view
	}{
		{"1", viewPainel},
		{"2", viewClientes},
		{"3", viewVisitas},
		{"4", viewResgates},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			a := newTestApp(t, domain.RoleOperador)
			a, _ = press(t, a, tc.key)
			if a.view != tc.wantView {
				t.Errorf("after key %q: view = %d, want %d", tc.key, a.view, tc.wantView)
			}
		})
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(t, domain.RoleOperador)
	_, cmd := press(t, a, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
	}
}

func TestAppSearchSwallowsGlobalKeys(t *testing.T) {
	a := newTestApp(t, domain.RoleOperador)
	a, _ = press(t, a, "2")
	a, _ = press(t, a, "/")
	a, _ = press(t, a, "3")
	if a.view != viewClientes {
		t.Errorf("view = %d, want clientes while searching", a.view)
	}
	if a.clientes.search != "3" {
		t.Errorf("search = %q, want %q", a.clientes.search, "3")
	}
}

func TestAppSessionExpired(t *testing.T) {
	a := newTestApp(t, domain.RoleOperador)
	a, _ = press(t, a, "2")
	a.clientes.clientes = []domain.Cliente{{Nome: "Maria"}}

	model, _ := a.Update(SessionExpiredMsg{})
	a = model.(App)
	if a.view != viewLogin {
		t.Fatalf("view = %d, want login", a.view)
	}
	if a.me != nil {
		t.Error("identity kept after expiry")
	}
	if a.clientes.clientes != nil {
		t.Error("customer data kept after expiry")
	}
	if a.login.login != "ana" {
		t.Errorf("login prefill = %q, want %q", a.login.login, "ana")
	}
	if !strings.Contains(a.View(), "sessão expirada") {
		t.Errorf("view missing expiry notice:\n%s", a.View())
	}
}

func TestAppLogout(t *testing.T) {
	a := newTestApp(t, domain.RoleOperador)
	_, cmd := press(t, a, "L")
	if cmd == nil {
		t.Fatal("expected logout command")
	}
	msg, ok := cmd().(loggedOutMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want loggedOutMsg", cmd())
	}

	model, _ := a.Update(msg)
	a = model.(App)
	if a.view != viewLogin {
		t.Errorf("view = %d, want login", a.view)
	}
	if a.login.notice != "" {
		t.Errorf("notice = %q, want none on clean logout", a.login.notice)
	}
}

func TestAppLogoutServerError(t *testing.T) {
	a := newTestApp(t, domain.RoleOperador)
	model, _ := a.Update(loggedOutMsg{err: errors.New("boom")})
	a = model.(App)
	if !strings.Contains(a.login.notice, "boom") {
		t.Errorf("notice = %q", a.login.notice)
	}
}

func TestAppLoginResult(t *testing.T) {
	a := NewApp(nil, newTestSession(t, nil, ""), "")
	u := &domain.Usuario{Login: "bia", Nome: "Bia", Tipo: domain.RoleVisualizador}
	model, _ := a.Update(loginResultMsg{usuario: u})
	a = model.(App)
	if a.view != viewPainel {
		t.Fatalf("view = %d, want painel", a.view)
	}
	if a.resgates.role != domain.RoleVisualizador {
		t.Errorf("resgates role = %q", a.resgates.role)
	}
}

func TestAppReadOnlyNotice(t *testing.T) {
	a := newTestApp(t, domain.RoleVisualizador)
	if !strings.Contains(a.View(), "perfil somente leitura") {
		t.Errorf("viewer view missing read-only notice:\n%s", a.View())
	}
	b := newTestApp(t, domain.RoleAdministrador)
	if strings.Contains(b.View(), "perfil somente leitura") {
		t.Error("admin view shows read-only notice")
	}
}

func TestAppHeaderShowsSessionExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": 1,
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	u := &domain.Usuario{Login: "ana", Nome: "Ana Paula", Tipo: domain.RoleOperador}
	a := NewApp(nil, newTestSession(t, u, token), "")
	a.width, a.height = 100, 40

	view := a.View()
	want := "sessão até " + exp.Local().Format("15:04")
	if !strings.Contains(view, want) {
		t.Errorf("header missing %q:\n%s", want, view)
	}
	if !strings.Contains(view, "Ana Paula · Operador") {
		t.Errorf("header missing identity:\n%s", view)
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a := newTestApp(t, domain.RoleOperador)
	a.webURL = "http://localhost:5000/"
	a, _ = press(t, a, "?")
	if !a.helpOpen {
		t.Fatal("expected help overlay after ?")
	}
	if !strings.Contains(a.View(), "Comandos") {
		t.Errorf("help view missing sections:\n%s", a.View())
	}
	a, _ = press(t, a, "esc")
	if a.helpOpen {
		t.Error("help still open after esc")
	}
}

func TestAppRepeatedExpiryKeepsTypedCredentials(t *testing.T) {
	a := newTestApp(t, domain.RoleOperador)
	model, _ := a.Update(SessionExpiredMsg{})
	a = model.(App)

	for _, r := range "segredo" {
		a, _ = press(t, a, string(r))
	}
	if a.login.senha != "segredo" {
		t.Fatalf("senha = %q after typing", a.login.senha)
	}

	// A second in-flight request fails with 401 after the form is up.
	model, _ = a.Update(SessionExpiredMsg{})
	a = model.(App)
	if a.login.senha != "segredo" || a.login.login != "ana" {
		t.Errorf("credentials wiped by a repeated expiry: login %q senha %q", a.login.login, a.login.senha)
	}
}

func TestAppPassesRoleToTabs(t *testing.T) {
	a := newTestApp(t, domain.RoleVisualizador)
	if a.clientes.role != domain.RoleVisualizador || a.visitas.role != domain.RoleVisualizador {
		t.Errorf("roles = %q / %q", a.clientes.role, a.visitas.role)
	}
	if a.usuarios.self != "ana" {
		t.Errorf("usuarios.self = %q", a.usuarios.self)
	}
}

func TestAppUsuariosTabAdminOnly(t *testing.T) {
	op := newTestApp(t, domain.RoleOperador)
	if strings.Contains(op.View(), "Usuários") {
		t.Errorf("operator sees the Usuários tab:\n%s", op.View())
	}
	op, _ = press(t, op, "5")
	if op.view == viewUsuarios {
		t.Error("operator reached the Usuários tab")
	}

	adm := newTestApp(t, domain.RoleAdministrador)
	if !adm.admin {
		t.Fatal("admin flag not set for an administrator session")
	}
	if !strings.Contains(adm.View(), "Usuários") {
		t.Errorf("admin view missing Usuários tab:\n%s", adm.View())
	}
	adm, _ = press(t, adm, "5")
	if adm.view != viewUsuarios {
		t.Errorf("view = %d, want usuarios", adm.view)
	}

	model, _ := adm.Update(SessionExpiredMsg{})
	adm = model.(App)
	if adm.admin {
		t.Error("admin flag kept after expiry")
	}
}

func TestAppFormSwallowsGlobalKeys(t *testing.T) {
	a := newTestApp(t, domain.RoleOperador)
	a, _ = press(t, a, "2")
	a.clientes.clientes = testClientes()
	a, _ = press(t, a, "n")
	if !a.clientes.editing {
		t.Fatal("expected the registration form")
	}
	for _, k := range []string{"q", "3", "L"} {
		var cmd tea.Cmd
		a, cmd = press(t, a, k)
		if cmd != nil {
			t.Errorf("key %q in a form returned a command", k)
		}
	}
	if a.view != viewClientes {
		t.Errorf("view = %d, want clientes while editing", a.view)
	}
	if got := a.clientes.form.value(clienteNome); got != "q3L" {
		t.Errorf("nome = %q, want %q", got, "q3L")
	}
	a, _ = press(t, a, "esc")
	a, _ = press(t, a, "3")
	if a.view != viewVisitas {
		t.Errorf("view = %d, want visitas after closing the form", a.view)
	}
}

package tui

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/megaloja/fidelidade/pkg/client"
	"github.com/megaloja/fidelidade/pkg/domain"
)

func TestVisitasLoadAndRender(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/visitas" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.RawQuery
		io.WriteString(w, `{"visitas":[
			{"id":1,"cliente_id":1,"cliente_nome":"Maria Souza","data_visita":"2024-12-28T14:30:05","valor_compra":150.5,"loja":"Osasco","pontos_gerados":150},
			{"id":2,"cliente_id":2,"cliente_nome":"João Lima","data_visita":"2024-12-27T10:00:00","valor_compra":49.5,"loja":"Tatuapé","pontos_gerados":49}
		],"total":2}`) //nolint:errcheck
	}))
	defer srv.Close()

	m := newVisitasModel(client.New(srv.URL, nil))
	m, _ = m.Update(m.Init()())
	if !strings.Contains(gotQuery, "per_page=50") {
		t.Errorf("query = %q, want per_page=50", gotQuery)
	}

	view := m.View()
	for _, want := range []string{"28/12/2024 14:30:05", "Maria Souza", "Osasco", "+150", "+49", "R$ 200,00"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestVisitasSearchByLoja(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"visitas":[{"id":1,"cliente_nome":"Maria","loja":"Osasco"},{"id":2,"cliente_nome":"João","loja":"Tatuapé"}]}`) //nolint:errcheck
	}))
	defer srv.Close()

	m := newVisitasModel(client.New(srv.URL, nil))
	m, _ = m.Update(m.Init()())
	m, _ = m.Update(key("/"))
	for _, r := range "tatu" {
		m, _ = m.Update(key(string(r)))
	}
	list := m.visible()
	if len(list) != 1 || list[0].ClienteNome != "João" {
		t.Errorf("visible() = %+v, want only the Tatuapé visit", list)
	}
	if !m.searching {
		t.Error("expected to stay in search mode while typing")
	}
}

func TestVisitasEmpty(t *testing.T) {
	m := newVisitasModel(nil)
	m, _ = m.Update(visitasLoadedMsg{})
	if !strings.Contains(m.View(), "nenhuma visita registrada") {
		t.Errorf("view = %q", m.View())
	}
}

// visitaServer knows one customer, CPF 12345678901, and records the visit
// payload it receives.
func visitaServer(t *testing.T, got *client.VisitaInput) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /clientes/buscar-cpf/12345678901", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"id":7,"nome":"Maria Souza","cpf":"12345678901"}`) //nolint:errcheck
	})
	mux.HandleFunc("GET /clientes/buscar-cpf/{cpf}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"Cliente not found"}`) //nolint:errcheck
	})
	mux.HandleFunc("POST /visitas", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(got) //nolint:errcheck
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":30,"cliente_id":7,"valor_compra":150.5,"loja":"Mascote","pontos_gerados":150}`) //nolint:errcheck
	})
	mux.HandleFunc("GET /visitas", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"visitas":[]}`) //nolint:errcheck
	})
	return httptest.NewServer(mux)
}

func TestVisitasRegister(t *testing.T) {
	var got client.VisitaInput
	srv := visitaServer(t, &got)
	defer srv.Close()

	m := newVisitasModel(client.New(srv.URL, nil))
	m.role = domain.RoleOperador
	m, _ = m.Update(visitasLoadedMsg{})
	m, _ = m.Update(key("n"))
	if !strings.Contains(m.View(), "Registrar visita") {
		t.Fatalf("expected visit form:\n%s", m.View())
	}
	m = typeText(m, "123.456.789-01")
	m, _ = m.Update(key("tab"))
	m = typeText(m, "150,50")
	m, _ = m.Update(key("tab"))
	m, _ = m.Update(key("right"))
	m, _ = m.Update(key("right"))

	m, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatalf("expected register command, form error %q", m.form.err)
	}
	m, reload := m.Update(cmd())

	want := client.VisitaInput{ClienteID: 7, ValorCompra: 150.5, Loja: domain.Lojas[2]}
	if got.ClienteID != want.ClienteID || got.ValorCompra != want.ValorCompra || got.Loja != want.Loja {
		t.Errorf("payload = %+v, want %+v", got, want)
	}
	if m.editing {
		t.Error("form still open after save")
	}
	if m.statusMsg != "visita registrada: +150 pontos para Maria Souza" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
	if reload == nil {
		t.Error("expected the list to reload")
	}
	if !strings.Contains(m.View(), m.statusMsg) {
		t.Errorf("view missing status:\n%s", m.View())
	}
}

func TestVisitasRegisterUnknownCPF(t *testing.T) {
	var got client.VisitaInput
	srv := visitaServer(t, &got)
	defer srv.Close()

	m := newVisitasModel(client.New(srv.URL, nil))
	m.role = domain.RoleAdministrador
	m, _ = m.Update(key("n"))
	m.form.fields[visitaCPF].value = "99999999999"
	m.form.fields[visitaValor].value = "10"
	m, cmd := m.Update(key("ctrl+s"))
	m, _ = m.Update(cmd())

	if m.form.err != "cliente não encontrado" {
		t.Errorf("form error = %q", m.form.err)
	}
	if !m.editing {
		t.Error("form closed on a failed lookup")
	}
	if got.ClienteID != 0 {
		t.Error("visit posted for an unknown customer")
	}
}

func TestVisitasFormValidation(t *testing.T) {
	m := newVisitasModel(nil)
	m.role = domain.RoleOperador
	m, _ = m.Update(key("n"))
	m.form.fields[visitaCPF].value = "123"
	if m, _ = m.Update(key("ctrl+s")); m.form.err != "CPF deve ter 11 dígitos" {
		t.Errorf("form error = %q", m.form.err)
	}
	m.form.fields[visitaCPF].value = "12345678901"
	m.form.fields[visitaValor].value = "abc"
	if m, _ = m.Update(key("ctrl+s")); m.form.err != "valor da compra inválido" {
		t.Errorf("form error = %q", m.form.err)
	}
}

func TestVisitasViewerCannotRegister(t *testing.T) {
	m := newVisitasModel(nil)
	m.role = domain.RoleVisualizador
	m, _ = m.Update(visitasLoadedMsg{})
	m, _ = m.Update(key("n"))
	if m.editing {
		t.Fatal("viewer opened the visit form")
	}
	if !strings.Contains(m.View(), "seu perfil não pode registrar visitas") {
		t.Errorf("view missing refusal:\n%s", m.View())
	}
}

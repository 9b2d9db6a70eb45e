package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/megaloja/fidelidade/pkg/domain"
	"github.com/megaloja/fidelidade/pkg/session"
	"github.com/megaloja/fidelidade/pkg/storage"
)

// newSession returns a session store logged in as an operator with token
// "test-token", plus the backing storage so tests can inspect it.
func newSession(t *testing.T) (*session.Store, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	s, err := session.Open(context.Background(), kv)
	if err != nil {
		t.Fatalf("session.Open() error: %v", err)
	}
	u := domain.Usuario{ID: 3, Login: "ana", Nome: "Ana", Tipo: domain.RoleOperador, Ativo: true}
	if err := s.Login(context.Background(), u, "test-token"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	return s, kv
}

func assertWiped(t *testing.T, kv storage.Store) {
	t.Helper()
	for _, key := range []string{session.TokenKey, session.UsuarioKey} {
		if _, err := kv.Get(context.Background(), key); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get(%q) error = %v, want ErrNotFound", key, err)
		}
	}
}

func TestRequest_Headers(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer srv.Close()

	sess, _ := newSession(t)
	c := New(srv.URL, sess)
	err := c.Request(context.Background(), http.MethodGet, "/clientes", nil, nil, WithHeader("X-Loja", "Loja Centro"))
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}

	want := map[string]string{
		"Content-Type":  "application/json",
		"Accept":        "application/json",
		"Authorization": "Bearer test-token",
		"X-Loja":        "Loja Centro",
	}
	for k, v := range want {
		if got.Get(k) != v {
			t.Errorf("%s = %q, want %q", k, got.Get(k), v)
		}
	}
	if got.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID not set")
	}
}

func TestRequest_NoTokenNoAuthorization(t *testing.T) {
	var auth string
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, sawAuth = r.Header.Get("Authorization"), len(r.Header.Values("Authorization")) > 0
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s, err := session.Open(context.Background(), storage.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	c := New(srv.URL, s)
	if err := c.Request(context.Background(), http.MethodGet, "/x", nil, nil); err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	if sawAuth {
		t.Errorf("Authorization = %q, want header absent", auth)
	}
}

func TestRequest_BodyAndDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)                           //nolint:errcheck
		json.NewEncoder(w).Encode(map[string]any{"echo": body["nome"]}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	var out struct {
		Echo string `json:"echo"`
	}
	err := c.Request(context.Background(), http.MethodPost, "/echo", map[string]string{"nome": "Maria"}, &out)
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	if out.Echo != "Maria" {
		t.Errorf("Echo = %q, want %q", out.Echo, "Maria")
	}
}

func TestRequest_EmptyBodyWithOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	var out map[string]any
	if err := c.Request(context.Background(), http.MethodGet, "/vazio", nil, &out); err != nil {
		t.Fatalf("Request() error: %v", err)
	}
}

func TestRequest_Unauthorized_ExpiresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Token expirado"}) //nolint:errcheck
	}))
	defer srv.Close()

	sess, kv := newSession(t)
	expired := 0
	sess.OnExpire(func() { expired++ })

	c := New(srv.URL, sess)
	_, err := c.GetCliente(context.Background(), 1)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("error = %v, want ErrSessionExpired", err)
	}
	if sess.IsAuthenticated(context.Background()) {
		t.Error("session still authenticated after 401")
	}
	if expired != 1 {
		t.Errorf("expiry listeners called %d times, want 1", expired)
	}
	assertWiped(t, kv)
}

func TestRequest_Unauthorized_WhenAlreadySignedOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	kv := storage.NewMemory()
	// A stray token with no identity still has to go.
	kv.Set(context.Background(), session.TokenKey, "stale") //nolint:errcheck
	sess, err := session.Open(context.Background(), kv)
	if err != nil {
		t.Fatal(err)
	}

	c := New(srv.URL, sess)
	if err := c.Request(context.Background(), http.MethodGet, "/dashboard/resumo", nil, nil); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("error = %v, want ErrSessionExpired", err)
	}
	assertWiped(t, kv)
}

func TestRequest_ErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"error field", http.StatusNotFound, `{"error":"not found"}`, "not found"},
		{"message field", http.StatusConflict, `{"message":"CPF já cadastrado"}`, "CPF já cadastrado"},
		{"error wins over message", http.StatusBadRequest, `{"error":"a","message":"b"}`, "a"},
		{"unparseable", http.StatusInternalServerError, `<html>oops</html>`, "HTTP error 500"},
		{"empty body", http.StatusBadGateway, ``, "HTTP error 502"},
		{"no message", http.StatusForbidden, `{"detail":"x"}`, "HTTP error 403"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body) //nolint:errcheck
			}))
			defer srv.Close()

			sess, kv := newSession(t)
			c := New(srv.URL, sess)
			err := c.Request(context.Background(), http.MethodGet, "/clientes/9", nil, nil)

			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("error = %v (%T), want *RequestError", err, err)
			}
			if reqErr.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", reqErr.Error(), tt.want)
			}
			if reqErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", reqErr.StatusCode, tt.status)
			}
			if !IsStatus(err, tt.status) {
				t.Errorf("IsStatus(err, %d) = false", tt.status)
			}
			if tok, _ := kv.Get(context.Background(), session.TokenKey); tok != "test-token" {
				t.Errorf("token = %q after %d, want it kept", tok, tt.status)
			}
		})
	}
}

func TestRequest_WrapperKeepsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"not found"}`) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.GetCliente(context.Background(), 42)
	if !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("IsStatus(404) = false for %v", err)
	}
	if !strings.HasSuffix(err.Error(), "not found") {
		t.Errorf("error = %q, want suffix %q", err.Error(), "not found")
	}
}

func TestRequest_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	sess, kv := newSession(t)
	c := New(url, sess)
	err := c.Request(context.Background(), http.MethodGet, "/clientes", nil, nil)

	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("error = %v (%T), want *TransportError", err, err)
	}
	if tErr.Path != "/clientes" || tErr.Method != http.MethodGet {
		t.Errorf("TransportError = %s %s, want GET /clientes", tErr.Method, tErr.Path)
	}
	if tErr.Unwrap() == nil {
		t.Error("Unwrap() = nil")
	}
	if tok, _ := kv.Get(context.Background(), session.TokenKey); tok != "test-token" {
		t.Errorf("token = %q after transport failure, want it kept", tok)
	}
}

func TestRequest_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(2 * time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Request(ctx, http.MethodGet, "/lento", nil, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
}

func TestRequest_CanceledLogsAtDebug(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(2 * time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	c := New(srv.URL, nil, WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	err := c.Request(ctx, http.MethodGet, "/lento", nil, nil)
	var tErr *TransportError
	if !errors.As(err, &tErr) || !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want canceled TransportError", err)
	}
	out := buf.String()
	if strings.Contains(out, `"level":"error"`) {
		t.Errorf("canceled request logged at error level: %s", out)
	}
	if !strings.Contains(out, "api request canceled") {
		t.Errorf("log = %s, want debug entry for the canceled request", out)
	}
}

func TestQueryEncode(t *testing.T) {
	var nilPage *int
	page := 2
	tests := []struct {
		name string
		q    Query
		want string
	}{
		{"empty", Query{}, ""},
		{"nil map", nil, ""},
		{"sorted", Query{"search": "maria", "page": 1}, "page=1&search=maria"},
		{"nil omitted", Query{"page": nil, "search": "x"}, "search=x"},
		{"typed nil omitted", Query{"page": nilPage}, ""},
		{"pointer deref", Query{"page": &page}, "page=2"},
		{"bool", Query{"ativa": true}, "ativa=true"},
		{"escaped", Query{"search": "joão silva"}, "search=jo%C3%A3o+silva"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithQuery(t *testing.T) {
	if got := withQuery("/clientes", nil); got != "/clientes" {
		t.Errorf("withQuery(nil) = %q, want %q", got, "/clientes")
	}
	if got := withQuery("/clientes", Query{"page": 3}); got != "/clientes?page=3" {
		t.Errorf("withQuery = %q, want %q", got, "/clientes?page=3")
	}
}

func TestListClientes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/clientes" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("search"); got != "maria" {
			t.Errorf("search = %q, want %q", got, "maria")
		}
		io.WriteString(w, `{"clientes":[{"id":1,"cpf":"12345678901","nome":"Maria","pontos_totais":1200,"total_visitas":7,"data_cadastro":"2024-03-01T10:00:00.123456"}],"total":1,"pages":1,"current_page":1}`) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", nil)
	page, err := c.ListClientes(context.Background(), Query{"search": "maria"})
	if err != nil {
		t.Fatalf("ListClientes() error: %v", err)
	}
	if len(page.Clientes) != 1 {
		t.Fatalf("got %d clientes, want 1", len(page.Clientes))
	}
	cl := page.Clientes[0]
	if cl.Tier() != domain.TierOuro {
		t.Errorf("Tier() = %q, want %q", cl.Tier(), domain.TierOuro)
	}
	if cl.Tier().English() != "Gold" {
		t.Errorf("English() = %q, want %q", cl.Tier().English(), "Gold")
	}
	if cl.TotalVisitas != 7 {
		t.Errorf("TotalVisitas = %d, want 7", cl.TotalVisitas)
	}
	if cl.DataCadastro.IsZero() {
		t.Error("DataCadastro not parsed")
	}
}

func TestClienteByCPF_StripsPunctuation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/clientes/buscar-cpf/12345678901" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `{"id":5,"cpf":"12345678901","nome":"João"}`) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	cl, err := c.ClienteByCPF(context.Background(), "123.456.789-01")
	if err != nil {
		t.Fatalf("ClienteByCPF() error: %v", err)
	}
	if cl.ID != 5 {
		t.Errorf("ID = %d, want 5", cl.ID)
	}
}

func TestCreateCliente(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":9,"nome":"Maria"}`) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	cl, err := c.CreateCliente(context.Background(), ClienteInput{
		Nome:     "Maria",
		CPF:      "123.456.789-01",
		Telefone: "(11) 99999-0000",
		Email:    "ignorada@example.com",
		SemEmail: true,
	})
	if err != nil {
		t.Fatalf("CreateCliente() error: %v", err)
	}
	if cl.ID != 9 {
		t.Errorf("ID = %d, want 9", cl.ID)
	}
	if body["cpf"] != "12345678901" {
		t.Errorf("cpf sent = %v, want bare digits", body["cpf"])
	}
	if _, ok := body["email"]; ok {
		t.Errorf("email sent = %v, want omitted for sem_email", body["email"])
	}
}

func TestCreateCliente_Validation(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	tests := []struct {
		name  string
		in    ClienteInput
		field string
	}{
		{"short cpf", ClienteInput{Nome: "A", CPF: "123", Telefone: "1", SemEmail: true}, "cpf"},
		{"missing nome", ClienteInput{CPF: "12345678901", Telefone: "1", SemEmail: true}, "nome"},
		{"email required", ClienteInput{Nome: "A", CPF: "12345678901", Telefone: "1"}, "email"},
		{"bad email", ClienteInput{Nome: "A", CPF: "12345678901", Telefone: "1", Email: "nope"}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.CreateCliente(context.Background(), tt.in)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			found := false
			for _, f := range vErr.Fields {
				if f.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("fields = %v, want one for %q", vErr.Fields, tt.field)
			}
		})
	}
	if calls != 0 {
		t.Errorf("server called %d times, want 0", calls)
	}
}

func TestLogin_BadCredentialsKeepSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":"Credenciais inválidas"}`) //nolint:errcheck
	}))
	defer srv.Close()

	sess, kv := newSession(t)
	expired := false
	sess.OnExpire(func() { expired = true })

	c := New(srv.URL, sess)
	_, err := c.Login(context.Background(), Credentials{Login: "ana", Senha: "errada"})
	if errors.Is(err, ErrSessionExpired) {
		t.Fatal("bad credentials reported as session expiry")
	}
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("IsStatus(401) = false for %v", err)
	}
	if !strings.Contains(err.Error(), "Credenciais inválidas") {
		t.Errorf("error = %q, want backend message", err.Error())
	}
	if expired {
		t.Error("expiry listener fired on login failure")
	}
	if tok, _ := kv.Get(context.Background(), session.TokenKey); tok != "test-token" {
		t.Errorf("token = %q, want previous session kept", tok)
	}
}

func TestAuthenticate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		json.NewDecoder(r.Body).Decode(&creds) //nolint:errcheck
		if creds.Login != "admin" || creds.Senha != "segredo" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(domain.LoginResult{ //nolint:errcheck
			AccessToken: "novo-token",
			Usuario:     domain.Usuario{ID: 1, Login: "admin", Nome: "Admin", Tipo: domain.RoleAdministrador, Ativo: true},
		})
	}))
	defer srv.Close()

	kv := storage.NewMemory()
	sess, err := session.Open(context.Background(), kv)
	if err != nil {
		t.Fatal(err)
	}
	c := New(srv.URL, sess)
	u, err := c.Authenticate(context.Background(), "admin", "segredo")
	if err != nil {
		t.Fatalf("Authenticate() error: %v", err)
	}
	if u.Login != "admin" {
		t.Errorf("Login = %q, want %q", u.Login, "admin")
	}
	if !sess.IsAdmin(context.Background()) {
		t.Error("IsAdmin() = false after admin login")
	}
	if tok, _ := kv.Get(context.Background(), session.TokenKey); tok != "novo-token" {
		t.Errorf("stored token = %q, want %q", tok, "novo-token")
	}
}

func TestAuthenticate_EmptyCredentials(t *testing.T) {
	sess, _ := newSession(t)
	c := New("http://127.0.0.1:0", sess)
	_, err := c.Authenticate(context.Background(), "", "")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
}

func TestLogout_ClearsSessionEvenWhenBackendFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sess, kv := newSession(t)
	c := New(srv.URL, sess)
	err := c.Logout(context.Background())
	if !IsStatus(err, http.StatusInternalServerError) {
		t.Errorf("error = %v, want the backend 500", err)
	}
	if sess.IsAuthenticated(context.Background()) {
		t.Error("still authenticated after Logout")
	}
	assertWiped(t, kv)
}

func TestResgateActions(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		status := domain.ResgateEntregue
		if strings.HasSuffix(r.URL.Path, "/cancelar") {
			status = domain.ResgateCancelado
		}
		json.NewEncoder(w).Encode(domain.Resgate{ID: 4, Status: status, VoucherCodigo: "ABC123"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	r, err := c.EntregarResgate(context.Background(), 4)
	if err != nil {
		t.Fatalf("EntregarResgate() error: %v", err)
	}
	if r.Status != domain.ResgateEntregue {
		t.Errorf("Status = %q, want %q", r.Status, domain.ResgateEntregue)
	}
	r, err = c.CancelarResgate(context.Background(), 4)
	if err != nil {
		t.Fatalf("CancelarResgate() error: %v", err)
	}
	if r.Status != domain.ResgateCancelado {
		t.Errorf("Status = %q, want %q", r.Status, domain.ResgateCancelado)
	}
	if _, err := c.ResgateByVoucher(context.Background(), "ABC123"); err != nil {
		t.Fatalf("ResgateByVoucher() error: %v", err)
	}

	want := []string{
		"PUT /resgates/4/entregar",
		"PUT /resgates/4/cancelar",
		"GET /resgates/voucher/ABC123",
	}
	if strings.Join(paths, "|") != strings.Join(want, "|") {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestEndpointPaths(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Method + " " + r.URL.RequestURI()
		switch {
		case strings.HasPrefix(r.URL.Path, "/dashboard/resumo"),
			strings.HasPrefix(r.URL.Path, "/dashboard/top-clientes"),
			strings.HasPrefix(r.URL.Path, "/pontos/"),
			strings.HasPrefix(r.URL.Path, "/auth/me"):
			io.WriteString(w, `{}`) //nolint:errcheck
		case strings.HasPrefix(r.URL.Path, "/clientes"),
			strings.HasPrefix(r.URL.Path, "/visitas"),
			strings.HasPrefix(r.URL.Path, "/campanhas"),
			strings.HasPrefix(r.URL.Path, "/produtos"),
			strings.HasPrefix(r.URL.Path, "/brindes"),
			strings.HasPrefix(r.URL.Path, "/resgates/cliente"):
			io.WriteString(w, `{}`) //nolint:errcheck
		case strings.HasPrefix(r.URL.Path, "/resgates/brindes-disponiveis"):
			io.WriteString(w, `{"brindes":[]}`) //nolint:errcheck
		default:
			io.WriteString(w, `[]`) //nolint:errcheck
		}
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	ctx := context.Background()
	tests := []struct {
		want string
		call func() error
	}{
		{"GET /auth/me", func() error { _, err := c.Me(ctx); return err }},
		{"GET /auth/usuarios", func() error { _, err := c.ListUsuarios(ctx); return err }},
		{"DELETE /auth/usuarios/7", func() error { return c.DeleteUsuario(ctx, 7) }},
		{"GET /visitas/cliente/3?page=2", func() error { _, err := c.ListVisitasCliente(ctx, 3, Query{"page": 2}); return err }},
		{"GET /pontos/cliente/3", func() error { _, err := c.PontosCliente(ctx, 3); return err }},
		{"DELETE /visitas/8", func() error { return c.DeleteVisita(ctx, 8) }},
		{"GET /campanhas/2", func() error { _, err := c.GetCampanha(ctx, 2); return err }},
		{"GET /produtos", func() error { _, err := c.ListProdutos(ctx, nil); return err }},
		{"DELETE /brindes/5", func() error { return c.DeleteBrinde(ctx, 5) }},
		{"GET /resgates/cliente/3", func() error { _, err := c.ListResgatesCliente(ctx, 3, nil); return err }},
		{"GET /resgates/brindes-disponiveis/3", func() error { _, err := c.BrindesDisponiveis(ctx, 3); return err }},
		{"GET /dashboard/resumo", func() error { _, err := c.DashboardResumo(ctx); return err }},
		{"GET /dashboard/top-clientes", func() error { _, err := c.TopClientes(ctx); return err }},
		{"GET /dashboard/visitas-periodo?dias=30", func() error { _, err := c.VisitasPorPeriodo(ctx, Query{"dias": 30}); return err }},
		{"GET /dashboard/distribuicao-niveis", func() error { _, err := c.DistribuicaoNiveis(ctx); return err }},
		{"GET /dashboard/resgates-status", func() error { _, err := c.ResgatesPorStatus(ctx); return err }},
		{"GET /relatorios/clientes-detalhado", func() error { _, err := c.RelatorioClientesDetalhado(ctx, nil); return err }},
		{"GET /relatorios/campanhas-performance", func() error { _, err := c.RelatorioCampanhasPerformance(ctx); return err }},
		{"GET /relatorio/visitas", func() error { _, err := c.RelatorioVisitas(ctx, nil); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatalf("error: %v", err)
			}
			if got != tt.want {
				t.Errorf("request = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateVisita_Validation(t *testing.T) {
	c := New("http://127.0.0.1:0", nil)
	_, err := c.CreateVisita(context.Background(), VisitaInput{ClienteID: 1, ValorCompra: -5, Loja: "Centro"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if vErr.Fields[0].Field != "valor_compra" {
		t.Errorf("field = %q, want %q", vErr.Fields[0].Field, "valor_compra")
	}
}

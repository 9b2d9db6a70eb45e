package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/megaloja/fidelidade/internal/browser"
	"github.com/megaloja/fidelidade/internal/config"
	"github.com/megaloja/fidelidade/internal/logger"
	"github.com/megaloja/fidelidade/internal/tui"
	"github.com/megaloja/fidelidade/pkg/client"
	"github.com/megaloja/fidelidade/pkg/domain"
	"github.com/megaloja/fidelidade/pkg/session"
	"github.com/megaloja/fidelidade/pkg/storage"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cmd string
	var args []string
	if len(os.Args) > 1 {
		cmd, args = os.Args[1], os.Args[2:]
	}

	// Offline commands need neither config nor a session.
	switch cmd {
	case "--version", "version", "-v":
		fmt.Println("fidelidade " + version)
		return nil
	case "help", "--help", "-h":
		printHelp()
		return nil
	case "tier":
		return runTier(os.Stdout, args)
	case "cpf":
		return runCPF(os.Stdout, args)
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx, ".env")
	if err != nil {
		return err
	}
	if cmd == "web" {
		return openWeb(os.Stdout, cfg.WebConsoleURL())
	}

	rt, err := openRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.Close() //nolint:errcheck

	switch cmd {
	case "":
		return runTUI(ctx, rt)
	case "login":
		return runLogin(ctx, rt, args, os.Stdin, os.Stdout)
	case "logout":
		return runLogout(ctx, rt, os.Stdout)
	case "whoami":
		return runWhoami(ctx, rt, os.Stdout)
	case "voucher":
		return runVoucher(ctx, rt, args, os.Stdout)
	case "visita":
		return runVisita(ctx, rt, args, os.Stdout)
	}
	return fmt.Errorf("unknown command %q (see: fidelidade help)", cmd)
}

// runtime bundles what the online commands share.
type runtime struct {
	cfg     *config.Config
	log     zerolog.Logger
	sess    *session.Store
	client  *client.Client
	logFile io.Closer
}

func openRuntime(ctx context.Context, cfg *config.Config) (*runtime, error) {
	rt := &runtime{cfg: cfg, log: zerolog.Nop()}
	if cfg.Log.File != "" {
		f, err := logger.OpenFile(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		rt.logFile = f
		rt.log = logger.New(logger.Options{Level: cfg.Log.Level, Output: f})
	}

	kv, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		rt.Close() //nolint:errcheck
		return nil, fmt.Errorf("open session storage: %w", err)
	}
	sess, err := session.Open(ctx, kv, session.WithLogger(rt.log.With().Str("component", "session").Logger()))
	if err != nil {
		kv.Close() //nolint:errcheck
		rt.Close() //nolint:errcheck
		return nil, err
	}
	rt.sess = sess
	rt.client = client.New(cfg.BaseURL(), sess,
		client.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		client.WithLogger(rt.log.With().Str("component", "client").Logger()),
	)
	rt.log.Debug().Str("api", rt.client.BaseURL()).Str("store", cfg.Store.Backend).Msg("runtime ready")
	return rt, nil
}

func (rt *runtime) Close() error {
	var errs []error
	if rt.sess != nil {
		errs = append(errs, rt.sess.Close())
	}
	if rt.logFile != nil {
		errs = append(errs, rt.logFile.Close())
	}
	return errors.Join(errs...)
}

func runTUI(ctx context.Context, rt *runtime) error {
	// Only a 401 drops the stored session; transient failures still open the
	// console, which retries on its own.
	if rt.sess.IsAuthenticated(ctx) {
		if _, err := rt.client.Me(ctx); err != nil && !errors.Is(err, client.ErrSessionExpired) {
			rt.log.Warn().Err(err).Msg("verifying stored session")
		}
	}

	app := tui.NewApp(rt.client, rt.sess, rt.cfg.WebConsoleURL())
	p := tea.NewProgram(app, tea.WithAltScreen())
	rt.sess.OnExpire(func() { p.Send(tui.SessionExpiredMsg{}) })
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// runLogin signs in with the login from args (or prompted) and the password
// from FIDELIDADE_PASSWORD (or prompted).
func runLogin(ctx context.Context, rt *runtime, args []string, in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)
	login := ""
	if len(args) > 0 {
		login = args[0]
	} else {
		fmt.Fprint(out, "login: ") //nolint:errcheck
		var err error
		if login, err = readLine(r); err != nil {
			return err
		}
	}
	senha := os.Getenv("FIDELIDADE_PASSWORD")
	if senha == "" {
		fmt.Fprint(out, "senha: ") //nolint:errcheck
		var err error
		if senha, err = readLine(r); err != nil {
			return err
		}
	}
	if strings.TrimSpace(login) == "" || senha == "" {
		return errors.New("login e senha são obrigatórios")
	}

	u, err := rt.client.Authenticate(ctx, strings.TrimSpace(login), senha)
	if err != nil {
		if client.IsStatus(err, http.StatusUnauthorized) {
			return errors.New("credenciais inválidas")
		}
		return err
	}
	fmt.Fprintf(out, "Autenticado como %s (%s)\n", u.Nome, u.Tipo) //nolint:errcheck
	fmt.Fprintln(out, "Abra o console com: fidelidade")            //nolint:errcheck
	return nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogout(ctx context.Context, rt *runtime, out io.Writer) error {
	if !rt.sess.IsAuthenticated(ctx) {
		fmt.Fprintln(out, "Já desconectado.") //nolint:errcheck
		return nil
	}
	if err := rt.client.Logout(ctx); err != nil {
		fmt.Fprintf(out, "Sessão local encerrada; servidor respondeu: %v\n", err) //nolint:errcheck
		return nil
	}
	fmt.Fprintln(out, "Sessão encerrada.") //nolint:errcheck
	return nil
}

func runWhoami(ctx context.Context, rt *runtime, out io.Writer) error {
	if !rt.sess.IsAuthenticated(ctx) {
		fmt.Fprintln(out, "Não autenticado. Entre com: fidelidade login") //nolint:errcheck
		return nil
	}
	u, err := rt.client.Me(ctx)
	if errors.Is(err, client.ErrSessionExpired) {
		fmt.Fprintln(out, "Sessão expirada. Entre com: fidelidade login") //nolint:errcheck
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (%s) · %s\n", u.Nome, u.Login, u.Tipo) //nolint:errcheck
	if !u.Tipo.CanWrite() {
		fmt.Fprintln(out, "perfil somente leitura") //nolint:errcheck
	}
	if exp, ok := rt.sess.ExpiresAt(); ok {
		fmt.Fprintf(out, "sessão válida até %s\n", domain.FormatDateTime(exp.Local())) //nolint:errcheck
	}
	return nil
}

func runVoucher(ctx context.Context, rt *runtime, args []string, out io.Writer) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return errors.New("uso: fidelidade voucher <codigo>")
	}
	if !rt.sess.IsAuthenticated(ctx) {
		return errors.New("não autenticado; entre com: fidelidade login")
	}
	r, err := rt.client.ResgateByVoucher(ctx, strings.ToUpper(strings.TrimSpace(args[0])))
	if err != nil {
		if client.IsStatus(err, http.StatusNotFound) {
			return fmt.Errorf("voucher %s não encontrado", args[0])
		}
		return err
	}
	fmt.Fprintf(out, "voucher  %s\n", r.VoucherCodigo)                           //nolint:errcheck
	fmt.Fprintf(out, "cliente  %s\n", r.ClienteNome)                             //nolint:errcheck
	fmt.Fprintf(out, "brinde   %s\n", r.ProdutoNome)                             //nolint:errcheck
	fmt.Fprintf(out, "status   %s\n", r.Status)                                  //nolint:errcheck
	fmt.Fprintf(out, "resgate  %s\n", domain.FormatDateTime(r.DataResgate.Time)) //nolint:errcheck
	if !r.DataEntrega.IsZero() {
		fmt.Fprintf(out, "entrega  %s\n", domain.FormatDateTime(r.DataEntrega.Time)) //nolint:errcheck
	}
	return nil
}

// runVisita logs a purchase visit for the customer with the given CPF. The
// store may be given by a unique prefix of its name.
func runVisita(ctx context.Context, rt *runtime, args []string, out io.Writer) error {
	if len(args) < 3 {
		return errors.New("uso: fidelidade visita <cpf> <valor> <loja>")
	}
	cpf := domain.StripCPF(args[0])
	if !domain.ValidCPFLength(cpf) {
		return errors.New("CPF deve ter 11 dígitos")
	}
	valor, err := domain.ParseCurrency(args[1])
	if err != nil {
		return err
	}
	loja, ok := domain.LojaByName(strings.Join(args[2:], " "))
	if !ok {
		return fmt.Errorf("loja %q desconhecida; lojas: %s", strings.Join(args[2:], " "), strings.Join(domain.Lojas, ", "))
	}
	if !rt.sess.IsAuthenticated(ctx) {
		return errors.New("não autenticado; entre com: fidelidade login")
	}
	if u, ok := rt.sess.Identity(); ok && !u.Tipo.CanWrite() {
		return errors.New("perfil somente leitura não pode registrar visitas")
	}

	cl, err := rt.client.ClienteByCPF(ctx, cpf)
	if err != nil {
		if client.IsStatus(err, http.StatusNotFound) {
			return fmt.Errorf("cliente com CPF %s não encontrado", domain.FormatCPF(cpf))
		}
		return err
	}
	v, err := rt.client.CreateVisita(ctx, client.VisitaInput{ClienteID: cl.ID, ValorCompra: valor, Loja: loja})
	if err != nil {
		return err
	}
	rt.log.Info().Int64("cliente_id", cl.ID).Int64("visita_id", v.ID).Str("loja", loja).Msg("visit registered")
	fmt.Fprintf(out, "Visita registrada para %s\n", cl.Nome)               //nolint:errcheck
	fmt.Fprintf(out, "valor   %s\n", domain.FormatCurrency(v.ValorCompra)) //nolint:errcheck
	fmt.Fprintf(out, "loja    %s\n", v.Loja)                               //nolint:errcheck
	fmt.Fprintf(out, "pontos  +%s\n", domain.FormatCount(v.PontosGerados)) //nolint:errcheck
	return nil
}

// runTier prints the tier a points total falls in.
func runTier(out io.Writer, args []string) error {
	if len(args) == 0 {
		return errors.New("uso: fidelidade tier <pontos>")
	}
	points, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("pontos inválidos %q", args[0])
	}
	tier := domain.TierFor(points)
	fmt.Fprintf(out, "%s (%s)\n", tier, tier.English()) //nolint:errcheck
	if missing, ok := domain.PointsToNext(points); ok {
		fmt.Fprintf(out, "faltam %s pontos para o próximo nível\n", domain.FormatCount(missing)) //nolint:errcheck
	} else {
		fmt.Fprintln(out, "nível máximo") //nolint:errcheck
	}
	return nil
}

func runCPF(out io.Writer, args []string) error {
	raw := strings.Join(args, "")
	if !domain.ValidCPFLength(raw) {
		return errors.New("CPF deve ter 11 dígitos")
	}
	fmt.Fprintln(out, domain.FormatCPF(raw)) //nolint:errcheck
	fmt.Fprintln(out, domain.MaskCPF(raw))   //nolint:errcheck
	return nil
}

func openWeb(out io.Writer, url string) error {
	if err := browser.Open(url); err != nil {
		fmt.Fprintln(out, url) //nolint:errcheck
	}
	return nil
}

package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/megaloja/fidelidade/pkg/client"
	"github.com/megaloja/fidelidade/pkg/domain"
)

// formatTime renders a relative timestamp, e.g. "há 5 min".
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "agora"
	case d < time.Hour:
		return fmt.Sprintf("há %d min", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("há %dh", int(d.Hours()))
	default:
		return fmt.Sprintf("há %dd", int(d.Hours()/24))
	}
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces to width runes, truncating when longer.
func padRight(s string, width int) string {
	s = truncStr(s, width)
	if n := utf8.RuneCountInString(s); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}

// errClienteNaoEncontrado replaces the backend 404 of a CPF lookup.
var errClienteNaoEncontrado = errors.New("cliente não encontrado")

// errText turns an error from the client into a one-line message for the
// status area.
func errText(err error) string {
	var vErr *client.ValidationError
	var tErr *client.TransportError
	switch {
	case errors.Is(err, client.ErrSessionExpired):
		return "sessão expirada, entre novamente"
	case errors.As(err, &vErr):
		return vErr.Error()
	case errors.As(err, &tErr):
		return "servidor indisponível"
	}
	var reqErr *client.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return err.Error()
}

// matchesCliente reports whether c matches a search term by name
// (case-insensitive) or by CPF digits. A term with no digits never matches
// on CPF, so "Maria" does not match every customer.
func matchesCliente(c domain.Cliente, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Nome), strings.ToLower(term)) {
		return true
	}
	digits := domain.StripCPF(term)
	return digits != "" && strings.Contains(domain.StripCPF(c.CPF), digits)
}

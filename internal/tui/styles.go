package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/megaloja/fidelidade/pkg/domain"
)

var (
	// Base styles, neutral palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3b82f6"))

	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	logoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3b82f6")).
			Bold(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878")).
				Bold(true)

	statValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3b82f6")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	// Tier colors, as on the loyalty card: gold, silver, bronze.
	tierColors = map[domain.Tier]lipgloss.Color{
		domain.TierOuro:   lipgloss.Color("#facc15"),
		domain.TierPrata:  lipgloss.Color("#9ca3af"),
		domain.TierBronze: lipgloss.Color("#f97316"),
	}

	statusColors = map[domain.ResgateStatus]lipgloss.Color{
		domain.ResgatePendente:  lipgloss.Color("#facc15"),
		domain.ResgateEntregue:  lipgloss.Color("#4ade80"),
		domain.ResgateCancelado: lipgloss.Color("#f87171"),
	}
)

// TierStyle returns a bold style colored for the given tier.
func TierStyle(t domain.Tier) lipgloss.Style {
	if c, ok := tierColors[t]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")).Bold(true)
}

// TierBadge renders a fixed-width colored tier label, e.g. "Ouro  ".
func TierBadge(t domain.Tier) string {
	return TierStyle(t).Render(fmt.Sprintf("%-6s", string(t)))
}

// StatusStyle returns the style for a redemption status.
func StatusStyle(s domain.ResgateStatus) lipgloss.Style {
	if c, ok := statusColors[s]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return dimStyle
}

// renderLogo renders the spaced-out product name.
func renderLogo() string {
	const text = "FIDELIDADE"
	letters := strings.Split(text, "")
	return logoStyle.Render(strings.Join(letters, " "))
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins key/label pairs into one help line.
func helpBar(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpEntry(pairs[i], pairs[i+1]))
	}
	return " " + strings.Join(parts, "  ")
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

func helpItems(webURL string) []helpItem {
	if webURL == "" {
		return nil
	}
	return []helpItem{
		{"Console web", webURL, webURL},
	}
}

// helpView renders the help overlay: commands, keys and the selectable links.
func helpView(cursor int, items []helpItem) string {
	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	linkSelected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60a5fa"))
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	commands := []struct{ cmd, desc string }{
		{"fidelidade", "Abrir o console (TUI)"},
		{"fidelidade login", "Entrar com login e senha"},
		{"fidelidade logout", "Encerrar a sessão"},
		{"fidelidade whoami", "Mostrar o usuário atual"},
		{"fidelidade visita", "Registrar visita: <cpf> <valor> <loja>"},
		{"fidelidade tier <pontos>", "Nível para uma pontuação"},
		{"fidelidade cpf <número>", "Formatar um CPF"},
		{"fidelidade web", "Abrir o console web"},
	}
	keys := []struct{ key, desc string }{
		{"1-4", "Painel, Clientes, Visitas, Resgates"},
		{"5", "Usuários (administradores)"},
		{"/", "buscar"},
		{"n", "novo cliente, visita, resgate ou usuário"},
		{"c", "copiar CPF ou voucher"},
		{"e / d", "editar / excluir cliente"},
		{"e / x", "entregar / cancelar resgate"},
		{"r", "recarregar"},
		{"L", "sair da conta"},
		{"q", "fechar"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", renderLogo())

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Comandos"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-26s", c.cmd)), descStyle.Render(c.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Teclas"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-26s", k.key)), descStyle.Render(k.desc))
	}

	if len(items) > 0 {
		fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter abre)"))
		for i, item := range items {
			label := cmdStyle.Render(fmt.Sprintf("%-26s", item.label))
			prefix := "    "
			if i == cursor {
				label = linkSelected.Render(fmt.Sprintf("%-26s", item.label))
				prefix = "  > "
			}
			fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(item.desc))
		}
	}
	return b.String()
}

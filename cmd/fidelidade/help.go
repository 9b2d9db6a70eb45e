package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#facc15")).
		Bold(true).
		Render("F I D E L I D A D E")

	sub := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Console do programa de fidelidade Mega Loja")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"fidelidade", "Abrir o console (TUI)"},
		{"fidelidade login [usuario]", "Entrar (senha via FIDELIDADE_PASSWORD ou stdin)"},
		{"fidelidade logout", "Encerrar a sessão"},
		{"fidelidade whoami", "Mostrar o usuário da sessão"},
		{"fidelidade voucher <codigo>", "Consultar um resgate pelo voucher"},
		{"fidelidade visita <cpf> <valor> <loja>", "Registrar uma visita (loja por prefixo)"},
		{"fidelidade tier <pontos>", "Nível para um total de pontos"},
		{"fidelidade cpf <cpf>", "Formatar e mascarar um CPF"},
		{"fidelidade web", "Abrir o console web"},
		{"fidelidade --version", "Mostrar a versão"},
		{"fidelidade help", "Esta ajuda"},
	}

	fmt.Printf("\n  %s\n  %s\n\n  Comandos:\n", title, sub)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-28s", c.cmd)), descStyle.Render(c.desc))
	}

	envStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	fmt.Printf("\n  %s\n\n", envStyle.Render("Configuração: FIDELIDADE_API_URL, FIDELIDADE_STORE, FIDELIDADE_LOG_LEVEL (ou .env)"))
}

package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Display formatting for the pt-BR locale the stores operate in.

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency renders a BRL amount, e.g. R$ 1.234,50.
func FormatCurrency(v float64) string {
	return "R$ " + ptBR.Sprintf("%v", number.Decimal(v, number.Scale(2)))
}

// FormatCount renders an integer with pt-BR digit grouping, e.g. 12.345.
func FormatCount(n int) string {
	return ptBR.Sprintf("%v", number.Decimal(n))
}

// FormatDate renders a day as dd/mm/yyyy. The zero time renders as "-".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

// FormatDateTime renders dd/mm/yyyy hh:mm:ss. The zero time renders as "-".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006 15:04:05")
}

// ParseCurrency reads an amount as staff type it: "1.234,56", "R$ 150,5" or
// "150.50". With no comma a dot is the decimal separator.
func ParseCurrency(s string) (float64, error) {
	in := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(in, ",") {
		in = strings.ReplaceAll(in, ".", "")
		in = strings.Replace(in, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(in, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("valor inválido: %q", s)
	}
	return v, nil
}

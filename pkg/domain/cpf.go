package domain

import "strings"

const cpfDigits = 11

// StripCPF removes everything but ASCII digits.
func StripCPF(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// FormatCPF punctuates a CPF as 000.000.000-00. Input is stripped first.
// It does not validate: with fewer than 11 digits the stripped digits are
// returned as-is, and digits past the eleventh are appended after the check
// pair.
func FormatCPF(s string) string {
	d := StripCPF(s)
	if len(d) < cpfDigits {
		return d
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
}

// MaskCPF hides the first three and the last two digits for list display,
// e.g. ***.456.789-**. Inputs too short to punctuate are fully masked.
func MaskCPF(s string) string {
	d := StripCPF(s)
	if len(d) < cpfDigits {
		return strings.Repeat("*", len(d))
	}
	return "***." + d[3:6] + "." + d[6:9] + "-**"
}

// ValidCPFLength reports whether s carries exactly 11 digits once stripped.
func ValidCPFLength(s string) bool {
	return len(StripCPF(s)) == cpfDigits
}

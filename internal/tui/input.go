package tui

import (
	"strings"
	"unicode/utf8"
)

const (
	// pageSize is the per_page sent with every listing request.
	pageSize = 50
	// maxInputLen caps search and login fields, in runes.
	maxInputLen = 120
)

// editRune applies one key press to a text field. Accented characters count
// as one rune; keys that are not a single character leave text as is.
func editRune(text, key string) string {
	switch key {
	case "backspace":
		_, size := utf8.DecodeLastRuneInString(text)
		return text[:len(text)-size]
	case "space":
		key = " "
	}
	if utf8.RuneCountInString(key) != 1 || utf8.RuneCountInString(text) >= maxInputLen {
		return text
	}
	return text + key
}

// truncateToHeight keeps at most maxLines lines of s. maxLines <= 0 means no
// limit.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	end := 0
	for range maxLines {
		i := strings.IndexByte(s[end:], '\n')
		if i < 0 {
			return s
		}
		end += i + 1
	}
	return s[:end]
}

// renderField renders a labelled single-line input. Masked fields show one
// bullet per rune.
func renderField(label, value, placeholder string, focused, masked bool) string {
	shown := value
	if masked {
		shown = strings.Repeat("•", utf8.RuneCountInString(value))
	}
	prompt := metaStyle.Render("  ")
	if focused {
		prompt = inputPromptStyle.Render("> ")
	}
	l := dimStyle.Render(padRight(label, 10))
	switch {
	case shown == "" && focused:
		return prompt + l + accentStyle.Render("█")
	case shown == "":
		return prompt + l + inputPlaceholderStyle.Render(placeholder)
	case focused:
		return prompt + l + selectedStyle.Render(shown) + accentStyle.Render("█")
	default:
		return prompt + l + normalStyle.Render(shown)
	}
}

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// formField is one line of an entry form. A field with options is a picker:
// left/right cycles through them and typing is ignored.
type formField struct {
	label       string
	placeholder string
	value       string
	masked      bool
	options     []string
}

type formAction int

const (
	formEditing formAction = iota
	formSubmit
	formCancel
)

// form is the entry form shared by the registration screens.
type form struct {
	title  string
	fields []formField
	focus  int
	err    string
	busy   bool
}

func newForm(title string, fields ...formField) form {
	for i := range fields {
		if len(fields[i].options) > 0 && fields[i].value == "" {
			fields[i].value = fields[i].options[0]
		}
	}
	return form{title: title, fields: fields}
}

// value returns field i with surrounding spaces trimmed.
func (f form) value(i int) string {
	return strings.TrimSpace(f.fields[i].value)
}

func (f form) update(msg tea.KeyMsg) (form, formAction) {
	if f.busy {
		return f, formEditing
	}
	n := len(f.fields)
	switch msg.String() {
	case "esc":
		return f, formCancel
	case "ctrl+s":
		return f, formSubmit
	case "tab", "down":
		f.focus = (f.focus + 1) % n
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + n) % n
	case "enter":
		if f.focus == n-1 {
			return f, formSubmit
		}
		f.focus++
	case "left", "right":
		fl := &f.fields[f.focus]
		if len(fl.options) > 0 {
			fl.value = cycleOption(fl.options, fl.value, msg.String() == "right")
		}
	default:
		fl := &f.fields[f.focus]
		if len(fl.options) == 0 {
			fl.value = editRune(fl.value, msg.String())
			f.err = ""
		}
	}
	return f, formEditing
}

// cycleOption steps from cur to the next (or previous) option, wrapping.
func cycleOption(opts []string, cur string, forward bool) string {
	idx := 0
	for i, o := range opts {
		if o == cur {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(opts)
	} else {
		idx = (idx - 1 + len(opts)) % len(opts)
	}
	return opts[idx]
}

func (f form) View() string {
	var b strings.Builder
	b.WriteString("\n " + sectionHeaderStyle.Render(f.title) + "\n\n")
	for i, fl := range f.fields {
		focused := i == f.focus
		if len(fl.options) > 0 {
			b.WriteString(renderOption(fl.label, fl.value, focused) + "\n")
			continue
		}
		b.WriteString(renderField(fl.label, fl.value, fl.placeholder, focused, fl.masked) + "\n")
	}
	b.WriteString("\n")
	switch {
	case f.busy:
		b.WriteString(" " + dimStyle.Render("salvando...") + "\n")
	case f.err != "":
		b.WriteString(" " + errStyle.Render(f.err) + "\n")
	}
	return b.String()
}

// renderOption renders a picker field the way renderField renders text.
func renderOption(label, value string, focused bool) string {
	prompt := metaStyle.Render("  ")
	l := dimStyle.Render(padRight(label, 10))
	if focused {
		return inputPromptStyle.Render("> ") + l + accentStyle.Render("‹ ") + selectedStyle.Render(value) + accentStyle.Render(" ›")
	}
	return prompt + l + normalStyle.Render(value)
}

func (f form) helpKeys() string {
	return helpBar("tab", "campo", "←/→", "opção", "ctrl+s", "salvar", "esc", "cancelar")
}

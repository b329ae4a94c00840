package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type labeledInput struct {
	label string
	input textinput.Model
}

// credentialsForm is the input column shared by the sign-in screens.
type credentialsForm struct {
	fields []labeledInput
	focus  int
}

func newSecretInput(placeholder string) textinput.Model {
	in := newFormInput(placeholder, 256)
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '*'
	return in
}

func newCredentialsForm(fields ...labeledInput) credentialsForm {
	f := credentialsForm{fields: fields}
	f.fields[0].input.Focus()
	return f
}

// handleKey moves the focus on tab, shift+tab and the arrow keys, and feeds
// everything else to the focused input. j/k are text here.
func (f *credentialsForm) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.tab), msg.Type == tea.KeyDown:
		f.move(1)
		return nil
	case key.Matches(msg, keys.backtab), msg.Type == tea.KeyUp:
		f.move(-1)
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *credentialsForm) move(delta int) {
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

func (f *credentialsForm) value(i int) string {
	return f.fields[i].input.Value()
}

// clear empties the inputs and puts the focus back on the first one.
func (f *credentialsForm) clear() {
	for i := range f.fields {
		f.fields[i].input.SetValue("")
		f.fields[i].input.Blur()
	}
	f.focus = 0
	f.fields[0].input.Focus()
}

// clearSecrets wipes only the masked inputs.
func (f *credentialsForm) clearSecrets() {
	for i := range f.fields {
		if f.fields[i].input.EchoMode == textinput.EchoPassword {
			f.fields[i].input.SetValue("")
		}
	}
}

func (f *credentialsForm) view(button string, busy bool) string {
	width := 0
	for _, fl := range f.fields {
		width = max(width, lipgloss.Width(fl.label))
	}

	var b strings.Builder
	for _, fl := range f.fields {
		fmt.Fprintf(&b, "%-*s │ [%s]\n", width, fl.label, fl.input.View())
	}
	if busy {
		button += "..."
	}
	fmt.Fprintf(&b, "\n[%s]", button)
	return b.String()
}

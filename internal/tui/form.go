package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formKind int

const (
	formTrip formKind = iota
	formVehicle
	formSegmentStart
	formSegmentFinish
	formLogin
	formRegister
)

// formModel is a column of labelled inputs shared by every create and edit
// screen of the main loop.
type formModel struct {
	kind   formKind
	title  string
	labels []string
	inputs []textinput.Model
	focus  int

	// editID is the record being edited, empty for new records.
	editID string
	// tripID and vehicleID address segment forms.
	tripID    string
	vehicleID string

	// hint is the hotkey line under the form.
	hint   string
	errMsg string
}

func newFormModel(kind formKind, title string, labels []string) formModel {
	inputs := make([]textinput.Model, len(labels))
	for i := range inputs {
		inputs[i] = newInput("", false)
	}
	inputs[0].Focus()

	return formModel{
		kind:   kind,
		title:  title,
		labels: labels,
		inputs: inputs,
		hint:   "esc: отмена │ tab: след. поле │ enter: сохранить",
	}
}

// mask hides the typed value of input i.
func (f formModel) mask(i int) {
	f.inputs[i].EchoMode = textinput.EchoPassword
	f.inputs[i].EchoCharacter = '*'
}

func (f formModel) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f formModel) update(msg tea.Msg) (formModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			f.focus = moveFocus(f.inputs, f.focus, 1)
			return f, nil
		case "shift+tab", "up":
			f.focus = moveFocus(f.inputs, f.focus, -1)
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f formModel) View() string {
	width := 0
	for _, label := range f.labels {
		if w := len([]rune(label)); w > width {
			width = w
		}
	}

	var b strings.Builder
	for i, label := range f.labels {
		b.WriteString(padRight(label, width+1))
		b.WriteString("│ [")
		b.WriteString(f.inputs[i].View())
		b.WriteString("]\n")
	}
	if f.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(f.errMsg)
		b.WriteString("\n")
	}

	return renderPage(f.title, strings.TrimRight(b.String(), "\n"), f.hint)
}

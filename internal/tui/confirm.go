package tui

import tea "github.com/charmbracelet/bubbletea"

type confirmModel struct {
	message string
	action  tea.Cmd
	back    screen
}

func (m confirmModel) View() string {
	content := "Удалить \"" + m.message + "\"?\n\n"
	content += "y да    n нет"
	return boxStyle.Render(content)
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type menuEntry struct {
	label string
	page  string
}

// MenuModel is the start page of the login flow. Picking "Выход" quits
// through the router the same way ctrl+c does.
type MenuModel struct {
	entries []menuEntry
	cursor  int
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		entries: []menuEntry{
			{label: "Войти", page: "login"},
			{label: "Создать аккаунт", page: "register"},
			{label: "Выход"},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		m.cursor = clamp(m.cursor-1, len(m.entries))
	case key.Matches(keyMsg, keys.down):
		m.cursor = clamp(m.cursor+1, len(m.entries))
	case key.Matches(keyMsg, keys.enter):
		entry := m.entries[m.cursor]
		if entry.page == "" {
			return m, func() tea.Msg { return quitRequested{} }
		}
		return m, func() tea.Msg { return NavigateTo{Page: entry.page} }
	}
	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder
	for i, entry := range m.entries {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + entry.label))
		} else {
			b.WriteString("  " + entry.label)
		}
		b.WriteString("\n")
	}
	return renderPage("TRIP KEEPER", strings.TrimRight(b.String(), "\n"), "enter: выбрать │ ↑/↓: навигация │ v: о программе")
}

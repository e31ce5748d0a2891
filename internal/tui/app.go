package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-trip-keeper/models"
)

var aboutKey = key.NewBinding(key.WithKeys("v"))

// RootModel routes messages of the login flow between named pages. It owns
// ctrl+c, the "about" box of the menu and the final [LoginResult].
type RootModel struct {
	pages   map[string]tea.Model
	current tea.Model

	quitByUser bool
	session    models.Session

	buildInfo models.AppBuildInfo
	showAbout bool
}

// NewRootModel opens start; the other pages are reached with [NavigateTo].
func NewRootModel(pages map[string]tea.Model, start string, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		pages:     pages,
		current:   pages[start],
		buildInfo: buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return r.quit()
		}
		if r.showAbout {
			if key.Matches(msg, keys.esc, aboutKey) {
				r.showAbout = false
			}
			return r, nil
		}
		if _, onMenu := r.current.(*MenuModel); onMenu && key.Matches(msg, aboutKey) {
			r.showAbout = true
			return r, nil
		}
	case quitRequested:
		return r.quit()
	case NavigateTo:
		return r.navigate(msg)
	case LoginResult:
		if msg.Err == nil {
			r.session = msg.Session
			return r, tea.Quit
		}
	}

	if r.current == nil {
		return r, nil
	}
	var cmd tea.Cmd
	r.current, cmd = r.current.Update(msg)
	return r, cmd
}

func (r RootModel) View() string {
	switch {
	case r.showAbout:
		return aboutView(r.buildInfo)
	case r.current == nil:
		return renderPage("TRIP KEEPER", "", "")
	default:
		return r.current.View()
	}
}

func (r RootModel) quit() (tea.Model, tea.Cmd) {
	r.quitByUser = true
	return r, tea.Quit
}

func (r RootModel) navigate(nav NavigateTo) (tea.Model, tea.Cmd) {
	next, ok := r.pages[nav.Page]
	if !ok {
		return r, nil
	}
	r.current = next
	r.showAbout = false

	if nav.Payload != nil {
		return r, func() tea.Msg { return nav.Payload }
	}
	return r, next.Init()
}

func aboutView(info models.AppBuildInfo) string {
	rows := [][2]string{
		{"Приложение", "Trip Keeper"},
		{"Версия", info.BuildVersion()},
		{"Дата сборки", info.BuildDate()},
		{"Коммит", info.BuildCommit()},
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(padRight(row[0]+":", 14))
		b.WriteString(valueOrDash(row[1]))
		b.WriteString("\n")
	}
	return renderPage("О ПРОГРАММЕ", strings.TrimRight(b.String(), "\n"), "esc: назад")
}

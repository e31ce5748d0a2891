package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	quit     key.Binding
	logout   key.Binding
	newItem  key.Binding
	sync     key.Binding
	retry    key.Binding
	edit     key.Binding
	delete   key.Binding
	copy     key.Binding
	link     key.Binding
	unlink   key.Binding
	start    key.Binding
	finish   key.Binding
	complete key.Binding
	yes      key.Binding
	no       key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	tab:      key.NewBinding(key.WithKeys("tab")),
	quit:     key.NewBinding(key.WithKeys("q")),
	logout:   key.NewBinding(key.WithKeys("L")),
	newItem:  key.NewBinding(key.WithKeys("n")),
	sync:     key.NewBinding(key.WithKeys("s")),
	retry:    key.NewBinding(key.WithKeys("r")),
	edit:     key.NewBinding(key.WithKeys("e")),
	delete:   key.NewBinding(key.WithKeys("d")),
	copy:     key.NewBinding(key.WithKeys("c")),
	link:     key.NewBinding(key.WithKeys("a")),
	unlink:   key.NewBinding(key.WithKeys("x")),
	start:    key.NewBinding(key.WithKeys("o")),
	finish:   key.NewBinding(key.WithKeys("f")),
	complete: key.NewBinding(key.WithKeys("C")),
	yes:      key.NewBinding(key.WithKeys("y")),
	no:       key.NewBinding(key.WithKeys("n", "esc")),
}

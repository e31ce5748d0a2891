// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-trip-keeper/internal/service"
	"github.com/MKhiriev/go-trip-keeper/models"
)

const minPasswordLength = 8

// authModel is a page of the login flow: sign-in or sign-up. Both end with a
// [LoginResult]; a successful one is taken by [RootModel], a failed one comes
// back here and is shown under the form.
type authModel struct {
	form       formModel
	submitting bool

	// submit validates the form and returns the command producing the
	// LoginResult.
	submit func(formModel) (tea.Cmd, error)
}

// NewLoginModel builds the sign-in page.
func NewLoginModel(ctx context.Context, auth service.ClientAuthService) tea.Model {
	form := newFormModel(formLogin, "ВХОД", []string{"Email", "Пароль"})
	form.mask(1)
	form.hint = "esc: назад │ tab: след. поле │ enter: войти"

	return &authModel{
		form: form,
		submit: func(f formModel) (tea.Cmd, error) {
			user := models.User{Email: f.value(0), Password: f.inputs[1].Value()}
			if user.Email == "" || user.Password == "" {
				return nil, errCredentialsRequired
			}
			return func() tea.Msg {
				session, err := auth.SignIn(ctx, user)
				return LoginResult{Session: session, Err: err}
			}, nil
		},
	}
}

// NewRegisterModel builds the sign-up page. A successful sign-up signs the
// user in right away.
func NewRegisterModel(ctx context.Context, auth service.ClientAuthService, accounts service.ClientAccountService) tea.Model {
	form := newFormModel(formRegister, "РЕГИСТРАЦИЯ", []string{"Имя", "Email", "Пароль", "Повтор"})
	form.mask(2)
	form.mask(3)
	form.hint = "esc: назад │ tab: след. поле │ enter: создать"

	return &authModel{
		form: form,
		submit: func(f formModel) (tea.Cmd, error) {
			user := models.User{Name: f.value(0), Email: f.value(1), Password: f.inputs[2].Value()}
			switch {
			case user.Email == "" || user.Password == "":
				return nil, errCredentialsRequired
			case len(user.Password) < minPasswordLength:
				return nil, errPasswordTooShort
			case user.Password != f.inputs[3].Value():
				return nil, errPasswordsDiffer
			}
			return cmdRegister(ctx, auth, accounts, user), nil
		},
	}
}

func (m *authModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *authModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoginResult:
		m.submitting = false
		m.form.errMsg = humanizeError(msg.Err)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.submitting = false
			m.form.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case key.Matches(msg, keys.enter):
			if m.submitting {
				return m, nil
			}
			cmd, err := m.submit(m.form)
			if err != nil {
				m.form.errMsg = err.Error()
				return m, nil
			}
			m.form.errMsg = ""
			m.submitting = true
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m *authModel) View() string {
	if m.submitting {
		return m.form.View() + "\n  " + helpStyle.Render("подождите...")
	}
	return m.form.View()
}

// cmdRegister checks the e-mail first so a taken address is reported
// without a failed sign-up. A failed check falls through to SignUp.
func cmdRegister(ctx context.Context, auth service.ClientAuthService, accounts service.ClientAccountService, user models.User) tea.Cmd {
	return func() tea.Msg {
		if exists, err := accounts.CheckEmailExists(ctx, user.Email); err == nil && exists {
			return LoginResult{Err: errEmailTaken}
		}
		session, err := auth.SignUp(ctx, user)
		return LoginResult{Session: session, Err: err}
	}
}

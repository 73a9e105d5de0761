// Package tui is the terminal rendition of the portal: the same login form
// state machine and profile view, drawn with bubbletea.
package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/only/profile-portal/internal/core/authform"
	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/core/ports"
	"github.com/only/profile-portal/internal/web"
	"github.com/only/profile-portal/internal/web/i18n"
)

type screen int

const (
	screenForm screen = iota
	screenProfile
)

// Focusable controls of the form, in tab order.
const (
	focusLogin = iota
	focusPassword
	focusRemember
	focusSubmit
	focusCount
)

// submittedMsg carries the result of one form submission back to Update.
type submittedMsg struct {
	state    authform.State
	identity *domain.SessionIdentity
	err      error
}

// Model is the root bubbletea model.
type Model struct {
	form   *authform.Form
	logins chan domain.SessionIdentity
	l      *i18n.Localizer
	keys   KeyMap
	help   help.Model

	screen     screen
	focus      int
	login      textinput.Model
	password   textinput.Model
	remember   bool
	submitting bool
	state      authform.State
	identity   domain.SessionIdentity
	err        error
}

// New builds the model around auth. opts are passed to the login form.
func New(auth ports.Authenticator, l *i18n.Localizer, opts ...authform.Option) Model {
	logins := make(chan domain.SessionIdentity, 1)
	form := authform.New(auth, func(id domain.SessionIdentity) {
		logins <- id
	}, opts...)

	login := textinput.New()
	login.Prompt = ""
	login.CharLimit = 320
	login.Focus()

	password := textinput.New()
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return Model{
		form:     form,
		logins:   logins,
		l:        l,
		keys:     DefaultKeyMap,
		help:     help.New(),
		login:    login,
		password: password,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.screen == screenProfile {
			return m.updateProfile(msg)
		}
		return m.updateForm(msg)

	case submittedMsg:
		return m.submitted(msg), nil
	}

	if m.screen == screenForm {
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1), nil
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1), nil
	case key.Matches(msg, m.keys.Toggle) && m.focus == focusRemember:
		m.remember = !m.remember
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusLogin:
		m.login, cmd = m.login.Update(msg)
	case focusPassword:
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Logout) {
		return m, nil
	}

	loggedOut := false
	web.NewProfile(m.identity, func() { loggedOut = true }).LogOut()
	if loggedOut {
		m = m.signedOut()
	}
	return m, textinput.Blink
}

func (m Model) moveFocus(delta int) Model {
	m.focus = (m.focus + delta + focusCount) % focusCount
	m.login.Blur()
	m.password.Blur()
	switch m.focus {
	case focusLogin:
		m.login.Focus()
	case focusPassword:
		m.password.Focus()
	}
	return m
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	in := authform.Input{
		Login:        m.login.Value(),
		Password:     m.password.Value(),
		SavePassword: m.remember,
	}
	form, logins := m.form, m.logins

	m.submitting = true
	return m, func() tea.Msg {
		st, err := form.Submit(in)
		msg := submittedMsg{state: st, err: err}
		select {
		case id := <-logins:
			msg.identity = &id
		default:
		}
		return msg
	}
}

func (m Model) submitted(msg submittedMsg) Model {
	if errors.Is(msg.err, authform.ErrSubmitting) {
		return m
	}
	m.submitting = false
	m.state = msg.state
	m.err = msg.err

	if msg.identity != nil {
		m.identity = *msg.identity
		m.screen = screenProfile
		m.password.Reset()
	}
	return m
}

func (m Model) signedOut() Model {
	m.screen = screenForm
	m.identity = domain.SessionIdentity{}
	m.state = authform.State{}
	m.err = nil
	m.focus = focusLogin
	return m.moveFocus(0)
}

// Identity is the identity of the logged-in user, zero when logged out.
func (m Model) Identity() domain.SessionIdentity {
	return m.identity
}

func (m Model) View() string {
	header := logoStyle.Render(m.l.T(i18n.AppName))
	var body string
	if m.screen == screenProfile {
		body = m.profileView()
	} else {
		body = m.formView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body) + "\n"
}

func (m Model) formView() string {
	var b strings.Builder

	if m.state.ServerError.Status {
		msg := m.state.ServerError.Message
		if msg == "" {
			msg = m.l.T(i18n.ErrorServerFallback)
		}
		b.WriteString(noticeStyle.Render("! "+msg) + "\n\n")
	}
	if m.err != nil {
		b.WriteString(noticeStyle.Render(m.l.T(i18n.ErrorServerFallback)) + "\n\n")
	}

	m.writeField(&b, i18n.LabelLogin, m.login.View(), authform.FieldLogin)
	m.writeField(&b, i18n.LabelPassword, m.password.View(), authform.FieldPassword)

	box := "[ ]"
	if m.remember {
		box = "[x]"
	}
	check := box + " " + m.l.T(i18n.LabelSavePassword)
	if m.focus == focusRemember {
		check = lipgloss.NewStyle().Foreground(accent).Render(check)
	}
	b.WriteString(check + "\n")

	style := buttonStyle
	switch {
	case m.submitting:
		style = disabledButtonStyle
	case m.focus == focusSubmit:
		style = focusedButtonStyle
	}
	b.WriteString(style.Render(m.l.T(i18n.ButtonSubmit)) + "\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) writeField(b *strings.Builder, labelID, input string, field authform.Field) {
	b.WriteString(labelStyle.Render(m.l.T(labelID)) + "\n")
	b.WriteString(input + "\n")
	if m.state.HasFieldError(field) {
		b.WriteString(fieldErrorStyle.Render(m.l.T(i18n.ErrorRequired)) + "\n")
	}
	b.WriteString("\n")
}

func (m Model) profileView() string {
	profile := web.NewProfile(m.identity, nil)
	greeting := m.l.T(i18n.ProfileGreeting) + " " + nameStyle.Render(profile.Login())
	return lipgloss.JoinVertical(lipgloss.Left,
		greetingStyle.Render(greeting),
		focusedButtonStyle.Render(m.l.T(i18n.ButtonLogout)),
		m.help.View(profileKeys{m.keys}),
	)
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

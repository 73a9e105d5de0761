package web

import (
	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/web/i18n"
)

// Profile shows who is logged in and offers a logout action. It holds no
// state of its own.
type Profile struct {
	login    string
	onLogOut func()
}

// NewProfile builds the view for identity. An anonymous identity renders an
// empty name.
func NewProfile(identity domain.SessionIdentity, onLogOut func()) Profile {
	return Profile{login: identity.Identifier, onLogOut: onLogOut}
}

// Login is the displayed identifier.
func (p Profile) Login() string {
	return p.login
}

// LogOut runs the host's logout callback.
func (p Profile) LogOut() {
	if p.onLogOut != nil {
		p.onLogOut()
	}
}

// Page returns the template data for the profile page.
func (p Profile) Page(l *i18n.Localizer) ProfilePage {
	return ProfilePage{BasePage: NewBasePage(l, i18n.TitleProfile), Login: p.login}
}

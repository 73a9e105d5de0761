package web

import (
	"github.com/only/profile-portal/internal/core/authform"
	"github.com/only/profile-portal/internal/web/i18n"
)

// BasePage is the data every page hands to the shell. The layout template
// only reads these fields.
type BasePage struct {
	Title string
	Lang  string
	L     *i18n.Localizer
}

// NewBasePage titles a page using the localizer.
func NewBasePage(l *i18n.Localizer, titleID string) BasePage {
	return BasePage{Title: l.T(titleID), Lang: l.Lang(), L: l}
}

// AuthFormView is the drawable state of the login form.
type AuthFormView struct {
	Login         string
	SavePassword  bool
	Submitting    bool
	LoginError    bool
	PasswordError bool
	ServerError   bool
	ServerMessage string
}

// NewAuthFormView combines the submitted values with the form state. The
// password is never echoed back.
func NewAuthFormView(l *i18n.Localizer, in authform.Input, st authform.State) AuthFormView {
	v := AuthFormView{
		Login:         in.Login,
		SavePassword:  in.SavePassword,
		Submitting:    st.Submitting,
		LoginError:    st.HasFieldError(authform.FieldLogin),
		PasswordError: st.HasFieldError(authform.FieldPassword),
		ServerError:   st.ServerError.Status,
		ServerMessage: st.ServerError.Message,
	}
	if v.ServerError && v.ServerMessage == "" {
		v.ServerMessage = l.T(i18n.ErrorServerFallback)
	}
	return v
}

// LoginPage is the shell around the auth form.
type LoginPage struct {
	BasePage
	Form AuthFormView
}

// ProfilePage is the shell around the profile view.
type ProfilePage struct {
	BasePage
	Login string
}

// ErrorPage is the shell around a failed request.
type ErrorPage struct {
	BasePage
	Status  int
	Message string
}

func NewErrorPage(l *i18n.Localizer, status int, message string) ErrorPage {
	return ErrorPage{BasePage: NewBasePage(l, i18n.TitleError), Status: status, Message: message}
}

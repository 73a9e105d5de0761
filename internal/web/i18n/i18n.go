// Package i18n translates the portal's UI chrome. Messages live in embedded
// YAML files, one per language; outcome messages from the authenticator are
// shown as produced and are not translated here.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Message IDs.
const (
	AppName             = "app_name"
	TitleLogin          = "title_login"
	TitleProfile        = "title_profile"
	LabelLogin          = "label_login"
	LabelPassword       = "label_password"
	LabelSavePassword   = "label_save_password"
	ButtonSubmit        = "button_submit"
	ErrorRequired       = "error_required"
	ErrorServerFallback = "error_server_fallback"
	ProfileGreeting     = "profile_greeting"
	ButtonLogout        = "button_logout"
	TitleError          = "title_error"
	LinkHome            = "link_home"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Translator holds the parsed message bundle. It is safe for concurrent use.
type Translator struct {
	bundle *goi18n.Bundle
}

// New parses every embedded locale file. English is the fallback language.
func New() (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: read locales: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", f.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, f.Name()); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", f.Name(), err)
		}
	}
	return &Translator{bundle: bundle}, nil
}

// MustNew is New for process startup and tests.
func MustNew() *Translator {
	t, err := New()
	if err != nil {
		panic(err)
	}
	return t
}

// Languages lists the languages with a message file.
func (t *Translator) Languages() []language.Tag {
	return t.bundle.LanguageTags()
}

// For returns a Localizer for the given preferences, typically the raw
// Accept-Language header. Unknown or empty preferences fall back to English.
func (t *Translator) For(prefs ...string) *Localizer {
	l := &Localizer{loc: goi18n.NewLocalizer(t.bundle, prefs...), tag: language.English}
	if _, tag, err := l.loc.LocalizeWithTag(&goi18n.LocalizeConfig{MessageID: AppName}); err == nil {
		l.tag = tag
	}
	return l
}

// Localizer translates message IDs for one request.
type Localizer struct {
	loc *goi18n.Localizer
	tag language.Tag
}

// T translates id. A missing translation yields the ID itself, which makes
// gaps visible in the UI.
func (l *Localizer) T(id string) string {
	msg, err := l.loc.Localize(&goi18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return id
	}
	return msg
}

// Lang is the BCP 47 tag of the language actually used.
func (l *Localizer) Lang() string {
	return l.tag.String()
}
